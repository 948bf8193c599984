package entity

import "github.com/younwookim/luckie/internal/domain/collision"

// EntityID is a unique identifier for an entity. IDs are never recycled.
type EntityID uint32

// TileType represents the type of a tile
type TileType int

const (
	TileEmpty TileType = iota
	TileWall
	TileSpike
	TileOneWay
)

// Tile represents a single tile in the stage
type Tile struct {
	Type   TileType
	Solid  bool
	Damage int
}

// Stage represents the current stage's tile data
type Stage struct {
	Width    int
	Height   int
	TileSize int
	Tiles    [][]Tile
	SpawnX   int
	SpawnY   int

	solids  []collision.Rect
	oneWays []collision.Rect
	built   bool
}

// GetTile returns the tile at the given tile coordinates.
// Out of bounds reads as a solid wall.
func (s *Stage) GetTile(tx, ty int) Tile {
	if tx < 0 || tx >= s.Width || ty < 0 || ty >= s.Height {
		return Tile{Type: TileWall, Solid: true}
	}
	return s.Tiles[ty][tx]
}

// GetTileAtPixel returns the tile at the given pixel coordinates
func (s *Stage) GetTileAtPixel(px, py int) Tile {
	if px < 0 || py < 0 {
		return Tile{Type: TileWall, Solid: true}
	}
	return s.GetTile(px/s.TileSize, py/s.TileSize)
}

// IsSolidAt checks if the tile at pixel coordinates is solid
func (s *Stage) IsSolidAt(px, py int) bool {
	return s.GetTileAtPixel(px, py).Solid
}

// PixelWidth returns the stage width in pixels
func (s *Stage) PixelWidth() float64 {
	return float64(s.Width * s.TileSize)
}

// PixelHeight returns the stage height in pixels
func (s *Stage) PixelHeight() float64 {
	return float64(s.Height * s.TileSize)
}

// SolidRects returns the solid geometry as rectangles, one per horizontal
// run of solid tiles.
func (s *Stage) SolidRects() []collision.Rect {
	s.build()
	return s.solids
}

// OneWayRects returns the one-way platforms. They only support ground snapping.
func (s *Stage) OneWayRects() []collision.Rect {
	s.build()
	return s.oneWays
}

// Platforms returns every surface an entity can stand on.
func (s *Stage) Platforms() []collision.Rect {
	s.build()
	out := make([]collision.Rect, 0, len(s.solids)+len(s.oneWays))
	out = append(out, s.solids...)
	return append(out, s.oneWays...)
}

// TileRects returns merged horizontal runs of tiles matching fn.
func (s *Stage) TileRects(fn func(Tile) bool) []collision.Rect {
	ts := float64(s.TileSize)
	var rects []collision.Rect
	for ty := 0; ty < s.Height; ty++ {
		run := -1
		for tx := 0; tx <= s.Width; tx++ {
			match := tx < s.Width && tx < len(s.Tiles[ty]) && fn(s.Tiles[ty][tx])
			if match && run < 0 {
				run = tx
			}
			if !match && run >= 0 {
				rects = append(rects, collision.Rect{
					X: float64(run) * ts,
					Y: float64(ty) * ts,
					W: float64(tx-run) * ts,
					H: ts,
				})
				run = -1
			}
		}
	}
	return rects
}

// Invalidate drops the cached geometry after tiles change.
func (s *Stage) Invalidate() {
	s.built = false
}

func (s *Stage) build() {
	if s.built {
		return
	}
	s.solids = s.TileRects(func(t Tile) bool { return t.Solid })
	s.oneWays = s.TileRects(func(t Tile) bool { return t.Type == TileOneWay && !t.Solid })
	s.built = true
}
