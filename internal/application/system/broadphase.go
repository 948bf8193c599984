package system

import (
	"sort"

	"github.com/solarlune/resolv"

	"github.com/younwookim/luckie/internal/domain/collision"
	"github.com/younwookim/luckie/internal/domain/entity"
)

const (
	tagSolid    = "solid"
	tagPlatform = "platform"
	tagCursor   = "cursor"
)

// StaticIndex is a uniform-grid broadphase over the stage's static
// geometry. Queries return candidates; callers apply the exact tests.
type StaticIndex struct {
	space  *resolv.Space
	cursor *resolv.Object
	cell   int
}

// NewStaticIndex indexes the stage's solid runs and one-way platforms.
// cell <= 0 picks two tiles per cell.
func NewStaticIndex(stage *entity.Stage, cell int) *StaticIndex {
	if cell <= 0 {
		cell = stage.TileSize * 2
	}
	if cell <= 0 {
		cell = 32
	}
	w := int(stage.PixelWidth())
	h := int(stage.PixelHeight())

	space := resolv.NewSpace(w, h, cell, cell)
	for _, r := range stage.SolidRects() {
		obj := resolv.NewObject(r.X, r.Y, r.W, r.H, tagSolid)
		obj.Data = r
		space.Add(obj)
	}
	for _, r := range stage.OneWayRects() {
		obj := resolv.NewObject(r.X, r.Y, r.W, r.H, tagPlatform)
		obj.Data = r
		space.Add(obj)
	}

	cursor := resolv.NewObject(0, 0, 1, 1, tagCursor)
	space.Add(cursor)

	return &StaticIndex{space: space, cursor: cursor, cell: cell}
}

// Solids returns solid rectangles sharing a cell with r
func (ix *StaticIndex) Solids(r collision.Rect) []collision.Rect {
	return ix.query(r, tagSolid)
}

// Platforms returns solids and one-way platforms sharing a cell with r
func (ix *StaticIndex) Platforms(r collision.Rect) []collision.Rect {
	return ix.query(r, tagSolid, tagPlatform)
}

// OneWays returns one-way platforms sharing a cell with r
func (ix *StaticIndex) OneWays(r collision.Rect) []collision.Rect {
	return ix.query(r, tagPlatform)
}

func (ix *StaticIndex) query(r collision.Rect, tags ...string) []collision.Rect {
	ix.cursor.X, ix.cursor.Y = r.X, r.Y
	ix.cursor.W, ix.cursor.H = r.W, r.H
	ix.cursor.Update()

	check := ix.cursor.Check(0, 0, tags...)
	if check == nil {
		return nil
	}
	objects := check.ObjectsByTags(tags...)

	seen := make(map[*resolv.Object]struct{}, len(objects))
	out := make([]collision.Rect, 0, len(objects))
	for _, obj := range objects {
		if _, dup := seen[obj]; dup {
			continue
		}
		seen[obj] = struct{}{}
		if rect, ok := obj.Data.(collision.Rect); ok {
			out = append(out, rect)
		}
	}

	// grid order is not stable; keep results deterministic
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}
