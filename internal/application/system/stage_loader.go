package system

import (
	"github.com/younwookim/luckie/internal/domain/entity"
	"github.com/younwookim/luckie/internal/infrastructure/config"
)

const defaultTileSize = 16

var tileTypes = map[string]entity.TileType{
	"wall":   entity.TileWall,
	"spike":  entity.TileSpike,
	"oneway": entity.TileOneWay,
}

// LoadStage converts a StageConfig into a Stage. Width is in pixels; the
// row count sets the height. Unmapped characters are empty tiles.
func LoadStage(cfg *config.StageConfig) *entity.Stage {
	tileSize := cfg.Size.TileSize
	if tileSize <= 0 {
		tileSize = defaultTileSize
	}
	tileWidth := cfg.Size.Width / tileSize
	tileHeight := len(cfg.Layers.Collision)

	tiles := make([][]entity.Tile, tileHeight)
	for y, row := range cfg.Layers.Collision {
		tiles[y] = make([]entity.Tile, tileWidth)
		for x, char := range []rune(row) {
			if x >= tileWidth {
				break
			}
			mapping, ok := cfg.TileMapping[string(char)]
			if !ok {
				continue
			}
			tiles[y][x] = entity.Tile{
				Type:   tileTypes[mapping.Type],
				Solid:  mapping.Solid,
				Damage: mapping.Damage,
			}
		}
	}

	return &entity.Stage{
		Width:    tileWidth,
		Height:   tileHeight,
		TileSize: tileSize,
		Tiles:    tiles,
		SpawnX:   cfg.PlayerSpawn.X,
		SpawnY:   cfg.PlayerSpawn.Y,
	}
}
