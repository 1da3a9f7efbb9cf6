package world

import (
	"fmt"
	"math/rand"

	"github.com/samdwyer/dungeondelve/data"
	"github.com/samdwyer/dungeondelve/internal/entity"
)

// BuildLevel converts a level definition into a grid, spawning items and
// tier-appropriate enemies. It returns the grid and the player start.
func BuildLevel(def *data.LevelDef, registry *data.EnemyRegistry, rng *rand.Rand) (*Grid, int, int, error) {
	if err := def.Validate(); err != nil {
		return nil, 0, 0, err
	}

	startX, startY := -1, -1
	tiles := make([][]Tile, len(def.Map))
	for y, row := range def.Map {
		tiles[y] = make([]Tile, len(row))
		for x, ch := range []byte(row) {
			var tile Tile
			switch ch {
			case '#':
				tile = NewWall()
			case 'T':
				tile = NewTreasureChest(rng)
			case 'X':
				tile = NewExit()
			default:
				// Everything else stands on a floor tile.
				floor := NewFloor()
				switch ch {
				case '@':
					startX, startY = x, y
				case '$':
					floor.SetItem(entity.NewGold(1))
				case 'p':
					floor.SetItem(entity.NewPotion())
				case 'E':
					spawn := registry.SpawnRandom(rng, def.Tier)
					if spawn == nil {
						return nil, 0, 0, fmt.Errorf("no enemy definitions for tier %d", def.Tier)
					}
					floor.SetEnemy(entity.NewEnemyFromDef(spawn, x, y, rng))
				}
				tile = floor
			}
			tiles[y][x] = tile
		}
	}

	grid, err := NewGrid(tiles)
	if err != nil {
		return nil, 0, 0, err
	}
	return grid, startX, startY, nil
}
