package world

import (
	"errors"

	"github.com/samdwyer/dungeondelve/internal/entity"
	"github.com/samdwyer/dungeondelve/internal/gamelog"
)

// Grid is the rectangular tile container for one level. Every row has the
// same length, and all coordinate access goes through bounds checks.
type Grid struct {
	tiles [][]Tile
}

// NewGrid wraps rows of tiles, enforcing the equal-row-length invariant.
func NewGrid(tiles [][]Tile) (*Grid, error) {
	if len(tiles) == 0 || len(tiles[0]) == 0 {
		return nil, errors.New("grid must have at least one row and one column")
	}
	width := len(tiles[0])
	for _, row := range tiles {
		if len(row) != width {
			return nil, errors.New("grid rows must all have the same length")
		}
	}
	return &Grid{tiles: tiles}, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return len(g.tiles) }

// Columns returns the number of columns.
func (g *Grid) Columns() int { return len(g.tiles[0]) }

// InBounds reports whether (x, y) is a valid coordinate.
func (g *Grid) InBounds(x, y int) bool {
	return y >= 0 && y < len(g.tiles) && x >= 0 && x < len(g.tiles[0])
}

// At returns the tile at (x, y), or nil if out of bounds.
func (g *Grid) At(x, y int) Tile {
	if !g.InBounds(x, y) {
		return nil
	}
	return g.tiles[y][x]
}

// EnemiesRemaining counts tiles whose enemy slot is occupied.
func (g *Grid) EnemiesRemaining() int {
	total := 0
	for _, row := range g.tiles {
		for _, tile := range row {
			if tile.Enemy() != nil {
				total++
			}
		}
	}
	return total
}

// Enemies returns every enemy on the grid with its coordinates, scanned in
// row-major order.
func (g *Grid) Enemies() []*entity.Enemy {
	var result []*entity.Enemy
	for _, row := range g.tiles {
		for _, tile := range row {
			if e := tile.Enemy(); e != nil {
				result = append(result, e)
			}
		}
	}
	return result
}

// UnlockExits flips every exit tile to walkable. Called exactly when the
// living-enemy count reaches zero.
func (g *Grid) UnlockExits(log *gamelog.Log) {
	for _, row := range g.tiles {
		for _, tile := range row {
			if exit, ok := tile.(*ExitTile); ok {
				exit.Unlock()
				log.Append("You hear a distant click. The exit has unlocked.")
			}
		}
	}
}
