package world

import (
	"math/rand"

	"github.com/samdwyer/dungeondelve/internal/entity"
	"github.com/samdwyer/dungeondelve/internal/gamelog"
)

// point is a reserved destination within one scheduling pass.
type point struct{ x, y int }

// blockedForEnemy reports whether an enemy may not move into (x, y):
// out of bounds, non-walkable, occupied by an enemy or item, or a chest.
func blockedForEnemy(g *Grid, x, y int) bool {
	if !g.InBounds(x, y) {
		return true
	}
	tile := g.At(x, y)
	if !tile.Walkable() {
		return true
	}
	if tile.Enemy() != nil || tile.Item() != nil {
		return true
	}
	if _, isChest := tile.(*TreasureChestTile); isChest {
		return true
	}
	return false
}

// neighbors returns the four orthogonally adjacent coordinates.
func neighbors(x, y int) [4]point {
	return [4]point{{x, y - 1}, {x, y + 1}, {x - 1, y}, {x + 1, y}}
}

// MoveEnemies runs one scheduling pass: every living, movement-capable
// enemy gets one step. Evaluation order is shuffled to avoid positional
// bias, and a reservation set keeps two enemies from picking the same
// destination in the same pass. Evaluation is strictly sequential: later
// enemies see the consequences of earlier ones.
//
// Returns true if an engaging enemy's attack defeated the player.
func MoveEnemies(g *Grid, p *entity.Player, rng *rand.Rand, log *gamelog.Log) bool {
	enemies := g.Enemies()
	rng.Shuffle(len(enemies), func(i, j int) {
		enemies[i], enemies[j] = enemies[j], enemies[i]
	})

	reserved := make(map[point]struct{})

	for _, enemy := range enemies {
		x, y := enemy.Position()
		// Skip enemies removed earlier in this pass.
		if g.At(x, y).Enemy() != enemy {
			continue
		}
		if !enemy.CanMove {
			continue
		}
		if x == p.X && y == p.Y {
			continue
		}

		// Adjacent to the player: probabilistically lunge and attack.
		if abs(x-p.X)+abs(y-p.Y) == 1 {
			if _, taken := reserved[point{p.X, p.Y}]; taken {
				continue
			}
			if rng.Float64() < enemy.EngageChance {
				g.At(x, y).SetEnemy(nil)
				g.At(p.X, p.Y).SetEnemy(enemy)
				enemy.X, enemy.Y = p.X, p.Y
				reserved[point{p.X, p.Y}] = struct{}{}
				log.Append("A %s lunges at you!", enemy.Name)
				if enemy.Attack(p, rng, log) {
					return true
				}
				log.Append("Press [F] to fight, [R] to run away, or [U] to use an item.")
			}
			continue
		}

		// Wander: pick uniformly among the unblocked, unreserved neighbors.
		var candidates []point
		for _, n := range neighbors(x, y) {
			if _, taken := reserved[n]; taken {
				continue
			}
			if blockedForEnemy(g, n.x, n.y) {
				continue
			}
			candidates = append(candidates, n)
		}
		if len(candidates) == 0 {
			continue
		}

		dest := candidates[rng.Intn(len(candidates))]
		g.At(x, y).SetEnemy(nil)
		g.At(dest.x, dest.y).SetEnemy(enemy)
		enemy.X, enemy.Y = dest.x, dest.y
		reserved[dest] = struct{}{}
	}
	return false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
