package entity

import (
	"math/rand"

	"github.com/samdwyer/dungeondelve/data"
	"github.com/samdwyer/dungeondelve/internal/gamelog"
)

// Enemy is a hostile creature occupying a tile.
type Enemy struct {
	Kind         string  // Data-driven kind, doubles as the serialization tag
	Name         string  // Display name (e.g., "monster")
	Symbol       rune    // Map glyph
	X, Y         int     // Position in the grid
	HP           int     // Current hit points
	AttackLow    int     // Minimum attack damage
	AttackHigh   int     // Maximum attack damage
	Drops        []Item  // Items transferred to the player on defeat
	CanMove      bool    // Whether the scheduler moves this enemy
	EngageChance float64 // Probability of lunging when adjacent to the player
}

// NewEnemyFromDef spawns an enemy from a data-driven definition. HP is
// rolled fresh per spawn and the drop list is a fresh allocation; spawns
// never alias definition state.
func NewEnemyFromDef(def *data.EnemyDef, x, y int, rng *rand.Rand) *Enemy {
	drops := make([]Item, 0, len(def.Drops))
	for _, tag := range def.Drops {
		item, err := NewItemFromTag(tag)
		if err != nil {
			continue // bad data entry; the enemy just drops nothing extra
		}
		drops = append(drops, item)
	}
	return &Enemy{
		Kind:         def.Kind,
		Name:         def.Name,
		Symbol:       def.GlyphRune(),
		X:            x,
		Y:            y,
		HP:           def.RollHP(rng),
		AttackLow:    def.AttackLow,
		AttackHigh:   def.AttackHigh,
		Drops:        drops,
		CanMove:      true,
		EngageChance: def.EngageChance,
	}
}

// Position returns the enemy's current x, y coordinates.
func (e *Enemy) Position() (int, int) {
	return e.X, e.Y
}

// IsAlive returns true if the enemy has HP remaining.
func (e *Enemy) IsAlive() bool {
	return e.HP > 0
}

// AttackRoll returns a uniform random damage value in [AttackLow, AttackHigh].
func (e *Enemy) AttackRoll(rng *rand.Rand) int {
	if e.AttackHigh <= e.AttackLow {
		return e.AttackLow
	}
	return e.AttackLow + rng.Intn(e.AttackHigh-e.AttackLow+1)
}

// Attack hits the player and reports whether the blow was fatal.
func (e *Enemy) Attack(p *Player, rng *rand.Rand, log *gamelog.Log) bool {
	damage := e.AttackRoll(rng)
	fatal := p.ApplyDamage(damage)
	log.Append("The %s attacks you! You take %d damage!", e.Name, damage)
	return fatal
}

// ApplyDamage reduces the enemy's HP. Removal from the tile and drop
// transfer are the combat resolver's job.
func (e *Enemy) ApplyDamage(amount int) {
	e.HP -= amount
}
