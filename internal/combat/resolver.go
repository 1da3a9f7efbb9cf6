// Package combat provides fight and flee resolution against the enemy on
// the player's tile.
package combat

import (
	"math/rand"

	"github.com/samdwyer/dungeondelve/internal/entity"
	"github.com/samdwyer/dungeondelve/internal/gamelog"
	"github.com/samdwyer/dungeondelve/internal/world"
)

// DropDecision is raised when a defeated enemy's drop does not fit in the
// player's full inventory. The resolver never blocks on input; the game
// controller prompts the player and resumes with the chosen answer.
type DropDecision struct {
	EnemyName string
	Item      entity.Item
}

// Outcome describes what one fight or flee attempt did.
type Outcome struct {
	EnemyDefeated  bool
	PlayerDefeated bool
	Fled           bool
	ExitUnlocked   bool
	// Pending holds drop items awaiting a swap-or-discard decision.
	Pending []DropDecision
}

// Resolver resolves combat on a grid with an injected random source.
type Resolver struct {
	rng *rand.Rand
}

// NewResolver creates a resolver using the given random source.
func NewResolver(rng *rand.Rand) *Resolver {
	return &Resolver{rng: rng}
}

// Fight swings at the enemy on the tile: the equipped weapon's roll, or an
// unarmed 1-2. A surviving enemy immediately counter-attacks.
func (r *Resolver) Fight(g *world.Grid, p *entity.Player, tile world.Tile, log *gamelog.Log) Outcome {
	enemy := tile.Enemy()
	if enemy == nil {
		log.Append("There is nothing to fight.")
		return Outcome{}
	}

	damage := p.AttackRoll(r.rng)
	enemy.ApplyDamage(damage)

	if enemy.IsAlive() {
		log.Append("You attack the %s. It takes %d damage (HP: %d).", enemy.Name, damage, enemy.HP)
		fatal := enemy.Attack(p, r.rng, log)
		return Outcome{PlayerDefeated: fatal}
	}

	log.Append("The %s takes %d damage (HP: 0).", enemy.Name, damage)
	log.Append("The %s is defeated!", enemy.Name)
	return r.handleDefeat(g, p, tile, enemy, log)
}

// handleDefeat removes the enemy from its tile, unlocks the exits when it
// was the last one standing, and transfers its drops to the player. Drops
// that do not fit come back as pending decisions.
func (r *Resolver) handleDefeat(g *world.Grid, p *entity.Player, tile world.Tile, enemy *entity.Enemy, log *gamelog.Log) Outcome {
	tile.SetEnemy(nil)

	outcome := Outcome{EnemyDefeated: true}
	if g.EnemiesRemaining() == 0 {
		g.UnlockExits(log)
		outcome.ExitUnlocked = true
	}

	for _, item := range enemy.Drops {
		if p.AddItem(item) {
			log.Append("The %s dropped a %s. You put it in your inventory.", enemy.Name, item.Name())
			continue
		}
		log.Append("The %s dropped a %s, but your inventory is too full.", enemy.Name, item.Name())
		outcome.Pending = append(outcome.Pending, DropDecision{EnemyName: enemy.Name, Item: item})
	}
	return outcome
}

// Flee rolls a d6: 3 or under ends the encounter, anything else provokes
// an immediate counter-attack.
func (r *Resolver) Flee(p *entity.Player, tile world.Tile, log *gamelog.Log) Outcome {
	enemy := tile.Enemy()
	if enemy == nil {
		log.Append("There is nothing to runaway from.")
		return Outcome{}
	}

	if 1+r.rng.Intn(6) <= 3 {
		log.Append("You successfully run away.")
		return Outcome{Fled: true}
	}

	log.Append("You try to run away but fail.")
	fatal := enemy.Attack(p, r.rng, log)
	return Outcome{PlayerDefeated: fatal}
}

// ResolveDrop finishes a pending drop decision: swapIndex < 0 discards the
// drop, otherwise the inventory item at swapIndex is thrown away and the
// drop takes its place.
func (r *Resolver) ResolveDrop(p *entity.Player, decision DropDecision, swapIndex int, log *gamelog.Log) {
	if swapIndex < 0 {
		log.Append("You decide not to remove anything.")
		return
	}
	removed := p.RemoveItem(swapIndex)
	p.Inventory = append(p.Inventory, decision.Item)
	log.Append("You throw a %s away and take the %s instead.", removed.Name(), decision.Item.Name())
}
