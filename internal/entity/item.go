// Package entity provides game entities: items, the player, and enemies.
package entity

import (
	"fmt"
	"math/rand"

	"github.com/samdwyer/dungeondelve/internal/gamelog"
)

// Item is the behavior contract shared by everything that can sit on a
// tile, live in the inventory, or hang from the player's belt.
type Item interface {
	// Name returns the display name (e.g., "Gold", "Sword").
	Name() string
	// Symbol returns the map glyph for the item.
	Symbol() rune
	// TypeTag returns the serialization tag; it doubles as the variant tag.
	TypeTag() string
	// OnPickup applies the pickup effect. It returns false if the item was
	// rejected (inventory full) and must stay where it is.
	OnPickup(p *Player, log *gamelog.Log) bool
	// OnUse applies the use effect (heal, equip). Gold has no use effect.
	OnUse(p *Player, rng *rand.Rand, log *gamelog.Log)
}

// =============================================================================
// Gold
// =============================================================================

// Gold is currency. Pickup always succeeds and never occupies inventory.
type Gold struct {
	Amount int
}

// NewGold creates a gold pile of the given amount.
func NewGold(amount int) *Gold {
	return &Gold{Amount: amount}
}

func (g *Gold) Name() string    { return "Gold" }
func (g *Gold) Symbol() rune    { return '$' }
func (g *Gold) TypeTag() string { return "Gold" }

// OnPickup adds the pile to the player's purse.
func (g *Gold) OnPickup(p *Player, log *gamelog.Log) bool {
	p.Gold += g.Amount
	log.Append("You pick up %d gold.", g.Amount)
	return true
}

func (g *Gold) OnUse(p *Player, rng *rand.Rand, log *gamelog.Log) {}

// =============================================================================
// Potion
// =============================================================================

// Potion heals a random amount when used.
type Potion struct{}

// NewPotion creates a potion.
func NewPotion() *Potion {
	return &Potion{}
}

func (po *Potion) Name() string    { return "Potion" }
func (po *Potion) Symbol() rune    { return 'p' }
func (po *Potion) TypeTag() string { return "Potion" }

// OnPickup stores the potion in the inventory if there is room.
func (po *Potion) OnPickup(p *Player, log *gamelog.Log) bool {
	if !p.AddItem(po) {
		log.Append("Your inventory is full. Item cannot be picked up.")
		return false
	}
	log.Append("You pick up a Potion.")
	return true
}

// OnUse heals a uniform amount in [3, MaxHP], clipped at MaxHP. A full
// player gets nothing.
func (po *Potion) OnUse(p *Player, rng *rand.Rand, log *gamelog.Log) {
	if p.HP == p.MaxHP {
		log.Append("Your health is full. Nothing happens.")
		return
	}
	amount := 3 + rng.Intn(p.MaxHP-3+1)
	healed := p.Heal(amount)
	log.Append("Your health increases by %d.", healed)
}

// =============================================================================
// Weapon
// =============================================================================

// Weapon deals a uniform random amount of damage in [AttackLow, AttackHigh]
// per swing.
type Weapon struct {
	name       string
	AttackLow  int
	AttackHigh int
}

// NewWeapon creates a weapon with an explicit damage range.
func NewWeapon(name string, attackLow, attackHigh int) *Weapon {
	return &Weapon{name: name, AttackLow: attackLow, AttackHigh: attackHigh}
}

// NewDagger creates a Dagger (2-3 damage).
func NewDagger() *Weapon { return NewWeapon("Dagger", 2, 3) }

// NewSword creates a Sword (3-4 damage).
func NewSword() *Weapon { return NewWeapon("Sword", 3, 4) }

// NewAxe creates an Axe (5-6 damage).
func NewAxe() *Weapon { return NewWeapon("Axe", 5, 6) }

// NewRandomWeapon picks one of the three weapon tiers uniformly.
func NewRandomWeapon(rng *rand.Rand) *Weapon {
	switch rng.Intn(3) {
	case 0:
		return NewDagger()
	case 1:
		return NewSword()
	default:
		return NewAxe()
	}
}

func (w *Weapon) Name() string    { return w.name }
func (w *Weapon) Symbol() rune    { return 'w' }
func (w *Weapon) TypeTag() string { return w.name }

// AttackRoll returns a uniform random damage value in [AttackLow, AttackHigh].
func (w *Weapon) AttackRoll(rng *rand.Rand) int {
	if w.AttackHigh <= w.AttackLow {
		return w.AttackLow
	}
	return w.AttackLow + rng.Intn(w.AttackHigh-w.AttackLow+1)
}

// OnPickup stores the weapon in the inventory if there is room.
func (w *Weapon) OnPickup(p *Player, log *gamelog.Log) bool {
	if !p.AddItem(w) {
		log.Append("Your inventory is full. The %s cannot be picked up.", w.name)
		return false
	}
	return true
}

// OnUse equips the weapon. A previously equipped weapon goes back into the
// inventory. The caller removes the used weapon from the inventory first,
// so the swap never changes inventory length by more than one.
func (w *Weapon) OnUse(p *Player, rng *rand.Rand, log *gamelog.Log) {
	previous := p.Weapon
	p.Weapon = w
	log.Append("You equipped the %s", w.name)
	if previous != nil {
		p.Inventory = append(p.Inventory, previous)
		log.Append("You place your %s back in your inventory.", previous.Name())
	}
}

// NewItemFromTag constructs the canonical item for a serialization tag.
// Unknown tags are an error; persistence treats that as fatal.
func NewItemFromTag(tag string) (Item, error) {
	switch tag {
	case "Gold":
		return NewGold(1), nil
	case "Potion":
		return NewPotion(), nil
	case "Dagger":
		return NewDagger(), nil
	case "Sword":
		return NewSword(), nil
	case "Axe":
		return NewAxe(), nil
	default:
		return nil, fmt.Errorf("unknown item type %q", tag)
	}
}
