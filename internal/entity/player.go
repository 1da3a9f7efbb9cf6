package entity

import "math/rand"

const (
	// MaxInventory is the inventory capacity. Pickups beyond it are rejected.
	MaxInventory = 5
	// BaseMaxHP is the starting maximum HP; it grows by 5 per cleared level.
	BaseMaxHP = 20
)

// Player is the adventurer. It persists across levels: position resets and
// MaxHP grows on a level transition, but gold, inventory, and the equipped
// weapon carry over.
type Player struct {
	X, Y      int
	HP        int
	MaxHP     int
	Gold      int
	Weapon    *Weapon
	Inventory []Item
	AtExit    bool
}

// NewPlayer creates a fresh player at the given position.
func NewPlayer(x, y int) *Player {
	return &Player{
		X:         x,
		Y:         y,
		HP:        BaseMaxHP,
		MaxHP:     BaseMaxHP,
		Inventory: []Item{},
	}
}

// AddItem appends an item to the inventory. It returns false, without
// mutating the inventory, when the capacity is reached.
func (p *Player) AddItem(item Item) bool {
	if len(p.Inventory) >= MaxInventory {
		return false
	}
	p.Inventory = append(p.Inventory, item)
	return true
}

// RemoveItem removes and returns the inventory item at index.
func (p *Player) RemoveItem(index int) Item {
	item := p.Inventory[index]
	p.Inventory = append(p.Inventory[:index], p.Inventory[index+1:]...)
	return item
}

// AttackRoll returns the player's damage for one swing: the equipped
// weapon's roll, or an unarmed 1-2.
func (p *Player) AttackRoll(rng *rand.Rand) int {
	if p.Weapon != nil {
		return p.Weapon.AttackRoll(rng)
	}
	return 1 + rng.Intn(2)
}

// Heal restores HP, clipped at MaxHP, and returns the actual amount healed.
func (p *Player) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	if p.HP+amount > p.MaxHP {
		amount = p.MaxHP - p.HP
	}
	p.HP += amount
	return amount
}

// ApplyDamage reduces HP and reports whether the player is now defeated.
// Defeat is a normal termination signal for the turn loop, not an error.
func (p *Player) ApplyDamage(amount int) bool {
	p.HP -= amount
	return p.HP <= 0
}

// Defeated reports whether HP has been depleted.
func (p *Player) Defeated() bool {
	return p.HP <= 0
}
