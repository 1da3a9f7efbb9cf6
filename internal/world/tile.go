// Package world provides the dungeon grid, tiles, level building, and the
// enemy movement scheduler.
package world

import (
	"math/rand"

	"github.com/samdwyer/dungeondelve/internal/entity"
	"github.com/samdwyer/dungeondelve/internal/gamelog"
)

// Tile is one grid cell. Each tile exclusively owns at most one item and
// at most one enemy occupant at a time.
type Tile interface {
	// Symbol returns the tile's map glyph (occupants are drawn over it).
	Symbol() rune
	// Walkable reports whether the player may step onto the tile.
	Walkable() bool
	// TypeTag returns the serialization tag; it doubles as the variant tag.
	TypeTag() string

	Item() entity.Item
	SetItem(entity.Item)
	Enemy() *entity.Enemy
	SetEnemy(*entity.Enemy)

	// OnEnter runs when the player moves toward the tile. It fires for
	// blocked tiles too, so a failed move still reports why.
	OnEnter(p *entity.Player, g *Grid, log *gamelog.Log)
	// OnInteract runs when the player takes/interacts on the tile.
	OnInteract(p *entity.Player, log *gamelog.Log)
}

// occupants holds the item/enemy slots shared by all tile variants.
type occupants struct {
	item  entity.Item
	enemy *entity.Enemy
}

func (o *occupants) Item() entity.Item        { return o.item }
func (o *occupants) SetItem(i entity.Item)    { o.item = i }
func (o *occupants) Enemy() *entity.Enemy     { return o.enemy }
func (o *occupants) SetEnemy(e *entity.Enemy) { o.enemy = e }

// =============================================================================
// Wall
// =============================================================================

// WallTile is impassable.
type WallTile struct {
	occupants
}

// NewWall creates a wall tile.
func NewWall() *WallTile { return &WallTile{} }

func (t *WallTile) Symbol() rune    { return '#' }
func (t *WallTile) Walkable() bool  { return false }
func (t *WallTile) TypeTag() string { return "Wall" }

func (t *WallTile) OnEnter(p *entity.Player, g *Grid, log *gamelog.Log) {
	log.Append("You bump into a wall.")
}

func (t *WallTile) OnInteract(p *entity.Player, log *gamelog.Log) {
	log.Append("Nothing happens.")
}

// =============================================================================
// Floor
// =============================================================================

// FloorTile is open ground that may hold an item or an enemy.
type FloorTile struct {
	occupants
}

// NewFloor creates a floor tile.
func NewFloor() *FloorTile { return &FloorTile{} }

func (t *FloorTile) Symbol() rune    { return '.' }
func (t *FloorTile) Walkable() bool  { return true }
func (t *FloorTile) TypeTag() string { return "Floor" }

// OnEnter reveals what is on the tile.
func (t *FloorTile) OnEnter(p *entity.Player, g *Grid, log *gamelog.Log) {
	if t.item != nil {
		log.Append("You find a %s. Press [T] to take.", lower(t.item.Name()))
	} else if t.enemy != nil {
		log.Append("There is a %s in your way. Press [F] to fight. Press [R] to run away.", t.enemy.Name)
	}
}

// OnInteract picks up the tile's item, clearing the slot on success.
func (t *FloorTile) OnInteract(p *entity.Player, log *gamelog.Log) {
	if t.item == nil {
		log.Append("There's nothing interesting on the floor.")
		return
	}
	if t.item.OnPickup(p, log) {
		t.item = nil
	}
}

// =============================================================================
// Treasure chest
// =============================================================================

// TreasureChestTile holds a fixed one-time reward set: one randomly chosen
// weapon and one potion. Contents only ever shrink.
type TreasureChestTile struct {
	occupants
	rewards []entity.Item
}

// NewTreasureChest creates a chest with its reward set fixed at creation.
func NewTreasureChest(rng *rand.Rand) *TreasureChestTile {
	return &TreasureChestTile{
		rewards: []entity.Item{entity.NewRandomWeapon(rng), entity.NewPotion()},
	}
}

func (t *TreasureChestTile) Symbol() rune    { return 'T' }
func (t *TreasureChestTile) Walkable() bool  { return true }
func (t *TreasureChestTile) TypeTag() string { return "TreasureChest" }

// Rewards returns the remaining chest contents.
func (t *TreasureChestTile) Rewards() []entity.Item {
	return t.rewards
}

// RemoveReward removes the reward at index after a successful take.
func (t *TreasureChestTile) RemoveReward(index int) {
	t.rewards = append(t.rewards[:index], t.rewards[index+1:]...)
}

func (t *TreasureChestTile) OnEnter(p *entity.Player, g *Grid, log *gamelog.Log) {
	if len(t.rewards) > 0 {
		log.Append("You find a treasure chest. Press [T] to open.")
	} else {
		log.Append("You find an empty treasure chest.")
	}
}

// OnInteract only reports state; the indexed take-one-or-back loop is the
// game controller's job because it needs player input.
func (t *TreasureChestTile) OnInteract(p *entity.Player, log *gamelog.Log) {
	if len(t.rewards) == 0 {
		log.Append("The chest is empty.")
	}
}

// =============================================================================
// Exit
// =============================================================================

// ExitTile is the dungeon exit. It is sealed (non-walkable) until the
// grid's living-enemy count reaches zero, and unlocks exactly once.
type ExitTile struct {
	occupants
	unlocked bool
}

// NewExit creates a sealed exit tile.
func NewExit() *ExitTile { return &ExitTile{} }

func (t *ExitTile) Symbol() rune    { return 'X' }
func (t *ExitTile) Walkable() bool  { return t.unlocked }
func (t *ExitTile) TypeTag() string { return "Exit" }

// Unlock makes the exit walkable. Idempotent.
func (t *ExitTile) Unlock() { t.unlocked = true }

// SetWalkable restores the walkable flag from a save document.
func (t *ExitTile) SetWalkable(walkable bool) { t.unlocked = walkable }

// OnEnter reports the seal while enemies remain; once unlocked, stepping
// in marks the player as standing at the exit.
func (t *ExitTile) OnEnter(p *entity.Player, g *Grid, log *gamelog.Log) {
	remaining := g.EnemiesRemaining()
	if remaining > 0 {
		log.Append("The exit is sealed by magic. %d enemy(ies) remain.", remaining)
		return
	}
	p.AtExit = true
}

func (t *ExitTile) OnInteract(p *entity.Player, log *gamelog.Log) {}

// lower is a tiny ASCII-lowercase helper for item names.
func lower(s string) string {
	b := []byte(s)
	for i := range b {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}
