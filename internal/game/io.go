// Package game provides the controller: the command dispatch state machine
// that owns the grid and player and drives turns, levels, and persistence.
package game

// IO is the controller's only channel to the outside world: it renders a
// read-only view and reads one line of input per prompt. The terminal
// implementation lives in internal/ui; tests use a scripted fake.
type IO interface {
	// Render draws the current view. Implementations must not retain or
	// mutate it.
	Render(v View)
	// ReadLine blocks for one line of input. An error means the input
	// source is gone and the session should end gracefully.
	ReadLine() (string, error)
}

// View is the read-only render snapshot: composed map glyphs plus the
// status panel values and the log tail.
type View struct {
	// Symbols holds one composed glyph per cell: the player overlays the
	// item, the item overlays the enemy, the enemy overlays the tile.
	Symbols [][]rune

	HP               int
	MaxHP            int
	Gold             int
	WeaponName       string
	AttackText       string
	InventoryText    string
	EnemiesRemaining int

	Log []string
}
