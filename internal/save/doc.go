// Package save implements the versioned save document, its validation,
// and the file stores for game state and the best record.
package save

// Version is the save document format version.
const Version = 1

// ItemDoc is the serialized form of an item. Type carries the variant tag;
// the remaining fields are variant-specific.
type ItemDoc struct {
	Type       string `json:"type"`
	Amount     int    `json:"amount,omitempty"`
	Name       string `json:"name,omitempty"`
	AttackLow  int    `json:"attack_low,omitempty"`
	AttackHigh int    `json:"attack_high,omitempty"`
}

// EnemyDoc is the serialized form of an enemy.
type EnemyDoc struct {
	Type         string    `json:"type"`
	Name         string    `json:"name"`
	Symbol       string    `json:"symbol"`
	X            int       `json:"x"`
	Y            int       `json:"y"`
	HP           int       `json:"hp"`
	AttackLow    int       `json:"attack_damage_low"`
	AttackHigh   int       `json:"attack_damage_high"`
	CanMove      *bool     `json:"can_move"`
	EngageChance *float64  `json:"engage_chance"`
	ItemDrop     []ItemDoc `json:"item_drop"`
}

// TileDoc is the serialized form of a tile and its occupants.
type TileDoc struct {
	Type     string    `json:"type"`
	Symbol   string    `json:"symbol"`
	Walkable bool      `json:"walkable"`
	Item     *ItemDoc  `json:"item"`
	Enemy    *EnemyDoc `json:"enemy"`
}

// GridDoc is the serialized form of the grid.
type GridDoc struct {
	Rows    int         `json:"rows"`
	Columns int         `json:"columns"`
	Tiles   [][]TileDoc `json:"tiles"`
}

// PlayerDoc is the serialized form of the player.
type PlayerDoc struct {
	X         int       `json:"x"`
	Y         int       `json:"y"`
	HP        int       `json:"hp"`
	Gold      int       `json:"gold"`
	AtExit    bool      `json:"at_exit"`
	MaxHP     int       `json:"MAX_HP"`
	Weapon    *ItemDoc  `json:"weapon"`
	Inventory []ItemDoc `json:"inventory"`
}

// Document is the full versioned save document.
type Document struct {
	Version    int        `json:"version"`
	LevelIndex int        `json:"level_index"`
	PlayTime   float64    `json:"play_time"`
	Player     *PlayerDoc `json:"player"`
	Grid       *GridDoc   `json:"grid"`
}
