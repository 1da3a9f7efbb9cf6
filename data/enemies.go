package data

import (
	"errors"
	"math/rand"

	"github.com/gdamore/tcell/v2"
)

// EnemyDef defines an enemy kind loaded from JSON. Kinds are grouped by
// tier: each level spawns only from its own tier, picked by spawn weight.
type EnemyDef struct {
	Kind         string   `json:"kind"`         // Unique identifier (e.g., "enemy_l2")
	Name         string   `json:"name"`         // Display name (e.g., "monster")
	Glyph        string   `json:"glyph"`        // Single character for rendering (e.g., "E")
	Color        string   `json:"color"`        // Hex color code (e.g., "#D70000")
	Tier         int      `json:"tier"`         // Level tier this kind belongs to
	HPMin        int      `json:"hpMin"`        // Lower bound of the fresh HP roll
	HPMax        int      `json:"hpMax"`        // Upper bound of the fresh HP roll
	AttackLow    int      `json:"attackLow"`    // Minimum attack damage
	AttackHigh   int      `json:"attackHigh"`   // Maximum attack damage
	EngageChance float64  `json:"engageChance"` // Probability of lunging when adjacent
	Drops        []string `json:"drops"`        // Item type tags dropped on defeat
	SpawnWeight  int      `json:"spawnWeight"`  // Relative spawn frequency within the tier
}

// GlyphRune returns the glyph as a rune for rendering.
func (e *EnemyDef) GlyphRune() rune {
	if len(e.Glyph) == 0 {
		return '?'
	}
	return rune(e.Glyph[0])
}

// TCellColor returns the color as a tcell.Color.
func (e *EnemyDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(e.Color)
	if err != nil {
		return tcell.ColorWhite // fallback
	}
	return color
}

// RollHP returns a fresh HP value in [HPMin, HPMax]. Every spawn rolls
// independently; definitions never share a frozen roll.
func (e *EnemyDef) RollHP(rng *rand.Rand) int {
	if e.HPMax <= e.HPMin {
		return e.HPMin
	}
	return e.HPMin + rng.Intn(e.HPMax-e.HPMin+1)
}

// EnemiesFile represents the structure of enemies.json.
type EnemiesFile struct {
	Enemies []EnemyDef `json:"enemies"`
}

// LoadEnemies loads enemy definitions from the embedded enemies.json file.
func LoadEnemies() ([]EnemyDef, error) {
	file, err := Load[EnemiesFile]("enemies.json")
	if err != nil {
		return nil, err
	}
	return file.Enemies, nil
}

// =============================================================================
// EnemyRegistry
// =============================================================================

// EnemyRegistry holds loaded enemy definitions and provides spawning utilities.
type EnemyRegistry struct {
	enemies []EnemyDef
}

// NewEnemyRegistry creates a registry from loaded enemy definitions.
func NewEnemyRegistry(enemies []EnemyDef) *EnemyRegistry {
	return &EnemyRegistry{enemies: enemies}
}

// LoadEnemyRegistry loads and creates a registry from the embedded enemies.json.
func LoadEnemyRegistry() (*EnemyRegistry, error) {
	enemies, err := LoadEnemies()
	if err != nil {
		return nil, err
	}
	if len(enemies) == 0 {
		return nil, errors.New("no enemies loaded from enemies.json")
	}
	return NewEnemyRegistry(enemies), nil
}

// MustLoadEnemyRegistry loads a registry, panicking on error.
func MustLoadEnemyRegistry() *EnemyRegistry {
	registry, err := LoadEnemyRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// SpawnRandom selects a random enemy definition for the given tier using
// weighted probability. Returns nil if the tier has no definitions.
func (r *EnemyRegistry) SpawnRandom(rng *rand.Rand, tier int) *EnemyDef {
	totalWeight := 0
	for i := range r.enemies {
		if r.enemies[i].Tier == tier {
			totalWeight += r.enemies[i].SpawnWeight
		}
	}
	if totalWeight <= 0 {
		return nil
	}

	roll := rng.Intn(totalWeight)
	cumulative := 0
	for i := range r.enemies {
		if r.enemies[i].Tier != tier {
			continue
		}
		cumulative += r.enemies[i].SpawnWeight
		if roll < cumulative {
			return &r.enemies[i]
		}
	}
	return nil
}

// GetByKind returns the enemy definition with the given kind, or nil if not found.
func (r *EnemyRegistry) GetByKind(kind string) *EnemyDef {
	for i := range r.enemies {
		if r.enemies[i].Kind == kind {
			return &r.enemies[i]
		}
	}
	return nil
}

// Default returns the baseline definition used when a save document names
// an unknown enemy kind.
func (r *EnemyRegistry) Default() *EnemyDef {
	if def := r.GetByKind("enemy"); def != nil {
		return def
	}
	if len(r.enemies) > 0 {
		return &r.enemies[0]
	}
	return nil
}

// All returns all enemy definitions.
func (r *EnemyRegistry) All() []EnemyDef {
	return r.enemies
}

// Count returns the number of enemy kinds in the registry.
func (r *EnemyRegistry) Count() int {
	return len(r.enemies)
}
