package save

import (
	"fmt"

	"github.com/samdwyer/dungeondelve/internal/entity"
)

// ValidationError reports a save document that parsed as JSON but fails
// the structural checks. Loads rejected this way leave state untouched.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid save document: " + e.Reason
}

// Validate checks a raw decoded document before any state is built from
// it: it must be a keyed structure containing player, grid, and
// level_index; player hp must lie within [0, MAX_HP]; grid dimensions must
// be positive; play_time, if present, must be numeric.
func Validate(raw map[string]any) error {
	for _, key := range []string{"player", "grid", "level_index"} {
		if _, ok := raw[key]; !ok {
			return &ValidationError{Reason: fmt.Sprintf("missing %q", key)}
		}
	}

	player, ok := raw["player"].(map[string]any)
	if !ok {
		return &ValidationError{Reason: "player is not a keyed structure"}
	}
	hp := numberOr(player["hp"], 0)
	maxHP := numberOr(player["MAX_HP"], entity.BaseMaxHP)
	if hp < 0 || hp > maxHP {
		return &ValidationError{Reason: fmt.Sprintf("player hp %v outside [0, %v]", hp, maxHP)}
	}

	grid, ok := raw["grid"].(map[string]any)
	if !ok {
		return &ValidationError{Reason: "grid is not a keyed structure"}
	}
	if numberOr(grid["rows"], 0) <= 0 || numberOr(grid["columns"], 0) <= 0 {
		return &ValidationError{Reason: "grid dimensions must be positive"}
	}

	if playTime, present := raw["play_time"]; present {
		if _, ok := playTime.(float64); !ok {
			return &ValidationError{Reason: "play_time is not numeric"}
		}
	}
	return nil
}

// numberOr returns v as a float64, or fallback if v is absent or not a
// JSON number.
func numberOr(v any, fallback float64) float64 {
	if n, ok := v.(float64); ok {
		return n
	}
	return fallback
}
