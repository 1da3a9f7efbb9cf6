package data

import (
	"errors"
	"fmt"
	"strings"
)

// LevelDef defines one dungeon level: its map text and the enemy tier
// spawned on it. Map symbols: '#' wall, '.' floor, 'T' treasure chest,
// 'X' exit, '$' gold, 'p' potion, 'E' enemy, '@' player start.
type LevelDef struct {
	Name string   `json:"name"` // Display name (e.g., "Level 1")
	Tier int      `json:"tier"` // Enemy tier spawned on this level
	Map  []string `json:"map"`  // Map text, one string per row
}

// Validate checks that the map is rectangular and has a player start.
func (l *LevelDef) Validate() error {
	if len(l.Map) == 0 {
		return fmt.Errorf("level %q has an empty map", l.Name)
	}
	width := len(l.Map[0])
	for y, row := range l.Map {
		if len(row) != width {
			return fmt.Errorf("level %q row %d has length %d, want %d", l.Name, y, len(row), width)
		}
	}
	if !strings.Contains(strings.Join(l.Map, ""), "@") {
		return fmt.Errorf("level %q has no player start", l.Name)
	}
	return nil
}

// LevelsFile represents the structure of levels.json.
type LevelsFile struct {
	Levels []LevelDef `json:"levels"`
}

// Source is the ordered list of levels the game plays through.
type Source struct {
	levels []LevelDef
}

// NewSource creates a source from explicit level definitions.
func NewSource(levels []LevelDef) *Source {
	return &Source{levels: levels}
}

// LoadSource loads and validates the embedded levels.json.
func LoadSource() (*Source, error) {
	file, err := Load[LevelsFile]("levels.json")
	if err != nil {
		return nil, err
	}
	if len(file.Levels) == 0 {
		return nil, errors.New("no levels loaded from levels.json")
	}
	for i := range file.Levels {
		if err := file.Levels[i].Validate(); err != nil {
			return nil, err
		}
	}
	return &Source{levels: file.Levels}, nil
}

// MustLoadSource loads the level source, panicking on error.
func MustLoadSource() *Source {
	source, err := LoadSource()
	if err != nil {
		panic(err)
	}
	return source
}

// Count returns the number of levels.
func (s *Source) Count() int {
	return len(s.levels)
}

// Level returns the definition for the 1-based level index.
func (s *Source) Level(index int) (*LevelDef, error) {
	if index < 1 || index > len(s.levels) {
		return nil, fmt.Errorf("level index %d out of range [1, %d]", index, len(s.levels))
	}
	return &s.levels[index-1], nil
}
