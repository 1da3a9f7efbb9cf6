package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNoSave indicates that no save file exists at the store's path.
var ErrNoSave = errors.New("no save file")

// DecodeError wraps a save document that could not be parsed at all.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "corrupt save document: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Store reads and writes save documents at a fixed file path.
type Store struct {
	path string
}

// NewStore creates a store for the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the store's file path.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether a save file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Write persists a document as indented JSON, creating parent directories
// as needed.
func (s *Store) Write(doc *Document) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create save directory: %w", err)
		}
	}
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal save document: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0644); err != nil {
		return fmt.Errorf("failed to write save file: %w", err)
	}
	return nil
}

// Read loads and validates the document. A missing file yields ErrNoSave,
// unparsable content a *DecodeError, and a structurally bad document a
// *ValidationError. In every failure case nothing is returned, so the
// caller's current state stays untouched.
func (s *Store) Read() (*Document, error) {
	if _, err := os.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSave
		}
		return nil, fmt.Errorf("failed to stat save file: %w", err)
	}

	payload, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read save file: %w", err)
	}

	// Validation runs over the raw keyed structure first, so missing
	// fields are caught before any typed decoding happens.
	var raw map[string]any
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if err := Validate(raw); err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return &doc, nil
}
