package save

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// BestRecord is the cross-session best result: highest gold and lowest
// completion time. BestTime is nil until a run has been completed.
type BestRecord struct {
	BestScore int      `json:"best_score"`
	BestTime  *float64 `json:"best_time"`
}

// Merge folds a finished run into the record: best_score becomes the
// maximum of old and new, best_time the minimum, with an absent old time
// always superseded. Returns the merged record and whether it changed.
func (r BestRecord) Merge(score int, seconds float64) (BestRecord, bool) {
	merged := r
	if score > merged.BestScore {
		merged.BestScore = score
	}
	if merged.BestTime == nil || seconds < *merged.BestTime {
		t := seconds
		merged.BestTime = &t
	}
	changed := merged.BestScore != r.BestScore ||
		(r.BestTime == nil && merged.BestTime != nil) ||
		(r.BestTime != nil && *merged.BestTime != *r.BestTime)
	return merged, changed
}

// BestStore reads and writes the best record, kept in its own file apart
// from save documents.
type BestStore struct {
	path string
}

// NewBestStore creates a best-record store for the given file path.
func NewBestStore(path string) *BestStore {
	return &BestStore{path: path}
}

// Read returns the stored record. A missing or unreadable file yields the
// zero record; the best record is advisory, never load-bearing.
func (s *BestStore) Read() BestRecord {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		return BestRecord{}
	}
	var record BestRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return BestRecord{}
	}
	return record
}

// Write persists the record as indented JSON.
func (s *BestStore) Write(record BestRecord) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create highscore directory: %w", err)
		}
	}
	payload, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal highscore: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0644); err != nil {
		return fmt.Errorf("failed to write highscore file: %w", err)
	}
	return nil
}
