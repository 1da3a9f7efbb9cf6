// Package gamelog provides the in-game message log shown under the map.
package gamelog

import "fmt"

// Log is an append-only list of messages. The renderer shows the tail;
// everything else appends.
type Log struct {
	lines []string
}

// New creates an empty log.
func New() *Log {
	return &Log{lines: []string{}}
}

// Append adds a formatted message to the log.
func (l *Log) Append(format string, args ...any) {
	if len(args) == 0 {
		l.lines = append(l.lines, format)
		return
	}
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

// Tail returns the last n messages (fewer if the log is shorter).
func (l *Log) Tail(n int) []string {
	if n <= 0 || len(l.lines) == 0 {
		return nil
	}
	if n > len(l.lines) {
		n = len(l.lines)
	}
	out := make([]string, n)
	copy(out, l.lines[len(l.lines)-n:])
	return out
}

// Len returns the number of messages logged so far.
func (l *Log) Len() int {
	return len(l.lines)
}

// Last returns the most recent message, or "" if the log is empty.
func (l *Log) Last() string {
	if len(l.lines) == 0 {
		return ""
	}
	return l.lines[len(l.lines)-1]
}
