// Package scriptstore holds the append-only array of script source lines
// shared by every loaded process. Lines are never deleted for the
// lifetime of the shell; a PCB's [start, start+length) window stays
// valid and immutable for as long as the PCB exists.
package scriptstore

import (
	"fmt"
	"sync"

	"github.com/osushell/osushell/internal/xerr"
)

// MaxLineLength bounds a single stored line, mirroring the original
// shell's fixed-size line buffer.
const MaxLineLength = 100

// Store is an ordered, append-only sequence of text lines.
type Store struct {
	mu       sync.RWMutex
	lines    []string
	capacity int
}

// New returns a Store capped at capacity lines.
func New(capacity int) *Store {
	return &Store{
		lines:    make([]string, 0, capacity),
		capacity: capacity,
	}
}

// NextIndex reports the insertion point the next Append call will use.
func (s *Store) NextIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lines)
}

// Len reports how many lines are currently stored.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lines)
}

// Append adds one line and returns its index, or ErrScriptStoreFull once
// capacity is exhausted.
func (s *Store) Append(line string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.lines) >= s.capacity {
		return -1, xerr.ErrScriptStoreFull
	}
	if len(line) > MaxLineLength {
		line = line[:MaxLineLength]
	}
	idx := len(s.lines)
	s.lines = append(s.lines, line)
	return idx, nil
}

// Line returns the line stored at idx. Indices beyond the current
// length (but still inside a valid page read) report an empty line,
// matching the pager's "pad trailing slots empty" behaviour.
func (s *Store) Line(idx int) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx < 0 {
		return "", fmt.Errorf("scriptstore: negative index %d", idx)
	}
	if idx >= len(s.lines) {
		return "", nil
	}
	return s.lines[idx], nil
}

// Remaining reports how many more lines may be appended before the
// store is full.
func (s *Store) Remaining() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.capacity - len(s.lines)
}
