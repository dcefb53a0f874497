// Package testutil provides deterministic stand-ins for the engine's
// external collaborators: canned duration probers and sequential ID
// generators. Tests use these to make command and resolution output
// exactly reproducible.
package testutil

import (
	"fmt"
	"sync"
)

// IDSequence generates "prefix-1", "prefix-2", ... identities.
//
// Unlike the production UUIDv7 generator, the sequence can be reset so
// the same scenario produces identical IDs on every run.
//
// Thread-safe: all methods use an internal mutex.
type IDSequence struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewIDSequence creates a sequence with the given prefix.
func NewIDSequence(prefix string) *IDSequence {
	return &IDSequence{prefix: prefix}
}

// Generate returns the next ID in the sequence.
func (s *IDSequence) Generate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("%s-%d", s.prefix, s.n)
}

// Reset restarts the sequence. The next Generate returns "prefix-1".
func (s *IDSequence) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n = 0
}
