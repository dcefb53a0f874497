package engine

import "sync/atomic"

// Clock is a monotonic logical clock stamping journal entries.
//
// Sequence numbers make the journal's order explicit and replayable
// without wall-clock ties. Safe for concurrent use, though the engine's
// one-command-at-a-time design means a single caller in practice.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock resuming from a specific sequence number,
// used when reopening a journaled session.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next returns the next sequence number and increments the clock.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
