package engine

import (
	"context"
	"fmt"

	"github.com/roach88/montage/internal/alias"
	"github.com/roach88/montage/internal/resolve"
)

// CoordinatorState tracks whether a propagation pass is running.
type CoordinatorState int

const (
	StateIdle CoordinatorState = iota
	StatePropagating
)

// Coordinator re-resolves derived timing after a mutation.
//
// Propagation serves exactly two kinds of dependents: alias references
// and "end"-length clips. Sibling clips after a changed index are NOT
// shifted; positions are intent-stated, never auto-cascading.
//
// The pass is synchronous; asynchronous smart resolution (duration
// probes) happens inside the command that needed it, before the engine
// hands the delta to the coordinator.
type Coordinator struct {
	state CoordinatorState
}

// State returns the coordinator's current state.
func (c *Coordinator) State() CoordinatorState {
	return c.state
}

// Propagate runs one pass: alias dependents, end-length clips, then the
// total duration. Emits duration:changed when the extent moved.
//
// An alias failure aborts the pass before any timing field has been
// touched; the caller decides whether to roll the mutation back.
func (c *Coordinator) Propagate(ctx context.Context, env *Env) error {
	c.state = StatePropagating
	defer func() { c.state = StateIdle }()

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := alias.Resolve(env.Project); err != nil {
		return fmt.Errorf("propagate: %w", err)
	}
	resolve.ResolveEndLengths(env.Project)

	if dur := env.Project.Extent(); dur != env.Project.Duration {
		env.Project.Duration = dur
		env.emit(Event{Name: EventDurationChanged, Track: -1, Clip: -1, Duration: dur})
	}
	return nil
}
