package engine

import (
	"context"

	"github.com/google/uuid"

	"github.com/roach88/montage/internal/project"
	"github.com/roach88/montage/internal/resolve"
)

// Command is one reversible mutation of the project.
//
// A command captures enough pre-state during Execute to invert its
// effect exactly: after Execute(); Undo() the project's resolved
// timing, track composition, and layer indices are bit-equivalent to
// the pre-execute state, clip identities included.
//
// Execute and Undo are exact inverses and safe to call again on the
// snapshot they produced (redo re-runs Execute on the post-undo state).
type Command interface {
	// Name identifies the command type in logs and the journal.
	Name() string

	// Execute applies the mutation. May await asynchronous sub-steps
	// (duration probes, asset re-resolution) before returning.
	Execute(ctx context.Context, env *Env) error

	// Undo restores the pre-execute state.
	Undo(ctx context.Context, env *Env) error
}

// Env is the context a command executes against: the single owned
// project aggregate plus the host callbacks and resolver it needs.
// There are no ambient globals; everything a command touches is here.
type Env struct {
	Project  *project.Project
	Host     Host
	Resolver *resolve.Resolver
	IDs      IDGenerator
}

// emit forwards a lifecycle event to the host.
func (env *Env) emit(ev Event) {
	env.Host.Emit(ev)
}

// IDGenerator assigns identities to newly created clips.
// Implemented by UUIDv7Generator (production) and testutil.IDSequence.
type IDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 clip identities.
// Stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate returns a new UUIDv7 as a hyphenated string.
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
