// Package engine is the reversible command engine over the project
// aggregate.
//
// A user action constructs a Command; the engine executes it, reports
// the delta to the propagation coordinator so derived timing (alias
// references, "end" lengths, total duration) stays correct, and pushes
// the command onto the undo history. Undo restores the project to
// bit-equivalent resolved state: same clip identities, indices, timing,
// and track structure.
//
// The engine exclusively owns the project's track/clip collections.
// Structural errors from stale UI indices are absorbed as logged
// no-ops; everything else either applies fully or rolls back.
package engine
