package engine

import "github.com/roach88/montage/internal/project"

// Host is the rendering/UI layer's side of the command contract. The
// engine calls these hooks; it never reaches into renderer internals.
//
// Every hook must be cheap and non-blocking from the engine's point of
// view: the engine does not accept the next command until the current
// one (including its awaited sub-steps) has completed.
type Host interface {
	// Emit delivers a named lifecycle event.
	Emit(ev Event)

	// BeginDisposal queues a deleted clip's visual resources for
	// disposal. Disposal is queued rather than immediate so an undo can
	// still restore the same clip instance.
	BeginDisposal(c *project.Clip)

	// RestoreClipView rebuilds a clip's on-screen representation after
	// an undo re-inserts it into the given track.
	RestoreClipView(track int, c *project.Clip)
}

// NopHost is a Host that does nothing. Used headless (CLI, tests).
type NopHost struct{}

func (NopHost) Emit(Event)                         {}
func (NopHost) BeginDisposal(*project.Clip)        {}
func (NopHost) RestoreClipView(int, *project.Clip) {}
