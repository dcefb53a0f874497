package engine

import (
	"context"

	"github.com/roach88/montage/internal/project"
)

// AddTrack inserts an empty track at an index. Clips on tracks at or
// above the index move up one layer; the project renumbers them and
// the host reparents their visual containers off the track events.
type AddTrack struct {
	Index int

	track *project.Track
}

func (c *AddTrack) Name() string { return "AddTrack" }

func (c *AddTrack) Execute(ctx context.Context, env *Env) error {
	if c.Index < 0 || c.Index > len(env.Project.Tracks) {
		return invalidTrack(c.Index)
	}
	if c.track == nil {
		c.track = &project.Track{}
	}
	env.Project.InsertTrack(c.Index, c.track)
	env.emit(trackEvent(EventTrackAdded, c.Index))
	return nil
}

func (c *AddTrack) Undo(ctx context.Context, env *Env) error {
	if _, ok := env.Project.Track(c.Index); !ok {
		return invalidTrack(c.Index)
	}
	env.Project.RemoveTrack(c.Index)
	env.emit(trackEvent(EventTrackRemoved, c.Index))
	return nil
}

// DeleteTrack removes the track at an index along with its clips.
// Clips above the index drop one layer. The removed track instance is
// retained so undo restores the same clips in the same slots.
type DeleteTrack struct {
	Index int

	removed *project.Track
}

func (c *DeleteTrack) Name() string { return "DeleteTrack" }

func (c *DeleteTrack) Execute(ctx context.Context, env *Env) error {
	track, ok := env.Project.Track(c.Index)
	if !ok {
		return invalidTrack(c.Index)
	}
	for _, clip := range track.Clips {
		env.Host.BeginDisposal(clip)
	}
	c.removed = env.Project.RemoveTrack(c.Index)
	env.emit(trackEvent(EventTrackRemoved, c.Index))
	return nil
}

func (c *DeleteTrack) Undo(ctx context.Context, env *Env) error {
	if c.Index < 0 || c.Index > len(env.Project.Tracks) {
		return invalidTrack(c.Index)
	}
	env.Project.InsertTrack(c.Index, c.removed)
	for _, clip := range c.removed.Clips {
		env.Host.RestoreClipView(c.Index, clip)
	}
	env.emit(trackEvent(EventTrackAdded, c.Index))
	return nil
}
