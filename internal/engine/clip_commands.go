package engine

import (
	"context"
	"fmt"

	"github.com/roach88/montage/internal/project"
	"github.com/roach88/montage/internal/timing"
)

// AddClip appends a clip built from a configuration to a track.
type AddClip struct {
	Track  int
	Config project.ClipConfig

	// clip is created on first execute and reused by redo so the clip
	// identity is stable across undo/redo round trips.
	clip *project.Clip
	at   int
}

func (c *AddClip) Name() string { return "AddClip" }

func (c *AddClip) Execute(ctx context.Context, env *Env) error {
	track, ok := env.Project.Track(c.Track)
	if !ok {
		return invalidTrack(c.Track)
	}

	if c.clip == nil {
		c.clip = project.NewClip(env.IDs.Generate(), c.Config)
	}
	c.clip.Layer = c.Track

	// An appended "auto" start continues from the track's current end.
	if c.clip.Intent.Start.Kind() == timing.KindAuto {
		var cursor timing.Millis
		if n := len(track.Clips); n > 0 {
			cursor = track.Clips[n-1].Resolved.End()
		}
		c.clip.Resolved.Start = cursor
	}
	if c.clip.Intent.Length.Kind() == timing.KindAuto {
		env.Resolver.ResolveAutoLength(ctx, c.clip)
	}

	c.at = len(track.Clips)
	track.InsertClip(c.at, c.clip)

	cfg := c.clip.Config()
	env.emit(clipEvent(EventClipAdded, c.Track, c.at, nil, &cfg))
	return nil
}

func (c *AddClip) Undo(ctx context.Context, env *Env) error {
	track, ok := env.Project.Track(c.Track)
	if !ok {
		return invalidTrack(c.Track)
	}
	idx := indexOf(track, c.clip)
	if idx < 0 {
		return fmt.Errorf("undo %s: clip %s no longer in track %d", c.Name(), c.clip.ID, c.Track)
	}

	track.RemoveClip(idx)
	env.Host.BeginDisposal(c.clip)

	cfg := c.clip.Config()
	env.emit(clipEvent(EventClipRemoved, c.Track, idx, &cfg, nil))
	return nil
}

// DeleteClip removes the clip at (track, clip). Deleting the last clip
// of a track cascades into deleting the track itself; the cascade is an
// owned inner command so undo can reverse it in strict LIFO order.
type DeleteClip struct {
	Track int
	Clip  int

	removed *project.Clip
	cascade *DeleteTrack
}

func (c *DeleteClip) Name() string { return "DeleteClip" }

func (c *DeleteClip) Execute(ctx context.Context, env *Env) error {
	track, ok := env.Project.Track(c.Track)
	if !ok {
		return invalidTrack(c.Track)
	}
	if _, ok := track.Clip(c.Clip); !ok {
		return invalidClip(c.Track, c.Clip)
	}

	c.removed = track.RemoveClip(c.Clip)
	env.Host.BeginDisposal(c.removed)

	cfg := c.removed.Config()
	env.emit(clipEvent(EventClipRemoved, c.Track, c.Clip, &cfg, nil))

	if len(track.Clips) == 0 {
		c.cascade = &DeleteTrack{Index: c.Track}
		if err := c.cascade.Execute(ctx, env); err != nil {
			return fmt.Errorf("cascade delete of emptied track %d: %w", c.Track, err)
		}
	}
	return nil
}

func (c *DeleteClip) Undo(ctx context.Context, env *Env) error {
	// LIFO: the cascaded track deletion happened last, so it reverses
	// first, restoring the track at its original index.
	if c.cascade != nil {
		if err := c.cascade.Undo(ctx, env); err != nil {
			return err
		}
	}

	track, ok := env.Project.Track(c.Track)
	if !ok {
		return invalidTrack(c.Track)
	}
	track.InsertClip(c.Clip, c.removed)
	c.removed.Layer = c.Track
	env.Host.RestoreClipView(c.Track, c.removed)

	cfg := c.removed.Config()
	env.emit(clipEvent(EventClipAdded, c.Track, c.Clip, nil, &cfg))
	return nil
}

// UpdateClipTiming applies a user-driven timing change. A manual value
// always wins over a derived mode: setting a literal start or length
// converts the clip to fixed numeric timing for that field. The prior
// intent is stored verbatim so undo restores the derived mode exactly.
type UpdateClipTiming struct {
	Track int
	Clip  int

	// Start and Length are the new intent values; nil leaves the field
	// unchanged.
	Start  *timing.Value
	Length *timing.Value

	prevIntent   timing.Intent
	prevResolved timing.Resolved
}

// NewResizeClip builds the timing update a resize gesture produces:
// a fixed numeric length, whatever mode the clip was in before.
func NewResizeClip(track, clip int, length timing.Seconds) *UpdateClipTiming {
	v := timing.Literal(length)
	return &UpdateClipTiming{Track: track, Clip: clip, Length: &v}
}

// NewMoveClip builds the timing update a drag gesture produces.
func NewMoveClip(track, clip int, start timing.Seconds) *UpdateClipTiming {
	v := timing.Literal(start)
	return &UpdateClipTiming{Track: track, Clip: clip, Start: &v}
}

func (c *UpdateClipTiming) Name() string { return "UpdateClipTiming" }

func (c *UpdateClipTiming) Execute(ctx context.Context, env *Env) error {
	clip, ok := env.Project.ClipAt(c.Track, c.Clip)
	if !ok {
		return invalidClip(c.Track, c.Clip)
	}

	c.prevIntent = clip.Intent
	c.prevResolved = clip.Resolved
	before := clip.Config()

	if c.Start != nil {
		clip.Intent.Start = *c.Start
	}
	if c.Length != nil {
		clip.Intent.Length = *c.Length
	}
	clip.SeedResolved()

	// A newly-auto length needs its probe before dependents can read
	// the clip; end/alias values are the propagation pass's job.
	if c.Length != nil && clip.Intent.Length.Kind() == timing.KindAuto {
		env.Resolver.ResolveAutoLength(ctx, clip)
	}

	after := clip.Config()
	env.emit(clipEvent(EventClipUpdated, c.Track, c.Clip, &before, &after))
	return nil
}

func (c *UpdateClipTiming) Undo(ctx context.Context, env *Env) error {
	clip, ok := env.Project.ClipAt(c.Track, c.Clip)
	if !ok {
		return invalidClip(c.Track, c.Clip)
	}

	before := clip.Config()
	clip.Intent = c.prevIntent
	clip.Resolved = c.prevResolved
	after := clip.Config()

	env.emit(clipEvent(EventClipUpdated, c.Track, c.Clip, &before, &after))
	return nil
}

// SetUpdatedClip overwrites a clip's entire configuration. When the
// asset source changes and the length intent is "auto", the clip's
// duration is re-probed before the command completes.
type SetUpdatedClip struct {
	Track  int
	Clip   int
	Config project.ClipConfig

	prev         project.ClipConfig
	prevResolved timing.Resolved
}

func (c *SetUpdatedClip) Name() string { return "SetUpdatedClip" }

func (c *SetUpdatedClip) Execute(ctx context.Context, env *Env) error {
	clip, ok := env.Project.ClipAt(c.Track, c.Clip)
	if !ok {
		return invalidClip(c.Track, c.Clip)
	}

	c.prev = clip.Config()
	c.prevResolved = clip.Resolved

	srcChanged := clip.Asset.Src != c.Config.Asset.Src
	clip.ApplyConfig(c.Config)

	if srcChanged && clip.Intent.Length.Kind() == timing.KindAuto {
		env.Resolver.ResolveAutoLength(ctx, clip)
	}

	after := clip.Config()
	env.emit(clipEvent(EventClipUpdated, c.Track, c.Clip, &c.prev, &after))
	return nil
}

func (c *SetUpdatedClip) Undo(ctx context.Context, env *Env) error {
	clip, ok := env.Project.ClipAt(c.Track, c.Clip)
	if !ok {
		return invalidClip(c.Track, c.Clip)
	}

	before := clip.Config()
	clip.ApplyConfig(c.prev)
	clip.Resolved = c.prevResolved
	env.Host.RestoreClipView(c.Track, clip)

	env.emit(clipEvent(EventClipUpdated, c.Track, c.Clip, &before, &c.prev))
	return nil
}

// indexOf locates a clip instance in a track by identity.
func indexOf(t *project.Track, c *project.Clip) int {
	for i, existing := range t.Clips {
		if existing == c {
			return i
		}
	}
	return -1
}
