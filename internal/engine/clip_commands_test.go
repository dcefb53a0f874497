package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/montage/internal/project"
	"github.com/roach88/montage/internal/resolve"
	"github.com/roach88/montage/internal/testutil"
	"github.com/roach88/montage/internal/timing"
)

func TestAddClip_AppendsWithGeneratedID(t *testing.T) {
	ctx := context.Background()
	p := project.New()
	p.InsertTrack(0, &project.Track{})
	e, host := newTestEngine(p, nil)

	require.NoError(t, e.Execute(ctx, &AddClip{Track: 0, Config: project.ClipConfig{
		Asset: imageAsset("a.png"), Start: timing.Literal(0), Length: timing.Literal(2),
	}}))

	require.Len(t, p.Tracks[0].Clips, 1)
	c := p.Tracks[0].Clips[0]
	assert.Equal(t, "clip-1", c.ID)
	assert.Equal(t, 0, c.Layer)

	ev, ok := host.lastEvent(EventClipAdded)
	require.True(t, ok)
	assert.Equal(t, 0, ev.Track)
	assert.Equal(t, 0, ev.Clip)
	require.NotNil(t, ev.After)
	assert.Equal(t, "a.png", ev.After.Asset.Src)
}

func TestAddClip_AutoStartContinuesFromTrackEnd(t *testing.T) {
	ctx := context.Background()
	p := project.New()
	first := newClip("first", imageAsset("a.png"), timing.Literal(1), timing.Literal(4))
	p.InsertTrack(0, &project.Track{Clips: []*project.Clip{first}})
	e, _ := newTestEngine(p, nil)
	require.NoError(t, e.ResolveAll(ctx))

	require.NoError(t, e.Execute(ctx, &AddClip{Track: 0, Config: project.ClipConfig{
		Asset: imageAsset("b.png"), Start: timing.Auto(), Length: timing.Literal(2),
	}}))

	added := p.Tracks[0].Clips[1]
	assert.Equal(t, timing.Millis(5000), added.Resolved.Start)
	assert.Equal(t, timing.Millis(7000), added.Resolved.End())
}

func TestAddClip_AutoLengthProbesSource(t *testing.T) {
	ctx := context.Background()
	p := project.New()
	p.InsertTrack(0, &project.Track{})
	e, _ := newTestEngine(p, map[string]timing.Seconds{"clip.mp4": 7.5})

	require.NoError(t, e.Execute(ctx, &AddClip{Track: 0, Config: project.ClipConfig{
		Asset: videoAsset("clip.mp4"), Start: timing.Literal(0), Length: timing.Auto(),
	}}))

	assert.Equal(t, timing.Millis(7500), p.Tracks[0].Clips[0].Resolved.Length)
}

func TestAddClip_UndoDisposesTheClip(t *testing.T) {
	ctx := context.Background()
	p := project.New()
	p.InsertTrack(0, &project.Track{})
	e, host := newTestEngine(p, nil)

	require.NoError(t, e.Execute(ctx, &AddClip{Track: 0, Config: project.ClipConfig{
		Asset: imageAsset("a.png"), Start: timing.Literal(0), Length: timing.Literal(1),
	}}))
	id := p.Tracks[0].Clips[0].ID

	require.NoError(t, e.Undo(ctx))
	assert.Empty(t, p.Tracks[0].Clips)
	assert.Equal(t, []string{id}, host.disposed)
}

func TestDeleteClip_RemovesAndPropagates(t *testing.T) {
	ctx := context.Background()
	p := project.New()
	a := newClip("a", imageAsset("a.png"), timing.Literal(0), timing.Literal(10))
	b := newClip("b", imageAsset("b.png"), timing.Literal(10), timing.Literal(2))
	tail := newClip("tail", imageAsset("tail.png"), timing.Literal(0), timing.End())
	p.InsertTrack(0, &project.Track{Clips: []*project.Clip{a, b}})
	p.InsertTrack(1, &project.Track{Clips: []*project.Clip{tail}})
	e, host := newTestEngine(p, nil)
	require.NoError(t, e.ResolveAll(ctx))
	require.Equal(t, timing.Millis(12000), tail.Resolved.Length)

	require.NoError(t, e.Execute(ctx, &DeleteClip{Track: 0, Clip: 1}))

	// The end-length clip follows the new timeline extent.
	assert.Equal(t, timing.Millis(10000), tail.Resolved.Length)
	assert.Equal(t, timing.Millis(10000), p.Duration)
	assert.Equal(t, []string{"b"}, host.disposed)

	ev, ok := host.lastEvent(EventClipRemoved)
	require.True(t, ok)
	assert.Equal(t, 1, ev.Clip)
}

// Deleting the only clip of a track removes the track too; one undo
// brings back both the track at its original index and the clip in its
// original slot.
func TestDeleteClip_CascadesIntoTrackRemoval(t *testing.T) {
	ctx := context.Background()
	p := project.New()
	top := newClip("top", imageAsset("top.png"), timing.Literal(0), timing.Literal(5))
	solo := newClip("solo", imageAsset("solo.png"), timing.Literal(1), timing.Literal(2))
	bottom := newClip("bottom", imageAsset("bottom.png"), timing.Literal(0), timing.Literal(3))
	p.InsertTrack(0, &project.Track{Clips: []*project.Clip{top}})
	p.InsertTrack(1, &project.Track{Clips: []*project.Clip{solo}})
	p.InsertTrack(2, &project.Track{Clips: []*project.Clip{bottom}})
	e, host := newTestEngine(p, nil)
	require.NoError(t, e.ResolveAll(ctx))

	require.NoError(t, e.Execute(ctx, &DeleteClip{Track: 1, Clip: 0}))

	require.Len(t, p.Tracks, 2)
	assert.Equal(t, "bottom", p.Tracks[1].Clips[0].ID)
	assert.Equal(t, 1, p.Tracks[1].Clips[0].Layer, "surviving tracks renumber")

	_, removedTrack := host.lastEvent(EventTrackRemoved)
	assert.True(t, removedTrack, "cascade must announce the track removal")

	require.NoError(t, e.Undo(ctx))

	require.Len(t, p.Tracks, 3)
	require.Len(t, p.Tracks[1].Clips, 1)
	assert.Equal(t, "solo", p.Tracks[1].Clips[0].ID)
	assert.Equal(t, 1, p.Tracks[1].Clips[0].Layer)
	assert.Equal(t, 2, p.Tracks[2].Clips[0].Layer)
	assert.Equal(t, []string{"solo"}, host.restored)
}

func TestDeleteClip_StaleClipIndexIsNoop(t *testing.T) {
	ctx := context.Background()
	p := project.New()
	a := newClip("a", imageAsset("a.png"), timing.Literal(0), timing.Literal(1))
	p.InsertTrack(0, &project.Track{Clips: []*project.Clip{a}})
	e, host := newTestEngine(p, nil)
	require.NoError(t, e.ResolveAll(ctx))
	host.events = nil

	require.NoError(t, e.Execute(ctx, &DeleteClip{Track: 0, Clip: 3}))

	assert.Len(t, p.Tracks[0].Clips, 1)
	assert.False(t, e.CanUndo())
	assert.Empty(t, host.events)
}

func TestResizeClip_ConvertsEndLengthToLiteral(t *testing.T) {
	ctx := context.Background()
	p := project.New()
	long := newClip("long", imageAsset("long.png"), timing.Literal(0), timing.Literal(10))
	tail := newClip("tail", imageAsset("tail.png"), timing.Literal(2), timing.End())
	p.InsertTrack(0, &project.Track{Clips: []*project.Clip{long}})
	p.InsertTrack(1, &project.Track{Clips: []*project.Clip{tail}})
	e, _ := newTestEngine(p, nil)
	require.NoError(t, e.ResolveAll(ctx))
	require.Equal(t, timing.Millis(8000), tail.Resolved.Length)

	require.NoError(t, e.Execute(ctx, NewResizeClip(1, 0, 3)))

	assert.Equal(t, timing.KindLiteral, tail.Intent.Length.Kind())
	assert.Equal(t, timing.Millis(3000), tail.Resolved.Length)

	// The derived mode survives an undo, intent and value both.
	require.NoError(t, e.Undo(ctx))
	assert.Equal(t, timing.KindEnd, tail.Intent.Length.Kind())
	assert.Equal(t, timing.Millis(8000), tail.Resolved.Length)
}

func TestMoveClip_RetimesDependents(t *testing.T) {
	ctx := context.Background()
	p := project.New()
	hero := newClip("hero-clip", imageAsset("hero.png"), timing.Literal(0), timing.Literal(5))
	hero.Alias = "hero"
	follower := newClip("f", imageAsset("f.png"), timing.Alias("hero", timing.FieldStart), timing.Literal(2))
	p.InsertTrack(0, &project.Track{Clips: []*project.Clip{hero}})
	p.InsertTrack(1, &project.Track{Clips: []*project.Clip{follower}})
	e, _ := newTestEngine(p, nil)
	require.NoError(t, e.ResolveAll(ctx))
	require.Equal(t, timing.Millis(0), follower.Resolved.Start)

	require.NoError(t, e.Execute(ctx, NewMoveClip(0, 0, 4)))

	assert.Equal(t, timing.Millis(4000), hero.Resolved.Start)
	assert.Equal(t, timing.Millis(4000), follower.Resolved.Start, "alias dependents follow the move")

	require.NoError(t, e.Undo(ctx))
	assert.Equal(t, timing.Millis(0), follower.Resolved.Start)
}

func TestResizeClip_FloorsTinyLengths(t *testing.T) {
	ctx := context.Background()
	p := project.New()
	a := newClip("a", imageAsset("a.png"), timing.Literal(0), timing.Literal(5))
	p.InsertTrack(0, &project.Track{Clips: []*project.Clip{a}})
	e, _ := newTestEngine(p, nil)
	require.NoError(t, e.ResolveAll(ctx))

	require.NoError(t, e.Execute(ctx, NewResizeClip(0, 0, 0.01)))

	assert.Equal(t, timing.MinClipLength, a.Resolved.Length)
}

func TestSetUpdatedClip_ReprobesOnSourceChange(t *testing.T) {
	ctx := context.Background()
	p := project.New()
	c := newClip("c", videoAsset("old.mp4"), timing.Literal(0), timing.Auto())
	p.InsertTrack(0, &project.Track{Clips: []*project.Clip{c}})
	e, host := newTestEngine(p, map[string]timing.Seconds{
		"old.mp4": 4,
		"new.mp4": 9,
	})
	require.NoError(t, e.ResolveAll(ctx))
	require.Equal(t, timing.Millis(4000), c.Resolved.Length)

	cfg := c.Config()
	cfg.Asset.Src = "new.mp4"
	require.NoError(t, e.Execute(ctx, &SetUpdatedClip{Track: 0, Clip: 0, Config: cfg}))

	assert.Equal(t, "new.mp4", c.Asset.Src)
	assert.Equal(t, timing.Millis(9000), c.Resolved.Length)
	assert.Equal(t, timing.Millis(9000), p.Duration)

	require.NoError(t, e.Undo(ctx))
	assert.Equal(t, "old.mp4", c.Asset.Src)
	assert.Equal(t, timing.Millis(4000), c.Resolved.Length)
	assert.Equal(t, []string{"c"}, host.restored)
}

func TestSetUpdatedClip_KeepsLengthWhenSourceUnchanged(t *testing.T) {
	ctx := context.Background()
	p := project.New()
	c := newClip("c", videoAsset("same.mp4"), timing.Literal(0), timing.Auto())
	p.InsertTrack(0, &project.Track{Clips: []*project.Clip{c}})

	prober := testutil.NewFixedProber(map[string]timing.Seconds{"same.mp4": 4})
	e := New(p, resolve.New(prober), WithIDGenerator(testutil.NewIDSequence("clip")))
	require.NoError(t, e.ResolveAll(ctx))
	probesAfterLoad := len(prober.Calls())

	cfg := c.Config()
	cfg.Alias = "renamed"
	require.NoError(t, e.Execute(ctx, &SetUpdatedClip{Track: 0, Clip: 0, Config: cfg}))

	assert.Equal(t, "renamed", c.Alias)
	assert.Equal(t, timing.Millis(4000), c.Resolved.Length)
	assert.Equal(t, probesAfterLoad, len(prober.Calls()), "unchanged source must not reprobe")
}
