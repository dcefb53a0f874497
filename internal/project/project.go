package project

import "github.com/roach88/montage/internal/timing"

// Track is an ordered sequence of clips. The project exclusively owns
// its tracks; a track left empty by a deletion is itself deleted by the
// command that emptied it.
type Track struct {
	Clips []*Clip
}

// Clip returns the clip at index, reporting whether the index is valid.
func (t *Track) Clip(i int) (*Clip, bool) {
	if i < 0 || i >= len(t.Clips) {
		return nil, false
	}
	return t.Clips[i], true
}

// InsertClip inserts a clip at index, shifting later clips right.
// Index len(Clips) appends.
func (t *Track) InsertClip(i int, c *Clip) {
	t.Clips = append(t.Clips, nil)
	copy(t.Clips[i+1:], t.Clips[i:])
	t.Clips[i] = c
}

// RemoveClip removes and returns the clip at index.
func (t *Track) RemoveClip(i int) *Clip {
	c := t.Clips[i]
	t.Clips = append(t.Clips[:i], t.Clips[i+1:]...)
	return c
}

// Project is the single owned aggregate every command and resolver
// operates on. There are no ambient globals; all mutation flows through
// the command engine holding this value.
type Project struct {
	Tracks []*Track

	// Duration is the total timeline duration: the max end time across
	// all clips. Maintained by the propagation coordinator.
	Duration timing.Millis
}

// New returns an empty project.
func New() *Project {
	return &Project{}
}

// Track returns the track at index, reporting whether the index is valid.
func (p *Project) Track(i int) (*Track, bool) {
	if i < 0 || i >= len(p.Tracks) {
		return nil, false
	}
	return p.Tracks[i], true
}

// ClipAt returns the clip at (track, clip), reporting index validity.
func (p *Project) ClipAt(track, clip int) (*Clip, bool) {
	t, ok := p.Track(track)
	if !ok {
		return nil, false
	}
	return t.Clip(clip)
}

// InsertTrack inserts a track at index, shifting later tracks right and
// renumbering clip layers to match the new track positions.
func (p *Project) InsertTrack(i int, t *Track) {
	p.Tracks = append(p.Tracks, nil)
	copy(p.Tracks[i+1:], p.Tracks[i:])
	p.Tracks[i] = t
	p.renumberLayers()
}

// RemoveTrack removes and returns the track at index, renumbering clip
// layers of the remaining tracks.
func (p *Project) RemoveTrack(i int) *Track {
	t := p.Tracks[i]
	p.Tracks = append(p.Tracks[:i], p.Tracks[i+1:]...)
	p.renumberLayers()
	return t
}

// renumberLayers reassigns every clip's z-order to its track index.
// Layer numbers are dense and always equal the owning track's position.
func (p *Project) renumberLayers() {
	for ti, t := range p.Tracks {
		for _, c := range t.Clips {
			c.Layer = ti
		}
	}
}

// ForEachClip visits every clip in deterministic order: track order,
// then clip order within the track.
func (p *Project) ForEachClip(fn func(track, clip int, c *Clip)) {
	for ti, t := range p.Tracks {
		for ci, c := range t.Clips {
			fn(ti, ci, c)
		}
	}
}

// EndLengthClips derives the set of clips whose current length intent is
// "end", in deterministic traversal order. Membership is recomputed from
// the aggregate on every call; nothing registers or unregisters.
func (p *Project) EndLengthClips() []*Clip {
	var out []*Clip
	p.ForEachClip(func(_, _ int, c *Clip) {
		if c.IsEndLength() {
			out = append(out, c)
		}
	})
	return out
}

// TimelineEnd computes the timeline extent: the max resolved end time
// across all clips, excluding the given clip (nil excludes nothing).
//
// End-length clips other than the excluded one contribute only their
// start; counting their current length would feed a stale resolution
// back into the extent they are defined against.
func (p *Project) TimelineEnd(exclude *Clip) timing.Millis {
	var end timing.Millis
	p.ForEachClip(func(_, _ int, c *Clip) {
		if c == exclude {
			return
		}
		clipEnd := c.Resolved.End()
		if c.IsEndLength() {
			clipEnd = c.Resolved.Start
		}
		if clipEnd > end {
			end = clipEnd
		}
	})
	return end
}

// Extent computes the total timeline duration: the max resolved end
// time across all clips, end-length clips included at their currently
// resolved length. This is what the propagation coordinator stores in
// Duration after every pass.
func (p *Project) Extent() timing.Millis {
	var end timing.Millis
	p.ForEachClip(func(_, _ int, c *Clip) {
		if e := c.Resolved.End(); e > end {
			end = e
		}
	})
	return end
}

// ClipCount returns the total number of clips across all tracks.
func (p *Project) ClipCount() int {
	n := 0
	for _, t := range p.Tracks {
		n += len(t.Clips)
	}
	return n
}
