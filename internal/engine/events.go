package engine

import (
	"github.com/roach88/montage/internal/project"
	"github.com/roach88/montage/internal/timing"
)

// Lifecycle event names. One event is emitted for every timing-relevant
// mutation; the renderer and any undo-stack UI consume them.
const (
	EventClipAdded       = "clip:added"
	EventClipRemoved     = "clip:removed"
	EventClipUpdated     = "clip:updated"
	EventTrackAdded      = "track:added"
	EventTrackRemoved    = "track:removed"
	EventDurationChanged = "duration:changed"
)

// Event is the payload delivered to the host on every mutation.
//
// Track and Clip address the affected slot at emission time; Clip is -1
// for track-level events. Before/After carry the clip configuration
// around the mutation where one exists.
type Event struct {
	Name   string
	Track  int
	Clip   int
	Before *project.ClipConfig
	After  *project.ClipConfig

	// Duration is the new total timeline duration, set on
	// EventDurationChanged.
	Duration timing.Millis
}

func clipEvent(name string, track, clip int, before, after *project.ClipConfig) Event {
	return Event{Name: name, Track: track, Clip: clip, Before: before, After: after}
}

func trackEvent(name string, track int) Event {
	return Event{Name: name, Track: track, Clip: -1}
}
