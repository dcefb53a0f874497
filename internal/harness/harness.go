package harness

import (
	"context"
	"fmt"
	"math"

	"github.com/roach88/montage/internal/document"
	"github.com/roach88/montage/internal/engine"
	"github.com/roach88/montage/internal/project"
	"github.com/roach88/montage/internal/resolve"
	"github.com/roach88/montage/internal/testutil"
	"github.com/roach88/montage/internal/timing"
)

// Run executes a scenario against the real engine. Only the duration
// prober is canned, from the scenario's durations table.
func Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	doc, err := document.Decode([]byte(scenario.Document), document.FormatYAML)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}
	p, err := doc.ToProject()
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	durations := make(map[string]timing.Seconds, len(scenario.Durations))
	for src, sec := range scenario.Durations {
		durations[src] = timing.Seconds(sec)
	}

	eng := engine.New(p,
		resolve.New(testutil.NewFixedProber(durations)),
		engine.WithIDGenerator(testutil.NewIDSequence("clip")),
	)
	if err := eng.ResolveAll(ctx); err != nil {
		return nil, fmt.Errorf("scenario %s: initial resolution: %w", scenario.Name, err)
	}

	for i, step := range scenario.Flow {
		if err := applyStep(ctx, eng, step); err != nil {
			return nil, fmt.Errorf("scenario %s: flow[%d] %s: %w", scenario.Name, i, step.Op, err)
		}
	}

	result := &Result{Pass: true, Snapshot: snapshot(p)}
	for i, a := range scenario.Assertions {
		if msg := checkAssertion(result.Snapshot, a); msg != "" {
			result.Pass = false
			result.Errors = append(result.Errors, fmt.Sprintf("assertions[%d]: %s", i, msg))
		}
	}
	return result, nil
}

func applyStep(ctx context.Context, eng *engine.Engine, step Step) error {
	switch step.Op {
	case OpAddClip:
		return eng.Execute(ctx, &engine.AddClip{Track: step.Track, Config: *step.Config})
	case OpDeleteClip:
		return eng.Execute(ctx, &engine.DeleteClip{Track: step.Track, Clip: step.Clip})
	case OpAddTrack:
		return eng.Execute(ctx, &engine.AddTrack{Index: step.Index})
	case OpDeleteTrack:
		return eng.Execute(ctx, &engine.DeleteTrack{Index: step.Index})
	case OpMoveClip:
		return eng.Execute(ctx, engine.NewMoveClip(step.Track, step.Clip, timing.Seconds(step.Seconds)))
	case OpResizeClip:
		return eng.Execute(ctx, engine.NewResizeClip(step.Track, step.Clip, timing.Seconds(step.Seconds)))
	case OpUpdateClip:
		return eng.Execute(ctx, &engine.SetUpdatedClip{Track: step.Track, Clip: step.Clip, Config: *step.Config})
	case OpUndo:
		return eng.Undo(ctx)
	case OpRedo:
		return eng.Redo(ctx)
	default:
		return fmt.Errorf("unknown op %q", step.Op)
	}
}

func snapshot(p *project.Project) *Snapshot {
	snap := &Snapshot{Duration: int64(p.Duration)}
	for _, t := range p.Tracks {
		track := TrackSnapshot{Clips: []ClipSnapshot{}}
		for _, c := range t.Clips {
			track.Clips = append(track.Clips, ClipSnapshot{
				Alias:  c.Alias,
				Type:   string(c.Asset.Type),
				Src:    c.Asset.Src,
				Start:  int64(c.Resolved.Start),
				Length: int64(c.Resolved.Length),
				End:    int64(c.Resolved.End()),
			})
		}
		snap.Tracks = append(snap.Tracks, track)
	}
	return snap
}

func checkAssertion(snap *Snapshot, a Assertion) string {
	switch a.Type {
	case AssertTrackCount:
		if len(snap.Tracks) != a.Count {
			return fmt.Sprintf("track count = %d, want %d", len(snap.Tracks), a.Count)
		}
	case AssertClipCount:
		if a.Track >= len(snap.Tracks) {
			return fmt.Sprintf("track %d does not exist", a.Track)
		}
		if got := len(snap.Tracks[a.Track].Clips); got != a.Count {
			return fmt.Sprintf("track %d clip count = %d, want %d", a.Track, got, a.Count)
		}
	case AssertDuration:
		if want := secondsToMillis(a.Seconds); snap.Duration != want {
			return fmt.Sprintf("duration = %dms, want %dms", snap.Duration, want)
		}
	case AssertClipTiming:
		if a.Track >= len(snap.Tracks) || a.Clip >= len(snap.Tracks[a.Track].Clips) {
			return fmt.Sprintf("clip (%d, %d) does not exist", a.Track, a.Clip)
		}
		clip := snap.Tracks[a.Track].Clips[a.Clip]
		if a.Start != nil {
			if want := secondsToMillis(*a.Start); clip.Start != want {
				return fmt.Sprintf("clip (%d, %d) start = %dms, want %dms", a.Track, a.Clip, clip.Start, want)
			}
		}
		if a.Length != nil {
			if want := secondsToMillis(*a.Length); clip.Length != want {
				return fmt.Sprintf("clip (%d, %d) length = %dms, want %dms", a.Track, a.Clip, clip.Length, want)
			}
		}
	}
	return ""
}

func secondsToMillis(sec float64) int64 {
	return int64(math.Round(sec * 1000))
}
