// Package resolve computes concrete timing for "smart" clips: clips
// whose start or length is declared as "auto" or "end" rather than a
// literal number.
//
// Resolution is a two-phase algorithm:
//
//   - Phase 1 walks each track in clip order behind a running cursor.
//     "auto" starts take the cursor position; "auto" lengths take the
//     probed media duration minus the asset's trim offset (or a fixed
//     default when the asset is not probeable or the probe fails).
//     Tracks are independent and run concurrently; clips within one
//     track are strictly sequential because each clip's cursor value
//     depends on its predecessors.
//
//   - Phase 2 runs after every track has finished (full barrier). It
//     computes the timeline extent and stretches every "end"-length
//     clip to it, excluding the clip itself from the extent so a clip
//     never feeds its own stale length back into its target.
//
// Probes are bounded by a timeout even when the prober itself ignores
// cancellation; a probe that never settles degrades that one clip to
// the default length instead of stalling the pass.
package resolve

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/roach88/montage/internal/project"
	"github.com/roach88/montage/internal/timing"
)

// Resolver resolves auto/end timing against a duration prober.
type Resolver struct {
	prober        DurationProber
	defaultLength timing.Seconds
	probeTimeout  time.Duration
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithDefaultLength overrides the length assigned when a probe is not
// possible. The default is timing.DefaultAutoLength (3 s).
func WithDefaultLength(s timing.Seconds) Option {
	return func(r *Resolver) {
		r.defaultLength = s
	}
}

// WithProbeTimeout overrides the per-probe timeout.
// The default is timing.DefaultProbeTimeout (5 s).
func WithProbeTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		r.probeTimeout = d
	}
}

// New creates a Resolver backed by the given prober.
func New(prober DurationProber, opts ...Option) *Resolver {
	r := &Resolver{
		prober:        prober,
		defaultLength: timing.DefaultAutoLength,
		probeTimeout:  time.Duration(timing.DefaultProbeTimeout) * time.Millisecond,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve runs the full two-phase pass over the project.
//
// Clip processing order within a track is deterministic, so repeated
// resolution of the same input is idempotent modulo probe results.
// Returns an error only when the context is cancelled mid-pass; probe
// failures degrade to defaults and are not errors.
func (r *Resolver) Resolve(ctx context.Context, p *project.Project) error {
	// Phase 1: per-track cursor passes. Tracks write disjoint clips, so
	// they may run concurrently; the WaitGroup is the phase barrier.
	var wg sync.WaitGroup
	for _, t := range p.Tracks {
		wg.Add(1)
		go func(t *project.Track) {
			defer wg.Done()
			r.resolveTrack(ctx, t)
		}(t)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}

	// Phase 2: end-length clips against the final timeline extent.
	resolveEndLengths(p)
	return nil
}

// resolveTrack runs the phase-1 cursor pass over one track.
//
// The cursor starts at the first clip's numeric start (or zero) and
// advances to start+length after each clip. A clip's probe must settle
// before the cursor advances: later clips in the track depend on it.
func (r *Resolver) resolveTrack(ctx context.Context, t *project.Track) {
	var cursor timing.Millis
	for i, c := range t.Clips {
		if c.Intent.Start.Kind() == timing.KindAuto {
			c.Resolved.Start = cursor
		} else if i == 0 {
			cursor = c.Resolved.Start
		}

		switch c.Intent.Length.Kind() {
		case timing.KindAuto:
			c.Resolved.Length = r.autoLength(ctx, c.Asset)
		case timing.KindEnd:
			// Assigned in phase 2. The clip contributes only its start
			// to the cursor until then.
			cursor = c.Resolved.Start
			continue
		}

		cursor = c.Resolved.End()
	}
}

// autoLength computes the length for an "auto" clip: the probed media
// duration minus the trim offset for probeable assets, the default
// otherwise. Any probe failure degrades to the default.
func (r *Resolver) autoLength(ctx context.Context, asset project.Asset) timing.Millis {
	fallback := timing.ClampLength(timing.ToMillis(r.defaultLength))
	if !asset.Type.Probeable() || asset.Src == "" {
		return fallback
	}

	dur, ok := r.probe(ctx, asset.Src)
	if !ok || math.IsNaN(float64(dur)) || dur <= 0 {
		return fallback
	}
	return timing.ClampLength(timing.ToMillis(dur - asset.Trim))
}

// ResolveAutoLength re-resolves a single clip's "auto" length. Used
// when a timing-update command swaps the clip's asset source and the
// previous probe result no longer applies. No-op for other intents.
func (r *Resolver) ResolveAutoLength(ctx context.Context, c *project.Clip) {
	if c.Intent.Length.Kind() != timing.KindAuto {
		return
	}
	c.Resolved.Length = r.autoLength(ctx, c.Asset)
}

// probe runs one duration probe bounded by the configured timeout. The
// probe runs in its own goroutine so a prober that ignores cancellation
// still cannot stall the track past the timeout.
func (r *Resolver) probe(ctx context.Context, src string) (timing.Seconds, bool) {
	ctx, cancel := context.WithTimeout(ctx, r.probeTimeout)
	defer cancel()

	type result struct {
		dur timing.Seconds
		err error
	}
	ch := make(chan result, 1)
	go func() {
		dur, err := r.prober.ProbeDuration(ctx, src)
		ch <- result{dur, err}
	}()

	select {
	case res := <-ch:
		if res.err != nil {
			slog.Debug("duration probe failed, using default length",
				"src", src,
				"error", res.err,
			)
			return 0, false
		}
		return res.dur, true
	case <-ctx.Done():
		slog.Debug("duration probe timed out, using default length",
			"src", src,
			"timeout", r.probeTimeout,
		)
		return 0, false
	}
}

// resolveEndLengths stretches every "end"-length clip to the timeline
// extent, excluding the clip itself from the extent computation.
func resolveEndLengths(p *project.Project) {
	for _, c := range p.EndLengthClips() {
		end := p.TimelineEnd(c)
		c.Resolved.Length = timing.ClampLength(end - c.Resolved.Start)
	}
}

// ResolveEndLengths re-runs only the phase-2 computation. The
// propagation coordinator calls this after mutations that change the
// timeline extent without touching auto values.
func ResolveEndLengths(p *project.Project) {
	resolveEndLengths(p)
}
