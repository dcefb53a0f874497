package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/roach88/montage/internal/timing"
)

// FixedProber is a DurationProber returning canned durations keyed by
// source path. Unknown sources and a configured Err both exercise the
// resolver's default-length fallback.
//
// Thread-safe: resolution probes tracks concurrently.
type FixedProber struct {
	mu        sync.Mutex
	durations map[string]timing.Seconds
	err       error
	calls     []string
}

// NewFixedProber creates a prober with the given src -> seconds table.
func NewFixedProber(durations map[string]timing.Seconds) *FixedProber {
	return &FixedProber{durations: durations}
}

// NewFailingProber creates a prober whose every probe fails with err.
func NewFailingProber(err error) *FixedProber {
	return &FixedProber{err: err}
}

// ProbeDuration returns the canned duration for src.
func (p *FixedProber) ProbeDuration(_ context.Context, src string) (timing.Seconds, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.calls = append(p.calls, src)
	if p.err != nil {
		return 0, p.err
	}
	dur, ok := p.durations[src]
	if !ok {
		return 0, &UnknownSourceError{Src: src}
	}
	return dur, nil
}

// Calls returns the probed sources in call order.
func (p *FixedProber) Calls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.calls...)
}

// UnknownSourceError reports a probe of a source the table doesn't know.
type UnknownSourceError struct {
	Src string
}

func (e *UnknownSourceError) Error() string {
	return "no canned duration for " + e.Src
}

// StalledProber is a DurationProber that never settles. Used to verify
// the resolver's probe timeout keeps a hung probe from stalling a pass.
type StalledProber struct{}

// ProbeDuration ignores cancellation and only settles long after any
// reasonable probe timeout has fired.
func (StalledProber) ProbeDuration(ctx context.Context, _ string) (timing.Seconds, error) {
	<-ctx.Done()
	time.Sleep(10 * time.Second)
	return 0, ctx.Err()
}
