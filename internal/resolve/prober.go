package resolve

import (
	"context"

	"github.com/roach88/montage/internal/timing"
)

// DurationProber measures the intrinsic duration of a media source.
//
// Implemented outside the core (the host's media layer; see
// internal/probe for the ffprobe-backed production implementation).
// The smart resolver is the only consumer.
//
// A probe either returns the duration in seconds or an error. Errors
// are never fatal to resolution: the caller degrades to the default
// clip length and continues.
type DurationProber interface {
	ProbeDuration(ctx context.Context, src string) (timing.Seconds, error)
}

// ProberFunc adapts a function to the DurationProber interface.
type ProberFunc func(ctx context.Context, src string) (timing.Seconds, error)

// ProbeDuration implements DurationProber.
func (f ProberFunc) ProbeDuration(ctx context.Context, src string) (timing.Seconds, error) {
	return f(ctx, src)
}
