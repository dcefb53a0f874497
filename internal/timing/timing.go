package timing

import "math"

// Seconds is a duration or position expressed in seconds.
// This is the unit of the authored document and of duration probes.
type Seconds float64

// Millis is a duration or position expressed in whole milliseconds.
// This is the unit of resolved timing.
type Millis int64

const (
	// MinClipLength is the floor for any resolved clip length.
	// Resolution clamps to this value rather than producing degenerate clips.
	MinClipLength Millis = 100

	// DefaultAutoLength is the length assigned to "auto" clips whose asset
	// cannot be probed, or whose probe fails.
	DefaultAutoLength Seconds = 3

	// DefaultProbeTimeout bounds a single duration probe, in milliseconds.
	// A probe that does not settle within this window degrades to
	// DefaultAutoLength instead of stalling resolution.
	DefaultProbeTimeout Millis = 5000
)

// ToMillis converts seconds to whole milliseconds, rounding half away
// from zero. Non-finite inputs map to zero; this keeps the conversion
// total, probe results are sanitized before they reach arithmetic.
func ToMillis(s Seconds) Millis {
	f := float64(s)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return Millis(math.Round(f * 1000))
}

// ToSeconds converts whole milliseconds back to seconds.
func ToSeconds(ms Millis) Seconds {
	return Seconds(float64(ms) / 1000)
}

// ClampLength enforces the minimum clip length floor.
func ClampLength(ms Millis) Millis {
	if ms < MinClipLength {
		return MinClipLength
	}
	return ms
}

// Resolved is the concrete timing consumed by the renderer and player.
// Once a clip is loaded it always carries a Resolved value.
type Resolved struct {
	Start  Millis `json:"start"`
	Length Millis `json:"length"`
}

// End returns the end position of the resolved span.
func (r Resolved) End() Millis {
	return r.Start + r.Length
}
