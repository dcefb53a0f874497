package project

import (
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/montage/internal/timing"
)

// NormalizeAlias NFC-normalizes a user-assigned alias name.
//
// Alias names are typed by users and may arrive in different Unicode
// composition forms from different editors. All storage and lookup go
// through this normalization so "café" always matches "café".
func NormalizeAlias(name string) string {
	return norm.NFC.String(name)
}

// ClipConfig is the serialized configuration of one clip: the document
// shape, and the before/after payload carried by lifecycle events.
type ClipConfig struct {
	Alias  string       `json:"alias,omitempty" yaml:"alias,omitempty"`
	Asset  Asset        `json:"asset" yaml:"asset"`
	Start  timing.Value `json:"start" yaml:"start"`
	Length timing.Value `json:"length" yaml:"length"`
}

// Clip is one timed unit referencing one asset.
//
// Intent is what the user declared; Resolved is the concrete timing
// every consumer reads. Resolved is always present once the clip is
// loaded and is kept consistent by the resolvers and the propagation
// coordinator.
type Clip struct {
	// ID is a stable identity assigned at construction. Undo re-inserts
	// the same clip instance, so the ID survives delete/undo round trips.
	ID string

	// Alias is the optional unique name other clips reference in their
	// timing intent. Stored NFC-normalized.
	Alias string

	// Layer is the clip's z-order index, tied to its track position.
	Layer int

	Asset    Asset
	Intent   timing.Intent
	Resolved timing.Resolved
}

// NewClip constructs a clip from a configuration. The alias name is
// normalized; resolved timing is seeded from any literal intent values
// so the clip is renderable before a resolution pass runs.
func NewClip(id string, cfg ClipConfig) *Clip {
	c := &Clip{ID: id}
	c.ApplyConfig(cfg)
	return c
}

// ApplyConfig overwrites the clip's configuration in place, reseeding
// resolved timing from literal intent values. Derived values (auto, end,
// alias) keep their previous resolution until the next pass rewrites it.
func (c *Clip) ApplyConfig(cfg ClipConfig) {
	c.Alias = NormalizeAlias(cfg.Alias)
	c.Asset = cfg.Asset
	c.Intent = timing.Intent{Start: cfg.Start, Length: cfg.Length}
	c.SeedResolved()
}

// SeedResolved copies literal intent values into resolved timing,
// clamping to the non-negative/minimum-length invariants.
func (c *Clip) SeedResolved() {
	if sec, ok := c.Intent.Start.Seconds(); ok {
		start := timing.ToMillis(sec)
		if start < 0 {
			start = 0
		}
		c.Resolved.Start = start
	}
	if sec, ok := c.Intent.Length.Seconds(); ok {
		c.Resolved.Length = timing.ClampLength(timing.ToMillis(sec))
	}
}

// Config returns the clip's current serializable configuration.
func (c *Clip) Config() ClipConfig {
	return ClipConfig{
		Alias:  c.Alias,
		Asset:  c.Asset,
		Start:  c.Intent.Start,
		Length: c.Intent.Length,
	}
}

// IsEndLength reports whether the clip's current length intent is "end".
// This is the sole source of end-length membership.
func (c *Clip) IsEndLength() bool {
	return c.Intent.Length.Kind() == timing.KindEnd
}
