package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/montage/internal/project"
)

// Scenario defines one conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario; it is also the golden
	// file name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Document is the inline project document (YAML).
	Document string `yaml:"document"`

	// Durations maps asset sources to canned probe durations in seconds.
	Durations map[string]float64 `yaml:"durations,omitempty"`

	// Flow is the sequence of editing steps applied after the initial
	// resolution pass.
	Flow []Step `yaml:"flow,omitempty"`

	// Assertions validate the final resolved timeline.
	Assertions []Assertion `yaml:"assertions"`
}

// Step is one editing operation.
type Step struct {
	// Op selects the operation: add_clip, delete_clip, add_track,
	// delete_track, move_clip, resize_clip, update_clip, undo, redo.
	Op string `yaml:"op"`

	Track int `yaml:"track,omitempty"`
	Clip  int `yaml:"clip,omitempty"`
	Index int `yaml:"index,omitempty"`

	// Config is the clip configuration for add_clip and update_clip.
	Config *project.ClipConfig `yaml:"config,omitempty"`

	// Seconds is the gesture value for move_clip (new start) and
	// resize_clip (new length).
	Seconds float64 `yaml:"seconds,omitempty"`
}

// Step op constants.
const (
	OpAddClip     = "add_clip"
	OpDeleteClip  = "delete_clip"
	OpAddTrack    = "add_track"
	OpDeleteTrack = "delete_track"
	OpMoveClip    = "move_clip"
	OpResizeClip  = "resize_clip"
	OpUpdateClip  = "update_clip"
	OpUndo        = "undo"
	OpRedo        = "redo"
)

var knownOps = map[string]bool{
	OpAddClip:     true,
	OpDeleteClip:  true,
	OpAddTrack:    true,
	OpDeleteTrack: true,
	OpMoveClip:    true,
	OpResizeClip:  true,
	OpUpdateClip:  true,
	OpUndo:        true,
	OpRedo:        true,
}

// Assertion validates the final timeline.
type Assertion struct {
	// Type selects the assertion: clip_timing, duration, track_count,
	// clip_count.
	Type string `yaml:"type"`

	Track int `yaml:"track,omitempty"`
	Clip  int `yaml:"clip,omitempty"`

	// Start and Length are expected resolved values in seconds
	// (clip_timing). Nil fields are not checked.
	Start  *float64 `yaml:"start,omitempty"`
	Length *float64 `yaml:"length,omitempty"`

	// Seconds is the expected total duration (duration).
	Seconds float64 `yaml:"seconds,omitempty"`

	// Count is the expected number of tracks (track_count) or of clips
	// in Track (clip_count).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertClipTiming = "clip_timing"
	AssertDuration   = "duration"
	AssertTrackCount = "track_count"
	AssertClipCount  = "clip_count"
)

// LoadScenario reads and parses a scenario YAML file. Unknown fields
// are rejected so typos fail loudly instead of silently passing.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Document == "" {
		return fmt.Errorf("document is required")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, step := range s.Flow {
		if !knownOps[step.Op] {
			return fmt.Errorf("flow[%d]: unknown op %q", i, step.Op)
		}
		switch step.Op {
		case OpAddClip, OpUpdateClip:
			if step.Config == nil {
				return fmt.Errorf("flow[%d]: %s requires config", i, step.Op)
			}
		}
	}

	for i, a := range s.Assertions {
		switch a.Type {
		case AssertClipTiming:
			if a.Start == nil && a.Length == nil {
				return fmt.Errorf("assertions[%d]: clip_timing requires start and/or length", i)
			}
		case AssertDuration, AssertTrackCount, AssertClipCount:
		default:
			return fmt.Errorf("assertions[%d]: unknown assertion type %q", i, a.Type)
		}
	}
	return nil
}
