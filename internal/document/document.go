package document

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/roach88/montage/internal/project"
	"github.com/roach88/montage/internal/timing"
)

// Version is the current document format version.
const Version = 1

// Document is the serialized project shape shared by the JSON and YAML
// encodings.
type Document struct {
	Version int     `json:"version" yaml:"version"`
	Name    string  `json:"name,omitempty" yaml:"name,omitempty"`
	Tracks  []Track `json:"tracks" yaml:"tracks"`
}

// Track is one ordered clip list.
type Track struct {
	Clips []project.ClipConfig `json:"clips" yaml:"clips"`
}

// Validate checks the semantic rules the schema cannot express
// field-locally: version support, asset payloads, and field/mode
// pairings of timing intent.
func (d *Document) Validate() error {
	if d.Version != Version {
		return &Error{
			Code:    ErrCodeVersion,
			Message: fmt.Sprintf("unsupported document version %d (supported: %d)", d.Version, Version),
		}
	}
	for ti, track := range d.Tracks {
		for ci, clip := range track.Clips {
			if err := validateClip(clip); err != nil {
				return &Error{
					Code:    ErrCodeInvalidClip,
					Message: err.Error(),
					Path:    fmt.Sprintf("tracks[%d].clips[%d]", ti, ci),
				}
			}
		}
	}
	return nil
}

func validateClip(cfg project.ClipConfig) error {
	if err := cfg.Asset.Validate(); err != nil {
		return err
	}
	if cfg.Start.Kind() == timing.KindEnd {
		return fmt.Errorf("%q is not a valid start position", cfg.Start)
	}
	if sec, ok := cfg.Start.Seconds(); ok && sec < 0 {
		return fmt.Errorf("start must be non-negative, got %g", float64(sec))
	}
	if sec, ok := cfg.Length.Seconds(); ok && sec <= 0 {
		return fmt.Errorf("length must be positive, got %g", float64(sec))
	}
	return nil
}

// ToProject materializes the document into a fresh project aggregate.
// Clip identities are minted here; resolution has not run yet, so only
// literal timing is seeded.
func (d *Document) ToProject() (*project.Project, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	p := project.New()
	for ti, track := range d.Tracks {
		t := &project.Track{}
		for _, cfg := range track.Clips {
			t.InsertClip(len(t.Clips), project.NewClip(uuid.Must(uuid.NewV7()).String(), cfg))
		}
		p.InsertTrack(ti, t)
	}
	return p, nil
}

// FromProject captures a project's current intent as a document.
// Resolved timing is deliberately not serialized; it is derived state
// the next load recomputes.
func FromProject(name string, p *project.Project) *Document {
	d := &Document{Version: Version, Name: name}
	for _, t := range p.Tracks {
		track := Track{}
		for _, c := range t.Clips {
			track.Clips = append(track.Clips, c.Config())
		}
		d.Tracks = append(d.Tracks, track)
	}
	return d
}
