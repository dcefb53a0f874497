package project

import (
	"fmt"

	"github.com/roach88/montage/internal/timing"
)

// AssetType discriminates the closed set of asset kinds a clip may carry.
type AssetType string

const (
	AssetVideo   AssetType = "video"
	AssetAudio   AssetType = "audio"
	AssetImage   AssetType = "image"
	AssetText    AssetType = "text"
	AssetCaption AssetType = "caption"
	AssetLuma    AssetType = "luma"
	AssetShape   AssetType = "shape"
	AssetHTML    AssetType = "html"
)

// assetTypes is the closed variant set. Anything else is a document error.
var assetTypes = map[AssetType]bool{
	AssetVideo:   true,
	AssetAudio:   true,
	AssetImage:   true,
	AssetText:    true,
	AssetCaption: true,
	AssetLuma:    true,
	AssetShape:   true,
	AssetHTML:    true,
}

// Valid reports whether the type is one of the known variants.
func (t AssetType) Valid() bool {
	return assetTypes[t]
}

// Probeable reports whether assets of this type carry an intrinsic media
// duration that a prober can measure. Only probeable assets participate
// in duration-based "auto" length resolution; the rest get the default.
func (t AssetType) Probeable() bool {
	switch t {
	case AssetVideo, AssetAudio, AssetLuma:
		return true
	default:
		return false
	}
}

// Asset is the type-tagged payload a clip renders. The payload is opaque
// to the timing core except for the three fields below: the discriminant,
// the source used by duration probing, and the trim offset subtracted
// from probed durations.
type Asset struct {
	Type AssetType      `json:"type" yaml:"type"`
	Src  string         `json:"src,omitempty" yaml:"src,omitempty"`
	Trim timing.Seconds `json:"trim,omitempty" yaml:"trim,omitempty"`
}

// Validate checks the variant tag and trim offset.
func (a Asset) Validate() error {
	if !a.Type.Valid() {
		return fmt.Errorf("unknown asset type %q", a.Type)
	}
	if a.Trim < 0 {
		return fmt.Errorf("asset trim must be non-negative, got %g", float64(a.Trim))
	}
	return nil
}
