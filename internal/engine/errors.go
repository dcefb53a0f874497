package engine

import (
	"errors"
	"fmt"
)

// ErrInvalidIndex marks a structural error: a command addressed a track
// or clip index that no longer exists. UI-driven index drift is an
// expected condition, so the engine turns these into logged no-ops
// instead of failures; the command is not pushed to history.
var ErrInvalidIndex = errors.New("invalid index")

// invalidTrack wraps ErrInvalidIndex for a track index.
func invalidTrack(index int) error {
	return fmt.Errorf("track %d: %w", index, ErrInvalidIndex)
}

// invalidClip wraps ErrInvalidIndex for a (track, clip) index pair.
func invalidClip(track, clip int) error {
	return fmt.Errorf("track %d clip %d: %w", track, clip, ErrInvalidIndex)
}

// ErrNothingToUndo is returned by Undo on an empty history.
var ErrNothingToUndo = errors.New("nothing to undo")

// ErrNothingToRedo is returned by Redo on an empty redo stack.
var ErrNothingToRedo = errors.New("nothing to redo")
