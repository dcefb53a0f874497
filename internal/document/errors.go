package document

import (
	"errors"
	"fmt"
)

// Document error codes, stable across encodings.
const (
	ErrCodeRead        = "DOC_READ"
	ErrCodeParse       = "DOC_PARSE"
	ErrCodeSchema      = "DOC_SCHEMA"
	ErrCodeVersion     = "DOC_VERSION"
	ErrCodeInvalidClip = "DOC_INVALID_CLIP"
	ErrCodeFormat      = "DOC_FORMAT"
	ErrCodeWrite       = "DOC_WRITE"
)

// Error is a document load/save failure. Path points at the offending
// node ("tracks[1].clips[0]") when one is known.
type Error struct {
	Code    string
	Message string
	Path    string
	Err     error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Path, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsSchema reports whether err is a schema validation failure.
func IsSchema(err error) bool {
	var de *Error
	return errors.As(err, &de) && de.Code == ErrCodeSchema
}
