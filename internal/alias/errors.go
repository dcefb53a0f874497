package alias

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode categorizes alias resolution failures.
type ErrorCode string

const (
	// CodeCycleDetected indicates clips reference each other in a loop.
	CodeCycleDetected ErrorCode = "CYCLE_DETECTED"

	// CodeUnknownAlias indicates a reference to an alias name no clip carries.
	CodeUnknownAlias ErrorCode = "UNKNOWN_ALIAS"

	// CodeDuplicateAlias indicates two clips claim the same alias name.
	CodeDuplicateAlias ErrorCode = "DUPLICATE_ALIAS"

	// CodeUnresolvedTarget indicates the referenced clip's own timing field
	// is not numeric (it is "auto" or "end"), so there is no value to copy.
	CodeUnresolvedTarget ErrorCode = "UNRESOLVED_TARGET"
)

// Error is a fatal alias resolution failure. Alias errors indicate an
// authoring mistake the user must fix, so they carry enough structure to
// produce an actionable message: the ordered cycle path, or the full
// list of alias names the project actually defines.
type Error struct {
	Code    ErrorCode
	Message string

	// Cycle holds the ordered cycle path for CodeCycleDetected,
	// e.g. ["hero", "sidekick", "hero"].
	Cycle []string

	// Known holds the sorted list of defined alias names for
	// CodeUnknownAlias.
	Known []string
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Code {
	case CodeCycleDetected:
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Message, strings.Join(e.Cycle, " -> "))
	case CodeUnknownAlias:
		if len(e.Known) == 0 {
			return fmt.Sprintf("%s: %s (no aliases are defined)", e.Code, e.Message)
		}
		return fmt.Sprintf("%s: %s (known aliases: %s)", e.Code, e.Message, strings.Join(e.Known, ", "))
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

// IsCycle reports whether err is an alias cycle error.
// Uses errors.As to handle wrapped errors.
func IsCycle(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Code == CodeCycleDetected
}

// IsUnknownAlias reports whether err references an undefined alias.
func IsUnknownAlias(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Code == CodeUnknownAlias
}
