// Package engine is the match-scoring state machine: pure transition
// functions over the model.Match aggregate. Every operation either fully
// applies or returns a typed error with the match untouched; callers own
// persistence, locking and transport concerns.
package engine

import (
	"errors"
	"fmt"
)

// The three engine-level error categories. Not-found is a repository
// concern and never originates here.
var (
	// ErrValidation marks a malformed command: unknown players, illegal
	// run counts, inconsistent wicket details. Resubmit corrected.
	ErrValidation = errors.New("invalid command")
	// ErrConflict marks a command that is well-formed but not allowed in
	// the current state: a pending selection, a duplicate interruption,
	// scoring a finished match. Resolve the prerequisite first.
	ErrConflict = errors.New("command conflicts with match state")
	// ErrInvariant marks an impossible state, usually corrupted input to
	// the resource math. Fatal; surfaced as an internal error upstream.
	ErrInvariant = errors.New("domain invariant violated")
)

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func conflictf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

func invariantf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvariant, fmt.Sprintf(format, args...))
}
