package springs

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by springs operations.
//
// Callers should use [errors.Is] to check error types.
var (
	// ErrMalformedRow indicates a record line could not be parsed.
	//
	// The concrete error is a [*MalformedRowError] carrying the line and
	// the reason.
	ErrMalformedRow = errors.New("springs: malformed row")

	// ErrInvalidRun indicates a run passed to [NewRow] has a length below 1
	// or an unknown condition.
	ErrInvalidRun = errors.New("springs: invalid run")

	// ErrInvalidTarget indicates a damaged group length below 1.
	ErrInvalidTarget = errors.New("springs: invalid group length")

	// ErrInvalidUnfold indicates an unfold factor below 1.
	ErrInvalidUnfold = errors.New("springs: unfold factor must be at least 1")

	// ErrCountOverflow indicates an arrangement count or a sum of counts
	// does not fit in a uint64.
	ErrCountOverflow = errors.New("springs: count overflows uint64")
)

// MalformedRowError describes why a record line was rejected.
type MalformedRowError struct {
	Line   string
	Reason string
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("%s: %s: %q", ErrMalformedRow, e.Reason, e.Line)
}

func (e *MalformedRowError) Unwrap() error {
	return ErrMalformedRow
}

func malformed(line, format string, args ...any) error {
	return &MalformedRowError{Line: line, Reason: fmt.Sprintf(format, args...)}
}
