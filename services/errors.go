package services

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed core input: a negative quantity or price,
// an unknown discount type, an invalid status value, or an incomplete
// template variant. It is always raised before any computation or rendering
// proceeds; bad input is never silently corrected.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// RenderError reports an I/O failure while producing or writing an artifact.
type RenderError struct {
	Op  string // "spreadsheet" or "print"
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Op, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// ConsistencyError reports a broken internal invariant, e.g. the item-table
// row span a renderer actually wrote does not match the span recorded in the
// document plan. It is a defect, not a recoverable condition, and is
// surfaced to the caller unmodified.
type ConsistencyError struct {
	Detail string
}

func (e *ConsistencyError) Error() string {
	return "consistency: " + e.Detail
}
