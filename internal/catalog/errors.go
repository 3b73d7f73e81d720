package catalog

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrUnknownBrick = errors.New("unknown brick type")
	ErrUnknownMix   = errors.New("unknown mortar mix proportion")
)

// InvalidInputError reports a non-positive or out-of-domain input.
// It is returned before any computation takes place. Label carries the
// offending value for non-numeric fields.
type InvalidInputError struct {
	Field  string
	Value  float64
	Label  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "must be greater than 0"
	}
	if e.Label != "" {
		return fmt.Sprintf("invalid input: %s=%q %s", e.Field, e.Label, reason)
	}
	if e.Reason != "" && e.Value == 0 {
		return fmt.Sprintf("invalid input: %s %s", e.Field, reason)
	}
	return fmt.Sprintf("invalid input: %s=%v %s", e.Field, e.Value, reason)
}

// RequirePositive returns an *InvalidInputError unless v is finite and greater than 0.
func RequirePositive(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return &InvalidInputError{Field: field, Value: v}
	}
	return nil
}

// RequireNonNegative returns an *InvalidInputError unless v is finite and 0 or greater.
func RequireNonNegative(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return &InvalidInputError{Field: field, Value: v, Reason: "must be 0 or greater"}
	}
	return nil
}

// UnknownSystemError is returned when a construction system id is not part of the catalog.
type UnknownSystemError struct {
	ID string
}

func (e *UnknownSystemError) Error() string {
	return fmt.Sprintf("unknown construction system %q", e.ID)
}
