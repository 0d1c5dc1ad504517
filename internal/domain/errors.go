// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrAxialLengthMissing is returned when the axial length is absent
	// or not a positive measurement.
	ErrAxialLengthMissing = errors.New("axial length is required and must be positive")

	// ErrKeratometryMissing is returned when a keratometry reading is
	// absent or not a positive measurement.
	ErrKeratometryMissing = errors.New("keratometry is required and must be positive")

	// ErrACDExceedsAxialLength is returned when the anterior chamber depth
	// is not strictly smaller than the axial length.
	ErrACDExceedsAxialLength = errors.New("anterior chamber depth must be smaller than axial length")
)

// ValidationError identifies the biometry field that violated a fatal
// validation rule. Fatal errors abort a formula calculation outright and are
// never silently defaulted; they are distinct from the non-fatal Warning
// values that accumulate on results.
type ValidationError struct {
	Field string
	Err   error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

// Unwrap exposes the underlying sentinel so callers can use errors.Is.
func (e *ValidationError) Unwrap() error { return e.Err }

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field string, err error) *ValidationError {
	return &ValidationError{Field: field, Err: err}
}
