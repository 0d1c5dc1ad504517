package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/oculab/iolcalc-api/internal/domain"
	"github.com/oculab/iolcalc-api/internal/domain/iol"
	"github.com/oculab/iolcalc-api/internal/service/auth"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var validationErr *domain.ValidationError

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, iol.ErrUnknownFormula):
		return http.StatusNotFound

	// Structurally unusable biometry
	case errors.As(err, &validationErr),
		errors.Is(err, domain.ErrAxialLengthMissing),
		errors.Is(err, domain.ErrKeratometryMissing),
		errors.Is(err, domain.ErrACDExceedsAxialLength):
		return http.StatusUnprocessableEntity

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	// Handle nil error
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErr *domain.ValidationError

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid token"

	case errors.Is(err, iol.ErrUnknownFormula):
		return "Unknown formula"

	// Validation errors carry a field name and a stable reason; both are
	// safe to surface.
	case errors.As(err, &validationErr):
		return fmt.Sprintf("Invalid %s: %v", validationErr.Field, validationErr.Err)

	case errors.Is(err, domain.ErrAxialLengthMissing):
		return "Axial length is required"

	case errors.Is(err, domain.ErrKeratometryMissing):
		return "Both keratometry readings are required"

	case errors.Is(err, domain.ErrACDExceedsAxialLength):
		return "Anterior chamber depth cannot exceed axial length"

	// Default case for unknown errors
	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from struct-tag
// validation errors and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Check if this is likely a validation error message
	if strings.Contains(errMsg, "Field validation") {
		// Extract the field name and validation tag
		// Example format: "Key: 'CalculationRequest.Biometry.K1' Error:Field validation for 'K1' failed on the 'required' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			// Further split to get just the field validation part
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				// Create a cleaner error message
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	// Fall back to a generic validation error message
	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "gt", "gte":
		return "must be positive"
	case "lt", "lte":
		return "out of range"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
