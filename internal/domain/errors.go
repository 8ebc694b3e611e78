// Package domain holds the error taxonomy, money helpers, and input
// validation shared by the rental record packages.
package domain

import (
	"errors"
	"fmt"
)

// Occupancy errors
var (
	ErrUnitUnavailable = errors.New("unit is not available")
	ErrUnitOccupied    = errors.New("unit is occupied by an active tenant")
)

// Lookup errors
var (
	ErrUnknownUnit    = errors.New("unit not found")
	ErrUnknownTenant  = errors.New("tenant not found")
	ErrUnknownBill    = errors.New("utility bill not found")
	ErrUnknownPayment = errors.New("payment not found")
)

// Constraint errors
var (
	ErrDuplicateUnitNumber = errors.New("unit number already exists")
)

// ValidationError reports a rejected input field, e.g. a non-numeric rent
// or an empty required value.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid input: " + e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is or wraps a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
