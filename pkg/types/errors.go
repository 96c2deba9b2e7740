package types

import (
	"errors"
	"fmt"
)

// Domain errors shared across components. Handlers map these to stable
// outward statuses; nothing else about an internal failure leaks.
var (
	// ErrNotFound is returned when a referenced menu item, cart line, or
	// order does not exist.
	ErrNotFound = errors.New("not found")
	// ErrEmptyCart is returned by checkout when the cart has zero lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrForbidden is returned when the actor lacks ownership or role for
	// the requested operation.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidTransition is returned for an illegal order status change.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrUnauthenticated is returned when a credential resolves to no actor.
	ErrUnauthenticated = errors.New("unauthenticated")
)

// ValidationError reports a malformed input field by name.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for a field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
