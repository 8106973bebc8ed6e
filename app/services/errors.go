package services

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the service layer. Controllers translate them
// into HTTP statuses; anything else is treated as an opaque store failure.
var (
	// ErrNotFound: the requested product, order or user does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyOwned: the user already holds a completed purchase of the
	// product. Distinguishable from a generic failure so the storefront can
	// tell the buyer they own the item.
	ErrAlreadyOwned = errors.New("already owned")

	// ErrForbidden: the principal's role does not permit the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidCredentials: login failed; deliberately does not reveal
	// whether the email exists.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrLinkExpired: a download token is past its validity window.
	ErrLinkExpired = errors.New("download link expired")
)

// ValidationError carries field-level messages produced after the struct-tag
// rules pass (cross-field invariants like the product payload check).
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d field(s)", len(e.Fields))
}

// Invalid builds a single-field ValidationError.
func Invalid(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}
