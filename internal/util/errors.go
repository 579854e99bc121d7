package util

import (
	"errors"
	"fmt"
)

// Error taxonomy. Services return these (or wrap them); the controller
// layer maps them onto HTTP statuses in response.go.
var (
	ErrUnauthorized  = errors.New("authentication required")
	ErrForbidden     = errors.New("permission denied")
	ErrNotFound      = errors.New("resource not found")
	ErrPrecondition  = errors.New("precondition failed")
	ErrUpstream      = errors.New("upstream service failure")
	ErrUserDisabled  = errors.New("account is deactivated")
	ErrUsernameTaken = errors.New("username already in use")

	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAlreadyVerified enforces at-most-one verification per
	// (assessment, verifier).
	ErrAlreadyVerified = fmt.Errorf("%w: assessment already verified by this verifier", ErrPrecondition)

	// ErrDuplicateAssignment rejects a second identical
	// trainee/unit/assessor link.
	ErrDuplicateAssignment = fmt.Errorf("%w: assignment already exists", ErrPrecondition)
)

// ValidationError carries field-level detail for malformed input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
