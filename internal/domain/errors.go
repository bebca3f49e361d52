package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyMoniker is returned when a camp has no moniker.
	ErrEmptyMoniker = errors.New("camp moniker cannot be empty")

	// ErrEmptyCampName is returned when a camp has no name.
	ErrEmptyCampName = errors.New("camp name cannot be empty")

	// ErrInvalidLength is returned when a camp length is outside 0-100 days.
	ErrInvalidLength = errors.New("camp length must be between 0 and 100 days")

	// ErrEmptyTalkTitle is returned when a talk has no title.
	ErrEmptyTalkTitle = errors.New("talk title cannot be empty")

	// ErrOrphanTalk is returned when a talk is not attached to a camp.
	ErrOrphanTalk = errors.New("talk must belong to a camp")
)

// ValidationError carries the field that failed validation along with the
// underlying sentinel, so callers can use errors.Is against the sentinel.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Field + " " + e.Message
}

// Unwrap returns the wrapped sentinel.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}
