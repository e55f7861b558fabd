package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when input or an entity fails validation.
	// More specific errors below wrap it, so errors.Is(err, ErrValidation)
	// identifies the whole class.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = fmt.Errorf("%w: invalid email format", ErrValidation)

	// ErrEmptyRecall is returned when a recall submission contains no names.
	ErrEmptyRecall = fmt.Errorf("%w: recall submission is empty", ErrValidation)

	// ErrInvalidStatus is returned when a status label is not one of the
	// known performance labels.
	ErrInvalidStatus = fmt.Errorf("%w: invalid status", ErrValidation)

	// ErrInsufficientPool is returned when the active name pool holds fewer
	// names than a sample requires.
	ErrInsufficientPool = errors.New("insufficient name pool")

	// ErrPersistence is returned when a finished run could not be saved.
	ErrPersistence = errors.New("result persistence failed")
)

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a ValidationError for field. err should be one of
// the sentinels above; ErrValidation is used when it is nil.
func NewValidationError(field, message string, err error) *ValidationError {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{Field: field, Message: message, Err: err}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped sentinel to support errors.Is.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// InsufficientPoolError reports how many names were available versus needed.
type InsufficientPoolError struct {
	Available int
	Required  int
}

// Error implements the error interface.
func (e *InsufficientPoolError) Error() string {
	return fmt.Sprintf("%s: %d active names, %d required", ErrInsufficientPool, e.Available, e.Required)
}

// Unwrap returns ErrInsufficientPool.
func (e *InsufficientPoolError) Unwrap() error {
	return ErrInsufficientPool
}
