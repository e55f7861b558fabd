package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/recall-sprint/internal/domain"
)

// Error handling principles:
//  1. Domain sentinels (validation, insufficient pool) pass through unwrapped
//     so the API layer can map them with errors.Is/errors.As.
//  2. Unexpected store failures are wrapped in a ServiceError.
//  3. Persistence failures additionally wrap domain.ErrPersistence.

// ServiceError wraps errors from a service operation with context.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "draw_names", "record_result")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError wraps err for operation. Domain validation and pool errors
// are returned unchanged; nil yields nil.
func NewServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrInsufficientPool) {
		return err
	}
	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
