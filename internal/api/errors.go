package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/phrazzld/recall-sprint/internal/domain"
	"github.com/phrazzld/recall-sprint/internal/store"
)

// Client-facing messages. The pool and names messages are part of the wire contract.
const (
	MsgInsufficientPool = "Not enough active names in memory_names table."
	MsgNamesUnavailable = "Unable to load names."
	MsgInvalidPayload   = "Invalid payload."
	MsgPersistFailed    = "Unable to persist result."
	MsgUnexpected       = "An unexpected error occurred"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	case errors.Is(err, domain.ErrInsufficientPool):
		return http.StatusUnprocessableEntity

	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	switch {
	case err == nil:
		return MsgUnexpected
	case errors.Is(err, domain.ErrInsufficientPool):
		return MsgInsufficientPool
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return MsgInvalidPayload
	case errors.Is(err, domain.ErrPersistence):
		return MsgPersistFailed
	default:
		return MsgUnexpected
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return fmt.Sprintf("Invalid %s: %s", vErr.Field, vErr.Message)
	}

	errMsg := err.Error()
	// Example format: "Key: 'SubmitResultRequest.Email' Error:Field validation for 'Email' failed on the 'notblank' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return MsgInvalidPayload
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "notblank":
		return "cannot be blank"
	case "gte":
		return "cannot be negative"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
