package domain

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail checks that email looks like an address: something, an @,
// something, a dot, something, with no whitespace anywhere.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return NewValidationError("email", "is not a valid address", ErrInvalidEmail)
	}
	return nil
}

// IsBlank reports whether s is empty after trimming whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
