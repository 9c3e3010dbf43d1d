// Package validation provides input validators for user-supplied fields.
package validation

import (
	"errors"
	"regexp"
	"strings"
)

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateName ensures the display name is non-blank after trimming.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("Name is required")
	}
	return nil
}

// ValidateEmail ensures the address matches the basic user@host.tld shape.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return errors.New("Valid email is required")
	}
	return nil
}

// ValidatePassword enforces the minimum password length.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return errors.New("Password must be at least 6 characters")
	}
	return nil
}
