package auth

import (
	"errors"
	"strings"
	"unicode"
)

var (
	// ErrPasswordTooShort indicates the password is under the minimum length.
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	// ErrPasswordNoDigit indicates the password lacks a numeric character.
	ErrPasswordNoDigit = errors.New("password must contain at least one number")
	// ErrPasswordNoSpecial indicates the password lacks a special character.
	ErrPasswordNoSpecial = errors.New("password must contain at least one special character")
)

const specialChars = `!@#$%^&*()_+-=[]{};':"\|,.<>/?~` + "`"

// ValidatePassword enforces the sign-up password policy: minimum 8 characters,
// at least one digit and at least one special character.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return ErrPasswordTooShort
	}

	hasDigit := false
	for _, r := range password {
		if unicode.IsDigit(r) {
			hasDigit = true
			break
		}
	}
	if !hasDigit {
		return ErrPasswordNoDigit
	}

	if !strings.ContainsAny(password, specialChars) {
		return ErrPasswordNoSpecial
	}

	return nil
}
