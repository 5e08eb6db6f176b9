package services

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// MinPasswordLength applies to self-registration
	MinPasswordLength = 8
	// MaxPasswordBytes is the bcrypt input limit
	MaxPasswordBytes = 72
)

// ErrWeakPassword is matched by every password policy failure
var ErrWeakPassword = fmt.Errorf("password must be at least %d characters", MinPasswordLength)

type passwordPolicyError string

func (e passwordPolicyError) Error() string { return string(e) }

func (e passwordPolicyError) Is(target error) bool { return target == ErrWeakPassword }

// ValidatePassword checks a new password against the registration policy.
// Failures satisfy errors.Is(err, ErrWeakPassword).
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	if len(password) > MaxPasswordBytes {
		return passwordPolicyError(fmt.Sprintf("password must be at most %d bytes", MaxPasswordBytes))
	}
	if strings.TrimSpace(password) == "" {
		return passwordPolicyError("password must not be blank")
	}
	return nil
}

// IsWeakPassword reports whether the password fails the policy
func IsWeakPassword(password string) bool {
	return ValidatePassword(password) != nil
}
