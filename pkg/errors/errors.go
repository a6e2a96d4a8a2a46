package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidCredentials is returned for unknown usernames and for wrong
	// passwords alike, so callers cannot tell which one failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRefreshInvalid     = errors.New("refresh token invalid or expired")

	ErrTokenMissing = errors.New("authorization token missing")
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	ErrUserNotFound       = errors.New("user not found")
	ErrOnboardingNotFound = errors.New("onboarding not found")
	ErrProductNotFound    = errors.New("product not found")

	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")

	// ErrMissingSecret aborts service startup; it must never surface per-request.
	ErrMissingSecret = errors.New("signing secret not configured")
)

// ValidationError carries per-field messages for a malformed request body.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
