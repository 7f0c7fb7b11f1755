// Package service holds the business logic of the API. Services return
// structured errors; handlers perform the single translation point to HTTP
// status codes and never see raw driver errors.
package service

import (
	"errors"
	"fmt"
)

// ErrInvalidCredentials covers both unknown identifier and wrong password.
// The two cases are indistinguishable to the caller to prevent user
// enumeration.
var ErrInvalidCredentials = errors.New("incorrect username or password")

// ErrInactiveUser is returned when a deactivated account authenticates with
// the correct password.
var ErrInactiveUser = errors.New("inactive user")

// ErrInvalidRefreshToken covers every refresh failure: malformed, expired,
// revoked, wrong type, unknown or inactive user, or token-version mismatch.
var ErrInvalidRefreshToken = errors.New("invalid refresh token")

// ErrForbidden is returned when a non-admin calls an admin-guarded
// operation.
var ErrForbidden = errors.New("forbidden")

// ErrNotFound is returned when a referenced entity does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError qualifies a validation failure with the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
