// Package apperrors defines the error taxonomy shared by all service modules.
// The HTTP layer maps these onto status codes; the services never retry.
package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound signals an entity lookup miss. Wrap it with context:
//
//	fmt.Errorf("station %q: %w", name, apperrors.ErrNotFound)
var ErrNotFound = errors.New("not found")

// ValidationError signals bad user input (unknown relation keyword, malformed
// request body). Never retried.
type ValidationError struct {
	msg string
}

func NewValidation(format string, args ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string { return e.msg }

// Reasons attached to AccessDeniedError.
const (
	ReasonNotAuthenticated = "not_authenticated"
	ReasonAccessDenied     = "access_denied"
)

// AccessDeniedError signals a missing permission. Reason distinguishes an
// anonymous caller from an authenticated caller lacking the permission.
type AccessDeniedError struct {
	Reason     string
	Permission string
}

func (e *AccessDeniedError) Error() string {
	if e.Permission == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: missing permission %s", e.Reason, e.Permission)
}

// IsNotFound reports whether err is an entity lookup miss.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
