package httpx

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// FieldError is one itemized validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is malformed or out-of-range input (400).
type ValidationError struct {
	Message string
	Details []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		parts = append(parts, d.Field+": "+d.Message)
	}
	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}

// NotFoundError means the entity is absent or not owned by the caller (404).
type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

// StateError means the operation is invalid for the entity's current state (400).
type StateError struct{ Message string }

func (e *StateError) Error() string { return e.Message }

// UnauthorizedError is a missing or invalid credential (401).
type UnauthorizedError struct{ Message string }

func (e *UnauthorizedError) Error() string { return e.Message }

// ForbiddenError is an authenticated caller without the required role (403).
type ForbiddenError struct{ Message string }

func (e *ForbiddenError) Error() string { return e.Message }

// ConflictError is a uniqueness violation (409).
type ConflictError struct{ Message string }

func (e *ConflictError) Error() string { return e.Message }

func Invalid(msg string, details ...FieldError) error {
	return &ValidationError{Message: msg, Details: details}
}

func NotFound(msg string) error { return &NotFoundError{Message: msg} }

func State(format string, args ...interface{}) error {
	return &StateError{Message: fmt.Sprintf(format, args...)}
}

func Conflict(msg string) error { return &ConflictError{Message: msg} }

func Unauthorized(msg string) error { return &UnauthorizedError{Message: msg} }

func Forbidden(msg string) error { return &ForbiddenError{Message: msg} }

// IsUniqueViolation reports whether err is a PostgreSQL unique constraint violation (23505).
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

// IsForeignKeyViolation reports whether err is a PostgreSQL foreign key violation (23503).
func IsForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23503"
	}
	return false
}
