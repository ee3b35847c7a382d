package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy. Services return these sentinels (usually wrapped in an *Error
// carrying the offending field) so callers can branch with errors.Is.
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidState     = errors.New("invalid state")
	ErrCapacityExceeded = errors.New("capacity exceeded")
	ErrValidation       = errors.New("validation failed")
	ErrForbidden        = errors.New("forbidden")
	ErrEmailTaken       = errors.New("email already registered")
	ErrInvalidInput     = errors.New("invalid input")
)

// Error is a structured operation failure: the taxonomy sentinel it belongs to,
// a human-readable message, and the offending field, if any.
type Error struct {
	sentinel error
	Message  string
	Field    string
}

// NewError wraps a taxonomy sentinel with a message and offending field.
func NewError(sentinel error, field, message string) *Error {
	return &Error{sentinel: sentinel, Field: field, Message: message}
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s (field %q)", e.Message, e.Field)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.sentinel }

// FieldOf returns the offending field of err if it is (or wraps) a domain *Error.
func FieldOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Field
	}
	return ""
}
