// Package apperr defines the error kinds shared by all service modules.
// Services return these; the HTTP layer maps each kind to a status code
// and never serializes raw internal errors.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a service failure.
type Kind string

const (
	// KindValidation marks missing or malformed input.
	KindValidation Kind = "validation"
	// KindNotFound marks a referenced record that does not exist.
	KindNotFound Kind = "not found"
	// KindConflict marks a uniqueness violation.
	KindConflict Kind = "conflict"
	// KindAuth marks bad credentials or an invalid token.
	KindAuth Kind = "auth"
)

// Error is a classified service error. Its message is stable across the
// in-process service bus, which transports errors as strings: the kind
// always appears as the message prefix.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Validation returns a KindValidation error.
func Validation(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

// NotFound returns a KindNotFound error for the named resource.
func NotFound(resource string) error {
	return &Error{Kind: KindNotFound, Message: resource + " not found"}
}

// Conflict returns a KindConflict error.
func Conflict(message string) error {
	return &Error{Kind: KindConflict, Message: message}
}

// Auth returns a KindAuth error.
func Auth(message string) error {
	return &Error{Kind: KindAuth, Message: message}
}

// IsKind reports whether err is an Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
