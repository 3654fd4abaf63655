package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an application error so the HTTP layer can pick a status
// code without inspecting database or client library internals.
type Kind int

const (
	Unexpected Kind = iota
	Validation
	NotFound
	Authentication
	Authorization
	Conflict
	External
)

// Error is a kinded application error with a user-safe message. The wrapped
// cause is kept for logs only and is never serialized to clients.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to a new kinded error. The cause stays internal.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), cause: cause}
}

// KindOf reports the kind of err, or Unexpected for plain errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return Unexpected
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Message returns the user-safe message for err. Plain errors get a generic
// message so internal detail never reaches a client.
func Message(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "server error"
}
