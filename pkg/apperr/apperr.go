// Package apperr defines the domain error taxonomy shared by every
// service and controller.
//
// Services return apperr values; controllers map them to HTTP statuses
// through Status(). Anything that is not an apperr is treated as
// unexpected: logged server-side and returned to the client as a
// generic message, never as a stack trace.
//
//	if err := svc.Create(...); err != nil {
//	    c.Error(apperr.Status(err), apperr.Message(err))
//	    return
//	}
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a domain failure.
type Kind int

const (
	// Unexpected is the zero Kind: an unclassified internal failure.
	Unexpected Kind = iota
	// Unauthenticated — missing, invalid, or expired token.
	Unauthenticated
	// Forbidden — valid principal, insufficient scope or permission,
	// or an inactive account.
	Forbidden
	// Validation — malformed or incomplete payload.
	Validation
	// NotFound — no entity at the given id.
	NotFound
	// Conflict — uniqueness violation or insufficient stock.
	Conflict
)

// Error is a classified domain error.
type Error struct {
	Kind Kind
	Msg  string
	Err  error // wrapped cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// New creates a classified error with a client-visible message.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf creates a classified error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to a classified error.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf returns the Kind of err, or Unexpected for non-apperr errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unexpected
}

// Is reports whether err carries the given Kind.
func Is(err error, kind Kind) bool { return KindOf(err) == kind }

// Status maps err to the HTTP status the API surface uses.
// Conflict maps to 400 for parity with the original client contract,
// which reports uniqueness violations as plain validation failures.
func Status(err error) int {
	switch KindOf(err) {
	case Unauthenticated:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case Validation, Conflict:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-safe message for err. Unexpected errors
// collapse to a generic string so internals never leak.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != Unexpected {
		return e.Msg
	}
	return "Something went wrong"
}
