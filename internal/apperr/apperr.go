package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error so the envelope writer can map it to an HTTP
// status without handlers formatting responses themselves.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindMethodNotAllowed
	KindConflict
	KindUnavailable
)

// Error is a typed application error produced at the layer that detects
// the condition and unwrapped at the single envelope policy point.
type Error struct {
	Kind    Kind
	Code    string // short machine-readable label, e.g. "not_found"
	Message string // human-readable detail, names the offending field
	Err     error  // wrapped cause, never serialized
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Status maps the error kind to an HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case KindConflict:
		return http.StatusConflict
	case KindUnavailable, KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func newf(kind Kind, code, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Code: code, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...interface{}) *Error {
	return newf(KindValidation, "validation_failed", format, args...)
}

func Unauthenticated(format string, args ...interface{}) *Error {
	return newf(KindUnauthenticated, "unauthenticated", format, args...)
}

func Forbidden(format string, args ...interface{}) *Error {
	return newf(KindForbidden, "forbidden", format, args...)
}

func NotFound(format string, args ...interface{}) *Error {
	return newf(KindNotFound, "not_found", format, args...)
}

func MethodNotAllowed(format string, args ...interface{}) *Error {
	return newf(KindMethodNotAllowed, "method_not_allowed", format, args...)
}

func Conflict(format string, args ...interface{}) *Error {
	return newf(KindConflict, "conflict", format, args...)
}

func Unavailable(err error) *Error {
	return &Error{Kind: KindUnavailable, Code: "store_unavailable", Message: "storage backend unavailable", Err: err}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Code: "internal_error", Message: "internal server error", Err: err}
}

// From returns err as an *Error, wrapping unknown errors as internal.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internal(err)
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}
