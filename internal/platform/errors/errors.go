// Package errors carries the coded error type every layer of the portal
// speaks. Import it as perr
package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies an error for wire transport. Values are stable,
// append only
type ErrorCode uint16

const (
	// ErrorCodeUnknown covers everything not classified below
	ErrorCodeUnknown ErrorCode = iota

	// ErrorCodePanic marks a panic caught by middleware
	ErrorCodePanic

	// ErrorCodeUnavailable marks transient upstream or backend trouble
	ErrorCodeUnavailable

	// ErrorCodeTooManyRequests marks rate limiting
	ErrorCodeTooManyRequests

	// ErrorCodeConflict marks concurrent edit conflicts
	ErrorCodeConflict

	// ErrorCodeUnauthorized marks missing or failed authentication
	ErrorCodeUnauthorized

	// ErrorCodeForbidden marks a caller the resource is withheld from
	ErrorCodeForbidden

	// ErrorCodeInvalidArgument marks unusable input parameters
	ErrorCodeInvalidArgument

	// ErrorCodeValidation marks input that failed declarative validation
	ErrorCodeValidation

	// ErrorCodeJSON marks malformed JSON payloads
	ErrorCodeJSON

	// ErrorCodeNotFound marks absent resources
	ErrorCodeNotFound

	// ErrorCodeDuplicateKey marks unique constraint violations
	ErrorCodeDuplicateKey

	// ErrorCodeDB marks database failures with no better classification
	ErrorCodeDB

	// ErrorCodePathTraversal marks resource keys that try to escape the
	// resource root
	ErrorCodePathTraversal

	// ErrorCodeSessionInvalid marks session ids with no live session
	// behind them. Distinct from ErrorCodeUnavailable so callers can
	// redirect to login instead of failing
	ErrorCodeSessionInvalid
)

// Error carries a code, a developer facing message, an optional
// offending field and an optional wrapped cause
type Error struct {
	orig  error
	msg   string
	code  ErrorCode
	field string
}

// ErrNotFound is the shared not found sentinel
var ErrNotFound = New(ErrorCodeNotFound, "not found")

// Error implements the error interface
func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.orig != nil:
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	default:
		return e.msg
	}
}

// Unwrap exposes the wrapped cause to the stdlib errors helpers
func (e *Error) Unwrap() error { return e.orig }

// Code returns the classification
func (e *Error) Code() ErrorCode { return e.code }

// Field names the offending input field when one is known
func (e *Error) Field() string { return e.field }

// Constructors

// New builds an error with a fixed message
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf builds an error with a formatted message
func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrapf builds an error around a cause, keeping it reachable through
// Unwrap
func Wrapf(orig error, code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...), orig: orig}
}

// NotFoundf marks an absent resource
func NotFoundf(format string, a ...any) error { return Newf(ErrorCodeNotFound, format, a...) }

// InvalidArgf marks unusable input
func InvalidArgf(format string, a ...any) error { return Newf(ErrorCodeInvalidArgument, format, a...) }

// DBf marks a database failure
func DBf(format string, a ...any) error { return Newf(ErrorCodeDB, format, a...) }

// JSONErrf marks a malformed payload
func JSONErrf(format string, a ...any) error { return Newf(ErrorCodeJSON, format, a...) }

// PanicErrf marks a recovered panic
func PanicErrf(format string, a ...any) error { return Newf(ErrorCodePanic, format, a...) }

// Forbiddenf marks withheld access
func Forbiddenf(format string, a ...any) error { return Newf(ErrorCodeForbidden, format, a...) }

// Unavailablef marks transient trouble worth retrying
func Unavailablef(format string, a ...any) error { return Newf(ErrorCodeUnavailable, format, a...) }

// PathTraversalf marks a resource key that escapes the resource root
func PathTraversalf(format string, a ...any) error { return Newf(ErrorCodePathTraversal, format, a...) }

// SessionInvalidf marks a dead or unknown session
func SessionInvalidf(format string, a ...any) error { return Newf(ErrorCodeSessionInvalid, format, a...) }

// ValidationField marks a declarative validation failure on one field
func ValidationField(field, msg string) error {
	return &Error{code: ErrorCodeValidation, msg: msg, field: field}
}

// Inspection

// As returns the coded error inside err when there is one
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Root walks Unwrap to the deepest cause
func Root(err error) error {
	for err != nil {
		next := stderrs.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
	return nil
}

// CodeOf extracts the classification, ErrorCodeUnknown for foreign errors
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err classifies as code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// Wire transport

// Wire is the JSON shape of an error inside the response envelope
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

// WireFrom flattens any error into its wire shape. Foreign errors ship
// as ErrorCodeUnknown with their text
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return Wire{Code: e.code, Message: e.msg, Field: e.field}
	}
	return Wire{Code: ErrorCodeUnknown, Message: err.Error()}
}

// HTTPStatus maps any error to the status its code renders as
func HTTPStatus(err error) int { return statusOf(CodeOf(err)) }

func statusOf(c ErrorCode) int {
	switch c {
	case ErrorCodeNotFound:
		return http.StatusNotFound
	case ErrorCodeInvalidArgument:
		return http.StatusUnprocessableEntity
	case ErrorCodeDuplicateKey, ErrorCodeConflict:
		return http.StatusConflict
	case ErrorCodeValidation, ErrorCodeJSON:
		return http.StatusBadRequest
	case ErrorCodeUnauthorized, ErrorCodeSessionInvalid:
		return http.StatusUnauthorized
	case ErrorCodeForbidden, ErrorCodePathTraversal:
		return http.StatusForbidden
	case ErrorCodeTooManyRequests:
		return http.StatusTooManyRequests
	case ErrorCodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
