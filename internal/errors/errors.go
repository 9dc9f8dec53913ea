// Package errors provides coded domain errors for the book recommender.
//
// Per-request recommendation outcomes (invalid input, unmapped genres, no matches)
// are not errors and never travel through this package. Errors are reserved for
// broken infrastructure: a catalog that cannot be loaded or reached, or a malformed
// API request.
//
// Usage:
//
//	books, err := catalog.LoadFile(path)
//	if err != nil {
//	    return errors.Wrap(err, errors.CodeCatalog, "load catalog")
//	}
//
//	if errors.Is(err, errors.ErrCatalog) {
//	    log.WithError(err).Error("catalog unavailable")
//	}
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

// Code represents a machine-readable error code.
type Code string

// Error codes used throughout the application.
const (
	CodeValidation  Code = "VALIDATION"
	CodeNotFound    Code = "NOT_FOUND"
	CodeCatalog     Code = "CATALOG"
	CodeUnavailable Code = "UNAVAILABLE"
	CodeRateLimited Code = "RATE_LIMITED"
	CodeInternal    Code = "INTERNAL"
)

// HTTPStatus returns the appropriate HTTP status code for an error code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	case CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Error is a domain error with a code, message, and optional details.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches any *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// HTTPStatus returns the HTTP status code for this error.
func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// WithDetails returns a copy of the error carrying details.
func (e *Error) WithDetails(details any) *Error {
	return &Error{Code: e.Code, Message: e.Message, Details: details, cause: e.cause}
}

// Sentinel errors for use with errors.Is().
var (
	ErrValidation  = &Error{Code: CodeValidation, Message: "validation error"}
	ErrNotFound    = &Error{Code: CodeNotFound, Message: "not found"}
	ErrCatalog     = &Error{Code: CodeCatalog, Message: "catalog error"}
	ErrUnavailable = &Error{Code: CodeUnavailable, Message: "service unavailable"}
	ErrInternal    = &Error{Code: CodeInternal, Message: "internal error"}
)

// Validation creates a validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// Validationf creates a validation error with formatted message.
func Validationf(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// ValidationWithDetails creates a validation error with details.
func ValidationWithDetails(msg string, details any) *Error {
	return &Error{Code: CodeValidation, Message: msg, Details: details}
}

// NotFoundf creates a not found error with formatted message.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Catalogf creates a catalog error with formatted message.
func Catalogf(format string, args ...any) *Error {
	return &Error{Code: CodeCatalog, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with a code and message.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, cause: err}
}

// Wrapf wraps an error with a code and formatted message.
func Wrapf(err error, code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), cause: err}
}
