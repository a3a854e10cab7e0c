// Package errors defines the application error value and the central
// HTTP failure-handling boundary.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrInvalidID marks an identifier that is not a valid ObjectID hex string.
// Repositories wrap it so the translator can remap it to an operational error.
var ErrInvalidID = errors.New("invalid identifier")

// AppError is an anticipated, safe-to-display failure (validation, not-found,
// auth) as opposed to an unexpected internal fault.
type AppError struct {
	StatusCode  int
	Status      string // "fail" for 4xx, "error" for 5xx
	Message     string
	Operational bool
	Err         error // underlying cause, never exposed to clients
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an operational application error.
func New(statusCode int, message string) *AppError {
	return &AppError{
		StatusCode:  statusCode,
		Status:      statusText(statusCode),
		Message:     message,
		Operational: true,
	}
}

// Newf creates an operational application error with a formatted message.
func Newf(statusCode int, format string, args ...interface{}) *AppError {
	return New(statusCode, fmt.Sprintf(format, args...))
}

// BadRequest creates a 400 operational error.
func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message)
}

// Unauthenticated creates a 401 operational error.
func Unauthenticated(message string) *AppError {
	return New(http.StatusUnauthorized, message)
}

// Forbidden creates a 403 operational error.
func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, message)
}

// NotFound creates a 404 operational error.
func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message)
}

// Internal wraps an unexpected error. It is not operational, so the guarded
// translator masks it with a generic message.
func Internal(err error) *AppError {
	return &AppError{
		StatusCode: http.StatusInternalServerError,
		Status:     "error",
		Message:    "Something went wrong! Please try again later.",
		Err:        err,
	}
}

func statusText(code int) string {
	if code >= 400 && code < 500 {
		return "fail"
	}
	return "error"
}
