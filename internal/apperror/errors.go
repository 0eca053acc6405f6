// Package apperror provides the typed errors the web layer returns to the
// Echo error handler. Each error carries an HTTP status code and a message
// safe to show in the browser.
//
// Transport faults against the movie service never appear here -- the
// gateway turns those into failure envelopes before any handler sees them.
// These errors cover what's left: bad input, missing authentication, and
// infrastructure failures of our own (the session store, mostly).
package apperror

import (
	"fmt"
	"net/http"
)

// AppError is the domain error type. The Echo error handler maps it to a
// JSON response; Internal is only ever logged.
type AppError struct {
	// Code is the HTTP status code (e.g., 400, 401, 500).
	Code int `json:"-"`

	// Type is a machine-readable classifier (e.g., "unauthorized").
	Type string `json:"type"`

	// Message is a human-readable description safe for the client.
	Message string `json:"message"`

	// Internal holds the underlying error for logging. Never exposed.
	Internal error `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Type, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *AppError) Unwrap() error {
	return e.Internal
}

// NewBadRequest creates a 400 Bad Request error.
func NewBadRequest(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Type:    "bad_request",
		Message: message,
	}
}

// NewUnauthorized creates a 401 Unauthorized error.
func NewUnauthorized(message string) *AppError {
	return &AppError{
		Code:    http.StatusUnauthorized,
		Type:    "unauthorized",
		Message: message,
	}
}

// NewNotFound creates a 404 Not Found error.
func NewNotFound(message string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Type:    "not_found",
		Message: message,
	}
}

// NewInternal creates a 500 error. The real cause is stored in Internal for
// logging; the client only sees a generic message.
func NewInternal(err error) *AppError {
	return &AppError{
		Code:     http.StatusInternalServerError,
		Type:     "internal_error",
		Message:  "An unexpected error occurred. Please try again.",
		Internal: err,
	}
}
