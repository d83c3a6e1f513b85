// Package apperror provides structured errors for the inventory client.
// Every failure the report normalizer re-raises is an *AppError carrying a
// classification code and diagnostic details.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes (classification taxonomy)
const (
	// Caller errors
	CodeInvalidInput = "INVALID_INPUT"
	CodeNotFound     = "NOT_FOUND"

	// Response shape errors
	CodeEmptyResponse = "EMPTY_RESPONSE"

	// Transport failures
	CodeCancelled    = "CANCELLED"
	CodeServerError  = "SERVER_ERROR"
	CodeNoResponse   = "NO_RESPONSE"
	CodeRequestSetup = "REQUEST_SETUP_ERROR"

	// Server-side errors (inventory API stub)
	CodeInternal = "INTERNAL_ERROR"
)

// AppError is the standard error type of the client layer.
type AppError struct {
	// Code is the classification (one of the Code* constants)
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Details contains diagnostic context (status, body, headers, reason)
	Details map[string]any `json:"details,omitempty"`

	// HTTPStatus is the server status code, 0 when no response was received
	HTTPStatus int `json:"-"`

	// FromTransport reports whether the cause was raised by the HTTP transport
	FromTransport bool `json:"-"`

	// Err is the underlying error (not exposed in JSON)
	Err error `json:"-"`
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail adds a key-value pair to error details
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

// --- Factory functions ---

// NewInvalidInput creates an error for missing or unparseable arguments.
func NewInvalidInput(message string) *AppError {
	return &AppError{
		Code:    CodeInvalidInput,
		Message: message,
	}
}

// NewNotFound creates an error for a missing record.
func NewNotFound(resource, id string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"id": id},
	}
}

// NewInternal wraps an unexpected error. The cause is never sent to clients.
func NewInternal(err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewEmptyResponse creates an error for a response without a body.
func NewEmptyResponse() *AppError {
	return &AppError{
		Code:    CodeEmptyResponse,
		Message: "Empty response from server",
	}
}

// NewCancelled creates an error for a call aborted on the client side.
func NewCancelled(reason string) *AppError {
	return &AppError{
		Code:    CodeCancelled,
		Message: "Request was cancelled",
		Details: map[string]any{"reason": reason},
	}
}

// NewServerError creates an error for a non-2xx response.
// The server-supplied message is used when present.
func NewServerError(status int, message string, body any, header http.Header) *AppError {
	if message == "" {
		message = fmt.Sprintf("Server responded with status %d", status)
	}
	if body == nil {
		body = map[string]any{}
	}
	return &AppError{
		Code:       CodeServerError,
		Message:    message,
		HTTPStatus: status,
		Details: map[string]any{
			"status":  status,
			"data":    body,
			"headers": header,
		},
	}
}

// NewNoResponse creates an error for a request that got no reply.
func NewNoResponse() *AppError {
	return &AppError{
		Code:    CodeNoResponse,
		Message: "No response received from server",
	}
}

// NewRequestSetup creates an error for failures outside the network exchange.
func NewRequestSetup(message string) *AppError {
	if message == "" {
		message = "Error setting up request"
	}
	return &AppError{
		Code:    CodeRequestSetup,
		Message: message,
		Details: map[string]any{"message": message},
	}
}

// --- Helper functions ---

// IsAppError checks if error is AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError extracts AppError from error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsCode checks whether err carries the given classification.
func IsCode(err error, code string) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == code
	}
	return false
}
