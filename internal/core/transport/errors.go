package transport

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind tags the variant of a transport failure.
type Kind int

const (
	// KindOther covers failures before or outside the network exchange
	// (request construction, body encoding, unreadable response).
	KindOther Kind = iota

	// KindTimeout means the request's own timeout elapsed.
	KindTimeout

	// KindHTTPStatus means the server answered with a non-2xx status.
	KindHTTPStatus

	// KindNetworkUnreachable means the request was sent but no reply arrived.
	KindNetworkUnreachable

	// KindCanceled means the caller's context ended before completion.
	KindCanceled
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindOther:
		return "other"
	case KindTimeout:
		return "timeout"
	case KindHTTPStatus:
		return "http_status"
	case KindNetworkUnreachable:
		return "network_unreachable"
	case KindCanceled:
		return "canceled"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is the failure type returned by Transport implementations.
// StatusCode, Body and Header are set only for KindHTTPStatus.
type Error struct {
	Kind   Kind
	Method string
	URL    string

	StatusCode int
	Body       any
	Header     http.Header

	Err error
}

// Error implements error interface
func (e *Error) Error() string {
	if e.Kind == KindHTTPStatus {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.URL, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %s: %v", e.Method, e.URL, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %s: %s", e.Method, e.URL, e.Kind)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *Error) Unwrap() error {
	return e.Err
}

// Message returns the "message" field of an object body, if any.
func (e *Error) Message() string {
	if body, ok := e.Body.(map[string]any); ok {
		if msg, ok := body["message"].(string); ok {
			return msg
		}
	}
	return ""
}

// NewStatusError creates a KindHTTPStatus error.
func NewStatusError(req Request, status int, body any, header http.Header) *Error {
	return &Error{
		Kind:       KindHTTPStatus,
		Method:     req.Method,
		URL:        req.URL(),
		StatusCode: status,
		Body:       body,
		Header:     header,
	}
}

// AsError extracts *Error from error chain
func AsError(err error) (*Error, bool) {
	var tErr *Error
	if errors.As(err, &tErr) {
		return tErr, true
	}
	return nil, false
}

// IsStatus reports whether err is a KindHTTPStatus error with the given code.
func IsStatus(err error, status int) bool {
	if tErr, ok := AsError(err); ok {
		return tErr.Kind == KindHTTPStatus && tErr.StatusCode == status
	}
	return false
}

// IsNotFound reports whether the server answered 404.
func IsNotFound(err error) bool {
	return IsStatus(err, http.StatusNotFound)
}
