// Package transport defines the HTTP transport contract used by the client layer.
// The client and report normalizer depend on this interface, not on a concrete
// implementation. The net/http implementation lives in infrastructure/http/client.
package transport

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Request describes one HTTP call relative to the configured base URL.
type Request struct {
	Method string
	Path   string

	// Query is appended to Path; nil or empty adds nothing.
	Query url.Values

	// Body is JSON-encoded when non-nil.
	Body any

	// Timeout bounds the whole exchange. Zero uses the transport default.
	Timeout time.Duration
}

// URL returns the path with its encoded query, as sent relative to the base URL.
func (r Request) URL() string {
	if len(r.Query) == 0 {
		return r.Path
	}
	return r.Path + "?" + r.Query.Encode()
}

// Response is a completed exchange with a 2xx status.
type Response struct {
	StatusCode int
	Header     http.Header

	// Data is the decoded JSON body: map[string]any, []any, string, float64,
	// bool, or nil when the body was empty. Non-JSON bodies are kept as string.
	Data any
}

// Transport performs HTTP calls.
type Transport interface {
	// Do executes req. Failures are returned as *Error.
	Do(ctx context.Context, req Request) (*Response, error)
}

// Get is shorthand for a GET request with an optional query.
func Get(path string, query url.Values) Request {
	return Request{Method: http.MethodGet, Path: path, Query: query}
}

// Post is shorthand for a POST request with a JSON body.
func Post(path string, body any) Request {
	return Request{Method: http.MethodPost, Path: path, Body: body}
}

// Put is shorthand for a PUT request with a JSON body.
func Put(path string, body any) Request {
	return Request{Method: http.MethodPut, Path: path, Body: body}
}

// Delete is shorthand for a DELETE request.
func Delete(path string) Request {
	return Request{Method: http.MethodDelete, Path: path}
}
