package transport

import (
	"context"
	"sync"
)

// MockTransport is a test implementation of Transport.
// It records every request and delegates to DoFunc when set.
type MockTransport struct {
	DoFunc func(ctx context.Context, req Request) (*Response, error)

	mu       sync.Mutex
	requests []Request
}

// Do implements Transport.
func (m *MockTransport) Do(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.DoFunc != nil {
		return m.DoFunc(ctx, req)
	}
	// Default: empty 200 response
	return &Response{StatusCode: 200}, nil
}

// Requests returns a copy of the recorded requests.
func (m *MockTransport) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// Calls returns how many requests were issued.
func (m *MockTransport) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// Ensure compile-time interface compliance.
var _ Transport = (*MockTransport)(nil)
