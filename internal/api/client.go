// Package api provides the resource client for the inventory web API.
//
// Every method issues exactly one request and returns the decoded response
// body unchanged. Transport errors are returned as-is, never wrapped.
package api

import (
	"context"
	"net/url"

	"stockroom/internal/core/transport"
)

// Resource paths.
const (
	pathProducts  = "/api/products"
	pathSuppliers = "/api/suppliers"
	pathStockIns  = "/api/stock-ins"
	pathStockOuts = "/api/stock-outs"
	pathReports   = "/api/reports"
)

// Client maps resource actions onto HTTP calls.
// It holds no mutable state and is safe for concurrent use.
type Client struct {
	transport transport.Transport
}

// NewClient creates a resource client on top of the given transport.
func NewClient(t transport.Transport) *Client {
	return &Client{transport: t}
}

// do issues req and returns the decoded payload.
func (c *Client) do(ctx context.Context, req transport.Request) (any, error) {
	resp, err := c.transport.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, nil
	}
	return resp.Data, nil
}

// itemPath returns base + "/" + the escaped identifier.
func itemPath(base, id string) string {
	return base + "/" + url.PathEscape(id)
}
