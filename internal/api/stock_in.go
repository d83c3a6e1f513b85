package api

import (
	"context"

	"stockroom/internal/core/transport"
)

// ListStockIns handles GET /api/stock-ins with the filter's set fields as query.
func (c *Client) ListStockIns(ctx context.Context, filter StockInFilter) (any, error) {
	return c.do(ctx, transport.Get(pathStockIns, filter.Query()))
}

// GetStockIn handles GET /api/stock-ins/:id
func (c *Client) GetStockIn(ctx context.Context, id string) (any, error) {
	return c.do(ctx, transport.Get(itemPath(pathStockIns, id), nil))
}

// CreateStockIn handles POST /api/stock-ins
func (c *Client) CreateStockIn(ctx context.Context, stockIn any) (any, error) {
	return c.do(ctx, transport.Post(pathStockIns, stockIn))
}

// UpdateStockIn handles PUT /api/stock-ins/:id
func (c *Client) UpdateStockIn(ctx context.Context, id string, stockIn any) (any, error) {
	return c.do(ctx, transport.Put(itemPath(pathStockIns, id), stockIn))
}

// DeleteStockIn handles DELETE /api/stock-ins/:id
func (c *Client) DeleteStockIn(ctx context.Context, id string) (any, error) {
	return c.do(ctx, transport.Delete(itemPath(pathStockIns, id)))
}
