package api

import (
	"context"

	"stockroom/internal/core/transport"
)

// ListStockOuts handles GET /api/stock-outs with the filter's set fields as query.
func (c *Client) ListStockOuts(ctx context.Context, filter StockOutFilter) (any, error) {
	return c.do(ctx, transport.Get(pathStockOuts, filter.Query()))
}

// GetStockOut handles GET /api/stock-outs/:id
func (c *Client) GetStockOut(ctx context.Context, id string) (any, error) {
	return c.do(ctx, transport.Get(itemPath(pathStockOuts, id), nil))
}

// CreateStockOut handles POST /api/stock-outs
func (c *Client) CreateStockOut(ctx context.Context, stockOut any) (any, error) {
	return c.do(ctx, transport.Post(pathStockOuts, stockOut))
}

// UpdateStockOut handles PUT /api/stock-outs/:id
func (c *Client) UpdateStockOut(ctx context.Context, id string, stockOut any) (any, error) {
	return c.do(ctx, transport.Put(itemPath(pathStockOuts, id), stockOut))
}

// DeleteStockOut handles DELETE /api/stock-outs/:id
func (c *Client) DeleteStockOut(ctx context.Context, id string) (any, error) {
	return c.do(ctx, transport.Delete(itemPath(pathStockOuts, id)))
}
