package api

import (
	"context"

	"stockroom/internal/core/transport"
)

// ListProducts handles GET /api/products
func (c *Client) ListProducts(ctx context.Context) (any, error) {
	return c.do(ctx, transport.Get(pathProducts, nil))
}

// GetProduct handles GET /api/products/:id
func (c *Client) GetProduct(ctx context.Context, id string) (any, error) {
	return c.do(ctx, transport.Get(itemPath(pathProducts, id), nil))
}

// CreateProduct handles POST /api/products
func (c *Client) CreateProduct(ctx context.Context, product any) (any, error) {
	return c.do(ctx, transport.Post(pathProducts, product))
}

// UpdateProduct handles PUT /api/products/:id
func (c *Client) UpdateProduct(ctx context.Context, id string, product any) (any, error) {
	return c.do(ctx, transport.Put(itemPath(pathProducts, id), product))
}

// DeleteProduct handles DELETE /api/products/:id
func (c *Client) DeleteProduct(ctx context.Context, id string) (any, error) {
	return c.do(ctx, transport.Delete(itemPath(pathProducts, id)))
}

// ListLowStockProducts handles GET /api/products/low-stock
func (c *Client) ListLowStockProducts(ctx context.Context) (any, error) {
	return c.do(ctx, transport.Get(pathProducts+"/low-stock", nil))
}
