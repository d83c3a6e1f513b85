package api

import (
	"context"

	"stockroom/internal/core/transport"
)

// ListSuppliers handles GET /api/suppliers
func (c *Client) ListSuppliers(ctx context.Context) (any, error) {
	return c.do(ctx, transport.Get(pathSuppliers, nil))
}

// GetSupplier handles GET /api/suppliers/:id
func (c *Client) GetSupplier(ctx context.Context, id string) (any, error) {
	return c.do(ctx, transport.Get(itemPath(pathSuppliers, id), nil))
}

// CreateSupplier handles POST /api/suppliers
func (c *Client) CreateSupplier(ctx context.Context, supplier any) (any, error) {
	return c.do(ctx, transport.Post(pathSuppliers, supplier))
}

// UpdateSupplier handles PUT /api/suppliers/:id
func (c *Client) UpdateSupplier(ctx context.Context, id string, supplier any) (any, error) {
	return c.do(ctx, transport.Put(itemPath(pathSuppliers, id), supplier))
}

// DeleteSupplier handles DELETE /api/suppliers/:id
func (c *Client) DeleteSupplier(ctx context.Context, id string) (any, error) {
	return c.do(ctx, transport.Delete(itemPath(pathSuppliers, id)))
}

// ListSuppliersWithDebt handles GET /api/suppliers/with-debt
func (c *Client) ListSuppliersWithDebt(ctx context.Context) (any, error) {
	return c.do(ctx, transport.Get(pathSuppliers+"/with-debt", nil))
}
