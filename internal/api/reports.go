package api

import (
	"context"
	"net/url"

	"stockroom/internal/core/transport"
)

// Raw report fetchers. Payloads are returned without normalization; the
// normalized sales and activity reports live in domain/reports.

// GetTodaySales handles GET /api/reports/today-sales
func (c *Client) GetTodaySales(ctx context.Context) (any, error) {
	return c.do(ctx, transport.Get(pathReports+"/today-sales", nil))
}

// GetProductSalesReport handles GET /api/reports/product-sales
// Empty bounds are omitted from the query.
func (c *Client) GetProductSalesReport(ctx context.Context, startDate, endDate string) (any, error) {
	q := url.Values{}
	setParam(q, "startDate", startDate)
	setParam(q, "endDate", endDate)
	return c.do(ctx, transport.Get(pathReports+"/product-sales", q))
}

// GetStockStatusReport handles GET /api/reports/stock-status
func (c *Client) GetStockStatusReport(ctx context.Context) (any, error) {
	return c.do(ctx, transport.Get(pathReports+"/stock-status", nil))
}

// GetSupplierDeliveriesReport handles GET /api/reports/supplier-deliveries
// Both bounds are always sent; supplierID only when set.
func (c *Client) GetSupplierDeliveriesReport(ctx context.Context, startDate, endDate, supplierID string) (any, error) {
	q := periodQuery(startDate, endDate)
	setParam(q, "supplierId", supplierID)
	return c.do(ctx, transport.Get(pathReports+"/supplier-deliveries", q))
}

// GetProfitReport handles GET /api/reports/profit
func (c *Client) GetProfitReport(ctx context.Context, startDate, endDate string) (any, error) {
	return c.do(ctx, transport.Get(pathReports+"/profit", periodQuery(startDate, endDate)))
}

// GetOutstandingDebtsReport handles GET /api/reports/outstanding-debts
func (c *Client) GetOutstandingDebtsReport(ctx context.Context) (any, error) {
	return c.do(ctx, transport.Get(pathReports+"/outstanding-debts", nil))
}

func periodQuery(startDate, endDate string) url.Values {
	return url.Values{
		"startDate": {startDate},
		"endDate":   {endDate},
	}
}
