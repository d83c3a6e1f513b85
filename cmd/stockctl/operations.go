package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"stockroom/internal/api"
	"stockroom/internal/domain/reports"
	"stockroom/pkg/logger"
)

// app bundles the clients an operation can use.
type app struct {
	client  *api.Client
	reports *reports.Service
}

// opArgs holds the operation flags.
type opArgs struct {
	ID            string
	Data          string
	StartDate     string
	EndDate       string
	Supplier      string
	Product       string
	Customer      string
	PaymentStatus string
}

type operation struct {
	usage string
	run   func(ctx context.Context, a *app, args opArgs) (any, error)
}

var operations = map[string]operation{
	// Products
	"products.list": {"list products", func(ctx context.Context, a *app, _ opArgs) (any, error) {
		return a.client.ListProducts(ctx)
	}},
	"products.get": {"get product --id", withID(func(ctx context.Context, a *app, id string, _ opArgs) (any, error) {
		return a.client.GetProduct(ctx, id)
	})},
	"products.create": {"create product --data", withBody(func(ctx context.Context, a *app, body any, _ opArgs) (any, error) {
		return a.client.CreateProduct(ctx, body)
	})},
	"products.update": {"update product --id --data", withIDAndBody(func(ctx context.Context, a *app, id string, body any) (any, error) {
		return a.client.UpdateProduct(ctx, id, body)
	})},
	"products.delete": {"delete product --id", withID(func(ctx context.Context, a *app, id string, _ opArgs) (any, error) {
		return a.client.DeleteProduct(ctx, id)
	})},
	"products.low-stock": {"list low-stock products", func(ctx context.Context, a *app, _ opArgs) (any, error) {
		return a.client.ListLowStockProducts(ctx)
	}},

	// Suppliers
	"suppliers.list": {"list suppliers", func(ctx context.Context, a *app, _ opArgs) (any, error) {
		return a.client.ListSuppliers(ctx)
	}},
	"suppliers.get": {"get supplier --id", withID(func(ctx context.Context, a *app, id string, _ opArgs) (any, error) {
		return a.client.GetSupplier(ctx, id)
	})},
	"suppliers.create": {"create supplier --data", withBody(func(ctx context.Context, a *app, body any, _ opArgs) (any, error) {
		return a.client.CreateSupplier(ctx, body)
	})},
	"suppliers.update": {"update supplier --id --data", withIDAndBody(func(ctx context.Context, a *app, id string, body any) (any, error) {
		return a.client.UpdateSupplier(ctx, id, body)
	})},
	"suppliers.delete": {"delete supplier --id", withID(func(ctx context.Context, a *app, id string, _ opArgs) (any, error) {
		return a.client.DeleteSupplier(ctx, id)
	})},
	"suppliers.with-debt": {"list suppliers with outstanding debt", func(ctx context.Context, a *app, _ opArgs) (any, error) {
		return a.client.ListSuppliersWithDebt(ctx)
	}},

	// Stock-in
	"stock-ins.list": {"list stock-ins [--start --end --supplier --product --payment-status]", func(ctx context.Context, a *app, args opArgs) (any, error) {
		return a.client.ListStockIns(ctx, api.StockInFilter{
			StartDate:     args.StartDate,
			EndDate:       args.EndDate,
			Supplier:      args.Supplier,
			Product:       args.Product,
			PaymentStatus: args.PaymentStatus,
		})
	}},
	"stock-ins.get": {"get stock-in --id", withID(func(ctx context.Context, a *app, id string, _ opArgs) (any, error) {
		return a.client.GetStockIn(ctx, id)
	})},
	"stock-ins.create": {"create stock-in --data", withBody(func(ctx context.Context, a *app, body any, _ opArgs) (any, error) {
		return a.client.CreateStockIn(ctx, body)
	})},
	"stock-ins.update": {"update stock-in --id --data", withIDAndBody(func(ctx context.Context, a *app, id string, body any) (any, error) {
		return a.client.UpdateStockIn(ctx, id, body)
	})},
	"stock-ins.delete": {"delete stock-in --id", withID(func(ctx context.Context, a *app, id string, _ opArgs) (any, error) {
		return a.client.DeleteStockIn(ctx, id)
	})},

	// Stock-out
	"stock-outs.list": {"list stock-outs [--start --end --product --customer]", func(ctx context.Context, a *app, args opArgs) (any, error) {
		return a.client.ListStockOuts(ctx, api.StockOutFilter{
			StartDate: args.StartDate,
			EndDate:   args.EndDate,
			Product:   args.Product,
			Customer:  args.Customer,
		})
	}},
	"stock-outs.get": {"get stock-out --id", withID(func(ctx context.Context, a *app, id string, _ opArgs) (any, error) {
		return a.client.GetStockOut(ctx, id)
	})},
	"stock-outs.create": {"create stock-out --data", withBody(func(ctx context.Context, a *app, body any, _ opArgs) (any, error) {
		return a.client.CreateStockOut(ctx, body)
	})},
	"stock-outs.update": {"update stock-out --id --data", withIDAndBody(func(ctx context.Context, a *app, id string, body any) (any, error) {
		return a.client.UpdateStockOut(ctx, id, body)
	})},
	"stock-outs.delete": {"delete stock-out --id", withID(func(ctx context.Context, a *app, id string, _ opArgs) (any, error) {
		return a.client.DeleteStockOut(ctx, id)
	})},

	// Reports
	"reports.today-sales": {"today's sales", func(ctx context.Context, a *app, _ opArgs) (any, error) {
		return a.client.GetTodaySales(ctx)
	}},
	"reports.sales": {"normalized sales report --start --end", func(ctx context.Context, a *app, args opArgs) (any, error) {
		return a.reports.GetSalesReport(ctx, args.StartDate, args.EndDate)
	}},
	"reports.product-sales": {"product sales report [--start --end]", func(ctx context.Context, a *app, args opArgs) (any, error) {
		return a.client.GetProductSalesReport(ctx, args.StartDate, args.EndDate)
	}},
	"reports.stock-status": {"stock status report", func(ctx context.Context, a *app, _ opArgs) (any, error) {
		return a.client.GetStockStatusReport(ctx)
	}},
	"reports.supplier-deliveries": {"supplier deliveries report --start --end [--supplier]", func(ctx context.Context, a *app, args opArgs) (any, error) {
		return a.client.GetSupplierDeliveriesReport(ctx, args.StartDate, args.EndDate, args.Supplier)
	}},
	"reports.profit": {"profit report --start --end", func(ctx context.Context, a *app, args opArgs) (any, error) {
		return a.client.GetProfitReport(ctx, args.StartDate, args.EndDate)
	}},
	"reports.outstanding-debts": {"outstanding debts report", func(ctx context.Context, a *app, _ opArgs) (any, error) {
		return a.client.GetOutstandingDebtsReport(ctx)
	}},
	"reports.activity": {"activity report [--start --end]", func(ctx context.Context, a *app, args opArgs) (any, error) {
		return a.reports.GetActivityReport(ctx, args.StartDate, args.EndDate), nil
	}},

	"summary": {"today's sales, low stock, stock status and outstanding debts", runSummary},
}

// runSummary fetches the dashboard reports concurrently.
func runSummary(ctx context.Context, a *app, _ opArgs) (any, error) {
	fetchers := map[string]func(context.Context) (any, error){
		"todaySales":       a.client.GetTodaySales,
		"lowStock":         a.client.ListLowStockProducts,
		"stockStatus":      a.client.GetStockStatusReport,
		"outstandingDebts": a.client.GetOutstandingDebtsReport,
	}

	results := make(map[string]any, len(fetchers))
	values := make([]any, len(fetchers))
	keys := make([]string, 0, len(fetchers))
	for k := range fetchers {
		keys = append(keys, k)
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, key := range keys {
		i, key := i, key
		fetch := fetchers[key]
		g.Go(func() error {
			logger.Debug(gctx, "fetching summary report", "report", key)
			v, err := fetch(gctx)
			if err != nil {
				logger.Warn(gctx, "summary report failed", "report", key, "error", err)
				return fmt.Errorf("%s: %w", key, err)
			}
			values[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, key := range keys {
		results[key] = values[i]
	}
	return results, nil
}

func withID(fn func(ctx context.Context, a *app, id string, args opArgs) (any, error)) func(context.Context, *app, opArgs) (any, error) {
	return func(ctx context.Context, a *app, args opArgs) (any, error) {
		if args.ID == "" {
			return nil, fmt.Errorf("--id is required")
		}
		return fn(ctx, a, args.ID, args)
	}
}

func withBody(fn func(ctx context.Context, a *app, body any, args opArgs) (any, error)) func(context.Context, *app, opArgs) (any, error) {
	return func(ctx context.Context, a *app, args opArgs) (any, error) {
		body, err := parseBody(args.Data)
		if err != nil {
			return nil, err
		}
		return fn(ctx, a, body, args)
	}
}

func withIDAndBody(fn func(ctx context.Context, a *app, id string, body any) (any, error)) func(context.Context, *app, opArgs) (any, error) {
	return withID(func(ctx context.Context, a *app, id string, args opArgs) (any, error) {
		body, err := parseBody(args.Data)
		if err != nil {
			return nil, err
		}
		return fn(ctx, a, id, body)
	})
}

// parseBody decodes --data, reading it from a file when prefixed with @.
func parseBody(data string) (any, error) {
	if data == "" {
		return nil, fmt.Errorf("--data is required")
	}
	raw := []byte(data)
	if path, ok := strings.CutPrefix(data, "@"); ok {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read body file: %w", err)
		}
		raw = b
	}
	var body any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("decode --data: %w", err)
	}
	return body, nil
}
