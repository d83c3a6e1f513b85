package stub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockroom/internal/api"
	"stockroom/internal/core/clock"
	appctx "stockroom/internal/core/context"
	"stockroom/internal/core/transport"
	"stockroom/internal/domain/reports"
	httpclient "stockroom/internal/infrastructure/http/client"
	"stockroom/internal/infrastructure/memstore"
	"stockroom/pkg/logger"
)

var stubNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

type stubEnv struct {
	store     *memstore.Store
	transport *httpclient.Transport
	client    *api.Client
	reports   *reports.Service
}

func newStubEnv(t *testing.T) *stubEnv {
	t.Helper()

	store := memstore.NewStore()
	memstore.SeedDemo(store, stubNow)

	srv := httptest.NewServer(NewRouter(RouterConfig{
		Store:  store,
		Logger: logger.Nop(),
		Clock:  clock.NewFake(stubNow),
	}))
	t.Cleanup(srv.Close)

	tr := httpclient.New(httpclient.DefaultConfig(srv.URL), logger.Nop())
	return &stubEnv{
		store:     store,
		transport: tr,
		client:    api.NewClient(tr),
		reports:   reports.NewService(tr, logger.Nop()),
	}
}

func asObject(t *testing.T, v any) map[string]any {
	t.Helper()
	obj, ok := v.(map[string]any)
	require.True(t, ok, "expected object, got %T", v)
	return obj
}

func asArray(t *testing.T, v any) []any {
	t.Helper()
	arr, ok := v.([]any)
	require.True(t, ok, "expected array, got %T", v)
	return arr
}

func TestStub_SalesReportThroughService(t *testing.T) {
	env := newStubEnv(t)

	report, err := env.reports.GetSalesReport(context.Background(), "2024-03-13", "2024-03-14")
	require.NoError(t, err)

	assert.True(t, report.Success)
	assert.Equal(t, 72.0, report.TotalSales)
	assert.InDelta(t, 959.58, report.TotalRevenue, 1e-9)
	assert.Len(t, report.ProductSales, 2)
	require.Len(t, report.DailySales, 2)
	assert.Equal(t, "2024-03-13", asObject(t, report.DailySales[0])["date"])
}

func TestStub_SalesReportRequiresPeriod(t *testing.T) {
	env := newStubEnv(t)

	_, err := env.transport.Do(context.Background(), transport.Get("/api/reports/sales", nil))

	tErr, ok := transport.AsError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, tErr.StatusCode)
	assert.Equal(t, "startDate and endDate are required", tErr.Message())
}

func TestStub_ActivityReportThroughService(t *testing.T) {
	env := newStubEnv(t)

	report := env.reports.GetActivityReport(context.Background(), "", "")

	assert.Equal(t, 6, report.TotalActivities)
	assert.InDelta(t, 1409.58, report.TotalSales, 1e-9)
	assert.Equal(t, 3, report.TotalDeliveries)
	assert.Equal(t, 3, report.ActivityDistribution[0].Count)
	assert.Equal(t, 3, report.ActivityDistribution[1].Count)

	require.NotEmpty(t, report.Data)
	assert.Equal(t, reports.ActivitySale, report.Data[0].ActivityType)
	assert.Equal(t, "Sold 10 x Gizmo", report.Data[0].Details)
}

func TestStub_ProductLifecycle(t *testing.T) {
	env := newStubEnv(t)
	ctx := context.Background()

	created, err := env.client.CreateProduct(ctx, map[string]any{
		"name":          "Sprocket",
		"quantity":      5,
		"minStockLevel": 10,
	})
	require.NoError(t, err)
	productID, _ := asObject(t, created)["_id"].(string)
	require.NotEmpty(t, productID)

	got, err := env.client.GetProduct(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, "Sprocket", asObject(t, got)["name"])

	lowStock, err := env.client.ListLowStockProducts(ctx)
	require.NoError(t, err)
	ids := make([]any, 0)
	for _, p := range asArray(t, lowStock) {
		ids = append(ids, asObject(t, p)["_id"])
	}
	assert.Contains(t, ids, productID)

	updated, err := env.client.UpdateProduct(ctx, productID, map[string]any{"quantity": 50})
	require.NoError(t, err)
	assert.Equal(t, 50.0, asObject(t, updated)["quantity"])
	assert.Equal(t, "Sprocket", asObject(t, updated)["name"])

	_, err = env.client.DeleteProduct(ctx, productID)
	require.NoError(t, err)

	_, err = env.client.GetProduct(ctx, productID)
	assert.True(t, transport.IsNotFound(err))
	tErr, _ := transport.AsError(err)
	assert.Equal(t, "Product not found", tErr.Message())
}

func TestStub_RejectsInvalidBodies(t *testing.T) {
	env := newStubEnv(t)
	ctx := context.Background()

	_, err := env.client.CreateProduct(ctx, []any{1, 2})
	assert.True(t, transport.IsStatus(err, http.StatusBadRequest))

	_, err = env.client.CreateSupplier(ctx, map[string]any{"contact": "x"})
	tErr, ok := transport.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "name is required", tErr.Message())
}

func TestStub_StockMovements(t *testing.T) {
	env := newStubEnv(t)
	ctx := context.Background()

	_, err := env.client.CreateStockOut(ctx, map[string]any{
		"product":  "prd-gadget",
		"customer": "City Market",
		"quantity": 9,
	})
	tErr, ok := transport.AsError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, tErr.StatusCode)
	assert.Equal(t, "Insufficient stock", tErr.Message())

	sale, err := env.client.CreateStockOut(ctx, map[string]any{
		"product":   "prd-widget",
		"customer":  "City Market",
		"quantity":  20,
		"unitPrice": 4,
	})
	require.NoError(t, err)
	assert.Equal(t, 80.0, asObject(t, sale)["totalAmount"])
	assert.Equal(t, "2024-03-15T12:00:00.000Z", asObject(t, sale)["date"])

	widget, _ := env.store.Products.Get("prd-widget")
	assert.Equal(t, 100.0, widget["quantity"])

	delivery, err := env.client.CreateStockIn(ctx, map[string]any{
		"supplier": "sup-acme",
		"product":  "prd-gadget",
		"quantity": 10,
		"unitCost": 12,
	})
	require.NoError(t, err)
	assert.Equal(t, 120.0, asObject(t, delivery)["totalCost"])
	assert.Equal(t, PaymentPending, asObject(t, delivery)["paymentStatus"])

	gadget, _ := env.store.Products.Get("prd-gadget")
	assert.Equal(t, 18.0, gadget["quantity"])
	acme, _ := env.store.Suppliers.Get("sup-acme")
	assert.Equal(t, 1370.0, acme["outstandingDebt"])
}

func TestStub_ListFilters(t *testing.T) {
	env := newStubEnv(t)
	ctx := context.Background()

	paid, err := env.client.ListStockIns(ctx, api.StockInFilter{PaymentStatus: PaymentPaid})
	require.NoError(t, err)
	assert.Len(t, asArray(t, paid), 2)

	bySupplier, err := env.client.ListStockIns(ctx, api.StockInFilter{Supplier: "sup-acme", Product: "prd-gadget"})
	require.NoError(t, err)
	assert.Len(t, asArray(t, bySupplier), 1)

	corner, err := env.client.ListStockOuts(ctx, api.StockOutFilter{Customer: "Corner Shop"})
	require.NoError(t, err)
	assert.Len(t, asArray(t, corner), 2)

	recent, err := env.client.ListStockOuts(ctx, api.StockOutFilter{Customer: "Corner Shop", StartDate: "2024-03-14"})
	require.NoError(t, err)
	assert.Len(t, asArray(t, recent), 1)

	_, err = env.client.ListStockOuts(ctx, api.StockOutFilter{StartDate: "yesterday"})
	assert.True(t, transport.IsStatus(err, http.StatusBadRequest))
}

func TestStub_RawReports(t *testing.T) {
	env := newStubEnv(t)
	ctx := context.Background()

	t.Run("today sales", func(t *testing.T) {
		data, err := env.client.GetTodaySales(ctx)
		require.NoError(t, err)
		obj := asObject(t, data)
		assert.Equal(t, "2024-03-15", obj["date"])
		assert.Equal(t, 1.0, obj["totalSales"])
		assert.Equal(t, 450.0, obj["totalRevenue"])
	})

	t.Run("product sales", func(t *testing.T) {
		data, err := env.client.GetProductSalesReport(ctx, "2024-03-14", "")
		require.NoError(t, err)
		rows := asArray(t, data)
		require.Len(t, rows, 2)
		assert.Equal(t, "Gadget", asObject(t, rows[0])["productName"])
	})

	t.Run("stock status", func(t *testing.T) {
		data, err := env.client.GetStockStatusReport(ctx)
		require.NoError(t, err)
		obj := asObject(t, data)
		assert.Equal(t, 3.0, obj["totalProducts"])
		assert.Equal(t, 1.0, obj["lowStock"])
		assert.Equal(t, 1.0, obj["outOfStock"])
	})

	t.Run("supplier deliveries", func(t *testing.T) {
		data, err := env.client.GetSupplierDeliveriesReport(ctx, "2024-03-01", "2024-03-31", "sup-acme")
		require.NoError(t, err)
		rows := asArray(t, data)
		require.Len(t, rows, 1)
		row := asObject(t, rows[0])
		assert.Equal(t, 2.0, row["deliveries"])
		assert.Equal(t, 150.0, row["totalQuantity"])
		assert.Equal(t, 850.0, row["totalCost"])
	})

	t.Run("profit", func(t *testing.T) {
		data, err := env.client.GetProfitReport(ctx, "2024-03-13", "2024-03-15")
		require.NoError(t, err)
		obj := asObject(t, data)
		assert.InDelta(t, 1409.58, obj["revenue"], 1e-9)
		assert.InDelta(t, 879.0, obj["cost"], 1e-9)
		assert.InDelta(t, 530.58, obj["profit"], 1e-9)
	})

	t.Run("outstanding debts", func(t *testing.T) {
		data, err := env.client.GetOutstandingDebtsReport(ctx)
		require.NoError(t, err)
		obj := asObject(t, data)
		assert.Equal(t, 1250.0, obj["totalDebt"])
		assert.Len(t, asArray(t, obj["suppliers"]), 1)
	})

	t.Run("suppliers with debt", func(t *testing.T) {
		data, err := env.client.ListSuppliersWithDebt(ctx)
		require.NoError(t, err)
		assert.Len(t, asArray(t, data), 1)
	})
}

func TestStub_EchoesTraceHeaders(t *testing.T) {
	env := newStubEnv(t)
	ctx := appctx.WithTrace(context.Background(), &appctx.TraceContext{TraceID: "trace-e2e", RequestID: "req-e2e"})

	resp, err := env.transport.Do(ctx, transport.Get("/api/products", nil))
	require.NoError(t, err)
	assert.Equal(t, "req-e2e", resp.Header.Get(appctx.HeaderRequestID))
	assert.Equal(t, "trace-e2e", resp.Header.Get(appctx.HeaderTraceID))
}
