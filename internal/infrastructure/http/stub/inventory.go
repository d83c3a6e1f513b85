package stub

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/clock"
	"stockroom/internal/core/types"
	"stockroom/internal/infrastructure/memstore"
)

// Payment statuses of a stock-in.
const (
	PaymentPaid    = "paid"
	PaymentPartial = "partial"
	PaymentPending = "pending"
)

// inventory implements the stock bookkeeping behind the handlers.
type inventory struct {
	store *memstore.Store
	clock clock.Clock

	// movements serializes stock and debt adjustments.
	movements sync.Mutex
}

func newInventory(store *memstore.Store, clk clock.Clock) *inventory {
	return &inventory{store: store, clock: clk}
}

func (inv *inventory) productsHandler() *CollectionHandler {
	return &CollectionHandler{
		resource:   "Product",
		collection: inv.store.Products,
		beforeCreate: func(rec memstore.Record) error {
			if str(rec["name"]) == "" {
				return apperror.NewInvalidInput("name is required")
			}
			setDefault(rec, "quantity", 0.0)
			setDefault(rec, "minStockLevel", 0.0)
			return nil
		},
	}
}

func (inv *inventory) suppliersHandler() *CollectionHandler {
	return &CollectionHandler{
		resource:   "Supplier",
		collection: inv.store.Suppliers,
		beforeCreate: func(rec memstore.Record) error {
			if str(rec["name"]) == "" {
				return apperror.NewInvalidInput("name is required")
			}
			setDefault(rec, "outstandingDebt", 0.0)
			return nil
		},
	}
}

func (inv *inventory) stockInsHandler() *CollectionHandler {
	return &CollectionHandler{
		resource:   "Stock-in",
		collection: inv.store.StockIns,
		filter: func(c *gin.Context) (func(memstore.Record) bool, error) {
			p, err := parsePeriod(c, false)
			if err != nil {
				return nil, err
			}
			supplier, product, status := c.Query("supplier"), c.Query("product"), c.Query("paymentStatus")
			return func(rec memstore.Record) bool {
				return p.contains(rec["date"]) &&
					matches(rec["supplier"], supplier) &&
					matches(rec["product"], product) &&
					matches(rec["paymentStatus"], status)
			}, nil
		},
		beforeCreate: inv.receiveStock,
	}
}

func (inv *inventory) stockOutsHandler() *CollectionHandler {
	return &CollectionHandler{
		resource:   "Stock-out",
		collection: inv.store.StockOuts,
		filter: func(c *gin.Context) (func(memstore.Record) bool, error) {
			p, err := parsePeriod(c, false)
			if err != nil {
				return nil, err
			}
			product, customer := c.Query("product"), c.Query("customer")
			return func(rec memstore.Record) bool {
				return p.contains(rec["date"]) &&
					matches(rec["product"], product) &&
					matches(rec["customer"], customer)
			}, nil
		},
		beforeCreate: inv.issueStock,
	}
}

// receiveStock books a delivery: the product quantity grows and any unpaid
// remainder is added to the supplier's debt.
func (inv *inventory) receiveStock(rec memstore.Record) error {
	qty := types.ParseAmount(rec["quantity"])
	if qty <= 0 {
		return apperror.NewInvalidInput("quantity must be positive")
	}
	inv.setDefaultDate(rec)
	setDefault(rec, "totalCost", mul(qty, types.ParseAmount(rec["unitCost"])))
	setDefault(rec, "paymentStatus", PaymentPending)
	setDefault(rec, "amountPaid", 0.0)

	inv.movements.Lock()
	defer inv.movements.Unlock()

	inv.adjust(inv.store.Products, str(rec["product"]), "quantity", qty)
	if str(rec["paymentStatus"]) != PaymentPaid {
		unpaid := types.NewMoney(types.ParseAmount(rec["totalCost"])).
			Sub(types.NewMoney(types.ParseAmount(rec["amountPaid"])))
		if unpaid.IsPositive() {
			inv.adjust(inv.store.Suppliers, str(rec["supplier"]), "outstandingDebt", unpaid.InexactFloat64())
		}
	}
	return nil
}

// issueStock books a sale. Known products cannot go below zero.
func (inv *inventory) issueStock(rec memstore.Record) error {
	qty := types.ParseAmount(rec["quantity"])
	if qty <= 0 {
		return apperror.NewInvalidInput("quantity must be positive")
	}
	inv.setDefaultDate(rec)
	setDefault(rec, "totalAmount", mul(qty, types.ParseAmount(rec["unitPrice"])))

	inv.movements.Lock()
	defer inv.movements.Unlock()

	productID := str(rec["product"])
	if product, ok := inv.store.Products.Get(productID); ok {
		if types.ParseAmount(product["quantity"]) < qty {
			return apperror.NewInvalidInput("Insufficient stock").
				WithDetail("product", productID).
				WithDetail("available", product["quantity"])
		}
	}
	inv.adjust(inv.store.Products, productID, "quantity", -qty)
	return nil
}

// adjust adds delta to a numeric field of a record, if the record exists.
func (inv *inventory) adjust(coll *memstore.Collection, recordID, field string, delta float64) {
	rec, ok := coll.Get(recordID)
	if !ok {
		return
	}
	next := types.NewMoney(types.ParseAmount(rec[field])).Add(types.NewMoney(delta))
	coll.Update(recordID, memstore.Record{field: next.InexactFloat64()})
}

func (inv *inventory) setDefaultDate(rec memstore.Record) {
	if types.IsBlankDate(rec["date"]) {
		rec["date"] = inv.clock.Now().UTC().Format(types.ISOTimestamp)
	}
}

// LowStockProducts handles GET /api/products/low-stock
func (inv *inventory) LowStockProducts(c *gin.Context) {
	c.JSON(http.StatusOK, inv.store.Products.List(isLowStock))
}

// SuppliersWithDebt handles GET /api/suppliers/with-debt
func (inv *inventory) SuppliersWithDebt(c *gin.Context) {
	c.JSON(http.StatusOK, inv.store.Suppliers.List(hasDebt))
}

func isLowStock(rec memstore.Record) bool {
	return types.ParseAmount(rec["quantity"]) <= types.ParseAmount(rec["minStockLevel"])
}

func hasDebt(rec memstore.Record) bool {
	return types.ParseAmount(rec["outstandingDebt"]) > 0
}

// --- period and field helpers ---

// period is a half-open date range. A zero bound is unbounded.
type period struct {
	from, to time.Time
}

// parsePeriod reads startDate and endDate. endDate covers its whole day.
func parsePeriod(c *gin.Context, required bool) (period, error) {
	start, end := c.Query("startDate"), c.Query("endDate")
	if required && (start == "" || end == "") {
		return period{}, apperror.NewInvalidInput("startDate and endDate are required")
	}

	var p period
	if start != "" {
		t, err := types.ParseDate(start)
		if err != nil {
			return period{}, apperror.NewInvalidInput("invalid startDate").WithDetail("startDate", start)
		}
		p.from = t
	}
	if end != "" {
		t, err := types.ParseDate(end)
		if err != nil {
			return period{}, apperror.NewInvalidInput("invalid endDate").WithDetail("endDate", end)
		}
		p.to = t.Add(24 * time.Hour)
	}
	return p, nil
}

func (p period) contains(v any) bool {
	if p.from.IsZero() && p.to.IsZero() {
		return true
	}
	t, err := types.ParseDate(v)
	if err != nil {
		return false
	}
	if !p.from.IsZero() && t.Before(p.from) {
		return false
	}
	return p.to.IsZero() || t.Before(p.to)
}

// matches reports whether a string field equals want; empty want matches all.
func matches(v any, want string) bool {
	return want == "" || str(v) == want
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func setDefault(rec memstore.Record, field string, value any) {
	if types.IsBlank(rec[field]) {
		rec[field] = value
	}
}

func mul(a, b float64) float64 {
	return types.NewMoney(a).Mul(types.NewMoney(b)).InexactFloat64()
}
