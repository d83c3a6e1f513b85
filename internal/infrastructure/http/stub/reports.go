package stub

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"stockroom/internal/core/types"
	"stockroom/internal/infrastructure/memstore"
)

// bucket accumulates quantity and money for one group.
type bucket struct {
	key      string
	count    int
	quantity decimal.Decimal
	amount   decimal.Decimal
}

// grouper keeps buckets in first-seen order.
type grouper struct {
	order   []*bucket
	buckets map[string]*bucket
}

func newGrouper() *grouper {
	return &grouper{buckets: make(map[string]*bucket)}
}

func (g *grouper) add(key string, quantity, amount float64) {
	b, ok := g.buckets[key]
	if !ok {
		b = &bucket{key: key}
		g.buckets[key] = b
		g.order = append(g.order, b)
	}
	b.count++
	b.quantity = b.quantity.Add(types.NewMoney(quantity))
	b.amount = b.amount.Add(types.NewMoney(amount))
}

func (inv *inventory) salesIn(p period) []memstore.Record {
	return inv.store.StockOuts.List(func(rec memstore.Record) bool {
		return p.contains(rec["date"])
	})
}

func (inv *inventory) productName(productID string) string {
	if product, ok := inv.store.Products.Get(productID); ok {
		if name := str(product["name"]); name != "" {
			return name
		}
	}
	return productID
}

func (inv *inventory) productSales(sales []memstore.Record) []gin.H {
	g := newGrouper()
	for _, sale := range sales {
		g.add(str(sale["product"]), types.ParseAmount(sale["quantity"]), types.ParseAmount(sale["totalAmount"]))
	}
	out := make([]gin.H, 0, len(g.order))
	for _, b := range g.order {
		out = append(out, gin.H{
			"product":      b.key,
			"productName":  inv.productName(b.key),
			"quantitySold": b.quantity.InexactFloat64(),
			"revenue":      b.amount.InexactFloat64(),
		})
	}
	return out
}

// TodaySales handles GET /api/reports/today-sales
func (inv *inventory) TodaySales(c *gin.Context) {
	today := inv.clock.Now().UTC().Truncate(24 * time.Hour)
	sales := inv.salesIn(period{from: today, to: today.Add(24 * time.Hour)})

	revenue := decimal.Zero
	for _, sale := range sales {
		revenue = revenue.Add(types.NewMoney(types.ParseAmount(sale["totalAmount"])))
	}
	c.JSON(http.StatusOK, gin.H{
		"date":         types.FormatDate(today),
		"totalSales":   len(sales),
		"totalRevenue": revenue.InexactFloat64(),
	})
}

// SalesReport handles GET /api/reports/sales
func (inv *inventory) SalesReport(c *gin.Context) {
	p, err := parsePeriod(c, true)
	if err != nil {
		handleError(c, err)
		return
	}
	sales := inv.salesIn(p)

	daily := newGrouper()
	total := newGrouper()
	for _, sale := range sales {
		qty, amount := types.ParseAmount(sale["quantity"]), types.ParseAmount(sale["totalAmount"])
		day := ""
		if t, err := types.ParseDate(sale["date"]); err == nil {
			day = types.FormatDate(t)
		}
		daily.add(day, qty, amount)
		total.add("", qty, amount)
	}

	dailySales := make([]gin.H, 0, len(daily.order))
	for _, b := range daily.order {
		dailySales = append(dailySales, gin.H{
			"date":     b.key,
			"quantity": b.quantity.InexactFloat64(),
			"revenue":  b.amount.InexactFloat64(),
		})
	}
	sort.Slice(dailySales, func(i, j int) bool {
		return dailySales[i]["date"].(string) < dailySales[j]["date"].(string)
	})

	totalSales, totalRevenue := 0.0, 0.0
	if len(total.order) > 0 {
		totalSales = total.order[0].quantity.InexactFloat64()
		totalRevenue = total.order[0].amount.InexactFloat64()
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Sales report generated",
		"totalSales":   totalSales,
		"totalRevenue": totalRevenue,
		"productSales": inv.productSales(sales),
		"dailySales":   dailySales,
	})
}

// ProductSales handles GET /api/reports/product-sales
func (inv *inventory) ProductSales(c *gin.Context) {
	p, err := parsePeriod(c, false)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv.productSales(inv.salesIn(p)))
}

// StockStatus handles GET /api/reports/stock-status
func (inv *inventory) StockStatus(c *gin.Context) {
	products := inv.store.Products.List(nil)

	items := make([]gin.H, 0, len(products))
	low, out := 0, 0
	for _, product := range products {
		status := "In Stock"
		switch {
		case types.ParseAmount(product["quantity"]) <= 0:
			status = "Out of Stock"
			out++
		case isLowStock(product):
			status = "Low Stock"
			low++
		}
		items = append(items, gin.H{
			"_id":           product[memstore.IDField],
			"name":          product["name"],
			"quantity":      types.ParseAmount(product["quantity"]),
			"minStockLevel": types.ParseAmount(product["minStockLevel"]),
			"status":        status,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"totalProducts": len(products),
		"lowStock":      low,
		"outOfStock":    out,
		"products":      items,
	})
}

// SupplierDeliveries handles GET /api/reports/supplier-deliveries
func (inv *inventory) SupplierDeliveries(c *gin.Context) {
	p, err := parsePeriod(c, false)
	if err != nil {
		handleError(c, err)
		return
	}
	supplierID := c.Query("supplierId")

	deliveries := inv.store.StockIns.List(func(rec memstore.Record) bool {
		return p.contains(rec["date"]) && matches(rec["supplier"], supplierID)
	})

	g := newGrouper()
	for _, d := range deliveries {
		g.add(str(d["supplier"]), types.ParseAmount(d["quantity"]), types.ParseAmount(d["totalCost"]))
	}
	out := make([]gin.H, 0, len(g.order))
	for _, b := range g.order {
		out = append(out, gin.H{
			"supplier":      b.key,
			"deliveries":    b.count,
			"totalQuantity": b.quantity.InexactFloat64(),
			"totalCost":     b.amount.InexactFloat64(),
		})
	}
	c.JSON(http.StatusOK, out)
}

// Profit handles GET /api/reports/profit
// Cost is each sold quantity at the product's current cost price.
func (inv *inventory) Profit(c *gin.Context) {
	p, err := parsePeriod(c, false)
	if err != nil {
		handleError(c, err)
		return
	}

	revenue, cost := decimal.Zero, decimal.Zero
	for _, sale := range inv.salesIn(p) {
		qty := types.ParseAmount(sale["quantity"])
		revenue = revenue.Add(types.NewMoney(types.ParseAmount(sale["totalAmount"])))
		if product, ok := inv.store.Products.Get(str(sale["product"])); ok {
			cost = cost.Add(types.NewMoney(mul(qty, types.ParseAmount(product["costPrice"]))))
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"startDate": c.Query("startDate"),
		"endDate":   c.Query("endDate"),
		"revenue":   revenue.InexactFloat64(),
		"cost":      cost.InexactFloat64(),
		"profit":    revenue.Sub(cost).InexactFloat64(),
	})
}

// OutstandingDebts handles GET /api/reports/outstanding-debts
func (inv *inventory) OutstandingDebts(c *gin.Context) {
	suppliers := inv.store.Suppliers.List(hasDebt)

	total := decimal.Zero
	for _, s := range suppliers {
		total = total.Add(types.NewMoney(types.ParseAmount(s["outstandingDebt"])))
	}
	c.JSON(http.StatusOK, gin.H{
		"totalDebt": total.InexactFloat64(),
		"suppliers": suppliers,
	})
}

// Activity handles GET /api/reports/activity
// Sales and deliveries are merged, newest first.
func (inv *inventory) Activity(c *gin.Context) {
	p, err := parsePeriod(c, false)
	if err != nil {
		handleError(c, err)
		return
	}
	inPeriod := func(rec memstore.Record) bool { return p.contains(rec["date"]) }

	type entry struct {
		at     time.Time
		record gin.H
	}
	var entries []entry

	for _, sale := range inv.store.StockOuts.List(inPeriod) {
		at, _ := types.ParseDate(sale["date"])
		entries = append(entries, entry{at, gin.H{
			"_id":          sale[memstore.IDField],
			"date":         sale["date"],
			"activityType": "Sale",
			"details":      fmt.Sprintf("Sold %v x %s", sale["quantity"], inv.productName(str(sale["product"]))),
			"amount":       types.ParseAmount(sale["totalAmount"]),
			"status":       "Completed",
		}})
	}
	for _, delivery := range inv.store.StockIns.List(inPeriod) {
		at, _ := types.ParseDate(delivery["date"])
		status := "Completed"
		if str(delivery["paymentStatus"]) != PaymentPaid {
			status = "Pending Payment"
		}
		entries = append(entries, entry{at, gin.H{
			"_id":          delivery[memstore.IDField],
			"date":         delivery["date"],
			"activityType": "Delivery",
			"details":      fmt.Sprintf("Received %v x %s", delivery["quantity"], inv.productName(str(delivery["product"]))),
			"amount":       types.ParseAmount(delivery["totalCost"]),
			"status":       status,
		}})
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].at.After(entries[j].at) })

	out := make([]gin.H, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.record)
	}
	c.JSON(http.StatusOK, out)
}
