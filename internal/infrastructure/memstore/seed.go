package memstore

import (
	"time"

	"stockroom/internal/core/types"
)

// SeedDemo fills the store with a small demo inventory dated relative to now.
func SeedDemo(s *Store, now time.Time) {
	day := func(offset int) string {
		return now.UTC().AddDate(0, 0, offset).Format(types.ISOTimestamp)
	}

	s.Suppliers.Create(Record{IDField: "sup-acme", "name": "Acme Wholesale", "contact": "orders@acme.test", "outstandingDebt": 1250.0})
	s.Suppliers.Create(Record{IDField: "sup-north", "name": "Northwind Traders", "contact": "sales@northwind.test", "outstandingDebt": 0.0})

	s.Products.Create(Record{IDField: "prd-widget", "name": "Widget", "sku": "WID-001", "quantity": 120.0, "minStockLevel": 20.0, "costPrice": 2.5, "sellingPrice": 4.0})
	s.Products.Create(Record{IDField: "prd-gadget", "name": "Gadget", "sku": "GAD-001", "quantity": 8.0, "minStockLevel": 10.0, "costPrice": 12.0, "sellingPrice": 19.99})
	s.Products.Create(Record{IDField: "prd-gizmo", "name": "Gizmo", "sku": "GIZ-001", "quantity": 0.0, "minStockLevel": 5.0, "costPrice": 30.0, "sellingPrice": 45.0})

	s.StockIns.Create(Record{"date": day(-7), "supplier": "sup-acme", "product": "prd-widget", "quantity": 100.0, "unitCost": 2.5, "totalCost": 250.0, "paymentStatus": "paid", "amountPaid": 250.0})
	s.StockIns.Create(Record{"date": day(-3), "supplier": "sup-acme", "product": "prd-gadget", "quantity": 50.0, "unitCost": 12.0, "totalCost": 600.0, "paymentStatus": "partial", "amountPaid": 200.0})
	s.StockIns.Create(Record{"date": day(-2), "supplier": "sup-north", "product": "prd-gizmo", "quantity": 10.0, "unitCost": 30.0, "totalCost": 300.0, "paymentStatus": "paid", "amountPaid": 300.0})

	s.StockOuts.Create(Record{"date": day(-2), "product": "prd-widget", "customer": "Corner Shop", "quantity": 30.0, "unitPrice": 4.0, "totalAmount": 120.0})
	s.StockOuts.Create(Record{"date": day(-1), "product": "prd-gadget", "customer": "Corner Shop", "quantity": 42.0, "unitPrice": 19.99, "totalAmount": 839.58})
	s.StockOuts.Create(Record{"date": day(0), "product": "prd-gizmo", "customer": "City Market", "quantity": 10.0, "unitPrice": 45.0, "totalAmount": 450.0})
}
