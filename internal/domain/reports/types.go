// Package reports provides the normalized sales and activity reports.
package reports

import (
	"encoding/json"
)

// --- Sales Report ---

// SalesReport is the normalized response of GET /api/reports/sales.
type SalesReport struct {
	Success bool
	Message string

	// Always present, defaulted when the server omits them or sends a
	// value of the wrong shape.
	TotalSales   float64
	TotalRevenue float64
	ProductSales []any
	DailySales   []any

	// Fields is the shallow merge of the defaults above with every top-level
	// field the server sent. Server values win on overlap, so a field here may
	// differ in type from its typed counterpart.
	Fields map[string]any
}

// MarshalJSON encodes the merged field set.
func (r *SalesReport) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Fields)
}

// --- Activity Report ---

// Fixed activity categories, in distribution order.
const (
	ActivitySale        = "Sale"
	ActivityDelivery    = "Delivery"
	ActivityStockUpdate = "Stock Update"
	ActivityPayment     = "Payment"
	ActivityReturn      = "Return"
)

// ActivityTypes lists the categories counted in ActivityDistribution.
var ActivityTypes = []string{
	ActivitySale,
	ActivityDelivery,
	ActivityStockUpdate,
	ActivityPayment,
	ActivityReturn,
}

// Defaults for activity fields the server leaves blank.
const (
	DefaultActivityType    = "Unknown"
	DefaultActivityDetails = "No details available"
	DefaultActivityStatus  = "Completed"
)

// Activity is one normalized activity record.
type Activity struct {
	ID           string  `json:"_id"`
	Date         string  `json:"date"`
	ActivityType string  `json:"activityType"`
	Details      string  `json:"details"`
	Amount       float64 `json:"amount"`
	Status       string  `json:"status"`
}

// ActivityCount is the number of raw entries of one category.
type ActivityCount struct {
	ActivityType string `json:"activityType"`
	Count        int    `json:"count"`
}

// ActivityReport is the normalized response of GET /api/reports/activity.
type ActivityReport struct {
	TotalActivities      int             `json:"totalActivities"`
	TotalSales           float64         `json:"totalSales"`
	TotalDeliveries      int             `json:"totalDeliveries"`
	ActivityDistribution []ActivityCount `json:"activityDistribution"`
	Data                 []Activity      `json:"data"`
}

// emptyActivityReport is returned when the report cannot be produced.
// Callers cannot tell it apart from a period with no activity.
func emptyActivityReport() *ActivityReport {
	return &ActivityReport{
		ActivityDistribution: []ActivityCount{},
		Data:                 []Activity{},
	}
}
