package api

import "net/url"

// StockInFilter narrows the stock-in list. Empty fields are not sent.
type StockInFilter struct {
	StartDate     string
	EndDate       string
	Supplier      string
	Product       string
	PaymentStatus string
}

// Query builds the query string values for the set fields only.
func (f StockInFilter) Query() url.Values {
	q := url.Values{}
	setParam(q, "startDate", f.StartDate)
	setParam(q, "endDate", f.EndDate)
	setParam(q, "supplier", f.Supplier)
	setParam(q, "product", f.Product)
	setParam(q, "paymentStatus", f.PaymentStatus)
	return q
}

// StockOutFilter narrows the stock-out list. Empty fields are not sent.
type StockOutFilter struct {
	StartDate string
	EndDate   string
	Product   string
	Customer  string
}

// Query builds the query string values for the set fields only.
func (f StockOutFilter) Query() url.Values {
	q := url.Values{}
	setParam(q, "startDate", f.StartDate)
	setParam(q, "endDate", f.EndDate)
	setParam(q, "product", f.Product)
	setParam(q, "customer", f.Customer)
	return q
}

// setParam adds key=value unless value is empty.
func setParam(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}
