package saleslog

import "time"

// Sale is one completed over-the-counter or order-based sale. ClientName is a
// snapshot; ClientID is a weak reference.
type Sale struct {
	ID           string    `json:"id"`
	Date         time.Time `json:"date"`
	ClientID     string    `json:"client_id"`
	ClientName   string    `json:"client_name"`
	Category     string    `json:"category"`
	ProductType  string    `json:"product_type"`
	Quantity     float64   `json:"quantity"`
	Unit         string    `json:"unit"`
	PricePerUnit float64   `json:"price_per_unit"`
	TotalPrice   float64   `json:"total_price"`
	Notes        string    `json:"notes,omitempty"`
}

// RevenueStats summarises recorded revenue.
type RevenueStats struct {
	TotalSales   int     `json:"total_sales"`
	TotalRevenue float64 `json:"total_revenue"`
	TodayRevenue float64 `json:"today_revenue"`
}
