package orders

import "time"

// Status is a flat order state. Any status may follow any other; the values
// describe progress, they do not gate it.
type Status string

const (
	StatusDraft        Status = "draft"
	StatusConfirmed    Status = "confirmed"
	StatusInProduction Status = "in_production"
	StatusCompleted    Status = "completed"
	StatusDelivered    Status = "delivered"
	StatusCancelled    Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusConfirmed, StatusInProduction, StatusCompleted, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Pending reports whether the order still needs work from the kitchen.
func (s Status) Pending() bool {
	switch s {
	case StatusDraft, StatusConfirmed, StatusInProduction:
		return true
	}
	return false
}

// Item is one order line. TotalPrice is always Quantity*UnitPrice and is
// recomputed on every mutation.
type Item struct {
	ID          string  `json:"id"`
	ProductName string  `json:"product_name"`
	Category    string  `json:"category"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
	Notes       string  `json:"notes,omitempty"`
}

// SalesOrder snapshots the client contact at creation time. ClientID and
// LeadID are weak references.
type SalesOrder struct {
	ID           string     `json:"id"`
	OrderNumber  string     `json:"order_number"`
	ClientID     string     `json:"client_id"`
	ClientName   string     `json:"client_name"`
	ClientEmail  string     `json:"client_email"`
	ClientPhone  string     `json:"client_phone"`
	LeadID       *string    `json:"lead_id,omitempty"`
	Status       Status     `json:"status"`
	OrderDate    time.Time  `json:"order_date"`
	DeliveryDate *time.Time `json:"delivery_date,omitempty"`
	Items        []Item     `json:"items"`
	Subtotal     float64    `json:"subtotal"`
	Tax          float64    `json:"tax"`
	Total        float64    `json:"total"`
	Notes        string     `json:"notes"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Stats summarises the order book for the dashboard.
type Stats struct {
	TotalOrders int     `json:"total_orders"`
	TotalValue  float64 `json:"total_value"`
	Pending     int     `json:"pending"`
}
