package clients

import "time"

// Client is a standing customer record, created by converting a lead or
// directly from the registry screen. TotalOrders, TotalSpent and LastOrder
// are maintained by the sales log recording path only.
type Client struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone,omitempty"`
	TotalOrders int        `json:"total_orders"`
	TotalSpent  float64    `json:"total_spent"`
	LastOrder   *time.Time `json:"last_order,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
