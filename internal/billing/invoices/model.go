package invoices

import (
	"time"

	"github.com/bakehouse-crm/bakehouse-crm/internal/sales/orders"
)

// Status is set manually. Overdue is a label the owner applies; nothing sets
// it automatically.
type Status string

const (
	StatusDraft   Status = "draft"
	StatusSent    Status = "sent"
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid, StatusOverdue:
		return true
	}
	return false
}

// Invoice freezes the order's items and totals at issue time. Later edits to
// the order do not flow through.
type Invoice struct {
	ID            string        `json:"id"`
	InvoiceNumber string        `json:"invoice_number"`
	SalesOrderID  string        `json:"sales_order_id"`
	OrderNumber   string        `json:"order_number"`
	ClientID      string        `json:"client_id"`
	ClientName    string        `json:"client_name"`
	ClientEmail   string        `json:"client_email"`
	ClientPhone   string        `json:"client_phone"`
	InvoiceDate   time.Time     `json:"invoice_date"`
	DueDate       time.Time     `json:"due_date"`
	Items         []orders.Item `json:"items"`
	Subtotal      float64       `json:"subtotal"`
	Tax           float64       `json:"tax"`
	Total         float64       `json:"total"`
	Status        Status        `json:"status"`
	Notes         string        `json:"notes"`
	CreatedAt     time.Time     `json:"created_at"`
}
