package invoices

type CreateInvoiceRequest struct {
	SalesOrderID string `json:"sales_order_id" validate:"required"`
	Notes        string `json:"notes" validate:"omitempty,max=2000"`
}

type SetStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type ListInvoicesRequest struct {
	Search  string `json:"search" validate:"omitempty,max=200"`
	Status  string `json:"status" validate:"omitempty,oneof=draft sent paid overdue"`
	Page    int    `json:"page" validate:"gte=0"`
	PerPage int    `json:"per_page" validate:"gte=0,lte=1000"`
}
