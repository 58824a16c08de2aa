package saleslog

import "time"

type RecordSaleRequest struct {
	ClientID     string     `json:"client_id" validate:"required"`
	Date         *time.Time `json:"date,omitempty"`
	Category     string     `json:"category" validate:"omitempty,max=100"`
	ProductType  string     `json:"product_type" validate:"required,max=200"`
	Quantity     float64    `json:"quantity" validate:"gt=0"`
	Unit         string     `json:"unit" validate:"required,oneof=kg piece pack"`
	PricePerUnit float64    `json:"price_per_unit" validate:"gte=0"`
	Notes        string     `json:"notes" validate:"omitempty,max=2000"`
}

type ListSalesRequest struct {
	Search  string `json:"search" validate:"omitempty,max=200"`
	Page    int    `json:"page" validate:"gte=0"`
	PerPage int    `json:"per_page" validate:"gte=0,lte=1000"`
}
