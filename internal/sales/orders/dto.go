package orders

import "time"

type ItemRequest struct {
	ProductName string  `json:"product_name" validate:"required,max=200"`
	Category    string  `json:"category" validate:"omitempty,max=100"`
	Quantity    float64 `json:"quantity" validate:"gt=0"`
	Unit        string  `json:"unit" validate:"required,oneof=kg piece pack"`
	UnitPrice   float64 `json:"unit_price" validate:"gte=0"`
	Notes       string  `json:"notes" validate:"omitempty,max=500"`
}

type CreateOrderRequest struct {
	ClientID     string        `json:"client_id" validate:"required"`
	DeliveryDate *time.Time    `json:"delivery_date,omitempty"`
	Notes        string        `json:"notes" validate:"omitempty,max=2000"`
	Items        []ItemRequest `json:"items" validate:"omitempty,dive"`
}

type UpdateOrderRequest struct {
	ClientName   *string    `json:"client_name,omitempty" validate:"omitempty,max=200"`
	ClientEmail  *string    `json:"client_email,omitempty" validate:"omitempty,email"`
	ClientPhone  *string    `json:"client_phone,omitempty" validate:"omitempty,max=50"`
	DeliveryDate *time.Time `json:"delivery_date,omitempty"`
	Notes        *string    `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

type SetStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type ListOrdersRequest struct {
	Search  string `json:"search" validate:"omitempty,max=200"`
	Status  string `json:"status" validate:"omitempty,oneof=draft confirmed in_production completed delivered cancelled"`
	Page    int    `json:"page" validate:"gte=0"`
	PerPage int    `json:"per_page" validate:"gte=0,lte=1000"`
}
