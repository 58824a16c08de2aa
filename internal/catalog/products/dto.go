package products

type TierRequest struct {
	Label string  `json:"label" validate:"required,max=100"`
	Price float64 `json:"price" validate:"gte=0"`
}

type CreateProductRequest struct {
	Name        string        `json:"name" validate:"required,max=200"`
	Category    string        `json:"category" validate:"omitempty,max=100"`
	BasePrice   float64       `json:"base_price" validate:"gte=0"`
	Unit        string        `json:"unit" validate:"required,oneof=kg piece pack"`
	MinQuantity float64       `json:"min_quantity" validate:"gte=0"`
	Description string        `json:"description" validate:"omitempty,max=2000"`
	Options     []string      `json:"options" validate:"omitempty,dive,max=200"`
	Tiers       []TierRequest `json:"tiers" validate:"omitempty,dive"`
}

type UpdateProductRequest struct {
	Name        *string        `json:"name,omitempty" validate:"omitempty,max=200"`
	Category    *string        `json:"category,omitempty" validate:"omitempty,max=100"`
	BasePrice   *float64       `json:"base_price,omitempty" validate:"omitempty,gte=0"`
	Unit        *string        `json:"unit,omitempty" validate:"omitempty,oneof=kg piece pack"`
	MinQuantity *float64       `json:"min_quantity,omitempty" validate:"omitempty,gte=0"`
	Description *string        `json:"description,omitempty" validate:"omitempty,max=2000"`
	Options     *[]string      `json:"options,omitempty" validate:"omitempty,dive,max=200"`
	Tiers       *[]TierRequest `json:"tiers,omitempty" validate:"omitempty,dive"`
	IsActive    *bool          `json:"is_active,omitempty"`
}

type ListProductsRequest struct {
	Search   string `json:"search" validate:"omitempty,max=200"`
	Category string `json:"category" validate:"omitempty,max=100"`
	Page     int    `json:"page" validate:"gte=0"`
	PerPage  int    `json:"per_page" validate:"gte=0,lte=1000"`
}
