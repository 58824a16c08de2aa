package leads

type IntakeRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"omitempty,max=50"`
	ProductType string `json:"product_type" validate:"omitempty,max=100"`
	Category    string `json:"category" validate:"omitempty,max=100"`
	Message     string `json:"message" validate:"required,max=2000"`
}

type ListLeadsRequest struct {
	Search  string `json:"search" validate:"omitempty,max=200"`
	Status  string `json:"status" validate:"omitempty,oneof=new contacted quoted converted lost"`
	Page    int    `json:"page" validate:"gte=0"`
	PerPage int    `json:"per_page" validate:"gte=0,lte=1000"`
}

type UpdateLeadRequest struct {
	Name           *string  `json:"name,omitempty" validate:"omitempty,max=200"`
	Email          *string  `json:"email,omitempty" validate:"omitempty,email"`
	Phone          *string  `json:"phone,omitempty" validate:"omitempty,max=50"`
	ProductType    *string  `json:"product_type,omitempty" validate:"omitempty,max=100"`
	Category       *string  `json:"category,omitempty" validate:"omitempty,max=100"`
	Message        *string  `json:"message,omitempty" validate:"omitempty,max=2000"`
	Note           *string  `json:"note,omitempty" validate:"omitempty,max=2000"`
	EstimatedValue *float64 `json:"estimated_value,omitempty" validate:"omitempty,gte=0"`
	Status         *string  `json:"status,omitempty" validate:"omitempty,oneof=new contacted quoted converted lost"`
}

type MoveLeadRequest struct {
	Status string `json:"status" validate:"required"`
}

type HandoffItemRequest struct {
	ProductName string  `json:"product_name" validate:"required,max=200"`
	Category    string  `json:"category" validate:"omitempty,max=100"`
	Quantity    float64 `json:"quantity" validate:"gt=0"`
	Unit        string  `json:"unit" validate:"required,oneof=kg piece pack"`
	UnitPrice   float64 `json:"unit_price" validate:"gte=0"`
}

type HandoffRequest struct {
	Notes string              `json:"notes" validate:"omitempty,max=2000"`
	Item  *HandoffItemRequest `json:"item,omitempty"`
}
