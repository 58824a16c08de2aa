package products

import "time"

// Unit values a product can be sold in.
const (
	UnitKg    = "kg"
	UnitPiece = "piece"
	UnitPack  = "pack"
)

// Tier is a named price point, e.g. a size or a pack.
type Tier struct {
	Label string  `json:"label"`
	Price float64 `json:"price"`
}

// Product is a catalog entry. The catalog is curated by hand and orders only
// reference it by name, never by id.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	BasePrice   float64   `json:"base_price"`
	Unit        string    `json:"unit"`
	MinQuantity float64   `json:"min_quantity"`
	Description string    `json:"description"`
	Options     []string  `json:"options,omitempty"`
	Tiers       []Tier    `json:"tiers,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}
