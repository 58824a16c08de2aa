package products

// defaultCatalog is the standing bakery range. Prices are per unit in KES.
var defaultCatalog = []Product{
	{
		Name:        "Simple Cakes",
		Category:    "Simple Cakes",
		BasePrice:   2500,
		Unit:        UnitKg,
		MinQuantity: 1,
		Description: "Single-flavour sponge cakes",
		Options:     []string{"Very Vanilla", "Chocolate Marble", "Strawberry Marble", "Strawberry", "Lemon", "Orange"},
	},
	{
		Name:        "Classic Cakes",
		Category:    "Classic Cakes",
		BasePrice:   2800,
		Unit:        UnitKg,
		MinQuantity: 1,
		Description: "House classics with frosting",
		Options:     []string{"Banana Bread", "Carrot", "Chocolate", "Red Velvet", "Funfetti"},
	},
	{
		Name:        "Specialty Cakes",
		Category:    "Specialty Cakes",
		BasePrice:   3000,
		Unit:        UnitKg,
		MinQuantity: 1,
		Description: "Layered specialty flavours",
		Options:     []string{"Blueberry Lemon", "Cookies & Cream", "Salted Caramel", "Chocolate Caramel", "Chocolate Mint"},
	},
	{
		Name:        "Bento Cakes",
		Category:    "Bento Cakes",
		BasePrice:   1200,
		Unit:        UnitPiece,
		MinQuantity: 1,
		Description: "Lunchbox-size single portion cakes",
		Options:     []string{"Simple", "Classic", "Specialty"},
		Tiers: []Tier{
			{Label: "Simple", Price: 1200},
			{Label: "Classic", Price: 1400},
			{Label: "Specialty", Price: 1600},
		},
	},
	{
		Name:        "Cupcakes",
		Category:    "Cupcakes",
		BasePrice:   150,
		Unit:        UnitPiece,
		MinQuantity: 6,
		Description: "Sold in batches of six and up",
		Options:     []string{"Simple/Classic", "Specialty"},
		Tiers: []Tier{
			{Label: "Simple/Classic", Price: 150},
			{Label: "Specialty", Price: 180},
		},
	},
	{
		Name:        "Cookies & Brownies",
		Category:    "Cookies & Brownies",
		BasePrice:   100,
		Unit:        UnitPiece,
		MinQuantity: 6,
		Description: "Baked treats by the piece",
		Options:     []string{"Chocolate Chip Cookies", "Red Velvet White Choc Chip", "Death by Chocolate", "Classic Brownies", "Red Velvet Brownies"},
	},
}
