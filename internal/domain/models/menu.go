package models

// Ingredient maps one product requirement of a menu item per plate.
type Ingredient struct {
	ProductID string  `json:"product_id"`
	Quantity  float64 `json:"quantity"`
	Unit      Unit    `json:"unit"`
}

// MenuItem defines a dish and the conversion from plates to product quantities.
type MenuItem struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Ingredients  []Ingredient `json:"ingredients"`
	CostPerPlate float64      `json:"cost_per_plate"`
	SellingPrice float64      `json:"selling_price"`
	IsActive     bool         `json:"is_active"`
}
