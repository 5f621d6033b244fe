package models

import "time"

// Unit enumerates the measurement units a product can be tracked in.
type Unit string

const (
	UnitKilogram   Unit = "kg"
	UnitGram       Unit = "g"
	UnitLiter      Unit = "l"
	UnitMilliliter Unit = "ml"
	UnitPieces     Unit = "pieces"
)

// Product is a catalog entry. Identity fields are immutable once the product is
// referenced by ledger batches; only the threshold/reorder fields may change.
type Product struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Category          string    `json:"category"`
	Unit              Unit      `json:"unit"`
	IsPerishable      bool      `json:"is_perishable"`
	MinStockThreshold float64   `json:"min_stock_threshold"`
	AutoReorderQty    float64   `json:"auto_reorder_quantity"`
	CreatedAt         time.Time `json:"created_at"`
}

// Outlet identifies a restaurant location holding its own stock.
type Outlet struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}
