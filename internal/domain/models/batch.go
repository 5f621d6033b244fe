package models

import "time"

// BatchSource records how a batch entered the ledger.
type BatchSource string

const (
	SourceReceived   BatchSource = "received"
	SourceTransfer   BatchSource = "transfer"
	SourceCorrection BatchSource = "correction"
	SourceOther      BatchSource = "other"
)

// InventoryBatch is one ledger row: a quantity of a product held at an outlet,
// optionally carrying an expiry date and the price it was purchased at. Several
// batches may coexist for the same (product, outlet) pair.
type InventoryBatch struct {
	ID            string      `json:"id" bson:"id"`
	ProductID     string      `json:"product_id" bson:"product_id"`
	OutletID      string      `json:"outlet_id" bson:"outlet_id"`
	Quantity      float64     `json:"quantity" bson:"quantity"`
	ExpiryDate    *time.Time  `json:"expiry_date,omitempty" bson:"expiry_date,omitempty"`
	PurchasePrice *float64    `json:"purchase_price,omitempty" bson:"purchase_price,omitempty"`
	Source        BatchSource `json:"source" bson:"source"`
	CreatedAt     time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at" bson:"updated_at"`
}

// BatchAttrs carries the optional attributes of a new batch.
type BatchAttrs struct {
	ExpiryDate    *time.Time
	PurchasePrice *float64
	Source        BatchSource
}

// BatchDraw is one step of a deduction: how much was taken from which batch,
// together with enough batch attributes to recreate the row if it has since
// been removed.
type BatchDraw struct {
	BatchID       string     `json:"batch_id" bson:"batch_id"`
	Quantity      float64    `json:"quantity" bson:"quantity"`
	ExpiryDate    *time.Time `json:"expiry_date,omitempty" bson:"expiry_date,omitempty"`
	PurchasePrice *float64   `json:"purchase_price,omitempty" bson:"purchase_price,omitempty"`
}

// DeductionPlan is the exact record of a single deduction against one
// (product, outlet) pair. Restoring the plan reverses the deduction batch by
// batch.
type DeductionPlan struct {
	ProductID string      `json:"product_id" bson:"product_id"`
	OutletID  string      `json:"outlet_id" bson:"outlet_id"`
	Draws     []BatchDraw `json:"draws" bson:"draws"`
}

// Total returns the overall quantity the plan removed.
func (p DeductionPlan) Total() float64 {
	var total float64
	for _, d := range p.Draws {
		total += d.Quantity
	}
	return total
}
