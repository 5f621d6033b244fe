package models

import "time"

// MovementType enumerates the stock movement categories kept in the journal.
type MovementType string

const (
	MovementReceipt     MovementType = "receipt"
	MovementConsumption MovementType = "consumption"
	MovementRestoration MovementType = "restoration"
	MovementTransfer    MovementType = "transfer"
	MovementWastage     MovementType = "wastage"
	MovementCorrection  MovementType = "correction"
)

// MovementRecord is the journal row every stock operation emits. Quantity is
// positive for stock entering the outlet and negative for stock leaving it.
type MovementRecord struct {
	ID        string       `json:"id" bson:"id"`
	Type      MovementType `json:"type" bson:"type"`
	ProductID string       `json:"product_id" bson:"product_id"`
	OutletID  string       `json:"outlet_id" bson:"outlet_id"`
	Quantity  float64      `json:"quantity" bson:"quantity"`
	Reference string       `json:"reference,omitempty" bson:"reference,omitempty"`
	Reason    string       `json:"reason,omitempty" bson:"reason,omitempty"`
	CreatedAt time.Time    `json:"created_at" bson:"created_at"`
}

// ReceiptRecord is emitted by goods receiving for history and reporting.
type ReceiptRecord struct {
	ID            string     `json:"id" bson:"id"`
	BatchID       string     `json:"batch_id" bson:"batch_id"`
	ProductID     string     `json:"product_id" bson:"product_id"`
	OutletID      string     `json:"outlet_id" bson:"outlet_id"`
	Quantity      float64    `json:"quantity" bson:"quantity"`
	PurchasePrice *float64   `json:"purchase_price,omitempty" bson:"purchase_price,omitempty"`
	Supplier      string     `json:"supplier,omitempty" bson:"supplier,omitempty"`
	ExpiryDate    *time.Time `json:"expiry_date,omitempty" bson:"expiry_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at" bson:"created_at"`
}

// OutletTransfer records an atomic stock move between two outlets.
type OutletTransfer struct {
	ID            string    `json:"id" bson:"id"`
	FromOutletID  string    `json:"from_outlet_id" bson:"from_outlet_id"`
	ToOutletID    string    `json:"to_outlet_id" bson:"to_outlet_id"`
	ProductID     string    `json:"product_id" bson:"product_id"`
	Quantity      float64   `json:"quantity" bson:"quantity"`
	TransferPrice *float64  `json:"transfer_price,omitempty" bson:"transfer_price,omitempty"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}

// WastageEntry records stock written off. There is no reversal path.
type WastageEntry struct {
	ID        string    `json:"id" bson:"id"`
	ProductID string    `json:"product_id" bson:"product_id"`
	OutletID  string    `json:"outlet_id" bson:"outlet_id"`
	Quantity  float64   `json:"quantity" bson:"quantity"`
	Reason    string    `json:"reason" bson:"reason"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// StockAudit snapshots the ledger against a physical count. Recording an audit
// never mutates the ledger; applying its correction is a separate step.
type StockAudit struct {
	ID             string    `json:"id" bson:"id"`
	OutletID       string    `json:"outlet_id" bson:"outlet_id"`
	ProductID      string    `json:"product_id" bson:"product_id"`
	SystemQuantity float64   `json:"system_quantity" bson:"system_quantity"`
	ActualQuantity float64   `json:"actual_quantity" bson:"actual_quantity"`
	Difference     float64   `json:"difference" bson:"difference"`
	CountedBy      string    `json:"counted_by,omitempty" bson:"counted_by,omitempty"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}
