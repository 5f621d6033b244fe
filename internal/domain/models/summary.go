package models

import "time"

// HygieneStatus reflects the latest hygiene log for an outlet/day.
type HygieneStatus string

const (
	HygienePending HygieneStatus = "pending"
	HygienePassed  HygieneStatus = "passed"
	HygieneFailed  HygieneStatus = "failed"
)

// HygieneLog is one hygiene checklist entry recorded for an outlet.
type HygieneLog struct {
	ID        string        `json:"id" bson:"id"`
	OutletID  string        `json:"outlet_id" bson:"outlet_id"`
	Status    HygieneStatus `json:"status" bson:"status"`
	Notes     string        `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
}

// PurchaseOrderStatus tracks a purchase order through its lifecycle.
type PurchaseOrderStatus string

const (
	POPending   PurchaseOrderStatus = "pending"
	POApproved  PurchaseOrderStatus = "approved"
	POReceived  PurchaseOrderStatus = "received"
	POCancelled PurchaseOrderStatus = "cancelled"
)

// PurchaseOrder is tracked externally to the ledger; the summary only counts
// the pending ones.
type PurchaseOrder struct {
	ID        string              `json:"id" bson:"id"`
	OutletID  string              `json:"outlet_id" bson:"outlet_id"`
	ProductID string              `json:"product_id" bson:"product_id"`
	Quantity  float64             `json:"quantity" bson:"quantity"`
	Status    PurchaseOrderStatus `json:"status" bson:"status"`
	CreatedAt time.Time           `json:"created_at" bson:"created_at"`
}

// DailySummary is the immutable end-of-day snapshot for one outlet.
type DailySummary struct {
	OutletID         string        `json:"outlet_id" bson:"outlet_id"`
	Date             time.Time     `json:"date" bson:"date"`
	StockConsumed    float64       `json:"stock_consumed" bson:"stock_consumed"`
	PendingPOCount   int           `json:"pending_po_count" bson:"pending_po_count"`
	WastageWeight    float64       `json:"wastage_weight" bson:"wastage_weight"`
	WastageValue     float64       `json:"wastage_value" bson:"wastage_value"`
	HygieneStatus    HygieneStatus `json:"hygiene_status" bson:"hygiene_status"`
	LowStockProducts int           `json:"low_stock_products" bson:"low_stock_products"`
	GeneratedAt      time.Time     `json:"generated_at" bson:"generated_at"`
}
