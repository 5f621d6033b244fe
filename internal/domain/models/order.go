package models

import "time"

// OrderItem is one line of a manual order: N plates of a menu item.
type OrderItem struct {
	MenuItemID string `json:"menu_item_id" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required"`
}

// ManualOrder is an order captured by staff. Creating it deducts ingredient
// stock; deleting it restores exactly what was deducted.
type ManualOrder struct {
	ID          string      `json:"id" bson:"id"`
	OutletID    string      `json:"outlet_id" bson:"outlet_id"`
	Source      string      `json:"source" bson:"source"`
	Items       []OrderItem `json:"items" bson:"items"`
	TotalAmount float64     `json:"total_amount" bson:"total_amount"`
	CreatedAt   time.Time   `json:"created_at" bson:"created_at"`
}

// FulfilledOrder pairs an order with the deduction plans its creation applied,
// so deletion can reverse them exactly.
type FulfilledOrder struct {
	Order           ManualOrder     `json:"order" bson:"order"`
	ConsumedBatches []DeductionPlan `json:"consumed_batches" bson:"consumed_batches"`
}
