package models

import "time"

// AlertSeverity grades low-stock alerts.
type AlertSeverity string

const (
	SeverityWarning  AlertSeverity = "warning"
	SeverityCritical AlertSeverity = "critical"
)

// LowStockAlert is emitted when current stock falls to or below the registered
// threshold for a (product, outlet) pair.
type LowStockAlert struct {
	ProductID        string        `json:"product_id"`
	ProductName      string        `json:"product_name"`
	OutletID         string        `json:"outlet_id"`
	CurrentStock     float64       `json:"current_stock"`
	Threshold        float64       `json:"threshold"`
	SuggestedReorder float64       `json:"suggested_reorder"`
	Unit             Unit          `json:"unit"`
	Severity         AlertSeverity `json:"severity"`
}

// ExpiryStatus classifies a batch relative to its expiry date.
type ExpiryStatus string

const (
	ExpiryFresh      ExpiryStatus = "fresh"
	ExpiryNearExpiry ExpiryStatus = "near_expiry"
	ExpiryExpired    ExpiryStatus = "expired"
)

// ExpiryItem is one classified batch, sorted ascending by days until expiry.
type ExpiryItem struct {
	BatchID         string       `json:"batch_id"`
	ProductID       string       `json:"product_id"`
	OutletID        string       `json:"outlet_id"`
	Quantity        float64      `json:"quantity"`
	ExpiryDate      time.Time    `json:"expiry_date"`
	DaysUntilExpiry int          `json:"days_until_expiry"`
	Status          ExpiryStatus `json:"status"`
}
