// Package monitor derives low-stock alerts and expiry classifications from
// the current ledger state. Everything here is a pure read-side computation:
// nothing is persisted, results are recomputed on demand.
package monitor

import (
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/OmAmbre27/smart-inventory-sub000/internal/catalog"
	"github.com/OmAmbre27/smart-inventory-sub000/internal/domain/models"
	"github.com/OmAmbre27/smart-inventory-sub000/internal/inventory"
)

// nearExpiryWindowDays is the near-expiry classification window.
const nearExpiryWindowDays = 3

// Service scans the ledger against the threshold table.
type Service struct {
	ledger     *inventory.Ledger
	products   catalog.ProductSource
	thresholds catalog.ThresholdSource
	logger     *zap.Logger
	now        func() time.Time
}

// NewService wires a monitor instance.
func NewService(ledger *inventory.Ledger, products catalog.ProductSource, thresholds catalog.ThresholdSource, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		ledger:     ledger,
		products:   products,
		thresholds: thresholds,
		logger:     logger,
		now:        time.Now,
	}
}

// CheckLowStock evaluates every registered threshold, optionally restricted to
// one outlet. A pair alerts when current stock is at or below its threshold;
// severity is critical only when the shelf is empty.
func (s *Service) CheckLowStock(outletID string) []models.LowStockAlert {
	var alerts []models.LowStockAlert

	for key, threshold := range s.thresholds.Thresholds() {
		if outletID != "" && key.OutletID != outletID {
			continue
		}
		current := s.ledger.GetStock(key.ProductID, key.OutletID)
		if current > threshold {
			continue
		}

		product, ok := s.products.Product(key.ProductID)
		if !ok {
			s.logger.Warn("threshold registered for unknown product", zap.String("product_id", key.ProductID))
			continue
		}

		severity := models.SeverityWarning
		if current == 0 {
			severity = models.SeverityCritical
		}

		alerts = append(alerts, models.LowStockAlert{
			ProductID:        key.ProductID,
			ProductName:      product.Name,
			OutletID:         key.OutletID,
			CurrentStock:     current,
			Threshold:        threshold,
			SuggestedReorder: math.Max(threshold*2, product.AutoReorderQty),
			Unit:             product.Unit,
			Severity:         severity,
		})
	}

	sort.Slice(alerts, func(i, j int) bool {
		if alerts[i].OutletID != alerts[j].OutletID {
			return alerts[i].OutletID < alerts[j].OutletID
		}
		return alerts[i].ProductID < alerts[j].ProductID
	})
	return alerts
}

// ScanExpiry classifies every expiry-dated batch at an outlet against the
// current clock. An empty outletID scans all outlets.
func (s *Service) ScanExpiry(outletID string) []models.ExpiryItem {
	return ClassifyExpiry(s.ledger.Batches(outletID), s.now())
}

// ClassifyExpiry classifies the given batches against now. Batches without an
// expiry date are skipped. Results are sorted ascending by days until expiry,
// expired items first.
func ClassifyExpiry(batches []models.InventoryBatch, now time.Time) []models.ExpiryItem {
	var items []models.ExpiryItem
	for _, b := range batches {
		if b.ExpiryDate == nil {
			continue
		}
		days := daysUntil(*b.ExpiryDate, now)
		items = append(items, models.ExpiryItem{
			BatchID:         b.ID,
			ProductID:       b.ProductID,
			OutletID:        b.OutletID,
			Quantity:        b.Quantity,
			ExpiryDate:      *b.ExpiryDate,
			DaysUntilExpiry: days,
			Status:          expiryStatus(days),
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].DaysUntilExpiry < items[j].DaysUntilExpiry
	})
	return items
}

func daysUntil(expiry, now time.Time) int {
	return int(math.Ceil(expiry.Sub(now).Hours() / 24))
}

func expiryStatus(days int) models.ExpiryStatus {
	switch {
	case days < 0:
		return models.ExpiryExpired
	case days <= nearExpiryWindowDays:
		return models.ExpiryNearExpiry
	default:
		return models.ExpiryFresh
	}
}
