// Package summary composes the end-of-day snapshot for an outlet: stock
// consumed, pending purchase orders, wastage weight and value, hygiene status
// and the low-stock count. Purchase orders, hygiene logs and prices come from
// injected collaborators; the aggregator owns none of them.
package summary

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/OmAmbre27/smart-inventory-sub000/internal/domain/models"
)

// MovementSource answers the day queries the aggregator needs. The journal
// implements it.
type MovementSource interface {
	ConsumedOn(outletID string, day time.Time) float64
	WastageOn(outletID string, day time.Time) []models.MovementRecord
}

// PurchaseOrderSource counts pending purchase orders for an outlet.
type PurchaseOrderSource interface {
	PendingCount(ctx context.Context, outletID string) (int, error)
}

// HygieneSource reports the latest hygiene log status for an outlet/day.
// Implementations return false when no log exists for the day.
type HygieneSource interface {
	LatestStatus(ctx context.Context, outletID string, day time.Time) (models.HygieneStatus, bool, error)
}

// PriceLookup resolves the unit price used to value wastage. Implementations
// return false when no price is known for the pair.
type PriceLookup func(productID, outletID string) (float64, bool)

// LowStockSource counts the outlet's active low-stock alerts.
type LowStockSource interface {
	CheckLowStock(outletID string) []models.LowStockAlert
}

// Sink persists generated summaries.
type Sink interface {
	SaveDailySummary(ctx context.Context, s models.DailySummary) error
}

// Service is the daily summary aggregator.
type Service struct {
	movements MovementSource
	orders    PurchaseOrderSource
	hygiene   HygieneSource
	price     PriceLookup
	lowStock  LowStockSource
	sinks     []Sink
	logger    *zap.Logger
	now       func() time.Time
}

// NewService wires the aggregator. orders, hygiene and lowStock may be nil;
// the corresponding fields then report zero values. price must not be nil.
func NewService(movements MovementSource, orders PurchaseOrderSource, hygiene HygieneSource, price PriceLookup, lowStock LowStockSource, logger *zap.Logger, sinks ...Sink) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		movements: movements,
		orders:    orders,
		hygiene:   hygiene,
		price:     price,
		lowStock:  lowStock,
		sinks:     sinks,
		logger:    logger,
		now:       time.Now,
	}
}

// GenerateSummary builds the immutable snapshot for an outlet and day and
// forwards it to the configured sinks. Collaborator failures degrade the
// affected field instead of failing the whole summary, except the movement
// journal which is local and authoritative.
func (s *Service) GenerateSummary(ctx context.Context, outletID string, day time.Time) (models.DailySummary, error) {
	if outletID == "" {
		return models.DailySummary{}, fmt.Errorf("outlet id must not be empty")
	}

	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	out := models.DailySummary{
		OutletID:      outletID,
		Date:          day,
		StockConsumed: s.movements.ConsumedOn(outletID, day),
		HygieneStatus: models.HygienePending,
		GeneratedAt:   s.now(),
	}

	for _, rec := range s.movements.WastageOn(outletID, day) {
		qty := -rec.Quantity
		out.WastageWeight += qty
		if price, ok := s.price(rec.ProductID, outletID); ok {
			out.WastageValue += qty * price
		} else {
			s.logger.Warn("no price for wastage valuation",
				zap.String("product_id", rec.ProductID),
				zap.String("outlet_id", outletID))
		}
	}

	if s.orders != nil {
		count, err := s.orders.PendingCount(ctx, outletID)
		if err != nil {
			s.logger.Warn("pending purchase order count unavailable", zap.Error(err))
		} else {
			out.PendingPOCount = count
		}
	}

	if s.hygiene != nil {
		status, found, err := s.hygiene.LatestStatus(ctx, outletID, day)
		if err != nil {
			s.logger.Warn("hygiene status unavailable", zap.Error(err))
		} else if found {
			out.HygieneStatus = status
		}
	}

	if s.lowStock != nil {
		out.LowStockProducts = len(s.lowStock.CheckLowStock(outletID))
	}

	for _, sink := range s.sinks {
		if err := sink.SaveDailySummary(ctx, out); err != nil {
			s.logger.Warn("summary sink failed",
				zap.String("outlet_id", outletID),
				zap.Error(err))
		}
	}

	s.logger.Info("daily summary generated",
		zap.String("outlet_id", outletID),
		zap.Time("date", day),
		zap.Float64("stock_consumed", out.StockConsumed),
		zap.Float64("wastage_value", out.WastageValue))

	return out, nil
}
