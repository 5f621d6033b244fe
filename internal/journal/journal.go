// Package journal keeps the movement history every stock operation emits. The
// in-memory log answers the day queries the summary aggregator needs and fans
// each record out to the configured persistence sinks (MongoDB, Google Sheets).
package journal

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/OmAmbre27/smart-inventory-sub000/internal/domain/models"
)

// Sink receives movement records for persistence or export.
type Sink interface {
	RecordMovement(ctx context.Context, rec models.MovementRecord) error
}

// Journal is the in-memory movement log.
type Journal struct {
	mu      sync.RWMutex
	records []models.MovementRecord
	sinks   []Sink
	logger  *zap.Logger
}

// New builds a journal forwarding to the given sinks.
func New(logger *zap.Logger, sinks ...Sink) *Journal {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Journal{sinks: sinks, logger: logger}
}

// Append stores the record and forwards it to every sink. Sink failures are
// logged, not propagated: the ledger mutation has already committed and the
// journal entry survives in memory regardless.
func (j *Journal) Append(ctx context.Context, rec models.MovementRecord) {
	j.mu.Lock()
	j.records = append(j.records, rec)
	j.mu.Unlock()

	for _, sink := range j.sinks {
		if err := sink.RecordMovement(ctx, rec); err != nil {
			j.logger.Warn("movement sink failed",
				zap.String("movement_id", rec.ID),
				zap.String("type", string(rec.Type)),
				zap.Error(err))
		}
	}
}

// RecordsFor returns the outlet's records for a calendar day (UTC).
func (j *Journal) RecordsFor(outletID string, day time.Time) []models.MovementRecord {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	j.mu.RLock()
	defer j.mu.RUnlock()

	var out []models.MovementRecord
	for _, rec := range j.records {
		if rec.OutletID != outletID {
			continue
		}
		ts := rec.CreatedAt.UTC()
		if ts.Before(start) || !ts.Before(end) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// ConsumedOn sums the quantity consumed by order fulfillment at an outlet on a
// day, net of restorations from reversed orders.
func (j *Journal) ConsumedOn(outletID string, day time.Time) float64 {
	var total float64
	for _, rec := range j.RecordsFor(outletID, day) {
		switch rec.Type {
		case models.MovementConsumption:
			total += -rec.Quantity
		case models.MovementRestoration:
			total -= rec.Quantity
		}
	}
	if total < 0 {
		total = 0
	}
	return total
}

// WastageOn returns the day's wastage records for an outlet.
func (j *Journal) WastageOn(outletID string, day time.Time) []models.MovementRecord {
	var out []models.MovementRecord
	for _, rec := range j.RecordsFor(outletID, day) {
		if rec.Type == models.MovementWastage {
			out = append(out, rec)
		}
	}
	return out
}
