// Package memory provides the in-process stores for the collaborator data the
// summary aggregator consumes: purchase orders and hygiene logs.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/OmAmbre27/smart-inventory-sub000/internal/domain/models"
)

// PurchaseOrderStore keeps purchase orders and answers pending counts.
type PurchaseOrderStore struct {
	mu     sync.RWMutex
	orders map[string]models.PurchaseOrder
}

// NewPurchaseOrderStore builds an empty store.
func NewPurchaseOrderStore() *PurchaseOrderStore {
	return &PurchaseOrderStore{orders: make(map[string]models.PurchaseOrder)}
}

// Put inserts or replaces a purchase order.
func (s *PurchaseOrderStore) Put(po models.PurchaseOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[po.ID] = po
}

// SetStatus updates an order's status; unknown ids are ignored.
func (s *PurchaseOrderStore) SetStatus(id string, status models.PurchaseOrderStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if po, ok := s.orders[id]; ok {
		po.Status = status
		s.orders[id] = po
	}
}

// PendingCount counts the outlet's pending purchase orders.
func (s *PurchaseOrderStore) PendingCount(_ context.Context, outletID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, po := range s.orders {
		if po.OutletID == outletID && po.Status == models.POPending {
			count++
		}
	}
	return count, nil
}

// HygieneStore keeps hygiene logs per outlet.
type HygieneStore struct {
	mu   sync.RWMutex
	logs []models.HygieneLog
}

// NewHygieneStore builds an empty store.
func NewHygieneStore() *HygieneStore {
	return &HygieneStore{}
}

// Append records a hygiene log entry.
func (s *HygieneStore) Append(log models.HygieneLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, log)
}

// LatestStatus returns the status of the outlet's most recent log for the
// given calendar day (UTC), or found=false when none exists.
func (s *HygieneStore) LatestStatus(_ context.Context, outletID string, day time.Time) (models.HygieneStatus, bool, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *models.HygieneLog
	for i := range s.logs {
		log := s.logs[i]
		if log.OutletID != outletID {
			continue
		}
		ts := log.CreatedAt.UTC()
		if ts.Before(start) || !ts.Before(end) {
			continue
		}
		if latest == nil || log.CreatedAt.After(latest.CreatedAt) {
			latest = &s.logs[i]
		}
	}

	if latest == nil {
		return models.HygienePending, false, nil
	}
	return latest.Status, true, nil
}
