package catalog

import "sync"

// ThresholdKey identifies one low-stock threshold registration.
type ThresholdKey struct {
	ProductID string
	OutletID  string
}

// ThresholdSource is what the monitor reads. Thresholds live independently of
// Product.MinStockThreshold; the dashboard maintains them per outlet.
type ThresholdSource interface {
	Threshold(productID, outletID string) (float64, bool)
	Thresholds() map[ThresholdKey]float64
}

// ThresholdStore is the in-memory per-(product, outlet) threshold table.
type ThresholdStore struct {
	mu     sync.RWMutex
	values map[ThresholdKey]float64
}

// NewThresholdStore builds an empty threshold table.
func NewThresholdStore() *ThresholdStore {
	return &ThresholdStore{values: make(map[ThresholdKey]float64)}
}

// Set registers or updates the threshold for a pair.
func (s *ThresholdStore) Set(productID, outletID string, threshold float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[ThresholdKey{ProductID: productID, OutletID: outletID}] = threshold
}

// Delete removes a registration.
func (s *ThresholdStore) Delete(productID, outletID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, ThresholdKey{ProductID: productID, OutletID: outletID})
}

// Threshold looks up the threshold for a pair.
func (s *ThresholdStore) Threshold(productID, outletID string) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[ThresholdKey{ProductID: productID, OutletID: outletID}]
	return v, ok
}

// Thresholds returns a copy of every registration.
func (s *ThresholdStore) Thresholds() map[ThresholdKey]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[ThresholdKey]float64, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}
