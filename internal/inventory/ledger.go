package inventory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/OmAmbre27/smart-inventory-sub000/internal/domain/models"
)

// Ledger is the in-memory batch store. Every primitive operation is atomic
// under the ledger mutex; multi-step business operations additionally hold the
// per-outlet locks owned by the movements service.
//
// Deduction never deletes a batch row: an emptied batch stays at quantity zero
// so a later restore finds it by id. Queries skip empty rows.
type Ledger struct {
	mu      sync.RWMutex
	batches map[string]*models.InventoryBatch
	order   []string // batch ids in creation order, the FIFO tie-break

	now   func() time.Time
	newID func() string
}

// NewLedger builds an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		batches: make(map[string]*models.InventoryBatch),
		now:     time.Now,
		newID:   func() string { return uuid.NewString() },
	}
}

// GetStock sums the batch quantities for a (product, outlet) pair. It never
// errors; unknown pairs report zero.
func (l *Ledger) GetStock(productID, outletID string) float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.stockLocked(productID, outletID)
}

func (l *Ledger) stockLocked(productID, outletID string) float64 {
	var total float64
	for _, id := range l.order {
		b := l.batches[id]
		if b.ProductID == productID && b.OutletID == outletID {
			total += b.Quantity
		}
	}
	return total
}

// AddBatch appends a new batch and returns its id. Quantity must be strictly
// positive.
func (l *Ledger) AddBatch(productID, outletID string, quantity float64, attrs models.BatchAttrs) (string, error) {
	if quantity <= 0 {
		return "", &InvalidQuantityError{Quantity: quantity}
	}

	source := attrs.Source
	if source == "" {
		source = models.SourceOther
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	batch := &models.InventoryBatch{
		ID:            l.newID(),
		ProductID:     productID,
		OutletID:      outletID,
		Quantity:      quantity,
		ExpiryDate:    attrs.ExpiryDate,
		PurchasePrice: attrs.PurchasePrice,
		Source:        source,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	l.batches[batch.ID] = batch
	l.order = append(l.order, batch.ID)
	return batch.ID, nil
}

// Deduct removes quantity from the pair's batches and returns the exact plan
// of what was drawn from where. Batches carrying an expiry date are drained
// first, oldest expiry first; expiry-less batches follow in creation order.
// Fails with InsufficientStockError before touching anything if the pair does
// not hold enough.
func (l *Ledger) Deduct(productID, outletID string, quantity float64) (models.DeductionPlan, error) {
	if quantity <= 0 {
		return models.DeductionPlan{}, &InvalidQuantityError{Quantity: quantity}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	available := l.stockLocked(productID, outletID)
	if available < quantity {
		return models.DeductionPlan{}, &InsufficientStockError{
			ProductID: productID,
			OutletID:  outletID,
			Available: available,
			Requested: quantity,
		}
	}

	candidates := l.drawOrderLocked(productID, outletID)

	plan := models.DeductionPlan{ProductID: productID, OutletID: outletID}
	remaining := quantity
	now := l.now()

	for _, b := range candidates {
		if remaining <= 0 {
			break
		}
		draw := b.Quantity
		if draw > remaining {
			draw = remaining
		}
		b.Quantity -= draw
		b.UpdatedAt = now
		remaining -= draw
		plan.Draws = append(plan.Draws, models.BatchDraw{
			BatchID:       b.ID,
			Quantity:      draw,
			ExpiryDate:    b.ExpiryDate,
			PurchasePrice: b.PurchasePrice,
		})
	}

	return plan, nil
}

// drawOrderLocked returns the pair's non-empty batches in draw order:
// expiring batches first by ascending expiry, then the rest by creation order.
func (l *Ledger) drawOrderLocked(productID, outletID string) []*models.InventoryBatch {
	var expiring, plain []*models.InventoryBatch
	for _, id := range l.order {
		b := l.batches[id]
		if b.ProductID != productID || b.OutletID != outletID || b.Quantity <= 0 {
			continue
		}
		if b.ExpiryDate != nil {
			expiring = append(expiring, b)
		} else {
			plain = append(plain, b)
		}
	}
	sort.SliceStable(expiring, func(i, j int) bool {
		return expiring[i].ExpiryDate.Before(*expiring[j].ExpiryDate)
	})
	return append(expiring, plain...)
}

// Restore re-applies the exact inverse of a prior deduction. A batch that was
// administratively removed since the deduction is recreated from the plan's
// recorded attributes. The caller guarantees at-most-once restore per plan.
func (l *Ledger) Restore(plan models.DeductionPlan) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, d := range plan.Draws {
		if d.Quantity <= 0 {
			return &RestorationMismatchError{BatchID: d.BatchID, Reason: "non-positive draw quantity"}
		}
		b, ok := l.batches[d.BatchID]
		if !ok {
			continue
		}
		if b.ProductID != plan.ProductID || b.OutletID != plan.OutletID {
			return &RestorationMismatchError{BatchID: d.BatchID, Reason: "batch belongs to a different product or outlet"}
		}
	}

	now := l.now()
	for _, d := range plan.Draws {
		if b, ok := l.batches[d.BatchID]; ok {
			b.Quantity += d.Quantity
			b.UpdatedAt = now
			continue
		}
		batch := &models.InventoryBatch{
			ID:            d.BatchID,
			ProductID:     plan.ProductID,
			OutletID:      plan.OutletID,
			Quantity:      d.Quantity,
			ExpiryDate:    d.ExpiryDate,
			PurchasePrice: d.PurchasePrice,
			Source:        models.SourceOther,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		l.batches[batch.ID] = batch
		l.order = append(l.order, batch.ID)
	}

	return nil
}

// Batches returns a snapshot of the non-empty batches at an outlet. An empty
// outletID selects every outlet. The copies are safe for callers to keep.
func (l *Ledger) Batches(outletID string) []models.InventoryBatch {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []models.InventoryBatch
	for _, id := range l.order {
		b := l.batches[id]
		if b.Quantity <= 0 {
			continue
		}
		if outletID != "" && b.OutletID != outletID {
			continue
		}
		out = append(out, *b)
	}
	return out
}

// LatestPurchasePrice reports the purchase price of the most recently created
// batch of the pair that carries one. Second return is false when no priced
// batch exists.
func (l *Ledger) LatestPurchasePrice(productID, outletID string) (float64, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for i := len(l.order) - 1; i >= 0; i-- {
		b := l.batches[l.order[i]]
		if b.ProductID == productID && b.OutletID == outletID && b.PurchasePrice != nil {
			return *b.PurchasePrice, true
		}
	}
	return 0, false
}
