// Package movements composes ledger primitives into the five business
// operations: goods receiving, order fulfillment and reversal, outlet
// transfer, wastage and stock audit. Every operation either fully commits or
// fully rolls back; partial deductions never survive a failure.
package movements

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/OmAmbre27/smart-inventory-sub000/internal/catalog"
	"github.com/OmAmbre27/smart-inventory-sub000/internal/domain/models"
	"github.com/OmAmbre27/smart-inventory-sub000/internal/inventory"
	"github.com/OmAmbre27/smart-inventory-sub000/internal/journal"
)

// ErrUnknownOrder is returned when reversing an order id the service never
// fulfilled (or already reversed).
var ErrUnknownOrder = errors.New("unknown order")

// AuditSink persists stock audit records.
type AuditSink interface {
	RecordAudit(ctx context.Context, audit models.StockAudit) error
}

// Service implements the stock movement operations over an injected ledger,
// catalog and journal.
type Service struct {
	ledger   *inventory.Ledger
	products catalog.ProductSource
	menu     catalog.MenuSource
	outlets  catalog.OutletSource
	journal  *journal.Journal
	audits   AuditSink
	logger   *zap.Logger

	locks *outletLocks
	now   func() time.Time
	newID func() string

	ordersMu sync.RWMutex
	orders   map[string]models.FulfilledOrder

	auditsMu sync.RWMutex
	auditLog map[string]models.StockAudit
}

// NewService wires a movement service instance. The audit sink may be nil.
func NewService(ledger *inventory.Ledger, products catalog.ProductSource, menu catalog.MenuSource, outlets catalog.OutletSource, jrnl *journal.Journal, audits AuditSink, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		ledger:   ledger,
		products: products,
		menu:     menu,
		outlets:  outlets,
		journal:  jrnl,
		audits:   audits,
		logger:   logger,
		locks:    newOutletLocks(),
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
		orders:   make(map[string]models.FulfilledOrder),
		auditLog: make(map[string]models.StockAudit),
	}
}

func (s *Service) checkRefs(productID, outletID string) error {
	if _, ok := s.products.Product(productID); !ok {
		return &inventory.UnknownProductError{ProductID: productID}
	}
	if !s.outlets.HasOutlet(outletID) {
		return &inventory.UnknownOutletError{OutletID: outletID}
	}
	return nil
}

// Receive books incoming goods as a new batch and emits a receipt record.
func (s *Service) Receive(ctx context.Context, productID, outletID string, quantity float64, price *float64, supplier string, expiry *time.Time) (models.ReceiptRecord, error) {
	if quantity <= 0 {
		return models.ReceiptRecord{}, &inventory.InvalidQuantityError{Quantity: quantity}
	}
	if err := s.checkRefs(productID, outletID); err != nil {
		return models.ReceiptRecord{}, err
	}

	unlock := s.locks.acquire(outletID)
	defer unlock()

	batchID, err := s.ledger.AddBatch(productID, outletID, quantity, models.BatchAttrs{
		ExpiryDate:    expiry,
		PurchasePrice: price,
		Source:        models.SourceReceived,
	})
	if err != nil {
		return models.ReceiptRecord{}, fmt.Errorf("add batch: %w", err)
	}

	receipt := models.ReceiptRecord{
		ID:            s.newID(),
		BatchID:       batchID,
		ProductID:     productID,
		OutletID:      outletID,
		Quantity:      quantity,
		PurchasePrice: price,
		Supplier:      supplier,
		ExpiryDate:    expiry,
		CreatedAt:     s.now(),
	}

	s.journal.Append(ctx, models.MovementRecord{
		ID:        s.newID(),
		Type:      models.MovementReceipt,
		ProductID: productID,
		OutletID:  outletID,
		Quantity:  quantity,
		Reference: receipt.ID,
		CreatedAt: receipt.CreatedAt,
	})

	s.logger.Info("goods received",
		zap.String("product_id", productID),
		zap.String("outlet_id", outletID),
		zap.Float64("quantity", quantity))

	return receipt, nil
}

// requirement is one aggregated ingredient demand of an order.
type requirement struct {
	productID string
	quantity  float64
}

// expandOrder converts order lines into per-product requirements, aggregated
// across items sharing ingredients and kept in first-seen order.
func (s *Service) expandOrder(order models.ManualOrder) ([]requirement, error) {
	index := make(map[string]int)
	var reqs []requirement

	for _, item := range order.Items {
		if item.Quantity <= 0 {
			return nil, &inventory.InvalidQuantityError{Quantity: float64(item.Quantity)}
		}
		menuItem, ok := s.menu.MenuItem(item.MenuItemID)
		if !ok {
			return nil, &inventory.UnknownMenuItemError{MenuItemID: item.MenuItemID}
		}
		for _, ing := range menuItem.Ingredients {
			needed := ing.Quantity * float64(item.Quantity)
			if idx, ok := index[ing.ProductID]; ok {
				reqs[idx].quantity += needed
				continue
			}
			if _, ok := s.products.Product(ing.ProductID); !ok {
				return nil, &inventory.UnknownProductError{ProductID: ing.ProductID}
			}
			index[ing.ProductID] = len(reqs)
			reqs = append(reqs, requirement{productID: ing.ProductID, quantity: needed})
		}
	}
	return reqs, nil
}

// FulfillOrder expands the order into ingredient requirements and deducts them
// from the outlet. If any requirement cannot be met, every deduction already
// applied is restored before the error is returned.
func (s *Service) FulfillOrder(ctx context.Context, order models.ManualOrder) (models.FulfilledOrder, error) {
	if !s.outlets.HasOutlet(order.OutletID) {
		return models.FulfilledOrder{}, &inventory.UnknownOutletError{OutletID: order.OutletID}
	}

	reqs, err := s.expandOrder(order)
	if err != nil {
		return models.FulfilledOrder{}, err
	}

	unlock := s.locks.acquire(order.OutletID)
	defer unlock()

	var applied []models.DeductionPlan
	for _, req := range reqs {
		plan, err := s.ledger.Deduct(req.productID, order.OutletID, req.quantity)
		if err != nil {
			s.rollback(applied)
			return models.FulfilledOrder{}, fmt.Errorf("deduct %s: %w", req.productID, err)
		}
		applied = append(applied, plan)
	}

	if order.ID == "" {
		order.ID = s.newID()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = s.now()
	}

	fulfilled := models.FulfilledOrder{Order: order, ConsumedBatches: applied}
	s.ordersMu.Lock()
	s.orders[order.ID] = fulfilled
	s.ordersMu.Unlock()

	for _, plan := range applied {
		s.journal.Append(ctx, models.MovementRecord{
			ID:        s.newID(),
			Type:      models.MovementConsumption,
			ProductID: plan.ProductID,
			OutletID:  plan.OutletID,
			Quantity:  -plan.Total(),
			Reference: order.ID,
			CreatedAt: s.now(),
		})
	}

	s.logger.Info("order fulfilled",
		zap.String("order_id", order.ID),
		zap.String("outlet_id", order.OutletID),
		zap.Int("ingredients", len(applied)))

	return fulfilled, nil
}

// rollback restores already-applied plans after a partial failure. A restore
// failure here would mean the ledger changed under the outlet lock, which
// cannot happen; it is still logged rather than ignored.
func (s *Service) rollback(applied []models.DeductionPlan) {
	for i := len(applied) - 1; i >= 0; i-- {
		if err := s.ledger.Restore(applied[i]); err != nil {
			s.logger.Error("rollback restore failed",
				zap.String("product_id", applied[i].ProductID),
				zap.Error(err))
		}
	}
}

// Reverse restores the given deduction plans, journaling one restoration per
// plan. The caller guarantees each plan is reversed at most once.
func (s *Service) Reverse(ctx context.Context, plans []models.DeductionPlan, reference string) error {
	if len(plans) == 0 {
		return nil
	}

	unlock := s.locks.acquire(plans[0].OutletID)
	defer unlock()

	for _, plan := range plans {
		if err := s.ledger.Restore(plan); err != nil {
			return fmt.Errorf("restore %s: %w", plan.ProductID, err)
		}
		s.journal.Append(ctx, models.MovementRecord{
			ID:        s.newID(),
			Type:      models.MovementRestoration,
			ProductID: plan.ProductID,
			OutletID:  plan.OutletID,
			Quantity:  plan.Total(),
			Reference: reference,
			CreatedAt: s.now(),
		})
	}
	return nil
}

// ReverseOrder undoes a previously fulfilled order, restoring exactly the
// quantities it deducted, then forgets the order.
func (s *Service) ReverseOrder(ctx context.Context, orderID string) error {
	s.ordersMu.Lock()
	fulfilled, ok := s.orders[orderID]
	if ok {
		delete(s.orders, orderID)
	}
	s.ordersMu.Unlock()
	if !ok {
		return ErrUnknownOrder
	}

	if err := s.Reverse(ctx, fulfilled.ConsumedBatches, orderID); err != nil {
		// Put the order back so the caller can retry once the mismatch is
		// resolved.
		s.ordersMu.Lock()
		s.orders[orderID] = fulfilled
		s.ordersMu.Unlock()
		return err
	}

	s.logger.Info("order reversed", zap.String("order_id", orderID))
	return nil
}

// Order returns a fulfilled order still known to the service.
func (s *Service) Order(orderID string) (models.FulfilledOrder, bool) {
	s.ordersMu.RLock()
	defer s.ordersMu.RUnlock()
	f, ok := s.orders[orderID]
	return f, ok
}

// Transfer moves quantity between outlets. The source availability check and
// both mutations happen under the ordered pair of outlet locks; a destination
// failure restores the source deduction.
func (s *Service) Transfer(ctx context.Context, fromOutletID, toOutletID, productID string, quantity float64, transferPrice *float64) (models.OutletTransfer, error) {
	if quantity <= 0 {
		return models.OutletTransfer{}, &inventory.InvalidQuantityError{Quantity: quantity}
	}
	if err := s.checkRefs(productID, fromOutletID); err != nil {
		return models.OutletTransfer{}, err
	}
	if !s.outlets.HasOutlet(toOutletID) {
		return models.OutletTransfer{}, &inventory.UnknownOutletError{OutletID: toOutletID}
	}

	unlock := s.locks.acquire(fromOutletID, toOutletID)
	defer unlock()

	plan, err := s.ledger.Deduct(productID, fromOutletID, quantity)
	if err != nil {
		return models.OutletTransfer{}, fmt.Errorf("deduct from %s: %w", fromOutletID, err)
	}

	price := transferPrice
	if price == nil {
		// Carry over the cost basis of the drawn stock when available.
		for _, d := range plan.Draws {
			if d.PurchasePrice != nil {
				price = d.PurchasePrice
				break
			}
		}
	}

	if _, err := s.ledger.AddBatch(productID, toOutletID, quantity, models.BatchAttrs{
		PurchasePrice: price,
		Source:        models.SourceTransfer,
	}); err != nil {
		if restoreErr := s.ledger.Restore(plan); restoreErr != nil {
			s.logger.Error("transfer rollback failed", zap.Error(restoreErr))
		}
		return models.OutletTransfer{}, fmt.Errorf("add batch at %s: %w", toOutletID, err)
	}

	transfer := models.OutletTransfer{
		ID:            s.newID(),
		FromOutletID:  fromOutletID,
		ToOutletID:    toOutletID,
		ProductID:     productID,
		Quantity:      quantity,
		TransferPrice: price,
		CreatedAt:     s.now(),
	}

	s.journal.Append(ctx, models.MovementRecord{
		ID:        s.newID(),
		Type:      models.MovementTransfer,
		ProductID: productID,
		OutletID:  fromOutletID,
		Quantity:  -quantity,
		Reference: transfer.ID,
		CreatedAt: transfer.CreatedAt,
	})
	s.journal.Append(ctx, models.MovementRecord{
		ID:        s.newID(),
		Type:      models.MovementTransfer,
		ProductID: productID,
		OutletID:  toOutletID,
		Quantity:  quantity,
		Reference: transfer.ID,
		CreatedAt: transfer.CreatedAt,
	})

	s.logger.Info("stock transferred",
		zap.String("product_id", productID),
		zap.String("from", fromOutletID),
		zap.String("to", toOutletID),
		zap.Float64("quantity", quantity))

	return transfer, nil
}

// RecordWastage writes off stock. There is no reversal path; wasting more
// than exists is rejected.
func (s *Service) RecordWastage(ctx context.Context, productID, outletID string, quantity float64, reason string) (models.WastageEntry, error) {
	if quantity <= 0 {
		return models.WastageEntry{}, &inventory.InvalidQuantityError{Quantity: quantity}
	}
	if err := s.checkRefs(productID, outletID); err != nil {
		return models.WastageEntry{}, err
	}

	unlock := s.locks.acquire(outletID)
	defer unlock()

	if _, err := s.ledger.Deduct(productID, outletID, quantity); err != nil {
		return models.WastageEntry{}, fmt.Errorf("deduct wastage: %w", err)
	}

	entry := models.WastageEntry{
		ID:        s.newID(),
		ProductID: productID,
		OutletID:  outletID,
		Quantity:  quantity,
		Reason:    reason,
		CreatedAt: s.now(),
	}

	s.journal.Append(ctx, models.MovementRecord{
		ID:        s.newID(),
		Type:      models.MovementWastage,
		ProductID: productID,
		OutletID:  outletID,
		Quantity:  -quantity,
		Reference: entry.ID,
		Reason:    reason,
		CreatedAt: entry.CreatedAt,
	})

	s.logger.Info("wastage recorded",
		zap.String("product_id", productID),
		zap.String("outlet_id", outletID),
		zap.Float64("quantity", quantity),
		zap.String("reason", reason))

	return entry, nil
}

// Audit snapshots the system quantity against a physical count. It records
// the difference but never mutates the ledger; reconciliation is the explicit
// ApplyAuditCorrection step.
func (s *Service) Audit(ctx context.Context, productID, outletID string, actualQuantity float64, countedBy string) (models.StockAudit, error) {
	if actualQuantity < 0 {
		return models.StockAudit{}, &inventory.InvalidQuantityError{Quantity: actualQuantity}
	}
	if err := s.checkRefs(productID, outletID); err != nil {
		return models.StockAudit{}, err
	}

	system := s.ledger.GetStock(productID, outletID)
	audit := models.StockAudit{
		ID:             s.newID(),
		OutletID:       outletID,
		ProductID:      productID,
		SystemQuantity: system,
		ActualQuantity: actualQuantity,
		Difference:     actualQuantity - system,
		CountedBy:      countedBy,
		CreatedAt:      s.now(),
	}

	s.auditsMu.Lock()
	s.auditLog[audit.ID] = audit
	s.auditsMu.Unlock()

	if s.audits != nil {
		if err := s.audits.RecordAudit(ctx, audit); err != nil {
			s.logger.Warn("audit sink failed", zap.String("audit_id", audit.ID), zap.Error(err))
		}
	}

	return audit, nil
}

// AuditByID returns a previously recorded audit.
func (s *Service) AuditByID(auditID string) (models.StockAudit, bool) {
	s.auditsMu.RLock()
	defer s.auditsMu.RUnlock()
	a, ok := s.auditLog[auditID]
	return a, ok
}

// ApplyAuditCorrection reconciles the ledger to an audit's counted quantity:
// a positive difference books a correction batch, a negative one deducts. The
// audit record itself stays untouched, keeping the trail auditable.
func (s *Service) ApplyAuditCorrection(ctx context.Context, audit models.StockAudit) error {
	if audit.Difference == 0 {
		return nil
	}
	if err := s.checkRefs(audit.ProductID, audit.OutletID); err != nil {
		return err
	}

	unlock := s.locks.acquire(audit.OutletID)
	defer unlock()

	if audit.Difference > 0 {
		if _, err := s.ledger.AddBatch(audit.ProductID, audit.OutletID, audit.Difference, models.BatchAttrs{
			Source: models.SourceCorrection,
		}); err != nil {
			return fmt.Errorf("correction add: %w", err)
		}
	} else {
		if _, err := s.ledger.Deduct(audit.ProductID, audit.OutletID, -audit.Difference); err != nil {
			return fmt.Errorf("correction deduct: %w", err)
		}
	}

	s.journal.Append(ctx, models.MovementRecord{
		ID:        s.newID(),
		Type:      models.MovementCorrection,
		ProductID: audit.ProductID,
		OutletID:  audit.OutletID,
		Quantity:  audit.Difference,
		Reference: audit.ID,
		CreatedAt: s.now(),
	})

	s.logger.Info("audit correction applied",
		zap.String("audit_id", audit.ID),
		zap.Float64("difference", audit.Difference))

	return nil
}
