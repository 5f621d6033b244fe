package movements

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/OmAmbre27/smart-inventory-sub000/internal/catalog"
	"github.com/OmAmbre27/smart-inventory-sub000/internal/domain/models"
	"github.com/OmAmbre27/smart-inventory-sub000/internal/inventory"
	"github.com/OmAmbre27/smart-inventory-sub000/internal/journal"
)

type fixture struct {
	svc     *Service
	ledger  *inventory.Ledger
	journal *journal.Journal
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := catalog.NewStore()
	store.PutOutlet(models.Outlet{ID: "o1", Name: "Downtown"})
	store.PutOutlet(models.Outlet{ID: "o2", Name: "Airport"})
	store.PutProduct(models.Product{ID: "rice", Name: "Rice", Unit: models.UnitKilogram, AutoReorderQty: 50})
	store.PutProduct(models.Product{ID: "oil", Name: "Oil", Unit: models.UnitLiter})
	store.PutProduct(models.Product{ID: "chicken", Name: "Chicken", Unit: models.UnitKilogram, IsPerishable: true})
	store.PutMenuItem(models.MenuItem{
		ID:   "biryani",
		Name: "Chicken Biryani",
		Ingredients: []models.Ingredient{
			{ProductID: "rice", Quantity: 0.2, Unit: models.UnitKilogram},
			{ProductID: "oil", Quantity: 0.05, Unit: models.UnitLiter},
			{ProductID: "chicken", Quantity: 0.25, Unit: models.UnitKilogram},
		},
		IsActive: true,
	})

	ledger := inventory.NewLedger()
	jrnl := journal.New(nil)
	svc := NewService(ledger, store, store, store, jrnl, nil, nil)
	svc.now = func() time.Time { return time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC) }

	return &fixture{svc: svc, ledger: ledger, journal: jrnl}
}

func (f *fixture) receive(t *testing.T, productID, outletID string, qty float64) {
	t.Helper()
	if _, err := f.svc.Receive(context.Background(), productID, outletID, qty, nil, "", nil); err != nil {
		t.Fatalf("Receive(%s, %s, %v): %v", productID, outletID, qty, err)
	}
}

func TestReceiveValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Receive(ctx, "rice", "o1", 0, nil, "", nil)
	var invalid *inventory.InvalidQuantityError
	if !errors.As(err, &invalid) {
		t.Errorf("zero quantity: got %v, want InvalidQuantityError", err)
	}

	_, err = f.svc.Receive(ctx, "nope", "o1", 5, nil, "", nil)
	var unknownProduct *inventory.UnknownProductError
	if !errors.As(err, &unknownProduct) {
		t.Errorf("unknown product: got %v, want UnknownProductError", err)
	}

	_, err = f.svc.Receive(ctx, "rice", "nowhere", 5, nil, "", nil)
	var unknownOutlet *inventory.UnknownOutletError
	if !errors.As(err, &unknownOutlet) {
		t.Errorf("unknown outlet: got %v, want UnknownOutletError", err)
	}
}

func TestFulfillThenReverseConservesStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.receive(t, "rice", "o1", 10)
	f.receive(t, "oil", "o1", 5)
	f.receive(t, "chicken", "o1", 8)

	fulfilled, err := f.svc.FulfillOrder(ctx, models.ManualOrder{
		OutletID: "o1",
		Items:    []models.OrderItem{{MenuItemID: "biryani", Quantity: 10}},
	})
	if err != nil {
		t.Fatalf("FulfillOrder: %v", err)
	}

	if got := f.ledger.GetStock("rice", "o1"); got != 8 {
		t.Errorf("rice after fulfillment: got %v, want 8", got)
	}
	if got := f.ledger.GetStock("chicken", "o1"); got != 5.5 {
		t.Errorf("chicken after fulfillment: got %v, want 5.5", got)
	}

	if err := f.svc.ReverseOrder(ctx, fulfilled.Order.ID); err != nil {
		t.Fatalf("ReverseOrder: %v", err)
	}

	for product, want := range map[string]float64{"rice": 10, "oil": 5, "chicken": 8} {
		if got := f.ledger.GetStock(product, "o1"); got != want {
			t.Errorf("%s after reversal: got %v, want %v", product, got, want)
		}
	}

	if err := f.svc.ReverseOrder(ctx, fulfilled.Order.ID); !errors.Is(err, ErrUnknownOrder) {
		t.Errorf("second reversal: got %v, want ErrUnknownOrder", err)
	}
}

func TestFulfillOrderAggregatesSharedIngredients(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.receive(t, "rice", "o1", 10)
	f.receive(t, "oil", "o1", 5)
	f.receive(t, "chicken", "o1", 8)

	fulfilled, err := f.svc.FulfillOrder(ctx, models.ManualOrder{
		OutletID: "o1",
		Items: []models.OrderItem{
			{MenuItemID: "biryani", Quantity: 2},
			{MenuItemID: "biryani", Quantity: 3},
		},
	})
	if err != nil {
		t.Fatalf("FulfillOrder: %v", err)
	}

	// One aggregated plan per distinct ingredient, not per order line.
	if got := len(fulfilled.ConsumedBatches); got != 3 {
		t.Fatalf("got %d plans, want 3", got)
	}
	if got := fulfilled.ConsumedBatches[0].Total(); got != 1.0 {
		t.Errorf("rice plan total: got %v, want 1.0 (5 plates x 0.2)", got)
	}
}

func TestFulfillOrderRollsBackOnPartialFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.receive(t, "rice", "o1", 10)
	f.receive(t, "oil", "o1", 5)
	f.receive(t, "chicken", "o1", 1) // 10 plates need 2.5kg

	_, err := f.svc.FulfillOrder(ctx, models.ManualOrder{
		OutletID: "o1",
		Items:    []models.OrderItem{{MenuItemID: "biryani", Quantity: 10}},
	})
	if !inventory.IsInsufficientStock(err) {
		t.Fatalf("got %v, want InsufficientStockError", err)
	}

	// First two ingredients must retain their pre-call values.
	for product, want := range map[string]float64{"rice": 10, "oil": 5, "chicken": 1} {
		if got := f.ledger.GetStock(product, "o1"); got != want {
			t.Errorf("%s after failed order: got %v, want %v", product, got, want)
		}
	}
}

func TestFulfillOrderUnknownMenuItem(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.FulfillOrder(context.Background(), models.ManualOrder{
		OutletID: "o1",
		Items:    []models.OrderItem{{MenuItemID: "ghost", Quantity: 1}},
	})
	var unknown *inventory.UnknownMenuItemError
	if !errors.As(err, &unknown) {
		t.Errorf("got %v, want UnknownMenuItemError", err)
	}
}

func TestTransferSymmetry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.receive(t, "rice", "o1", 20)
	f.receive(t, "rice", "o2", 5)

	if _, err := f.svc.Transfer(ctx, "o1", "o2", "rice", 7, nil); err != nil {
		t.Fatalf("Transfer o1->o2: %v", err)
	}
	if got := f.ledger.GetStock("rice", "o1"); got != 13 {
		t.Errorf("source after transfer: got %v, want 13", got)
	}
	if got := f.ledger.GetStock("rice", "o2"); got != 12 {
		t.Errorf("destination after transfer: got %v, want 12", got)
	}

	if _, err := f.svc.Transfer(ctx, "o2", "o1", "rice", 7, nil); err != nil {
		t.Fatalf("Transfer o2->o1: %v", err)
	}
	if got := f.ledger.GetStock("rice", "o1"); got != 20 {
		t.Errorf("o1 after round trip: got %v, want 20", got)
	}
	if got := f.ledger.GetStock("rice", "o2"); got != 5 {
		t.Errorf("o2 after round trip: got %v, want 5", got)
	}
}

func TestTransferInsufficientStockMutatesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.receive(t, "rice", "o1", 3)

	_, err := f.svc.Transfer(ctx, "o1", "o2", "rice", 10, nil)
	if !inventory.IsInsufficientStock(err) {
		t.Fatalf("got %v, want InsufficientStockError", err)
	}
	if got := f.ledger.GetStock("rice", "o1"); got != 3 {
		t.Errorf("source mutated by failed transfer: got %v, want 3", got)
	}
	if got := f.ledger.GetStock("rice", "o2"); got != 0 {
		t.Errorf("destination mutated by failed transfer: got %v, want 0", got)
	}
}

func TestTransferCarriesPurchasePrice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	price := 3.5
	if _, err := f.svc.Receive(ctx, "rice", "o1", 10, &price, "acme", nil); err != nil {
		t.Fatalf("Receive: %v", err)
	}

	transfer, err := f.svc.Transfer(ctx, "o1", "o2", "rice", 4, nil)
	if err != nil {
		t.Fatalf("Transfer: %v", err)
	}
	if transfer.TransferPrice == nil || *transfer.TransferPrice != price {
		t.Errorf("got transfer price %+v, want %v", transfer.TransferPrice, price)
	}

	got, ok := f.ledger.LatestPurchasePrice("rice", "o2")
	if !ok || got != price {
		t.Errorf("destination price: got (%v, %v), want (%v, true)", got, ok, price)
	}
}

func TestRecordWastage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.receive(t, "chicken", "o1", 5)

	entry, err := f.svc.RecordWastage(ctx, "chicken", "o1", 2, "spoiled")
	if err != nil {
		t.Fatalf("RecordWastage: %v", err)
	}
	if entry.Reason != "spoiled" {
		t.Errorf("got reason %q, want spoiled", entry.Reason)
	}
	if got := f.ledger.GetStock("chicken", "o1"); got != 3 {
		t.Errorf("got stock %v, want 3", got)
	}

	_, err = f.svc.RecordWastage(ctx, "chicken", "o1", 99, "fire")
	if !inventory.IsInsufficientStock(err) {
		t.Errorf("over-wastage: got %v, want InsufficientStockError", err)
	}
	if got := f.ledger.GetStock("chicken", "o1"); got != 3 {
		t.Errorf("failed wastage mutated stock: got %v, want 3", got)
	}
}

func TestAuditRecordsWithoutMutating(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.receive(t, "rice", "o1", 10)

	audit, err := f.svc.Audit(ctx, "rice", "o1", 7.5, "storekeeper-1")
	if err != nil {
		t.Fatalf("Audit: %v", err)
	}
	if audit.SystemQuantity != 10 || audit.ActualQuantity != 7.5 || audit.Difference != -2.5 {
		t.Errorf("got system=%v actual=%v diff=%v", audit.SystemQuantity, audit.ActualQuantity, audit.Difference)
	}
	if got := f.ledger.GetStock("rice", "o1"); got != 10 {
		t.Errorf("audit mutated ledger: got %v, want 10", got)
	}
}

func TestApplyAuditCorrection(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.receive(t, "rice", "o1", 10)

	audit, err := f.svc.Audit(ctx, "rice", "o1", 7.5, "")
	if err != nil {
		t.Fatalf("Audit: %v", err)
	}
	if err := f.svc.ApplyAuditCorrection(ctx, audit); err != nil {
		t.Fatalf("ApplyAuditCorrection: %v", err)
	}
	if got := f.ledger.GetStock("rice", "o1"); got != 7.5 {
		t.Errorf("after shrink correction: got %v, want 7.5", got)
	}

	surplus, err := f.svc.Audit(ctx, "rice", "o1", 9, "")
	if err != nil {
		t.Fatalf("Audit: %v", err)
	}
	if err := f.svc.ApplyAuditCorrection(ctx, surplus); err != nil {
		t.Fatalf("ApplyAuditCorrection surplus: %v", err)
	}
	if got := f.ledger.GetStock("rice", "o1"); got != 9 {
		t.Errorf("after surplus correction: got %v, want 9", got)
	}
}

func TestJournalNetsConsumptionAgainstReversal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.receive(t, "rice", "o1", 10)
	f.receive(t, "oil", "o1", 5)
	f.receive(t, "chicken", "o1", 8)

	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	fulfilled, err := f.svc.FulfillOrder(ctx, models.ManualOrder{
		OutletID: "o1",
		Items:    []models.OrderItem{{MenuItemID: "biryani", Quantity: 4}},
	})
	if err != nil {
		t.Fatalf("FulfillOrder: %v", err)
	}
	if got := f.journal.ConsumedOn("o1", day); got != 2.0 {
		t.Errorf("consumed after fulfillment: got %v, want 2.0", got)
	}

	if err := f.svc.ReverseOrder(ctx, fulfilled.Order.ID); err != nil {
		t.Fatalf("ReverseOrder: %v", err)
	}
	if got := f.journal.ConsumedOn("o1", day); got != 0 {
		t.Errorf("consumed after reversal: got %v, want 0", got)
	}
}
