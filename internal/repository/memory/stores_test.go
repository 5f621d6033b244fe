package memory

import (
	"context"
	"testing"
	"time"

	"github.com/OmAmbre27/smart-inventory-sub000/internal/domain/models"
)

func TestPendingCountPerOutlet(t *testing.T) {
	store := NewPurchaseOrderStore()
	store.Put(models.PurchaseOrder{ID: "po1", OutletID: "o1", Status: models.POPending})
	store.Put(models.PurchaseOrder{ID: "po2", OutletID: "o1", Status: models.POPending})
	store.Put(models.PurchaseOrder{ID: "po3", OutletID: "o1", Status: models.POReceived})
	store.Put(models.PurchaseOrder{ID: "po4", OutletID: "o2", Status: models.POPending})

	got, err := store.PendingCount(context.Background(), "o1")
	if err != nil {
		t.Fatalf("PendingCount: %v", err)
	}
	if got != 2 {
		t.Errorf("got %d, want 2", got)
	}

	store.SetStatus("po1", models.POCancelled)
	got, _ = store.PendingCount(context.Background(), "o1")
	if got != 1 {
		t.Errorf("after cancel: got %d, want 1", got)
	}
}

func TestLatestHygieneStatusForDay(t *testing.T) {
	store := NewHygieneStore()
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	_, found, err := store.LatestStatus(context.Background(), "o1", day)
	if err != nil || found {
		t.Fatalf("empty store: got found=%v err=%v, want false, nil", found, err)
	}

	store.Append(models.HygieneLog{ID: "h1", OutletID: "o1", Status: models.HygieneFailed, CreatedAt: day.Add(8 * time.Hour)})
	store.Append(models.HygieneLog{ID: "h2", OutletID: "o1", Status: models.HygienePassed, CreatedAt: day.Add(18 * time.Hour)})
	store.Append(models.HygieneLog{ID: "h3", OutletID: "o1", Status: models.HygieneFailed, CreatedAt: day.AddDate(0, 0, -1)})
	store.Append(models.HygieneLog{ID: "h4", OutletID: "o2", Status: models.HygieneFailed, CreatedAt: day.Add(9 * time.Hour)})

	status, found, err := store.LatestStatus(context.Background(), "o1", day)
	if err != nil {
		t.Fatalf("LatestStatus: %v", err)
	}
	if !found || status != models.HygienePassed {
		t.Errorf("got (%s, %v), want (passed, true)", status, found)
	}
}
