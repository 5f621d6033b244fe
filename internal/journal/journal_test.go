package journal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/OmAmbre27/smart-inventory-sub000/internal/domain/models"
)

type failingSink struct{ calls int }

func (f *failingSink) RecordMovement(context.Context, models.MovementRecord) error {
	f.calls++
	return errors.New("sink down")
}

func at(day, hour int) time.Time {
	return time.Date(2024, 1, day, hour, 0, 0, 0, time.UTC)
}

func TestRecordsForFiltersOutletAndDay(t *testing.T) {
	j := New(nil)
	ctx := context.Background()

	j.Append(ctx, models.MovementRecord{ID: "1", OutletID: "o1", Type: models.MovementReceipt, Quantity: 5, CreatedAt: at(10, 9)})
	j.Append(ctx, models.MovementRecord{ID: "2", OutletID: "o1", Type: models.MovementReceipt, Quantity: 5, CreatedAt: at(11, 0)}) // next day
	j.Append(ctx, models.MovementRecord{ID: "3", OutletID: "o2", Type: models.MovementReceipt, Quantity: 5, CreatedAt: at(10, 9)})
	j.Append(ctx, models.MovementRecord{ID: "4", OutletID: "o1", Type: models.MovementWastage, Quantity: -1, CreatedAt: at(10, 23)})

	got := j.RecordsFor("o1", at(10, 15))
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	if got[0].ID != "1" || got[1].ID != "4" {
		t.Errorf("got ids %s, %s; want 1, 4", got[0].ID, got[1].ID)
	}
}

func TestConsumedOnNetsRestorations(t *testing.T) {
	j := New(nil)
	ctx := context.Background()

	j.Append(ctx, models.MovementRecord{ID: "1", OutletID: "o1", Type: models.MovementConsumption, Quantity: -4, CreatedAt: at(10, 12)})
	j.Append(ctx, models.MovementRecord{ID: "2", OutletID: "o1", Type: models.MovementConsumption, Quantity: -2, CreatedAt: at(10, 13)})
	j.Append(ctx, models.MovementRecord{ID: "3", OutletID: "o1", Type: models.MovementRestoration, Quantity: 2, CreatedAt: at(10, 14)})

	if got := j.ConsumedOn("o1", at(10, 0)); got != 4 {
		t.Errorf("got consumed %v, want 4", got)
	}
}

func TestWastageOnSelectsOnlyWastage(t *testing.T) {
	j := New(nil)
	ctx := context.Background()

	j.Append(ctx, models.MovementRecord{ID: "1", OutletID: "o1", Type: models.MovementWastage, Quantity: -3, CreatedAt: at(10, 12)})
	j.Append(ctx, models.MovementRecord{ID: "2", OutletID: "o1", Type: models.MovementReceipt, Quantity: 10, CreatedAt: at(10, 12)})

	got := j.WastageOn("o1", at(10, 0))
	if len(got) != 1 || got[0].ID != "1" {
		t.Errorf("got %+v, want only the wastage record", got)
	}
}

func TestSinkFailureDoesNotDropRecord(t *testing.T) {
	sink := &failingSink{}
	j := New(nil, sink)

	j.Append(context.Background(), models.MovementRecord{ID: "1", OutletID: "o1", Type: models.MovementReceipt, Quantity: 1, CreatedAt: at(10, 9)})

	if sink.calls != 1 {
		t.Errorf("sink called %d times, want 1", sink.calls)
	}
	if got := j.RecordsFor("o1", at(10, 0)); len(got) != 1 {
		t.Errorf("record lost on sink failure: got %d, want 1", len(got))
	}
}
