package summary

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/OmAmbre27/smart-inventory-sub000/internal/domain/models"
)

type stubMovements struct {
	consumed float64
	wastage  []models.MovementRecord
}

func (s *stubMovements) ConsumedOn(string, time.Time) float64 { return s.consumed }
func (s *stubMovements) WastageOn(string, time.Time) []models.MovementRecord {
	return s.wastage
}

type stubPOs struct {
	count int
	err   error
}

func (s *stubPOs) PendingCount(context.Context, string) (int, error) { return s.count, s.err }

type stubHygiene struct {
	status models.HygieneStatus
	found  bool
	err    error
}

func (s *stubHygiene) LatestStatus(context.Context, string, time.Time) (models.HygieneStatus, bool, error) {
	return s.status, s.found, s.err
}

type stubLowStock struct{ alerts []models.LowStockAlert }

func (s *stubLowStock) CheckLowStock(string) []models.LowStockAlert { return s.alerts }

type captureSink struct {
	saved []models.DailySummary
	err   error
}

func (c *captureSink) SaveDailySummary(_ context.Context, s models.DailySummary) error {
	c.saved = append(c.saved, s)
	return c.err
}

func fixedPrice(price float64) PriceLookup {
	return func(string, string) (float64, bool) { return price, true }
}

func TestGenerateSummaryComposesAllFields(t *testing.T) {
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	mov := &stubMovements{
		consumed: 12.5,
		wastage: []models.MovementRecord{
			{Type: models.MovementWastage, ProductID: "p1", OutletID: "o1", Quantity: -2},
			{Type: models.MovementWastage, ProductID: "p2", OutletID: "o1", Quantity: -1.5},
		},
	}
	sink := &captureSink{}

	svc := NewService(mov, &stubPOs{count: 3}, &stubHygiene{status: models.HygienePassed, found: true},
		fixedPrice(4), &stubLowStock{alerts: make([]models.LowStockAlert, 2)}, nil, sink)
	svc.now = func() time.Time { return day.Add(20 * time.Hour) }

	got, err := svc.GenerateSummary(context.Background(), "o1", day.Add(9*time.Hour))
	if err != nil {
		t.Fatalf("GenerateSummary: %v", err)
	}

	if !got.Date.Equal(day) {
		t.Errorf("got date %v, want truncated %v", got.Date, day)
	}
	if got.StockConsumed != 12.5 {
		t.Errorf("got consumed %v, want 12.5", got.StockConsumed)
	}
	if got.WastageWeight != 3.5 {
		t.Errorf("got wastage weight %v, want 3.5", got.WastageWeight)
	}
	if got.WastageValue != 14 {
		t.Errorf("got wastage value %v, want 14", got.WastageValue)
	}
	if got.PendingPOCount != 3 {
		t.Errorf("got pending POs %d, want 3", got.PendingPOCount)
	}
	if got.HygieneStatus != models.HygienePassed {
		t.Errorf("got hygiene %s, want passed", got.HygieneStatus)
	}
	if got.LowStockProducts != 2 {
		t.Errorf("got low stock count %d, want 2", got.LowStockProducts)
	}
	if len(sink.saved) != 1 {
		t.Errorf("sink received %d summaries, want 1", len(sink.saved))
	}
}

func TestGenerateSummaryDefaultsHygieneToPending(t *testing.T) {
	svc := NewService(&stubMovements{}, nil, &stubHygiene{found: false}, fixedPrice(1), nil, nil)

	got, err := svc.GenerateSummary(context.Background(), "o1", time.Now())
	if err != nil {
		t.Fatalf("GenerateSummary: %v", err)
	}
	if got.HygieneStatus != models.HygienePending {
		t.Errorf("got hygiene %s, want pending default", got.HygieneStatus)
	}
}

func TestGenerateSummaryDegradesOnCollaboratorErrors(t *testing.T) {
	mov := &stubMovements{consumed: 5}
	svc := NewService(mov,
		&stubPOs{err: errors.New("po store down")},
		&stubHygiene{err: errors.New("hygiene store down")},
		fixedPrice(1), nil, nil)

	got, err := svc.GenerateSummary(context.Background(), "o1", time.Now())
	if err != nil {
		t.Fatalf("GenerateSummary: %v", err)
	}
	if got.StockConsumed != 5 {
		t.Errorf("got consumed %v, want 5", got.StockConsumed)
	}
	if got.PendingPOCount != 0 || got.HygieneStatus != models.HygienePending {
		t.Errorf("degraded fields wrong: %+v", got)
	}
}

func TestGenerateSummarySkipsUnpricedWastageValue(t *testing.T) {
	mov := &stubMovements{wastage: []models.MovementRecord{
		{Type: models.MovementWastage, ProductID: "p1", OutletID: "o1", Quantity: -2},
	}}
	noPrice := func(string, string) (float64, bool) { return 0, false }

	svc := NewService(mov, nil, nil, noPrice, nil, nil)
	got, err := svc.GenerateSummary(context.Background(), "o1", time.Now())
	if err != nil {
		t.Fatalf("GenerateSummary: %v", err)
	}
	if got.WastageWeight != 2 {
		t.Errorf("got weight %v, want 2", got.WastageWeight)
	}
	if got.WastageValue != 0 {
		t.Errorf("got value %v, want 0 when unpriced", got.WastageValue)
	}
}

func TestGenerateSummaryRequiresOutlet(t *testing.T) {
	svc := NewService(&stubMovements{}, nil, nil, fixedPrice(1), nil, nil)
	if _, err := svc.GenerateSummary(context.Background(), "", time.Now()); err == nil {
		t.Error("expected error for empty outlet id")
	}
}
