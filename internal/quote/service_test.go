package quote

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/lagoshaul/lagoshaul/internal/pricing"
)

func testQuote(pickup, dropoff string) *Quote {
	return &Quote{
		Stops: []Stop{
			{Type: StopPickup, Location: pickup},
			{Type: StopDropoff, Location: dropoff},
		},
		LoadSize:     pricing.LoadSemiFull,
		LoadWeightKg: 650,
		PickupTime:   time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC),
		DistanceKm:   22,
		Price:        28875,
	}
}

func newTestService() *Service {
	return NewService(ServiceConfig{
		Repository: NewInMemoryRepository(),
		Logger:     zerolog.Nop(),
	})
}

func TestCreateAssignsIdentityAndStatus(t *testing.T) {
	svc := newTestService()

	created, err := svc.Create(context.Background(), testQuote("Ikeja", "Lekki"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if created.ID == "" {
		t.Error("Create() did not assign an ID")
	}
	if created.Status != StatusDraft {
		t.Errorf("Status = %q, want %q", created.Status, StatusDraft)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("Create() did not set timestamps")
	}

	got, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Price != 28875 {
		t.Errorf("Price = %d, want 28875", got.Price)
	}
}

func TestUpdatePreservesCreationTime(t *testing.T) {
	svc := newTestService()

	created, err := svc.Create(context.Background(), testQuote("Ikeja", "Lekki"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	edited := *created
	edited.Price = 30000
	edited.Status = StatusConfirmed

	updated, err := svc.Update(context.Background(), &edited)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("CreatedAt changed on update: %v vs %v", updated.CreatedAt, created.CreatedAt)
	}
	if updated.Status != StatusConfirmed {
		t.Errorf("Status = %q, want confirmed", updated.Status)
	}

	got, _ := svc.Get(context.Background(), created.ID)
	if got.Price != 30000 {
		t.Errorf("Price after update = %d, want 30000", got.Price)
	}
}

func TestUpdateMissingQuote(t *testing.T) {
	svc := newTestService()

	q := testQuote("Ikeja", "Lekki")
	q.ID = "qt_missing"

	_, err := svc.Update(context.Background(), q)
	if !errors.Is(err, ErrQuoteNotFound) {
		t.Errorf("error = %v, want ErrQuoteNotFound", err)
	}
}

func TestListFiltersByLocationAndStatus(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	a, _ := svc.Create(ctx, testQuote("Ikeja", "Lekki"))
	if _, err := svc.Create(ctx, testQuote("Surulere", "Apapa")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	a.Status = StatusConfirmed
	if _, err := svc.Update(ctx, a); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	quotes, _, err := svc.List(ctx, ListFilter{Query: "lekki"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(quotes) != 1 || quotes[0].ID != a.ID {
		t.Errorf("search by location returned %d quotes", len(quotes))
	}

	quotes, _, err = svc.List(ctx, ListFilter{Status: StatusConfirmed})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(quotes) != 1 || quotes[0].ID != a.ID {
		t.Errorf("filter by status returned %d quotes", len(quotes))
	}
}

func TestListPagination(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		q := testQuote("Ikeja", "Lekki")
		if _, err := svc.Create(ctx, q); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		// Distinct creation instants keep the newest-first order stable.
		time.Sleep(time.Millisecond)
	}

	seen := map[string]bool{}
	var cursor time.Time
	for {
		page, next, err := svc.List(ctx, ListFilter{Limit: 2, Cursor: cursor})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		for _, q := range page {
			if seen[q.ID] {
				t.Errorf("quote %s returned twice", q.ID)
			}
			seen[q.ID] = true
		}
		if next.IsZero() {
			break
		}
		cursor = next
	}

	if len(seen) != 5 {
		t.Errorf("pagination returned %d quotes, want 5", len(seen))
	}
}

func TestDelete(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, _ := svc.Create(ctx, testQuote("Ikeja", "Lekki"))

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); !errors.Is(err, ErrQuoteNotFound) {
		t.Errorf("Get() after delete = %v, want ErrQuoteNotFound", err)
	}
	if err := svc.Delete(ctx, created.ID); !errors.Is(err, ErrQuoteNotFound) {
		t.Errorf("second Delete() = %v, want ErrQuoteNotFound", err)
	}
}

type failingRepo struct {
	Repository
}

func (f *failingRepo) Save(ctx context.Context, q *Quote) error {
	return errors.New("connection reset")
}

func TestCreateSurfacesSaveFailure(t *testing.T) {
	svc := NewService(ServiceConfig{
		Repository: &failingRepo{Repository: NewInMemoryRepository()},
		Logger:     zerolog.Nop(),
	})

	_, err := svc.Create(context.Background(), testQuote("Ikeja", "Lekki"))
	if !errors.Is(err, ErrCouldNotSave) {
		t.Errorf("error = %v, want ErrCouldNotSave", err)
	}
}
