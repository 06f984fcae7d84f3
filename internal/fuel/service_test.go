package fuel

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type fakeProvider struct {
	data  *FuelData
	err   error
	calls int
}

func (f *fakeProvider) GetCurrentPrice(ctx context.Context) (*FuelData, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	d := *f.data
	return &d, nil
}

func (f *fakeProvider) Name() string { return "fake" }

func TestCurrentPriceLive(t *testing.T) {
	provider := &fakeProvider{
		data: &FuelData{
			PricePerLiter: 617,
			Currency:      "NGN",
			UpdatedAt:     time.Now(),
			Source:        SourceLive,
		},
	}
	svc := NewService(ServiceConfig{Provider: provider, Logger: zerolog.Nop()})

	got := svc.CurrentPrice(context.Background())
	if got.PricePerLiter != 617 {
		t.Errorf("PricePerLiter = %v, want 617", got.PricePerLiter)
	}
	if got.Source != SourceLive {
		t.Errorf("Source = %q, want %q", got.Source, SourceLive)
	}

	cached := svc.Cached()
	if cached == nil || cached.PricePerLiter != 617 {
		t.Errorf("cache not populated after live fetch: %+v", cached)
	}
}

func TestCurrentPriceUsesFreshCacheOnFailure(t *testing.T) {
	provider := &fakeProvider{
		data: &FuelData{
			PricePerLiter: 617,
			Currency:      "NGN",
			UpdatedAt:     time.Now(),
			Source:        SourceLive,
		},
	}
	svc := NewService(ServiceConfig{Provider: provider, Logger: zerolog.Nop()})

	svc.CurrentPrice(context.Background())

	provider.err = errors.New("connection refused")
	got := svc.CurrentPrice(context.Background())

	if got.PricePerLiter != 617 {
		t.Errorf("PricePerLiter = %v, want cached 617", got.PricePerLiter)
	}
	if got.Source != SourceCached {
		t.Errorf("Source = %q, want %q", got.Source, SourceCached)
	}
}

func TestCurrentPriceFallsBackWhenCacheStale(t *testing.T) {
	provider := &fakeProvider{
		data: &FuelData{
			PricePerLiter: 617,
			Currency:      "NGN",
			UpdatedAt:     time.Now().Add(-2 * time.Hour),
			Source:        SourceLive,
		},
	}
	svc := NewService(ServiceConfig{
		Provider:       provider,
		Logger:         zerolog.Nop(),
		CacheFreshness: time.Hour,
	})

	svc.CurrentPrice(context.Background())

	provider.err = errors.New("connection refused")
	got := svc.CurrentPrice(context.Background())

	if got.PricePerLiter != FallbackPricePerLiter {
		t.Errorf("PricePerLiter = %v, want fallback %v", got.PricePerLiter, FallbackPricePerLiter)
	}
	if got.Source != SourceFallback {
		t.Errorf("Source = %q, want %q", got.Source, SourceFallback)
	}

	// The fallback is re-cached so repeat failures stay consistent.
	again := svc.CurrentPrice(context.Background())
	if again.PricePerLiter != FallbackPricePerLiter {
		t.Errorf("second PricePerLiter = %v, want %v", again.PricePerLiter, FallbackPricePerLiter)
	}
}

func TestCurrentPriceFallbackWithEmptyCache(t *testing.T) {
	provider := &fakeProvider{err: errors.New("down")}
	svc := NewService(ServiceConfig{Provider: provider, Logger: zerolog.Nop()})

	got := svc.CurrentPrice(context.Background())
	if got.PricePerLiter != FallbackPricePerLiter {
		t.Errorf("PricePerLiter = %v, want %v", got.PricePerLiter, FallbackPricePerLiter)
	}
	if got.Source != SourceFallback {
		t.Errorf("Source = %q, want %q", got.Source, SourceFallback)
	}
	if got.Currency != "NGN" {
		t.Errorf("Currency = %q, want NGN", got.Currency)
	}
}

func TestRefresh(t *testing.T) {
	provider := &fakeProvider{
		data: &FuelData{
			PricePerLiter: 650,
			Currency:      "NGN",
			UpdatedAt:     time.Now(),
			Source:        SourceLive,
		},
	}
	svc := NewService(ServiceConfig{Provider: provider, Logger: zerolog.Nop()})

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	cached := svc.Cached()
	if cached == nil || cached.PricePerLiter != 650 {
		t.Errorf("cache after refresh = %+v, want price 650", cached)
	}

	provider.err = errors.New("down")
	if err := svc.Refresh(context.Background()); err == nil {
		t.Error("Refresh() with failing provider should return error")
	}
}
