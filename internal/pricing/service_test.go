package pricing_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/lagoshaul/lagoshaul/internal/pricing"
)

func TestService_DefaultsWhenEmpty(t *testing.T) {
	repo := pricing.NewInMemoryRepository()
	svc := pricing.NewService(context.Background(), pricing.ServiceConfig{
		Repository: repo,
		Logger:     zerolog.Nop(),
	})

	params := svc.Params()
	if params.BaseRate != 300 {
		t.Errorf("base rate = %v, want 300", params.BaseRate)
	}
	if params.FuelSurcharge != 1.25 {
		t.Errorf("fuel surcharge = %v, want 1.25", params.FuelSurcharge)
	}
	if params.VehicleSpecs.Name != "Ford Cargo Van" {
		t.Errorf("vehicle = %q, want default van", params.VehicleSpecs.Name)
	}
}

func TestService_UpdatePersistsAndRefreshesTimestamp(t *testing.T) {
	repo := pricing.NewInMemoryRepository()
	svc := pricing.NewService(context.Background(), pricing.ServiceConfig{
		Repository: repo,
		Logger:     zerolog.Nop(),
	})

	before := time.Now()

	params := svc.Params()
	params.BaseRate = 350
	params.ProfitMarginPercentage = 30

	updated, err := svc.Update(context.Background(), params)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.LastUpdated.Before(before) {
		t.Error("update should refresh the lastUpdated timestamp")
	}

	// A fresh service loads the persisted params instead of defaults.
	reloaded := pricing.NewService(context.Background(), pricing.ServiceConfig{
		Repository: repo,
		Logger:     zerolog.Nop(),
	})
	got := reloaded.Params()
	if got.BaseRate != 350 {
		t.Errorf("reloaded base rate = %v, want 350", got.BaseRate)
	}
	if got.ProfitMarginPercentage != 30 {
		t.Errorf("reloaded margin = %v, want 30", got.ProfitMarginPercentage)
	}
}

func TestService_ParamsReturnsCopy(t *testing.T) {
	repo := pricing.NewInMemoryRepository()
	svc := pricing.NewService(context.Background(), pricing.ServiceConfig{
		Repository: repo,
		Logger:     zerolog.Nop(),
	})

	params := svc.Params()
	params.LoadFactors[pricing.LoadHalf] = 99

	if svc.Params().LoadFactors[pricing.LoadHalf] == 99 {
		t.Error("mutating a returned copy must not affect the service state")
	}
}
