package worker_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lagoshaul/lagoshaul/internal/fuel"
	"github.com/lagoshaul/lagoshaul/internal/worker"
)

func TestDefaultRefreshConfig(t *testing.T) {
	cfg := worker.DefaultRefreshConfig()

	assert.Equal(t, 3, cfg.Concurrency)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.True(t, cfg.RefreshFuel)
	assert.True(t, cfg.WarmRoutes)
	assert.NotEmpty(t, cfg.Corridors)
}

func TestDefaultCorridors(t *testing.T) {
	corridors := worker.DefaultCorridors()

	// Should cover the main mainland-island lanes
	assert.GreaterOrEqual(t, len(corridors), 8)

	var ikejaVI *worker.Corridor
	for i := range corridors {
		if corridors[i].Pickup == "Ikeja" && corridors[i].Dropoff == "Victoria Island" {
			ikejaVI = &corridors[i]
			break
		}
	}
	require.NotNil(t, ikejaVI, "Ikeja to Victoria Island should be a default corridor")
	assert.Equal(t, 1, ikejaVI.Priority)
}

func TestRefreshConfig_TotalCorridors(t *testing.T) {
	cfg := worker.RefreshConfig{
		Corridors: []worker.Corridor{
			{Name: "A", Pickup: "Ikeja", Dropoff: "Lekki"},
			{Name: "B", Pickup: "Apapa", Dropoff: "Epe"},
		},
	}

	assert.Equal(t, 2, cfg.TotalCorridors())
}

func TestRefreshJob_Run_NoServices(t *testing.T) {
	// Create a job with no services configured
	cfg := worker.RefreshConfig{
		Corridors: []worker.Corridor{
			{Name: "Test", Pickup: "Ikeja", Dropoff: "Lekki"},
		},
		Concurrency: 1,
		Timeout:     1 * time.Second,
		WarmRoutes:  true,
		RefreshFuel: true,
	}

	job := worker.NewRefreshJob(worker.RefreshJobConfig{
		Config: cfg,
		Logger: zerolog.Nop(),
	})

	result := job.Run(context.Background())

	// Should complete without panicking
	assert.NotNil(t, result)
	assert.Equal(t, 1, result.TotalCorridors)
	assert.Equal(t, 1, result.Successful)
}

func TestRefreshJob_Run_WithConcurrency(t *testing.T) {
	corridors := make([]worker.Corridor, 10)
	for i := range corridors {
		corridors[i] = worker.Corridor{Name: "Test", Pickup: "Ikeja", Dropoff: "Lekki"}
	}

	cfg := worker.RefreshConfig{
		Corridors:   corridors,
		Concurrency: 3,
		Timeout:     1 * time.Second,
	}

	job := worker.NewRefreshJob(worker.RefreshJobConfig{
		Config: cfg,
		Logger: zerolog.Nop(),
	})

	result := job.Run(context.Background())

	assert.Equal(t, 10, result.TotalCorridors)
	assert.Equal(t, 10, result.Successful) // All should succeed since no providers
}

func TestRefreshJob_Run_ContextCancellation(t *testing.T) {
	corridors := make([]worker.Corridor, 100)
	for i := range corridors {
		corridors[i] = worker.Corridor{Name: "Test", Pickup: "Ikeja", Dropoff: "Lekki"}
	}

	cfg := worker.RefreshConfig{
		Corridors:   corridors,
		Concurrency: 1,
		Timeout:     100 * time.Millisecond,
	}

	job := worker.NewRefreshJob(worker.RefreshJobConfig{
		Config: cfg,
		Logger: zerolog.Nop(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := job.Run(ctx)

	// Should complete (even if not all corridors processed)
	assert.NotNil(t, result)
}

func TestRefreshJob_GetMetrics(t *testing.T) {
	cfg := worker.RefreshConfig{
		Corridors: []worker.Corridor{
			{Name: "Test", Pickup: "Ikeja", Dropoff: "Lekki"},
		},
		Concurrency: 1,
		Timeout:     1 * time.Second,
	}

	job := worker.NewRefreshJob(worker.RefreshJobConfig{
		Config: cfg,
		Logger: zerolog.Nop(),
	})

	_ = job.Run(context.Background())

	metrics := job.GetMetrics()
	assert.Equal(t, int64(1), metrics.TotalRefreshes)
	assert.NotZero(t, metrics.LastRefreshAt)
}

func TestRefreshJob_MetricsSnapshot(t *testing.T) {
	cfg := worker.RefreshConfig{
		Corridors: []worker.Corridor{
			{Name: "Test", Pickup: "Ikeja", Dropoff: "Lekki"},
		},
		Concurrency: 1,
		Timeout:     1 * time.Second,
	}

	job := worker.NewRefreshJob(worker.RefreshJobConfig{
		Config: cfg,
		Logger: zerolog.Nop(),
	})

	_ = job.Run(context.Background())

	snapshot := job.MetricsSnapshot()

	assert.Contains(t, snapshot, "total_refreshes")
	assert.Contains(t, snapshot, "successful_warmups")
	assert.Contains(t, snapshot, "failed_warmups")
	assert.Contains(t, snapshot, "fuel_refreshes")
	assert.Contains(t, snapshot, "last_refresh_at")
	assert.Contains(t, snapshot, "last_refresh_duration")
}

func TestRefreshJob_RefreshFuel_NoService(t *testing.T) {
	job := worker.NewRefreshJob(worker.RefreshJobConfig{
		Config: worker.RefreshConfig{RefreshFuel: true, Corridors: worker.DefaultCorridors()},
		Logger: zerolog.Nop(),
	})

	err := job.RefreshFuel(context.Background())
	assert.NoError(t, err)
}

func TestRefreshJob_RefreshFuel_Disabled(t *testing.T) {
	job := worker.NewRefreshJob(worker.RefreshJobConfig{
		Config: worker.RefreshConfig{RefreshFuel: false, Corridors: worker.DefaultCorridors()},
		Logger: zerolog.Nop(),
	})

	err := job.RefreshFuel(context.Background())
	assert.NoError(t, err)
}

type staticFuelProvider struct{}

func (staticFuelProvider) GetCurrentPrice(_ context.Context) (*fuel.FuelData, error) {
	return &fuel.FuelData{PricePerLiter: 650, Currency: "NGN", UpdatedAt: time.Now(), Source: fuel.SourceLive}, nil
}

func (staticFuelProvider) Name() string { return "static" }

func TestRefreshJob_RefreshFuel_CountsRefreshes(t *testing.T) {
	fuelService := fuel.NewService(fuel.ServiceConfig{
		Provider: staticFuelProvider{},
		Logger:   zerolog.Nop(),
	})

	job := worker.NewRefreshJob(worker.RefreshJobConfig{
		Config:      worker.RefreshConfig{RefreshFuel: true, Corridors: worker.DefaultCorridors()},
		Logger:      zerolog.Nop(),
		FuelService: fuelService,
	})

	require.NoError(t, job.RefreshFuel(context.Background()))

	metrics := job.GetMetrics()
	assert.Equal(t, int64(1), metrics.FuelRefreshes)
}

func TestRefreshJob_MetricsReadDuringRefresh(t *testing.T) {
	fuelService := fuel.NewService(fuel.ServiceConfig{
		Provider: staticFuelProvider{},
		Logger:   zerolog.Nop(),
	})

	job := worker.NewRefreshJob(worker.RefreshJobConfig{
		Config: worker.RefreshConfig{
			Corridors:   worker.DefaultCorridors(),
			Concurrency: 3,
			Timeout:     time.Second,
			RefreshFuel: true,
			WarmRoutes:  true,
		},
		Logger:      zerolog.Nop(),
		FuelService: fuelService,
	})

	// Counter reads must be safe while refreshes are in flight.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			_ = job.GetMetrics()
			_ = job.MetricsSnapshot()
		}
	}()

	for i := 0; i < 5; i++ {
		require.NoError(t, job.RefreshFuel(context.Background()))
		_ = job.Run(context.Background())
	}
	<-done

	metrics := job.GetMetrics()
	assert.Equal(t, int64(5), metrics.FuelRefreshes)
	assert.Equal(t, int64(5), metrics.TotalRefreshes)
}

func TestNewRefreshJob_DefaultConfig(t *testing.T) {
	// Create job with empty config - should use defaults
	job := worker.NewRefreshJob(worker.RefreshJobConfig{
		Config: worker.RefreshConfig{}, // Empty
		Logger: zerolog.Nop(),
	})

	metrics := job.GetMetrics()
	assert.Equal(t, int64(0), metrics.TotalRefreshes) // Not run yet
}

func TestRefreshResult_Fields(t *testing.T) {
	result := &worker.RefreshResult{
		StartTime:      time.Now(),
		TotalCorridors: 10,
		Successful:     8,
		Failed:         2,
		Errors: []worker.RefreshError{
			{Corridor: "Ikeja - Lekki", Error: "timeout"},
			{Corridor: "Apapa - Epe", Error: "unavailable"},
		},
	}
	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)

	assert.Equal(t, 10, result.TotalCorridors)
	assert.Equal(t, 8, result.Successful)
	assert.Equal(t, 2, result.Failed)
	assert.Len(t, result.Errors, 2)
	assert.Equal(t, "Ikeja - Lekki", result.Errors[0].Corridor)
}
