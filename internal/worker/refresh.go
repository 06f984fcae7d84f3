package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/lagoshaul/lagoshaul/internal/fuel"
	"github.com/lagoshaul/lagoshaul/internal/routing"
)

// RefreshJob keeps the fuel price cache fresh and the route cache warm
// for the high-traffic lanes.
type RefreshJob struct {
	config RefreshConfig
	logger zerolog.Logger

	// Services (optional, nil if not configured)
	fuelService  *fuel.Service
	routeService *routing.Service

	// Metrics
	metrics *RefreshMetrics
}

// RefreshMetrics tracks refresh job statistics.
type RefreshMetrics struct {
	mu sync.RWMutex

	// Counters
	TotalRefreshes int64
	SuccessfulWarm int64
	FailedWarm     int64
	FuelRefreshes  int64
	RouteWarmups   int64

	// Timings
	LastRefreshAt       time.Time
	LastRefreshDuration time.Duration
	TotalDuration       time.Duration
}

// RefreshJobConfig holds configuration for creating a RefreshJob.
type RefreshJobConfig struct {
	Config       RefreshConfig
	Logger       zerolog.Logger
	FuelService  *fuel.Service
	RouteService *routing.Service
}

// NewRefreshJob creates a new refresh job processor.
func NewRefreshJob(cfg RefreshJobConfig) *RefreshJob {
	config := cfg.Config
	if len(config.Corridors) == 0 {
		config = DefaultRefreshConfig()
	}

	return &RefreshJob{
		config:       config,
		logger:       cfg.Logger,
		fuelService:  cfg.FuelService,
		routeService: cfg.RouteService,
		metrics:      &RefreshMetrics{},
	}
}

// RefreshResult contains the result of a refresh operation.
type RefreshResult struct {
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalCorridors int
	Successful     int
	Failed         int
	Errors         []RefreshError
}

// RefreshError represents an error during refresh.
type RefreshError struct {
	Corridor string
	Error    string
}

// Run warms all configured corridors.
func (j *RefreshJob) Run(ctx context.Context) *RefreshResult {
	startTime := time.Now()
	result := &RefreshResult{
		StartTime:      startTime,
		TotalCorridors: j.config.TotalCorridors(),
	}

	j.logger.Info().
		Int("total_corridors", result.TotalCorridors).
		Int("concurrency", j.config.Concurrency).
		Msg("starting route warmup job")

	corridorsChan := make(chan Corridor, len(j.config.Corridors))
	resultsChan := make(chan corridorResult, len(j.config.Corridors))

	var wg sync.WaitGroup
	for i := 0; i < j.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			j.warmWorker(ctx, corridorsChan, resultsChan)
		}()
	}

	for _, c := range j.config.Corridors {
		corridorsChan <- c
	}
	close(corridorsChan)

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	for cr := range resultsChan {
		if cr.success {
			result.Successful++
		} else {
			result.Failed++
		}
		result.Errors = append(result.Errors, cr.errors...)
	}

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(startTime)

	j.updateMetrics(result)

	j.logger.Info().
		Dur("duration", result.Duration).
		Int("successful", result.Successful).
		Int("failed", result.Failed).
		Msg("route warmup job completed")

	return result
}

type corridorResult struct {
	corridor Corridor
	success  bool
	errors   []RefreshError
}

func (j *RefreshJob) warmWorker(ctx context.Context, corridors <-chan Corridor, results chan<- corridorResult) {
	for corridor := range corridors {
		select {
		case <-ctx.Done():
			return
		default:
			results <- j.warmCorridor(ctx, corridor)
		}
	}
}

func (j *RefreshJob) warmCorridor(ctx context.Context, corridor Corridor) corridorResult {
	result := corridorResult{
		corridor: corridor,
		success:  true,
	}

	if !j.config.WarmRoutes || j.routeService == nil {
		return result
	}

	warmCtx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	_, err := j.routeService.Estimate(warmCtx, []routing.Waypoint{
		{Location: corridor.Pickup},
		{Location: corridor.Dropoff},
	})
	if err != nil {
		result.errors = append(result.errors, RefreshError{
			Corridor: corridor.Name,
			Error:    err.Error(),
		})
		result.success = false
		return result
	}

	atomic.AddInt64(&j.metrics.RouteWarmups, 1)
	return result
}

// RefreshFuel refreshes the cached pump price. Fuel is not lane-based,
// so a single fetch covers every corridor.
func (j *RefreshJob) RefreshFuel(ctx context.Context) error {
	if !j.config.RefreshFuel || j.fuelService == nil {
		return nil
	}

	j.logger.Debug().Msg("refreshing fuel price")

	if err := j.fuelService.Refresh(ctx); err != nil {
		j.logger.Error().Err(err).Msg("failed to refresh fuel price")
		return err
	}

	atomic.AddInt64(&j.metrics.FuelRefreshes, 1)
	return nil
}

func (j *RefreshJob) updateMetrics(result *RefreshResult) {
	j.metrics.mu.Lock()
	defer j.metrics.mu.Unlock()

	j.metrics.TotalRefreshes++
	j.metrics.SuccessfulWarm += int64(result.Successful)
	j.metrics.FailedWarm += int64(result.Failed)
	j.metrics.LastRefreshAt = result.EndTime
	j.metrics.LastRefreshDuration = result.Duration
	j.metrics.TotalDuration += result.Duration
}

// GetMetrics returns a copy of the current metrics.
func (j *RefreshJob) GetMetrics() RefreshMetrics {
	j.metrics.mu.RLock()
	defer j.metrics.mu.RUnlock()

	// FuelRefreshes and RouteWarmups are incremented atomically outside
	// the mutex, so they must be read the same way.
	return RefreshMetrics{
		TotalRefreshes:      j.metrics.TotalRefreshes,
		SuccessfulWarm:      j.metrics.SuccessfulWarm,
		FailedWarm:          j.metrics.FailedWarm,
		FuelRefreshes:       atomic.LoadInt64(&j.metrics.FuelRefreshes),
		RouteWarmups:        atomic.LoadInt64(&j.metrics.RouteWarmups),
		LastRefreshAt:       j.metrics.LastRefreshAt,
		LastRefreshDuration: j.metrics.LastRefreshDuration,
		TotalDuration:       j.metrics.TotalDuration,
	}
}

// MetricsSnapshot returns a snapshot of the current metrics as a map.
func (j *RefreshJob) MetricsSnapshot() map[string]interface{} {
	m := j.GetMetrics()
	return map[string]interface{}{
		"total_refreshes":       m.TotalRefreshes,
		"successful_warmups":    m.SuccessfulWarm,
		"failed_warmups":        m.FailedWarm,
		"fuel_refreshes":        m.FuelRefreshes,
		"route_warmups":         m.RouteWarmups,
		"last_refresh_at":       m.LastRefreshAt,
		"last_refresh_duration": m.LastRefreshDuration.String(),
		"total_duration":        m.TotalDuration.String(),
	}
}
