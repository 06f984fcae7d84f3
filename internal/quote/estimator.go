package quote

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/lagoshaul/lagoshaul/internal/fuel"
	"github.com/lagoshaul/lagoshaul/internal/geo"
	"github.com/lagoshaul/lagoshaul/internal/pricing"
	"github.com/lagoshaul/lagoshaul/internal/routing"
)

// EstimateInput describes one estimation request.
type EstimateInput struct {
	Stops        []Stop
	LoadSize     pricing.LoadSize
	LoadWeightKg float64
	PickupTime   time.Time

	// UseRouteProvider asks for a live route (distance and duration) from
	// the directions provider instead of the static distance table. The
	// estimator falls back to the table when the provider fails.
	UseRouteProvider bool

	// Capabilities selects the calculator terms. The zero value enables
	// everything.
	Capabilities *pricing.Capabilities
}

// Estimate is the result of one estimation cycle.
type Estimate struct {
	// NoRoute is set when fewer than two stops have a location, in which
	// case no breakdown is computed.
	NoRoute bool `json:"noRoute"`

	DistanceKm        float64              `json:"distanceKm"`
	DurationMinutes   float64              `json:"durationMinutes"`
	TrafficMultiplier float64              `json:"trafficMultiplier"`
	LoadFactor        float64              `json:"loadFactor"`
	Breakdown         pricing.Breakdown    `json:"breakdown"`
	VehicleSpecs      pricing.VehicleSpecs `json:"vehicleSpecs"`
	FuelData          *fuel.FuelData       `json:"fuelData,omitempty"`
	RouteSource       string               `json:"routeSource"`
}

// Route source labels for Estimate.RouteSource.
const (
	RouteSourceMatrix   = "matrix"
	RouteSourceProvider = "provider"
)

// EstimatorConfig holds dependencies for the estimator.
type EstimatorConfig struct {
	// Resolver provides static table distances. Required.
	Resolver *geo.Resolver

	// Routes provides live route estimates. Optional; when nil the static
	// table is always used.
	Routes *routing.Service

	// Fuel provides the current pump price. Required.
	Fuel *fuel.Service

	// Params provides the current pricing configuration. Required.
	Params *pricing.Service

	// Logger for estimation cycles.
	Logger zerolog.Logger
}

// Estimator runs price estimation cycles: route resolution, fuel price,
// policy evaluation and breakdown computation. Cycles are tagged with a
// monotonically increasing token; when a newer cycle starts before an
// older one finishes, the older one returns ErrSuperseded so its stale
// result is never published.
type Estimator struct {
	resolver *geo.Resolver
	routes   *routing.Service
	fuel     *fuel.Service
	params   *pricing.Service
	logger   zerolog.Logger

	seq atomic.Uint64
}

// NewEstimator creates a new estimator.
func NewEstimator(cfg EstimatorConfig) *Estimator {
	return &Estimator{
		resolver: cfg.Resolver,
		routes:   cfg.Routes,
		fuel:     cfg.Fuel,
		params:   cfg.Params,
		logger:   cfg.Logger,
	}
}

// Estimate runs one independent estimation cycle. Concurrent calls do not
// supersede each other; use EstimateLatest for latest-wins semantics.
func (e *Estimator) Estimate(ctx context.Context, in EstimateInput) (*Estimate, error) {
	return e.estimate(ctx, in, 0)
}

// EstimateLatest runs an estimation cycle with latest-wins semantics:
// starting a new cycle supersedes all in-flight ones, which return
// ErrSuperseded instead of a stale result. The sequence spans the whole
// estimator, so this is for a single input stream (one client driving
// repeated estimates), not for serving unrelated callers.
func (e *Estimator) EstimateLatest(ctx context.Context, in EstimateInput) (*Estimate, error) {
	return e.estimate(ctx, in, e.seq.Add(1))
}

func (e *Estimator) estimate(ctx context.Context, in EstimateInput, token uint64) (*Estimate, error) {
	locations := make([]string, 0, len(in.Stops))
	waypoints := make([]routing.Waypoint, 0, len(in.Stops))
	for _, s := range in.Stops {
		if s.Location == "" {
			continue
		}
		locations = append(locations, s.Location)
		waypoints = append(waypoints, routing.Waypoint{Location: s.Location, Address: s.Address})
	}

	if len(locations) < 2 {
		return &Estimate{NoRoute: true}, nil
	}

	distance, duration, source := e.resolveRoute(ctx, in.UseRouteProvider, locations, waypoints)

	if err := e.checkToken(token); err != nil {
		return nil, err
	}

	params := e.params.Params()
	fuelData := e.fuel.CurrentPrice(ctx)

	if err := e.checkToken(token); err != nil {
		return nil, err
	}

	scheduled := params.MultiplierForHour(in.PickupTime.Hour())
	live := pricing.LiveMultiplier(duration, distance)
	traffic := scheduled
	if duration > 0 {
		traffic = pricing.EffectiveMultiplier(scheduled, live)
	}

	loadFactor := params.AdjustedFactor(in.LoadSize, in.LoadWeightKg)
	fuelCost := pricing.FuelCost(distance, params.VehicleSpecs, fuelData.PricePerLiter)

	caps := pricing.Capabilities{RealTimeFuelData: true, ProfitMargin: true}
	if in.Capabilities != nil {
		caps = *in.Capabilities
	}

	breakdown := pricing.Compute(pricing.ComputeInput{
		DistanceKm:             distance,
		TrafficMultiplier:      traffic,
		LoadFactor:             loadFactor,
		BaseRate:               params.BaseRate,
		RealFuelCost:           fuelCost,
		FuelSurcharge:          params.FuelSurcharge,
		ProfitMarginPercentage: params.ProfitMarginPercentage,
		Capabilities:           caps,
	})

	return &Estimate{
		DistanceKm:        distance,
		DurationMinutes:   duration,
		TrafficMultiplier: traffic,
		LoadFactor:        loadFactor,
		Breakdown:         breakdown,
		VehicleSpecs:      params.VehicleSpecs,
		FuelData:          fuelData,
		RouteSource:       source,
	}, nil
}

// resolveRoute picks live route data when asked for and available,
// otherwise the static distance table. A provider failure degrades to the
// table rather than failing the cycle.
func (e *Estimator) resolveRoute(ctx context.Context, useProvider bool, locations []string, waypoints []routing.Waypoint) (distance, duration float64, source string) {
	if useProvider && e.routes != nil {
		est, err := e.routes.Estimate(ctx, waypoints)
		if err == nil {
			return est.DistanceKm, est.DurationMinutes, RouteSourceProvider
		}
		e.logger.Warn().Err(err).Msg("route provider failed, using distance table")
	}

	return e.resolver.TotalDistance(locations), 0, RouteSourceMatrix
}

func (e *Estimator) checkToken(token uint64) error {
	if token != 0 && e.seq.Load() != token {
		return ErrSuperseded
	}
	return nil
}
