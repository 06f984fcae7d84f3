// Package routing provides road route estimates (distance and duration)
// between delivery stops, backed by an external directions provider with
// caching.
package routing

import (
	"context"
	"errors"
	"strings"
)

// Sentinel errors for routing operations.
var (
	// ErrNoRouteFound indicates the provider returned no route between
	// the given stops.
	ErrNoRouteFound = errors.New("no route found")

	// ErrProviderUnavailable indicates the routing provider is down or the
	// circuit breaker is open.
	ErrProviderUnavailable = errors.New("routing provider unavailable")
)

// Waypoint is a single stop on a delivery route.
type Waypoint struct {
	// Location is the LGA or area name for the stop.
	Location string `json:"location"`

	// Address is the optional street address within the location. When
	// empty, the location centre is used.
	Address string `json:"address"`
}

// String renders the waypoint as a geocodable query.
func (w Waypoint) String() string {
	if w.Address == "" {
		return w.Location + ", Lagos, Nigeria"
	}
	return w.Address + ", " + w.Location + ", Lagos, Nigeria"
}

// RouteEstimate is a road route measurement over an ordered set of stops.
type RouteEstimate struct {
	// DistanceKm is the total driving distance in kilometers.
	DistanceKm float64 `json:"distanceKm"`

	// DurationMinutes is the estimated driving time in minutes.
	DurationMinutes float64 `json:"durationMinutes"`

	// Provider identifies where the estimate came from.
	Provider string `json:"provider"`
}

// Provider defines the interface for directions providers.
type Provider interface {
	// EstimateRoute returns distance and duration over the stops in order.
	// At least two waypoints are required.
	EstimateRoute(ctx context.Context, waypoints []Waypoint) (*RouteEstimate, error)

	// Name returns the provider identifier for logging and health tracking.
	Name() string
}

// CacheKey builds a stable key for a waypoint sequence. Order matters:
// A->B and B->A are distinct routes in Lagos traffic.
func CacheKey(waypoints []Waypoint) string {
	parts := make([]string, 0, len(waypoints))
	for _, w := range waypoints {
		parts = append(parts, strings.ToLower(w.Location)+"|"+strings.ToLower(w.Address))
	}
	return strings.Join(parts, ">")
}
