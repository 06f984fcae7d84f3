// Package googlemaps provides a routing provider backed by the Google
// Maps Directions API.
package googlemaps

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"googlemaps.github.io/maps"

	"github.com/lagoshaul/lagoshaul/internal/geo"
	"github.com/lagoshaul/lagoshaul/internal/routing"
)

// ClientConfig holds configuration for the Google Maps client.
type ClientConfig struct {
	// APIKey is the Google Maps API key.
	APIKey string

	// Timeout is the per-request timeout. Default: 10 seconds
	Timeout time.Duration

	// Logger for client operations.
	Logger zerolog.Logger
}

// mapsAPI is the subset of the Google Maps client used here, extracted
// so tests can stub it.
type mapsAPI interface {
	Directions(ctx context.Context, r *maps.DirectionsRequest) ([]maps.Route, []maps.GeocodedWaypoint, error)
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// Client estimates routes via the Google Maps Directions API. Waypoint
// addresses are geocoded first; a stop that fails to geocode falls back
// to its LGA centre coordinate so one bad address does not sink the
// whole route.
type Client struct {
	api     mapsAPI
	timeout time.Duration
	logger  zerolog.Logger
}

// NewClient creates a new Google Maps routing client.
func NewClient(cfg ClientConfig) (*Client, error) {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	api, err := maps.NewClient(maps.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("creating maps client: %w", err)
	}

	return &Client{
		api:     api,
		timeout: timeout,
		logger:  cfg.Logger,
	}, nil
}

// Name returns the provider identifier.
func (c *Client) Name() string {
	return "googlemaps"
}

// EstimateRoute returns the driving distance and duration over the stops
// in order.
func (c *Client) EstimateRoute(ctx context.Context, waypoints []routing.Waypoint) (*routing.RouteEstimate, error) {
	if len(waypoints) < 2 {
		return nil, fmt.Errorf("%w: need at least two stops", routing.ErrNoRouteFound)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	coords := make([]maps.LatLng, len(waypoints))
	for i, w := range waypoints {
		coords[i] = c.geocode(ctx, w)
	}

	req := &maps.DirectionsRequest{
		Origin:      latLngString(coords[0]),
		Destination: latLngString(coords[len(coords)-1]),
		Mode:        maps.TravelModeDriving,
	}
	for _, p := range coords[1 : len(coords)-1] {
		req.Waypoints = append(req.Waypoints, latLngString(p))
	}

	routes, _, err := c.api.Directions(ctx, req)
	if err != nil {
		c.logger.Error().Err(err).Msg("directions request failed")
		return nil, fmt.Errorf("%w: %v", routing.ErrProviderUnavailable, err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return nil, routing.ErrNoRouteFound
	}

	var meters int
	var duration time.Duration
	for _, leg := range routes[0].Legs {
		meters += leg.Distance.Meters
		duration += leg.Duration
	}

	return &routing.RouteEstimate{
		DistanceKm:      float64(meters) / 1000,
		DurationMinutes: duration.Minutes(),
		Provider:        c.Name(),
	}, nil
}

// geocode resolves a waypoint to a coordinate, falling back to the LGA
// centre when geocoding fails or returns nothing.
func (c *Client) geocode(ctx context.Context, w routing.Waypoint) maps.LatLng {
	results, err := c.api.Geocode(ctx, &maps.GeocodingRequest{
		Address: w.String(),
		Region:  "ng",
	})
	if err != nil || len(results) == 0 {
		c.logger.Debug().
			Str("location", w.Location).
			Msg("geocode failed, using area centre")
		centre := geo.Centre(w.Location)
		return maps.LatLng{Lat: centre.Lat, Lng: centre.Lon}
	}

	return results[0].Geometry.Location
}

func latLngString(p maps.LatLng) string {
	return fmt.Sprintf("%f,%f", p.Lat, p.Lng)
}
