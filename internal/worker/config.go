// Package worker provides background job processing for LagosHaul.
package worker

import (
	"time"
)

// Corridor is a pickup/dropoff lane whose route estimate is worth keeping
// warm in the cache.
type Corridor struct {
	// Name is the human-readable name of the corridor.
	Name string

	// Pickup and Dropoff are LGA names.
	Pickup  string
	Dropoff string

	// Priority determines warmup order (lower = higher priority).
	Priority int
}

// RefreshConfig holds configuration for the refresh job.
type RefreshConfig struct {
	// Corridors are the lanes to warm.
	// If empty, uses DefaultCorridors.
	Corridors []Corridor

	// Concurrency is the number of concurrent warmup operations.
	// Default: 3
	Concurrency int

	// Timeout is the timeout for each warmup operation.
	// Default: 30 seconds
	Timeout time.Duration

	// RefreshFuel enables the fuel price refresh.
	// Default: true
	RefreshFuel bool

	// WarmRoutes enables route cache warming.
	// Default: true
	WarmRoutes bool
}

// DefaultRefreshConfig returns the default refresh configuration.
func DefaultRefreshConfig() RefreshConfig {
	return RefreshConfig{
		Corridors:   DefaultCorridors(),
		Concurrency: 3,
		Timeout:     30 * time.Second,
		RefreshFuel: true,
		WarmRoutes:  true,
	}
}

// DefaultCorridors returns the high-traffic Lagos lanes. Mainland to
// island crossings dominate the quote volume, so those come first.
func DefaultCorridors() []Corridor {
	return []Corridor{
		{Name: "Ikeja - Victoria Island", Pickup: "Ikeja", Dropoff: "Victoria Island", Priority: 1},
		{Name: "Ikeja - Lekki", Pickup: "Ikeja", Dropoff: "Lekki", Priority: 1},
		{Name: "Surulere - Victoria Island", Pickup: "Surulere", Dropoff: "Victoria Island", Priority: 1},
		{Name: "Apapa - Ikeja", Pickup: "Apapa", Dropoff: "Ikeja", Priority: 1},
		{Name: "Lekki - Lagos Island", Pickup: "Lekki", Dropoff: "Lagos Island", Priority: 2},
		{Name: "Ikorodu - Ikeja", Pickup: "Ikorodu", Dropoff: "Ikeja", Priority: 2},
		{Name: "Agege - Apapa", Pickup: "Agege", Dropoff: "Apapa", Priority: 2},
		{Name: "Alimosho - Victoria Island", Pickup: "Alimosho", Dropoff: "Victoria Island", Priority: 2},
		{Name: "Victoria Island - Epe", Pickup: "Victoria Island", Dropoff: "Epe", Priority: 3},
		{Name: "Badagry - Lagos Island", Pickup: "Badagry", Dropoff: "Lagos Island", Priority: 3},
		{Name: "Ibeju-Lekki - Ikeja", Pickup: "Ibeju-Lekki", Dropoff: "Ikeja", Priority: 3},
	}
}

// TotalCorridors returns the number of lanes to warm.
func (c RefreshConfig) TotalCorridors() int {
	return len(c.Corridors)
}
