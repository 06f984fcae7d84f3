// Package pricing implements the LagosHaul pricing engine: distance-based
// price breakdown computation, traffic and load policies, fuel cost, and
// offer profitability evaluation.
package pricing

import (
	"errors"
	"time"
)

// Repository errors.
var (
	ErrParamsNotFound = errors.New("pricing params not found")
)

// LoadSize is the discrete cargo-fullness category, distinct from load weight.
type LoadSize string

const (
	LoadHalf     LoadSize = "half"
	LoadSemiFull LoadSize = "semi-full"
	LoadFull     LoadSize = "full"
)

// Valid reports whether the load size is one of the known categories.
func (s LoadSize) Valid() bool {
	switch s {
	case LoadHalf, LoadSemiFull, LoadFull:
		return true
	}
	return false
}

// FuelType is the vehicle fuel type.
type FuelType string

const (
	FuelPetrol FuelType = "petrol"
	FuelDiesel FuelType = "diesel"
)

// VehicleSpecs describes the delivery vehicle used for fuel cost and
// weight-fraction calculations. Static configuration, not derived.
type VehicleSpecs struct {
	Name            string   `json:"name"`
	Year            int      `json:"year"`
	FuelConsumption float64  `json:"fuelConsumption"` // liters per 100 km
	LoadCapacityKg  float64  `json:"loadCapacityKg"`
	FuelType        FuelType `json:"fuelType"`
}

// Params is the mutable pricing configuration read by the calculator.
// It is loaded once at startup and replaced wholesale on admin updates.
type Params struct {
	// BaseRate is the charge per kilometer in naira.
	BaseRate float64 `json:"baseRate"`

	// FuelSurcharge is the multiplicative markup covering fuel volatility,
	// distinct from the computed real fuel cost term.
	FuelSurcharge float64 `json:"fuelSurcharge"`

	// ProfitMarginPercentage is applied on top of the break-even price.
	ProfitMarginPercentage float64 `json:"profitMarginPercentage"`

	// LoadFactors maps each load size to its base multiplier.
	LoadFactors map[LoadSize]float64 `json:"loadFactors"`

	// TrafficMultipliers is a sparse hour-of-day table; hours without an
	// entry default to 1.0.
	TrafficMultipliers map[int]float64 `json:"trafficMultipliers"`

	// VehicleSpecs is the vehicle the quotes are computed for.
	VehicleSpecs VehicleSpecs `json:"vehicleSpecs"`

	LastUpdated time.Time `json:"lastUpdated"`
}

// DefaultVehicleSpecs returns the specs of the default delivery van.
func DefaultVehicleSpecs() VehicleSpecs {
	return VehicleSpecs{
		Name:            "Ford Cargo Van",
		Year:            2016,
		FuelConsumption: 15.0,
		LoadCapacityKg:  1300,
		FuelType:        FuelPetrol,
	}
}

// DefaultParams returns the built-in pricing configuration used when the
// parameter store holds no saved params.
func DefaultParams() Params {
	return Params{
		BaseRate:               300,
		FuelSurcharge:          1.25,
		ProfitMarginPercentage: 25,
		LoadFactors: map[LoadSize]float64{
			LoadHalf:     1.15,
			LoadSemiFull: 1.25,
			LoadFull:     1.40,
		},
		TrafficMultipliers: map[int]float64{
			// Morning rush
			6: 1.3, 7: 1.8, 8: 2.0, 9: 1.5,
			// Evening rush
			17: 1.5, 18: 1.8, 19: 2.0, 20: 1.3,
		},
		VehicleSpecs: DefaultVehicleSpecs(),
		LastUpdated:  time.Now(),
	}
}

// Clone returns a deep copy of the params. Callers receive copies so a
// running computation never observes a concurrent admin update.
func (p Params) Clone() Params {
	cpy := p
	cpy.LoadFactors = make(map[LoadSize]float64, len(p.LoadFactors))
	for k, v := range p.LoadFactors {
		cpy.LoadFactors[k] = v
	}
	cpy.TrafficMultipliers = make(map[int]float64, len(p.TrafficMultipliers))
	for k, v := range p.TrafficMultipliers {
		cpy.TrafficMultipliers[k] = v
	}
	return cpy
}

// Breakdown is the computed price decomposition. Currency-bearing fields
// are rounded to whole naira independently; AdjustedDistance is kept
// unrounded for display.
type Breakdown struct {
	BaseDistanceKm    float64 `json:"baseDistanceKm"`
	AdjustedDistance  float64 `json:"adjustedDistance"`
	BaseRate          float64 `json:"baseRate"`
	TrafficMultiplier float64 `json:"trafficMultiplier"`
	LoadFactor        float64 `json:"loadFactor"`
	FuelSurcharge     float64 `json:"fuelSurcharge"`
	RealFuelCost      int64   `json:"realFuelCost"`
	ProfitMargin      int64   `json:"profitMargin"`
	BaseCalculation   int64   `json:"baseCalculation"`
	Subtotal          int64   `json:"subtotal"`
	Total             int64   `json:"total"`
	BreakEvenPrice    int64   `json:"breakEvenPrice"`
}
