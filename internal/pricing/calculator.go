package pricing

import "math"

// Capabilities selects which optional terms the calculator includes.
// The quoting flow without live route data omits both; the enhanced flow
// enables both. One calculator serves both paths.
type Capabilities struct {
	// RealTimeFuelData includes the computed fuel cost term in the
	// subtotal.
	RealTimeFuelData bool

	// ProfitMargin splits the profit margin out of the total and exposes
	// a break-even price distinct from the total.
	ProfitMargin bool
}

// ComputeInput carries the fully resolved inputs of one price computation.
// All policy decisions (traffic merge, weight adjustment, fuel cost) happen
// before this point; Compute itself is a pure arithmetic composition.
type ComputeInput struct {
	DistanceKm             float64
	TrafficMultiplier      float64
	LoadFactor             float64
	BaseRate               float64
	RealFuelCost           float64
	FuelSurcharge          float64
	ProfitMarginPercentage float64
	Capabilities           Capabilities
}

// Compute builds the price breakdown. The composition order is fixed for
// reproducibility:
//
//	base         = distance × rate × traffic × load
//	subtotal     = base + fuelCost
//	withSurcharge = subtotal × surcharge
//	profit       = withSurcharge × margin%
//	total        = round(withSurcharge + profit)
//	breakEven    = round(withSurcharge)
//
// Each currency output field is rounded to whole naira independently.
// Invalid inputs are clamped to neutral values rather than rejected.
func Compute(in ComputeInput) Breakdown {
	distance := in.DistanceKm
	if distance < 0 {
		distance = 0
	}

	traffic := in.TrafficMultiplier
	if traffic < MinTrafficMultiplier {
		traffic = MinTrafficMultiplier
	}

	load := in.LoadFactor
	if load <= 0 {
		load = 1.0
	}

	rate := in.BaseRate
	if rate < 0 {
		rate = 0
	}

	surcharge := in.FuelSurcharge
	if surcharge <= 0 {
		surcharge = 1.0
	}

	fuelCost := in.RealFuelCost
	if fuelCost < 0 || !in.Capabilities.RealTimeFuelData {
		fuelCost = 0
	}

	marginPct := in.ProfitMarginPercentage
	if marginPct < 0 || !in.Capabilities.ProfitMargin {
		marginPct = 0
	}

	base := distance * rate * traffic * load
	subtotal := base + fuelCost
	withSurcharge := subtotal * surcharge
	profit := withSurcharge * (marginPct / 100)

	return Breakdown{
		BaseDistanceKm:    distance,
		AdjustedDistance:  distance * traffic,
		BaseRate:          rate,
		TrafficMultiplier: traffic,
		LoadFactor:        load,
		FuelSurcharge:     surcharge,
		RealFuelCost:      roundNaira(fuelCost),
		ProfitMargin:      roundNaira(profit),
		BaseCalculation:   roundNaira(base),
		Subtotal:          roundNaira(subtotal),
		Total:             roundNaira(withSurcharge + profit),
		BreakEvenPrice:    roundNaira(withSurcharge),
	}
}

// FuelCost converts distance and the vehicle's consumption rate into a
// cost at the given pump price. Pure; non-negative for non-negative inputs.
func FuelCost(distanceKm float64, specs VehicleSpecs, pricePerLiter float64) float64 {
	if distanceKm <= 0 || specs.FuelConsumption <= 0 || pricePerLiter <= 0 {
		return 0
	}
	liters := (distanceKm / 100) * specs.FuelConsumption
	return liters * pricePerLiter
}

func roundNaira(v float64) int64 {
	return int64(math.Round(v))
}
