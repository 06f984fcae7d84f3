package pricing

// Live traffic multiplier bounds. The live signal is derived from the
// route provider's actual duration against an assumed 30 km/h free-flow
// speed, so it is clamped to a sane congestion range.
const (
	MinTrafficMultiplier = 1.0
	MaxTrafficMultiplier = 2.5

	// optimalMinutesPerKm models the free-flow assumption: one minute
	// per half kilometer.
	optimalMinutesPerKm = 2.0
)

// Weight adjustment envelope: weight alone may swing the load factor by
// at most ±20% around its nominal value.
const (
	weightEnvelopeFloor = 0.8
	weightEnvelopeSpan  = 0.4
)

// MultiplierForHour returns the scheduled traffic multiplier for an
// hour of day (0-23). Hours without a configured entry default to 1.0.
func (p Params) MultiplierForHour(hour int) float64 {
	if m, ok := p.TrafficMultipliers[hour]; ok && m >= MinTrafficMultiplier {
		return m
	}
	return MinTrafficMultiplier
}

// LiveMultiplier derives a congestion multiplier from the actual travel
// duration reported by the route provider against the free-flow optimum
// for the distance. The result is clamped to [1.0, 2.5]. Non-positive
// inputs yield the neutral multiplier.
func LiveMultiplier(actualDurationMinutes, distanceKm float64) float64 {
	if actualDurationMinutes <= 0 || distanceKm <= 0 {
		return MinTrafficMultiplier
	}

	optimal := distanceKm * optimalMinutesPerKm
	m := actualDurationMinutes / optimal
	if m < MinTrafficMultiplier {
		return MinTrafficMultiplier
	}
	if m > MaxTrafficMultiplier {
		return MaxTrafficMultiplier
	}
	return m
}

// EffectiveMultiplier merges the scheduled and live traffic signals by
// taking the worse of the two. Live duration can under-represent
// congestion for pickups in the near future, so neither signal alone
// is trusted to lower the price.
func EffectiveMultiplier(scheduled, live float64) float64 {
	if scheduled > live {
		return scheduled
	}
	return live
}

// FactorFor returns the nominal load factor for a load size. Unknown
// sizes fall back to the neutral factor.
func (p Params) FactorFor(size LoadSize) float64 {
	if f, ok := p.LoadFactors[size]; ok && f > 0 {
		return f
	}
	return 1.0
}

// AdjustedFactor scales the nominal load factor by the current load
// weight as a fraction of vehicle capacity. A half-full truck that is
// nonetheless heavily loaded burns more fuel than its nominal factor
// suggests. The result stays within [0.8, 1.2] times the nominal factor;
// weights above capacity clamp to the upper bound.
func (p Params) AdjustedFactor(size LoadSize, loadWeightKg float64) float64 {
	base := p.FactorFor(size)

	capacity := p.VehicleSpecs.LoadCapacityKg
	if capacity <= 0 {
		return base
	}

	if loadWeightKg < 0 {
		loadWeightKg = 0
	}
	fraction := loadWeightKg / capacity
	if fraction > 1.0 {
		fraction = 1.0
	}

	return base * (weightEnvelopeFloor + weightEnvelopeSpan*fraction)
}
