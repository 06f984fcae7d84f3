package pricing

import (
	"math"
	"testing"
)

func TestMultiplierForHour(t *testing.T) {
	params := DefaultParams()

	tests := []struct {
		hour int
		want float64
	}{
		{6, 1.3},
		{8, 2.0},
		{9, 1.5},
		{12, 1.0}, // not configured, defaults to neutral
		{19, 2.0},
		{23, 1.0},
		{0, 1.0},
	}

	for _, tt := range tests {
		if got := params.MultiplierForHour(tt.hour); got != tt.want {
			t.Errorf("hour %d: multiplier = %v, want %v", tt.hour, got, tt.want)
		}
	}
}

func TestLiveMultiplier_Clamped(t *testing.T) {
	// 25 km has an optimal duration of 50 minutes at 30 km/h.
	tests := []struct {
		name     string
		duration float64
		distance float64
		want     float64
	}{
		{"free flow", 50, 25, 1.0},
		{"faster than optimal clamps to floor", 30, 25, 1.0},
		{"moderate congestion", 75, 25, 1.5},
		{"heavy congestion clamps to ceiling", 300, 25, 2.5},
		{"zero duration", 0, 25, 1.0},
		{"zero distance", 60, 0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LiveMultiplier(tt.duration, tt.distance)
			if got != tt.want {
				t.Errorf("liveMultiplier(%v, %v) = %v, want %v", tt.duration, tt.distance, got, tt.want)
			}
			if got < MinTrafficMultiplier || got > MaxTrafficMultiplier {
				t.Errorf("multiplier %v outside [%v, %v]", got, MinTrafficMultiplier, MaxTrafficMultiplier)
			}
		})
	}
}

func TestEffectiveMultiplier_TakesWorse(t *testing.T) {
	if got := EffectiveMultiplier(2.0, 1.4); got != 2.0 {
		t.Errorf("expected scheduled 2.0 to win, got %v", got)
	}
	if got := EffectiveMultiplier(1.3, 1.9); got != 1.9 {
		t.Errorf("expected live 1.9 to win, got %v", got)
	}
	if got := EffectiveMultiplier(1.5, 1.5); got != 1.5 {
		t.Errorf("expected 1.5, got %v", got)
	}
}

func TestFactorFor(t *testing.T) {
	params := DefaultParams()

	if got := params.FactorFor(LoadHalf); got != 1.15 {
		t.Errorf("half factor = %v, want 1.15", got)
	}
	if got := params.FactorFor(LoadSemiFull); got != 1.25 {
		t.Errorf("semi-full factor = %v, want 1.25", got)
	}
	if got := params.FactorFor(LoadFull); got != 1.40 {
		t.Errorf("full factor = %v, want 1.40", got)
	}
	if got := params.FactorFor(LoadSize("unknown")); got != 1.0 {
		t.Errorf("unknown size should be neutral, got %v", got)
	}
}

func TestAdjustedFactor_Envelope(t *testing.T) {
	params := DefaultParams()
	base := params.FactorFor(LoadHalf)
	capacity := params.VehicleSpecs.LoadCapacityKg

	// Empty load sits at the floor of the envelope.
	if got := params.AdjustedFactor(LoadHalf, 0); math.Abs(got-0.8*base) > 1e-9 {
		t.Errorf("empty load factor = %v, want %v", got, 0.8*base)
	}

	// Full capacity sits at the ceiling.
	if got := params.AdjustedFactor(LoadHalf, capacity); math.Abs(got-1.2*base) > 1e-9 {
		t.Errorf("full capacity factor = %v, want %v", got, 1.2*base)
	}

	// Overweight clamps to the same ceiling.
	if got := params.AdjustedFactor(LoadHalf, capacity*3); math.Abs(got-1.2*base) > 1e-9 {
		t.Errorf("overweight factor = %v, want %v", got, 1.2*base)
	}

	// Negative weight clamps to the floor.
	if got := params.AdjustedFactor(LoadHalf, -100); math.Abs(got-0.8*base) > 1e-9 {
		t.Errorf("negative weight factor = %v, want %v", got, 0.8*base)
	}
}

func TestAdjustedFactor_MonotonicInWeight(t *testing.T) {
	params := DefaultParams()
	capacity := params.VehicleSpecs.LoadCapacityKg

	prev := -1.0
	for w := 0.0; w <= capacity; w += capacity / 10 {
		got := params.AdjustedFactor(LoadFull, w)
		if got < prev {
			t.Fatalf("adjusted factor decreased from %v to %v at weight %v", prev, got, w)
		}
		prev = got
	}
}

func TestAdjustedFactor_ZeroCapacity(t *testing.T) {
	params := DefaultParams()
	params.VehicleSpecs.LoadCapacityKg = 0

	if got := params.AdjustedFactor(LoadFull, 500); got != params.FactorFor(LoadFull) {
		t.Errorf("zero capacity should leave the nominal factor, got %v", got)
	}
}
