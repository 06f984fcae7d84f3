package geo

// Distance constants for the estimate fallback, in kilometers.
const (
	// IntraLGADistanceKm is the fixed distance for a hop within one LGA.
	IntraLGADistanceKm = 5
	// SameZoneEstimateKm is the estimate for two LGAs in the same zone.
	SameZoneEstimateKm = 15
	// CrossZoneEstimateKm is the estimate between mainland and island.
	CrossZoneEstimateKm = 25
	// OutskirtEstimateKm is the estimate when either end is an outskirt LGA.
	OutskirtEstimateKm = 40
)

// distanceMatrix holds measured road distances between the busiest
// pickup/dropoff areas, in kilometers. Pairs are stored one-way; the
// resolver checks the reverse direction before estimating.
var distanceMatrix = map[string]map[string]float64{
	"Ikeja": {
		"Victoria Island": 22,
		"Lekki":           28,
		"Surulere":        18,
		"Apapa":           15,
		"Ikorodu":         35,
		"Badagry":         45,
	},
	"Victoria Island": {
		"Ikeja":    22,
		"Lekki":    12,
		"Surulere": 25,
		"Apapa":    18,
		"Ikorodu":  40,
	},
	"Lekki": {
		"Ikeja":           28,
		"Victoria Island": 12,
		"Surulere":        30,
		"Ikorodu":         25,
	},
	"Surulere": {
		"Ikeja":           18,
		"Victoria Island": 25,
		"Lekki":           30,
		"Apapa":           12,
	},
	"Apapa": {
		"Ikeja":           15,
		"Victoria Island": 18,
		"Surulere":        12,
		"Ikorodu":         45,
	},
	"Ikorodu": {
		"Ikeja":           35,
		"Victoria Island": 40,
		"Lekki":           25,
		"Apapa":           45,
	},
}

// Resolver resolves road distances between named locations using a static
// table with a zone-based estimate fallback. It never fails: every pair of
// names resolves to a finite non-negative distance.
type Resolver struct {
	matrix map[string]map[string]float64
}

// NewResolver creates a resolver backed by the built-in distance matrix.
func NewResolver() *Resolver {
	return &Resolver{matrix: distanceMatrix}
}

// Resolve returns the distance in kilometers between two locations.
// Lookup order: direct table entry, reverse table entry (distances are
// treated as symmetric), fixed intra-LGA distance when both names match,
// then a zone-based estimate.
func (r *Resolver) Resolve(from, to string) float64 {
	if d, ok := r.matrix[from][to]; ok {
		return d
	}
	if d, ok := r.matrix[to][from]; ok {
		return d
	}
	if from == to {
		return IntraLGADistanceKm
	}
	return r.estimate(from, to)
}

// estimate approximates the distance from the zone classification of the
// two endpoints. Unknown names are treated as a mainland/island crossing.
func (r *Resolver) estimate(from, to string) float64 {
	a, okA := Lookup(from)
	b, okB := Lookup(to)
	if !okA || !okB {
		return CrossZoneEstimateKm
	}
	if a.Zone == ZoneOutskirt || b.Zone == ZoneOutskirt {
		return OutskirtEstimateKm
	}
	if a.Zone == b.Zone {
		return SameZoneEstimateKm
	}
	return CrossZoneEstimateKm
}

// TotalDistance sums the pairwise distances over consecutive locations in
// the given order. Fewer than two locations yields zero. No reordering or
// optimization is performed here.
func (r *Resolver) TotalDistance(locations []string) float64 {
	if len(locations) < 2 {
		return 0
	}

	var total float64
	for i := 0; i < len(locations)-1; i++ {
		total += r.Resolve(locations[i], locations[i+1])
	}
	return total
}
