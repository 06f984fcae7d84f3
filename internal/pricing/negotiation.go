package pricing

// ProfitAnalysis is the result of checking a customer offer against the
// break-even price of a quote.
type ProfitAnalysis struct {
	// Difference is the absolute gap between offer and break-even, in naira.
	Difference int64 `json:"difference"`

	// IsProfitable is true when the offer covers cost. An offer exactly at
	// break-even counts as profitable.
	IsProfitable bool `json:"isProfitable"`

	// MarginPercentage is the gap relative to break-even; negative when
	// the offer is below cost.
	MarginPercentage float64 `json:"marginPercentage"`
}

// EvaluateOffer compares an externally negotiated price against the
// break-even price. Pure and stateless; callers re-evaluate on every
// change to the offer. A zero break-even price yields a zero margin
// percentage but still reports profitability from the sign of the gap.
func EvaluateOffer(offerPrice, breakEvenPrice int64) ProfitAnalysis {
	difference := offerPrice - breakEvenPrice

	var margin float64
	if breakEvenPrice != 0 {
		margin = float64(difference) / float64(breakEvenPrice) * 100
	}

	abs := difference
	if abs < 0 {
		abs = -abs
	}

	return ProfitAnalysis{
		Difference:       abs,
		IsProfitable:     difference >= 0,
		MarginPercentage: margin,
	}
}
