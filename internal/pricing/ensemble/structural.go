package ensemble

import "math"

// Merton-style structural model: default is the borrower's option to walk
// away when accumulated debt exceeds earnings capacity. Projected asset
// value (earnings over the term) is compared against the debt grown at
// the base rate, and the distance to default maps to a probability via
// the standard normal CDF.
const (
	baseEarningsVolatility = 0.15
	volatilityPerUnderemp  = 0.50

	structuralProbFloor = 0.01
	structuralProbCap   = 0.30
)

func structuralDefaultProbability(in Inputs) (float64, float64) {
	t := in.DurationYears
	assetValue := in.MedianEarnings * t
	debtThreshold := in.DebtAmount * math.Pow(1+in.BaseRate/100, t)

	// Underemployment proxies earnings volatility (15-65% range).
	sigma := baseEarningsVolatility + volatilityPerUnderemp*in.UnderemploymentRate

	d2 := (math.Log(assetValue/debtThreshold) - 0.5*sigma*sigma*t) / (sigma * math.Sqrt(t))

	prob := clamp(normCDF(-d2), structuralProbFloor, structuralProbCap)
	return prob, d2
}

// normCDF is the standard normal cumulative distribution function.
func normCDF(x float64) float64 {
	return 0.5 * math.Erfc(-x/math.Sqrt2)
}
