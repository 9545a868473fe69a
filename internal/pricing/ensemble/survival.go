package ensemble

import "math"

// Constant-hazard survival curve. The baseline hazard is calibrated to
// the national 3-year cohort default rate of roughly 10%; underemployment
// raises the hazard, earnings lower it.
const (
	baselineHazard      = 0.012
	betaUnderemployment = 2.5
	betaEarnings        = -0.0003

	survivalProbCap = 0.25
)

func survivalDefaultProbability(in Inputs) float64 {
	logHazardRatio := betaUnderemployment*in.UnderemploymentRate + betaEarnings*in.MedianEarnings
	hazard := baselineHazard * math.Exp(logHazardRatio)

	years := int(in.DurationYears)
	if years < 1 {
		years = 1
	}

	// Cumulative default over the term: 1 - S(T) with S(t) = exp(-h*t).
	cumulative := 1 - math.Exp(-hazard*float64(years))

	return math.Min(cumulative, survivalProbCap)
}
