package ensemble

import "math"

// Actuarial cohort approach: an empirical yearly default curve (defaults
// peak in years 2-3 of repayment, then decline) scaled by field
// characteristics, with survivor weighting so borrowers can only default
// once.
var baseDefaultCurve = [...]float64{
	0.015, // year 1
	0.035, // year 2 (peak)
	0.030,
	0.020,
	0.015,
	0.010,
	0.008,
	0.006,
	0.005,
	0.004, // year 10
}

const (
	actuarialProbCap    = 0.30
	lossReserveDiscount = 0.03
)

func actuarialDefaultProbability(in Inputs) (float64, float64) {
	multiplier := underemploymentMultiplier(in.UnderemploymentRate)

	// Debt-to-income effect on the whole curve.
	dti := in.DebtAmount / in.MedianEarnings
	earningsAdj := 1.0
	switch {
	case dti > 1.0:
		earningsAdj = 1.5
	case dti > 0.75:
		earningsAdj = 1.2
	}
	totalMultiplier := multiplier * earningsAdj

	years := int(in.DurationYears)
	if years < 1 {
		years = 1
	}

	cumulativeSurvival := 1.0
	cumulativeDefault := 0.0
	lossReservePV := 0.0
	for year := 1; year <= years; year++ {
		idx := year
		if idx > len(baseDefaultCurve) {
			idx = len(baseDefaultCurve)
		}
		yearProb := baseDefaultCurve[idx-1] * totalMultiplier

		// Only survivors can default.
		actual := yearProb * cumulativeSurvival
		cumulativeSurvival -= actual
		cumulativeDefault += actual

		lossReservePV += actual / math.Pow(1+lossReserveDiscount, float64(year))
	}

	return math.Min(cumulativeDefault, actuarialProbCap), lossReservePV
}

func underemploymentMultiplier(u float64) float64 {
	switch {
	case u > 0.25:
		return 2.5
	case u > 0.15:
		return 1.8
	case u > 0.10:
		return 1.3
	case u > 0.05:
		return 1.0
	default:
		return 0.7
	}
}
