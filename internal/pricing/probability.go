package pricing

import (
	"fmt"
	"math"

	apperrors "loan-pricing-engine/internal/common/errors"
)

// Calibrated linear relationship between underemployment and default:
// a 5% baseline plus an underemployment premium, bounded to [5%, 20%].
const (
	simpleBaselineProb = 0.05
	underempSlope      = 0.15
	simpleProbFloor    = 0.05
	simpleProbCap      = 0.20

	// Graduate borrowers carry a lower baseline.
	gradBaselineProb = 0.03
)

// SimpleDefaultProbability estimates the default probability of a field
// from its underemployment rate.
func SimpleDefaultProbability(underemploymentRate float64) (float64, error) {
	if underemploymentRate < 0 || underemploymentRate > 1 {
		return 0, apperrors.NewInvalidInputError(fmt.Sprintf("underemployment rate %.4f outside [0,1]", underemploymentRate))
	}
	prob := underempSlope*underemploymentRate + simpleBaselineProb
	return clamp(prob, simpleProbFloor, simpleProbCap), nil
}

// GraduateDefaultProbability is the graduate-program variant with a 3%
// baseline.
func GraduateDefaultProbability(underemploymentRate float64) (float64, error) {
	if underemploymentRate < 0 || underemploymentRate > 1 {
		return 0, apperrors.NewInvalidInputError(fmt.Sprintf("underemployment rate %.4f outside [0,1]", underemploymentRate))
	}
	prob := underempSlope*underemploymentRate + gradBaselineProb
	return math.Min(prob, simpleProbCap), nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
