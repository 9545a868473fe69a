// Package ensemble blends four default-probability models into a single
// estimate: a constant-hazard survival curve, a Merton-style structural
// model, a deterministic rule score, and an actuarial cohort table.
package ensemble

import (
	"fmt"
	"math"

	apperrors "loan-pricing-engine/internal/common/errors"
)

// Weights are the fixed blend weights for the four sub-models. They must
// sum to 1.0; they are never silently normalized.
type Weights struct {
	Survival   float64 `json:"survival"`
	Structural float64 `json:"structural"`
	Rule       float64 `json:"rule"`
	Actuarial  float64 `json:"actuarial"`
}

// DefaultWeights returns the calibrated blend.
func DefaultWeights() Weights {
	return Weights{Survival: 0.30, Structural: 0.25, Rule: 0.30, Actuarial: 0.15}
}

const weightSumTolerance = 1e-6

// Validate rejects negative weights and weight sets that do not sum to
// 1.0 within tolerance.
func (w Weights) Validate() error {
	if w.Survival < 0 || w.Structural < 0 || w.Rule < 0 || w.Actuarial < 0 {
		return apperrors.NewConfigurationError("ensemble weights must be non-negative")
	}
	sum := w.Survival + w.Structural + w.Rule + w.Actuarial
	if math.Abs(sum-1.0) > weightSumTolerance {
		return apperrors.NewConfigurationError(fmt.Sprintf("ensemble weights sum to %.6f, expected 1.0", sum))
	}
	return nil
}

// Inputs carries everything the sub-models read. DebtAmount is the
// assumed principal for the structural and actuarial models.
type Inputs struct {
	UnderemploymentRate float64
	MedianEarnings      float64
	EarningsPercentile  float64
	NumInstitutions     int
	BaseRate            float64
	DurationYears       float64
	DebtAmount          float64
}

func (in Inputs) validate() error {
	if in.UnderemploymentRate < 0 || in.UnderemploymentRate > 1 {
		return apperrors.NewInvalidInputError(fmt.Sprintf("underemployment rate %.4f outside [0,1]", in.UnderemploymentRate))
	}
	if in.MedianEarnings <= 0 {
		return apperrors.NewInvalidInputError("median earnings must be positive")
	}
	if in.DurationYears <= 0 {
		return apperrors.NewInvalidInputError("duration must be positive")
	}
	if in.DebtAmount <= 0 {
		return apperrors.NewInvalidInputError("debt amount must be positive")
	}
	return nil
}

// ModelEstimates holds the four sub-model probabilities.
type ModelEstimates struct {
	Survival   float64 `json:"survival"`
	Structural float64 `json:"structural"`
	Rule       float64 `json:"rule"`
	Actuarial  float64 `json:"actuarial"`
}

// Estimate is the blended probability plus disagreement diagnostics. The
// diagnostics are observability only and never feed the rate.
type Estimate struct {
	Probability       float64        `json:"probability"`
	Models            ModelEstimates `json:"models"`
	Agreement         float64        `json:"agreement"`
	Spread            float64        `json:"spread"`
	StdDev            float64        `json:"stdDev"`
	Interval95        [2]float64     `json:"interval95"`
	DistanceToDefault float64        `json:"distanceToDefault"`
	LossReservePV     float64        `json:"lossReservePV"`
}

// Blend runs all four sub-models and combines them with the given
// weights.
func Blend(in Inputs, w Weights) (*Estimate, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	survival := survivalDefaultProbability(in)
	structural, d2 := structuralDefaultProbability(in)
	rule := ruleDefaultProbability(in)
	actuarial, lossReservePV := actuarialDefaultProbability(in)

	probability := w.Survival*survival +
		w.Structural*structural +
		w.Rule*rule +
		w.Actuarial*actuarial

	probs := [4]float64{survival, structural, rule, actuarial}
	mean, stdDev := meanStdDev(probs)
	minProb, maxProb := probs[0], probs[0]
	for _, p := range probs[1:] {
		minProb = math.Min(minProb, p)
		maxProb = math.Max(maxProb, p)
	}

	// Agreement is 1 - coefficient of variation, clamped to [0,1].
	agreement := 0.0
	if mean > 0 {
		agreement = clamp(1-stdDev/mean, 0, 1)
	}

	return &Estimate{
		Probability: probability,
		Models: ModelEstimates{
			Survival:   survival,
			Structural: structural,
			Rule:       rule,
			Actuarial:  actuarial,
		},
		Agreement:         agreement,
		Spread:            maxProb - minProb,
		StdDev:            stdDev,
		Interval95:        [2]float64{probability - 1.96*stdDev, probability + 1.96*stdDev},
		DistanceToDefault: d2,
		LossReservePV:     lossReservePV,
	}, nil
}

func meanStdDev(probs [4]float64) (float64, float64) {
	mean := 0.0
	for _, p := range probs {
		mean += p
	}
	mean /= float64(len(probs))

	variance := 0.0
	for _, p := range probs {
		variance += (p - mean) * (p - mean)
	}
	variance /= float64(len(probs))

	return mean, math.Sqrt(variance)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
