package pricing

import (
	"fmt"
	"math"

	apperrors "loan-pricing-engine/internal/common/errors"
)

// FairnessParams controls the progressive income-based subsidy: full
// subsidy at or below LowerIncome, nothing at or above UpperIncome, a
// linear ramp in between. SubsidyScale both scales the subsidy and caps
// it in percentage points.
type FairnessParams struct {
	LowerIncome  float64
	UpperIncome  float64
	SubsidyScale float64
}

// DefaultFairnessParams returns the $30k/$60k thresholds with a 2.0
// percentage-point scale.
func DefaultFairnessParams() FairnessParams {
	return FairnessParams{LowerIncome: 30000, UpperIncome: 60000, SubsidyScale: 2.0}
}

// Validate rejects misordered or non-positive thresholds.
func (f FairnessParams) Validate() error {
	if f.LowerIncome <= 0 || f.UpperIncome <= 0 {
		return apperrors.NewConfigurationError("fairness income thresholds must be positive")
	}
	if f.LowerIncome >= f.UpperIncome {
		return apperrors.NewConfigurationError(fmt.Sprintf(
			"fairness lower threshold %.0f must be below upper threshold %.0f",
			f.LowerIncome, f.UpperIncome,
		))
	}
	if f.SubsidyScale < 0 {
		return apperrors.NewConfigurationError("subsidy scale must be non-negative")
	}
	return nil
}

// IncomeFactor ramps linearly from 1.0 at/below the lower threshold to
// 0.0 at/above the upper threshold.
func (f FairnessParams) IncomeFactor(familyIncome float64) float64 {
	switch {
	case familyIncome <= f.LowerIncome:
		return 1.0
	case familyIncome >= f.UpperIncome:
		return 0.0
	default:
		return (f.UpperIncome - familyIncome) / (f.UpperIncome - f.LowerIncome)
	}
}

// Subsidy is the percentage-point rate reduction: riskier fields receive
// proportionally larger subsidies for low-income borrowers, capped at
// SubsidyScale.
func (f FairnessParams) Subsidy(familyIncome, defaultProb, durationYears float64) float64 {
	subsidy := f.IncomeFactor(familyIncome) * defaultProb * f.SubsidyScale * durationYears
	return math.Min(subsidy, f.SubsidyScale)
}
