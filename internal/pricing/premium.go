package pricing

import (
	"fmt"
	"math"

	apperrors "loan-pricing-engine/internal/common/errors"
)

// RiskPremium converts a default probability into an annualized
// percentage-point premium over the base rate:
//
//	premium = (defaultProb * lossGivenDefault / durationYears) * 100
func RiskPremium(defaultProb, lossGivenDefault, durationYears float64) (float64, error) {
	return DiscountedRiskPremium(defaultProb, lossGivenDefault, durationYears, 0)
}

// DiscountedRiskPremium is RiskPremium with expected loss discounted by
// the annuity factor at discountRate before annualizing. A zero rate
// reduces to the plain formula.
func DiscountedRiskPremium(defaultProb, lossGivenDefault, durationYears, discountRate float64) (float64, error) {
	if durationYears <= 0 {
		return 0, apperrors.NewInvalidInputError(fmt.Sprintf("duration %.2f must be positive", durationYears))
	}
	if defaultProb < 0 || defaultProb > 1 {
		return 0, apperrors.NewInvalidInputError(fmt.Sprintf("default probability %.4f outside [0,1]", defaultProb))
	}
	if lossGivenDefault < 0 || lossGivenDefault > 1 {
		return 0, apperrors.NewInvalidInputError(fmt.Sprintf("loss given default %.4f outside [0,1]", lossGivenDefault))
	}
	if discountRate < 0 {
		return 0, apperrors.NewInvalidInputError("discount rate must be non-negative")
	}

	expectedLoss := defaultProb * lossGivenDefault

	if discountRate > 0 {
		annuity := 0.0
		for t := 1; t <= int(durationYears); t++ {
			annuity += 1 / math.Pow(1+discountRate, float64(t))
		}
		if annuity > 0 {
			expectedLoss /= annuity
		}
	}

	return (expectedLoss / durationYears) * 100, nil
}
