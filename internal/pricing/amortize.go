package pricing

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	apperrors "loan-pricing-engine/internal/common/errors"
)

// Amortization is a fixed-rate repayment schedule summary. Money amounts
// are rounded to cents.
type Amortization struct {
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalPaid      float64 `json:"totalPaid"`
	TotalInterest  float64 `json:"totalInterest"`
	Months         int     `json:"months"`
}

// Amortize computes the standard fixed-rate schedule for a loan.
func Amortize(principal, annualRatePercent, termYears float64) (Amortization, error) {
	if principal <= 0 {
		return Amortization{}, apperrors.NewInvalidInputError(fmt.Sprintf("principal %.2f must be positive", principal))
	}
	if termYears <= 0 {
		return Amortization{}, apperrors.NewInvalidInputError(fmt.Sprintf("term %.2f must be positive", termYears))
	}
	if annualRatePercent < 0 {
		return Amortization{}, apperrors.NewInvalidInputError(fmt.Sprintf("annual rate %.4f must be non-negative", annualRatePercent))
	}

	months := int(termYears * 12)
	if months < 1 {
		months = 1
	}

	monthlyRate := annualRatePercent / 100 / 12

	var monthlyPayment float64
	if monthlyRate == 0 {
		// Zero-rate loans repay principal in equal installments.
		monthlyPayment = principal / float64(months)
	} else {
		monthlyPayment = principal * monthlyRate / (1 - math.Pow(1+monthlyRate, -float64(months)))
	}

	totalPaid := monthlyPayment * float64(months)

	return Amortization{
		MonthlyPayment: roundCents(monthlyPayment),
		TotalPaid:      roundCents(totalPaid),
		TotalInterest:  roundCents(totalPaid - principal),
		Months:         months,
	}, nil
}

func roundCents(v float64) float64 {
	out, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return out
}
