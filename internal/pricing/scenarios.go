package pricing

import (
	"sort"

	"github.com/google/uuid"
)

// Reference incomes for the fairness scenarios.
const (
	scenarioLowIncome  = 25000.0
	scenarioHighIncome = 150000.0
	scenarioMidIncome  = 45000.0
)

// CompareScenarios prices one field under four policies: pure
// risk-based, fairness-adjusted at a low and a high income, and the
// current flat base rate. A pure composition of the core operations.
func (e *Engine) CompareScenarios(field string, loanAmount float64) ([]Scenario, error) {
	pureRisk, err := e.PriceLoan(Request{Field: field, LoanAmount: loanAmount})
	if err != nil {
		return nil, err
	}

	low := scenarioLowIncome
	lowIncome, err := e.PriceLoan(Request{
		Field: field, LoanAmount: loanAmount, ApplyFairness: true, FamilyIncome: &low,
	})
	if err != nil {
		return nil, err
	}

	high := scenarioHighIncome
	highIncome, err := e.PriceLoan(Request{
		Field: field, LoanAmount: loanAmount, ApplyFairness: true, FamilyIncome: &high,
	})
	if err != nil {
		return nil, err
	}

	flat, err := e.flatRatePricing(pureRisk, loanAmount)
	if err != nil {
		return nil, err
	}

	return []Scenario{
		{Name: ScenarioPureRisk, Pricing: *pureRisk},
		{Name: ScenarioLowIncome, Pricing: *lowIncome},
		{Name: ScenarioHighIncome, Pricing: *highIncome},
		{Name: ScenarioFlatRate, Pricing: *flat},
	}, nil
}

// flatRatePricing is the uniform-rate baseline: everyone pays the base
// rate regardless of field risk.
func (e *Engine) flatRatePricing(pureRisk *Result, loanAmount float64) (*Result, error) {
	am, err := Amortize(loanAmount, e.params.BaseRate, e.params.DurationYears)
	if err != nil {
		return nil, err
	}

	flat := *pureRisk
	flat.ID = uuid.NewString()
	flat.RiskPremium = 0
	flat.Subsidy = 0
	flat.UnadjustedRate = e.params.BaseRate
	flat.AdjustedRate = e.params.BaseRate
	flat.MonthlyPayment = am.MonthlyPayment
	flat.TotalPaid = am.TotalPaid
	flat.TotalInterest = am.TotalInterest
	flat.DebtToEarnings = roundRatio(am.MonthlyPayment * 12 / pureRisk.MedianEarnings)
	flat.Ensemble = nil
	return &flat, nil
}

// PricingTable prices every field in the table, sorted by adjusted rate
// descending. With fairness on, the subsidy ramp midpoint income is
// assumed for every borrower.
func (e *Engine) PricingTable(loanAmount float64, applyFairness bool) ([]Result, error) {
	fields := e.fields.Fields()
	results := make([]Result, 0, len(fields))

	for _, profile := range fields {
		req := Request{Field: profile.Name, LoanAmount: loanAmount}
		if applyFairness {
			income := scenarioMidIncome
			req.ApplyFairness = true
			req.FamilyIncome = &income
		}

		res, err := e.PriceLoan(req)
		if err != nil {
			return nil, err
		}
		results = append(results, *res)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].AdjustedRate > results[j].AdjustedRate
	})
	return results, nil
}
