package pricing

import (
	"loan-pricing-engine/internal/pricing/ensemble"
	"loan-pricing-engine/internal/riskdata"
)

// Request is one pricing computation's inputs. Transient; constructed
// per call.
type Request struct {
	Field         string                `json:"field"`
	LoanAmount    float64               `json:"loanAmount"`
	ApplyFairness bool                  `json:"applyFairness"`
	FamilyIncome  *float64              `json:"familyIncome,omitempty"`
	Institution   *riskdata.Institution `json:"institution,omitempty"`
}

// Result is the outcome of one pricing computation. Rates are in
// percent, the premium and subsidy in percentage points, money in
// currency units rounded to cents.
type Result struct {
	ID          string `json:"id"`
	Field       string `json:"field"`
	ProgramType string `json:"programType"`

	BaseRate              float64 `json:"baseRate"`
	DefaultProbability    float64 `json:"defaultProbability"`
	InstitutionMultiplier float64 `json:"institutionMultiplier"`
	RiskPremium           float64 `json:"riskPremium"`
	Subsidy               float64 `json:"subsidy"`
	UnadjustedRate        float64 `json:"unadjustedRate"`
	AdjustedRate          float64 `json:"adjustedRate"`

	MedianEarnings float64 `json:"medianEarnings"`
	LoanAmount     float64 `json:"loanAmount"`
	DurationYears  float64 `json:"durationYears"`

	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalPaid      float64 `json:"totalPaid"`
	TotalInterest  float64 `json:"totalInterest"`
	DebtToEarnings float64 `json:"debtToEarningsRatio"`

	// Set only when the ensemble estimator priced the loan.
	Ensemble *ensemble.Estimate `json:"ensemble,omitempty"`
}

// Scenario is one row of a scenario comparison.
type Scenario struct {
	Name    string `json:"scenario"`
	Pricing Result `json:"pricing"`
}

// Scenario names produced by CompareScenarios.
const (
	ScenarioPureRisk   = "Pure Risk-Based"
	ScenarioLowIncome  = "Low-Income (Fairness)"
	ScenarioHighIncome = "High-Income (Fairness)"
	ScenarioFlatRate   = "Current Flat Rate"
)
