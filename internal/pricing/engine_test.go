package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "loan-pricing-engine/internal/common/errors"
	"loan-pricing-engine/internal/riskdata"
)

func testFieldTable(t *testing.T) *riskdata.FieldTable {
	t.Helper()
	table, err := riskdata.NewFieldTable([]riskdata.FieldRiskProfile{
		{Name: "Philosophy/Religion", MedianEarnings: 28500, UnderemploymentRate: 0.30, NumInstitutions: 287},
		{Name: "Engineering", MedianEarnings: 52900, UnderemploymentRate: 0.013, NumInstitutions: 412},
		{Name: "Psychology", MedianEarnings: 32400, UnderemploymentRate: 0.24, NumInstitutions: 612},
	})
	require.NoError(t, err)
	return table
}

func testGraduateTable(t *testing.T) *riskdata.GraduateTable {
	t.Helper()
	table, err := riskdata.NewGraduateTable([]riskdata.GraduateProgram{
		{Program: "Law (JD)", MedianEarnings: 72500, MedianDebt: 118500, UnderemploymentRate: 0.14, TypicalDurationYears: 10},
	})
	require.NoError(t, err)
	return table
}

func testEngine(t *testing.T, params Params, opts ...Option) *Engine {
	t.Helper()
	e, err := New(params, testFieldTable(t), opts...)
	require.NoError(t, err)
	return e
}

func TestPriceLoanPureRisk(t *testing.T) {
	e := testEngine(t, DefaultParams())

	tests := []struct {
		field    string
		prob     float64
		premium  float64
		rate     float64
		earnings float64
	}{
		{"Philosophy/Religion", 0.095, 0.665, 6.165, 28500},
		{"Engineering", 0.05195, 0.36365, 5.86365, 52900},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			res, err := e.PriceLoan(Request{Field: tt.field, LoanAmount: 30000})
			require.NoError(t, err)

			assert.InDelta(t, tt.prob, res.DefaultProbability, 1e-9)
			assert.InDelta(t, tt.premium, res.RiskPremium, 1e-9)
			assert.InDelta(t, tt.rate, res.AdjustedRate, 1e-9)
			assert.Equal(t, res.UnadjustedRate, res.AdjustedRate)
			assert.Equal(t, 0.0, res.Subsidy)
			assert.Equal(t, 1.0, res.InstitutionMultiplier)
			assert.Equal(t, tt.earnings, res.MedianEarnings)
			assert.Equal(t, "Undergraduate", res.ProgramType)
			assert.NotEmpty(t, res.ID)
			assert.Nil(t, res.Ensemble)
			assert.Greater(t, res.MonthlyPayment, 0.0)
			assert.InDelta(t, res.MonthlyPayment*12/tt.earnings, res.DebtToEarnings, 0.001)
		})
	}
}

func TestPriceLoanLowIncomeSubsidy(t *testing.T) {
	e := testEngine(t, DefaultParams())

	income := 25000.0
	res, err := e.PriceLoan(Request{
		Field: "Philosophy/Religion", LoanAmount: 30000,
		ApplyFairness: true, FamilyIncome: &income,
	})
	require.NoError(t, err)

	assert.InDelta(t, 1.9, res.Subsidy, 1e-9)
	assert.InDelta(t, 4.265, res.AdjustedRate, 1e-9)
	assert.InDelta(t, 6.165, res.UnadjustedRate, 1e-9)
}

func TestPriceLoanHighIncomeUnchanged(t *testing.T) {
	e := testEngine(t, DefaultParams())

	income := 150000.0
	res, err := e.PriceLoan(Request{
		Field: "Philosophy/Religion", LoanAmount: 30000,
		ApplyFairness: true, FamilyIncome: &income,
	})
	require.NoError(t, err)

	assert.Equal(t, 0.0, res.Subsidy)
	assert.InDelta(t, 6.165, res.AdjustedRate, 1e-9)
}

func TestPriceLoanFloorRate(t *testing.T) {
	params := DefaultParams()
	params.FloorRate = 5.0
	params.Fairness.SubsidyScale = 5.0
	e := testEngine(t, params)

	income := 20000.0
	res, err := e.PriceLoan(Request{
		Field: "Philosophy/Religion", LoanAmount: 30000,
		ApplyFairness: true, FamilyIncome: &income,
	})
	require.NoError(t, err)

	// Subsidy of 4.75 points would push the rate to 1.415.
	assert.Equal(t, 5.0, res.AdjustedRate)
}

func TestPriceLoanPremiumCap(t *testing.T) {
	params := DefaultParams()
	params.CapPremium = 0.5
	e := testEngine(t, params)

	res, err := e.PriceLoan(Request{Field: "Philosophy/Religion", LoanAmount: 30000})
	require.NoError(t, err)

	assert.Equal(t, 0.5, res.RiskPremium)
	assert.InDelta(t, 6.0, res.AdjustedRate, 1e-9)
}

func TestPriceLoanInstitutionMultiplier(t *testing.T) {
	adj := &riskdata.InstitutionAdjustments{
		Carnegie: map[string]riskdata.Multiplier{
			"R1": {RiskMultiplier: 0.75},
		},
		SelectivityTiers: map[string]riskdata.SelectivityTier{
			"most_selective": {AdmissionRateMax: 0.10, RiskMultiplier: 0.60},
		},
		ControlType: map[string]riskdata.Multiplier{
			"public": {RiskMultiplier: 0.95},
		},
	}
	e := testEngine(t, DefaultParams(), WithInstitutionAdjustments(adj))

	rate := 0.05
	res, err := e.PriceLoan(Request{
		Field: "Philosophy/Religion", LoanAmount: 30000,
		Institution: &riskdata.Institution{Carnegie: "R1", AdmissionRate: &rate, ControlType: "public"},
	})
	require.NoError(t, err)

	// 0.75 * 0.60 * 0.95 = 0.4275
	assert.InDelta(t, 0.4275, res.InstitutionMultiplier, 1e-9)
	assert.InDelta(t, 0.095*0.4275, res.DefaultProbability, 1e-9)
	assert.Less(t, res.AdjustedRate, 6.165)
}

func TestPriceLoanUnknownInstitutionIsNeutral(t *testing.T) {
	e := testEngine(t, DefaultParams())

	res, err := e.PriceLoan(Request{
		Field: "Philosophy/Religion", LoanAmount: 30000,
		Institution: &riskdata.Institution{Carnegie: "Unheard Of"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1.0, res.InstitutionMultiplier)
	assert.InDelta(t, 0.095, res.DefaultProbability, 1e-9)
}

func TestPriceLoanValidation(t *testing.T) {
	e := testEngine(t, DefaultParams())
	badRate := 1.5
	income := -100.0

	tests := []struct {
		name string
		req  Request
		code apperrors.ErrorCode
	}{
		{"unknown field", Request{Field: "Underwater Basket Weaving", LoanAmount: 30000}, apperrors.ErrCodeUnknownField},
		{"empty field", Request{LoanAmount: 30000}, apperrors.ErrCodeInvalidInput},
		{"zero loan", Request{Field: "Engineering"}, apperrors.ErrCodeInvalidInput},
		{"fairness without income", Request{Field: "Engineering", LoanAmount: 30000, ApplyFairness: true}, apperrors.ErrCodeInvalidInput},
		{"negative income", Request{Field: "Engineering", LoanAmount: 30000, ApplyFairness: true, FamilyIncome: &income}, apperrors.ErrCodeInvalidInput},
		{"admission rate above one", Request{Field: "Engineering", LoanAmount: 30000, Institution: &riskdata.Institution{AdmissionRate: &badRate}}, apperrors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.PriceLoan(tt.req)
			require.Error(t, err)
			assert.True(t, apperrors.IsCode(err, tt.code), "got %v", err)
		})
	}
}

func TestPriceGraduateLoan(t *testing.T) {
	e := testEngine(t, DefaultParams(), WithGraduatePrograms(testGraduateTable(t)))

	res, err := e.PriceGraduateLoan("Law (JD)", false, 0)
	require.NoError(t, err)

	// p = 0.15*0.14 + 0.03 = 0.051; premium = 0.051*0.65/10*100 = 0.3315
	assert.Equal(t, "Graduate", res.ProgramType)
	assert.InDelta(t, 0.051, res.DefaultProbability, 1e-9)
	assert.InDelta(t, 0.3315, res.RiskPremium, 1e-9)
	assert.InDelta(t, 6.8715, res.AdjustedRate, 1e-9)
	assert.Equal(t, 118500.0, res.LoanAmount)
	assert.Equal(t, 10.0, res.DurationYears)
}

func TestPriceGraduateLoanErrors(t *testing.T) {
	noGrads := testEngine(t, DefaultParams())
	_, err := noGrads.PriceGraduateLoan("Law (JD)", false, 0)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeConfigurationError))

	e := testEngine(t, DefaultParams(), WithGraduatePrograms(testGraduateTable(t)))
	_, err = e.PriceGraduateLoan("Basketry (MFA)", false, 0)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeUnknownProgram))

	_, err = e.PriceGraduateLoan("Law (JD)", true, -1)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidInput))
}

func TestEnsembleModelPricing(t *testing.T) {
	params := DefaultParams()
	params.Model = ModelEnsemble
	e := testEngine(t, params)

	res, err := e.PriceLoan(Request{Field: "Philosophy/Religion", LoanAmount: 30000})
	require.NoError(t, err)

	require.NotNil(t, res.Ensemble)
	est := res.Ensemble
	assert.Equal(t, res.DefaultProbability, est.Probability)
	assert.Greater(t, est.Probability, 0.0)
	assert.LessOrEqual(t, est.Probability, 0.30)
	assert.GreaterOrEqual(t, est.Agreement, 0.0)
	assert.LessOrEqual(t, est.Agreement, 1.0)
	assert.GreaterOrEqual(t, est.Spread, 0.0)
}

func TestEngineConstruction(t *testing.T) {
	_, err := New(DefaultParams(), nil)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeConfigurationError))

	bad := DefaultParams()
	bad.Model = "neural"
	_, err = New(bad, testFieldTable(t))
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeConfigurationError))
}

func TestEstimateDefaultProbability(t *testing.T) {
	e := testEngine(t, DefaultParams())

	prob, err := e.EstimateDefaultProbability("Engineering")
	require.NoError(t, err)
	assert.InDelta(t, 0.05195, prob, 1e-9)

	_, err = e.EstimateDefaultProbability("Alchemy")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeUnknownField))
}

func TestEstimateEnsembleAlwaysAvailable(t *testing.T) {
	// The diagnostic blend works even when the configured model is simple.
	e := testEngine(t, DefaultParams())

	est, err := e.EstimateEnsemble("Psychology")
	require.NoError(t, err)
	assert.Greater(t, est.Probability, 0.0)
	assert.NotZero(t, est.Models.Survival)
	assert.NotZero(t, est.Models.Structural)
	assert.NotZero(t, est.Models.Rule)
	assert.NotZero(t, est.Models.Actuarial)
}
