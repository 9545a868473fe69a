// Package pricing implements the risk-adjusted loan pricing pipeline:
// risk lookup, default probability estimation, premium calculation,
// institution and fairness adjustments, and amortization. Every
// computation is a pure function of the request, the engine parameters,
// and the immutable risk tables.
package pricing

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	apperrors "loan-pricing-engine/internal/common/errors"
	"loan-pricing-engine/internal/pricing/ensemble"
	"loan-pricing-engine/internal/riskdata"
)

// Bounds on the institution-adjusted default probability.
const (
	adjustedProbFloor = 0.01
	adjustedProbCap   = 0.30
)

// Engine prices loans against the loaded risk tables. Safe for
// concurrent use; it holds no mutable state.
type Engine struct {
	params Params
	fields *riskdata.FieldTable
	grads  *riskdata.GraduateTable
	inst   *riskdata.InstitutionAdjustments
}

// Option configures optional engine tables.
type Option func(*Engine)

// WithGraduatePrograms enables graduate-program pricing.
func WithGraduatePrograms(t *riskdata.GraduateTable) Option {
	return func(e *Engine) { e.grads = t }
}

// WithInstitutionAdjustments enables institution-quality multipliers.
func WithInstitutionAdjustments(a *riskdata.InstitutionAdjustments) Option {
	return func(e *Engine) { e.inst = a }
}

// New validates params and builds an engine over the field table.
func New(params Params, fields *riskdata.FieldTable, opts ...Option) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if fields == nil || fields.Len() == 0 {
		return nil, apperrors.NewConfigurationError("field risk table is required")
	}
	e := &Engine{params: params, fields: fields}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Params returns the engine's parameter set.
func (e *Engine) Params() Params {
	return e.params
}

// EstimateDefaultProbability resolves a field and runs the configured
// estimator.
func (e *Engine) EstimateDefaultProbability(field string) (float64, error) {
	profile, err := e.fields.Lookup(field)
	if err != nil {
		return 0, err
	}
	prob, _, err := e.estimate(profile)
	return prob, err
}

// EstimateEnsemble runs the four-model blend for a field regardless of
// the configured model, returning the full diagnostics.
func (e *Engine) EstimateEnsemble(field string) (*ensemble.Estimate, error) {
	profile, err := e.fields.Lookup(field)
	if err != nil {
		return nil, err
	}
	return ensemble.Blend(e.ensembleInputs(profile), e.params.Weights)
}

// PriceLoan computes the risk-adjusted rate and repayment schedule for
// one request.
func (e *Engine) PriceLoan(req Request) (*Result, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	profile, err := e.fields.Lookup(req.Field)
	if err != nil {
		return nil, err
	}

	prob, diag, err := e.estimate(profile)
	if err != nil {
		return nil, err
	}

	multiplier := 1.0
	if req.Institution != nil {
		factors := e.inst.Multiplier(req.Institution)
		multiplier = factors.Combined
		prob = clamp(prob*multiplier, adjustedProbFloor, adjustedProbCap)
	}

	familyIncome := 0.0
	if req.FamilyIncome != nil {
		familyIncome = *req.FamilyIncome
	}

	return e.assemble(resultInputs{
		field:         profile.Name,
		programType:   "Undergraduate",
		baseRate:      e.params.BaseRate,
		prob:          prob,
		multiplier:    multiplier,
		lgd:           e.params.LossGivenDefault,
		duration:      e.params.DurationYears,
		loanAmount:    req.LoanAmount,
		earnings:      profile.MedianEarnings,
		applyFairness: req.ApplyFairness,
		familyIncome:  familyIncome,
		diag:          diag,
	})
}

// PriceGraduateLoan prices a graduate program using the program's own
// duration and median debt as principal.
func (e *Engine) PriceGraduateLoan(program string, applyFairness bool, familyIncome float64) (*Result, error) {
	if e.grads == nil {
		return nil, apperrors.NewConfigurationError("graduate program table not loaded")
	}
	if applyFairness && familyIncome < 0 {
		return nil, apperrors.NewInvalidInputError("family income must be non-negative")
	}

	prog, err := e.grads.Lookup(program)
	if err != nil {
		return nil, err
	}

	prob, err := GraduateDefaultProbability(prog.UnderemploymentRate)
	if err != nil {
		return nil, err
	}

	return e.assemble(resultInputs{
		field:         prog.Program,
		programType:   "Graduate",
		baseRate:      e.params.GradBaseRate,
		prob:          prob,
		multiplier:    1.0,
		lgd:           e.params.GradLossGivenDefault,
		duration:      prog.TypicalDurationYears,
		loanAmount:    prog.MedianDebt,
		earnings:      prog.MedianEarnings,
		applyFairness: applyFairness,
		familyIncome:  familyIncome,
	})
}

type resultInputs struct {
	field         string
	programType   string
	baseRate      float64
	prob          float64
	multiplier    float64
	lgd           float64
	duration      float64
	loanAmount    float64
	earnings      float64
	applyFairness bool
	familyIncome  float64
	diag          *ensemble.Estimate
}

func (e *Engine) assemble(in resultInputs) (*Result, error) {
	premium, err := DiscountedRiskPremium(in.prob, in.lgd, in.duration, e.params.DiscountRate)
	if err != nil {
		return nil, err
	}
	if e.params.CapPremium > 0 {
		premium = math.Min(premium, e.params.CapPremium)
	}

	unadjusted := in.baseRate + premium

	subsidy := 0.0
	if in.applyFairness {
		subsidy = e.params.Fairness.Subsidy(in.familyIncome, in.prob, in.duration)
	}

	// The subsidy must never drive the rate below the floor.
	adjusted := math.Max(e.params.FloorRate, unadjusted-subsidy)

	am, err := Amortize(in.loanAmount, adjusted, in.duration)
	if err != nil {
		return nil, err
	}

	return &Result{
		ID:                    uuid.NewString(),
		Field:                 in.field,
		ProgramType:           in.programType,
		BaseRate:              in.baseRate,
		DefaultProbability:    in.prob,
		InstitutionMultiplier: in.multiplier,
		RiskPremium:           premium,
		Subsidy:               subsidy,
		UnadjustedRate:        unadjusted,
		AdjustedRate:          adjusted,
		MedianEarnings:        in.earnings,
		LoanAmount:            in.loanAmount,
		DurationYears:         in.duration,
		MonthlyPayment:        am.MonthlyPayment,
		TotalPaid:             am.TotalPaid,
		TotalInterest:         am.TotalInterest,
		DebtToEarnings:        roundRatio(am.MonthlyPayment * 12 / in.earnings),
		Ensemble:              in.diag,
	}, nil
}

func (e *Engine) estimate(profile riskdata.FieldRiskProfile) (float64, *ensemble.Estimate, error) {
	if e.params.Model == ModelEnsemble {
		est, err := ensemble.Blend(e.ensembleInputs(profile), e.params.Weights)
		if err != nil {
			return 0, nil, err
		}
		return est.Probability, est, nil
	}
	prob, err := SimpleDefaultProbability(profile.UnderemploymentRate)
	return prob, nil, err
}

func (e *Engine) ensembleInputs(profile riskdata.FieldRiskProfile) ensemble.Inputs {
	return ensemble.Inputs{
		UnderemploymentRate: profile.UnderemploymentRate,
		MedianEarnings:      profile.MedianEarnings,
		EarningsPercentile:  profile.EarningsPercentile,
		NumInstitutions:     profile.NumInstitutions,
		BaseRate:            e.params.BaseRate,
		DurationYears:       e.params.DurationYears,
		DebtAmount:          e.params.StructuralDebt,
	}
}

func validateRequest(req Request) error {
	if req.Field == "" {
		return apperrors.NewInvalidInputError("field name is required")
	}
	if req.LoanAmount <= 0 {
		return apperrors.NewInvalidInputError(fmt.Sprintf("loan amount %.2f must be positive", req.LoanAmount))
	}
	if req.ApplyFairness {
		if req.FamilyIncome == nil {
			return apperrors.NewInvalidInputError("family income is required when fairness is applied")
		}
		if *req.FamilyIncome < 0 {
			return apperrors.NewInvalidInputError("family income must be non-negative")
		}
	}
	if req.Institution != nil && req.Institution.AdmissionRate != nil {
		if r := *req.Institution.AdmissionRate; r < 0 || r > 1 {
			return apperrors.NewInvalidInputError(fmt.Sprintf("admission rate %.4f outside [0,1]", r))
		}
	}
	return nil
}

func roundRatio(v float64) float64 {
	out, _ := decimal.NewFromFloat(v).Round(3).Float64()
	return out
}
