package pricing

import (
	"fmt"

	"loan-pricing-engine/internal/common/config"
	apperrors "loan-pricing-engine/internal/common/errors"
	"loan-pricing-engine/internal/pricing/ensemble"
)

// Model selects the default-probability estimator.
type Model string

const (
	ModelSimple   Model = "simple"
	ModelEnsemble Model = "ensemble"
)

// Params holds every tunable of the pricing pipeline. Nothing in the
// engine reads configuration ambiently; scenario analysis varies these.
type Params struct {
	Model Model

	BaseRate     float64
	GradBaseRate float64

	LossGivenDefault     float64
	GradLossGivenDefault float64
	DurationYears        float64

	// DiscountRate > 0 divides expected loss by the annuity factor
	// before annualizing. Zero keeps the plain premium formula.
	DiscountRate float64

	// CapPremium > 0 caps the premium before the subsidy is applied.
	// Zero means uncapped.
	CapPremium float64

	// FloorRate is the lowest rate the subsidy may produce.
	FloorRate float64

	Fairness FairnessParams
	Weights  ensemble.Weights

	// StructuralDebt is the assumed principal for the structural and
	// actuarial ensemble sub-models.
	StructuralDebt float64
}

// DefaultParams returns the calibrated defaults: 5.50% undergrad base,
// 6.54% grad base, 70% LGD, 10-year duration.
func DefaultParams() Params {
	return Params{
		Model:                ModelSimple,
		BaseRate:             5.50,
		GradBaseRate:         6.54,
		LossGivenDefault:     0.70,
		GradLossGivenDefault: 0.65,
		DurationYears:        10,
		Fairness:             DefaultFairnessParams(),
		Weights:              ensemble.DefaultWeights(),
		StructuralDebt:       30000,
	}
}

// ParamsFromConfig converts the loaded configuration into engine params.
func ParamsFromConfig(cfg config.PricingConfig) Params {
	return Params{
		Model:                Model(cfg.Model),
		BaseRate:             cfg.BaseRate,
		GradBaseRate:         cfg.GradBaseRate,
		LossGivenDefault:     cfg.LossGivenDefault,
		GradLossGivenDefault: cfg.GradLossGivenDefault,
		DurationYears:        cfg.DurationYears,
		DiscountRate:         cfg.DiscountRate,
		CapPremium:           cfg.CapPremium,
		FloorRate:            cfg.FloorRate,
		Fairness: FairnessParams{
			LowerIncome:  cfg.Fairness.LowerIncome,
			UpperIncome:  cfg.Fairness.UpperIncome,
			SubsidyScale: cfg.Fairness.SubsidyScale,
		},
		Weights: ensemble.Weights{
			Survival:   cfg.Ensemble.SurvivalWeight,
			Structural: cfg.Ensemble.StructuralWeight,
			Rule:       cfg.Ensemble.RuleWeight,
			Actuarial:  cfg.Ensemble.ActuarialWeight,
		},
		StructuralDebt: cfg.Ensemble.DebtAmount,
	}
}

// Validate rejects invalid parameter sets at configuration time.
func (p Params) Validate() error {
	if p.Model != ModelSimple && p.Model != ModelEnsemble {
		return apperrors.NewConfigurationError(fmt.Sprintf("unknown pricing model %q", p.Model))
	}
	if p.BaseRate < 0 || p.GradBaseRate < 0 {
		return apperrors.NewConfigurationError("base rates must be non-negative")
	}
	if p.LossGivenDefault < 0 || p.LossGivenDefault > 1 {
		return apperrors.NewConfigurationError(fmt.Sprintf("loss given default %.4f outside [0,1]", p.LossGivenDefault))
	}
	if p.GradLossGivenDefault < 0 || p.GradLossGivenDefault > 1 {
		return apperrors.NewConfigurationError(fmt.Sprintf("graduate loss given default %.4f outside [0,1]", p.GradLossGivenDefault))
	}
	if p.DurationYears <= 0 {
		return apperrors.NewConfigurationError("duration must be positive")
	}
	if p.DiscountRate < 0 {
		return apperrors.NewConfigurationError("discount rate must be non-negative")
	}
	if p.CapPremium < 0 || p.FloorRate < 0 {
		return apperrors.NewConfigurationError("premium cap and floor rate must be non-negative")
	}
	if err := p.Fairness.Validate(); err != nil {
		return err
	}
	if p.Model == ModelEnsemble {
		if err := p.Weights.Validate(); err != nil {
			return err
		}
		if p.StructuralDebt <= 0 {
			return apperrors.NewConfigurationError("structural debt amount must be positive")
		}
	}
	return nil
}
