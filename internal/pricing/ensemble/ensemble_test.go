package ensemble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "loan-pricing-engine/internal/common/errors"
)

func testInputs() Inputs {
	return Inputs{
		UnderemploymentRate: 0.30,
		MedianEarnings:      28500,
		EarningsPercentile:  0.10,
		NumInstitutions:     287,
		BaseRate:            5.50,
		DurationYears:       10,
		DebtAmount:          30000,
	}
}

func TestWeightsValidate(t *testing.T) {
	require.NoError(t, DefaultWeights().Validate())

	tests := []struct {
		name string
		w    Weights
	}{
		{"sum below one", Weights{Survival: 0.25, Structural: 0.25, Rule: 0.25, Actuarial: 0.15}},
		{"sum above one", Weights{Survival: 0.40, Structural: 0.25, Rule: 0.30, Actuarial: 0.15}},
		{"negative weight", Weights{Survival: -0.10, Structural: 0.45, Rule: 0.40, Actuarial: 0.25}},
		{"all zero", Weights{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.w.Validate()
			require.Error(t, err)
			assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeConfigurationError))
		})
	}

	// Rounding slack within tolerance is accepted.
	slightlyOff := Weights{Survival: 0.3000001, Structural: 0.25, Rule: 0.2999999, Actuarial: 0.15}
	assert.NoError(t, slightlyOff.Validate())
}

func TestBlendIsWeightedSum(t *testing.T) {
	w := DefaultWeights()
	est, err := Blend(testInputs(), w)
	require.NoError(t, err)

	expected := w.Survival*est.Models.Survival +
		w.Structural*est.Models.Structural +
		w.Rule*est.Models.Rule +
		w.Actuarial*est.Models.Actuarial
	assert.InDelta(t, expected, est.Probability, 1e-12)
}

func TestBlendNeverNormalizes(t *testing.T) {
	// Off-sum weights must error rather than be rescaled.
	bad := Weights{Survival: 0.60, Structural: 0.50, Rule: 0.60, Actuarial: 0.30}
	_, err := Blend(testInputs(), bad)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeConfigurationError))
}

func TestSubModelBounds(t *testing.T) {
	inputs := []Inputs{
		testInputs(),
		{UnderemploymentRate: 0.013, MedianEarnings: 52900, EarningsPercentile: 0.95, NumInstitutions: 412, BaseRate: 5.50, DurationYears: 10, DebtAmount: 30000},
		{UnderemploymentRate: 0.95, MedianEarnings: 18000, EarningsPercentile: 0.01, NumInstitutions: 12, BaseRate: 5.50, DurationYears: 10, DebtAmount: 60000},
	}
	for _, in := range inputs {
		est, err := Blend(in, DefaultWeights())
		require.NoError(t, err)

		assert.LessOrEqual(t, est.Models.Survival, 0.25)
		assert.GreaterOrEqual(t, est.Models.Survival, 0.0)
		assert.GreaterOrEqual(t, est.Models.Structural, 0.01)
		assert.LessOrEqual(t, est.Models.Structural, 0.30)
		assert.GreaterOrEqual(t, est.Models.Rule, 0.03)
		assert.LessOrEqual(t, est.Models.Rule, 0.25)
		assert.GreaterOrEqual(t, est.Models.Actuarial, 0.0)
		assert.LessOrEqual(t, est.Models.Actuarial, 0.30)
	}
}

func TestBlendDiagnostics(t *testing.T) {
	est, err := Blend(testInputs(), DefaultWeights())
	require.NoError(t, err)

	assert.GreaterOrEqual(t, est.Agreement, 0.0)
	assert.LessOrEqual(t, est.Agreement, 1.0)
	assert.GreaterOrEqual(t, est.Spread, 0.0)
	assert.GreaterOrEqual(t, est.StdDev, 0.0)
	assert.LessOrEqual(t, est.Interval95[0], est.Probability)
	assert.GreaterOrEqual(t, est.Interval95[1], est.Probability)
	assert.Greater(t, est.LossReservePV, 0.0)
}

func TestBlendMonotonicInUnderemployment(t *testing.T) {
	lowRisk := testInputs()
	lowRisk.UnderemploymentRate = 0.05

	highRisk := testInputs()
	highRisk.UnderemploymentRate = 0.35

	lowEst, err := Blend(lowRisk, DefaultWeights())
	require.NoError(t, err)
	highEst, err := Blend(highRisk, DefaultWeights())
	require.NoError(t, err)

	assert.Greater(t, highEst.Probability, lowEst.Probability)
}

func TestBlendInvalidInputs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Inputs)
	}{
		{"underemployment above one", func(in *Inputs) { in.UnderemploymentRate = 1.5 }},
		{"negative underemployment", func(in *Inputs) { in.UnderemploymentRate = -0.1 }},
		{"zero earnings", func(in *Inputs) { in.MedianEarnings = 0 }},
		{"zero duration", func(in *Inputs) { in.DurationYears = 0 }},
		{"zero debt", func(in *Inputs) { in.DebtAmount = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := testInputs()
			tt.mutate(&in)
			_, err := Blend(in, DefaultWeights())
			require.Error(t, err)
			assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidInput))
		})
	}
}

func TestStructuralDistanceToDefault(t *testing.T) {
	safe := testInputs()
	safe.MedianEarnings = 90000

	risky := testInputs()
	risky.MedianEarnings = 20000

	safeEst, err := Blend(safe, DefaultWeights())
	require.NoError(t, err)
	riskyEst, err := Blend(risky, DefaultWeights())
	require.NoError(t, err)

	// Higher earnings means more distance between assets and the debt
	// barrier.
	assert.Greater(t, safeEst.DistanceToDefault, riskyEst.DistanceToDefault)
	assert.Less(t, safeEst.Models.Structural, riskyEst.Models.Structural+1e-12)
}
