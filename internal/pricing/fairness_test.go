package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncomeFactorRamp(t *testing.T) {
	f := DefaultFairnessParams()

	tests := []struct {
		name     string
		income   float64
		expected float64
	}{
		{"well below lower", 15000, 1.0},
		{"at lower threshold", 30000, 1.0},
		{"midpoint", 45000, 0.5},
		{"at upper threshold", 60000, 0.0},
		{"well above upper", 150000, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, f.IncomeFactor(tt.income), 1e-9)
		})
	}
}

func TestSubsidyScalesWithRisk(t *testing.T) {
	f := DefaultFairnessParams()

	// Low income, moderate risk: 1.0 * 0.095 * 2.0 * 10 = 1.9 points.
	assert.InDelta(t, 1.9, f.Subsidy(25000, 0.095, 10), 1e-9)

	// High income gets nothing regardless of risk.
	assert.Equal(t, 0.0, f.Subsidy(150000, 0.20, 10))
}

func TestSubsidyCappedAtScale(t *testing.T) {
	f := DefaultFairnessParams()

	// 1.0 * 0.15 * 2.0 * 10 = 3.0 would exceed the cap.
	assert.Equal(t, 2.0, f.Subsidy(25000, 0.15, 10))
}

func TestFairnessParamsValidate(t *testing.T) {
	require.NoError(t, DefaultFairnessParams().Validate())

	bad := FairnessParams{LowerIncome: 60000, UpperIncome: 30000, SubsidyScale: 2.0}
	assert.Error(t, bad.Validate())

	bad = FairnessParams{LowerIncome: 0, UpperIncome: 60000, SubsidyScale: 2.0}
	assert.Error(t, bad.Validate())

	bad = FairnessParams{LowerIncome: 30000, UpperIncome: 60000, SubsidyScale: -1}
	assert.Error(t, bad.Validate())
}
