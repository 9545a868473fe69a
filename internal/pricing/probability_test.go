package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "loan-pricing-engine/internal/common/errors"
)

func TestSimpleDefaultProbability(t *testing.T) {
	tests := []struct {
		name     string
		rate     float64
		expected float64
	}{
		{"fully employed hits the floor", 0.0, 0.05},
		{"engineering", 0.013, 0.05195},
		{"philosophy", 0.30, 0.095},
		{"extreme underemployment hits the cap", 1.0, 0.20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prob, err := SimpleDefaultProbability(tt.rate)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, prob, 1e-9)
		})
	}
}

func TestGraduateDefaultProbability(t *testing.T) {
	// The graduate baseline is lower and there is no floor.
	prob, err := GraduateDefaultProbability(0)
	require.NoError(t, err)
	assert.InDelta(t, 0.03, prob, 1e-9)

	prob, err = GraduateDefaultProbability(0.14)
	require.NoError(t, err)
	assert.InDelta(t, 0.051, prob, 1e-9)

	prob, err = GraduateDefaultProbability(1.0)
	require.NoError(t, err)
	assert.InDelta(t, 0.18, prob, 1e-9)
}

func TestDefaultProbabilityRejectsOutOfRange(t *testing.T) {
	for _, rate := range []float64{-0.01, 1.01} {
		_, err := SimpleDefaultProbability(rate)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidInput))

		_, err = GraduateDefaultProbability(rate)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidInput))
	}
}
