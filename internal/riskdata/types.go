// Package riskdata loads and holds the static risk tables the pricing
// engine is evaluated against. Tables are loaded once at process start,
// validated, and immutable afterwards; they are safe to share across
// concurrent callers.
package riskdata

import (
	"sort"

	apperrors "loan-pricing-engine/internal/common/errors"
)

// FieldRiskProfile holds the risk attributes of one academic field.
type FieldRiskProfile struct {
	Name                string  `json:"field"`
	MedianEarnings      float64 `json:"median_earnings"`
	UnderemploymentRate float64 `json:"underemployment_proxy"`
	CompletionRate      float64 `json:"completion_rate,omitempty"`
	PellPercentage      float64 `json:"pell_percentage,omitempty"`
	NumInstitutions     int     `json:"n_institutions,omitempty"`

	// Derived at load time.
	EarningsPercentile float64 `json:"-"`
	NormalizedRisk     float64 `json:"-"`
}

// FieldTable is an immutable lookup table of field risk profiles.
type FieldTable struct {
	fields []FieldRiskProfile
	byName map[string]int
}

// NewFieldTable validates the profiles, derives the earnings percentile
// and normalized risk score for each, and builds the lookup index.
func NewFieldTable(profiles []FieldRiskProfile) (*FieldTable, error) {
	if len(profiles) == 0 {
		return nil, apperrors.NewDataValidationFailedError("field risk table is empty")
	}
	for _, p := range profiles {
		if err := validateProfile(p); err != nil {
			return nil, err
		}
	}

	fields := make([]FieldRiskProfile, len(profiles))
	copy(fields, profiles)

	maxRisk := 0.0
	earnings := make([]float64, len(fields))
	for i, p := range fields {
		if p.UnderemploymentRate > maxRisk {
			maxRisk = p.UnderemploymentRate
		}
		earnings[i] = p.MedianEarnings
	}
	sort.Float64s(earnings)

	byName := make(map[string]int, len(fields))
	for i := range fields {
		if _, dup := byName[fields[i].Name]; dup {
			return nil, apperrors.NewDataValidationFailedError("duplicate field name: " + fields[i].Name)
		}
		byName[fields[i].Name] = i

		fields[i].EarningsPercentile = percentileRank(earnings, fields[i].MedianEarnings)
		if maxRisk > 0 {
			fields[i].NormalizedRisk = fields[i].UnderemploymentRate / maxRisk * 100
		}
	}

	return &FieldTable{fields: fields, byName: byName}, nil
}

// percentileRank returns the average-rank percentile of v within sorted,
// the same statistic pandas' fractional rank produces.
func percentileRank(sorted []float64, v float64) float64 {
	less := sort.SearchFloat64s(sorted, v)
	upper := less
	for upper < len(sorted) && sorted[upper] == v {
		upper++
	}
	equal := upper - less
	rank := float64(less) + (float64(equal)+1)/2
	return rank / float64(len(sorted))
}

// Lookup resolves a field name to its risk profile. Unknown names fail
// with UNKNOWN_FIELD; there is deliberately no default profile.
func (t *FieldTable) Lookup(name string) (FieldRiskProfile, error) {
	i, ok := t.byName[name]
	if !ok {
		return FieldRiskProfile{}, apperrors.NewUnknownFieldError(name)
	}
	return t.fields[i], nil
}

// Fields returns a copy of every profile in the table.
func (t *FieldTable) Fields() []FieldRiskProfile {
	out := make([]FieldRiskProfile, len(t.fields))
	copy(out, t.fields)
	return out
}

// Len returns the number of fields in the table.
func (t *FieldTable) Len() int {
	return len(t.fields)
}

// GraduateProgram holds the risk attributes of one graduate or
// professional program.
type GraduateProgram struct {
	Program              string  `json:"program"`
	MedianEarnings       float64 `json:"median_earnings"`
	MedianDebt           float64 `json:"median_debt"`
	UnderemploymentRate  float64 `json:"underemployment_proxy"`
	TypicalDurationYears float64 `json:"typical_duration"`
}

// GraduateTable is an immutable lookup table of graduate programs.
type GraduateTable struct {
	programs []GraduateProgram
	byName   map[string]int
}

// NewGraduateTable validates the programs and builds the lookup index.
func NewGraduateTable(programs []GraduateProgram) (*GraduateTable, error) {
	byName := make(map[string]int, len(programs))
	for i, p := range programs {
		if p.MedianEarnings <= 0 || p.MedianDebt <= 0 {
			return nil, apperrors.NewDataValidationFailedError("non-positive earnings or debt for program " + p.Program)
		}
		if p.UnderemploymentRate < 0 || p.UnderemploymentRate > 1 {
			return nil, apperrors.NewDataValidationFailedError("underemployment rate out of [0,1] for program " + p.Program)
		}
		if p.TypicalDurationYears <= 0 {
			return nil, apperrors.NewDataValidationFailedError("non-positive duration for program " + p.Program)
		}
		byName[p.Program] = i
	}
	return &GraduateTable{programs: programs, byName: byName}, nil
}

// Lookup resolves a program name. Unknown names fail with UNKNOWN_PROGRAM.
func (t *GraduateTable) Lookup(program string) (GraduateProgram, error) {
	i, ok := t.byName[program]
	if !ok {
		return GraduateProgram{}, apperrors.NewUnknownProgramError(program)
	}
	return t.programs[i], nil
}

// Programs returns a copy of every program in the table.
func (t *GraduateTable) Programs() []GraduateProgram {
	out := make([]GraduateProgram, len(t.programs))
	copy(out, t.programs)
	return out
}

func validateProfile(p FieldRiskProfile) error {
	if p.Name == "" {
		return apperrors.NewDataValidationFailedError("field with empty name")
	}
	if p.MedianEarnings <= 0 {
		return apperrors.NewDataValidationFailedError("non-positive median earnings for field " + p.Name)
	}
	if p.UnderemploymentRate < 0 || p.UnderemploymentRate > 1 {
		return apperrors.NewDataValidationFailedError("underemployment rate out of [0,1] for field " + p.Name)
	}
	if p.CompletionRate < 0 || p.CompletionRate > 1 {
		return apperrors.NewDataValidationFailedError("completion rate out of [0,1] for field " + p.Name)
	}
	if p.PellPercentage < 0 || p.PellPercentage > 1 {
		return apperrors.NewDataValidationFailedError("pell percentage out of [0,1] for field " + p.Name)
	}
	return nil
}
