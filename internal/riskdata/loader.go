package riskdata

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	apperrors "loan-pricing-engine/internal/common/errors"
)

type fieldRiskFile struct {
	Metadata  map[string]interface{} `json:"metadata"`
	FieldRisk []FieldRiskProfile     `json:"field_risk"`
}

type graduateProgramsFile struct {
	GraduatePrograms []GraduateProgram `json:"graduate_programs"`
}

// LoadFieldTable reads, schema-validates, and indexes the field risk
// table from a JSON file.
func LoadFieldTable(path string) (*FieldTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewDataSourceFailedError(err)
	}
	if err := validateAgainstSchema(data, fieldRiskSchema); err != nil {
		return nil, err
	}

	var file fieldRiskFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, apperrors.NewDataValidationFailedError(err.Error())
	}
	return NewFieldTable(file.FieldRisk)
}

// LoadGraduateTable reads, schema-validates, and indexes the graduate
// program table from a JSON file.
func LoadGraduateTable(path string) (*GraduateTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewDataSourceFailedError(err)
	}
	if err := validateAgainstSchema(data, graduateProgramsSchema); err != nil {
		return nil, err
	}

	var file graduateProgramsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, apperrors.NewDataValidationFailedError(err.Error())
	}
	return NewGraduateTable(file.GraduatePrograms)
}

// LoadInstitutionAdjustments reads and schema-validates the institution
// adjustment table from a JSON file.
func LoadInstitutionAdjustments(path string) (*InstitutionAdjustments, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewDataSourceFailedError(err)
	}
	if err := validateAgainstSchema(data, institutionAdjustmentsSchema); err != nil {
		return nil, err
	}

	var adj InstitutionAdjustments
	if err := json.Unmarshal(data, &adj); err != nil {
		return nil, apperrors.NewDataValidationFailedError(err.Error())
	}
	return &adj, nil
}

func validateAgainstSchema(data []byte, schema string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return apperrors.NewDataValidationFailedError(err.Error())
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return apperrors.NewDataValidationFailedError(strings.Join(msgs, "; "))
	}
	return nil
}
