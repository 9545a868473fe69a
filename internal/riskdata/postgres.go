package riskdata

import (
	"context"
	"database/sql"

	apperrors "loan-pricing-engine/internal/common/errors"
)

const fieldRiskQuery = `
	SELECT field, median_earnings, underemployment_proxy,
	       COALESCE(completion_rate, 0), COALESCE(pell_percentage, 0),
	       COALESCE(n_institutions, 0)
	FROM field_risk
	ORDER BY field`

// LoadFieldTableFromPostgres reads the field risk table from the
// field_risk relation. It is an alternative startup-time source to the
// JSON file; the resulting table goes through the same validation.
func LoadFieldTableFromPostgres(ctx context.Context, db *sql.DB) (*FieldTable, error) {
	rows, err := db.QueryContext(ctx, fieldRiskQuery)
	if err != nil {
		return nil, apperrors.NewDataSourceFailedError(err)
	}
	defer rows.Close()

	var profiles []FieldRiskProfile
	for rows.Next() {
		var p FieldRiskProfile
		if err := rows.Scan(
			&p.Name, &p.MedianEarnings, &p.UnderemploymentRate,
			&p.CompletionRate, &p.PellPercentage, &p.NumInstitutions,
		); err != nil {
			return nil, apperrors.NewDataSourceFailedError(err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDataSourceFailedError(err)
	}

	return NewFieldTable(profiles)
}
