package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fields.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadCSV(t *testing.T) {
	path := writeCSV(t, `field,median_earnings,underemployment_proxy,completion_rate,pell_percentage,n_institutions
Engineering,52900,0.013,0.71,0.28,412
Philosophy/Religion,28500,0.30,,,
`)

	profiles, err := readCSV(path)
	require.NoError(t, err)
	require.Len(t, profiles, 2)

	assert.Equal(t, "Engineering", profiles[0].Name)
	assert.Equal(t, 52900.0, profiles[0].MedianEarnings)
	assert.Equal(t, 412, profiles[0].NumInstitutions)

	// Optional columns may be blank.
	assert.Equal(t, "Philosophy/Religion", profiles[1].Name)
	assert.Equal(t, 0.0, profiles[1].CompletionRate)
	assert.Equal(t, 0, profiles[1].NumInstitutions)
}

func TestReadCSVColumnOrderIrrelevant(t *testing.T) {
	path := writeCSV(t, `underemployment_proxy,field,median_earnings
0.24,Psychology,32400
`)

	profiles, err := readCSV(path)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "Psychology", profiles[0].Name)
	assert.Equal(t, 0.24, profiles[0].UnderemploymentRate)
}

func TestReadCSVMissingRequiredColumn(t *testing.T) {
	path := writeCSV(t, `field,median_earnings
Engineering,52900
`)

	_, err := readCSV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "underemployment_proxy")
}

func TestReadCSVBadNumber(t *testing.T) {
	path := writeCSV(t, `field,median_earnings,underemployment_proxy
Engineering,lots,0.013
`)

	_, err := readCSV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}
