// Command riskdata-importer converts a CSV export of field-level labor
// market outcomes into the JSON risk table the engine loads. The output
// is validated with the same rules the engine applies at startup, so a
// file this tool writes always loads.
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"loan-pricing-engine/internal/common/logger"
	"loan-pricing-engine/internal/riskdata"
)

type outputFile struct {
	Metadata  map[string]interface{}      `json:"metadata"`
	FieldRisk []riskdata.FieldRiskProfile `json:"field_risk"`
}

func main() {
	in := flag.String("in", "", "input CSV path")
	out := flag.String("out", "data/field_risk_scores.json", "output JSON path")
	level := flag.String("log-level", "info", "log level")
	flag.Parse()

	log := logger.NewStructured(*level, "console")

	if *in == "" {
		fmt.Fprintln(os.Stderr, "usage: riskdata-importer -in <csv> [-out <json>]")
		os.Exit(2)
	}

	profiles, err := readCSV(*in)
	if err != nil {
		log.Error("import failed", map[string]interface{}{"path": *in, "error": err.Error()})
		os.Exit(1)
	}

	// Round-trip through the table constructor so a broken file is
	// rejected here, not at engine startup.
	table, err := riskdata.NewFieldTable(profiles)
	if err != nil {
		log.Error("validation failed", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	file := outputFile{
		Metadata: map[string]interface{}{
			"generated_at": time.Now().UTC().Format(time.RFC3339),
			"source":       filepath.Base(*in),
			"n_fields":     table.Len(),
		},
		FieldRisk: profiles,
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		log.Error("encoding failed", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
	if err := os.WriteFile(*out, append(data, '\n'), 0o644); err != nil {
		log.Error("write failed", map[string]interface{}{"path": *out, "error": err.Error()})
		os.Exit(1)
	}

	log.Info("risk table written", map[string]interface{}{
		"path":   *out,
		"fields": table.Len(),
	})
}

// readCSV parses a header-addressed CSV. Required columns: field,
// median_earnings, underemployment_proxy. Optional: completion_rate,
// pell_percentage, n_institutions.
func readCSV(path string) ([]riskdata.FieldRiskProfile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, required := range []string{"field", "median_earnings", "underemployment_proxy"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	var profiles []riskdata.FieldRiskProfile
	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		p := riskdata.FieldRiskProfile{Name: record[col["field"]]}
		if p.MedianEarnings, err = parseFloat(record, col, "median_earnings"); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if p.UnderemploymentRate, err = parseFloat(record, col, "underemployment_proxy"); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if i, ok := col["completion_rate"]; ok && record[i] != "" {
			if p.CompletionRate, err = strconv.ParseFloat(record[i], 64); err != nil {
				return nil, fmt.Errorf("line %d: completion_rate: %w", line, err)
			}
		}
		if i, ok := col["pell_percentage"]; ok && record[i] != "" {
			if p.PellPercentage, err = strconv.ParseFloat(record[i], 64); err != nil {
				return nil, fmt.Errorf("line %d: pell_percentage: %w", line, err)
			}
		}
		if i, ok := col["n_institutions"]; ok && record[i] != "" {
			if p.NumInstitutions, err = strconv.Atoi(record[i]); err != nil {
				return nil, fmt.Errorf("line %d: n_institutions: %w", line, err)
			}
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func parseFloat(record []string, col map[string]int, name string) (float64, error) {
	v, err := strconv.ParseFloat(record[col[name]], 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return v, nil
}
