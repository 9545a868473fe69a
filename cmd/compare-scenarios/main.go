// Command compare-scenarios prices one field of study under four rate
// policies side by side, and optionally prices a graduate program.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"loan-pricing-engine/internal/common/config"
	"loan-pricing-engine/internal/common/logger"
	"loan-pricing-engine/internal/common/observability"
	"loan-pricing-engine/internal/pricing"
	"loan-pricing-engine/internal/service"
)

func main() {
	field := flag.String("field", "Philosophy/Religion", "field of study")
	loanAmount := flag.Float64("loan", 30000, "loan principal")
	program := flag.String("program", "", "graduate program to price in addition")
	income := flag.Float64("income", 45000, "family income for the graduate fairness adjustment")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()
	engine, cleanup, err := service.BuildEngine(ctx, cfg, log)
	if err != nil {
		log.Error("engine startup failed", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
	defer cleanup()

	cache, ttl := service.BuildCache(ctx, cfg, log)
	svc := service.New(engine, cache, ttl, log)

	start := time.Now()
	scenarios, err := svc.CompareScenarios(ctx, *field, *loanAmount)
	if err != nil {
		log.Error("scenario comparison failed", map[string]interface{}{
			"field": *field,
			"error": err.Error(),
		})
		os.Exit(1)
	}
	obs.RecordPricing(ctx, cfg.Pricing.Model, "success")
	obs.RecordDuration(ctx, cfg.Pricing.Model, time.Since(start))

	fmt.Printf("Scenario comparison: %s, %.0f loan\n\n", *field, *loanAmount)
	printScenarios(scenarios)

	if *program != "" {
		res, err := svc.PriceGraduateLoan(ctx, *program, true, *income)
		if err != nil {
			log.Error("graduate pricing failed", map[string]interface{}{
				"program": *program,
				"error":   err.Error(),
			})
			os.Exit(1)
		}
		fmt.Printf("\nGraduate: %s at income %.0f\n", res.Field, *income)
		fmt.Printf("  rate %.3f%% (base %.2f + premium %.3f - subsidy %.3f)\n",
			res.AdjustedRate, res.BaseRate, res.RiskPremium, res.Subsidy)
		fmt.Printf("  monthly %.2f over %.0f years, debt-to-earnings %.3f\n",
			res.MonthlyPayment, res.DurationYears, res.DebtToEarnings)
	}
}

func printScenarios(scenarios []pricing.Scenario) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SCENARIO\tRATE\tPREMIUM\tSUBSIDY\tMONTHLY\tTOTAL INTEREST")
	for _, s := range scenarios {
		p := s.Pricing
		fmt.Fprintf(w, "%s\t%.3f%%\t%.3f\t%.3f\t%.2f\t%.2f\n",
			s.Name, p.AdjustedRate, p.RiskPremium, p.Subsidy, p.MonthlyPayment, p.TotalInterest)
	}
	w.Flush()
}
