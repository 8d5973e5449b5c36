package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"Impas/internal/calc/analysis"
	"Impas/internal/calc/money"
	"Impas/internal/calc/report"
	"Impas/internal/preset"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		in         analysis.Input
		presetName string
		asJSON     bool
		showTable  bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the full break-even analysis",
		Long: `Runs every calculation for one scenario. Flags override the values of
--preset when both are given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario := in
			if presetName != "" {
				presets, err := preset.Load(presetsFile)
				if err != nil {
					return err
				}
				p, ok := preset.Find(presets, presetName)
				if !ok {
					return fmt.Errorf("unknown preset %q", presetName)
				}
				scenario = overlay(p.Input, in, cmd.Flags())
			}
			if err := scenario.Validate(); err != nil {
				return err
			}

			res := analysis.Calculate(scenario)
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, line := range report.SummaryLines(res) {
				fmt.Fprintf(tw, "%s\t%s\n", line[0], line[1])
			}
			if res.BreakEven.Error != "" {
				fmt.Fprintf(tw, "Break-even error\t%s\n", res.BreakEven.Error)
			}
			if res.SensitivityError != "" {
				fmt.Fprintf(tw, "Sensitivity error\t%s\n", res.SensitivityError)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if showTable && len(res.Sensitivity) > 0 {
				fmt.Fprintln(out)
				return writeSensitivity(out, res.Sensitivity)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&presetName, "preset", "", "start from a named preset")
	f.BoolVar(&asJSON, "json", false, "print the result as JSON")
	f.BoolVar(&showTable, "table", false, "print the price sensitivity table")
	f.Float64Var(&in.FixedCost, "fixed", 0, "fixed cost")
	f.Float64Var(&in.VariableCostPerUnit, "variable", 0, "variable cost per unit")
	f.Float64Var(&in.PricePerUnit, "price", 0, "selling price per unit")
	f.Float64Var(&in.TotalRevenue, "revenue", 0, "total revenue")
	f.Float64Var(&in.TotalVariableCost, "total-variable", 0, "total variable cost")
	f.Float64Var(&in.TaxPercent, "tax", 0, "tax rate in percent")
	f.Float64Var(&in.InitialInvestment, "investment", 0, "initial investment")
	f.Float64Var(&in.AnnualProfit, "annual-profit", 0, "expected annual profit")
	f.Float64Var(&in.TargetProfit, "target-profit", 0, "target profit")
	f.IntVar(&in.PriceRange.Low, "low", 0, "sensitivity price range low, in thousands")
	f.IntVar(&in.PriceRange.High, "high", 0, "sensitivity price range high, in thousands")
	f.Float64Var(&in.SalesPerMonth, "sales-per-month", 0, "units sold per month")
	return cmd
}

// overlay copies every explicitly set flag onto base.
func overlay(base, flags analysis.Input, set *pflag.FlagSet) analysis.Input {
	fields := map[string]func(){
		"fixed":           func() { base.FixedCost = flags.FixedCost },
		"variable":        func() { base.VariableCostPerUnit = flags.VariableCostPerUnit },
		"price":           func() { base.PricePerUnit = flags.PricePerUnit },
		"revenue":         func() { base.TotalRevenue = flags.TotalRevenue },
		"total-variable":  func() { base.TotalVariableCost = flags.TotalVariableCost },
		"tax":             func() { base.TaxPercent = flags.TaxPercent },
		"investment":      func() { base.InitialInvestment = flags.InitialInvestment },
		"annual-profit":   func() { base.AnnualProfit = flags.AnnualProfit },
		"target-profit":   func() { base.TargetProfit = flags.TargetProfit },
		"low":             func() { base.PriceRange.Low = flags.PriceRange.Low },
		"high":            func() { base.PriceRange.High = flags.PriceRange.High },
		"sales-per-month": func() { base.SalesPerMonth = flags.SalesPerMonth },
	}
	set.Visit(func(f *pflag.Flag) {
		if apply, ok := fields[f.Name]; ok {
			apply()
		}
	})
	return base
}

func formatPrice(p float64) string { return money.Grouped(p, 0) }
