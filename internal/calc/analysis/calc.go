package analysis

import (
	"errors"
	"fmt"
	"math"

	"Impas/internal/calc/breakeven"
	"Impas/internal/calc/metrics"
	"Impas/internal/calc/outcome"
	"Impas/internal/calc/plot"
	"Impas/internal/calc/sensitivity"
)

type PriceRange struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

type Input struct {
	FixedCost           float64    `json:"fixed_cost" yaml:"fixed_cost"`
	VariableCostPerUnit float64    `json:"variable_cost_per_unit" yaml:"variable_cost_per_unit"`
	PricePerUnit        float64    `json:"price_per_unit" yaml:"price_per_unit"`
	TotalRevenue        float64    `json:"total_revenue" yaml:"total_revenue"`
	TotalVariableCost   float64    `json:"total_variable_cost" yaml:"total_variable_cost"`
	TaxPercent          float64    `json:"tax_percent" yaml:"tax_percent"`
	InitialInvestment   float64    `json:"initial_investment" yaml:"initial_investment"`
	AnnualProfit        float64    `json:"annual_profit" yaml:"annual_profit"`
	TargetProfit        float64    `json:"target_profit" yaml:"target_profit"`
	PriceRange          PriceRange `json:"price_range" yaml:"price_range"`
	SalesPerMonth       float64    `json:"sales_per_month,omitempty" yaml:"sales_per_month"`
	InitialGuess        float64    `json:"initial_guess,omitempty" yaml:"initial_guess"`
	Tolerance           float64    `json:"tolerance,omitempty" yaml:"tolerance"`
}

// Validate is the form-level check: every figure non-negative and finite,
// price range ordered.
func (in Input) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"fixed_cost", in.FixedCost},
		{"variable_cost_per_unit", in.VariableCostPerUnit},
		{"price_per_unit", in.PricePerUnit},
		{"total_revenue", in.TotalRevenue},
		{"total_variable_cost", in.TotalVariableCost},
		{"tax_percent", in.TaxPercent},
		{"initial_investment", in.InitialInvestment},
		{"annual_profit", in.AnnualProfit},
		{"target_profit", in.TargetProfit},
		{"sales_per_month", in.SalesPerMonth},
		{"initial_guess", in.InitialGuess},
		{"tolerance", in.Tolerance},
	}
	var errs []error
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			errs = append(errs, fmt.Errorf("%s must be a finite number", f.name))
			continue
		}
		if f.value < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative", f.name))
		}
	}
	low, high := in.PriceRange.Low, in.PriceRange.High
	switch {
	case low < 0:
		errs = append(errs, fmt.Errorf("price_range.low must not be negative"))
	case low > high:
		errs = append(errs, fmt.Errorf("price_range.low must not exceed price_range.high"))
	case high-low >= sensitivity.MaxPoints:
		errs = append(errs, fmt.Errorf("price_range spans more than %d points", sensitivity.MaxPoints))
	}
	return errors.Join(errs...)
}

type BreakEven struct {
	Units      outcome.Value `json:"units"`
	Revenue    outcome.Value `json:"revenue"`
	Months     outcome.Value `json:"months_to_break_even"`
	Iterations int           `json:"iterations,omitempty"`
	Error      string        `json:"error,omitempty"`
}

type Result struct {
	Input              Input                 `json:"input"`
	BreakEven          BreakEven             `json:"break_even"`
	ProfitMargin       outcome.Value         `json:"profit_margin_pct"`
	Profit             metrics.ProfitSummary `json:"profit"`
	TotalCost          float64               `json:"total_cost"`
	ContributionMargin float64               `json:"contribution_margin"`
	AdditionalRevenue  float64               `json:"additional_revenue"`
	TargetUnits        outcome.Value         `json:"target_units"`
	ROI                outcome.Value         `json:"roi_pct"`
	PaybackYears       outcome.Value         `json:"payback_years"`
	Sensitivity        []sensitivity.Row     `json:"sensitivity"`
	SensitivityError   string                `json:"sensitivity_error,omitempty"`
	CostRevenueChart   plot.LineChart        `json:"cost_revenue_chart"`
	ComparisonChart    plot.BarChart         `json:"comparison_chart"`
}

// Calculate runs one full pass. Every part is computed on its own; a failing
// part is reported in place and never stops the others.
func Calculate(in Input) Result {
	res := Result{Input: in}

	res.BreakEven = solveBreakEven(in)

	res.ProfitMargin = metrics.ProfitMargin(in.PricePerUnit, in.VariableCostPerUnit)
	res.Profit = metrics.Profit(in.TotalRevenue, in.TotalVariableCost, in.FixedCost, in.TaxPercent)
	res.TotalCost = in.TotalVariableCost + in.FixedCost
	res.ContributionMargin = metrics.ContributionMargin(in.PricePerUnit, in.VariableCostPerUnit)
	res.AdditionalRevenue = metrics.AdditionalRevenue(res.Profit.Net, in.TargetProfit)
	res.TargetUnits = metrics.TargetUnits(in.TargetProfit, in.FixedCost, res.ContributionMargin)
	res.ROI = metrics.ROI(in.InitialInvestment, in.AnnualProfit)
	res.PaybackYears = metrics.PaybackPeriod(in.InitialInvestment, in.AnnualProfit)

	points, err := sensitivity.PricePoints(in.PriceRange.Low, in.PriceRange.High)
	if err != nil {
		res.SensitivityError = err.Error()
	} else {
		res.Sensitivity = sensitivity.Build(points, in.FixedCost, in.VariableCostPerUnit)
	}

	res.CostRevenueChart = plot.CostRevenue(in.FixedCost, in.VariableCostPerUnit, in.PricePerUnit, res.BreakEven.Units)
	res.ComparisonChart = plot.Comparison(in.TotalRevenue, res.TotalCost, res.Profit.Net)
	return res
}

func solveBreakEven(in Input) BreakEven {
	be, err := breakeven.Calculate(breakeven.Input{
		FixedCost:           in.FixedCost,
		VariableCostPerUnit: in.VariableCostPerUnit,
		PricePerUnit:        in.PricePerUnit,
		InitialGuess:        in.InitialGuess,
		Tolerance:           in.Tolerance,
		SalesPerMonth:       in.SalesPerMonth,
	})
	if err != nil {
		undefined := outcome.Undefined(outcome.ReasonSolverFailed)
		if errors.Is(err, breakeven.ErrUndefined) {
			undefined = outcome.Undefined(outcome.ReasonPriceNotAboveVariableCost)
		}
		return BreakEven{
			Units:   undefined,
			Revenue: undefined,
			Months:  undefined,
			Error:   err.Error(),
		}
	}
	return BreakEven{
		Units:      outcome.Defined(be.Units),
		Revenue:    outcome.Defined(be.Revenue),
		Months:     be.Months,
		Iterations: be.Iterations,
	}
}
