package breakeven

import (
	"errors"
	"fmt"

	"Impas/internal/calc/outcome"
	"Impas/internal/calc/rootfind"
)

const DefaultInitialGuess = 100

var ErrUndefined = errors.New("break-even undefined: price must be above variable cost per unit")

type Input struct {
	FixedCost           float64 `json:"fixed_cost"`
	VariableCostPerUnit float64 `json:"variable_cost_per_unit"`
	PricePerUnit        float64 `json:"price_per_unit"`
	InitialGuess        float64 `json:"initial_guess"`
	Tolerance           float64 `json:"tolerance"`
	SalesPerMonth       float64 `json:"sales_per_month"`
}

type Result struct {
	Units      float64 `json:"units"`
	Revenue    float64 `json:"revenue"`
	Iterations int     `json:"iterations"`
	// Months is undefined unless sales per month were given.
	Months outcome.Value `json:"months_to_break_even"`
	Notes  string        `json:"notes"`
}

// Calculate solves fixed + var*u = price*u for u with Newton-Raphson.
func Calculate(in Input) (Result, error) {
	if in.FixedCost < 0 || in.VariableCostPerUnit < 0 || in.PricePerUnit < 0 || in.SalesPerMonth < 0 {
		return Result{}, fmt.Errorf("invalid input")
	}
	if in.PricePerUnit < in.VariableCostPerUnit {
		return Result{}, ErrUndefined
	}
	// f is constant here; a fixed cost under tol would pass at the initial guess
	if in.PricePerUnit == in.VariableCostPerUnit {
		return Result{}, fmt.Errorf("%w: %w", ErrUndefined, rootfind.ErrZeroDerivative)
	}
	if in.InitialGuess <= 0 {
		in.InitialGuess = DefaultInitialGuess
	}
	if in.Tolerance <= 0 {
		in.Tolerance = rootfind.DefaultTolerance
	}

	totalCost := func(u float64) float64 { return in.FixedCost + in.VariableCostPerUnit*u }
	totalRevenue := func(u float64) float64 { return in.PricePerUnit * u }
	f := func(u float64) float64 { return totalCost(u) - totalRevenue(u) }
	df := func(float64) float64 { return in.VariableCostPerUnit - in.PricePerUnit }

	root, err := rootfind.Newton(f, df, in.InitialGuess, in.Tolerance, rootfind.DefaultMaxIterations)
	if err != nil {
		return Result{}, fmt.Errorf("solve break-even: %w", err)
	}

	res := Result{
		Units:      root.Root,
		Revenue:    totalRevenue(root.Root),
		Iterations: root.Iterations,
		Months:     outcome.Undefined(outcome.ReasonSalesPerMonthNotPositive),
		Notes:      "Units where total cost meets total revenue.",
	}
	if in.SalesPerMonth > 0 {
		res.Months = outcome.Defined(root.Root / in.SalesPerMonth)
	}
	return res, nil
}
