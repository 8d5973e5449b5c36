package sensitivity

import (
	"fmt"

	"Impas/internal/calc/money"
	"Impas/internal/calc/outcome"
)

// Price points are entered in thousands of currency units.
const PriceScale = 1000

// MaxPoints bounds the table so a wide range cannot blow up a response.
const MaxPoints = 10_000

type Row struct {
	Price float64       `json:"price"`
	Units outcome.Value `json:"break_even_units"`
}

type Input struct {
	PriceLow            int     `json:"price_low"`
	PriceHigh           int     `json:"price_high"`
	FixedCost           float64 `json:"fixed_cost"`
	VariableCostPerUnit float64 `json:"variable_cost_per_unit"`
}

type Result struct {
	Rows  []Row  `json:"rows"`
	Notes string `json:"notes"`
}

// PricePoints lists every integer in [low, high].
func PricePoints(low, high int) ([]int, error) {
	if low < 0 {
		return nil, fmt.Errorf("price range low %d is negative", low)
	}
	if low > high {
		return nil, fmt.Errorf("price range low %d is above high %d", low, high)
	}
	// high-low cannot overflow once 0 <= low <= high
	if high-low >= MaxPoints {
		return nil, fmt.Errorf("price range spans more than %d points", MaxPoints)
	}
	points := make([]int, 0, high-low+1)
	for i := 0; i <= high-low; i++ {
		points = append(points, low+i)
	}
	return points, nil
}

// Build returns one row per point, in input order.
func Build(points []int, fixedCost, variableCostPerUnit float64) []Row {
	rows := make([]Row, 0, len(points))
	for _, p := range points {
		price := float64(p) * PriceScale
		row := Row{Price: price}
		if price > variableCostPerUnit {
			row.Units = outcome.Defined(money.Round2(fixedCost / (price - variableCostPerUnit)))
		} else {
			row.Units = outcome.Undefined(outcome.ReasonPriceNotAboveVariableCost)
		}
		rows = append(rows, row)
	}
	return rows
}

func Calculate(in Input) (Result, error) {
	if in.FixedCost < 0 || in.VariableCostPerUnit < 0 || in.PriceLow < 0 {
		return Result{}, fmt.Errorf("invalid input")
	}
	points, err := PricePoints(in.PriceLow, in.PriceHigh)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Rows:  Build(points, in.FixedCost, in.VariableCostPerUnit),
		Notes: "Price points are in thousands; break-even units per scaled price.",
	}, nil
}
