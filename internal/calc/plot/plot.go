// Package plot builds the chart payloads of an analysis and renders them to PNG.
package plot

import (
	"math"

	"Impas/internal/calc/outcome"
)

const (
	samples         = 51
	defaultMaxUnits = 1000
	minimumMaxUnits = 10
)

type Series struct {
	Name string    `json:"name"`
	X    []float64 `json:"x"`
	Y    []float64 `json:"y"`
}

type Marker struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label"`
}

type LineChart struct {
	Title  string   `json:"title"`
	XLabel string   `json:"x_label"`
	YLabel string   `json:"y_label"`
	Series []Series `json:"series"`
	Marker *Marker  `json:"marker,omitempty"`
}

type Bar struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type BarChart struct {
	Title  string `json:"title"`
	YLabel string `json:"y_label"`
	Bars   []Bar  `json:"bars"`
}

// CostRevenue samples total cost and total revenue over 0..2x the break-even
// units, or 0..1000 units when there is no break-even point.
func CostRevenue(fixedCost, variableCostPerUnit, price float64, breakEvenUnits outcome.Value) LineChart {
	maxUnits := float64(defaultMaxUnits)
	units, ok := breakEvenUnits.Float()
	if ok {
		maxUnits = math.Max(math.Ceil(2*units), minimumMaxUnits)
	}

	xs := make([]float64, samples)
	cost := make([]float64, samples)
	revenue := make([]float64, samples)
	for i := range xs {
		u := maxUnits * float64(i) / float64(samples-1)
		xs[i] = u
		cost[i] = fixedCost + variableCostPerUnit*u
		revenue[i] = price * u
	}

	chart := LineChart{
		Title:  "Cost and revenue by units sold",
		XLabel: "Units",
		YLabel: "Rp",
		Series: []Series{
			{Name: "Total cost", X: xs, Y: cost},
			{Name: "Total revenue", X: xs, Y: revenue},
		},
	}
	if ok {
		chart.Marker = &Marker{X: units, Y: price * units, Label: "Break-even"}
	}
	return chart
}

func Comparison(revenue, totalCost, netProfit float64) BarChart {
	return BarChart{
		Title:  "Revenue, cost and profit",
		YLabel: "Rp",
		Bars: []Bar{
			{Label: "Revenue", Value: revenue},
			{Label: "Total cost", Value: totalCost},
			{Label: "Net profit", Value: netProfit},
		},
	}
}
