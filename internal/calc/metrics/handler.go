package metrics

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"

	"Impas/internal/calc/outcome"
)

type Input struct {
	PricePerUnit        float64 `json:"price_per_unit"`
	VariableCostPerUnit float64 `json:"variable_cost_per_unit"`
	TotalRevenue        float64 `json:"total_revenue"`
	TotalVariableCost   float64 `json:"total_variable_cost"`
	FixedCost           float64 `json:"fixed_cost"`
	TaxPercent          float64 `json:"tax_percent"`
	InitialInvestment   float64 `json:"initial_investment"`
	AnnualProfit        float64 `json:"annual_profit"`
	TargetProfit        float64 `json:"target_profit"`
}

type Result struct {
	ProfitMargin       outcome.Value `json:"profit_margin_pct"`
	Profit             ProfitSummary `json:"profit"`
	ContributionMargin float64       `json:"contribution_margin"`
	AdditionalRevenue  float64       `json:"additional_revenue"`
	TargetUnits        outcome.Value `json:"target_units"`
	ROI                outcome.Value `json:"roi_pct"`
	PaybackYears       outcome.Value `json:"payback_years"`
}

// Calculate evaluates every metric independently. Current profit for the
// additional-revenue gap is the net profit after tax.
func Calculate(in Input) (Result, error) {
	for _, v := range []float64{in.PricePerUnit, in.VariableCostPerUnit, in.TotalRevenue, in.TotalVariableCost,
		in.FixedCost, in.TaxPercent, in.InitialInvestment, in.AnnualProfit, in.TargetProfit} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return Result{}, fmt.Errorf("invalid input")
		}
	}
	profit := Profit(in.TotalRevenue, in.TotalVariableCost, in.FixedCost, in.TaxPercent)
	cm := ContributionMargin(in.PricePerUnit, in.VariableCostPerUnit)
	return Result{
		ProfitMargin:       ProfitMargin(in.PricePerUnit, in.VariableCostPerUnit),
		Profit:             profit,
		ContributionMargin: cm,
		AdditionalRevenue:  AdditionalRevenue(profit.Net, in.TargetProfit),
		TargetUnits:        TargetUnits(in.TargetProfit, in.FixedCost, cm),
		ROI:                ROI(in.InitialInvestment, in.AnnualProfit),
		PaybackYears:       PaybackPeriod(in.InitialInvestment, in.AnnualProfit),
	}, nil
}

type Handler struct{}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Calculate(input)
	if err != nil {
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
