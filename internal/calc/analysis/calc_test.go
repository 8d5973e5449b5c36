package analysis

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"Impas/internal/calc/outcome"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenario() Input {
	return Input{
		FixedCost:           10_000_000,
		VariableCostPerUnit: 30_000,
		PricePerUnit:        50_000,
		TotalRevenue:        50_000_000,
		TotalVariableCost:   30_000_000,
		TaxPercent:          10,
		InitialInvestment:   0,
		AnnualProfit:        9_000_000,
		TargetProfit:        15_000_000,
		PriceRange:          PriceRange{Low: 25, High: 60},
		SalesPerMonth:       50,
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, scenario().Validate())

	tests := []struct {
		name   string
		mutate func(*Input)
		msg    string
	}{
		{name: "negative fixed cost", mutate: func(in *Input) { in.FixedCost = -1 }, msg: "fixed_cost must not be negative"},
		{name: "nan price", mutate: func(in *Input) { in.PricePerUnit = math.NaN() }, msg: "price_per_unit must be a finite number"},
		{name: "reversed range", mutate: func(in *Input) { in.PriceRange = PriceRange{Low: 10, High: 5} }, msg: "price_range.low must not exceed price_range.high"},
		{name: "negative range", mutate: func(in *Input) { in.PriceRange.Low = -3 }, msg: "price_range.low must not be negative"},
		{name: "huge range", mutate: func(in *Input) { in.PriceRange = PriceRange{Low: 0, High: math.MaxInt} }, msg: "price_range spans more than"},
		{name: "range one too wide", mutate: func(in *Input) { in.PriceRange = PriceRange{Low: 0, High: 10_000} }, msg: "price_range spans more than"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := scenario()
			tt.mutate(&in)
			err := in.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestCalculateScenario(t *testing.T) {
	res := Calculate(scenario())

	units, ok := res.BreakEven.Units.Float()
	require.True(t, ok)
	assert.InDelta(t, 500.0, units, 1e-9)
	revenue, ok := res.BreakEven.Revenue.Float()
	require.True(t, ok)
	assert.InDelta(t, 25_000_000.0, revenue, 1e-6)
	months, ok := res.BreakEven.Months.Float()
	require.True(t, ok)
	assert.InDelta(t, 10.0, months, 1e-9)
	assert.Empty(t, res.BreakEven.Error)

	margin, ok := res.ProfitMargin.Float()
	require.True(t, ok)
	assert.Equal(t, 40.0, margin)

	assert.Equal(t, 20_000_000.0, res.Profit.Gross)
	assert.InDelta(t, 9_000_000.0, res.Profit.Net, 1e-6)
	assert.Equal(t, 40_000_000.0, res.TotalCost)
	assert.Equal(t, 20_000.0, res.ContributionMargin)
	assert.InDelta(t, 6_000_000.0, res.AdditionalRevenue, 1e-6)

	target, ok := res.TargetUnits.Float()
	require.True(t, ok)
	assert.Equal(t, 1250.0, target)

	assert.Equal(t, outcome.ReasonInvestmentNotPositive, res.ROI.Reason())
	assert.Equal(t, "undefined (investment ≤ 0)", res.ROI.String())
	assert.True(t, res.PaybackYears.IsDefined())

	assert.Len(t, res.Sensitivity, 36)
	assert.Equal(t, 25_000.0, res.Sensitivity[0].Price)
	assert.False(t, res.Sensitivity[0].Units.IsDefined())

	require.NotNil(t, res.CostRevenueChart.Marker)
	assert.Len(t, res.ComparisonChart.Bars, 3)
}

func TestCalculateUndefinedBreakEvenDoesNotBlockOthers(t *testing.T) {
	in := scenario()
	in.PricePerUnit = 30_000
	in.InitialInvestment = 36_000_000

	res := Calculate(in)

	assert.Equal(t, outcome.ReasonPriceNotAboveVariableCost, res.BreakEven.Units.Reason())
	assert.Contains(t, res.BreakEven.Error, "derivative is zero")
	assert.Equal(t, outcome.ReasonPriceNotAboveVariableCost, res.ProfitMargin.Reason())
	assert.Equal(t, outcome.ReasonContributionNotPositive, res.TargetUnits.Reason())

	roi, ok := res.ROI.Float()
	require.True(t, ok)
	assert.InDelta(t, 25.0, roi, 1e-9)
	years, ok := res.PaybackYears.Float()
	require.True(t, ok)
	assert.InDelta(t, 4.0, years, 1e-9)

	assert.Nil(t, res.CostRevenueChart.Marker)
	assert.NotEmpty(t, res.Sensitivity)
}

func TestCalculateFlatCostLineIsUndefined(t *testing.T) {
	for _, in := range []Input{
		{FixedCost: 0, VariableCostPerUnit: 50, PricePerUnit: 50},
		{FixedCost: 0.0005, VariableCostPerUnit: 0, PricePerUnit: 0},
		{},
	} {
		res := Calculate(in)
		assert.Equal(t, outcome.ReasonPriceNotAboveVariableCost, res.BreakEven.Units.Reason(), "%+v", in)
		assert.Equal(t, outcome.ReasonPriceNotAboveVariableCost, res.BreakEven.Revenue.Reason(), "%+v", in)
		assert.False(t, res.ProfitMargin.IsDefined(), "%+v", in)
		assert.Nil(t, res.CostRevenueChart.Marker)
	}
}

func TestHandlerRejectsHugePriceRange(t *testing.T) {
	in := scenario()
	in.PriceRange = PriceRange{Low: 0, High: math.MaxInt}
	body, _ := json.Marshal(in)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/tools/analysis/calc", bytes.NewReader(body))

	assert.NotPanics(t, func() { (&Handler{}).Calc(rec, req) })
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerCalc(t *testing.T) {
	body, _ := json.Marshal(scenario())
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/tools/analysis/calc", bytes.NewReader(body))

	(&Handler{}).Calc(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var raw map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&raw))
	assert.JSONEq(t, `{"defined":false,"reason":"investment_not_positive","message":"undefined (investment ≤ 0)"}`, string(raw["roi_pct"]))
	assert.JSONEq(t, `{"defined":true,"value":40}`, string(raw["profit_margin_pct"]))
}

func TestHandlerRejectsInvalidInput(t *testing.T) {
	in := scenario()
	in.TaxPercent = -5
	body, _ := json.Marshal(in)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/tools/analysis/calc", bytes.NewReader(body))

	(&Handler{}).Calc(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "tax_percent must not be negative")
}

func TestHandlerChart(t *testing.T) {
	for _, kind := range []string{"", "cost-revenue", "comparison"} {
		body, _ := json.Marshal(scenario())
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/tools/chart?kind="+kind, bytes.NewReader(body))

		(&Handler{}).Chart(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, "kind %q", kind)
		assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
		assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))
	}

	body, _ := json.Marshal(scenario())
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/tools/chart?kind=pie", bytes.NewReader(body))
	(&Handler{}).Chart(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
