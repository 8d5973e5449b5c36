package breakeven

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"Impas/internal/calc/money"
	"Impas/internal/calc/rootfind"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateScenario(t *testing.T) {
	res, err := Calculate(Input{FixedCost: 10_000_000, VariableCostPerUnit: 30_000, PricePerUnit: 50_000})
	require.NoError(t, err)
	assert.Equal(t, "500.00", money.Units(res.Units))
	assert.Equal(t, "Rp25,000,000.00", money.Rupiah(res.Revenue))
	assert.Equal(t, 1, res.Iterations)
	assert.False(t, res.Months.IsDefined())
}

func TestCalculateCoversFixedCost(t *testing.T) {
	tests := []struct {
		fixed, vc, price float64
	}{
		{fixed: 0, vc: 0, price: 1},
		{fixed: 1_000, vc: 0, price: 3},
		{fixed: 123_456.78, vc: 12.5, price: 19.99},
		{fixed: 5_000_000, vc: 49_999, price: 50_000},
		{fixed: 75, vc: 2, price: 2.5},
	}
	for _, tt := range tests {
		res, err := Calculate(Input{FixedCost: tt.fixed, VariableCostPerUnit: tt.vc, PricePerUnit: tt.price})
		require.NoError(t, err)
		assert.InDelta(t, tt.fixed, res.Units*(tt.price-tt.vc), rootfind.DefaultTolerance)
		assert.InDelta(t, res.Units*tt.price, res.Revenue, 1e-9)
	}
}

func TestCalculateMonthsToBreakEven(t *testing.T) {
	res, err := Calculate(Input{FixedCost: 10_000_000, VariableCostPerUnit: 30_000, PricePerUnit: 50_000, SalesPerMonth: 40})
	require.NoError(t, err)
	months, ok := res.Months.Float()
	require.True(t, ok)
	assert.InDelta(t, 12.5, months, 1e-9)
}

func TestCalculateUndefined(t *testing.T) {
	_, err := Calculate(Input{FixedCost: 100, VariableCostPerUnit: 60, PricePerUnit: 50})
	assert.ErrorIs(t, err, ErrUndefined)
	assert.NotErrorIs(t, err, rootfind.ErrZeroDerivative)

	flat := []Input{
		{FixedCost: 100, VariableCostPerUnit: 50, PricePerUnit: 50},
		{FixedCost: 0, VariableCostPerUnit: 50, PricePerUnit: 50},
		{FixedCost: 0.0005, VariableCostPerUnit: 0, PricePerUnit: 0},
		{FixedCost: 0, VariableCostPerUnit: 0, PricePerUnit: 0},
	}
	for _, in := range flat {
		res, err := Calculate(in)
		assert.ErrorIs(t, err, ErrUndefined, "%+v", in)
		assert.ErrorIs(t, err, rootfind.ErrZeroDerivative, "%+v", in)
		assert.Zero(t, res.Units)
	}
}

func TestCalculateRejectsNegatives(t *testing.T) {
	_, err := Calculate(Input{FixedCost: -1, PricePerUnit: 10})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUndefined)
}

func TestHandlerCalc(t *testing.T) {
	body, _ := json.Marshal(Input{FixedCost: 10_000_000, VariableCostPerUnit: 30_000, PricePerUnit: 50_000, SalesPerMonth: 100})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/tools/breakeven/calc", bytes.NewReader(body))

	(&Handler{}).Calc(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var res Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.InDelta(t, 500.0, res.Units, 1e-9)
	months, ok := res.Months.Float()
	require.True(t, ok)
	assert.InDelta(t, 5.0, months, 1e-9)
}

func TestHandlerUndefined(t *testing.T) {
	body, _ := json.Marshal(Input{FixedCost: 1, VariableCostPerUnit: 10, PricePerUnit: 10})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/tools/breakeven/calc", bytes.NewReader(body))

	(&Handler{}).Calc(rec, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
