package sensitivity

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

func TestPricePoints(t *testing.T) {
	points, err := PricePoints(28, 32)
	require.NoError(t, err)
	assert.Equal(t, []int{28, 29, 30, 31, 32}, points)

	points, err = PricePoints(7, 7)
	require.NoError(t, err)
	assert.Equal(t, []int{7}, points)

	_, err = PricePoints(10, 9)
	assert.Error(t, err)

	_, err = PricePoints(0, MaxPoints)
	assert.Error(t, err)

	points, err = PricePoints(1, MaxPoints)
	require.NoError(t, err)
	assert.Len(t, points, MaxPoints)

	_, err = PricePoints(-1, 5)
	assert.Error(t, err)
}

func TestPricePointsHugeRange(t *testing.T) {
	for _, r := range [][2]int{{0, math.MaxInt}, {1, math.MaxInt}, {math.MaxInt - 5, math.MaxInt}} {
		assert.NotPanics(t, func() {
			points, err := PricePoints(r[0], r[1])
			if r[1]-r[0] >= MaxPoints {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Len(t, points, r[1]-r[0]+1)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	rows := Build([]int{50, 30, 20, 40, 33}, 10_000_000, 30_000)
	require.Len(t, rows, 5)

	wantPrices := []float64{50_000, 30_000, 20_000, 40_000, 33_000}
	for i, row := range rows {
		assert.Equal(t, wantPrices[i], row.Price)
	}

	units, ok := rows[0].Units.Float()
	require.True(t, ok)
	assert.Equal(t, 500.0, units)

	assert.Equal(t, outcome.ReasonPriceNotAboveVariableCost, rows[1].Units.Reason())
	assert.Equal(t, outcome.ReasonPriceNotAboveVariableCost, rows[2].Units.Reason())

	units, ok = rows[3].Units.Float()
	require.True(t, ok)
	assert.Equal(t, 1000.0, units)

	units, ok = rows[4].Units.Float()
	require.True(t, ok)
	assert.Equal(t, 3333.33, units)
}

func TestCalculateRowCountMatchesRange(t *testing.T) {
	for _, r := range [][2]int{{0, 0}, {1, 10}, {25, 75}} {
		res, err := Calculate(Input{PriceLow: r[0], PriceHigh: r[1], FixedCost: 1_000, VariableCostPerUnit: 500})
		require.NoError(t, err)
		assert.Len(t, res.Rows, r[1]-r[0]+1)
	}
}

func TestHandlerCalc(t *testing.T) {
	body, _ := json.Marshal(Input{PriceLow: 30, PriceHigh: 35, FixedCost: 10_000_000, VariableCostPerUnit: 30_000})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/tools/sensitivity/calc", bytes.NewReader(body))

	(&Handler{}).Calc(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var res Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	require.Len(t, res.Rows, 6)
	assert.False(t, res.Rows[0].Units.IsDefined())
	assert.True(t, res.Rows[5].Units.IsDefined())
}

func TestHandlerInvalidRange(t *testing.T) {
	body, _ := json.Marshal(Input{PriceLow: 40, PriceHigh: 30})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/tools/sensitivity/calc", bytes.NewReader(body))

	(&Handler{}).Calc(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
