package workbook

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"Impas/internal/calc/analysis"

	"github.com/xuri/excelize/v2"
)

// Columns of an import sheet, after the header row.
var Columns = []string{
	"name", "fixed_cost", "variable_cost_per_unit", "price_per_unit",
	"total_revenue", "total_variable_cost", "tax_percent", "initial_investment",
	"annual_profit", "target_profit", "price_low", "price_high", "sales_per_month",
}

const (
	requiredColumns = 12
	priceLowColumn  = 10
	priceHighColumn = 11
)

type Row struct {
	Line  int
	Name  string
	Input analysis.Input
	Err   error
}

// Import reads scenarios from the first sheet. A malformed row is returned
// with Err set instead of failing the whole file.
func Import(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q has no data rows", sheet)
	}

	var out []Row
	for i := 1; i < len(rows); i++ {
		if isBlank(rows[i]) {
			continue
		}
		name, input, err := parseRow(rows[i])
		out = append(out, Row{Line: i + 1, Name: name, Input: input, Err: err})
	}
	return out, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseRow(row []string) (string, analysis.Input, error) {
	if len(row) < requiredColumns {
		return "", analysis.Input{}, fmt.Errorf("expected at least %d columns, got %d", requiredColumns, len(row))
	}
	name := strings.TrimSpace(row[0])
	nums := make([]float64, len(Columns)-1)
	var prices [2]int
	for c := 1; c < len(Columns); c++ {
		if c >= len(row) || strings.TrimSpace(row[c]) == "" {
			if c < requiredColumns {
				return name, analysis.Input{}, fmt.Errorf("%s is empty", Columns[c])
			}
			continue
		}
		if c == priceLowColumn || c == priceHighColumn {
			p, err := toInt(row[c])
			if err != nil {
				return name, analysis.Input{}, fmt.Errorf("%s: %w", Columns[c], err)
			}
			prices[c-priceLowColumn] = p
			continue
		}
		v, err := toFloat(row[c])
		if err != nil {
			return name, analysis.Input{}, fmt.Errorf("%s: %w", Columns[c], err)
		}
		nums[c-1] = v
	}
	return name, analysis.Input{
		FixedCost:           nums[0],
		VariableCostPerUnit: nums[1],
		PricePerUnit:        nums[2],
		TotalRevenue:        nums[3],
		TotalVariableCost:   nums[4],
		TaxPercent:          nums[5],
		InitialInvestment:   nums[6],
		AnnualProfit:        nums[7],
		TargetProfit:        nums[8],
		PriceRange:          analysis.PriceRange{Low: prices[0], High: prices[1]},
		SalesPerMonth:       nums[11],
	}, nil
}

// toInt accepts whole numbers only; price points are integers in thousands.
func toInt(s string) (int, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number in range", s)
	}
	return n, nil
}

func toFloat(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	return strconv.ParseFloat(s, 64)
}
