package workbook

import (
	"fmt"
	"io"

	"Impas/internal/calc/analysis"
	"Impas/internal/calc/outcome"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet     = "Summary"
	sensitivitySheet = "Sensitivity"
)

// cell holds the number when defined, the undefined message otherwise.
func cell(v outcome.Value) interface{} {
	if f, ok := v.Float(); ok {
		return f
	}
	return v.Reason().Message()
}

func Export(w io.Writer, res analysis.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	summary := [][]interface{}{
		{"Metric", "Value"},
		{"Fixed cost", res.Input.FixedCost},
		{"Variable cost per unit", res.Input.VariableCostPerUnit},
		{"Price per unit", res.Input.PricePerUnit},
		{"Break-even units", cell(res.BreakEven.Units)},
		{"Break-even revenue", cell(res.BreakEven.Revenue)},
		{"Months to break even", cell(res.BreakEven.Months)},
		{"Profit margin %", cell(res.ProfitMargin)},
		{"Gross profit", res.Profit.Gross},
		{"Net profit", res.Profit.Net},
		{"Contribution margin", res.ContributionMargin},
		{"Additional revenue needed", res.AdditionalRevenue},
		{"Units for target profit", cell(res.TargetUnits)},
		{"ROI %", cell(res.ROI)},
		{"Payback years", cell(res.PaybackYears)},
	}
	if err := writeRows(f, summarySheet, summary); err != nil {
		return err
	}

	if _, err := f.NewSheet(sensitivitySheet); err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}
	table := [][]interface{}{{"Price", "Break-even units"}}
	for _, row := range res.Sensitivity {
		table = append(table, []interface{}{row.Price, cell(row.Units)})
	}
	if err := writeRows(f, sensitivitySheet, table); err != nil {
		return err
	}

	if err := f.SetColWidth(summarySheet, "A", "A", 28); err != nil {
		return fmt.Errorf("set width: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		addr, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, addr, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
