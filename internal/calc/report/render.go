package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"Impas/internal/calc/analysis"
	"Impas/internal/calc/money"
	"Impas/internal/calc/outcome"
	"Impas/internal/calc/plot"

	"github.com/phpdave11/gofpdf"
)

type Meta struct {
	Project string    `json:"project"`
	Author  string    `json:"author"`
	Title   string    `json:"title"`
	Notes   string    `json:"notes"`
	Date    time.Time `json:"-"`
}

// core fonts are cp1252; keep the text inside it
var asciiReplacer = strings.NewReplacer("≤", "<=", "≥", ">=")

func Render(w io.Writer, meta Meta, res analysis.Result) error {
	if meta.Title == "" {
		meta.Title = "Break-Even Analysis"
	}
	if meta.Date.IsZero() {
		meta.Date = time.Now()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(s string) string { return tr(asciiReplacer.Replace(s)) }

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, text(meta.Title))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, text(fmt.Sprintf("Project: %s", meta.Project)))
	pdf.Ln(6)
	pdf.Cell(0, 6, text(fmt.Sprintf("Author: %s", meta.Author)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", meta.Date.Format("2006-01-02")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Summary")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
	for _, line := range SummaryLines(res) {
		pdf.CellFormat(80, 6, text(line[0]), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, text(line[1]), "", 1, "L", false, 0, "")
	}
	if res.BreakEven.Error != "" {
		pdf.SetTextColor(180, 0, 0)
		pdf.MultiCell(0, 6, text("Break-even: "+res.BreakEven.Error), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
	}
	if meta.Notes != "" {
		pdf.Ln(4)
		pdf.MultiCell(0, 6, text(meta.Notes), "", "L", false)
	}

	if err := addChart(pdf, "cost-revenue", func(b *bytes.Buffer) error {
		return plot.RenderLinePNG(b, res.CostRevenueChart)
	}); err != nil {
		return err
	}
	if err := addChart(pdf, "comparison", func(b *bytes.Buffer) error {
		return plot.RenderBarPNG(b, res.ComparisonChart)
	}); err != nil {
		return err
	}

	if len(res.Sensitivity) > 0 {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 13)
		pdf.Cell(0, 8, "Price sensitivity")
		pdf.Ln(10)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(60, 7, "Price (Rp)", "1", 0, "C", false, 0, "")
		pdf.CellFormat(80, 7, "Break-even units", "1", 1, "C", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for _, row := range res.Sensitivity {
			pdf.CellFormat(60, 6, money.Grouped(row.Price, 0), "1", 0, "R", false, 0, "")
			pdf.CellFormat(80, 6, text(row.Units.Format(money.Units)), "1", 1, "R", false, 0, "")
		}
	}

	return pdf.Output(w)
}

func addChart(pdf *gofpdf.Fpdf, name string, render func(*bytes.Buffer) error) error {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return fmt.Errorf("render %s chart: %w", name, err)
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	pdf.RegisterImageOptionsReader(name, opts, &buf)
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("embed %s chart: %w", name, err)
	}
	pdf.Ln(4)
	pdf.ImageOptions(name, 15, pdf.GetY(), 180, 0, true, opts, 0, "")
	return nil
}

// SummaryLines pairs each headline figure with its display text.
func SummaryLines(res analysis.Result) [][2]string {
	pct := func(v outcome.Value) string { return v.Format(money.Percent) }
	years := func(f float64) string { return fmt.Sprintf("%.2f years", f) }
	months := func(f float64) string { return fmt.Sprintf("%.2f months", f) }
	return [][2]string{
		{"Break-even units", res.BreakEven.Units.Format(money.Units)},
		{"Break-even revenue", res.BreakEven.Revenue.Format(money.Rupiah)},
		{"Time to break even", res.BreakEven.Months.Format(months)},
		{"Profit margin", pct(res.ProfitMargin)},
		{"Gross profit", money.Rupiah(res.Profit.Gross)},
		{"Net profit after tax", money.Rupiah(res.Profit.Net)},
		{"Contribution margin", money.Rupiah(res.ContributionMargin)},
		{"Additional revenue needed", money.Rupiah(res.AdditionalRevenue)},
		{"Units for target profit", res.TargetUnits.Format(money.Units)},
		{"ROI", pct(res.ROI)},
		{"Payback period", res.PaybackYears.Format(years)},
	}
}
