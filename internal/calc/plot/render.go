package plot

import (
	"fmt"
	"io"
	"math"

	"Impas/internal/calc/money"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var seriesColors = []drawing.Color{chart.ColorRed, chart.ColorBlue, chart.ColorGreen}

func rupiahTick(v interface{}) string {
	if f, ok := v.(float64); ok {
		return money.Grouped(f, 0)
	}
	return ""
}

// yRange keeps go-chart away from a zero-height range when every value is zero.
func yRange(values ...[]float64) *chart.ContinuousRange {
	lo, hi := 0.0, 1.0
	for _, vs := range values {
		for _, v := range vs {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	return &chart.ContinuousRange{Min: lo, Max: hi * 1.05}
}

func RenderLinePNG(w io.Writer, lc LineChart) error {
	if len(lc.Series) == 0 {
		return fmt.Errorf("line chart has no series")
	}
	var ys [][]float64
	series := make([]chart.Series, 0, len(lc.Series)+1)
	for i, s := range lc.Series {
		ys = append(ys, s.Y)
		series = append(series, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: s.X,
			YValues: s.Y,
			Style: chart.Style{
				StrokeColor: seriesColors[i%len(seriesColors)],
				StrokeWidth: 2,
			},
		})
	}
	if lc.Marker != nil {
		series = append(series, chart.AnnotationSeries{
			Annotations: []chart.Value2{{
				XValue: lc.Marker.X,
				YValue: lc.Marker.Y,
				Label:  fmt.Sprintf("%s: %s units", lc.Marker.Label, money.Units(lc.Marker.X)),
			}},
		})
	}

	graph := chart.Chart{
		Title:      lc.Title,
		Width:      900,
		Height:     500,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
		XAxis:      chart.XAxis{Name: lc.XLabel},
		YAxis:      chart.YAxis{Name: lc.YLabel, Range: yRange(ys...), ValueFormatter: rupiahTick},
		Series:     series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph.Render(chart.PNG, w)
}

func RenderBarPNG(w io.Writer, bc BarChart) error {
	if len(bc.Bars) == 0 {
		return fmt.Errorf("bar chart has no bars")
	}
	bars := make([]chart.Value, 0, len(bc.Bars))
	values := make([]float64, 0, len(bc.Bars))
	for i, b := range bc.Bars {
		values = append(values, b.Value)
		bars = append(bars, chart.Value{
			Label: b.Label,
			Value: b.Value,
			Style: chart.Style{
				FillColor:   seriesColors[i%len(seriesColors)],
				StrokeColor: seriesColors[i%len(seriesColors)],
			},
		})
	}
	graph := chart.BarChart{
		Title:      bc.Title,
		Width:      700,
		Height:     450,
		BarWidth:   120,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		YAxis:      chart.YAxis{Name: bc.YLabel, Range: yRange(values), ValueFormatter: rupiahTick},
		Bars:       bars,
	}
	return graph.Render(chart.PNG, w)
}
