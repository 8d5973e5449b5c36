package analysis

import (
	"bytes"
	"encoding/json"
	"net/http"

	"Impas/internal/calc/plot"

	"go.uber.org/zap"
)

type Handler struct {
	Log *zap.Logger
}

func (h *Handler) logger() *zap.Logger {
	if h.Log == nil {
		return zap.NewNop()
	}
	return h.Log
}

// DecodeInput reads and validates an Input from a request body.
func DecodeInput(w http.ResponseWriter, r *http.Request) (Input, bool) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return Input{}, false
	}
	if err := input.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return Input{}, false
	}
	return input, true
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	input, ok := DecodeInput(w, r)
	if !ok {
		return
	}
	res := Calculate(input)
	if res.BreakEven.Error != "" {
		h.logger().Debug("break-even undefined", zap.String("reason", res.BreakEven.Error))
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

// Chart renders one of the analysis charts as PNG; kind is cost-revenue (default) or comparison.
func (h *Handler) Chart(w http.ResponseWriter, r *http.Request) {
	input, ok := DecodeInput(w, r)
	if !ok {
		return
	}
	res := Calculate(input)

	var buf bytes.Buffer
	var err error
	switch kind := r.URL.Query().Get("kind"); kind {
	case "", "cost-revenue":
		err = plot.RenderLinePNG(&buf, res.CostRevenueChart)
	case "comparison":
		err = plot.RenderBarPNG(&buf, res.ComparisonChart)
	default:
		http.Error(w, "Unknown chart kind", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger().Error("chart render failed", zap.Error(err))
		http.Error(w, "Chart rendering error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}
