package report

import (
	"bytes"
	"encoding/json"
	"net/http"

	"Impas/internal/calc/analysis"

	"go.uber.org/zap"
)

type Input struct {
	Meta
	Scenario analysis.Input `json:"input"`
}

type Handler struct {
	Log *zap.Logger
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := input.Scenario.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := Render(&buf, input.Meta, analysis.Calculate(input.Scenario)); err != nil {
		if h.Log != nil {
			h.Log.Error("report generation failed", zap.Error(err), zap.String("project", input.Project))
		}
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"break-even-report.pdf\"")
	w.Write(buf.Bytes())
}
