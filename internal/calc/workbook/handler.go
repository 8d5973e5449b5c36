package workbook

import (
	"bytes"
	"encoding/json"
	"net/http"

	"Impas/internal/calc/analysis"
	"Impas/internal/calc/batch"

	"go.uber.org/zap"
)

const MaxUploadSize = 10 << 20 // 10MB

type Handler struct {
	Log *zap.Logger
}

func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	rows, err := Import(file)
	if err != nil {
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}
	if len(rows) > batch.MaxItems {
		http.Error(w, "Too many rows", http.StatusBadRequest)
		return
	}

	items := make([]batch.Item, 0, len(rows))
	for i, row := range rows {
		if row.Err != nil {
			items = append(items, batch.Item{Index: i, Name: row.Name, Error: row.Err.Error()})
			continue
		}
		items = append(items, batch.Evaluate(i, row.Name, row.Input))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(batch.Summarize(items))
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	input, ok := analysis.DecodeInput(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := Export(&buf, analysis.Calculate(input)); err != nil {
		if h.Log != nil {
			h.Log.Error("workbook export failed", zap.Error(err))
		}
		http.Error(w, "Export error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\"break-even.xlsx\"")
	w.Write(buf.Bytes())
}
