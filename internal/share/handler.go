package share

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"Impas/internal/calc/analysis"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Handler struct {
	Signer *Signer
	// PublicURL prefixes the returned link, e.g. https://impas.example.com
	PublicURL string
	Log       *zap.Logger
}

type CreateResponse struct {
	Token     string    `json:"token"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	input, ok := analysis.DecodeInput(w, r)
	if !ok {
		return
	}
	token, exp, err := h.Signer.Issue(input)
	if err != nil {
		if h.Log != nil {
			h.Log.Error("share token issue failed", zap.Error(err))
		}
		http.Error(w, "Share error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(CreateResponse{
		Token:     token,
		URL:       strings.TrimRight(h.PublicURL, "/") + "/api/share/" + token,
		ExpiresAt: exp,
	})
}

func (h *Handler) Open(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	input, err := h.Signer.Parse(token)
	if err != nil {
		if h.Log != nil {
			h.Log.Info("share token rejected", zap.Error(err))
		}
		http.Error(w, "Invalid or expired link", http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(analysis.Calculate(input))
}
