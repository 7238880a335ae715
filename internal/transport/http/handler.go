package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"payhold/internal/service"
	"payhold/internal/store"
)

// Handler serves the operational HTTP surface: health, metrics and a
// read-only balance probe. Ledger may be nil on binaries that carry no
// ledger state.
type Handler struct {
	ledger service.Ledger
}

func NewHandler(ledger service.Ledger) *Handler {
	return &Handler{ledger: ledger}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.Health)
	if h.ledger != nil {
		mux.HandleFunc("GET /balance", h.Balance)
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Balance(w http.ResponseWriter, r *http.Request) {
	accountID := r.URL.Query().Get("account_id")
	if accountID == "" {
		h.respondError(w, http.StatusBadRequest, "missing_account_id")
		return
	}
	res, err := h.ledger.CheckBalance(r.Context(), accountID, 0)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			h.respondError(w, http.StatusNotFound, "account_not_found")
			return
		}
		h.respondError(w, http.StatusInternalServerError, "internal_error")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]int64{"balance": res.CurrentBalance})
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
