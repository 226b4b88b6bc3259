package api

import (
	"context"
	"net/http"

	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/domain/model"
)

// LedgerDependencies defines the interface for ledger reads.
type LedgerDependencies interface {
	Ledger(ctx context.Context, wrestler string) ([]model.LedgerRecord, error)
}

// LedgerHandler serves the per-match point ledger.
type LedgerHandler struct {
	deps LedgerDependencies
}

// NewLedgerHandler creates a new ledger handler.
func NewLedgerHandler(deps LedgerDependencies) *LedgerHandler {
	return &LedgerHandler{deps: deps}
}

// HandleGetLedger handles GET /ledger[?wrestler=X] requests.
func (h *LedgerHandler) HandleGetLedger(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	records, err := h.deps.Ledger(r.Context(), r.URL.Query().Get("wrestler"))
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}
