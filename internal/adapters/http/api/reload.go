package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/adapters/mq/queue"
	service "github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/app"
)

// ReloadDependencies defines the interface for season reloads.
type ReloadDependencies interface {
	Reload(ctx context.Context) (service.ReloadReport, error)
}

// ReloadQueue accepts reload requests for background processing.
type ReloadQueue interface {
	Enqueue(ctx context.Context, t queue.Trigger) (string, error)
}

// ReloadHandler re-reads and re-scores the season on demand.
type ReloadHandler struct {
	deps  ReloadDependencies
	queue ReloadQueue
}

// QueuedReload is the body of an accepted async reload.
type QueuedReload struct {
	Trigger queue.Trigger `json:"trigger"`
	Outcome string        `json:"outcome"`
}

// NewReloadHandler creates a new reload handler.
func NewReloadHandler(deps ReloadDependencies) *ReloadHandler {
	return &ReloadHandler{deps: deps}
}

// HandlePostReload handles POST /reload requests. With async=true the
// reload is queued and the handler answers 202 without waiting.
func (h *ReloadHandler) HandlePostReload(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_reload"
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}

	if raw := r.URL.Query().Get("async"); raw != "" {
		async, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_async", WrapKind(op, ErrBadRequest, err))
			return
		}
		if async {
			h.enqueue(w, r)
			return
		}
	}

	report, err := h.deps.Reload(r.Context())
	if err != nil {
		if errors.Is(err, service.ErrNotStarted) {
			writeError(w, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrUnavailable, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "reload_failed", err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *ReloadHandler) enqueue(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_reload_async"
	if h.queue == nil {
		writeError(w, http.StatusServiceUnavailable, "async_unavailable", NewKind(op, ErrUnavailable))
		return
	}
	t := queue.NewTrigger(queue.ReasonRequest)
	outcome, err := h.queue.Enqueue(r.Context(), t)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "async_unavailable", WrapKind(op, ErrUnavailable, err))
		return
	}
	writeJSON(w, http.StatusAccepted, QueuedReload{Trigger: t, Outcome: outcome})
}
