// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/cors"

	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/adapters/repository"
	service "github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/app"
	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/domain/model"
	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/domain/types"
)

// Dependencies required by HTTP handlers.
type Dependencies interface {
	TopN(ctx context.Context, n int) ([]Entry, error)
	Rank(ctx context.Context, wrestler string) (Entry, error)
	Ledger(ctx context.Context, wrestler string) ([]model.LedgerRecord, error)
	Reload(ctx context.Context) (service.ReloadReport, error)
}

// Entry mirrors the read shape returned by standings queries.
type Entry = types.Entry

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	leaderboardHandler *LeaderboardHandler
	rankHandler        *RankHandler
	ledgerHandler      *LedgerHandler
	reloadHandler      *ReloadHandler
	allowedOrigins     []string
	reloadQueue        ReloadQueue
}

// ServerOption applies a configuration option to the Server.
type ServerOption func(*Server)

// WithAllowedOrigins sets the CORS origins. Defaults to any origin.
func WithAllowedOrigins(origins []string) ServerOption {
	return func(s *Server) {
		if len(origins) > 0 {
			s.allowedOrigins = origins
		}
	}
}

// WithReloadQueue lets POST /reload?async=true hand the reload to a
// background worker.
func WithReloadQueue(q ReloadQueue) ServerOption {
	return func(s *Server) {
		s.reloadQueue = q
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int, opts ...ServerOption) *Server {
	s := &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		leaderboardHandler: NewLeaderboardHandler(deps, maxLimit),
		rankHandler:        NewRankHandler(deps),
		ledgerHandler:      NewLedgerHandler(deps),
		reloadHandler:      NewReloadHandler(deps),
		allowedOrigins:     []string{"*"},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.reloadHandler.queue = s.reloadQueue
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/rank/", MetricsMiddleware(s.rankHandler.HandleGetRank, "rank"))
	mux.HandleFunc("/ledger", MetricsMiddleware(s.ledgerHandler.HandleGetLedger, "ledger"))
	mux.HandleFunc("/reload", MetricsMiddleware(s.reloadHandler.HandlePostReload, "reload"))
}

// Handler returns mux wrapped with the CORS policy.
func (s *Server) Handler(mux *http.ServeMux) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	})
	return c.Handler(mux)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
