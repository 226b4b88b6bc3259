// Package service loads a season, scores it and serves the results to the
// HTTP API.
package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/adapters/repository"
	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/adapters/source"
	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/domain/aggregate"
	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/domain/dedupe"
	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/domain/model"
	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/domain/scoring"
	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/domain/types"
	"github.com/draftasticwrestling/wrestling-boxscore-sub001/pkg/logger"
	"github.com/draftasticwrestling/wrestling-boxscore-sub001/pkg/metrics"
)

// LedgerSink persists a computed ledger.
type LedgerSink interface {
	SaveLedger(ctx context.Context, runID string, records []model.LedgerRecord) error
}

// ReloadReport summarizes one reload.
type ReloadReport struct {
	RunID         string        `json:"runId"`
	Events        int           `json:"events"`
	Duplicates    int           `json:"duplicates"`
	MatchesScored int           `json:"matchesScored"`
	Records       int           `json:"records"`
	Wrestlers     int           `json:"wrestlers"`
	Warnings      int           `json:"warnings"`
	Duration      time.Duration `json:"durationNs"`
}

// season is the published result of a reload.
type season struct {
	report     ReloadReport
	loadedAt   time.Time
	records    []model.LedgerRecord
	warnings   []model.Warning
	byWrestler map[string][]int // lower-cased name -> record indices
}

// Service implements the API dependencies for the boxscore system.
type Service struct {
	mu       sync.RWMutex
	reloadMu sync.Mutex

	loader    source.Loader
	sink      LedgerSink
	standings repository.Store
	calc      *scoring.Calculator
	maxLimit  int

	started bool
	current *season

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLoader sets where the season is read from.
func WithLoader(l source.Loader) Option {
	return func(s *Service) {
		s.loader = l
	}
}

// WithLedgerSink persists every computed ledger.
func WithLedgerSink(sink LedgerSink) Option {
	return func(s *Service) {
		s.sink = sink
	}
}

// WithStore replaces the standings store.
func WithStore(st repository.Store) Option {
	return func(s *Service) {
		if st != nil {
			s.standings = st
		}
	}
}

// WithCalculator scores with a custom rule table.
func WithCalculator(c *scoring.Calculator) Option {
	return func(s *Service) {
		if c != nil {
			s.calc = c
		}
	}
}

// WithMaxLeaderboardLimit caps TopN.
func WithMaxLeaderboardLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxLimit = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		calc:     scoring.New(),
		maxLimit: 100,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.standings == nil {
		s.standings = repository.NewTreapStore(repository.WithMaxLimit(s.maxLimit))
	}
	return s
}

// Start loads and publishes the first season.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.loader == nil {
		s.mu.Unlock()
		return ErrNoLoader
	}
	s.started = true
	s.mu.Unlock()

	s.logger.Info(ctx, "starting boxscore service...")
	report, err := s.Reload(ctx)
	if err != nil {
		s.mu.Lock()
		s.started = false
		s.mu.Unlock()
		return err
	}
	s.logger.Info(ctx, "boxscore service started",
		logger.String("run_id", report.RunID),
		logger.Int("events", report.Events),
		logger.Int("wrestlers", report.Wrestlers),
	)
	return nil
}

// Stop marks the service stopped. Published results stay readable.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "boxscore service stopped")
}

// Reload reads the season again, scores it and swaps the result in. On
// error the previously published season stays in place.
func (s *Service) Reload(ctx context.Context) (report ReloadReport, err error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()
	if !started {
		return ReloadReport{}, ErrNotStarted
	}

	start := time.Now()
	defer func() {
		result := "ok"
		if err != nil {
			result = "error"
			metrics.RecordErrorByComponent("service", "reload")
		}
		metrics.RecordReload(result, time.Since(start).Seconds())
	}()

	runID := uuid.NewString()
	log := s.logger.Named("season")

	loaded, err := s.loader.Load(ctx)
	if err != nil {
		s.logger.Error(ctx, "failed to load season", logger.String("run_id", runID), logger.Error(err))
		return ReloadReport{}, fmt.Errorf("load season: %w", err)
	}

	kept, duplicates := dedupe.DropDuplicates(ctx, loaded.Events)
	for _, w := range duplicates {
		log.Warn(ctx, w.Message, logger.String("kind", string(w.Kind)))
	}
	warnings := append(append([]model.Warning(nil), loaded.Warnings...), duplicates...)

	res := aggregate.ProcessAllMatches(ctx, kept,
		aggregate.WithCalculator(s.calc),
		aggregate.WithLogger(log),
	)
	warnings = append(warnings, res.Warnings...)

	if s.sink != nil {
		if err := s.sink.SaveLedger(ctx, runID, res.Records); err != nil {
			s.logger.Error(ctx, "failed to persist ledger", logger.String("run_id", runID), logger.Error(err))
			return ReloadReport{}, fmt.Errorf("persist ledger: %w", err)
		}
	}

	next := &season{
		report: ReloadReport{
			RunID:         runID,
			Events:        len(kept),
			Duplicates:    len(duplicates),
			MatchesScored: res.ScoredMatches,
			Records:       len(res.Records),
			Wrestlers:     len(res.Summary),
			Warnings:      len(warnings),
			Duration:      time.Since(start),
		},
		loadedAt:   time.Now().UTC(),
		records:    res.Records,
		warnings:   warnings,
		byWrestler: indexByWrestler(res.Records),
	}

	s.mu.Lock()
	err = s.standings.Replace(ctx, res.Summary)
	if err == nil {
		s.current = next
	}
	s.mu.Unlock()
	if err != nil {
		return ReloadReport{}, fmt.Errorf("publish standings: %w", err)
	}

	metrics.UpdateEventsLoaded(len(kept))
	metrics.RecordEventsDuplicate(len(duplicates))
	metrics.RecordMatchesScored(res.ScoredMatches)
	metrics.UpdateLedgerRecords(len(res.Records))
	for _, w := range warnings {
		metrics.RecordWarning(string(w.Kind))
	}

	s.logger.Info(ctx, "season reloaded",
		logger.String("run_id", runID),
		logger.Int("events", next.report.Events),
		logger.Int("duplicates", next.report.Duplicates),
		logger.Int("records", next.report.Records),
		logger.Int("warnings", next.report.Warnings),
		logger.Duration("took", next.report.Duration),
	)
	return next.report, nil
}

func indexByWrestler(records []model.LedgerRecord) map[string][]int {
	idx := make(map[string][]int)
	for i, r := range records {
		k := strings.ToLower(r.WrestlerName)
		idx[k] = append(idx[k], i)
	}
	return idx
}

// TopN returns the top N standings entries.
func (s *Service) TopN(ctx context.Context, n int) ([]types.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.standings.TopN(ctx, n)
}

// Rank returns the rank and total for a wrestler.
func (s *Service) Rank(ctx context.Context, wrestler string) (types.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.standings.Rank(ctx, wrestler)
}

// Ledger returns the published ledger, optionally limited to one wrestler
// (case-insensitive). An unknown wrestler yields ErrNotFound.
func (s *Service) Ledger(ctx context.Context, wrestler string) ([]model.LedgerRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return []model.LedgerRecord{}, nil
	}
	wrestler = strings.TrimSpace(wrestler)
	if wrestler == "" {
		return append([]model.LedgerRecord(nil), s.current.records...), nil
	}
	idx, ok := s.current.byWrestler[strings.ToLower(wrestler)]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]model.LedgerRecord, 0, len(idx))
	for _, i := range idx {
		out = append(out, s.current.records[i])
	}
	return out, nil
}

// Warnings returns the diagnostics of the published season.
func (s *Service) Warnings(ctx context.Context) []model.Warning {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return []model.Warning{}
	}
	return append([]model.Warning(nil), s.current.warnings...)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":   s.started,
		"maxLimit":  s.maxLimit,
		"wrestlers": s.standings.Count(context.Background()),
	}
	if s.current != nil {
		byKind := make(map[string]int)
		for _, w := range s.current.warnings {
			byKind[string(w.Kind)]++
		}
		stats["runId"] = s.current.report.RunID
		stats["loadedAt"] = s.current.loadedAt.Format(time.RFC3339)
		stats["events"] = s.current.report.Events
		stats["duplicates"] = s.current.report.Duplicates
		stats["matchesScored"] = s.current.report.MatchesScored
		stats["ledgerRecords"] = s.current.report.Records
		stats["warnings"] = byKind
	}
	return stats
}
