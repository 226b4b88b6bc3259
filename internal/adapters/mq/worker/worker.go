// Package worker runs season reloads requested through the reload queue.
package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/adapters/mq/queue"
	service "github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/app"
	"github.com/draftasticwrestling/wrestling-boxscore-sub001/pkg/logger"
	"github.com/draftasticwrestling/wrestling-boxscore-sub001/pkg/metrics"
)

// Reloader re-reads and re-scores the season.
type Reloader interface {
	Reload(ctx context.Context) (service.ReloadReport, error)
}

// Queue defines how the worker exchanges triggers.
type Queue interface {
	Enqueue(ctx context.Context, t queue.Trigger) (string, error)
	Dequeue(ctx context.Context) <-chan queue.Trigger
}

// ReloadWorker drains the reload queue, one reload at a time.
type ReloadWorker struct {
	queue    Queue
	reloader Reloader
	name     string
	interval time.Duration

	shutdown     chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}

	mu   sync.Mutex
	last Outcome

	logger logger.Logger
}

// Outcome describes the most recent reload the worker ran.
type Outcome struct {
	Trigger  queue.Trigger        `json:"trigger"`
	Report   service.ReloadReport `json:"report"`
	Error    string               `json:"error,omitempty"`
	Finished time.Time            `json:"finished"`
}

// NewReloadWorker creates a worker with configuration options.
func NewReloadWorker(q Queue, r Reloader, opts ...Option) *ReloadWorker {
	w := &ReloadWorker{
		queue:    q,
		reloader: r,
		name:     "reloader",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logger.Get()
	}
	w.logger = w.logger.Named(w.name)
	return w
}

// Run processes triggers until ctx is cancelled, Shutdown is called or the
// queue is closed.
func (w *ReloadWorker) Run(ctx context.Context) {
	defer close(w.done)

	var tick <-chan time.Time
	if w.interval > 0 {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	triggers := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case <-tick:
			if _, err := w.queue.Enqueue(ctx, queue.NewTrigger(queue.ReasonSchedule)); err != nil {
				w.logger.Warn(ctx, "scheduled reload not queued", logger.Error(err))
			}
		case t, ok := <-triggers:
			if !ok {
				return
			}
			w.process(ctx, t)
		}
	}
}

func (w *ReloadWorker) process(ctx context.Context, t queue.Trigger) {
	report, err := w.reloader.Reload(ctx)
	out := Outcome{Trigger: t, Report: report, Finished: time.Now()}
	if err != nil {
		out.Error = err.Error()
		metrics.RecordErrorByComponent("reloader", "reload_failed")
		w.logger.Error(ctx, "queued reload failed",
			logger.String("trigger", t.ID),
			logger.String("reason", t.Reason),
			logger.Error(err),
		)
	} else {
		w.logger.Debug(ctx, "queued reload finished",
			logger.String("trigger", t.ID),
			logger.String("reason", t.Reason),
			logger.String("run_id", report.RunID),
			logger.Duration("waited", out.Finished.Sub(t.RequestedAt)),
		)
	}

	w.mu.Lock()
	w.last = out
	w.mu.Unlock()
}

// Last returns the outcome of the latest reload and false when none ran yet.
func (w *ReloadWorker) Last() (Outcome, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.last, !w.last.Finished.IsZero()
}

// Shutdown stops the worker and waits for an in-flight reload to finish.
func (w *ReloadWorker) Shutdown(ctx context.Context) error {
	w.shutdownOnce.Do(func() { close(w.shutdown) })

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}
