// Package queue holds pending season reload requests.
//
// A reload re-reads the whole season, so one pending request already
// covers every request made before it runs. The default capacity of one
// makes bursts of triggers collapse into a single reload.
package queue

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/draftasticwrestling/wrestling-boxscore-sub001/pkg/metrics"
)

const defaultCapacity = 1

// Trigger reasons.
const (
	ReasonSchedule = "schedule"
	ReasonRequest  = "request"
)

// Enqueue outcomes.
const (
	OutcomeQueued    = "queued"
	OutcomeCoalesced = "coalesced"
	OutcomeClosed    = "closed"
)

// Trigger is one request to reload the season.
type Trigger struct {
	ID          string    `json:"id"`
	Reason      string    `json:"reason"`
	RequestedAt time.Time `json:"requestedAt"`
}

// NewTrigger stamps a trigger with a fresh id and the current time.
func NewTrigger(reason string) Trigger {
	return Trigger{ID: uuid.NewString(), Reason: reason, RequestedAt: time.Now()}
}

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue offers t and reports what happened to it. A coalesced
	// trigger is dropped because an earlier one is still pending.
	Enqueue(ctx context.Context, t Trigger) (string, error)

	// Dequeue returns the channel pending triggers are delivered on. It is
	// closed by Close.
	Dequeue(ctx context.Context) <-chan Trigger

	// Len returns the number of pending triggers.
	Len(ctx context.Context) int

	Close() error
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	triggers chan Trigger
	capacity int

	mu     sync.RWMutex
	closed bool
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{capacity: defaultCapacity}
	for _, opt := range opts {
		opt(q)
	}
	q.triggers = make(chan Trigger, q.capacity)
	metrics.UpdatePendingReloads(0)
	return q
}

// Enqueue adds t unless the queue is full or closed.
func (q *InMemoryQueue) Enqueue(ctx context.Context, t Trigger) (string, error) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordReloadTrigger(t.Reason, OutcomeClosed)
		metrics.RecordErrorByComponent("queue", "closed")
		return OutcomeClosed, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		metrics.RecordErrorByComponent("queue", "context_cancelled")
		return "", err
	}

	select {
	case q.triggers <- t:
		metrics.RecordReloadTrigger(t.Reason, OutcomeQueued)
		metrics.UpdatePendingReloads(len(q.triggers))
		return OutcomeQueued, nil
	default:
		metrics.RecordReloadTrigger(t.Reason, OutcomeCoalesced)
		return OutcomeCoalesced, nil
	}
}

// Dequeue returns the pending trigger channel.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Trigger {
	return q.triggers
}

// Len returns the current number of pending triggers.
func (q *InMemoryQueue) Len(ctx context.Context) int {
	size := len(q.triggers)
	metrics.UpdatePendingReloads(size)
	return size
}

// Close stops accepting triggers. Pending ones stay readable until drained.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	close(q.triggers)
	q.closed = true
	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
