// Package dedupe tracks event identities so a season never scores the same
// show twice.
package dedupe

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/domain/model"
)

// Deduper records seen event keys.
type Deduper interface {
	// SeenAndRecord atomically checks if key was seen and records it if not.
	// Returns true if key was already seen, false if it was newly recorded.
	SeenAndRecord(ctx context.Context, key string) bool
}

// Option applies a configuration option to the in-memory deduper.
type Option func(*inMemoryDeduper)

// WithCapacity presizes the set of seen keys.
func WithCapacity(n int) Option {
	return func(d *inMemoryDeduper) {
		if n > 0 {
			d.capacity = n
		}
	}
}

type inMemoryDeduper struct {
	mu       sync.Mutex
	seen     map[string]struct{}
	capacity int
}

// NewInMemoryDeduper creates an unbounded, concurrency-safe Deduper.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{capacity: 64}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]struct{}, d.capacity)
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.seen[key]; ok {
		return true
	}
	d.seen[key] = struct{}{}
	return false
}

// EventKey identifies an event: its ID when present, otherwise its
// case-folded name and date.
func EventKey(ev model.Event) string {
	if id := strings.TrimSpace(ev.ID); id != "" {
		return "id:" + id
	}
	date := ""
	if !ev.Date.IsZero() {
		date = ev.Date.Format("2006-01-02")
	}
	return "name:" + strings.ToLower(strings.TrimSpace(ev.Name)) + "@" + date
}

// Events returns events with repeats removed, keeping the first occurrence
// and reporting the dropped ones.
func Events(ctx context.Context, d Deduper, events []model.Event) (kept, dropped []model.Event) {
	kept = make([]model.Event, 0, len(events))
	for _, ev := range events {
		if d.SeenAndRecord(ctx, EventKey(ev)) {
			dropped = append(dropped, ev)
			continue
		}
		kept = append(kept, ev)
	}
	return kept, dropped
}

// DropDuplicates removes repeated events and returns a duplicate_event
// warning for each one it dropped.
func DropDuplicates(ctx context.Context, events []model.Event) (kept []model.Event, warnings []model.Warning) {
	kept, dropped := Events(ctx, NewInMemoryDeduper(WithCapacity(len(events))), events)
	for _, ev := range dropped {
		warnings = append(warnings, model.Warning{
			Kind:      model.WarnDuplicateEvent,
			EventID:   ev.ID,
			EventName: ev.Name,
			Message:   fmt.Sprintf("duplicate event %q dropped", EventKey(ev)),
		})
	}
	return kept, warnings
}
