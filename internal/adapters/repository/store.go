// Package repository holds the ranked season standings.
package repository

import (
	"context"

	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/domain/model"
	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/domain/types"
)

// Entry represents a standings row.
type Entry = types.Entry

// Store provides read/write access to the standings.
type Store interface {
	// Replace swaps the whole standings for summary in one step.
	Replace(ctx context.Context, summary []model.SummaryEntry) error

	// Rank returns the current rank and points for a wrestler. Lookup is
	// case-insensitive. Returns ErrNotFound if the wrestler is unknown.
	Rank(ctx context.Context, wrestler string) (Entry, error)

	// TopN returns the top-N entries ordered by points desc, name asc.
	TopN(ctx context.Context, n int) ([]Entry, error)

	// Count returns the number of wrestlers in the standings.
	Count(ctx context.Context) int
}
