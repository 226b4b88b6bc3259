package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/domain/model"
)

func seeded(t *testing.T) *TreapStore {
	t.Helper()
	s := NewTreapStore()
	err := s.Replace(context.Background(), []model.SummaryEntry{
		{WrestlerName: "John Cena", TotalPoints: 65},
		{WrestlerName: "Seth Rollins", TotalPoints: 3},
		{WrestlerName: "CM Punk", TotalPoints: 12},
		{WrestlerName: "Finn Balor", TotalPoints: 3},
		{WrestlerName: "Cody Rhodes", TotalPoints: 25},
	})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	return s
}

func TestTopNOrdering(t *testing.T) {
	s := seeded(t)
	got, err := s.TopN(context.Background(), 10)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	want := []Entry{
		{Rank: 1, WrestlerName: "John Cena", TotalPoints: 65},
		{Rank: 2, WrestlerName: "Cody Rhodes", TotalPoints: 25},
		{Rank: 3, WrestlerName: "CM Punk", TotalPoints: 12},
		{Rank: 4, WrestlerName: "Finn Balor", TotalPoints: 3},
		{Rank: 4, WrestlerName: "Seth Rollins", TotalPoints: 3},
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestTopNLimit(t *testing.T) {
	s := seeded(t)
	got, err := s.TopN(context.Background(), 2)
	if err != nil || len(got) != 2 {
		t.Fatalf("got %d entries, err %v", len(got), err)
	}
	if _, err := s.TopN(context.Background(), 0); !errors.Is(err, ErrInvalidLimit) {
		t.Fatalf("expected ErrInvalidLimit, got %v", err)
	}

	capped := NewTreapStore(WithMaxLimit(3))
	_ = capped.Replace(context.Background(), []model.SummaryEntry{
		{WrestlerName: "A", TotalPoints: 4}, {WrestlerName: "B", TotalPoints: 3},
		{WrestlerName: "C", TotalPoints: 2}, {WrestlerName: "D", TotalPoints: 1},
	})
	got, _ = capped.TopN(context.Background(), 100)
	if len(got) != 3 {
		t.Fatalf("capped len = %d, want 3", len(got))
	}
}

func TestRank(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	e, err := s.Rank(ctx, "Seth Rollins")
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if e.Rank != 4 || e.TotalPoints != 3 {
		t.Fatalf("got %+v", e)
	}

	e, err = s.Rank(ctx, "john cena")
	if err != nil || e.WrestlerName != "John Cena" || e.Rank != 1 {
		t.Fatalf("case-insensitive lookup: %+v, %v", e, err)
	}

	if _, err := s.Rank(ctx, "Nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpsertMovesWrestler(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()
	if err := s.upsert("Seth Rollins", 100); err != nil {
		t.Fatalf("set: %v", err)
	}
	top, _ := s.TopN(ctx, 1)
	if top[0].WrestlerName != "Seth Rollins" {
		t.Fatalf("top = %+v", top[0])
	}
	if s.Count(ctx) != 5 {
		t.Fatalf("count = %d", s.Count(ctx))
	}
	if err := s.upsert("  ", 1); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
}

func TestReplaceDiscardsPrevious(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()
	if err := s.Replace(ctx, []model.SummaryEntry{{WrestlerName: "Rhea Ripley", TotalPoints: 9}}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if s.Count(ctx) != 1 {
		t.Fatalf("count = %d", s.Count(ctx))
	}
	if _, err := s.Rank(ctx, "John Cena"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("old wrestler still ranked: %v", err)
	}
}

func TestRankMatchesTopNAtScale(t *testing.T) {
	s := NewTreapStore()
	ctx := context.Background()
	for i := 0; i < 500; i++ {
		_ = s.upsert(fmt.Sprintf("w%03d", i), i%37)
	}
	top, _ := s.TopN(ctx, 500)
	for _, e := range top {
		r, err := s.Rank(ctx, e.WrestlerName)
		if err != nil || r.Rank != e.Rank {
			t.Fatalf("%s: rank %d vs top %d (%v)", e.WrestlerName, r.Rank, e.Rank, err)
		}
	}
}

func BenchmarkTopN(b *testing.B) {
	s := NewTreapStore()
	ctx := context.Background()
	for i := 0; i < 10_000; i++ {
		_ = s.upsert(fmt.Sprintf("w%05d", i), i%500)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = s.TopN(ctx, 50)
	}
}
