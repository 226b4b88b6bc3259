// Package aggregate folds a season of events into a point ledger and a
// ranked per-wrestler summary.
package aggregate

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/domain/classifier"
	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/domain/model"
	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/domain/participants"
	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/domain/predicates"
	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/domain/scoring"
	"github.com/draftasticwrestling/wrestling-boxscore-sub001/pkg/logger"
)

const dateLayout = "2006-01-02"

// Result is the output of one aggregation pass.
type Result struct {
	Records  []model.LedgerRecord
	Summary  []model.SummaryEntry
	Warnings []model.Warning
	// ScoredMatches counts matches whose participants resolved.
	ScoredMatches int
}

// Option applies a configuration option to an aggregation pass.
type Option func(*options)

type options struct {
	calc   *scoring.Calculator
	logger logger.Logger
}

// WithCalculator scores with a custom rule table.
func WithCalculator(c *scoring.Calculator) Option {
	return func(o *options) {
		if c != nil {
			o.calc = c
		}
	}
}

// WithLogger forwards every warning to l at warn level.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// ProcessAllMatches scores every (match, wrestler) pair of events in input
// order. The output is identical for identical input.
func ProcessAllMatches(ctx context.Context, events []model.Event, opts ...Option) Result {
	o := options{calc: scoring.New()}
	for _, opt := range opts {
		opt(&o)
	}

	var res Result
	warn := func(w model.Warning) {
		res.Warnings = append(res.Warnings, w)
		if o.logger != nil {
			o.logger.Warn(ctx, w.Message,
				logger.String("kind", string(w.Kind)),
				logger.String("event", w.EventName),
				logger.Int("match_order", w.MatchOrder),
			)
		}
	}

	totals := make(map[string]int)
	var seen []string // encounter order of wrestlers in totals

	for _, ev := range events {
		if ev.Type == "" {
			t, ok := classifier.Lookup(ev.Name)
			ev.Type = t
			if !ok {
				warn(model.Warning{
					Kind: model.WarnUnknownEvent, EventID: ev.ID, EventName: ev.Name,
					Message: fmt.Sprintf("unrecognized event name %q", ev.Name),
				})
			}
		}

		for _, m := range ev.Matches {
			if !m.Participants.Valid() {
				warn(model.Warning{
					Kind: model.WarnMalformedMatch, EventID: ev.ID, EventName: ev.Name, MatchOrder: m.Order,
					Message: fmt.Sprintf("skipping match with malformed participants %q", m.Participants.Raw),
				})
				continue
			}
			res.ScoredMatches++

			ex := participants.ExtractMatchParticipants(m)
			mainEvent := predicates.IsMainEvent(m, ev.Matches)
			matchWarned := false

			for _, name := range ex.Individuals {
				b := o.calc.CalculateMatchPoints(m, ev, ev.Matches, name)
				if !matchWarned && len(b.Warnings) > 0 {
					matchWarned = true
					for _, msg := range b.Warnings {
						warn(model.Warning{
							Kind: warningKind(ex, msg), EventID: ev.ID, EventName: ev.Name, MatchOrder: m.Order,
							Message: msg,
						})
					}
				}
				if b.Total == 0 && len(b.Audit) == 0 {
					continue
				}
				res.Records = append(res.Records, record(ev, m, mainEvent, name, b))
				if _, ok := totals[name]; !ok {
					seen = append(seen, name)
				}
				totals[name] += b.Total
			}
		}
	}

	res.Summary = summarize(totals, seen)
	return res
}

func warningKind(ex participants.Extraction, msg string) model.WarningKind {
	if ex.Unclear && msg == ex.Diagnostic {
		return model.WarnUnclearResult
	}
	return model.WarnUnscoredType
}

func record(ev model.Event, m model.Match, mainEvent bool, name string, b model.Breakdown) model.LedgerRecord {
	var date string
	if !ev.Date.IsZero() {
		date = ev.Date.Format(dateLayout)
	}
	return model.LedgerRecord{
		EventID:           ev.ID,
		EventName:         ev.Name,
		EventDate:         date,
		EventType:         ev.Type,
		MatchOrder:        m.Order,
		MatchType:         predicates.MatchType(m),
		Result:            m.Result,
		Method:            m.Method,
		Title:             m.Title,
		TitleOutcome:      m.TitleOutcome,
		IsMainEvent:       mainEvent,
		WrestlerName:      name,
		MatchPoints:       b.MatchPoints,
		TitlePoints:       b.TitlePoints,
		SpecialPoints:     b.SpecialPoints,
		MainEventPoints:   b.MainEventPoints,
		BattleRoyalPoints: b.BattleRoyalPoints,
		TotalPoints:       b.Total,
		Breakdown:         b.Audit,
	}
}

// summarize orders totals by points descending, then wrestler name
// ascending.
func summarize(totals map[string]int, names []string) []model.SummaryEntry {
	out := make([]model.SummaryEntry, 0, len(names))
	for _, n := range names {
		out = append(out, model.SummaryEntry{WrestlerName: n, TotalPoints: totals[n]})
	}
	slices.SortStableFunc(out, func(a, b model.SummaryEntry) int {
		if c := cmp.Compare(b.TotalPoints, a.TotalPoints); c != 0 {
			return c
		}
		return cmp.Compare(a.WrestlerName, b.WrestlerName)
	})
	return out
}
