// Package scoring computes fantasy points for one wrestler in one match.
package scoring

import (
	"fmt"

	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/domain/classifier"
	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/domain/model"
	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/domain/participants"
	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/domain/predicates"
)

// Universal points, independent of the event tier.
const (
	battleRoyalEntry    = 1
	battleRoyalWin      = 8
	titleChangePoints   = 5
	titleDefensePoints  = 4
	titleDefenseDQPoint = 2
)

// Option applies a configuration option to the Calculator.
type Option func(*Calculator)

// WithRule sets or replaces the rule for an event type.
func WithRule(t model.EventType, r Rule) Option {
	return func(c *Calculator) {
		c.rules[t] = r
	}
}

// Calculator scores (match, wrestler) pairs against a rule table.
// It holds no mutable state after construction.
type Calculator struct {
	rules map[model.EventType]Rule
}

// New creates a Calculator with the default rule table.
func New(opts ...Option) *Calculator {
	c := &Calculator{rules: DefaultRules()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultCalculator = New()

// CalculateMatchPoints scores wrestler in m using the default rule table.
func CalculateMatchPoints(m model.Match, ev model.Event, card []model.Match, wrestler string) model.Breakdown {
	return defaultCalculator.CalculateMatchPoints(m, ev, card, wrestler)
}

// Situation is what a rule sees about one wrestler in one match.
type Situation struct {
	Match     model.Match
	Event     model.Event
	Type      model.EventType
	Wrestler  string
	MainEvent bool
	Won       bool
	NoContest bool
	Qualified bool
}

// CalculateMatchPoints returns the breakdown for wrestler in m, where card
// is every match of ev. Non-participants get an all-zero breakdown.
func (c *Calculator) CalculateMatchPoints(m model.Match, ev model.Event, card []model.Match, wrestler string) model.Breakdown {
	ex := participants.ExtractMatchParticipants(m)
	if !ex.Has(wrestler) {
		return model.Breakdown{}
	}

	typ := ev.Type
	if typ == "" {
		typ = classifier.Classify(ev.Name)
	}
	noContest := predicates.IsNoContest(m)
	s := Situation{
		Match:     m,
		Event:     ev,
		Type:      typ,
		Wrestler:  wrestler,
		MainEvent: predicates.IsMainEvent(m, card),
		Won:       !noContest && ex.Won(wrestler),
		NoContest: noContest,
		Qualified: qualified(m, wrestler),
	}

	sh := &Sheet{}
	if ex.Unclear && !noContest {
		sh.Warn(ex.Diagnostic)
	}

	rule, ok := c.rules[typ]
	if !ok {
		return model.Breakdown{Warnings: append(sh.b.Warnings,
			fmt.Sprintf("no scoring rule for event type %q (%s)", typ, ev.Name))}
	}

	battleRoyal(s, sh)
	title(s, sh)
	if rule.Special == nil || !rule.Special(s, sh) {
		table(rule, s, sh)
	}
	if s.Won && predicates.IsDQ(m) {
		before := sh.b.MatchPoints
		sh.b.MatchPoints = floorHalf(before)
		sh.Note(fmt.Sprintf("Won by disqualification: match points halved %d -> %d", before, sh.b.MatchPoints))
	}

	sh.b.Total = sh.b.Sum()
	return sh.b
}

func qualified(m model.Match, wrestler string) bool {
	for _, q := range m.Qualifiers {
		if participants.NamesMatch(q, wrestler) {
			return true
		}
	}
	return false
}

func battleRoyal(s Situation, sh *Sheet) {
	if !predicates.IsBattleRoyal(s.Match) {
		return
	}
	sh.AddBattleRoyal(battleRoyalEntry, "Battle royal entrant")
	if s.Won {
		sh.AddBattleRoyal(battleRoyalWin, "Battle royal winner")
	}
}

func title(s Situation, sh *Sheet) {
	if !s.Won {
		return
	}
	switch {
	case predicates.IsTitleChange(s.Match):
		sh.AddTitle(titleChangePoints, "Title change")
	case predicates.IsTitleDefense(s.Match) && predicates.IsDQ(s.Match):
		sh.AddTitle(titleDefenseDQPoint, "Title defense by disqualification")
	case predicates.IsTitleDefense(s.Match):
		sh.AddTitle(titleDefensePoints, "Successful title defense")
	}
}

// table applies the tier constants. Main eventers get main event points
// instead of on-card points; a no-contest undercard match earns nothing.
func table(r Rule, s Situation, sh *Sheet) {
	label := s.Type.Label()
	if s.MainEvent {
		if s.Won {
			sh.AddMatch(r.MainEventWin, "Main event win ("+label+")")
		}
		sh.AddMainEvent(r.MainEvent, "Main event ("+label+")")
		return
	}
	if s.NoContest {
		sh.Note("No contest: no on-card or win points (" + label + ")")
		return
	}
	if s.Won {
		sh.AddMatch(r.UndercardWin, "Undercard win ("+label+")")
	}
	sh.AddMatch(r.OnCard, "On card ("+label+")")
}

func floorHalf(x int) int {
	if x < 0 {
		return -((-x + 1) / 2)
	}
	return x / 2
}

// Sheet accumulates a breakdown with its audit trail.
type Sheet struct {
	b model.Breakdown
}

func (sh *Sheet) add(bucket *int, pts int, why string) {
	if pts == 0 {
		return
	}
	*bucket += pts
	sh.b.Audit = append(sh.b.Audit, fmt.Sprintf("%s: +%d", why, pts))
}

// AddMatch credits match points.
func (sh *Sheet) AddMatch(pts int, why string) { sh.add(&sh.b.MatchPoints, pts, why) }

// AddTitle credits title points.
func (sh *Sheet) AddTitle(pts int, why string) { sh.add(&sh.b.TitlePoints, pts, why) }

// AddSpecial credits special-match points.
func (sh *Sheet) AddSpecial(pts int, why string) { sh.add(&sh.b.SpecialPoints, pts, why) }

// AddMainEvent credits main event points.
func (sh *Sheet) AddMainEvent(pts int, why string) { sh.add(&sh.b.MainEventPoints, pts, why) }

// AddBattleRoyal credits battle royal points.
func (sh *Sheet) AddBattleRoyal(pts int, why string) { sh.add(&sh.b.BattleRoyalPoints, pts, why) }

// Note appends an audit line without points.
func (sh *Sheet) Note(msg string) { sh.b.Audit = append(sh.b.Audit, msg) }

// Warn records a non-fatal diagnostic.
func (sh *Sheet) Warn(msg string) { sh.b.Warnings = append(sh.b.Warnings, msg) }
