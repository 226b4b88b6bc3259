package scoring

import (
	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/domain/model"
	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/domain/predicates"
)

// Rule is the scoring descriptor for one event type.
type Rule struct {
	MainEventWin int // match points for winning the main event
	MainEvent    int // main event points for appearing in it
	UndercardWin int // match points for winning an undercard match
	OnCard       int // match points for appearing on the undercard

	// Special scores the event's signature match. It returns true when the
	// match was handled and the table above must not apply to it.
	Special Special
}

// Special is an event-specific override for signature matches.
type Special func(s Situation, sh *Sheet) bool

var (
	weekly = Rule{MainEventWin: 4, MainEvent: 3, UndercardWin: 2, OnCard: 1}
	medium = Rule{MainEventWin: 15, MainEvent: 9, UndercardWin: 8, OnCard: 4}
	minor  = Rule{MainEventWin: 12, MainEvent: 7, UndercardWin: 6, OnCard: 3}
)

func withSpecial(r Rule, fn Special) Rule {
	r.Special = fn
	return r
}

// DefaultRules returns a fresh copy of the season rule table.
func DefaultRules() map[model.EventType]Rule {
	return map[model.EventType]Rule{
		model.EventRaw:       weekly,
		model.EventSmackDown: weekly,

		model.EventWrestleManiaNight1: {MainEventWin: 25, MainEvent: 20, UndercardWin: 12, OnCard: 6},
		model.EventWrestleManiaNight2: {MainEventWin: 35, MainEvent: 25, UndercardWin: 12, OnCard: 6},
		model.EventSummerSlamNight1:   {MainEventWin: 20, MainEvent: 10, UndercardWin: 10, OnCard: 5},
		model.EventSummerSlamNight2:   {MainEventWin: 20, MainEvent: 15, UndercardWin: 10, OnCard: 5},
		model.EventSurvivorSeries:     {MainEventWin: 15, MainEvent: 12, UndercardWin: 10, OnCard: 5, Special: warGames},
		model.EventRoyalRumble:        {MainEventWin: 15, MainEvent: 12, UndercardWin: 10, OnCard: 5, Special: royalRumble},

		model.EventEliminationChamber: withSpecial(medium, eliminationChamber),
		model.EventCrownJewel:         withSpecial(medium, crownJewel),
		model.EventNightOfChampions:   medium,
		model.EventKingOfTheRing:      medium,
		model.EventMoneyInTheBank:     withSpecial(medium, moneyInTheBank),

		model.EventSaturdayNightsMainEvent: minor,
		model.EventBacklash:                minor,
		model.EventEvolution:               minor,
		model.EventClashInParis:            minor,
		model.EventWrestlepalooza:          minor,
	}
}

// warGames adds on top of the table.
func warGames(s Situation, sh *Sheet) bool {
	if !predicates.IsWarGames(s.Match) {
		return false
	}
	sh.AddSpecial(8, "War Games participant")
	if s.Won {
		sh.AddSpecial(14, "War Games winner")
	}
	return false
}

func royalRumble(s Situation, sh *Sheet) bool {
	if !predicates.IsRoyalRumbleMatch(s.Match) {
		return false
	}
	sh.AddSpecial(2, "Royal Rumble participant")
	if s.Won {
		sh.AddSpecial(30, "Royal Rumble winner")
	}
	return true
}

func eliminationChamber(s Situation, sh *Sheet) bool {
	if !predicates.IsEliminationChamberMatch(s.Match) {
		return false
	}
	if s.Qualified {
		sh.AddSpecial(10, "Elimination Chamber qualifier")
	}
	if s.Won {
		sh.AddSpecial(30, "Elimination Chamber winner")
	}
	return true
}

// crownJewel replaces the table, including the main event bonus, for the
// championship match.
func crownJewel(s Situation, sh *Sheet) bool {
	if !predicates.IsCrownJewelChampionship(s.Match) {
		return false
	}
	if s.Won {
		sh.AddSpecial(20, "Crown Jewel Championship winner")
	} else {
		sh.AddSpecial(10, "Crown Jewel Championship participant")
	}
	return true
}

func moneyInTheBank(s Situation, sh *Sheet) bool {
	if !predicates.IsMoneyInTheBankMatch(s.Match) {
		return false
	}
	sh.AddSpecial(12, "Money in the Bank participant")
	if s.Won {
		sh.AddSpecial(25, "Money in the Bank winner")
	}
	return true
}
