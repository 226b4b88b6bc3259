// Package predicates holds pure facts about a match: card position, title
// implications, finish and special formats.
package predicates

import (
	"strings"

	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/domain/model"
)

// UnknownMatchType is returned when a match has neither a type nor a
// stipulation.
const UnknownMatchType = "Unknown"

// IsMainEvent reports whether m has the highest order on its card. Every
// match tied for the highest order is a main event.
func IsMainEvent(m model.Match, card []model.Match) bool {
	top := m.Order
	for _, other := range card {
		if other.Order > top {
			top = other.Order
		}
	}
	return m.Order == top
}

// MatchType returns the match type, falling back to the stipulation and
// then to UnknownMatchType.
func MatchType(m model.Match) string {
	if t := strings.TrimSpace(m.MatchType); t != "" {
		return t
	}
	if s := strings.TrimSpace(m.Stipulation); s != "" {
		return s
	}
	return UnknownMatchType
}

// describes reports whether the match type or stipulation mentions any of
// the given phrases.
func describes(m model.Match, phrases ...string) bool {
	fields := []string{strings.ToLower(m.MatchType), strings.ToLower(m.Stipulation)}
	for _, f := range fields {
		for _, p := range phrases {
			if strings.Contains(f, p) {
				return true
			}
		}
	}
	return false
}

// IsBattleRoyal reports whether m is a battle royal.
func IsBattleRoyal(m model.Match) bool {
	return describes(m, "battle royal", "battle royale")
}

var noTitle = map[string]bool{"": true, "none": true, "n/a": true, "no title": true, "-": true}

// IsTitleMatch reports whether a championship was on the line.
func IsTitleMatch(m model.Match) bool {
	return !noTitle[strings.ToLower(strings.TrimSpace(m.Title))]
}

// IsTitleChange reports whether the title changed hands.
func IsTitleChange(m model.Match) bool {
	return m.TitleOutcome == model.TitleNewChampion
}

// IsTitleDefense reports whether the champion retained.
func IsTitleDefense(m model.Match) bool {
	return m.TitleOutcome == model.TitleRetained
}

// IsDQ reports whether the match ended by disqualification.
func IsDQ(m model.Match) bool {
	method := strings.ToLower(m.Method)
	return strings.Contains(method, "dq") || strings.Contains(method, "disqualification")
}

// IsNoContest reports whether the match ended without a decision.
func IsNoContest(m model.Match) bool {
	method := strings.ToLower(m.Method)
	return strings.Contains(method, "no contest") || strings.Contains(method, "no-contest") ||
		strings.Contains(method, "nocontest")
}

// IsWarGames reports whether m is a War Games match.
func IsWarGames(m model.Match) bool {
	return describes(m, "war games", "wargames")
}

// IsRoyalRumbleMatch reports whether m is the Royal Rumble match itself.
func IsRoyalRumbleMatch(m model.Match) bool {
	return describes(m, "royal rumble") ||
		strings.Contains(strings.ToLower(m.SpecialWinnerType), "royal rumble")
}

// IsEliminationChamberMatch reports whether m is an Elimination Chamber
// match. Qualifying matches for the chamber are not.
func IsEliminationChamberMatch(m model.Match) bool {
	return describes(m, "elimination chamber") && !describes(m, "qualifier", "qualifying")
}

// IsCrownJewelChampionship reports whether m is contested for the Crown
// Jewel Championship.
func IsCrownJewelChampionship(m model.Match) bool {
	return strings.Contains(strings.ToLower(m.Title), "crown jewel") || describes(m, "crown jewel championship")
}

// IsMoneyInTheBankMatch reports whether m is the Money in the Bank ladder
// match.
func IsMoneyInTheBankMatch(m model.Match) bool {
	return describes(m, "money in the bank", "mitb") ||
		strings.Contains(strings.ToLower(m.SpecialWinnerType), "money in the bank")
}
