// Package classifier maps free-text event names to canonical event types
// and scoring tiers.
package classifier

import (
	"regexp"

	"golang.org/x/text/cases"

	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/domain/model"
)

// pattern resolves a folded event name to a type. Weekly patterns carry a
// reject expression for names that only mention a show in passing.
type pattern struct {
	match  *regexp.Regexp
	reject *regexp.Regexp
	// night resolves two-night events; nil for single-night shows.
	night func(name string) model.EventType
	typ   model.EventType
}

var (
	tagTeamQualifier = regexp.MustCompile(`tag[\s-]*team`)
	secondNight      = regexp.MustCompile(`night\s*(?:2|two|ii)\b|\bsunday\b`)
)

func twoNights(first, second model.EventType) func(string) model.EventType {
	return func(name string) model.EventType {
		if secondNight.MatchString(name) {
			return second
		}
		return first
	}
}

// patterns are checked in order: weekly, major, medium, minor.
var patterns = []pattern{
	{match: regexp.MustCompile(`\braw\b`), reject: tagTeamQualifier, typ: model.EventRaw},
	{match: regexp.MustCompile(`\bsmack\s*down\b`), reject: tagTeamQualifier, typ: model.EventSmackDown},

	{match: regexp.MustCompile(`wrestle\s*mania`), night: twoNights(model.EventWrestleManiaNight1, model.EventWrestleManiaNight2)},
	{match: regexp.MustCompile(`summer\s*slam`), night: twoNights(model.EventSummerSlamNight1, model.EventSummerSlamNight2)},
	{match: regexp.MustCompile(`survivor\s+series`), typ: model.EventSurvivorSeries},
	{match: regexp.MustCompile(`royal\s+rumble`), typ: model.EventRoyalRumble},

	{match: regexp.MustCompile(`elimination\s+chamber`), typ: model.EventEliminationChamber},
	{match: regexp.MustCompile(`crown\s+jewel`), typ: model.EventCrownJewel},
	{match: regexp.MustCompile(`night\s+of\s+champions`), typ: model.EventNightOfChampions},
	{match: regexp.MustCompile(`\b(?:king|queen)(?:\s+(?:and|&)\s+(?:king|queen))?\s+of\s+the\s+ring`), typ: model.EventKingOfTheRing},
	{match: regexp.MustCompile(`money\s+in\s+the\s+bank`), typ: model.EventMoneyInTheBank},

	{match: regexp.MustCompile(`saturday\s+night.?s\s+main\s+event|\bsnme\b`), typ: model.EventSaturdayNightsMainEvent},
	{match: regexp.MustCompile(`backlash`), typ: model.EventBacklash},
	{match: regexp.MustCompile(`\bevolution\b`), typ: model.EventEvolution},
	{match: regexp.MustCompile(`clash\s+in\s+paris`), typ: model.EventClashInParis},
	{match: regexp.MustCompile(`wrestle\s*palooza`), typ: model.EventWrestlepalooza},
}

// Lookup classifies name and reports whether any pattern matched.
func Lookup(name string) (model.EventType, bool) {
	folded := cases.Fold().String(name)
	for _, p := range patterns {
		if !p.match.MatchString(folded) {
			continue
		}
		if p.reject != nil && p.reject.MatchString(folded) {
			continue
		}
		if p.night != nil {
			return p.night(folded), true
		}
		return p.typ, true
	}
	return model.EventUnknown, false
}

// Classify returns the event type for name, or EventUnknown.
func Classify(name string) model.EventType {
	t, _ := Lookup(name)
	return t
}

var tiers = map[model.EventType]model.Tier{
	model.EventWrestleManiaNight1: model.TierMajor,
	model.EventWrestleManiaNight2: model.TierMajor,
	model.EventSummerSlamNight1:   model.TierMajor,
	model.EventSummerSlamNight2:   model.TierMajor,
	model.EventSurvivorSeries:     model.TierMajor,
	model.EventRoyalRumble:        model.TierMajor,

	model.EventEliminationChamber: model.TierMedium,
	model.EventCrownJewel:         model.TierMedium,
	model.EventNightOfChampions:   model.TierMedium,
	model.EventKingOfTheRing:      model.TierMedium,
	model.EventMoneyInTheBank:     model.TierMedium,

	model.EventSaturdayNightsMainEvent: model.TierMinor,
	model.EventBacklash:                model.TierMinor,
	model.EventEvolution:               model.TierMinor,
	model.EventClashInParis:            model.TierMinor,
	model.EventWrestlepalooza:          model.TierMinor,
}

// TierOf returns the tier of t. Types not bucketed explicitly are weekly.
func TierOf(t model.EventType) model.Tier {
	if tier, ok := tiers[t]; ok {
		return tier
	}
	return model.TierWeekly
}
