// Package model contains domain models passed between layers.
package model

import "time"

// EventType is the canonical tag an event name classifies to.
type EventType string

// Event types, grouped by tier.
const (
	EventUnknown EventType = "unknown"

	// Weekly television.
	EventRaw       EventType = "raw"
	EventSmackDown EventType = "smackdown"

	// Major ("big four").
	EventWrestleManiaNight1 EventType = "wrestlemania-night-1"
	EventWrestleManiaNight2 EventType = "wrestlemania-night-2"
	EventSummerSlamNight1   EventType = "summerslam-night-1"
	EventSummerSlamNight2   EventType = "summerslam-night-2"
	EventSurvivorSeries     EventType = "survivor-series"
	EventRoyalRumble        EventType = "royal-rumble"

	// Medium.
	EventEliminationChamber EventType = "elimination-chamber"
	EventCrownJewel         EventType = "crown-jewel"
	EventNightOfChampions   EventType = "night-of-champions"
	EventKingOfTheRing      EventType = "king-and-queen-of-the-ring"
	EventMoneyInTheBank     EventType = "money-in-the-bank"

	// Minor.
	EventSaturdayNightsMainEvent EventType = "saturday-nights-main-event"
	EventBacklash                EventType = "backlash"
	EventEvolution               EventType = "evolution"
	EventClashInParis            EventType = "clash-in-paris"
	EventWrestlepalooza          EventType = "wrestlepalooza"
)

var eventTypeLabels = map[EventType]string{
	EventUnknown:                 "Unknown",
	EventRaw:                     "Raw",
	EventSmackDown:               "SmackDown",
	EventWrestleManiaNight1:      "WrestleMania Night 1",
	EventWrestleManiaNight2:      "WrestleMania Night 2",
	EventSummerSlamNight1:        "SummerSlam Night 1",
	EventSummerSlamNight2:        "SummerSlam Night 2",
	EventSurvivorSeries:          "Survivor Series",
	EventRoyalRumble:             "Royal Rumble",
	EventEliminationChamber:      "Elimination Chamber",
	EventCrownJewel:              "Crown Jewel",
	EventNightOfChampions:        "Night of Champions",
	EventKingOfTheRing:           "King and Queen of the Ring",
	EventMoneyInTheBank:          "Money in the Bank",
	EventSaturdayNightsMainEvent: "Saturday Night's Main Event",
	EventBacklash:                "Backlash",
	EventEvolution:               "Evolution",
	EventClashInParis:            "Clash in Paris",
	EventWrestlepalooza:          "Wrestlepalooza",
}

// Label returns a human readable name for the event type.
func (t EventType) Label() string {
	if l, ok := eventTypeLabels[t]; ok {
		return l
	}
	return string(t)
}

// Tier buckets event types for scoring.
type Tier string

// Tiers.
const (
	TierWeekly Tier = "weekly"
	TierMajor  Tier = "major"
	TierMedium Tier = "medium"
	TierMinor  Tier = "minor"
)

// Event is a single show on the calendar together with its card.
type Event struct {
	ID      string
	Name    string
	Date    time.Time
	Type    EventType // classified from Name; empty means not yet classified
	Matches []Match
}

// Match is one bout on an event card.
type Match struct {
	// Order is the card position. The highest order on a card is the main
	// event; ties are all main events.
	Order             int
	Participants      Participants
	Result            string
	Method            string
	MatchType         string
	Stipulation       string
	Title             string
	TitleOutcome      TitleOutcome
	SpecialWinnerType string
	// Qualifiers lists entrants flagged as having earned their spot through
	// a qualifying match.
	Qualifiers []string
}
