package model

// Breakdown is the per (match, wrestler) scoring result.
type Breakdown struct {
	MatchPoints       int
	TitlePoints       int
	SpecialPoints     int
	MainEventPoints   int
	BattleRoyalPoints int
	Total             int

	// Audit explains each contribution in order. It is for humans and
	// fixtures only and is never parsed back.
	Audit []string
	// Warnings carries non-fatal diagnostics raised while scoring.
	Warnings []string
}

// Sum returns the sum of the five point buckets.
func (b Breakdown) Sum() int {
	return b.MatchPoints + b.TitlePoints + b.SpecialPoints + b.MainEventPoints + b.BattleRoyalPoints
}

// IsZero reports whether every bucket is zero.
func (b Breakdown) IsZero() bool {
	return b.MatchPoints == 0 && b.TitlePoints == 0 && b.SpecialPoints == 0 &&
		b.MainEventPoints == 0 && b.BattleRoyalPoints == 0
}

// LedgerRecord is one exported row of the season ledger. JSON names are a
// stable contract with tabular exporters.
type LedgerRecord struct {
	EventID      string       `json:"eventId"`
	EventName    string       `json:"eventName"`
	EventDate    string       `json:"eventDate"`
	EventType    EventType    `json:"eventType"`
	MatchOrder   int          `json:"matchOrder"`
	MatchType    string       `json:"matchType"`
	Result       string       `json:"result"`
	Method       string       `json:"method"`
	Title        string       `json:"title"`
	TitleOutcome TitleOutcome `json:"titleOutcome"`
	IsMainEvent  bool         `json:"isMainEvent"`

	WrestlerName      string   `json:"wrestlerName"`
	MatchPoints       int      `json:"matchPoints"`
	TitlePoints       int      `json:"titlePoints"`
	SpecialPoints     int      `json:"specialPoints"`
	MainEventPoints   int      `json:"mainEventPoints"`
	BattleRoyalPoints int      `json:"battleRoyalPoints"`
	TotalPoints       int      `json:"totalPoints"`
	Breakdown         []string `json:"breakdown"`
}

// SummaryEntry is a wrestler's cumulative season total.
type SummaryEntry struct {
	WrestlerName string `json:"wrestlerName"`
	TotalPoints  int    `json:"totalPoints"`
}

// WarningKind groups diagnostics for counting.
type WarningKind string

// Warning kinds.
const (
	WarnUnknownEvent   WarningKind = "unknown_event"
	WarnUnclearResult  WarningKind = "unclear_result"
	WarnMalformedMatch WarningKind = "malformed_participants"
	WarnUnscoredType   WarningKind = "unscored_event_type"
	WarnBadDate        WarningKind = "bad_event_date"
	WarnDuplicateEvent WarningKind = "duplicate_event"
)

// Warning is a non-fatal diagnostic raised during a scoring pass.
type Warning struct {
	Kind       WarningKind `json:"kind"`
	EventID    string      `json:"eventId"`
	EventName  string      `json:"eventName"`
	MatchOrder int         `json:"matchOrder"`
	Message    string      `json:"message"`
}
