// Package participants parses freeform participant and result strings into
// structured sides, winners and losers.
package participants

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"

	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/domain/model"
)

// Kind tells an individual from a named team.
type Kind int

// Participant kinds.
const (
	Individual Kind = iota
	Team
)

// Parsed is one participant on a side of a match.
type Parsed struct {
	Type    Kind
	Name    string
	Members []string // team members; empty for individuals
}

var (
	sideSeparator   = regexp.MustCompile(`(?i)\s+vs\.?\s+`)
	teamGroup       = regexp.MustCompile(`^(.*?)\s*\(([^()]*)\)\s*$`)
	memberSeparator = regexp.MustCompile(`\s*[&,]\s*`)
	coParticipant   = regexp.MustCompile(`\s*&\s*`)
	championMarker  = regexp.MustCompile(`(?i)\s*\((?:c|champion|champions)\)`)
)

// NamesMatch reports whether a and b refer to the same competitor. The
// comparison is case-insensitive substring containment in either direction,
// so "Balor" matches "Finn Balor" and vice versa. Empty names never match.
func NamesMatch(a, b string) bool {
	fa := fold(a)
	fb := fold(b)
	if fa == "" || fb == "" {
		return false
	}
	return strings.Contains(fa, fb) || strings.Contains(fb, fa)
}

func fold(s string) string {
	return strings.TrimSpace(cases.Fold().String(s))
}

// Parse returns every participant in a "A vs B" string, sides flattened in
// order.
func Parse(raw string) []Parsed {
	var out []Parsed
	for _, side := range ParseSides(raw) {
		out = append(out, side...)
	}
	return out
}

// ParseSides splits raw on " vs " / " vs. " and parses each side.
func ParseSides(raw string) [][]Parsed {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var sides [][]Parsed
	for _, s := range sideSeparator.Split(raw, -1) {
		if side := parseSide(s, coParticipant); len(side) > 0 {
			sides = append(sides, side)
		}
	}
	return sides
}

// parseSide parses one side. "Team (a & b)" is a named team; otherwise the
// side is split with sep into individuals.
func parseSide(s string, sep *regexp.Regexp) []Parsed {
	s = strings.TrimSpace(championMarker.ReplaceAllString(s, ""))
	if s == "" {
		return nil
	}
	if m := teamGroup.FindStringSubmatch(s); m != nil {
		name := strings.TrimSpace(m[1])
		members := splitNames(m[2], memberSeparator)
		if name == "" {
			return individuals(members)
		}
		return []Parsed{{Type: Team, Name: name, Members: members}}
	}
	return individuals(splitNames(s, sep))
}

func individuals(names []string) []Parsed {
	out := make([]Parsed, 0, len(names))
	for _, n := range names {
		out = append(out, Parsed{Type: Individual, Name: n})
	}
	return out
}

func splitNames(s string, sep *regexp.Regexp) []string {
	var out []string
	for _, n := range sep.Split(s, -1) {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// Names returns every name a lookup can match on: team names followed by
// their members, and individuals.
func Names(ps []Parsed) []string {
	var out []string
	for _, p := range ps {
		out = append(out, p.Name)
		out = append(out, p.Members...)
	}
	return out
}

// Individuals returns the competitor names with teams exploded into their
// members.
func Individuals(ps []Parsed) []string {
	var out []string
	for _, p := range ps {
		if p.Type == Team {
			out = append(out, p.Members...)
			continue
		}
		out = append(out, p.Name)
	}
	return out
}

// Extraction is the resolved participant view of a match.
type Extraction struct {
	Sides        [][]Parsed
	Participants []string // team names, members and individuals
	Individuals  []string // competitors with teams exploded
	Winners      []string
	Losers       []string
	Unclear      bool
	HasResult    bool
	IsTagTeam    bool
	Diagnostic   string
}

// Has reports whether name matches any resolved participant.
func (e Extraction) Has(name string) bool { return anyMatch(e.Participants, name) }

// Won reports whether name matches any resolved winner.
func (e Extraction) Won(name string) bool { return anyMatch(e.Winners, name) }

// Lost reports whether name matches any resolved loser.
func (e Extraction) Lost(name string) bool { return anyMatch(e.Losers, name) }

func anyMatch(names []string, name string) bool {
	for _, n := range names {
		if NamesMatch(n, name) {
			return true
		}
	}
	return false
}

// MatchSides resolves a match's participants field into sides. A list is
// used as-is with each entry its own side; malformed input yields no sides.
func MatchSides(p model.Participants) [][]Parsed {
	switch p.Kind {
	case model.ParticipantsText:
		return ParseSides(p.Text)
	case model.ParticipantsList:
		var sides [][]Parsed
		for _, entry := range p.List {
			if side := parseSide(entry, coParticipant); len(side) > 0 {
				sides = append(sides, side)
			}
		}
		return sides
	}
	return nil
}

// ExtractMatchParticipants resolves participants, winners and losers of m.
func ExtractMatchParticipants(m model.Match) Extraction {
	sides := MatchSides(m.Participants)
	ex := Extraction{Sides: sides}
	for _, side := range sides {
		ex.Participants = appendUnique(ex.Participants, Names(side)...)
		ex.Individuals = appendUnique(ex.Individuals, Individuals(side)...)
		if len(side) > 1 || (len(side) == 1 && side[0].Type == Team) {
			ex.IsTagTeam = true
		}
	}
	if !m.Participants.Valid() {
		ex.Diagnostic = "malformed participants field"
		return ex
	}

	out := parseOutcome(m.Result, sides)
	ex.HasResult = strings.TrimSpace(m.Result) != ""
	ex.Winners = out.Winners
	ex.Losers = out.Losers
	ex.Unclear = out.Unclear
	ex.Diagnostic = out.Diagnostic
	return ex
}

func appendUnique(dst []string, names ...string) []string {
	for _, n := range names {
		dup := false
		for _, d := range dst {
			if d == n {
				dup = true
				break
			}
		}
		if !dup {
			dst = append(dst, n)
		}
	}
	return dst
}
