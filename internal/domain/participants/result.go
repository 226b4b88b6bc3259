package participants

import (
	"fmt"
	"regexp"
	"strings"
)

// Outcome is the parsed result of a match.
type Outcome struct {
	Winners    []string
	Losers     []string
	Unclear    bool
	Diagnostic string
}

var (
	defeatPattern = regexp.MustCompile(`(?i)^(.+?)\s+(?:def\.?|defeats|defeated|defeat)\s+(.+)$`)
	winsPattern   = regexp.MustCompile(`(?i)^(.+?)\s+(?:wins|won|win)\b`)

	// resultTail trims prose after the loser names, e.g. "via pinfall" or
	// "to retain the title".
	resultTail = regexp.MustCompile(`(?i)\s+(?:via|by|with|after|following|to\s+(?:retain|win|become|capture|earn|advance|qualify))\b.*$`)

	resultSeparator = regexp.MustCompile(`(?i)\s*(?:&|,|\band\b)\s*`)
)

// ParseWinnersAndLosers parses resultText against the sides of
// participantsText. It never fails: unrecognized results are marked unclear
// with a diagnostic.
func ParseWinnersAndLosers(resultText, participantsText string) Outcome {
	return parseOutcome(resultText, ParseSides(participantsText))
}

func parseOutcome(result string, sides [][]Parsed) Outcome {
	result = strings.TrimSpace(result)
	if result == "" {
		return Outcome{}
	}

	if m := defeatPattern.FindStringSubmatch(result); m != nil {
		winners := resolveTokens(resultTokens(m[1]), sides)
		losers := resolveTokens(resultTokens(m[2]), sides)
		return Outcome{Winners: winners, Losers: losers}
	}

	if m := winsPattern.FindStringSubmatch(result); m != nil {
		tokens := resultTokens(m[1])
		winners := resolveTokens(tokens, sides)
		var losers []string
		for _, side := range sides {
			for _, n := range Names(side) {
				if contains(winners, n) || anyMatch(tokens, n) {
					continue
				}
				losers = appendUnique(losers, n)
			}
		}
		return Outcome{Winners: winners, Losers: losers}
	}

	return Outcome{
		Unclear:    true,
		Diagnostic: fmt.Sprintf("could not determine winner from result %q", result),
	}
}

// resultTokens splits one side of a result sentence into name tokens.
func resultTokens(s string) []string {
	s = strings.TrimSpace(resultTail.ReplaceAllString(s, ""))
	s = strings.TrimRight(s, ".!")
	var out []string
	for _, p := range parseSide(s, resultSeparator) {
		out = append(out, p.Name)
		out = append(out, p.Members...)
	}
	return out
}

// resolveTokens widens each token to every name on the side it belongs to,
// so a team name in a result credits all of its members. Tokens that match
// no side are kept verbatim.
func resolveTokens(tokens []string, sides [][]Parsed) []string {
	var out []string
	for _, tok := range tokens {
		matched := false
		for _, side := range sides {
			names := Names(side)
			if anyMatch(names, tok) {
				out = appendUnique(out, names...)
				matched = true
			}
		}
		if !matched {
			out = appendUnique(out, tok)
		}
	}
	return out
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
