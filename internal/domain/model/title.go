package model

import "strings"

// TitleOutcome is the championship result of a match.
type TitleOutcome string

// Title outcomes.
const (
	TitleNone               TitleOutcome = "none"
	TitleNewChampion        TitleOutcome = "new-champion"
	TitleRetained           TitleOutcome = "retained"
	TitleNumberOneContender TitleOutcome = "no-1-contender"
)

// ParseTitleOutcome maps freeform upstream text onto a TitleOutcome.
// Unrecognized or empty text is TitleNone.
func ParseTitleOutcome(s string) TitleOutcome {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case v == "":
		return TitleNone
	case strings.Contains(v, "new champ"):
		return TitleNewChampion
	case strings.Contains(v, "retain"), strings.Contains(v, "successful defense"), strings.Contains(v, "defended"):
		return TitleRetained
	case strings.Contains(v, "contender"):
		return TitleNumberOneContender
	}
	switch TitleOutcome(v) {
	case TitleNewChampion, TitleRetained, TitleNumberOneContender:
		return TitleOutcome(v)
	}
	return TitleNone
}
