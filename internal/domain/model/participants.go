package model

// ParticipantsKind tells which form a match's participants field took.
type ParticipantsKind int

// Participants forms.
const (
	ParticipantsMalformed ParticipantsKind = iota
	ParticipantsText
	ParticipantsList
)

// Participants is the raw participants field of a match: either a
// "A vs B" style string or a flat list of competitors. Anything else is
// kept as malformed so the aggregator can report and skip it.
type Participants struct {
	Kind ParticipantsKind
	Text string
	List []string
	// Raw holds the original value for malformed input.
	Raw string
}

// TextParticipants wraps a "vs"-delimited participants string.
func TextParticipants(s string) Participants {
	return Participants{Kind: ParticipantsText, Text: s}
}

// ListParticipants wraps a flat list of competitors.
func ListParticipants(names ...string) Participants {
	return Participants{Kind: ParticipantsList, List: append([]string(nil), names...)}
}

// MalformedParticipants records a participants value of an unsupported shape.
func MalformedParticipants(raw string) Participants {
	return Participants{Kind: ParticipantsMalformed, Raw: raw}
}

// Valid reports whether the field holds a usable string or list.
func (p Participants) Valid() bool {
	return p.Kind == ParticipantsText || p.Kind == ParticipantsList
}
