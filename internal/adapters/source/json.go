package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/domain/model"
)

// JSONFile loads events from a JSON document on disk.
type JSONFile struct {
	path string
}

// NewJSONFile creates a loader for path.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

// Load reads and decodes the file.
func (f *JSONFile) Load(ctx context.Context) (Season, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return Season{}, fmt.Errorf("%w: %w", ErrSource, err)
	}
	return ParseJSON(data)
}

// ParseJSON decodes an array of events, or an object with an "events"
// array.
func ParseJSON(data []byte) (Season, error) {
	if !gjson.ValidBytes(data) {
		return Season{}, fmt.Errorf("%w: invalid JSON", ErrSource)
	}
	root := gjson.ParseBytes(data)
	if root.IsObject() {
		root = root.Get("events")
	}
	if !root.IsArray() {
		return Season{}, fmt.Errorf("%w: expected an array of events", ErrSource)
	}

	var s Season
	root.ForEach(func(_, ev gjson.Result) bool {
		s.Events = append(s.Events, decodeEvent(ev, &s.Warnings))
		return true
	})
	return s, nil
}

func decodeEvent(ev gjson.Result, warnings *[]model.Warning) model.Event {
	out := model.Event{
		ID:   ev.Get("id").String(),
		Name: ev.Get("name").String(),
	}
	raw := ev.Get("date").String()
	date, ok := ParseDate(raw)
	if !ok {
		*warnings = append(*warnings, dateWarning(out.ID, out.Name, raw))
	}
	out.Date = date

	i := 0
	ev.Get("matches").ForEach(func(_, m gjson.Result) bool {
		i++
		out.Matches = append(out.Matches, decodeMatch(m, i))
		return true
	})
	return out
}

func decodeMatch(m gjson.Result, position int) model.Match {
	order := position
	if o := m.Get("order"); o.Exists() {
		order = int(o.Int())
	}
	return model.Match{
		Order:             order,
		Participants:      decodeParticipants(m.Get("participants")),
		Result:            m.Get("result").String(),
		Method:            m.Get("method").String(),
		MatchType:         m.Get("matchType").String(),
		Stipulation:       m.Get("stipulation").String(),
		Title:             m.Get("title").String(),
		TitleOutcome:      model.ParseTitleOutcome(m.Get("titleOutcome").String()),
		SpecialWinnerType: m.Get("specialWinnerType").String(),
		Qualifiers:        decodeNames(m.Get("qualifiers")),
	}
}

// decodeParticipants maps a string to text participants and an array of
// strings to a list. Any other shape is malformed.
func decodeParticipants(v gjson.Result) model.Participants {
	switch {
	case v.Type == gjson.String:
		return model.TextParticipants(v.Str)
	case v.IsArray():
		var names []string
		ok := true
		v.ForEach(func(_, n gjson.Result) bool {
			if n.Type != gjson.String {
				ok = false
				return false
			}
			names = append(names, n.Str)
			return true
		})
		if ok {
			return model.ListParticipants(names...)
		}
	}
	return model.MalformedParticipants(v.Raw)
}

func decodeNames(v gjson.Result) []string {
	if v.Type == gjson.String {
		if gjson.Valid(v.Str) && gjson.Parse(v.Str).IsArray() {
			v = gjson.Parse(v.Str)
		} else if v.Str != "" {
			return []string{v.Str}
		}
	}
	var out []string
	for _, n := range v.Array() {
		if s := n.String(); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func jsonStrings(ss []string) string {
	if ss == nil {
		ss = []string{}
	}
	b, err := json.Marshal(ss)
	if err != nil {
		return ""
	}
	return string(b)
}

