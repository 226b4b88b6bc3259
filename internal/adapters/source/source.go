// Package source reads a season of events from JSON files or SQLite.
package source

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/domain/model"
)

// ErrSource marks an unreadable or structurally invalid source.
var ErrSource = errors.New("event source failed")

// Season is the raw input of one scoring pass.
type Season struct {
	Events []model.Event
	// Warnings are load-time diagnostics such as unparseable dates.
	Warnings []model.Warning
}

// Loader reads a season.
type Loader interface {
	Load(ctx context.Context) (Season, error)
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// ParseDate accepts the layouts upstream data uses. The empty string is a
// valid "no date".
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, true
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func dateWarning(id, name, raw string) model.Warning {
	return model.Warning{
		Kind:      model.WarnBadDate,
		EventID:   id,
		EventName: name,
		Message:   fmt.Sprintf("unparseable event date %q", raw),
	}
}

// participantsValue renders a participants field for storage: text as-is,
// lists as a JSON array, malformed values as NULL.
func participantsValue(p model.Participants) any {
	switch p.Kind {
	case model.ParticipantsText:
		return p.Text
	case model.ParticipantsList:
		return jsonStrings(p.List)
	default:
		return nil
	}
}
