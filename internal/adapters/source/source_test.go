package source_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/adapters/source"
	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/domain/aggregate"
	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/domain/model"
)

const seasonJSON = `{
  "events": [
    {
      "id": "raw-2025-01-06",
      "name": "Monday Night Raw",
      "date": "2025-01-06",
      "matches": [
        {"order": 1, "participants": "CM Punk vs Seth Rollins", "result": "CM Punk def. Seth Rollins", "method": "Pinfall"},
        {"order": 2, "participants": ["Rhea Ripley", "Liv Morgan", "Iyo Sky"], "result": "Rhea Ripley wins", "matchType": "Battle Royal"},
        {"order": 3, "participants": {"bad": true}}
      ]
    },
    {
      "id": 42,
      "name": "Elimination Chamber",
      "date": "March 1, 2025",
      "matches": [
        {"participants": "A vs B vs C vs D vs E vs F", "result": "A wins", "matchType": "Elimination Chamber",
         "qualifiers": ["B", "C"], "title": "World Heavyweight Championship", "titleOutcome": "Title retained"}
      ]
    },
    {"id": "x", "name": "Backlash", "date": "sometime in May"}
  ]
}`

func TestParseDate(t *testing.T) {
	Convey("Given upstream date strings", t, func() {
		want := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		for _, s := range []string{"2025-03-01", "03/01/2025", "Mar 1, 2025", "March 1, 2025", "2025-03-01T00:00:00Z"} {
			got, ok := source.ParseDate(s)
			So(ok, ShouldBeTrue)
			So(got.Equal(want), ShouldBeTrue)
		}

		Convey("Then empty is a valid zero date and junk is rejected", func() {
			got, ok := source.ParseDate("  ")
			So(ok, ShouldBeTrue)
			So(got.IsZero(), ShouldBeTrue)

			_, ok = source.ParseDate("next week")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestParseJSON(t *testing.T) {
	Convey("Given a season document", t, func() {
		s, err := source.ParseJSON([]byte(seasonJSON))
		So(err, ShouldBeNil)
		So(s.Events, ShouldHaveLength, 3)

		Convey("Then participants become text, list or malformed", func() {
			raw := s.Events[0]
			So(raw.Matches[0].Participants, ShouldResemble, model.TextParticipants("CM Punk vs Seth Rollins"))
			So(raw.Matches[1].Participants, ShouldResemble, model.ListParticipants("Rhea Ripley", "Liv Morgan", "Iyo Sky"))
			So(raw.Matches[2].Participants.Valid(), ShouldBeFalse)
			So(raw.Matches[2].Participants.Raw, ShouldEqual, `{"bad": true}`)
		})

		Convey("Then numeric ids, missing orders and freeform outcomes are normalized", func() {
			ec := s.Events[1]
			So(ec.ID, ShouldEqual, "42")
			So(ec.Date.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)), ShouldBeTrue)
			So(ec.Matches[0].Order, ShouldEqual, 1)
			So(ec.Matches[0].Qualifiers, ShouldResemble, []string{"B", "C"})
			So(ec.Matches[0].TitleOutcome, ShouldEqual, model.TitleRetained)
		})

		Convey("Then a bad date yields a zero date and a warning", func() {
			So(s.Events[2].Date.IsZero(), ShouldBeTrue)
			So(s.Warnings, ShouldHaveLength, 1)
			So(s.Warnings[0].Kind, ShouldEqual, model.WarnBadDate)
			So(s.Warnings[0].EventID, ShouldEqual, "x")
		})
	})

	Convey("Given a bare array", t, func() {
		s, err := source.ParseJSON([]byte(`[{"id":"1","name":"SmackDown","matches":[]}]`))
		So(err, ShouldBeNil)
		So(s.Events, ShouldHaveLength, 1)
		So(s.Events[0].Matches, ShouldBeEmpty)
	})

	Convey("Given invalid documents", t, func() {
		_, err := source.ParseJSON([]byte(`{"events":`))
		So(errors.Is(err, source.ErrSource), ShouldBeTrue)

		_, err = source.ParseJSON([]byte(`"hello"`))
		So(errors.Is(err, source.ErrSource), ShouldBeTrue)
	})
}

func TestJSONFile(t *testing.T) {
	Convey("Given a JSON file on disk", t, func() {
		path := filepath.Join(t.TempDir(), "events.json")
		So(os.WriteFile(path, []byte(seasonJSON), 0o600), ShouldBeNil)

		s, err := source.NewJSONFile(path).Load(context.Background())
		So(err, ShouldBeNil)
		So(s.Events, ShouldHaveLength, 3)

		Convey("Then a missing file is a source error", func() {
			_, err := source.NewJSONFile(path + ".missing").Load(context.Background())
			So(errors.Is(err, source.ErrSource), ShouldBeTrue)
		})
	})
}

func TestSQLiteRoundTrip(t *testing.T) {
	Convey("Given a fresh SQLite database", t, func() {
		ctx := context.Background()
		db, err := source.Open(filepath.Join(t.TempDir(), "season.db"))
		So(err, ShouldBeNil)
		defer db.Close()

		parsed, err := source.ParseJSON([]byte(seasonJSON))
		So(err, ShouldBeNil)
		So(db.SaveEvents(ctx, parsed.Events), ShouldBeNil)

		Convey("When loading the events back", func() {
			s, err := db.Load(ctx)
			So(err, ShouldBeNil)

			Convey("Then events keep insertion order and matches keep card order", func() {
				So(s.Events, ShouldHaveLength, 3)
				So(s.Events[0].Name, ShouldEqual, "Monday Night Raw")
				So(s.Events[1].ID, ShouldEqual, "42")
				So(s.Events[0].Matches, ShouldHaveLength, 3)
				So(s.Events[0].Matches[1].Participants, ShouldResemble, model.ListParticipants("Rhea Ripley", "Liv Morgan", "Iyo Sky"))
				So(s.Events[0].Matches[2].Participants.Valid(), ShouldBeFalse)
				So(s.Events[1].Matches[0].Qualifiers, ShouldResemble, []string{"B", "C"})
				So(s.Events[1].Matches[0].TitleOutcome, ShouldEqual, model.TitleRetained)
			})
		})

		Convey("When saving the same events twice", func() {
			So(db.SaveEvents(ctx, parsed.Events), ShouldBeNil)
			s, err := db.Load(ctx)
			So(err, ShouldBeNil)

			Convey("Then matches are replaced, not duplicated", func() {
				So(s.Events[0].Matches, ShouldHaveLength, 3)
			})
		})

		Convey("When persisting a ledger", func() {
			records := []model.LedgerRecord{
				{EventID: "raw", MatchOrder: 1, WrestlerName: "CM Punk", TotalPoints: 3, Breakdown: []string{"Undercard win (Raw): +2", "On card (Raw): +1"}},
				{EventID: "raw", MatchOrder: 2, WrestlerName: "CM Punk", TotalPoints: 4},
				{EventID: "raw", MatchOrder: 1, WrestlerName: "Seth Rollins", TotalPoints: 1},
			}
			So(db.SaveLedger(ctx, "run-1", records), ShouldBeNil)
			So(db.SaveLedger(ctx, "run-2", records), ShouldBeNil)

			run, totals, err := db.LedgerTotals(ctx)

			Convey("Then only the latest run is kept and totals are ranked", func() {
				So(err, ShouldBeNil)
				So(run, ShouldEqual, "run-2")
				So(totals, ShouldResemble, []model.SummaryEntry{
					{WrestlerName: "CM Punk", TotalPoints: 7},
					{WrestlerName: "Seth Rollins", TotalPoints: 1},
				})
			})
		})
	})
}

const tiedCardJSON = `[
  {"id": "raw-tie", "name": "Monday Night Raw", "date": "2025-02-03", "matches": [
    {"order": 1, "participants": "Dominik Mysterio vs Rey Mysterio", "result": "Dominik Mysterio def. Rey Mysterio"},
    {"order": 2, "participants": "Gunther vs Sami Zayn", "result": "Gunther def. Sami Zayn"},
    {"order": 2, "participants": "Rhea Ripley vs Liv Morgan", "result": "Rhea Ripley def. Liv Morgan"}
  ]}
]`

const idlessJSON = `[
  {"name": "Monday Night Raw", "date": "2025-01-06", "matches": [
    {"order": 1, "participants": "CM Punk vs Seth Rollins", "result": "CM Punk def. Seth Rollins"}
  ]},
  {"name": "Friday Night SmackDown", "date": "2025-01-10", "matches": [
    {"order": 1, "participants": "Cody Rhodes vs Kevin Owens", "result": "Cody Rhodes def. Kevin Owens"}
  ]}
]`

func TestSQLiteCardEdgeCases(t *testing.T) {
	Convey("Given a card whose last two matches share an order", t, func() {
		ctx := context.Background()
		db, err := source.Open(filepath.Join(t.TempDir(), "season.db"))
		So(err, ShouldBeNil)
		defer db.Close()

		parsed, err := source.ParseJSON([]byte(tiedCardJSON))
		So(err, ShouldBeNil)
		So(db.SaveEvents(ctx, parsed.Events), ShouldBeNil)

		s, err := db.Load(ctx)
		So(err, ShouldBeNil)

		Convey("Then both tied matches come back in input order", func() {
			So(s.Events, ShouldHaveLength, 1)
			matches := s.Events[0].Matches
			So(matches, ShouldHaveLength, 3)
			So(matches[1].Order, ShouldEqual, 2)
			So(matches[1].Participants.Text, ShouldEqual, "Gunther vs Sami Zayn")
			So(matches[2].Order, ShouldEqual, 2)
			So(matches[2].Participants.Text, ShouldEqual, "Rhea Ripley vs Liv Morgan")
		})

		Convey("Then both tied matches score as main events", func() {
			res := aggregate.ProcessAllMatches(ctx, s.Events)
			mainEvent := map[string]bool{}
			for _, r := range res.Records {
				mainEvent[r.WrestlerName] = r.IsMainEvent
			}
			So(mainEvent["Gunther"], ShouldBeTrue)
			So(mainEvent["Rhea Ripley"], ShouldBeTrue)
			So(mainEvent["Dominik Mysterio"], ShouldBeFalse)
		})
	})

	Convey("Given two events without ids", t, func() {
		ctx := context.Background()
		db, err := source.Open(filepath.Join(t.TempDir(), "season.db"))
		So(err, ShouldBeNil)
		defer db.Close()

		parsed, err := source.ParseJSON([]byte(idlessJSON))
		So(err, ShouldBeNil)
		So(db.SaveEvents(ctx, parsed.Events), ShouldBeNil)

		Convey("When they are loaded back", func() {
			s, err := db.Load(ctx)
			So(err, ShouldBeNil)

			Convey("Then both survive with their own matches and an empty id", func() {
				So(s.Events, ShouldHaveLength, 2)
				So(s.Events[0].Name, ShouldEqual, "Monday Night Raw")
				So(s.Events[0].ID, ShouldBeEmpty)
				So(s.Events[0].Matches[0].Participants.Text, ShouldEqual, "CM Punk vs Seth Rollins")
				So(s.Events[1].Name, ShouldEqual, "Friday Night SmackDown")
				So(s.Events[1].Matches[0].Participants.Text, ShouldEqual, "Cody Rhodes vs Kevin Owens")
			})
		})

		Convey("When the same events are saved again", func() {
			So(db.SaveEvents(ctx, parsed.Events), ShouldBeNil)
			s, err := db.Load(ctx)
			So(err, ShouldBeNil)

			Convey("Then they are updated in place", func() {
				So(s.Events, ShouldHaveLength, 2)
				So(s.Events[0].Matches, ShouldHaveLength, 1)
			})
		})
	})
}
