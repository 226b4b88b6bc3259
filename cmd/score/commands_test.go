package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/domain/model"
)

const season = `[
  {"id": "raw-1", "name": "Monday Night Raw", "date": "2025-01-06", "matches": [
    {"order": 1, "participants": "The Judgment Day (Finn Balor & JD McDonagh) vs The War Raiders (Erik & Ivar)",
     "result": "The Judgment Day def. The War Raiders", "matchType": "Tag Team"},
    {"order": 2, "participants": "CM Punk vs Seth Rollins", "result": "CM Punk def. Seth Rollins"}
  ]},
  {"id": "raw-1", "name": "Monday Night Raw", "date": "2025-01-06", "matches": []},
  {"id": "tour", "name": "Holiday Tour", "date": "Dec 26, 2025", "matches": [
    {"order": 1, "participants": "A vs B", "result": "A def. B"}
  ]}
]`

func execute(args ...string) (string, error) {
	var out, diag bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&diag)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeSeason(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.json")
	if err := os.WriteFile(path, []byte(season), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSummaryCommand(t *testing.T) {
	Convey("Given a season file", t, func() {
		path := writeSeason(t)

		Convey("When printing the summary as JSON", func() {
			out, err := execute("summary", "--events", path, "--json")
			So(err, ShouldBeNil)
			var summary []model.SummaryEntry
			So(json.Unmarshal([]byte(out), &summary), ShouldBeNil)

			Convey("Then the main event winner leads and ties sort by name", func() {
				So(summary[0], ShouldResemble, model.SummaryEntry{WrestlerName: "CM Punk", TotalPoints: 7})
				So(summary[1].WrestlerName, ShouldEqual, "Finn Balor")
				So(summary[2].WrestlerName, ShouldEqual, "JD McDonagh")
				So(summary[3], ShouldResemble, model.SummaryEntry{WrestlerName: "Seth Rollins", TotalPoints: 3})
			})
		})

		Convey("When printing the summary table", func() {
			out, err := execute("summary", "--events", path)

			Convey("Then tied wrestlers share a rank", func() {
				So(err, ShouldBeNil)
				lines := strings.Split(strings.TrimSpace(out), "\n")
				So(lines[0], ShouldStartWith, "RANK")
				So(strings.Fields(lines[2])[0], ShouldEqual, "2")
				So(strings.Fields(lines[3])[0], ShouldEqual, "2")
			})
		})
	})
}

func TestLedgerAndWarningsCommands(t *testing.T) {
	Convey("Given a season file", t, func() {
		path := writeSeason(t)

		Convey("When filtering the ledger by wrestler", func() {
			out, err := execute("ledger", "--events", path, "--wrestler", "finn", "--json")
			So(err, ShouldBeNil)
			var recs []model.LedgerRecord
			So(json.Unmarshal([]byte(out), &recs), ShouldBeNil)

			Convey("Then only that wrestler's rows are printed", func() {
				So(recs, ShouldHaveLength, 1)
				So(recs[0].WrestlerName, ShouldEqual, "Finn Balor")
				So(recs[0].TotalPoints, ShouldEqual, 3)
			})
		})

		Convey("When printing the ledger table", func() {
			out, err := execute("ledger", "--events", path)
			So(err, ShouldBeNil)
			header := strings.Fields(strings.SplitN(out, "\n", 2)[0])

			Convey("Then match order and match points have distinct columns", func() {
				So(header[2], ShouldEqual, "ORDER")
				So(header[4], ShouldEqual, "MATCH")
				count := 0
				for _, h := range header {
					if h == "MATCH" {
						count++
					}
				}
				So(count, ShouldEqual, 1)
			})
		})

		Convey("When listing warnings", func() {
			out, err := execute("warnings", "--events", path, "--json")
			So(err, ShouldBeNil)
			var ws []model.Warning
			So(json.Unmarshal([]byte(out), &ws), ShouldBeNil)

			Convey("Then the duplicate and the unknown event are reported", func() {
				kinds := map[model.WarningKind]int{}
				for _, w := range ws {
					kinds[w.Kind]++
				}
				So(kinds[model.WarnDuplicateEvent], ShouldEqual, 1)
				So(kinds[model.WarnUnknownEvent], ShouldEqual, 1)
			})
		})
	})
}

func TestImportCommand(t *testing.T) {
	Convey("Given a season imported into SQLite", t, func() {
		path := writeSeason(t)
		db := filepath.Join(t.TempDir(), "season.db")

		out, err := execute("import", "--events", path, "--db", db)
		So(err, ShouldBeNil)
		So(out, ShouldContainSubstring, "imported 2 events")

		Convey("When scoring from the database", func() {
			out, err := execute("summary", "--db", db, "--json")
			So(err, ShouldBeNil)
			var summary []model.SummaryEntry
			So(json.Unmarshal([]byte(out), &summary), ShouldBeNil)

			Convey("Then the totals match the JSON source", func() {
				So(summary[0], ShouldResemble, model.SummaryEntry{WrestlerName: "CM Punk", TotalPoints: 7})
			})
		})
	})

	Convey("Given a ledger saved into SQLite", t, func() {
		path := writeSeason(t)
		db := filepath.Join(t.TempDir(), "season.db")

		_, err := execute("ledger", "--events", path, "--db", db, "--save")
		So(err, ShouldBeNil)

		Convey("When reading the persisted totals", func() {
			out, err := execute("totals", "--db", db, "--json")
			So(err, ShouldBeNil)
			var body struct {
				RunID  string               `json:"runId"`
				Totals []model.SummaryEntry `json:"totals"`
			}
			So(json.Unmarshal([]byte(out), &body), ShouldBeNil)

			Convey("Then they match the scored season", func() {
				So(body.RunID, ShouldNotBeEmpty)
				So(body.Totals[0], ShouldResemble, model.SummaryEntry{WrestlerName: "CM Punk", TotalPoints: 7})
				So(body.Totals, ShouldHaveLength, 6)
			})
		})

		Convey("When printing the totals table", func() {
			out, err := execute("totals", "--db", db)

			Convey("Then the run id heads the table", func() {
				So(err, ShouldBeNil)
				So(out, ShouldStartWith, "RUN")
				So(out, ShouldContainSubstring, "CM Punk")
			})
		})
	})

	Convey("Given totals or --save without a database", t, func() {
		_, err := execute("totals")
		So(err, ShouldNotBeNil)
		_, err = execute("ledger", "--events", writeSeason(t), "--save")
		So(err, ShouldNotBeNil)
	})

	Convey("Given no source flags", t, func() {
		_, err := execute("summary")
		So(errors.Is(err, errNoSource), ShouldBeTrue)
	})
}
