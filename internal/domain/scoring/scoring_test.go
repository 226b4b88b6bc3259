package scoring_test

import (
	"testing"

	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/domain/model"
	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func event(name string, matches ...model.Match) model.Event {
	return model.Event{ID: "ev-1", Name: name, Matches: matches}
}

func singles(order int, a, b, result string) model.Match {
	return model.Match{
		Order:        order,
		Participants: model.TextParticipants(a + " vs " + b),
		Result:       result,
		Method:       "Pinfall",
	}
}

func score(ev model.Event, i int, wrestler string) model.Breakdown {
	return scoring.CalculateMatchPoints(ev.Matches[i], ev, ev.Matches, wrestler)
}

func shouldBalance(b model.Breakdown) {
	So(b.Total, ShouldEqual, b.MatchPoints+b.TitlePoints+b.SpecialPoints+b.MainEventPoints+b.BattleRoyalPoints)
}

func TestCalculateMatchPoints_Weekly(t *testing.T) {
	Convey("Given a weekly show with an undercard and a main event", t, func() {
		ev := event("Monday Night Raw",
			singles(1, "Sami Zayn", "Bronson Reed", "Sami Zayn def. Bronson Reed"),
			singles(2, "CM Punk", "Seth Rollins", "CM Punk def. Seth Rollins"),
		)

		Convey("When the undercard winner is scored", func() {
			b := score(ev, 0, "Sami Zayn")

			Convey("Then it earns the win and the on-card points", func() {
				So(b.MatchPoints, ShouldEqual, 3)
				So(b.MainEventPoints, ShouldEqual, 0)
				So(b.Total, ShouldEqual, 3)
				So(b.Audit, ShouldHaveLength, 2)
				shouldBalance(b)
			})
		})

		Convey("When the undercard loser is scored", func() {
			b := score(ev, 0, "Bronson Reed")
			So(b.MatchPoints, ShouldEqual, 1)
			So(b.Total, ShouldEqual, 1)
		})

		Convey("When the main event loser is scored", func() {
			b := score(ev, 1, "Seth Rollins")

			Convey("Then it earns only the main event points", func() {
				So(b.MatchPoints, ShouldEqual, 0)
				So(b.MainEventPoints, ShouldEqual, 3)
				So(b.Total, ShouldEqual, 3)
			})
		})

		Convey("When a wrestler not in the match is scored", func() {
			b := score(ev, 0, "CM Punk")

			Convey("Then the breakdown is all zero", func() {
				So(b.IsZero(), ShouldBeTrue)
				So(b.Total, ShouldEqual, 0)
				So(b.Audit, ShouldBeEmpty)
			})
		})
	})
}

func TestCalculateMatchPoints_MajorEvents(t *testing.T) {
	Convey("Given WrestleMania Night 2", t, func() {
		ev := event("WrestleMania 41 Night 2",
			singles(1, "Jey Uso", "Gunther", "Jey Uso def. Gunther"),
			singles(2, "Cody Rhodes", "John Cena", "John Cena def. Cody Rhodes"),
		)

		Convey("When the main event winner is scored", func() {
			b := score(ev, 1, "John Cena")

			Convey("Then it earns the main event win and main event points", func() {
				So(b.MatchPoints, ShouldEqual, 35)
				So(b.MainEventPoints, ShouldEqual, 25)
				So(b.Total, ShouldEqual, 60)
				shouldBalance(b)
			})
		})

		Convey("When an undercard winner is scored", func() {
			b := score(ev, 0, "Jey Uso")
			So(b.MatchPoints, ShouldEqual, 18)
			So(b.Total, ShouldEqual, 18)
		})
	})

	Convey("Given an event with two matches tied for the main event", t, func() {
		ev := event("SummerSlam Night 1",
			singles(1, "A", "B", "A def. B"),
			singles(2, "C", "D", "C def. D"),
			singles(2, "E", "F", "E def. F"),
		)

		Convey("Then both top matches pay main event points", func() {
			So(score(ev, 1, "D").MainEventPoints, ShouldEqual, 10)
			So(score(ev, 2, "F").MainEventPoints, ShouldEqual, 10)
			So(score(ev, 0, "B").MainEventPoints, ShouldEqual, 0)
		})
	})
}

func TestCalculateMatchPoints_Titles(t *testing.T) {
	Convey("Given a title defended by disqualification on a weekly show", t, func() {
		m := singles(1, "Gunther (c)", "Sami Zayn", "Gunther def. Sami Zayn by DQ")
		m.Method = "DQ"
		m.Title = "World Heavyweight Championship"
		m.TitleOutcome = model.TitleRetained
		ev := event("SmackDown", m, singles(2, "X", "Y", "X def. Y"))

		b := score(ev, 0, "Gunther")

		Convey("Then title points drop to 2 and match points are halved", func() {
			So(b.TitlePoints, ShouldEqual, 2)
			So(b.MatchPoints, ShouldEqual, 1) // floor((2 + 1) / 2)
			So(b.Total, ShouldEqual, 3)
			shouldBalance(b)
		})
	})

	Convey("Given a title change by disqualification", t, func() {
		m := singles(1, "Jade Cargill", "Tiffany Stratton", "Jade Cargill def. Tiffany Stratton")
		m.Method = "Disqualification"
		m.Title = "WWE Women's Championship"
		m.TitleOutcome = model.TitleNewChampion
		ev := event("Backlash", m, singles(2, "X", "Y", "X def. Y"))

		b := score(ev, 0, "Jade Cargill")

		Convey("Then the title change still pays full title points", func() {
			So(b.TitlePoints, ShouldEqual, 5)
			So(b.MatchPoints, ShouldEqual, 4) // floor((6 + 3) / 2)
			So(b.Total, ShouldEqual, 9)
		})
	})

	Convey("Given a successful clean title defense", t, func() {
		m := singles(1, "Gunther", "Jey Uso", "Gunther def. Jey Uso")
		m.Title = "World Heavyweight Championship"
		m.TitleOutcome = model.TitleRetained
		ev := event("Raw", m, singles(2, "X", "Y", "X def. Y"))

		Convey("Then the champion earns 4 title points and the challenger none", func() {
			So(score(ev, 0, "Gunther").TitlePoints, ShouldEqual, 4)
			So(score(ev, 0, "Jey Uso").TitlePoints, ShouldEqual, 0)
		})
	})
}

func TestCalculateMatchPoints_SpecialMatches(t *testing.T) {
	Convey("Given the Royal Rumble event", t, func() {
		rumble := model.Match{
			Order:             3,
			Participants:      model.ListParticipants("Jey Uso", "John Cena", "Logan Paul"),
			Result:            "Jey Uso wins the Royal Rumble",
			MatchType:         "Royal Rumble",
			SpecialWinnerType: "Men's Royal Rumble winner",
		}
		ev := event("Royal Rumble 2025",
			singles(1, "Bianca Belair", "Naomi", "Bianca Belair def. Naomi"),
			singles(2, "Cody Rhodes", "Kevin Owens", "Cody Rhodes def. Kevin Owens"),
			rumble,
		)

		Convey("When the Rumble winner is scored", func() {
			b := score(ev, 2, "Jey Uso")

			Convey("Then participant and winner points land in special points", func() {
				So(b.SpecialPoints, ShouldEqual, 32)
				So(b.MatchPoints, ShouldEqual, 0)
				So(b.MainEventPoints, ShouldEqual, 0)
				So(b.BattleRoyalPoints, ShouldEqual, 0)
				So(b.Total, ShouldEqual, 32)
			})
		})

		Convey("When a Rumble entrant who did not win is scored", func() {
			So(score(ev, 2, "Logan Paul").SpecialPoints, ShouldEqual, 2)
		})

		Convey("When a non-Rumble match on the card is scored", func() {
			b := score(ev, 1, "Cody Rhodes")

			Convey("Then the Royal Rumble tier table applies", func() {
				So(b.SpecialPoints, ShouldEqual, 0)
				So(b.MatchPoints, ShouldEqual, 15)
				So(b.Total, ShouldEqual, 15)
			})
		})
	})

	Convey("Given a War Games main event at Survivor Series", t, func() {
		wg := model.Match{
			Order:        2,
			Participants: model.TextParticipants("The OG Bloodline (Roman Reigns & Jimmy Uso) vs The Bloodline (Solo Sikoa & Jacob Fatu)"),
			Result:       "The OG Bloodline def. The Bloodline",
			MatchType:    "Men's WarGames",
		}
		ev := event("Survivor Series: WarGames", singles(1, "A", "B", "A def. B"), wg)
		b := score(ev, 1, "Roman Reigns")

		Convey("Then War Games points add to the tier table", func() {
			So(b.SpecialPoints, ShouldEqual, 22)
			So(b.MatchPoints, ShouldEqual, 15)
			So(b.MainEventPoints, ShouldEqual, 12)
			So(b.Total, ShouldEqual, 49)
		})
	})

	Convey("Given an Elimination Chamber match with a flagged qualifier", t, func() {
		ec := model.Match{
			Order:        1,
			Participants: model.ListParticipants("John Cena", "CM Punk", "Drew McIntyre"),
			Result:       "John Cena wins",
			MatchType:    "Elimination Chamber",
			Qualifiers:   []string{"CM Punk"},
		}
		ev := event("Elimination Chamber: Toronto", ec, singles(2, "X", "Y", "X def. Y"))

		So(score(ev, 0, "John Cena").SpecialPoints, ShouldEqual, 30)
		So(score(ev, 0, "CM Punk").SpecialPoints, ShouldEqual, 10)
		So(score(ev, 0, "Drew McIntyre").Total, ShouldEqual, 0)
	})

	Convey("Given the Crown Jewel Championship as the main event", t, func() {
		cj := singles(2, "Cody Rhodes", "Gunther", "Cody Rhodes def. Gunther")
		cj.Title = "Crown Jewel Championship"
		ev := event("Crown Jewel", singles(1, "A", "B", "A def. B"), cj)

		Convey("Then the main event bonus is suppressed", func() {
			w := score(ev, 1, "Cody Rhodes")
			So(w.SpecialPoints, ShouldEqual, 20)
			So(w.MainEventPoints, ShouldEqual, 0)
			So(w.Total, ShouldEqual, 20)
			So(score(ev, 1, "Gunther").SpecialPoints, ShouldEqual, 10)
		})
	})

	Convey("Given a Money in the Bank ladder match", t, func() {
		mitb := model.Match{
			Order:        1,
			Participants: model.ListParticipants("Seth Rollins", "LA Knight", "Penta"),
			Result:       "Seth Rollins wins",
			MatchType:    "Money in the Bank Ladder",
		}
		ev := event("Money in the Bank", mitb, singles(2, "X", "Y", "X def. Y"))

		So(score(ev, 0, "Seth Rollins").SpecialPoints, ShouldEqual, 37)
		So(score(ev, 0, "Penta").SpecialPoints, ShouldEqual, 12)
	})

	Convey("Given a battle royal on a weekly show", t, func() {
		br := model.Match{
			Order:        1,
			Participants: model.ListParticipants("Otis", "Akira Tozawa", "Ivar"),
			Result:       "Otis wins",
			MatchType:    "Battle Royal",
		}
		ev := event("Raw", br, singles(2, "X", "Y", "X def. Y"))

		Convey("Then battle royal points stack with the tier table", func() {
			w := score(ev, 0, "Otis")
			So(w.BattleRoyalPoints, ShouldEqual, 9)
			So(w.MatchPoints, ShouldEqual, 3)
			So(score(ev, 0, "Ivar").BattleRoyalPoints, ShouldEqual, 1)
		})
	})
}

func TestCalculateMatchPoints_FailOpen(t *testing.T) {
	Convey("Given an unrecognized event", t, func() {
		ev := event("House Show", singles(1, "A", "B", "A def. B"))
		b := score(ev, 0, "A")

		Convey("Then the breakdown is zero with a warning", func() {
			So(b.IsZero(), ShouldBeTrue)
			So(b.Total, ShouldEqual, 0)
			So(b.Warnings, ShouldNotBeEmpty)
		})
	})

	Convey("Given a no contest undercard match", t, func() {
		m := singles(1, "A", "B", "No contest")
		m.Method = "No Contest"
		ev := event("Raw", m, singles(2, "X", "Y", "X def. Y"))
		b := score(ev, 0, "A")

		Convey("Then no points are awarded but the audit explains why", func() {
			So(b.Total, ShouldEqual, 0)
			So(b.Audit, ShouldNotBeEmpty)
			So(b.Warnings, ShouldBeEmpty)
		})
	})

	Convey("Given an unclear result", t, func() {
		ev := event("Raw", singles(1, "A", "B", "Chaos ensued"), singles(2, "X", "Y", "X def. Y"))
		b := score(ev, 0, "A")

		Convey("Then the wrestler keeps on-card points and a warning is raised", func() {
			So(b.MatchPoints, ShouldEqual, 1)
			So(b.Warnings, ShouldNotBeEmpty)
		})
	})
}

func TestCalculator_WithRule(t *testing.T) {
	Convey("Given a calculator with a rule for unknown events", t, func() {
		calc := scoring.New(scoring.WithRule(model.EventUnknown, scoring.Rule{MainEventWin: 1, MainEvent: 1, UndercardWin: 1, OnCard: 1}))
		ev := event("House Show", singles(1, "A", "B", "A def. B"))

		b := calc.CalculateMatchPoints(ev.Matches[0], ev, ev.Matches, "A")
		So(b.Total, ShouldEqual, 2)
	})
}
