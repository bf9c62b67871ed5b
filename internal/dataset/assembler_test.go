package dataset_test

import (
	"context"
	"testing"

	"github.com/parisfoot/idfplayers/internal/dataset"
	"github.com/parisfoot/idfplayers/internal/domain/classify"
	"github.com/parisfoot/idfplayers/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func batchOf(dept string, players ...model.Player) model.Batch {
	return model.Batch{Department: dept, Count: len(players), Players: players}
}

func TestAssemblerMerge(t *testing.T) {
	Convey("Given an empty assembler", t, func() {
		a := dataset.New()
		ctx := context.Background()

		Convey("When two batches with an overlapping entity are added", func() {
			first := batchOf("93",
				model.Player{WikidataID: "Q1", Name: "From 93", BirthDepartment: "93"},
				model.Player{WikidataID: "Q2", Name: "Also 93", BirthDepartment: "93"},
			)
			second := batchOf("95",
				model.Player{WikidataID: "Q1", Name: "From 95", BirthDepartment: "95"},
				model.Player{WikidataID: "Q3", Name: "New 95", BirthDepartment: "95"},
			)

			So(a.Add(ctx, first), ShouldEqual, 2)
			So(a.Add(ctx, second), ShouldEqual, 1)

			Convey("Then the first-seen record wins", func() {
				So(a.Len(), ShouldEqual, 3)
				players := a.Players()
				So(players[0].Name, ShouldEqual, "From 93")
				So(players[0].BirthDepartment, ShouldEqual, "93")
			})
		})

		Convey("When the same batch is added twice", func() {
			batch := batchOf("75",
				model.Player{WikidataID: "Q10"},
				model.Player{WikidataID: "Q11"},
			)
			So(a.Add(ctx, batch), ShouldEqual, 2)

			Convey("Then the second add is a no-op", func() {
				So(a.Add(ctx, batch), ShouldEqual, 0)
				So(a.Len(), ShouldEqual, 2)
			})
		})

		Convey("When a record has no entity identifier", func() {
			So(a.Add(ctx, batchOf("77", model.Player{Name: "Ghost"})), ShouldEqual, 0)
			So(a.Len(), ShouldEqual, 0)
		})
	})
}

func TestAssemblerClassifyAll(t *testing.T) {
	Convey("Given an assembler with collected records", t, func() {
		a := dataset.New()
		ctx := context.Background()
		a.Add(ctx, batchOf("93",
			model.Player{WikidataID: "Q1", Nationalities: []string{"France", "Mali"}},
			model.Player{WikidataID: "Q2", Nationalities: []string{"France"}},
			model.Player{WikidataID: "Q3"},
			// stale derived values from an earlier schema must be recomputed
			model.Player{WikidataID: "Q4", Nationalities: []string{"France"}, IsDualNational: true, DiasporaRegion: "Maghreb"},
		))

		Convey("When the classification pass runs", func() {
			a.ClassifyAll()
			players := a.Players()

			Convey("Then dual nationals with a matching country are classified", func() {
				So(players[0].IsDualNational, ShouldBeTrue)
				So(players[0].DiasporaRegion, ShouldEqual, "Sub-Saharan Africa")
				So(players[0].DiasporaCountries, ShouldResemble, []string{"Mali"})
			})

			Convey("Then home-only records get no region", func() {
				So(players[1].IsDualNational, ShouldBeFalse)
				So(players[1].DiasporaRegion, ShouldEqual, "")
			})

			Convey("Then empty nationality lists are a legitimate null, not an error", func() {
				So(players[2].IsDualNational, ShouldBeFalse)
				So(players[2].DiasporaRegion, ShouldEqual, "")
			})

			Convey("Then stale derived fields are overwritten from the source field", func() {
				So(players[3].IsDualNational, ShouldBeFalse)
				So(players[3].DiasporaRegion, ShouldEqual, "")
			})
		})
	})

	Convey("Given an assembler with a substituted classifier", t, func() {
		a := dataset.New(dataset.WithClassifier(classify.New(
			classify.WithRegions([]classify.Region{{Name: "Nordics", Countries: []string{"Suède"}}}),
		)))
		a.Add(context.Background(), batchOf("75",
			model.Player{WikidataID: "Q1", Nationalities: []string{"France", "Suède"}},
		))
		a.ClassifyAll()

		Convey("Then the injected table drives classification", func() {
			So(a.Players()[0].DiasporaRegion, ShouldEqual, "Nordics")
		})
	})
}

func TestSummarize(t *testing.T) {
	Convey("Given a classified collection", t, func() {
		a := dataset.New()
		ctx := context.Background()
		a.Add(ctx, batchOf("93",
			model.Player{WikidataID: "Q1", BirthDepartment: "93", Nationalities: []string{"France", "Mali"}},
			model.Player{WikidataID: "Q2", BirthDepartment: "93", Nationalities: []string{"France", "Algérie"}},
		))
		a.Add(ctx, batchOf("75",
			model.Player{WikidataID: "Q3", BirthDepartment: "75", Nationalities: []string{"France"}},
		))
		a.ClassifyAll()

		Convey("When summarizing with a missing département", func() {
			s := a.Summarize("run-42", []string{"95"})

			Convey("Then the counts line up", func() {
				So(s.Total, ShouldEqual, 3)
				So(s.Dual, ShouldEqual, 2)
				So(s.ByDept, ShouldResemble, map[string]int{"93": 2, "75": 1})
				So(s.ByRegion, ShouldResemble, map[string]int{"Sub-Saharan Africa": 1, "Maghreb": 1})
				So(s.ByCountry["Mali"], ShouldEqual, 1)
			})

			Convey("Then the missing département is stated explicitly", func() {
				So(s.Missing, ShouldResemble, []string{"95"})
				md := s.Markdown()
				So(md, ShouldContainSubstring, "Missing départements")
				So(md, ShouldContainSubstring, "Val-d'Oise (95)")
			})
		})
	})
}
