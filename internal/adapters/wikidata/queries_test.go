package wikidata_test

import (
	"strings"
	"testing"

	"github.com/parisfoot/idfplayers/internal/adapters/wikidata"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBuilder(t *testing.T) {
	Convey("Given a builder with default tables", t, func() {
		b := wikidata.NewBuilder()

		Convey("When preparing the players query for Seine-Saint-Denis", func() {
			q, err := b.PlayersByDepartment("93")
			So(err, ShouldBeNil)

			Convey("Then the département QID is substituted", func() {
				So(q, ShouldContainSubstring, "wd:Q12761")
			})

			Convey("Then the located-in traversal is bounded to three hops", func() {
				So(q, ShouldContainSubstring, "?birthPlace wdt:P131 wd:Q12761")
				So(q, ShouldContainSubstring, "wdt:P131/wdt:P131 wd:Q12761")
				So(q, ShouldContainSubstring, "wdt:P131/wdt:P131/wdt:P131 wd:Q12761")
				So(strings.Count(q, "UNION"), ShouldEqual, 2)
			})

			Convey("Then the default year bounds are applied", func() {
				So(q, ShouldContainSubstring, "YEAR(?birthDate) >= 1980")
				So(q, ShouldContainSubstring, "YEAR(?birthDate) <= 2006")
			})

			Convey("Then nationalities are aggregated per player", func() {
				So(q, ShouldContainSubstring, "GROUP_CONCAT(DISTINCT ?nationalityLabel")
				So(q, ShouldContainSubstring, "GROUP BY ?player")
			})

			Convey("Then labels use the fixed language", func() {
				So(q, ShouldContainSubstring, `LANG(?nationalityLabel) = "fr"`)
			})
		})

		Convey("When preparing a query for an unknown code", func() {
			_, err := b.PlayersByDepartment("69")
			So(err, ShouldWrap, wikidata.ErrUnknownDepartment)
		})

		Convey("When preparing the probe query", func() {
			q, err := b.Probe()
			So(err, ShouldBeNil)
			So(q, ShouldContainSubstring, "LIMIT 1")
		})
	})

	Convey("Given a builder with custom bounds and tables", t, func() {
		b := wikidata.NewBuilder(
			wikidata.WithDepartmentQIDs(map[string]string{"69": "Q46130"}),
			wikidata.WithYearRange(1990, 2000),
			wikidata.WithLabelLang("en"),
		)

		Convey("Then the overrides are substituted", func() {
			q, err := b.PlayersByDepartment("69")
			So(err, ShouldBeNil)
			So(q, ShouldContainSubstring, "wd:Q46130")
			So(q, ShouldContainSubstring, "YEAR(?birthDate) >= 1990")
			So(q, ShouldContainSubstring, "YEAR(?birthDate) <= 2000")
			So(q, ShouldContainSubstring, `LANG(?nationalityLabel) = "en"`)
		})

		Convey("Then the default codes are gone", func() {
			_, err := b.PlayersByDepartment("75")
			So(err, ShouldWrap, wikidata.ErrUnknownDepartment)
		})
	})
}
