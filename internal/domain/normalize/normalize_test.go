package normalize_test

import (
	"errors"
	"testing"

	"github.com/parisfoot/idfplayers/internal/domain/normalize"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRecord(t *testing.T) {
	Convey("Given a normalizer with default tables", t, func() {
		n := normalize.New()

		Convey("When a full row is normalized", func() {
			row := normalize.Row{
				"player":          "http://www.wikidata.org/entity/Q3290911",
				"playerLabel":     "Riyad Mahrez",
				"birthDate":       "1991-02-21T00:00:00Z",
				"birthPlace":      "http://www.wikidata.org/entity/Q212420",
				"birthPlaceLabel": "Sarcelles",
				"nationalities":   "France, Algérie",
			}
			p, err := n.Record(row, "95")

			Convey("Then every collected field is populated", func() {
				So(err, ShouldBeNil)
				So(p.WikidataID, ShouldEqual, "Q3290911")
				So(p.Name, ShouldEqual, "Riyad Mahrez")
				So(p.BirthDate, ShouldEqual, "1991-02-21")
				So(p.BirthYear, ShouldEqual, 1991)
				So(p.BirthplaceID, ShouldEqual, "Q212420")
				So(p.BirthplaceLabel, ShouldEqual, "Sarcelles")
				So(p.Nationalities, ShouldResemble, []string{"France", "Algérie"})
			})

			Convey("Then the pinned département wins over the label lookup", func() {
				So(p.BirthDepartment, ShouldEqual, "95")
			})
		})

		Convey("When the row is not pinned to a département", func() {
			row := normalize.Row{
				"player":          "http://www.wikidata.org/entity/Q1",
				"playerLabel":     "Test Player",
				"birthPlaceLabel": "Bondy",
			}
			p, err := n.Record(row, "")

			Convey("Then the commune table resolves it", func() {
				So(err, ShouldBeNil)
				So(p.BirthDepartment, ShouldEqual, "93")
			})
		})

		Convey("When a pinned département disagrees with the label", func() {
			// Bondy is in 93; the region-scoped query pinned 92.
			row := normalize.Row{
				"player":          "http://www.wikidata.org/entity/Q2",
				"birthPlaceLabel": "Bondy",
			}
			p, err := n.Record(row, "92")
			So(err, ShouldBeNil)
			So(p.BirthDepartment, ShouldEqual, "92")
		})

		Convey("When optional bindings are absent", func() {
			row := normalize.Row{
				"player": "http://www.wikidata.org/entity/Q3",
			}
			p, err := n.Record(row, "")

			Convey("Then absent data yields empty fields, not a failure", func() {
				So(err, ShouldBeNil)
				So(p.WikidataID, ShouldEqual, "Q3")
				So(p.BirthDate, ShouldEqual, "")
				So(p.BirthYear, ShouldEqual, 0)
				So(p.Nationalities, ShouldBeNil)
				So(p.BirthDepartment, ShouldEqual, "")
			})
		})

		Convey("When the entity binding is missing", func() {
			_, err := n.Record(normalize.Row{"playerLabel": "Ghost"}, "")
			So(errors.Is(err, normalize.ErrMalformedRow), ShouldBeTrue)
		})

		Convey("When the entity binding is not an entity URI", func() {
			_, err := n.Record(normalize.Row{"player": "not-a-uri"}, "")
			So(errors.Is(err, normalize.ErrMalformedRow), ShouldBeTrue)
		})
	})

	Convey("Given a normalizer with a substituted commune table", t, func() {
		n := normalize.New(normalize.WithCommuneTable(map[string]string{"testville": "77"}))

		Convey("Then resolution uses the injected table", func() {
			So(n.ResolveDepartment("Testville"), ShouldEqual, "77")
			So(n.ResolveDepartment("Bondy"), ShouldEqual, "")
		})
	})
}

func TestSplitNationalities(t *testing.T) {
	Convey("Given the aggregate nationality field", t, func() {
		Convey("When it holds several labels", func() {
			So(normalize.SplitNationalities("France, Mali, Sénégal"),
				ShouldResemble, []string{"France", "Mali", "Sénégal"})
		})

		Convey("When it holds duplicates", func() {
			Convey("Then first-seen order is preserved", func() {
				So(normalize.SplitNationalities("Mali, France, Mali"),
					ShouldResemble, []string{"Mali", "France"})
			})
		})

		Convey("When it holds empty segments and stray spaces", func() {
			So(normalize.SplitNationalities(" France ,, Portugal , "),
				ShouldResemble, []string{"France", "Portugal"})
		})

		Convey("When it is empty", func() {
			So(normalize.SplitNationalities(""), ShouldBeNil)
		})
	})
}

func TestParseDate(t *testing.T) {
	Convey("Given endpoint date literals", t, func() {
		Convey("When the literal is a plain dateTime", func() {
			date, year := normalize.ParseDate("1987-06-24T00:00:00Z")
			So(date, ShouldEqual, "1987-06-24")
			So(year, ShouldEqual, 1987)
		})

		Convey("When the literal carries a leading sign", func() {
			date, year := normalize.ParseDate("+1998-07-12T00:00:00Z")
			So(date, ShouldEqual, "1998-07-12")
			So(year, ShouldEqual, 1998)
		})

		Convey("When the literal is date-only", func() {
			date, year := normalize.ParseDate("2004-05-28")
			So(date, ShouldEqual, "2004-05-28")
			So(year, ShouldEqual, 2004)
		})

		Convey("When the literal is empty or garbage", func() {
			date, year := normalize.ParseDate("")
			So(date, ShouldEqual, "")
			So(year, ShouldEqual, 0)

			date, year = normalize.ParseDate("not a date")
			So(date, ShouldEqual, "")
			So(year, ShouldEqual, 0)
		})
	})
}

func TestExtractQID(t *testing.T) {
	Convey("Given entity URIs", t, func() {
		So(normalize.ExtractQID("http://www.wikidata.org/entity/Q90"), ShouldEqual, "Q90")
		So(normalize.ExtractQID("https://example.org/thing/123"), ShouldEqual, "")
		So(normalize.ExtractQID(""), ShouldEqual, "")
	})
}

func TestResolveDepartment(t *testing.T) {
	Convey("Given birthplace labels", t, func() {
		n := normalize.New()

		Convey("When the label is a Paris arrondissement", func() {
			So(n.ResolveDepartment("18e arrondissement de Paris"), ShouldEqual, "75")
			So(n.ResolveDepartment("Paris"), ShouldEqual, "75")
		})

		Convey("When the label is a known commune", func() {
			So(n.ResolveDepartment("Sarcelles"), ShouldEqual, "95")
			So(n.ResolveDepartment("Créteil"), ShouldEqual, "94")
		})

		Convey("When the commune name is embedded in a longer label", func() {
			So(n.ResolveDepartment("Meaux (Seine-et-Marne)"), ShouldEqual, "77")
		})

		Convey("When two communes share a prefix", func() {
			Convey("Then the longer, more specific name wins", func() {
				So(n.ResolveDepartment("Clichy-sous-Bois"), ShouldEqual, "93")
				So(n.ResolveDepartment("Clichy"), ShouldEqual, "92")
			})
		})

		Convey("When the label is unknown", func() {
			So(n.ResolveDepartment("Marseille"), ShouldEqual, "")
			So(n.ResolveDepartment(""), ShouldEqual, "")
		})
	})
}
