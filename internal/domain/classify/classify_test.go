package classify_test

import (
	"testing"

	"github.com/parisfoot/idfplayers/internal/domain/classify"
	. "github.com/smartystreets/goconvey/convey"
)

func TestIsDualNational(t *testing.T) {
	Convey("Given a classifier with default tables", t, func() {
		c := classify.New()

		Convey("When the list holds two distinct nationalities", func() {
			So(c.IsDualNational([]string{"France", "Mali"}), ShouldBeTrue)
		})

		Convey("When the list holds a single nationality", func() {
			So(c.IsDualNational([]string{"France"}), ShouldBeFalse)
		})

		Convey("When the list is empty", func() {
			So(c.IsDualNational(nil), ShouldBeFalse)
			So(c.IsDualNational([]string{}), ShouldBeFalse)
		})

		Convey("When the list repeats the same label", func() {
			So(c.IsDualNational([]string{"France", "France"}), ShouldBeFalse)
		})

		Convey("When the list holds three nationalities", func() {
			So(c.IsDualNational([]string{"France", "Mali", "Sénégal"}), ShouldBeTrue)
		})
	})
}

func TestClassify(t *testing.T) {
	Convey("Given a classifier with default tables", t, func() {
		c := classify.New()

		Convey("When a nationality belongs to Sub-Saharan Africa", func() {
			region, countries := c.Classify([]string{"France", "Mali"})
			So(region, ShouldEqual, "Sub-Saharan Africa")
			So(countries, ShouldResemble, []string{"Mali"})
		})

		Convey("When only the home country is present", func() {
			region, countries := c.Classify([]string{"France"})
			So(region, ShouldEqual, "")
			So(countries, ShouldBeNil)
		})

		Convey("When the list is empty", func() {
			region, countries := c.Classify(nil)
			So(region, ShouldEqual, "")
			So(countries, ShouldBeNil)
		})

		Convey("When no nationality matches any region", func() {
			region, countries := c.Classify([]string{"France", "Canada"})
			So(region, ShouldEqual, "")
			So(countries, ShouldBeNil)
		})

		Convey("When nationalities span two regions", func() {
			Convey("Then the earlier-listed region wins regardless of scan order", func() {
				region, countries := c.Classify([]string{"Portugal", "Algérie"})
				So(region, ShouldEqual, "Maghreb")
				So(countries, ShouldResemble, []string{"Portugal", "Algérie"})

				region, countries = c.Classify([]string{"Algérie", "Portugal"})
				So(region, ShouldEqual, "Maghreb")
				So(countries, ShouldResemble, []string{"Algérie", "Portugal"})
			})
		})

		Convey("When classification runs twice on the same input", func() {
			first, _ := c.Classify([]string{"France", "Comores"})
			second, _ := c.Classify([]string{"France", "Comores"})
			So(first, ShouldEqual, "Comoros")
			So(second, ShouldEqual, first)
		})
	})
}

func TestClassifyWithSubstitutedTables(t *testing.T) {
	Convey("Given a classifier with a substituted region table", t, func() {
		c := classify.New(
			classify.WithRegions(overlappingRegions()),
		)

		Convey("When a country appears in two regions", func() {
			Convey("Then the first region listing it wins", func() {
				region, _ := c.Classify([]string{"Atlantis"})
				So(region, ShouldEqual, "First")
			})
		})

		Convey("When a country appears only in the second region", func() {
			region, _ := c.Classify([]string{"Mu"})
			So(region, ShouldEqual, "Second")
		})
	})

	Convey("Given a classifier with a custom home country", t, func() {
		c := classify.New(
			classify.WithRegions([]classify.Region{
				{Name: "Benelux", Countries: []string{"Belgique", "Pays-Bas"}},
			}),
			classify.WithHomeCountry("Belgique"),
		)

		Convey("Then the home country never counts as a match", func() {
			region, countries := c.Classify([]string{"Belgique"})
			So(region, ShouldEqual, "")
			So(countries, ShouldBeNil)
		})
	})
}

// overlappingRegions builds a deliberately overlapping two-region table.
func overlappingRegions() []classify.Region {
	return []classify.Region{
		{Name: "First", Countries: []string{"Atlantis"}},
		{Name: "Second", Countries: []string{"Atlantis", "Mu"}},
	}
}
