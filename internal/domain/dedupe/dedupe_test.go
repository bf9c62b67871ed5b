package dedupe_test

import (
	"context"
	"testing"

	"github.com/parisfoot/idfplayers/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDeduper(t *testing.T) {
	Convey("Given an empty deduper", t, func() {
		d := dedupe.New()
		ctx := context.Background()

		Convey("When an ID is recorded for the first time", func() {
			seen := d.SeenAndRecord(ctx, "Q42")

			Convey("Then it was not seen before", func() {
				So(seen, ShouldBeFalse)
				So(d.Size(), ShouldEqual, 1)
			})

			Convey("And recording it again reports it as seen", func() {
				So(d.SeenAndRecord(ctx, "Q42"), ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When distinct IDs are recorded", func() {
			So(d.SeenAndRecord(ctx, "Q1"), ShouldBeFalse)
			So(d.SeenAndRecord(ctx, "Q2"), ShouldBeFalse)
			So(d.Size(), ShouldEqual, 2)
		})
	})
}
