package predictor_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/model"
	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/predictor"
)

func TestBacktestOffense(t *testing.T) {
	Convey("Given four passes, two runs and one lone play", t, func() {
		var rows []string
		rows = append(rows, times("Offense,1,5,A,11,Shotgun,Pass,6,,,,,", 4)...)
		rows = append(rows, times("Offense,1,4,A,11,Shotgun,Run,2,,,,,", 2)...)
		rows = append(rows, "Offense,4,1,C,22,I-Form,Run,1,,,,,")
		rows = append(rows, "Defense,1,5,,,,,,Shotgun,Empty,4-3,None,Cover2")
		st := load(rows...)

		Convey("When every play is predicted from the others", func() {
			got, err := predictor.BacktestOffense(st)

			Convey("Then passes are hit, runs are missed and the lone play is uncovered", func() {
				So(err, ShouldBeNil)
				So(got.Outcome, ShouldEqual, model.FieldPlayCall)
				So(got.Plays, ShouldEqual, 7)
				So(got.Covered, ShouldEqual, 6)
				So(got.Correct, ShouldEqual, 4)
				So(got.Accuracy(), ShouldEqual, 66.7)
				So(got.Coverage(), ShouldEqual, 85.7)
			})
		})
	})

	Convey("Given an empty result", t, func() {
		var r predictor.BacktestResult

		Convey("Then the rates are zero rather than undefined", func() {
			So(r.Accuracy(), ShouldEqual, 0)
			So(r.Coverage(), ShouldEqual, 0)
		})
	})
}

func TestBacktestDefense(t *testing.T) {
	Convey("Given four snaps on 3rd and 7 and one on 3rd and 8", t, func() {
		st := load(
			"Defense,3,7,,,,,,Shotgun,Empty,4-3,None,Cover2",
			"Defense,3,7,,,,,,Shotgun,Empty,4-3,Fire Zone,Cover2",
			"Defense,3,7,,,,,,Shotgun,Empty,3-4,Fire Zone,Cover2",
			"Defense,3,7,,,,,,Shotgun,Empty,4-3,None,Cover2",
			"Defense,3,8,,,,,,Shotgun,Empty,Nickel,Zero,Cover0",
		)

		Convey("When scoring the front", func() {
			got, err := predictor.BacktestDefense(st, model.FieldDefensiveFront)

			Convey("Then three of four covered snaps are called correctly", func() {
				So(err, ShouldBeNil)
				So(got.Plays, ShouldEqual, 5)
				So(got.Covered, ShouldEqual, 4)
				So(got.Correct, ShouldEqual, 3)
				So(got.Accuracy(), ShouldEqual, 75)
			})
		})

		Convey("When scoring coverage", func() {
			got, err := predictor.BacktestDefense(st, model.FieldCoverage)
			So(err, ShouldBeNil)
			So(got.Correct, ShouldEqual, 4)
		})

		Convey("When scoring an offensive field", func() {
			_, err := predictor.BacktestDefense(st, model.FieldPlayCall)
			So(err, ShouldNotBeNil)
		})
	})
}
