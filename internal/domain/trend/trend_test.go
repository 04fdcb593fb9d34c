package trend_test

import (
	"testing"
	"time"

	"github.com/okian/talentbench/internal/domain/model"
	trend "github.com/okian/talentbench/internal/domain/trend"
	. "github.com/smartystreets/goconvey/convey"
)

func benchmarkAt(ts time.Time, composite float64) model.Benchmark {
	return model.Benchmark{
		Assessment: model.Assessment{PlayerID: "p-1", TS: ts},
		Report: model.Report{
			Composite: model.Score{Value: composite, Valid: true},
			Categories: map[model.Category]model.Score{
				model.Physical: {Value: composite, Valid: true},
			},
		},
	}
}

func TestSeries(t *testing.T) {
	Convey("Given an unsorted two-assessment history", t, func() {
		day1 := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
		day2 := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
		history := []model.Benchmark{
			benchmarkAt(day2, 70),
			benchmarkAt(day1, 55),
		}

		Convey("When building the series", func() {
			points := trend.Series(history)

			Convey("Then it is a 2-point ascending series", func() {
				So(points, ShouldHaveLength, 2)
				So(points[0].TS, ShouldEqual, day1)
				So(points[0].Composite.Value, ShouldEqual, 55)
				So(points[1].TS, ShouldEqual, day2)
				So(points[1].Composite.Value, ShouldEqual, 70)
			})

			Convey("And the input order is untouched", func() {
				So(history[0].Assessment.TS, ShouldEqual, day2)
			})

			Convey("And rebuilding gives an identical series", func() {
				So(trend.Series(history), ShouldResemble, points)
			})
		})
	})

	Convey("Given two same-day re-assessments", t, func() {
		day := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
		history := []model.Benchmark{
			benchmarkAt(day, 50),
			benchmarkAt(day, 62),
		}

		Convey("When building the series", func() {
			points := trend.Series(history)

			Convey("Then both points are retained in insertion order", func() {
				So(points, ShouldHaveLength, 2)
				So(points[0].Composite.Value, ShouldEqual, 50)
				So(points[1].Composite.Value, ShouldEqual, 62)
			})
		})
	})
}

func TestSeq(t *testing.T) {
	Convey("Given an ordered history", t, func() {
		base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		history := []model.Benchmark{
			benchmarkAt(base, 40),
			benchmarkAt(base.AddDate(0, 0, 7), 45),
			benchmarkAt(base.AddDate(0, 0, 14), 52),
		}
		seq := trend.Seq(history)

		Convey("When ranging over the sequence twice", func() {
			var first, second []float64
			for p := range seq {
				first = append(first, p.Composite.Value)
			}
			for p := range seq {
				second = append(second, p.Composite.Value)
			}

			Convey("Then both passes restart from the beginning", func() {
				So(first, ShouldResemble, []float64{40, 45, 52})
				So(second, ShouldResemble, first)
			})
		})

		Convey("When a consumer stops early", func() {
			var got []float64
			for p := range seq {
				got = append(got, p.Composite.Value)
				break
			}

			Convey("Then no hidden cursor carries over", func() {
				So(got, ShouldResemble, []float64{40})
				var again []float64
				for p := range seq {
					again = append(again, p.Composite.Value)
				}
				So(again, ShouldResemble, []float64{40, 45, 52})
			})
		})
	})
}

func TestSlope(t *testing.T) {
	Convey("Given a steadily improving series", t, func() {
		base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		points := trend.Series([]model.Benchmark{
			benchmarkAt(base, 50),
			benchmarkAt(base.AddDate(0, 0, 10), 60),
			benchmarkAt(base.AddDate(0, 0, 20), 70),
		})

		Convey("When fitting the composite slope", func() {
			beta, ok := trend.Slope(points)

			Convey("Then it is one point per day", func() {
				So(ok, ShouldBeTrue)
				So(beta, ShouldAlmostEqual, 1.0, 1e-9)
			})
		})

		Convey("When fitting a category slope", func() {
			beta, ok := trend.CategorySlope(points, model.Physical)

			Convey("Then it matches the category trajectory", func() {
				So(ok, ShouldBeTrue)
				So(beta, ShouldAlmostEqual, 1.0, 1e-9)
			})
		})
	})

	Convey("Given a single-point series", t, func() {
		points := trend.Series([]model.Benchmark{
			benchmarkAt(time.Now(), 50),
		})

		Convey("When fitting a slope", func() {
			_, ok := trend.Slope(points)

			Convey("Then there is not enough data", func() {
				So(ok, ShouldBeFalse)
			})
		})
	})
}
