package scoring_test

import (
	"context"
	"testing"

	metric "github.com/okian/talentbench/internal/domain/metric"
	scoring "github.com/okian/talentbench/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

// tierRank maps tiers onto an ordinal so monotonicity can be asserted.
var tierRank = map[string]int{
	string(scoring.TierBeginner):   0,
	string(scoring.TierDeveloping): 1,
	string(scoring.TierStandard):   2,
	string(scoring.TierAdvanced):   3,
	string(scoring.TierElite):      4,
}

func TestTierMonotonicity(t *testing.T) {
	Convey("Given an engine with default cutoffs", t, func() {
		engine, err := scoring.NewEngine()
		So(err, ShouldBeNil)
		ctx := context.Background()

		Convey("When composites sweep the passing-accuracy scale", func() {
			Convey("Then a higher composite never yields a lower tier", func() {
				prevRank := -1
				prevScore := -1.0
				for pct := 0.0; pct <= 100; pct += 5 {
					report, err := engine.Score(ctx, newAssessment(map[metric.ID]float64{
						metric.PassingAccuracy: pct,
					}))
					So(err, ShouldBeNil)
					So(report.Composite.Valid, ShouldBeTrue)
					So(report.Composite.Value, ShouldBeGreaterThanOrEqualTo, prevScore)
					rank, ok := tierRank[report.Tier]
					So(ok, ShouldBeTrue)
					So(rank, ShouldBeGreaterThanOrEqualTo, prevRank)
					prevRank = rank
					prevScore = report.Composite.Value
				}
			})
		})

		Convey("When the composite sits exactly on a cutoff", func() {
			report, err := engine.Score(ctx, newAssessment(map[metric.ID]float64{
				metric.PassingAccuracy: 85,
			}))

			Convey("Then the boundary belongs to the higher tier", func() {
				So(err, ShouldBeNil)
				So(report.Tier, ShouldEqual, string(scoring.TierElite))
			})
		})
	})
}
