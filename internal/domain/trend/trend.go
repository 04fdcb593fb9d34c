// Package trend turns a player's assessment history into time series for
// progress views. All functions are pure; callers keep ownership of the
// history slice they pass in.
package trend

import (
	"iter"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/okian/talentbench/internal/domain/model"
)

// Point is one plotted step of a player's trajectory.
type Point struct {
	TS         time.Time                      `json:"ts"`
	Composite  model.Score                    `json:"composite"`
	Categories map[model.Category]model.Score `json:"categories"`
}

// Series orders a history ascending by timestamp. The sort is stable: same-
// day re-assessments keep their insertion order and are both retained,
// because merging them would hide same-day re-test data. The input slice is
// not modified.
func Series(history []model.Benchmark) []Point {
	ordered := make([]model.Benchmark, len(history))
	copy(ordered, history)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Assessment.TS.Before(ordered[j].Assessment.TS)
	})

	points := make([]Point, len(ordered))
	for i, b := range ordered {
		points[i] = Point{
			TS:         b.Assessment.TS,
			Composite:  b.Report.Composite,
			Categories: b.Report.Categories,
		}
	}
	return points
}

// Seq returns a lazy, finite, restartable view of the ordered series. Each
// range over the sequence walks the same snapshot from the start, so several
// trend views can iterate the same history concurrently.
func Seq(history []model.Benchmark) iter.Seq[Point] {
	points := Series(history)
	return func(yield func(Point) bool) {
		for _, p := range points {
			if !yield(p) {
				return
			}
		}
	}
}

// Slope fits a least-squares line through the valid composite scores and
// returns its slope in points per day. It reports false with fewer than two
// valid points.
func Slope(points []Point) (float64, bool) {
	return slope(points, func(p Point) model.Score { return p.Composite })
}

// CategorySlope is Slope restricted to one category's scores.
func CategorySlope(points []Point, cat model.Category) (float64, bool) {
	return slope(points, func(p Point) model.Score { return p.Categories[cat] })
}

func slope(points []Point, pick func(Point) model.Score) (float64, bool) {
	var xs, ys []float64
	var origin time.Time
	for _, p := range points {
		s := pick(p)
		if !s.Valid {
			continue
		}
		if len(xs) == 0 {
			origin = p.TS
		}
		xs = append(xs, p.TS.Sub(origin).Hours()/24)
		ys = append(ys, s.Value)
	}
	if len(xs) < 2 || xs[0] == xs[len(xs)-1] {
		// A single instant has no slope.
		return 0, false
	}
	_, beta := stat.LinearRegression(xs, ys, nil, false)
	return beta, true
}
