package recency_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/havenmetrics/pulsecheck/internal/domain/model"
	recency "github.com/havenmetrics/pulsecheck/internal/domain/recency"
)

func identicalItems(n int, score float64) []model.ScoredItem {
	items := make([]model.ScoredItem, n)
	for i := range items {
		items[i] = model.ScoredItem{Content: "item", Score: score}
	}
	return items
}

func TestAggregator_Aggregate(t *testing.T) {
	Convey("Given an aggregator with default decay and normalization", t, func() {
		agg := recency.New()

		Convey("When aggregating an empty sequence", func() {
			result := agg.Aggregate(nil)

			Convey("Then the signal is absent with a zero score", func() {
				So(result.Present, ShouldBeFalse)
				So(result.OverallScore, ShouldEqual, 0.0)
			})
		})

		Convey("When aggregating a single item", func() {
			result := agg.Aggregate(identicalItems(1, 2.0))

			Convey("Then the result is the score over the normalization", func() {
				So(result.Present, ShouldBeTrue)
				So(result.OverallScore, ShouldAlmostEqual, 0.5, 1e-9)
			})
		})

		Convey("When aggregating identical scores of any length", func() {
			// The closed-form divisor makes the aggregate a true weighted
			// mean: n identical scores c must yield exactly c/normalization.
			for n := 1; n <= 8; n++ {
				result := agg.Aggregate(identicalItems(n, 2.5))
				So(result.Present, ShouldBeTrue)
				So(result.OverallScore, ShouldAlmostEqual, 2.5/4.0, 1e-9)
			}
		})

		Convey("When the same score moves from newest to oldest position", func() {
			newest := agg.Aggregate([]model.ScoredItem{{Score: 1}, {Score: 0}})
			oldest := agg.Aggregate([]model.ScoredItem{{Score: 0}, {Score: 1}})

			Convey("Then the newest position weighs more", func() {
				So(newest.OverallScore, ShouldBeGreaterThan, oldest.OverallScore)
			})
		})

		Convey("When aggregating mixed scores", func() {
			// weights 1 and 2/3, series sum 5/3: (3 + 2/3*(-1.5)) / (5/3) / 4
			result := agg.Aggregate([]model.ScoredItem{{Score: 3}, {Score: -1.5}})

			Convey("Then the weighted mean matches the closed form", func() {
				So(result.OverallScore, ShouldAlmostEqual, (3-1.0)/(5.0/3.0)/4.0, 1e-9)
			})
		})
	})

	Convey("Given an aggregator with custom decay and normalization", t, func() {
		agg := recency.New(
			recency.WithDecayRatio(0.5),
			recency.WithNormalization(2),
		)

		Convey("When aggregating identical scores", func() {
			result := agg.Aggregate(identicalItems(5, 1.0))

			Convey("Then the identity holds under the custom settings", func() {
				So(result.OverallScore, ShouldAlmostEqual, 0.5, 1e-9)
			})
		})

		Convey("When constructed with out-of-range options", func() {
			fallback := recency.New(
				recency.WithDecayRatio(1.5),
				recency.WithNormalization(-1),
			)
			result := fallback.Aggregate(identicalItems(3, 2.0))

			Convey("Then the defaults stay in effect", func() {
				So(result.OverallScore, ShouldAlmostEqual, 0.5, 1e-9)
			})
		})
	})
}
