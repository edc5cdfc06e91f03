package repository_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	repository "github.com/havenmetrics/pulsecheck/internal/adapters/repository"
	"github.com/havenmetrics/pulsecheck/internal/domain/model"
)

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty report store", t, func() {
		store := repository.NewInMemoryStore()

		Convey("When adding reports out of score order", func() {
			So(store.Add(ctx, model.SubjectReport{DisplayName: "mid", OverallScore: 0.2}), ShouldBeNil)
			So(store.Add(ctx, model.SubjectReport{DisplayName: "low", OverallScore: -1.5}), ShouldBeNil)
			So(store.Add(ctx, model.SubjectReport{DisplayName: "high", OverallScore: 0.9}), ShouldBeNil)

			ranked := store.Ranked(ctx)

			Convey("Then the snapshot is sorted ascending by overall score", func() {
				So(store.Count(ctx), ShouldEqual, 3)
				So(ranked[0].DisplayName, ShouldEqual, "low")
				So(ranked[1].DisplayName, ShouldEqual, "mid")
				So(ranked[2].DisplayName, ShouldEqual, "high")
			})
		})

		Convey("When scores tie", func() {
			So(store.Add(ctx, model.SubjectReport{DisplayName: "beta", OverallScore: 0.5}), ShouldBeNil)
			So(store.Add(ctx, model.SubjectReport{DisplayName: "alpha", OverallScore: 0.5}), ShouldBeNil)

			ranked := store.Ranked(ctx)

			Convey("Then ties break by display name for stable output", func() {
				So(ranked[0].DisplayName, ShouldEqual, "alpha")
				So(ranked[1].DisplayName, ShouldEqual, "beta")
			})
		})

		Convey("When many goroutines append concurrently", func() {
			const writers = 64
			var wg sync.WaitGroup
			for i := 0; i < writers; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					_ = store.Add(ctx, model.SubjectReport{
						DisplayName:  fmt.Sprintf("subject-%02d", i),
						OverallScore: float64(i),
					})
				}(i)
			}
			wg.Wait()

			Convey("Then no append is lost and the snapshot stays sorted", func() {
				So(store.Count(ctx), ShouldEqual, writers)
				ranked := store.Ranked(ctx)
				for i := 1; i < len(ranked); i++ {
					So(ranked[i-1].OverallScore, ShouldBeLessThanOrEqualTo, ranked[i].OverallScore)
				}
			})
		})

		Convey("When the store is closed", func() {
			store.Close()
			err := store.Add(ctx, model.SubjectReport{DisplayName: "late"})

			Convey("Then further appends are rejected", func() {
				So(errors.Is(err, repository.ErrClosed), ShouldBeTrue)
				So(store.Count(ctx), ShouldEqual, 0)
			})
		})

		Convey("When taking a snapshot", func() {
			So(store.Add(ctx, model.SubjectReport{DisplayName: "only", OverallScore: 1}), ShouldBeNil)
			ranked := store.Ranked(ctx)
			ranked[0].DisplayName = "mutated"

			Convey("Then the snapshot is a copy", func() {
				So(store.Ranked(ctx)[0].DisplayName, ShouldEqual, "only")
			})
		})
	})
}
