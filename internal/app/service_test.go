package service_test

import (
	"context"
	"reflect"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/havenmetrics/pulsecheck/internal/adapters/source"
	app "github.com/havenmetrics/pulsecheck/internal/app"
	"github.com/havenmetrics/pulsecheck/internal/domain/model"
)

func testFetcher() *source.InMemoryFetcher {
	now := time.Now()
	return source.NewInMemoryFetcher(
		source.WithProfiles(map[string]source.Profile{
			"sunny": {
				Biography: "Love my friends, love my life.",
				Posts: []model.Post{
					{Caption: "So happy today, what a beautiful morning.", TS: now},
					{Caption: "Great game, we win again!", TS: now.Add(-24 * time.Hour)},
				},
			},
			"stormy": {
				Biography: "Nothing matters.",
				Posts: []model.Post{
					{Caption: "I hate everything and everyone.", TS: now},
					{Caption: "Life is terrible and I feel worthless.", TS: now.Add(-24 * time.Hour)},
				},
			},
		}),
		source.WithFailingHandles("broken"),
	)
}

func improvingGrades() (map[string]float64, map[string]float64) {
	return map[string]float64{"math": 0.5, "science": 0.6, "english": 0.7},
		map[string]float64{"math": 0.7, "science": 0.7, "english": 0.7}
}

func TestService_RunBatch(t *testing.T) {
	ctx := context.Background()

	Convey("Given a coordinator over seeded capabilities", t, func() {
		svc := app.New(
			app.WithFetcher(testFetcher()),
			app.WithWorkerCount(4),
		)

		prev, curr := improvingGrades()
		subjects := []model.SubjectInput{
			{DisplayName: "Sunny P.", Handle: "sunny"},
			{DisplayName: "Stormy K.", Handle: "stormy"},
			{DisplayName: "Grades Only", Handle: "broken", PreviousGrades: prev, CurrentGrades: curr},
			{DisplayName: "No Data"},
		}

		Convey("When running a batch over mixed subjects", func() {
			reports, err := svc.RunBatch(ctx, subjects)

			Convey("Then every subject appears exactly once", func() {
				So(err, ShouldBeNil)
				So(len(reports), ShouldEqual, 4)

				names := make(map[string]int, len(reports))
				for _, report := range reports {
					names[report.DisplayName]++
				}
				for _, subject := range subjects {
					So(names[subject.DisplayName], ShouldEqual, 1)
				}
			})

			Convey("Then the result is sorted ascending by overall score", func() {
				So(err, ShouldBeNil)
				for i := 1; i < len(reports); i++ {
					So(reports[i-1].OverallScore, ShouldBeLessThanOrEqualTo, reports[i].OverallScore)
				}
			})

			Convey("Then negative subjects rank below positive ones", func() {
				So(err, ShouldBeNil)
				byName := indexByName(reports)
				So(byName["Stormy K."].OverallScore, ShouldBeLessThan, 0)
				So(byName["Sunny P."].OverallScore, ShouldBeGreaterThan, 0)
				So(byName["Stormy K."].OverallScore, ShouldBeLessThan, byName["Sunny P."].OverallScore)
			})

			Convey("Then a failed fetch degrades to an absent signal, not a lost subject", func() {
				So(err, ShouldBeNil)
				report := indexByName(reports)["Grades Only"]
				So(report.Social.Present, ShouldBeFalse)
				So(report.Grades.Present, ShouldBeTrue)
				So(report.NoData, ShouldBeFalse)
				So(report.OverallScore, ShouldAlmostEqual, 0.1, 1e-9)
			})

			Convey("Then a subject with no signals carries the no-data marker", func() {
				So(err, ShouldBeNil)
				report := indexByName(reports)["No Data"]
				So(report.NoData, ShouldBeTrue)
				So(report.OverallScore, ShouldEqual, 0.0)
			})
		})

		Convey("When running the same batch repeatedly", func() {
			first, err1 := svc.RunBatch(ctx, subjects)
			second, err2 := svc.RunBatch(ctx, subjects)

			Convey("Then the published result is independent of completion order", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(reflect.DeepEqual(first, second), ShouldBeTrue)
			})
		})

		Convey("When the input repeats a subject", func() {
			withDup := append(subjects, model.SubjectInput{DisplayName: "Sunny again", Handle: "SUNNY"})
			reports, err := svc.RunBatch(ctx, withDup)

			Convey("Then the duplicate handle is scored once", func() {
				So(err, ShouldBeNil)
				So(len(reports), ShouldEqual, 4)
				So(indexByName(reports)["Sunny again"], ShouldBeNil)
			})
		})

		Convey("When the batch is cancelled before it starts", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()
			reports, err := svc.RunBatch(cancelled, subjects)

			Convey("Then partial results are discarded", func() {
				So(err, ShouldNotBeNil)
				So(reports, ShouldBeNil)
			})
		})

		Convey("When the batch is empty", func() {
			reports, err := svc.RunBatch(ctx, nil)

			So(err, ShouldBeNil)
			So(len(reports), ShouldEqual, 0)
		})
	})

	Convey("Given a coordinator with notes but no fetcher", t, func() {
		svc := app.New(app.WithWorkerCount(2))

		Convey("When a subject only has free-form notes", func() {
			reports, err := svc.RunBatch(ctx, []model.SubjectInput{{
				DisplayName: "Notes Only",
				Notes: []model.Note{
					{Text: "Feeling hopeless and worthless lately.", TS: time.Now()},
				},
			}})

			Convey("Then the text signal carries the subject", func() {
				So(err, ShouldBeNil)
				So(len(reports), ShouldEqual, 1)
				So(reports[0].Text.Present, ShouldBeTrue)
				So(reports[0].Social.Present, ShouldBeFalse)
				So(reports[0].OverallScore, ShouldBeLessThan, 0)
			})
		})
	})

	Convey("Given a coordinator with image enhancements enabled", t, func() {
		now := time.Now()
		fetcher := source.NewInMemoryFetcher(source.WithProfiles(map[string]source.Profile{
			"poster": {
				Posts: []model.Post{
					{ImageRef: "img-quote", TS: now},
					{ImageRef: "img-dark", TS: now.Add(-24 * time.Hour)},
				},
			},
		}))
		svc := app.New(
			app.WithFetcher(fetcher),
			app.WithOCR(source.NewInMemoryOCR(map[string]string{
				"img-quote": "You are strong, keep going, better days ahead.",
			})),
			app.WithBrightness(source.NewInMemoryBrightness(map[string]float64{
				"img-quote": 0.9,
				"img-dark":  0.1,
			})),
			app.WithImageAnalysis(true),
			app.WithBrightnessAnalysis(true),
			app.WithWorkerCount(2),
		)

		Convey("When scoring an image-only profile", func() {
			reports, err := svc.RunBatch(ctx, []model.SubjectInput{{
				DisplayName: "Poster",
				Handle:      "poster",
			}})

			Convey("Then OCR text and brightness carry the social signal", func() {
				So(err, ShouldBeNil)
				So(len(reports), ShouldEqual, 1)
				So(reports[0].Social.Present, ShouldBeTrue)
				So(len(reports[0].Social.Items), ShouldEqual, 2)
				// img-quote OCRs to positive text plus a bright reading; the
				// dark second image only contributes brightness.
				So(reports[0].Social.Items[0].Score, ShouldBeGreaterThan, 0)
				So(reports[0].Social.Items[1].Score, ShouldBeLessThan, 0)
			})
		})
	})
}

func indexByName(reports []model.SubjectReport) map[string]*model.SubjectReport {
	byName := make(map[string]*model.SubjectReport, len(reports))
	for i := range reports {
		byName[reports[i].DisplayName] = &reports[i]
	}
	return byName
}
