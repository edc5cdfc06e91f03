package nlp_test

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	nlp "github.com/havenmetrics/pulsecheck/internal/adapters/nlp"
)

func TestInMemoryNormalizer(t *testing.T) {
	ctx := context.Background()

	Convey("Given the default normalizer", t, func() {
		normalizer := nlp.NewInMemoryNormalizer()

		Convey("When normalizing mixed-case text with punctuation", func() {
			tokens, err := normalizer.Normalize(ctx, "I LOVE life!  The world, truly, is beautiful.")

			Convey("Then it lowercases, splits and drops stopwords", func() {
				So(err, ShouldBeNil)
				So(tokens, ShouldResemble, []string{"love", "life", "world", "truly", "beautiful"})
			})
		})

		Convey("When normalizing plural forms", func() {
			tokens, err := normalizer.Normalize(ctx, "deaths worries friends")

			Convey("Then light lemmatization applies", func() {
				So(err, ShouldBeNil)
				So(tokens, ShouldResemble, []string{"death", "worry", "friend"})
			})
		})

		Convey("When the text is only stopwords", func() {
			tokens, err := normalizer.Normalize(ctx, "the and of is")

			Convey("Then the result is empty without error", func() {
				So(err, ShouldBeNil)
				So(len(tokens), ShouldEqual, 0)
			})
		})
	})

	Convey("Given a normalizer with a custom stopword set", t, func() {
		normalizer := nlp.NewInMemoryNormalizer(nlp.WithStopwords([]string{"world"}))

		Convey("When normalizing text containing the custom stopword", func() {
			tokens, err := normalizer.Normalize(ctx, "the world is beautiful")

			Convey("Then only the custom set applies", func() {
				So(err, ShouldBeNil)
				So(tokens, ShouldResemble, []string{"the", "is", "beautiful"})
			})
		})
	})
}

func TestInMemoryAnalyzer(t *testing.T) {
	ctx := context.Background()

	Convey("Given the default analyzer", t, func() {
		analyzer := nlp.NewInMemoryAnalyzer()

		Convey("When analyzing a single negative token", func() {
			scores, err := analyzer.Polarity(ctx, "hate")

			Convey("Then the negative proportion is exactly one", func() {
				So(err, ShouldBeNil)
				So(scores.Negative, ShouldEqual, 1.0)
				So(scores.Compound, ShouldBeLessThan, 0)
				So(scores.Compound, ShouldBeGreaterThan, -1)
			})
		})

		Convey("When analyzing a single positive token", func() {
			scores, err := analyzer.Polarity(ctx, "love")

			Convey("Then the positive proportion is exactly one", func() {
				So(err, ShouldBeNil)
				So(scores.Positive, ShouldEqual, 1.0)
				So(scores.Compound, ShouldBeGreaterThan, 0)
				So(scores.Compound, ShouldBeLessThan, 1)
			})
		})

		Convey("When analyzing empty text", func() {
			scores, err := analyzer.Polarity(ctx, "")

			Convey("Then the reading is fully neutral", func() {
				So(err, ShouldBeNil)
				So(scores.Neutral, ShouldEqual, 1.0)
				So(scores.Compound, ShouldEqual, 0.0)
			})
		})

		Convey("When analyzing mixed text", func() {
			scores, err := analyzer.Polarity(ctx, "love hate life")

			Convey("Then proportions cover all tokens", func() {
				So(err, ShouldBeNil)
				So(scores.Positive, ShouldAlmostEqual, 1.0/3.0, 1e-9)
				So(scores.Negative, ShouldAlmostEqual, 1.0/3.0, 1e-9)
				So(scores.Neutral, ShouldAlmostEqual, 1.0/3.0, 1e-9)
			})
		})
	})

	Convey("Given an analyzer with a custom lexicon", t, func() {
		analyzer := nlp.NewInMemoryAnalyzer(nlp.WithLexicon(map[string]float64{
			"Zork": -4,
		}))

		Convey("When analyzing the custom token", func() {
			scores, err := analyzer.Polarity(ctx, "zork")

			Convey("Then the replacement lexicon applies, case-normalized", func() {
				So(err, ShouldBeNil)
				So(scores.Negative, ShouldEqual, 1.0)
				So(scores.Compound, ShouldBeLessThan, -0.5)
			})
		})

		Convey("When analyzing a token from the default lexicon", func() {
			scores, err := analyzer.Polarity(ctx, "hate")

			Convey("Then the built-in entries are gone", func() {
				So(err, ShouldBeNil)
				So(scores.Compound, ShouldEqual, 0.0)
			})
		})
	})
}
