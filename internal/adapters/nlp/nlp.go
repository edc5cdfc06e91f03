// Package nlp defines the text-processing capability contracts the scoring
// engine consumes: token normalization and sentiment polarity.
//
// The engine does not own a tokenizer or a sentiment model. Production
// deployments plug in an external service; the in-memory implementations in
// this package are deterministic stand-ins with the same contract.
package nlp

import "context"

// Scores holds the polarity components for a piece of text.
// Negative, Positive and Neutral are proportions in [0,1]; Compound is the
// normalized overall valence in [-1,1].
type Scores struct {
	Negative float64
	Positive float64
	Neutral  float64
	Compound float64
}

// Normalizer lowercases, tokenizes, removes stopwords and lemmatizes text.
type Normalizer interface {
	// Normalize returns the normalized token sequence for text.
	// An empty result for non-empty input is valid (all tokens were stopwords).
	Normalize(ctx context.Context, text string) ([]string, error)
}

// Analyzer computes sentiment polarity for a piece of text.
type Analyzer interface {
	// Polarity computes polarity scores, honoring ctx for cancellation.
	Polarity(ctx context.Context, text string) (Scores, error)
}
