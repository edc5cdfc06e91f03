// Package scoring converts one piece of text into one scalar wellbeing score
// from normalized tokens, sentiment polarity and a concerning-term penalty.
package scoring

import (
	"context"
	"fmt"
	"strings"

	"github.com/havenmetrics/pulsecheck/internal/adapters/nlp"
	"github.com/havenmetrics/pulsecheck/internal/domain/model"
)

// Default scoring profile constants.
const (
	defaultNegativeDivisor = 1.5
	defaultConcernPenalty  = 0.5
	defaultCompoundWeight  = 3.0
)

// Legacy profile constants, kept for output-compatible scoring of old runs.
const (
	legacyConcernPenalty = 1.0
	legacyCompoundWeight = 5.0
)

// DefaultConcernTerms is the replaceable concerning-term list: death, violence,
// self-harm and substance vocabulary, case-normalized.
func DefaultConcernTerms() []string {
	return []string{
		"kill", "die", "death", "dead", "murder", "massacre", "slaughter",
		"violence", "weapon", "gun", "knife", "bomb", "blood", "revenge",
		"suicide", "selfharm", "overdose", "cutting",
		"drug", "drunk", "alcohol", "meth", "heroin",
		"hate", "destroy", "hurt", "hopeless", "worthless",
	}
}

// LegacyConcernTerms is the original seven-word list used by early revisions.
func LegacyConcernTerms() []string {
	return []string{"kill", "die", "death", "hate", "destroy", "massacre", "slaughter"}
}

// Scorer computes a score for a single text.
type Scorer interface {
	// Score computes the text score, honoring ctx for cancellation.
	// It fails with ErrEmptyText on empty or whitespace-only input.
	Score(ctx context.Context, text string) (float64, error)
}

// Option applies a configuration option to the LexicalScorer.
type Option func(*LexicalScorer)

// WithConcernTerms replaces the concerning-term set.
func WithConcernTerms(terms []string) Option {
	return func(s *LexicalScorer) {
		s.concernTerms = make(map[string]struct{}, len(terms))
		for _, term := range terms {
			s.concernTerms[strings.ToLower(term)] = struct{}{}
		}
	}
}

// WithConcernPenalty sets the per-occurrence concern-term penalty.
func WithConcernPenalty(penalty float64) Option {
	return func(s *LexicalScorer) {
		if penalty >= 0 {
			s.concernPenalty = penalty
		}
	}
}

// WithNegativeDivisor sets the divisor applied to isolated-negative token compounds.
func WithNegativeDivisor(divisor float64) Option {
	return func(s *LexicalScorer) {
		if divisor > 0 {
			s.negativeDivisor = divisor
		}
	}
}

// WithCompoundWeight sets the multiplier applied to the whole-text compound.
func WithCompoundWeight(weight float64) Option {
	return func(s *LexicalScorer) {
		if weight > 0 {
			s.compoundWeight = weight
		}
	}
}

// WithLegacyProfile reproduces the constants of the earliest scoring revision.
func WithLegacyProfile() Option {
	return func(s *LexicalScorer) {
		WithConcernTerms(LegacyConcernTerms())(s)
		s.concernPenalty = legacyConcernPenalty
		s.compoundWeight = legacyCompoundWeight
	}
}

// LexicalScorer implements Scorer on top of the nlp capabilities.
type LexicalScorer struct {
	normalizer nlp.Normalizer
	analyzer   nlp.Analyzer

	concernTerms    map[string]struct{}
	concernPenalty  float64
	negativeDivisor float64
	compoundWeight  float64
}

// NewLexicalScorer creates a scorer with the default profile.
func NewLexicalScorer(normalizer nlp.Normalizer, analyzer nlp.Analyzer, opts ...Option) *LexicalScorer {
	s := &LexicalScorer{
		normalizer:      normalizer,
		analyzer:        analyzer,
		concernPenalty:  defaultConcernPenalty,
		negativeDivisor: defaultNegativeDivisor,
		compoundWeight:  defaultCompoundWeight,
	}
	WithConcernTerms(DefaultConcernTerms())(s)

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score computes the score for text.
//
// score = sum over isolated-negative tokens of (token compound / negativeDivisor)
//   - concernPenalty per concern-term occurrence
//   + compound(whole normalized text) * compoundWeight
//
// Scores are unbounded but concentrate in roughly [-5, 5] for short texts.
// Repeated concern words each incur the penalty; tokens without a polarity
// reading contribute nothing to the negative-token term.
func (s *LexicalScorer) Score(ctx context.Context, text string) (float64, error) {
	if strings.TrimSpace(text) == "" {
		return 0, ErrEmptyText
	}

	tokens, err := s.normalizer.Normalize(ctx, text)
	if err != nil {
		return 0, fmt.Errorf("normalize text: %w", err)
	}

	var score float64

	// Isolated polarity per distinct token; the penalty is per occurrence,
	// so both checks stay in the token loop.
	isolated := make(map[string]nlp.Scores, len(tokens))
	for _, token := range tokens {
		reading, ok := isolated[token]
		if !ok {
			reading, err = s.analyzer.Polarity(ctx, token)
			if err != nil {
				return 0, fmt.Errorf("token polarity: %w", err)
			}
			isolated[token] = reading
		}
		if reading.Negative == 1 {
			score += reading.Compound / s.negativeDivisor
		}
		if _, concerning := s.concernTerms[token]; concerning {
			score -= s.concernPenalty
		}
	}

	whole, err := s.analyzer.Polarity(ctx, strings.Join(tokens, " "))
	if err != nil {
		return 0, fmt.Errorf("text polarity: %w", err)
	}
	score += whole.Compound * s.compoundWeight

	if !model.Finite(score) {
		return 0, fmt.Errorf("%w: non-finite score for %q", ErrInvalidScore, text)
	}
	return score, nil
}
