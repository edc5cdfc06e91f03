package nlp

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// Default analyzer configuration constants.
const (
	// compoundNormalizer is the alpha constant of the standard
	// sum/sqrt(sum^2+alpha) compound normalization.
	compoundNormalizer = 15.0
	defaultRandomSeed  = 42
)

// InMemoryAnalyzer implements Analyzer with a fixed valence lexicon.
// It may simulate latency to model an external NLP service.
type InMemoryAnalyzer struct {
	lexicon map[string]float64
	// Simulated latency range; both zero means no artificial delay.
	minLatency time.Duration
	maxLatency time.Duration

	// rng is shared across concurrent callers; guarded by rngMu.
	rngMu sync.Mutex
	rng   *rand.Rand
}

// AnalyzerOption applies a configuration option to the InMemoryAnalyzer.
type AnalyzerOption func(*InMemoryAnalyzer)

// WithLexicon replaces the built-in valence lexicon.
func WithLexicon(lexicon map[string]float64) AnalyzerOption {
	return func(a *InMemoryAnalyzer) {
		if len(lexicon) == 0 {
			return
		}
		a.lexicon = make(map[string]float64, len(lexicon))
		for token, valence := range lexicon {
			a.lexicon[strings.ToLower(token)] = valence
		}
	}
}

// WithAnalyzerLatencyRange sets the simulated latency range.
func WithAnalyzerLatencyRange(minLatency, maxLatency time.Duration) AnalyzerOption {
	return func(a *InMemoryAnalyzer) {
		if minLatency >= 0 && maxLatency > minLatency {
			a.minLatency = minLatency
			a.maxLatency = maxLatency
		}
	}
}

// NewInMemoryAnalyzer creates an analyzer backed by the built-in lexicon.
func NewInMemoryAnalyzer(opts ...AnalyzerOption) *InMemoryAnalyzer {
	a := &InMemoryAnalyzer{
		lexicon: defaultLexicon,
		rng:     rand.New(rand.NewSource(defaultRandomSeed)), //nolint:gosec // deterministic seed for reproducible latency simulation
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Polarity computes polarity scores for text.
//
// Each whitespace-separated token is looked up in the lexicon; tokens without
// a reading are neutral. Compound is sum/sqrt(sum^2+15) over token valences,
// which keeps it in (-1, 1) and saturates for strongly signed text. The
// Negative/Positive/Neutral components are token proportions, so a single
// negative token in isolation yields Negative == 1.
func (a *InMemoryAnalyzer) Polarity(ctx context.Context, text string) (Scores, error) {
	if err := a.simulateLatency(ctx); err != nil {
		return Scores{}, err
	}

	var (
		sum      float64
		negative int
		positive int
		neutral  int
	)
	tokens := strings.Fields(strings.ToLower(text))
	for _, token := range tokens {
		valence := a.lexicon[token]
		sum += valence
		switch {
		case valence < 0:
			negative++
		case valence > 0:
			positive++
		default:
			neutral++
		}
	}

	s := Scores{
		Compound: sum / math.Sqrt(sum*sum+compoundNormalizer),
	}
	if total := float64(len(tokens)); total > 0 {
		s.Negative = float64(negative) / total
		s.Positive = float64(positive) / total
		s.Neutral = float64(neutral) / total
	} else {
		s.Neutral = 1
	}
	return s, nil
}

// simulateLatency blocks for a random duration in the configured range.
func (a *InMemoryAnalyzer) simulateLatency(ctx context.Context) error {
	if a.maxLatency <= a.minLatency {
		return nil
	}
	a.rngMu.Lock()
	latency := a.minLatency + time.Duration(a.rng.Int63n(int64(a.maxLatency-a.minLatency)))
	a.rngMu.Unlock()
	select {
	case <-ctx.Done():
		return fmt.Errorf("polarity cancelled: %w", ctx.Err())
	case <-time.After(latency):
		return nil
	}
}
