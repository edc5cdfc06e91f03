// Package grades compares two subject-keyed grade snapshots and scores the
// averaged change between them.
package grades

import (
	"fmt"
	"sort"

	"github.com/havenmetrics/pulsecheck/internal/domain/model"
)

// Default multiplier; the 2.5x variant observed in old runs is available via
// LegacyMultiplier.
const (
	defaultMultiplier = 1.0

	// LegacyMultiplier amplifies improvement/decline the way older revisions did.
	LegacyMultiplier = 2.5
)

// Scorer computes a grade-delta signal.
type Scorer struct {
	multiplier float64
}

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithMultiplier sets the scaling multiplier applied to the overall score.
func WithMultiplier(multiplier float64) Option {
	return func(s *Scorer) {
		if multiplier > 0 {
			s.multiplier = multiplier
		}
	}
}

// New creates a Scorer with the default 1x multiplier.
func New(opts ...Option) *Scorer {
	s := &Scorer{multiplier: defaultMultiplier}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score computes per-key deltas (current - previous) for every key present in
// both snapshots, in sorted key order for determinism. Keys present on only
// one side are ignored. The overall score is the mean delta scaled by the
// multiplier; no shared keys marks the signal absent.
//
// Grade values must be finite; a NaN or infinite value fails with
// ErrInvalidGrade rather than poisoning the mean.
func (s *Scorer) Score(previous, current map[string]float64) (model.GradeSignalResult, error) {
	keys := make([]string, 0, len(current))
	for key := range current {
		if _, ok := previous[key]; ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	if len(keys) == 0 {
		return model.GradeSignalResult{Present: false}, nil
	}

	deltas := make([]model.GradeDelta, 0, len(keys))
	var sum float64
	for _, key := range keys {
		if !model.Finite(previous[key]) || !model.Finite(current[key]) {
			return model.GradeSignalResult{}, fmt.Errorf("%w: key %q", ErrInvalidGrade, key)
		}
		delta := current[key] - previous[key]
		deltas = append(deltas, model.GradeDelta{Key: key, Delta: delta})
		sum += delta
	}

	return model.GradeSignalResult{
		OverallScore: sum / float64(len(deltas)) * s.multiplier,
		Deltas:       deltas,
		Present:      true,
	}, nil
}
