// Package recency folds an ordered sequence of scored items, newest first,
// into one normalized overall score using geometric decay.
package recency

import (
	"math"

	"github.com/havenmetrics/pulsecheck/internal/domain/model"
)

// Default aggregation constants.
const (
	defaultDecayRatio    = 2.0 / 3.0
	defaultNormalization = 4.0
)

// Aggregator computes a recency-weighted mean over scored items.
type Aggregator struct {
	decayRatio    float64
	normalization float64
}

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithDecayRatio sets the geometric decay ratio. Must be in (0, 1).
func WithDecayRatio(ratio float64) Option {
	return func(a *Aggregator) {
		if ratio > 0 && ratio < 1 {
			a.decayRatio = ratio
		}
	}
}

// WithNormalization sets the final scale divisor. Must be positive.
func WithNormalization(normalization float64) Option {
	return func(a *Aggregator) {
		if normalization > 0 {
			a.normalization = normalization
		}
	}
}

// New creates an Aggregator with the default decay ratio and normalization.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{
		decayRatio:    defaultDecayRatio,
		normalization: defaultNormalization,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate folds items (newest first) into a single signal result.
//
// Item i carries weight r^i. The weighted sum is divided by the closed-form
// geometric series sum S(n) = (1-r^n)/(1-r), not by the item count, so the
// result is a true weighted mean under the decay weights: n identical scores
// c aggregate to exactly c/normalization. A leading item such as a profile
// biography is simply i=0 of the same sequence, weight 1.
//
// An empty sequence yields a zero score with Present=false; there is no
// division by zero.
func (a *Aggregator) Aggregate(items []model.ScoredItem) model.SignalResult {
	n := len(items)
	if n == 0 {
		return model.SignalResult{Present: false}
	}

	var weighted float64
	weight := 1.0
	for _, item := range items {
		weighted += item.Score * weight
		weight *= a.decayRatio
	}

	seriesSum := (1 - math.Pow(a.decayRatio, float64(n))) / (1 - a.decayRatio)
	overall := weighted / seriesSum / a.normalization
	if !model.Finite(overall) {
		overall = 0
	}

	return model.SignalResult{
		OverallScore: overall,
		Items:        items,
		Present:      true,
	}
}
