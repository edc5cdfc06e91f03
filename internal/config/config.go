// Package config defines engine configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load layers file and env.
// - External errors are wrapped via this package's sentinel errors.
package config

import (
	"runtime"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// WorkerCount bounds concurrent subject pipelines in a batch.
	WorkerCount int `koanf:"worker_count"`

	// SubjectTimeoutMS caps one subject pipeline, including fetch time.
	SubjectTimeoutMS int `koanf:"subject_timeout_ms"`

	// DecayRatio is the recency decay applied to older items, in (0,1).
	DecayRatio float64 `koanf:"decay_ratio"`

	// Normalization scales aggregated signal scores onto roughly [-1,1].
	Normalization float64 `koanf:"normalization"`

	// GradesMultiplier amplifies grade improvement/decline before combination.
	GradesMultiplier float64 `koanf:"grades_multiplier"`

	// ConcernTerms overrides the built-in concerning-term list when non-empty.
	ConcernTerms []string `koanf:"concern_terms"`

	// ConcernPenalty is subtracted once per concern-term occurrence.
	ConcernPenalty float64 `koanf:"concern_penalty"`

	// NegativeDivisor divides isolated-negative token compounds.
	NegativeDivisor float64 `koanf:"negative_divisor"`

	// CompoundWeight multiplies the whole-text compound polarity.
	CompoundWeight float64 `koanf:"compound_weight"`

	// AnalyzeImages enables the OCR enhancement for caption-less posts.
	AnalyzeImages bool `koanf:"analyze_images"`

	// AnalyzeBrightness enables the image-brightness enhancement.
	AnalyzeBrightness bool `koanf:"analyze_brightness"`

	// BrightnessWeight scales the brightness contribution per item.
	BrightnessWeight float64 `koanf:"brightness_weight"`

	// MetricsAddr serves /metrics when non-empty, e.g. ":9090".
	MetricsAddr string `koanf:"metrics_addr"`
}

// Default scoring constants; the domain packages carry the same defaults so
// a zero Config field never silently changes scoring behavior.
const (
	defaultSubjectTimeoutMS = 10_000
	defaultDecayRatio       = 2.0 / 3.0
	defaultNormalization    = 4.0
	defaultGradesMultiplier = 1.0
	defaultConcernPenalty   = 0.5
	defaultNegativeDivisor  = 1.5
	defaultCompoundWeight   = 3.0
	defaultBrightnessWeight = 1.0
)

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		WorkerCount:       runtime.NumCPU() * 2,
		SubjectTimeoutMS:  defaultSubjectTimeoutMS,
		DecayRatio:        defaultDecayRatio,
		Normalization:     defaultNormalization,
		GradesMultiplier:  defaultGradesMultiplier,
		ConcernPenalty:    defaultConcernPenalty,
		NegativeDivisor:   defaultNegativeDivisor,
		CompoundWeight:    defaultCompoundWeight,
		BrightnessWeight:  defaultBrightnessWeight,
		AnalyzeImages:     false,
		AnalyzeBrightness: false,
	}
}
