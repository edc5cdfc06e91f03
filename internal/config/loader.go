package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if PULSECHECK_CONFIG is set
//  3. env (prefix PULSECHECK_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("PULSECHECK_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Env keys like PULSECHECK_WORKER_COUNT map to worker_count; underscores
	// are preserved to match the koanf tags on the struct.
	envProvider := env.Provider("PULSECHECK_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "pulsecheck_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate rejects configurations the scoring math cannot honor.
func (c *Config) validate() error {
	switch {
	case c.WorkerCount < 1:
		return fmt.Errorf("%w: worker_count must be at least 1", ErrInvalidConfig)
	case c.DecayRatio <= 0 || c.DecayRatio >= 1:
		return fmt.Errorf("%w: decay_ratio must be in (0,1)", ErrInvalidConfig)
	case c.Normalization <= 0:
		return fmt.Errorf("%w: normalization must be positive", ErrInvalidConfig)
	case c.GradesMultiplier <= 0:
		return fmt.Errorf("%w: grades_multiplier must be positive", ErrInvalidConfig)
	case c.NegativeDivisor <= 0:
		return fmt.Errorf("%w: negative_divisor must be positive", ErrInvalidConfig)
	case c.ConcernPenalty < 0:
		return fmt.Errorf("%w: concern_penalty must not be negative", ErrInvalidConfig)
	case c.SubjectTimeoutMS < 0:
		return fmt.Errorf("%w: subject_timeout_ms must not be negative", ErrInvalidConfig)
	}
	return nil
}
