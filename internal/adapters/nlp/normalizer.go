package nlp

import (
	"context"
	"strings"
	"unicode"
)

// InMemoryNormalizer implements Normalizer with stdlib tokenization, the
// built-in stopword set and light suffix lemmatization.
type InMemoryNormalizer struct {
	stopwords map[string]struct{}
}

// NormalizerOption applies a configuration option to the InMemoryNormalizer.
type NormalizerOption func(*InMemoryNormalizer)

// WithStopwords replaces the built-in stopword set.
func WithStopwords(words []string) NormalizerOption {
	return func(n *InMemoryNormalizer) {
		if len(words) == 0 {
			return
		}
		n.stopwords = make(map[string]struct{}, len(words))
		for _, w := range words {
			n.stopwords[strings.ToLower(w)] = struct{}{}
		}
	}
}

// NewInMemoryNormalizer creates a normalizer with the built-in stopword set.
func NewInMemoryNormalizer(opts ...NormalizerOption) *InMemoryNormalizer {
	n := &InMemoryNormalizer{stopwords: defaultStopwords}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize lowercases text, splits on non-letter runes, drops stopwords and
// lemmatizes each remaining token.
func (n *InMemoryNormalizer) Normalize(_ context.Context, text string) ([]string, error) {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})

	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		token := strings.Trim(field, "'")
		if token == "" {
			continue
		}
		if _, skip := n.stopwords[token]; skip {
			continue
		}
		tokens = append(tokens, lemmatize(token))
	}
	return tokens, nil
}

// lemmatize applies minimal English suffix stripping. It is intentionally
// crude; tokens it gets wrong simply miss their lexicon reading.
func lemmatize(token string) string {
	token = strings.TrimSuffix(token, "'s")
	switch {
	case len(token) > 4 && strings.HasSuffix(token, "ies"):
		return token[:len(token)-3] + "y"
	case len(token) > 3 && strings.HasSuffix(token, "sses"):
		return token[:len(token)-2]
	case len(token) > 3 && strings.HasSuffix(token, "s") &&
		!strings.HasSuffix(token, "ss") && !strings.HasSuffix(token, "us") && !strings.HasSuffix(token, "is"):
		return token[:len(token)-1]
	default:
		return token
	}
}
