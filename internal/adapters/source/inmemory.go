package source

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// InMemoryFetcher implements Fetcher over a seeded profile map with optional
// per-handle failure injection.
type InMemoryFetcher struct {
	mu       sync.RWMutex
	profiles map[string]Profile
	failing  map[string]struct{}
}

// FetcherOption applies a configuration option to the InMemoryFetcher.
type FetcherOption func(*InMemoryFetcher)

// WithProfiles seeds the fetcher with handle-keyed profiles.
func WithProfiles(profiles map[string]Profile) FetcherOption {
	return func(f *InMemoryFetcher) {
		for handle, profile := range profiles {
			f.profiles[normalizeHandle(handle)] = profile
		}
	}
}

// WithFailingHandles marks handles whose fetch always fails with ErrFetch.
func WithFailingHandles(handles ...string) FetcherOption {
	return func(f *InMemoryFetcher) {
		for _, handle := range handles {
			f.failing[normalizeHandle(handle)] = struct{}{}
		}
	}
}

// NewInMemoryFetcher creates an empty fetcher; seed it with options or Put.
func NewInMemoryFetcher(opts ...FetcherOption) *InMemoryFetcher {
	f := &InMemoryFetcher{
		profiles: make(map[string]Profile),
		failing:  make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Put adds or replaces the profile for handle.
func (f *InMemoryFetcher) Put(handle string, profile Profile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles[normalizeHandle(handle)] = profile
}

// FetchSubjectTexts returns the seeded profile for handle. Unknown handles
// and injected failures both wrap ErrFetch, matching a real client's
// not-found and network errors.
func (f *InMemoryFetcher) FetchSubjectTexts(ctx context.Context, handle string) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	key := normalizeHandle(handle)

	f.mu.RLock()
	defer f.mu.RUnlock()
	if _, fail := f.failing[key]; fail {
		return Profile{}, fmt.Errorf("%w: handle %q unreachable", ErrFetch, handle)
	}
	profile, ok := f.profiles[key]
	if !ok {
		return Profile{}, fmt.Errorf("%w: handle %q not found", ErrFetch, handle)
	}
	return profile, nil
}

func normalizeHandle(handle string) string {
	return strings.ToLower(strings.TrimSpace(handle))
}

// InMemoryOCR implements OCR over a reference-keyed text map.
type InMemoryOCR struct {
	texts map[string]string
}

// NewInMemoryOCR creates an OCR fake returning the given text per reference.
func NewInMemoryOCR(texts map[string]string) *InMemoryOCR {
	return &InMemoryOCR{texts: texts}
}

// ExtractText returns the seeded text for imageRef, or ErrOCR when unknown.
func (o *InMemoryOCR) ExtractText(_ context.Context, imageRef string) (string, error) {
	text, ok := o.texts[imageRef]
	if !ok {
		return "", fmt.Errorf("%w: no text in %q", ErrOCR, imageRef)
	}
	return text, nil
}

// InMemoryBrightness implements Brightness over a reference-keyed value map.
type InMemoryBrightness struct {
	values map[string]float64
}

// NewInMemoryBrightness creates a brightness fake with fixed readings in [0,1].
func NewInMemoryBrightness(values map[string]float64) *InMemoryBrightness {
	return &InMemoryBrightness{values: values}
}

// Measure returns the seeded brightness for imageRef, or ErrImage when unknown.
func (b *InMemoryBrightness) Measure(_ context.Context, imageRef string) (float64, error) {
	value, ok := b.values[imageRef]
	if !ok {
		return 0, fmt.Errorf("%w: unreadable image %q", ErrImage, imageRef)
	}
	if value < 0 || value > 1 {
		return 0, fmt.Errorf("%w: brightness %v out of range", ErrImage, value)
	}
	return value, nil
}
