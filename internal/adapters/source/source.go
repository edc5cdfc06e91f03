// Package source defines the data-acquisition capability contracts the batch
// pipeline consumes: subject profile fetching plus the optional OCR and
// image-brightness extractors.
//
// Real deployments plug in a social-network client; the in-memory
// implementations here serve tests, demos and offline runs.
package source

import (
	"context"

	"github.com/havenmetrics/pulsecheck/internal/domain/model"
)

// Profile is the fetched material for one subject, posts newest-first.
type Profile struct {
	Biography string
	Posts     []model.Post
}

// Fetcher retrieves a subject's biography and post captions.
type Fetcher interface {
	// FetchSubjectTexts fetches the profile for handle, honoring ctx.
	// Failures wrap ErrFetch.
	FetchSubjectTexts(ctx context.Context, handle string) (Profile, error)
}

// OCR extracts text from an image reference. Optional enhancement; failures
// wrap ErrOCR and are skippable.
type OCR interface {
	ExtractText(ctx context.Context, imageRef string) (string, error)
}

// Brightness measures the brightness of an image reference in [0,1].
// Optional enhancement; failures wrap ErrImage and are skippable.
type Brightness interface {
	Measure(ctx context.Context, imageRef string) (float64, error)
}
