package source

import "errors"

// Sentinel kinds for capability errors.
var (
	ErrFetch = errors.New("subject fetch failed")
	ErrOCR   = errors.New("image text extraction failed")
	ErrImage = errors.New("image brightness measurement failed")
)
