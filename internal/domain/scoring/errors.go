package scoring

import "errors"

// Sentinel kinds for scoring errors.
var (
	ErrEmptyText    = errors.New("empty or whitespace-only text")
	ErrInvalidScore = errors.New("invalid score")
)
