package grades

import "errors"

// Sentinel kinds for grade scoring errors.
var (
	ErrInvalidGrade = errors.New("invalid grade value")
)
