package repository

import "errors"

// Sentinel kinds for report store errors.
var (
	ErrClosed = errors.New("report store closed")
)
