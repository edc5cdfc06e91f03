// Package model contains domain models passed between layers.
package model

import (
	"math"
	"time"
)

// ScoredItem is one scored piece of text. Immutable once created.
type ScoredItem struct {
	Content string    // the text that was scored (may be OCR output)
	TS      time.Time // item timestamp, zero when the source carries none
	Score   float64   // unbounded lexical+sentiment score
}

// SignalResult summarizes one text-based signal for a subject.
// Present=false means "no usable data", which is never the same as a score of 0.
type SignalResult struct {
	OverallScore float64
	Items        []ScoredItem
	Present      bool
}

// GradeDelta is the change in one graded subject between two snapshots.
type GradeDelta struct {
	Key   string
	Delta float64 // current - previous, inputs normalized to [0,1] by the caller
}

// GradeSignalResult summarizes the grades signal for a subject.
type GradeSignalResult struct {
	OverallScore float64
	Deltas       []GradeDelta
	Present      bool
}

// Post is one fetched social item, newest-first within a sequence.
type Post struct {
	Caption  string
	ImageRef string // opaque reference for the OCR/brightness capabilities, empty when absent
	TS       time.Time
}

// Note is one free-form note about a subject, newest-first within a sequence.
type Note struct {
	Text string
	TS   time.Time
}

// SubjectInput is everything the batch coordinator needs to score one subject.
type SubjectInput struct {
	DisplayName    string
	Handle         string // social handle for the fetch capability, empty to skip the social signal
	Notes          []Note
	PreviousGrades map[string]float64
	CurrentGrades  map[string]float64
}

// SubjectReport is the scored outcome for one subject in a batch run.
// Created once per run and never mutated afterward.
type SubjectReport struct {
	DisplayName  string
	OverallScore float64
	NoData       bool // all signals absent; OverallScore is 0 by convention, not by measurement
	Social       SignalResult
	Grades       GradeSignalResult
	Text         SignalResult
}

// Finite reports whether v is a usable score value (not NaN, not infinite).
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
