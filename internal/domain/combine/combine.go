// Package combine merges independently computed signal scores into one
// overall score, excluding signals with no usable data.
package combine

import (
	"github.com/havenmetrics/pulsecheck/internal/domain/model"
)

// Signal names used across the pipeline.
const (
	SignalSocial = "social"
	SignalGrades = "grades"
	SignalText   = "text"
)

// Signal is one independently scored input channel for a subject.
type Signal struct {
	Name    string
	Score   float64
	Present bool
}

// FromSignalResult builds a Signal from a text-based signal result.
func FromSignalResult(name string, r model.SignalResult) Signal {
	return Signal{Name: name, Score: r.OverallScore, Present: r.Present}
}

// FromGradeResult builds a Signal from a grades signal result.
func FromGradeResult(name string, r model.GradeSignalResult) Signal {
	return Signal{Name: name, Score: r.OverallScore, Present: r.Present}
}

// Absent builds an absent Signal, used when a signal's computation failed.
// An errored signal is excluded from the mean, never counted as neutral.
func Absent(name string) Signal {
	return Signal{Name: name, Present: false}
}

// Combine returns the simple mean over present signals. Each present signal
// counts equally regardless of how many items it summarized. The second
// return value is false when no signal is present; callers must surface that
// as "no data" rather than a neutral score of 0.
func Combine(signals ...Signal) (float64, bool) {
	var (
		sum     float64
		present int
	)
	for _, signal := range signals {
		if !signal.Present || !model.Finite(signal.Score) {
			continue
		}
		sum += signal.Score
		present++
	}
	if present == 0 {
		return 0, false
	}
	return sum / float64(present), true
}
