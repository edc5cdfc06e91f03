// Package export serializes ranked batch reports into tabular form.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/havenmetrics/pulsecheck/internal/domain/model"
)

const scorePrecision = 4

// CSVWriter writes one row per subject, optionally followed by per-item
// breakdown rows.
type CSVWriter struct {
	includeItems bool
}

// CSVOption applies a configuration option to the CSVWriter.
type CSVOption func(*CSVWriter)

// WithItemBreakdown adds one row per scored item below each subject row.
func WithItemBreakdown() CSVOption {
	return func(w *CSVWriter) {
		w.includeItems = true
	}
}

// NewCSVWriter creates a writer emitting subject rows only by default.
func NewCSVWriter(opts ...CSVOption) *CSVWriter {
	w := &CSVWriter{}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write serializes reports in their given order. The caller passes the
// already-ranked slice; this is a thin serialization, not a ranking step.
func (w *CSVWriter) Write(out io.Writer, reports []model.SubjectReport) error {
	cw := csv.NewWriter(out)

	header := []string{
		"name", "overall_score", "no_data",
		"social_score", "social_items",
		"grades_score", "grade_deltas",
		"text_score", "text_items",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, report := range reports {
		row := []string{
			report.DisplayName,
			formatScore(report.OverallScore),
			strconv.FormatBool(report.NoData),
			formatSignalScore(report.Social.OverallScore, report.Social.Present),
			strconv.Itoa(len(report.Social.Items)),
			formatSignalScore(report.Grades.OverallScore, report.Grades.Present),
			strconv.Itoa(len(report.Grades.Deltas)),
			formatSignalScore(report.Text.OverallScore, report.Text.Present),
			strconv.Itoa(len(report.Text.Items)),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row for %q: %w", report.DisplayName, err)
		}
		if w.includeItems {
			if err := w.writeItems(cw, report); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// writeItems emits per-item breakdown rows in the subject row's shape, with
// the item detail in the signal columns.
func (w *CSVWriter) writeItems(cw *csv.Writer, report model.SubjectReport) error {
	write := func(signal, content string, score float64) error {
		row := []string{
			report.DisplayName + "/" + signal,
			formatScore(score),
			"", content, "", "", "", "", "",
		}
		return cw.Write(row)
	}

	for _, item := range report.Social.Items {
		if err := write("social", item.Content, item.Score); err != nil {
			return fmt.Errorf("write item row: %w", err)
		}
	}
	for _, delta := range report.Grades.Deltas {
		if err := write("grades", delta.Key, delta.Delta); err != nil {
			return fmt.Errorf("write delta row: %w", err)
		}
	}
	for _, item := range report.Text.Items {
		if err := write("text", item.Content, item.Score); err != nil {
			return fmt.Errorf("write item row: %w", err)
		}
	}
	return nil
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', scorePrecision, 64)
}

// formatSignalScore renders absent signals as an empty cell so a real 0 and
// "no data" stay distinguishable in the export.
func formatSignalScore(score float64, present bool) string {
	if !present {
		return ""
	}
	return formatScore(score)
}
