// Package repository defines the shared report collection a batch run
// publishes into, and its in-memory implementation.
package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/havenmetrics/pulsecheck/internal/domain/model"
)

// ReportStore collects subject reports from concurrent batch units and
// serves ranked snapshots once the run completes.
type ReportStore interface {
	// Add appends a report. Safe for concurrent use; fails with ErrClosed
	// after Close.
	Add(ctx context.Context, report model.SubjectReport) error

	// Ranked returns a copy of the collected reports sorted ascending by
	// overall score, ties broken by display name for stable output.
	Ranked(ctx context.Context) []model.SubjectReport

	// Count returns the number of collected reports.
	Count(ctx context.Context) int

	// Close rejects further appends. Used to discard late arrivals after a
	// cancelled run.
	Close()
}

// InMemoryStore implements ReportStore with a mutex-guarded slice. Appends
// happen in completion order; ordering is only established by Ranked.
type InMemoryStore struct {
	mu      sync.RWMutex
	reports []model.SubjectReport
	closed  bool
}

// NewInMemoryStore creates an empty report store for one batch run.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// Add appends a report under the store lock.
func (s *InMemoryStore) Add(_ context.Context, report model.SubjectReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.reports = append(s.reports, report)
	return nil
}

// Ranked returns the collected reports sorted ascending by overall score.
func (s *InMemoryStore) Ranked(_ context.Context) []model.SubjectReport {
	s.mu.RLock()
	ranked := make([]model.SubjectReport, len(s.reports))
	copy(ranked, s.reports)
	s.mu.RUnlock()

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].OverallScore != ranked[j].OverallScore {
			return ranked[i].OverallScore < ranked[j].OverallScore
		}
		return ranked[i].DisplayName < ranked[j].DisplayName
	})
	return ranked
}

// Count returns the number of collected reports.
func (s *InMemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reports)
}

// Close rejects further appends.
func (s *InMemoryStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}
