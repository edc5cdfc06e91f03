// Package service provides the batch coordinator: it runs the full scoring
// pipeline concurrently for many subjects and publishes one ranked report.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/havenmetrics/pulsecheck/internal/adapters/nlp"
	"github.com/havenmetrics/pulsecheck/internal/adapters/repository"
	"github.com/havenmetrics/pulsecheck/internal/adapters/source"
	"github.com/havenmetrics/pulsecheck/internal/domain/combine"
	"github.com/havenmetrics/pulsecheck/internal/domain/dedupe"
	"github.com/havenmetrics/pulsecheck/internal/domain/grades"
	"github.com/havenmetrics/pulsecheck/internal/domain/model"
	"github.com/havenmetrics/pulsecheck/internal/domain/recency"
	"github.com/havenmetrics/pulsecheck/internal/domain/scoring"
	"github.com/havenmetrics/pulsecheck/pkg/logger"
	"github.com/havenmetrics/pulsecheck/pkg/metrics"
)

// Default coordinator configuration constants.
const (
	defaultWorkerMultiplier = 2
	defaultSubjectTimeout   = 10 * time.Second
	defaultBrightnessWeight = 1.0
)

// Service wires the scorers, aggregator and external capabilities into one
// batch coordinator. Construct with New and reuse across batch runs; each
// run gets its own report store, so no state persists between runs.
type Service struct {
	fetcher    source.Fetcher
	ocr        source.OCR
	brightness source.Brightness

	textScorer  scoring.Scorer
	aggregator  *recency.Aggregator
	gradeScorer *grades.Scorer

	workerCount       int
	subjectTimeout    time.Duration
	analyzeImages     bool
	analyzeBrightness bool
	brightnessWeight  float64

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithFetcher sets the subject fetch capability. Without one the social
// signal is always absent.
func WithFetcher(fetcher source.Fetcher) Option {
	return func(s *Service) {
		s.fetcher = fetcher
	}
}

// WithOCR sets the optional image text extraction capability.
func WithOCR(ocr source.OCR) Option {
	return func(s *Service) {
		s.ocr = ocr
	}
}

// WithBrightness sets the optional image brightness capability.
func WithBrightness(brightness source.Brightness) Option {
	return func(s *Service) {
		s.brightness = brightness
	}
}

// WithTextScorer replaces the default lexical text scorer.
func WithTextScorer(scorer scoring.Scorer) Option {
	return func(s *Service) {
		if scorer != nil {
			s.textScorer = scorer
		}
	}
}

// WithAggregator replaces the default recency aggregator.
func WithAggregator(aggregator *recency.Aggregator) Option {
	return func(s *Service) {
		if aggregator != nil {
			s.aggregator = aggregator
		}
	}
}

// WithGradeScorer replaces the default grade delta scorer.
func WithGradeScorer(scorer *grades.Scorer) Option {
	return func(s *Service) {
		if scorer != nil {
			s.gradeScorer = scorer
		}
	}
}

// WithWorkerCount bounds the number of concurrently scored subjects.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithSubjectTimeout caps one subject pipeline, including fetch time.
// Zero disables the per-subject timeout.
func WithSubjectTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		if timeout >= 0 {
			s.subjectTimeout = timeout
		}
	}
}

// WithImageAnalysis toggles the OCR enhancement for caption-less posts.
func WithImageAnalysis(enabled bool) Option {
	return func(s *Service) {
		s.analyzeImages = enabled
	}
}

// WithBrightnessAnalysis toggles the image-brightness enhancement.
func WithBrightnessAnalysis(enabled bool) Option {
	return func(s *Service) {
		s.analyzeBrightness = enabled
	}
}

// WithBrightnessWeight scales the per-item brightness contribution.
func WithBrightnessWeight(weight float64) Option {
	return func(s *Service) {
		if weight > 0 {
			s.brightnessWeight = weight
		}
	}
}

// WithLogger sets a custom logger for the coordinator.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service with default scorers and configuration.
func New(opts ...Option) *Service {
	s := &Service{
		textScorer:       scoring.NewLexicalScorer(nlp.NewInMemoryNormalizer(), nlp.NewInMemoryAnalyzer()),
		aggregator:       recency.New(),
		gradeScorer:      grades.New(),
		workerCount:      runtime.NumCPU() * defaultWorkerMultiplier,
		subjectTimeout:   defaultSubjectTimeout,
		brightnessWeight: defaultBrightnessWeight,
		logger:           logger.Nop(),
	}

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RunBatch scores every subject concurrently and returns the reports sorted
// ascending by overall score. Duplicate subjects (same handle, or same
// display name when no handle is set) are scored once. Per-subject failures
// become absent signals and never abort sibling units; the only error RunBatch
// itself returns is cancellation, in which case partial results are discarded.
func (s *Service) RunBatch(ctx context.Context, subjects []model.SubjectInput) ([]model.SubjectReport, error) {
	start := time.Now()
	metrics.RecordBatchStarted()
	metrics.UpdateWorkerCount(s.workerCount)
	defer func() {
		metrics.RecordBatchDuration(float64(time.Since(start).Milliseconds()))
	}()

	store := repository.NewInMemoryStore()
	deduper := dedupe.NewInMemoryDeduper()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workerCount)

	for _, subject := range subjects {
		key := subject.Handle
		if key == "" {
			key = subject.DisplayName
		}
		if deduper.SeenAndRecord(ctx, key) {
			metrics.RecordSubjectDuplicate()
			s.logger.Debug(ctx, "skipping duplicate subject", logger.String("subject", key))
			continue
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			metrics.AddSubjectsInFlight(1)
			defer metrics.AddSubjectsInFlight(-1)

			unitCtx := gctx
			if s.subjectTimeout > 0 {
				var cancel context.CancelFunc
				unitCtx, cancel = context.WithTimeout(gctx, s.subjectTimeout)
				defer cancel()
			}

			report := s.scoreSubject(unitCtx, subject)

			// Cancellation is the only error a unit surfaces; every scoring
			// failure was already converted to an absent signal.
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := store.Add(gctx, report); err != nil {
				metrics.RecordReportStoreError()
				return fmt.Errorf("collect report for %q: %w", subject.DisplayName, err)
			}
			metrics.RecordSubjectScored()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		store.Close()
		s.logger.Warn(ctx, "batch aborted, discarding partial results", logger.Error(err))
		return nil, err
	}

	metrics.RecordBatchCompleted()
	reports := store.Ranked(ctx)
	s.logger.Info(ctx, "batch completed",
		logger.Int("subjects", len(reports)),
		logger.Duration("elapsed", time.Since(start)),
	)
	return reports, nil
}

// scoreSubject runs the full pipeline for one subject. It never fails: every
// error is converted locally to an absent signal so the subject still appears
// in the report with its display name verbatim.
func (s *Service) scoreSubject(ctx context.Context, in model.SubjectInput) model.SubjectReport {
	social := s.scoreSocial(ctx, in.Handle)
	gradeSignal := s.scoreGrades(ctx, in)
	textSignal := s.scoreNotes(ctx, in.Notes)

	signals := []combine.Signal{
		combine.FromSignalResult(combine.SignalSocial, social),
		combine.FromGradeResult(combine.SignalGrades, gradeSignal),
		combine.FromSignalResult(combine.SignalText, textSignal),
	}
	for _, signal := range signals {
		if !signal.Present {
			metrics.RecordSignalAbsent(signal.Name)
		}
	}

	overall, present := combine.Combine(signals...)

	return model.SubjectReport{
		DisplayName:  in.DisplayName,
		OverallScore: overall,
		NoData:       !present,
		Social:       social,
		Grades:       gradeSignal,
		Text:         textSignal,
	}
}

// scoreSocial fetches and scores the subject's biography and posts, newest
// first, with the biography as the newest item of the decay sequence.
func (s *Service) scoreSocial(ctx context.Context, handle string) model.SignalResult {
	if s.fetcher == nil || handle == "" {
		return model.SignalResult{Present: false}
	}

	profile, err := s.fetcher.FetchSubjectTexts(ctx, handle)
	if err != nil {
		metrics.RecordFetchError()
		s.logger.Warn(ctx, "subject fetch failed",
			logger.String("handle", handle),
			logger.Error(err),
		)
		return model.SignalResult{Present: false}
	}

	items := make([]model.ScoredItem, 0, len(profile.Posts)+1)
	scored := 0

	if bio := profile.Biography; bio != "" {
		if item, ok := s.scoreText(ctx, bio, time.Time{}); ok {
			items = append(items, item)
			scored++
		}
	}

	for _, post := range profile.Posts {
		item, ok := s.scorePost(ctx, post)
		if ok {
			scored++
		}
		items = append(items, item)
	}

	if scored == 0 {
		// Placeholder-only sequences carry no usable data.
		return model.SignalResult{Present: false}
	}
	return s.aggregator.Aggregate(items)
}

// scorePost scores one post. The boolean result reports whether the item
// carries real data; caption-less posts whose enhancements all fail become
// zero-score placeholders.
func (s *Service) scorePost(ctx context.Context, post model.Post) (model.ScoredItem, bool) {
	text := post.Caption
	if text == "" && post.ImageRef != "" && s.analyzeImages && s.ocr != nil {
		extracted, err := s.ocr.ExtractText(ctx, post.ImageRef)
		if err != nil {
			metrics.RecordOCRError()
			s.logger.Debug(ctx, "skipping OCR enhancement", logger.Error(err))
		} else {
			text = extracted
		}
	}

	item := model.ScoredItem{Content: text, TS: post.TS}
	hasData := false

	if text != "" {
		if scoredItem, ok := s.scoreText(ctx, text, post.TS); ok {
			item = scoredItem
			hasData = true
		}
	}

	if post.ImageRef != "" && s.analyzeBrightness && s.brightness != nil {
		value, err := s.brightness.Measure(ctx, post.ImageRef)
		if err != nil {
			metrics.RecordImageError()
			s.logger.Debug(ctx, "skipping brightness enhancement", logger.Error(err))
		} else {
			// Dark imagery pulls the item down, bright imagery lifts it.
			item.Score += (2*value - 1) * s.brightnessWeight
			hasData = true
		}
	}

	return item, hasData
}

// scoreText scores one text into an item; failures are logged and reported
// as "no data" to the caller.
func (s *Service) scoreText(ctx context.Context, text string, ts time.Time) (model.ScoredItem, bool) {
	start := time.Now()
	score, err := s.textScorer.Score(ctx, text)
	metrics.RecordTextScoreLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		if !errors.Is(err, scoring.ErrEmptyText) {
			metrics.RecordScoringError()
			s.logger.Warn(ctx, "text scoring failed", logger.Error(err))
		}
		return model.ScoredItem{Content: text, TS: ts}, false
	}
	return model.ScoredItem{Content: text, TS: ts, Score: score}, true
}

// scoreGrades computes the grades signal; invalid grade input is reported as
// an absent signal at this boundary, not an aborted unit.
func (s *Service) scoreGrades(ctx context.Context, in model.SubjectInput) model.GradeSignalResult {
	if len(in.PreviousGrades) == 0 || len(in.CurrentGrades) == 0 {
		return model.GradeSignalResult{Present: false}
	}
	result, err := s.gradeScorer.Score(in.PreviousGrades, in.CurrentGrades)
	if err != nil {
		s.logger.Warn(ctx, "grade scoring failed",
			logger.String("subject", in.DisplayName),
			logger.Error(err),
		)
		return model.GradeSignalResult{Present: false}
	}
	return result
}

// scoreNotes scores the free-form notes, newest first.
func (s *Service) scoreNotes(ctx context.Context, notes []model.Note) model.SignalResult {
	if len(notes) == 0 {
		return model.SignalResult{Present: false}
	}

	items := make([]model.ScoredItem, 0, len(notes))
	scored := 0
	for _, note := range notes {
		item, ok := s.scoreText(ctx, note.Text, note.TS)
		if ok {
			scored++
		}
		items = append(items, item)
	}

	if scored == 0 {
		return model.SignalResult{Present: false}
	}
	return s.aggregator.Aggregate(items)
}
