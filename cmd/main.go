// Command pulsecheck runs one batch scoring pass over a set of subjects and
// writes the ranked report as CSV.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/havenmetrics/pulsecheck/internal/adapters/export"
	"github.com/havenmetrics/pulsecheck/internal/adapters/nlp"
	"github.com/havenmetrics/pulsecheck/internal/adapters/source"
	app "github.com/havenmetrics/pulsecheck/internal/app"
	"github.com/havenmetrics/pulsecheck/internal/config"
	"github.com/havenmetrics/pulsecheck/internal/domain/grades"
	"github.com/havenmetrics/pulsecheck/internal/domain/model"
	"github.com/havenmetrics/pulsecheck/internal/domain/recency"
	"github.com/havenmetrics/pulsecheck/internal/domain/scoring"
	"github.com/havenmetrics/pulsecheck/internal/fixtures"
	"github.com/havenmetrics/pulsecheck/pkg/logger"
	"github.com/havenmetrics/pulsecheck/pkg/metrics"
)

const metricsReadHeaderTimeout = 5 * time.Second

// subjectFile mirrors the JSON input format for batch subjects.
type subjectFile struct {
	Subjects []struct {
		DisplayName    string             `json:"display_name"`
		Handle         string             `json:"handle"`
		Notes          []noteEntry        `json:"notes"`
		PreviousGrades map[string]float64 `json:"previous_grades"`
		CurrentGrades  map[string]float64 `json:"current_grades"`
	} `json:"subjects"`
}

type noteEntry struct {
	Text string    `json:"text"`
	TS   time.Time `json:"ts"`
}

func main() {
	subjectsPath := flag.String("subjects", "", "path to a subjects JSON file")
	demoCount := flag.Int("demo", 0, "generate N synthetic subjects instead of reading a file")
	outPath := flag.String("out", "", "write the CSV report here instead of stdout")
	withItems := flag.Bool("items", false, "include per-item breakdown rows in the CSV")
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel))
		_ = logger.SetLevelString("info")
	}

	if cfg.MetricsAddr != "" {
		go serveMetrics(ctx, log, cfg.MetricsAddr)
	}

	subjects, fetcher, err := loadSubjects(*subjectsPath, *demoCount)
	if err != nil {
		log.Error(ctx, "failed to load subjects", logger.Error(err))
		os.Exit(1)
	}
	if len(subjects) == 0 {
		log.Error(ctx, "no subjects to score; pass -subjects or -demo")
		os.Exit(1)
	}

	svc := newService(cfg, fetcher, log)

	reports, err := svc.RunBatch(ctx, subjects)
	if err != nil {
		log.Error(ctx, "batch failed", logger.Error(err))
		os.Exit(1)
	}

	if err := writeReport(reports, *outPath, *withItems); err != nil {
		log.Error(ctx, "failed to write report", logger.Error(err))
		os.Exit(1)
	}
	log.Info(ctx, "report written",
		logger.Int("subjects", len(reports)),
		logger.String("out", orStdout(*outPath)),
	)
}

// newService assembles the batch coordinator from configuration.
func newService(cfg *config.Config, fetcher source.Fetcher, log logger.Logger) *app.Service {
	normalizer := nlp.NewInMemoryNormalizer()
	analyzer := nlp.NewInMemoryAnalyzer()

	scorerOpts := []scoring.Option{
		scoring.WithConcernPenalty(cfg.ConcernPenalty),
		scoring.WithNegativeDivisor(cfg.NegativeDivisor),
		scoring.WithCompoundWeight(cfg.CompoundWeight),
	}
	if len(cfg.ConcernTerms) > 0 {
		scorerOpts = append(scorerOpts, scoring.WithConcernTerms(cfg.ConcernTerms))
	}

	return app.New(
		app.WithLogger(log.Named("batch")),
		app.WithFetcher(fetcher),
		app.WithTextScorer(scoring.NewLexicalScorer(normalizer, analyzer, scorerOpts...)),
		app.WithAggregator(recency.New(
			recency.WithDecayRatio(cfg.DecayRatio),
			recency.WithNormalization(cfg.Normalization),
		)),
		app.WithGradeScorer(grades.New(grades.WithMultiplier(cfg.GradesMultiplier))),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithSubjectTimeout(time.Duration(cfg.SubjectTimeoutMS)*time.Millisecond),
		app.WithImageAnalysis(cfg.AnalyzeImages),
		app.WithBrightnessAnalysis(cfg.AnalyzeBrightness),
		app.WithBrightnessWeight(cfg.BrightnessWeight),
	)
}

// loadSubjects reads subjects from a JSON file or generates demo data.
func loadSubjects(path string, demoCount int) ([]model.SubjectInput, source.Fetcher, error) {
	if demoCount > 0 {
		subjects, profiles := fixtures.Generate(demoCount)
		return subjects, source.NewInMemoryFetcher(source.WithProfiles(profiles)), nil
	}
	if path == "" {
		return nil, source.NewInMemoryFetcher(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read subjects file: %w", err)
	}
	var parsed subjectFile
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, nil, fmt.Errorf("parse subjects file: %w", err)
	}

	subjects := make([]model.SubjectInput, 0, len(parsed.Subjects))
	for _, entry := range parsed.Subjects {
		notes := make([]model.Note, 0, len(entry.Notes))
		for _, note := range entry.Notes {
			notes = append(notes, model.Note{Text: note.Text, TS: note.TS})
		}
		subjects = append(subjects, model.SubjectInput{
			DisplayName:    entry.DisplayName,
			Handle:         entry.Handle,
			Notes:          notes,
			PreviousGrades: entry.PreviousGrades,
			CurrentGrades:  entry.CurrentGrades,
		})
	}
	// File-driven runs score no social signal unless a real fetcher is
	// wired; the empty in-memory fetcher reports every handle as absent.
	return subjects, source.NewInMemoryFetcher(), nil
}

// writeReport serializes the ranked reports to outPath or stdout.
func writeReport(reports []model.SubjectReport, outPath string, withItems bool) error {
	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	var opts []export.CSVOption
	if withItems {
		opts = append(opts, export.WithItemBreakdown())
	}
	return export.NewCSVWriter(opts...).Write(out, reports)
}

// serveMetrics exposes the Prometheus registry until ctx is cancelled.
func serveMetrics(ctx context.Context, log logger.Logger, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: metricsReadHeaderTimeout,
	}
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	log.Info(ctx, "serving metrics", logger.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Warn(ctx, "metrics server stopped", logger.Error(err))
	}
}

func orStdout(path string) string {
	if path == "" {
		return "stdout"
	}
	return path
}
