// Package pipeline runs a complete analysis: load, aggregate, print, render
// and export.
//
// Stages run sequentially in a fixed order and the context is checked between
// them. A load failure stops the run before any output is produced. A failure
// writing one artifact is recorded and the remaining artifacts are still
// attempted.
package pipeline

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/paveg/salesinsight/internal/analysis"
	"github.com/paveg/salesinsight/internal/chart"
	"github.com/paveg/salesinsight/internal/config"
	"github.com/paveg/salesinsight/internal/dataset"
	"github.com/paveg/salesinsight/internal/errors"
	sio "github.com/paveg/salesinsight/internal/io"
	"github.com/paveg/salesinsight/internal/logger"
	"github.com/paveg/salesinsight/internal/monitoring"
	"github.com/paveg/salesinsight/internal/report"
	"github.com/paveg/salesinsight/internal/summary"
)

// Result is everything a run produced.
type Result struct {
	RunID     string
	Dataset   *dataset.Dataset
	Report    *analysis.Report
	Artifacts []string // paths written, in write order
	Metrics   monitoring.MetricsSummary
}

// Option customises a run.
type Option func(*runner)

// WithChartDPI overrides the figure resolution.
func WithChartDPI(dpi int) Option {
	return func(r *runner) {
		r.chartDPI = dpi
	}
}

// WithSummaryWriter replaces the PDF writer, for example to pin its clock.
func WithSummaryWriter(w *summary.Writer) Option {
	return func(r *runner) {
		r.summary = w
	}
}

type runner struct {
	cfg      config.Config
	log      *logger.Logger
	printer  *report.Printer
	metrics  *monitoring.MetricsCollector
	chartDPI int
	summary  *summary.Writer
	result   *Result
	outErrs  []error
}

// Run executes the pipeline described by cfg, printing the report to stdout.
// On output failures it returns the Result together with the joined errors.
func Run(ctx context.Context, cfg config.Config, log *logger.Logger, stdout io.Writer, opts ...Option) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := &runner{
		cfg:      cfg,
		printer:  report.NewPrinter(stdout),
		metrics:  monitoring.NewMetricsCollector(cfg.Metrics),
		chartDPI: chart.DefaultDPI,
		summary:  summary.NewWriter(cfg.OutputDir),
		result:   &Result{RunID: uuid.NewString()},
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = log.With("run_id", r.result.RunID)

	if _, err := os.Stat(cfg.InputPath); err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, errors.NewMissingInputError(cfg.InputPath)
		}
		return nil, errors.NewLoadError("Stat", 0, "cannot access input file", err)
	}

	for _, dir := range []string{cfg.OutputDir, cfg.VisualizationDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	r.log.Info("starting analysis", "input", cfg.InputPath, "output_dir", cfg.OutputDir, "visualization_dir", cfg.VisualizationDir)

	if err := r.analyze(ctx); err != nil {
		return nil, err
	}
	if err := r.printer.Analysis(r.result.Report); err != nil {
		return r.result, fmt.Errorf("printing report: %w", err)
	}
	if err := r.render(ctx); err != nil {
		return r.result, err
	}

	r.printer.Complete()
	r.finish()
	if err := stderrors.Join(r.outErrs...); err != nil {
		return r.result, err
	}
	return r.result, r.printer.Err()
}

func (r *runner) analyze(ctx context.Context) error {
	var ds *dataset.Dataset
	err := r.metrics.RecordOperation("load", func() error {
		var err error
		ds, err = sio.ReadFile(r.cfg.InputPath, sio.CSVOptions{
			Delimiter:   r.cfg.DelimiterRune(),
			DateLayouts: r.cfg.DateLayouts,
		})
		return err
	})
	if err != nil {
		return err
	}
	r.result.Dataset = ds
	r.logQuality(ds.Quality())

	rep := &analysis.Report{Quality: ds.Quality(), TopN: r.cfg.TopN}
	stages := []struct {
		name string
		run  func()
	}{
		{"kpis", func() { rep.KPIs = analysis.CalculateKPIs(ds) }},
		{"products", func() { rep.Products = analysis.AggregateProducts(ds) }},
		{"regions", func() { rep.Regions = analysis.AggregateRegions(ds) }},
		{"temporal", func() { rep.Temporal = analysis.AggregateTemporal(ds) }},
		{"segments", func() { rep.Segments = analysis.AggregateSegments(ds) }},
		{"recommendations", func() {
			rep.Recommendations = analysis.Recommend(rep.KPIs, rep.Products, rep.Regions, rep.Temporal)
		}},
	}
	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			return err
		}
		_ = r.metrics.RecordOperation(stage.name, func() error {
			stage.run()
			return nil
		})
	}
	r.result.Report = rep

	for _, err := range rep.KPIs.Degenerate() {
		r.log.Warn("degenerate KPI", "error", err)
	}
	for _, row := range rep.Regions.Ranked() {
		if !row.AOV.Defined() {
			r.log.Warn("degenerate regional metric", "region", row.Region, "error", row.AOV.Err)
		}
	}
	if _, err := rep.Temporal.Peak(); err != nil {
		r.log.Warn("no seasonal peak", "error", err)
	}
	return nil
}

func (r *runner) logQuality(q dataset.Quality) {
	r.log.Info("dataset loaded", "rows", q.Rows, "columns", q.Columns,
		"min_date", q.MinDate.Format(time.DateOnly), "max_date", q.MaxDate.Format(time.DateOnly))
	for _, m := range q.MissingColumns() {
		r.log.Warn("missing values", "column", m.Column, "count", m.Count)
	}
	if q.Duplicates > 0 {
		r.log.Warn("duplicate rows", "count", q.Duplicates)
	}
}

// render writes every artifact in a fixed order. Only cancellation aborts it.
func (r *runner) render(ctx context.Context) error {
	rep := r.result.Report
	renderer := chart.NewRenderer(r.cfg.VisualizationDir, r.cfg.TopN)
	renderer.DPI = r.chartDPI

	artifacts := []struct {
		name  string
		write func() (string, error)
	}{
		{chart.ProductsFile, func() (string, error) { return renderer.Products(rep) }},
		{chart.RegionsFile, func() (string, error) { return renderer.Regions(rep) }},
		{chart.TemporalFile, func() (string, error) { return renderer.Temporal(rep) }},
		{chart.InsightsFile, func() (string, error) { return renderer.Insights(rep) }},
		{summary.FileName, func() (string, error) { return r.summary.Write(rep) }},
	}

	exports := map[string]struct {
		name  string
		write func(io.Writer) error
	}{
		config.ExportXLSX: {sio.XLSXFile, func(w io.Writer) error { return sio.NewXLSXWriter().WriteReport(w, rep) }},
		config.ExportParquet: {sio.ParquetFile, func(w io.Writer) error {
			return sio.NewParquetWriter(sio.DefaultParquetOptions(), nil).WriteDataset(w, r.result.Dataset)
		}},
		config.ExportJSON: {sio.JSONFile, func(w io.Writer) error { return sio.NewJSONWriter().WriteReport(w, rep) }},
	}
	for _, format := range config.ExportFormats {
		if !r.cfg.ExportEnabled(format) {
			continue
		}
		export := exports[format]
		path := filepath.Join(r.cfg.OutputDir, export.name)
		artifacts = append(artifacts, struct {
			name  string
			write func() (string, error)
		}{export.name, func() (string, error) { return path, writeFile(path, export.write) }})
	}

	for _, a := range artifacts {
		if err := ctx.Err(); err != nil {
			return err
		}
		var path string
		err := r.metrics.RecordOperation(a.name, func() error {
			var err error
			path, err = a.write()
			return err
		})
		if err != nil {
			r.log.Error("artifact failed", "artifact", a.name, "error", err)
			r.outErrs = append(r.outErrs, errors.NewOutputError(a.name, err))
			continue
		}
		r.log.Info("artifact written", "artifact", a.name, "path", path)
		r.result.Artifacts = append(r.result.Artifacts, path)
	}
	return nil
}

func (r *runner) finish() {
	r.result.Metrics = r.metrics.GetSummary()
	if !r.metrics.IsEnabled() {
		return
	}
	for _, m := range r.metrics.GetMetrics() {
		r.log.Info("stage timing", "stage", m.Stage, "duration", m.Duration, "memory_bytes", m.MemoryUsed, "failed", m.Failed)
	}
	r.log.Info("run timing", "stages", r.result.Metrics.TotalStages, "total", r.result.Metrics.TotalDuration,
		"slowest", r.result.Metrics.Slowest.Stage)
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
