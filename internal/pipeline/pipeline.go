package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/temperature-anomaly-etl/internal/domain"
	"github.com/couchcryptid/temperature-anomaly-etl/internal/observability"
)

// Extractor reads the raw observations from the source.
type Extractor interface {
	Path() string
	Extract(ctx context.Context) ([]domain.Observation, error)
}

// TableWriter exports the derived tables.
type TableWriter interface {
	WriteTables(ctx context.Context, tables domain.DerivedTables) (domain.Artifact, error)
}

// ChartRenderer draws the charts from the derived tables.
type ChartRenderer interface {
	YearlyLine(avgs []domain.YearlyAverage) (domain.Artifact, error)
	YearlyTrend(avgs []domain.YearlyAverage, trend domain.Trend) (domain.Artifact, error)
	Seasonal(rows []domain.WrappedRow) (domain.Artifact, error)
	Spiral(ctx context.Context, rows []domain.FrameRow) (domain.Artifact, error)
}

// Pipeline runs load, derive, export and render once.
type Pipeline struct {
	extractor Extractor
	writer    TableWriter
	renderer  ChartRenderer
	logger    *slog.Logger
	metrics   *observability.Metrics
	parallel  bool
}

// New creates a Pipeline. A nil writer disables the table export.
func New(e Extractor, w TableWriter, r ChartRenderer, logger *slog.Logger, metrics *observability.Metrics, parallel bool) *Pipeline {
	return &Pipeline{
		extractor: e,
		writer:    w,
		renderer:  r,
		logger:    logger,
		metrics:   metrics,
		parallel:  parallel,
	}
}

type renderTask struct {
	kind   string
	render func(ctx context.Context) (domain.Artifact, error)
}

// Run executes one complete run and returns its report. Input and rendering
// errors abort the run; years without readings are only reported.
func (p *Pipeline) Run(ctx context.Context) (domain.RunReport, error) {
	start := domain.Now()
	report := domain.NewRunReport(p.extractor.Path())
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	p.logger.Info("pipeline started", "input", report.Input, "parallel", p.parallel)

	obs, err := p.extractor.Extract(ctx)
	if err != nil {
		return report, fmt.Errorf("extract: %w", err)
	}
	tables, err := Derive(obs)
	if err != nil {
		return report, fmt.Errorf("derive: %w", err)
	}
	p.summarize(&report, obs, tables)

	if p.writer != nil {
		artifact, err := p.writer.WriteTables(ctx, tables)
		if err != nil {
			return report, fmt.Errorf("export tables: %w", err)
		}
		report.Artifacts = append(report.Artifacts, artifact)
	}

	tasks := []renderTask{{
		kind:   domain.ChartYearlyLine,
		render: func(context.Context) (domain.Artifact, error) { return p.renderer.YearlyLine(tables.Yearly) },
	}}
	trend, err := domain.FitTrend(tables.Yearly)
	switch {
	case errors.Is(err, domain.ErrInsufficientData):
		p.logger.Warn("trend chart skipped", "error", err)
	case err != nil:
		return report, fmt.Errorf("fit trend: %w", err)
	default:
		report.Trend = &trend
		tasks = append(tasks, renderTask{
			kind:   domain.ChartYearlyTrend,
			render: func(context.Context) (domain.Artifact, error) { return p.renderer.YearlyTrend(tables.Yearly, trend) },
		})
	}
	tasks = append(tasks,
		renderTask{
			kind:   domain.ChartSeasonal,
			render: func(context.Context) (domain.Artifact, error) { return p.renderer.Seasonal(tables.Wrapped) },
		},
		renderTask{
			kind:   domain.ChartSpiral,
			render: func(ctx context.Context) (domain.Artifact, error) { return p.renderer.Spiral(ctx, tables.Frames) },
		},
	)
	p.metrics.SpiralFrames.Set(float64(len(domain.FrameYears(tables.Frames))))

	charts, err := p.renderAll(ctx, tasks)
	if err != nil {
		return report, err
	}
	report.Artifacts = append(report.Artifacts, charts...)

	elapsed := domain.Since(start)
	report.Duration = elapsed.String()
	p.metrics.RunDuration.Observe(elapsed.Seconds())
	p.logger.Info("pipeline finished",
		"artifacts", len(report.Artifacts),
		"years", report.YearsAggregated,
		"duration", elapsed,
	)
	return report, nil
}

// summarize fills the data counts of the report and records the matching
// metrics.
func (p *Pipeline) summarize(report *domain.RunReport, obs []domain.Observation, tables domain.DerivedTables) {
	report.Observations = len(obs)
	report.Cleaned = len(tables.Cleaned)
	report.Dropped = len(obs) - len(tables.Cleaned)
	report.YearsAggregated = len(tables.Yearly)
	if first, last, ok := domain.YearRange(tables.Cleaned); ok {
		report.FirstYear, report.LastYear = first, last
	}

	p.metrics.ObservationsLoaded.Add(float64(report.Observations))
	p.metrics.ObservationsDropped.Add(float64(report.Dropped))
	p.metrics.YearsAggregated.Set(float64(report.YearsAggregated))

	report.YearsWithoutReadings = domain.YearsWithoutReadings(tables.Cleaned)
	p.metrics.YearsWithoutReading.Set(float64(len(report.YearsWithoutReadings)))
	if len(report.YearsWithoutReadings) > 0 {
		p.logger.Warn("years without monthly readings excluded from averages",
			"years", report.YearsWithoutReadings)
	}

	p.logger.Info("tables derived",
		"observations", report.Observations,
		"dropped", report.Dropped,
		"first_year", report.FirstYear,
		"last_year", report.LastYear,
	)
}

// renderAll runs the tasks, concurrently when enabled. Artifacts keep task
// order. The first failure cancels the remaining renders.
func (p *Pipeline) renderAll(ctx context.Context, tasks []renderTask) ([]domain.Artifact, error) {
	artifacts := make([]domain.Artifact, len(tasks))

	if !p.parallel {
		for i, task := range tasks {
			a, err := p.render(ctx, task)
			if err != nil {
				return nil, err
			}
			artifacts[i] = a
		}
		return artifacts, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, task := range tasks {
		g.Go(func() error {
			a, err := p.render(gctx, task)
			if err != nil {
				return err
			}
			artifacts[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

func (p *Pipeline) render(ctx context.Context, task renderTask) (domain.Artifact, error) {
	start := domain.Now()
	a, err := task.render(ctx)
	p.metrics.RenderDuration.WithLabelValues(task.kind).Observe(domain.Since(start).Seconds())
	if err != nil {
		p.metrics.RenderErrors.WithLabelValues(task.kind).Inc()
		p.logger.Error("render failed", "chart", task.kind, "error", err)
		return domain.Artifact{}, fmt.Errorf("render %s: %w", task.kind, err)
	}
	p.metrics.ChartsRendered.WithLabelValues(task.kind).Inc()
	p.logger.Info("chart rendered", "chart", task.kind, "path", a.Path)
	return a, nil
}
