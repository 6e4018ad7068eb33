package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for a run.
type Metrics struct {
	ObservationsLoaded  prometheus.Counter
	ObservationsDropped prometheus.Counter
	YearsAggregated     prometheus.Gauge
	YearsWithoutReading prometheus.Gauge
	PipelineRunning     prometheus.Gauge
	RunDuration         prometheus.Histogram

	// Rendering metrics.
	ChartsRendered *prometheus.CounterVec   // labels: chart={yearly_line,yearly_trend,seasonal,spiral}
	RenderErrors   *prometheus.CounterVec   // labels: chart
	RenderDuration *prometheus.HistogramVec // labels: chart
	SpiralFrames   prometheus.Gauge
}

// NewMetrics creates and registers all run metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		ObservationsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "anomaly_etl",
			Name:      "observations_loaded_total",
			Help:      "Rows read from the input file.",
		}),
		ObservationsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "anomaly_etl",
			Name:      "observations_dropped_total",
			Help:      "Rows dropped for lacking an annual anomaly.",
		}),
		YearsAggregated: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "anomaly_etl",
			Name:      "years_aggregated",
			Help:      "Years with a yearly average in the last run.",
		}),
		YearsWithoutReading: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "anomaly_etl",
			Name:      "years_without_readings",
			Help:      "Years excluded from averaging because every monthly value was absent.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "anomaly_etl",
			Name:      "pipeline_running",
			Help:      "1 while a run is in progress.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "anomaly_etl",
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete load-derive-render run.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		}),
		ChartsRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "anomaly_etl",
			Name:      "charts_rendered_total",
			Help:      "Charts written, by chart kind.",
		}, []string{"chart"}),
		RenderErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "anomaly_etl",
			Name:      "render_errors_total",
			Help:      "Chart rendering failures, by chart kind.",
		}, []string{"chart"}),
		RenderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "anomaly_etl",
			Name:      "render_duration_seconds",
			Help:      "Time spent rendering a chart.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"chart"}),
		SpiralFrames: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "anomaly_etl",
			Name:      "spiral_frames",
			Help:      "Frames in the last climate spiral animation.",
		}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.ObservationsLoaded,
		m.ObservationsDropped,
		m.YearsAggregated,
		m.YearsWithoutReading,
		m.PipelineRunning,
		m.RunDuration,
		m.ChartsRendered,
		m.RenderErrors,
		m.RenderDuration,
		m.SpiralFrames,
	}
}

// WriteTextfile dumps the default registry in the Prometheus text format,
// for node_exporter's textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
