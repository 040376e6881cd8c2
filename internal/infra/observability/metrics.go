package observability

import (
	"time"

	"github.com/boddenberg/dotenv-go/dotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds the Prometheus metrics for dotenv loading.
// It implements dotenv.Recorder.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	Registry *prometheus.Registry

	loadDuration  prometheus.Histogram
	loadAttempts  *prometheus.CounterVec
	keysInserted  *prometheus.CounterVec
	linesRejected prometheus.Counter
}

var _ dotenv.Recorder = (*Metrics)(nil)

// LoadStats is a point-in-time view of the loader counters.
type LoadStats struct {
	Attempts       map[string]float64
	EnvInserts     float64
	ServerInserts  float64
	RejectedLines  float64
	LoadsObserved  uint64
	TotalLoadTimeS float64
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// loader metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		loadDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "dotenv_load_duration_seconds",
				Help:    "Time spent reading and applying a dotenv file.",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
			},
		),
		loadAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dotenv_load_attempts_total",
				Help: "Total Load calls by outcome.",
			},
			[]string{"outcome"},
		),
		keysInserted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dotenv_keys_inserted_total",
				Help: "Total keys inserted by target mapping.",
			},
			[]string{"target"},
		),
		linesRejected: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "dotenv_lines_rejected_total",
				Help: "Total non-comment lines that were not KEY=VALUE.",
			},
		),
	}
}

// RecordAttempt increments the attempt counter for an outcome.
func (m *Metrics) RecordAttempt(outcome string) {
	m.loadAttempts.WithLabelValues(outcome).Inc()
}

// RecordInsert increments the insert counter for a target mapping.
func (m *Metrics) RecordInsert(target string) {
	m.keysInserted.WithLabelValues(target).Inc()
}

// RecordRejectedLine increments the rejected line counter.
func (m *Metrics) RecordRejectedLine() {
	m.linesRejected.Inc()
}

// RecordLoadDuration observes how long a load took.
func (m *Metrics) RecordLoadDuration(d time.Duration) {
	m.loadDuration.Observe(d.Seconds())
}

// Snapshot returns the current counter values.
func (m *Metrics) Snapshot() *LoadStats {
	stats := &LoadStats{
		Attempts: make(map[string]float64),
	}

	for _, outcome := range []string{
		dotenv.OutcomeLoaded,
		dotenv.OutcomeAlreadyLoaded,
		dotenv.OutcomeNotFound,
		dotenv.OutcomeReadFailed,
	} {
		stats.Attempts[outcome] = getCounterValue(m.loadAttempts, outcome)
	}

	stats.EnvInserts = getCounterValue(m.keysInserted, dotenv.TargetEnv)
	stats.ServerInserts = getCounterValue(m.keysInserted, dotenv.TargetServer)
	stats.RejectedLines = readCounter(m.linesRejected)

	h := &dto.Metric{}
	if err := m.loadDuration.Write(h); err == nil && h.Histogram != nil {
		stats.LoadsObserved = h.Histogram.GetSampleCount()
		stats.TotalLoadTimeS = h.Histogram.GetSampleSum()
	}

	return stats
}

// getCounterValue extracts the current float64 value from a CounterVec for a given label.
func getCounterValue(cv *prometheus.CounterVec, label string) float64 {
	return readCounter(cv.WithLabelValues(label))
}

func readCounter(c prometheus.Counter) float64 {
	m := &dto.Metric{}
	if err := c.Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}
