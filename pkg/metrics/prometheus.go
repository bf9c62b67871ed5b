// Package metrics provides Prometheus metrics for the collection pipeline.
//
// The pipeline is a batch process, so instead of a scrape endpoint the
// registry is dumped to a textfile at the end of a run (node_exporter
// textfile-collector format).
package metrics

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

// Manager owns all Prometheus metrics for the pipeline.
type Manager struct {
	namespace string
	buckets   []float64
	registry  *prometheus.Registry

	// Collection metrics
	queriesTotal  *prometheus.CounterVec
	queryRetries  prometheus.Counter
	queryFailures *prometheus.CounterVec
	queryDuration prometheus.Histogram

	// Normalization metrics
	rowsNormalized prometheus.Counter
	rowsMalformed  prometheus.Counter

	// Assembly metrics
	playersCollected prometheus.Gauge
	playersByRegion  *prometheus.GaugeVec
	duplicatesTotal  prometheus.Counter
}

// Global metrics manager instance on a custom registry, keeping default Go
// runtime metrics out of the textfile dump.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "idfplayers",
		buckets:   prometheus.DefBuckets,
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}

	factory := promauto.With(m.registry)

	m.queriesTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "queries_total",
		Help:      "SPARQL queries issued, by département.",
	}, []string{"department"})

	m.queryRetries = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "query_retries_total",
		Help:      "Transient-failure retries of SPARQL queries.",
	})

	m.queryFailures = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "query_failures_total",
		Help:      "SPARQL queries that failed after all retries, by département.",
	}, []string{"department"})

	m.queryDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "query_duration_seconds",
		Help:      "Wall time of SPARQL queries including retries.",
		Buckets:   m.buckets,
	})

	m.rowsNormalized = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "rows_normalized_total",
		Help:      "Result rows successfully normalized into player records.",
	})

	m.rowsMalformed = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "rows_malformed_total",
		Help:      "Result rows dropped for missing required bindings.",
	})

	m.playersCollected = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "players_collected",
		Help:      "Deduplicated players in the assembled collection.",
	})

	m.playersByRegion = factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "players_by_diaspora_region",
		Help:      "Classified players per diaspora region.",
	}, []string{"region"})

	m.duplicatesTotal = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "merge_duplicates_total",
		Help:      "Records skipped by the first-seen-wins merge rule.",
	})

	return m
}

// WriteTextfile dumps the registry in text exposition format.
func (m *Manager) WriteTextfile(path string) error {
	mfs, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTextfileWrite, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTextfileWrite, err)
	}
	defer f.Close()

	enc := expfmt.NewEncoder(f, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("%w: %v", ErrTextfileWrite, err)
		}
	}
	return nil
}

// Package-level helpers on the global manager.

func IncQuery(department string)        { globalManager.queriesTotal.WithLabelValues(department).Inc() }
func IncQueryRetry()                    { globalManager.queryRetries.Inc() }
func IncQueryFailure(department string) { globalManager.queryFailures.WithLabelValues(department).Inc() }
func ObserveQueryDuration(sec float64)  { globalManager.queryDuration.Observe(sec) }
func AddRowsNormalized(n int)           { globalManager.rowsNormalized.Add(float64(n)) }
func IncRowMalformed()                  { globalManager.rowsMalformed.Inc() }
func SetPlayersCollected(n int)         { globalManager.playersCollected.Set(float64(n)) }
func IncDuplicate()                     { globalManager.duplicatesTotal.Inc() }

func SetPlayersByRegion(region string, n int) {
	globalManager.playersByRegion.WithLabelValues(region).Set(float64(n))
}

// WriteTextfile dumps the global registry to path.
func WriteTextfile(path string) error { return globalManager.WriteTextfile(path) }
