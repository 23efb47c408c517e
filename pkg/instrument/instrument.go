// Package instrument collects Prometheus metrics for a selection run.
//
// A batch run has no scrape endpoint, so the collected values are written in
// the text exposition format to a file (for node_exporter's textfile
// collector) when the run ends. All methods are safe on a nil *Metrics.
package instrument

import (
	"time"

	"github.com/YuminosukeSato/fastmrmr/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "fastmrmr"

// Metrics holds the collectors of one run.
type Metrics struct {
	registry *prometheus.Registry

	jointTables  prometheus.Counter
	miQueries    prometheus.Counter
	cacheHits    prometheus.Counter
	selected     prometheus.Counter
	stepDuration prometheus.Histogram
	datasetBytes prometheus.Gauge
}

// New creates the collectors and registers them on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		jointTables: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "joint_tables_built_total",
			Help:      "Number of joint probability tables built from the raw dataset.",
		}),
		miQueries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutual_information_queries_total",
			Help:      "Number of mutual information queries issued.",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutual_information_cache_hits_total",
			Help:      "Number of mutual information queries answered by the pair cache.",
		}),
		selected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selected_features_total",
			Help:      "Number of features selected.",
		}),
		stepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "selection_step_duration_seconds",
			Help:      "Duration of one greedy selection step.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		datasetBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_bytes",
			Help:      "Size of the loaded sample matrix in bytes.",
		}),
	}
	m.registry.MustRegister(m.jointTables, m.miQueries, m.cacheHits, m.selected, m.stepDuration, m.datasetBytes)
	return m
}

// Registry exposes the registry, e.g. for an HTTP handler in a long-lived host.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// JointTableBuilt counts one joint table construction.
func (m *Metrics) JointTableBuilt() {
	if m != nil {
		m.jointTables.Inc()
	}
}

// MutualInformationQueried counts one mutual information query.
func (m *Metrics) MutualInformationQueried() {
	if m != nil {
		m.miQueries.Inc()
	}
}

// CacheHit counts one pair-cache hit.
func (m *Metrics) CacheHit() {
	if m != nil {
		m.cacheHits.Inc()
	}
}

// FeatureSelected records a finished selection step.
func (m *Metrics) FeatureSelected(d time.Duration) {
	if m != nil {
		m.selected.Inc()
		m.stepDuration.Observe(d.Seconds())
	}
}

// DatasetLoaded records the size of the sample matrix.
func (m *Metrics) DatasetLoaded(bytes int) {
	if m != nil {
		m.datasetBytes.Set(float64(bytes))
	}
}

// WriteFile writes all metrics to path in the Prometheus text format.
func (m *Metrics) WriteFile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return errors.Wrapf(err, "write metrics to %s", path)
	}
	return nil
}
