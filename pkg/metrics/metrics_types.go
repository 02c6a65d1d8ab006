package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for a seed run
type Registry struct {
	// Dataset Metrics
	RowsTotal      prometheus.Counter
	RowErrorsTotal *prometheus.CounterVec

	// Output Metrics
	UsersTotal         prometheus.Gauge
	RelationshipsTotal prometheus.Gauge
	OutDegree          prometheus.Histogram
	ArtifactBytes      *prometheus.GaugeVec

	// Pipeline Metrics
	StageDuration   *prometheus.HistogramVec
	StageRunsTotal  *prometheus.CounterVec
	LastRunSuccess  prometheus.Gauge
	LastRunUnixTime prometheus.Gauge

	registry *prometheus.Registry
}

// NewRegistry creates a registry with every metric initialized. Each run owns
// its own registry; there is no process-wide default.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initDatasetMetrics()
	r.initOutputMetrics()
	r.initPipelineMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
