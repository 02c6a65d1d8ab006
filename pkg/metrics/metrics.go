package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Stage outcome labels
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusSkipped = "skipped"
)

// RecordStage records one pipeline stage execution
func (r *Registry) RecordStage(stage, status string, duration time.Duration) {
	r.StageRunsTotal.WithLabelValues(stage, status).Inc()
	r.StageDuration.WithLabelValues(stage, status).Observe(duration.Seconds())
}

// RecordRowError counts a rejected row against the column that caused it
func (r *Registry) RecordRowError(column string) {
	if column == "" {
		column = "unknown"
	}
	r.RowErrorsTotal.WithLabelValues(column).Inc()
}

// RecordOutDegrees observes the out-degree of every user, including zeros
func (r *Registry) RecordOutDegrees(degrees []int) {
	for _, d := range degrees {
		r.OutDegree.Observe(float64(d))
	}
}

// RecordArtifact records the uncompressed size of a written artifact
func (r *Registry) RecordArtifact(name string, bytes int64) {
	r.ArtifactBytes.WithLabelValues(name).Set(float64(bytes))
}

// FinishRun marks the run outcome
func (r *Registry) FinishRun(success bool, at time.Time) {
	if success {
		r.LastRunSuccess.Set(1)
	} else {
		r.LastRunSuccess.Set(0)
	}
	r.LastRunUnixTime.Set(float64(at.Unix()))
}

// WriteTextfile writes every metric in the Prometheus text format for the
// node_exporter textfile collector. The file is replaced atomically.
func (r *Registry) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
