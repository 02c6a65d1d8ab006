package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initOutputMetrics() {
	r.UsersTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "seed_users_total",
			Help: "User records written by the last run",
		},
	)

	r.RelationshipsTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "seed_relationships_total",
			Help: "Follow relationships written by the last run",
		},
	)

	r.OutDegree = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "seed_out_degree",
			Help:    "Number of users each synthesized user follows",
			Buckets: prometheus.LinearBuckets(0, 1, 11),
		},
	)

	r.ArtifactBytes = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "seed_artifact_bytes",
			Help: "Uncompressed size of each written artifact",
		},
		[]string{"artifact"},
	)
}
