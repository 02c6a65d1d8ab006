package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initDatasetMetrics() {
	r.RowsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "seed_rows_total",
			Help: "Dataset rows read from the source table",
		},
	)

	r.RowErrorsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "seed_row_errors_total",
			Help: "Rows rejected while mapping, by offending column",
		},
		[]string{"column"},
	)
}
