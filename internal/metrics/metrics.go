package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	saveTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tably",
			Name:      "save_total",
			Help:      "Count of save attempts by outcome.",
		},
		[]string{"outcome"},
	)

	resourceFailure = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tably",
			Name:      "save_resource_failure_total",
			Help:      "Count of failed commit calls by resource.",
		},
		[]string{"resource"},
	)

	dayConflict = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "tably",
			Name:      "schedule_day_conflict_total",
			Help:      "Count of rejected schedule day toggles due to a day held by another block.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(saveTotal, resourceFailure, dayConflict)
	})
}

func IncSave(outcome string) {
	saveTotal.WithLabelValues(outcome).Inc()
}

func IncResourceFailure(resource string) {
	resourceFailure.WithLabelValues(resource).Inc()
}

func IncDayConflict() {
	dayConflict.Inc()
}
