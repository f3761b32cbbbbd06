// Package metrics holds the Prometheus collectors for shift operations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ShiftsStarted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "fuelstation",
	Subsystem: "shift",
	Name:      "started_total",
	Help:      "Shifts started, by origin (direct, successor, import).",
}, []string{"origin"})

var ShiftsEnded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "fuelstation",
	Subsystem: "shift",
	Name:      "ended_total",
	Help:      "Shifts ended, by end mode.",
}, []string{"mode"})

var CompletedShiftEdits = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "fuelstation",
	Subsystem: "shift",
	Name:      "completed_edits_total",
	Help:      "Edits applied to already completed shifts.",
})

var OperationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "fuelstation",
	Subsystem: "shift",
	Name:      "operation_failures_total",
	Help:      "Shift operations that failed, by operation and error kind.",
}, []string{"operation", "kind"})

var ReadingFieldsOmitted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "fuelstation",
	Subsystem: "reading",
	Name:      "fields_omitted_total",
	Help:      "Optional reading fields left out of a write because the stored record lacks the column.",
}, []string{"field"})

var IndentAggregationFailures = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "fuelstation",
	Subsystem: "indent",
	Name:      "aggregation_failures_total",
	Help:      "Indent sales lookups that failed and fell back to zero.",
})

var StoreLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "fuelstation",
	Subsystem: "store",
	Name:      "operation_seconds",
	Help:      "Latency of persistence calls made by the shift engine.",
	Buckets:   prometheus.DefBuckets,
}, []string{"operation"})

var OpenDialogs = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "fuelstation",
	Subsystem: "dialog",
	Name:      "open",
	Help:      "End-shift dialog sessions currently open.",
})
