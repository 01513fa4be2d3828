package reconcile

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

var metrics = []prometheus.Collector{
	runsTotal,
	transfersTotal,
	transferredTotal,
	failuresTotal,
}

var runsTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "reconciliation_runs_total",
		Help: "How many monthly reset runs completed successfully.",
	},
)

var transfersTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "reconciliation_transfers_total",
		Help: "How many budget to goal transfers were booked.",
	},
)

var transferredTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "reconciliation_transferred_amount_total",
		Help: "The total amount transferred into savings goals.",
	},
)

var failuresTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "reconciliation_failures_total",
		Help: "How many monthly reset runs were rolled back with an error.",
	},
)

// RegisterPrometheusMetrics registers the reconciliation metrics
// with the default registry.
func RegisterPrometheusMetrics() error {
	for _, c := range metrics {
		if err := prometheus.Register(c); err != nil {
			return fmt.Errorf("could not register %s with Prometheus", c)
		}
	}

	return nil
}

// UnregisterPrometheusMetrics unregisters the reconciliation metrics.
//
// This is needed to cleanly exit.
func UnregisterPrometheusMetrics() bool {
	for _, c := range metrics {
		if ok := prometheus.Unregister(c); !ok {
			return false
		}
	}

	return true
}
