package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds only webrecon collectors, so a written metrics file does
// not carry Go runtime series.
var Registry = prometheus.NewRegistry()

var (
	collectorRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webrecon_collector_runs_total",
			Help: "Total number of collector runs by outcome",
		},
		[]string{"collector", "state"},
	)

	collectorDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "webrecon_collector_duration_seconds",
			Help:    "Duration of collector runs in seconds",
			Buckets: prometheus.ExponentialBuckets(0.05, 4, 8),
		},
		[]string{"collector"},
	)

	targetsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webrecon_targets_total",
			Help: "Total number of targets processed",
		},
		[]string{"valid"},
	)
)

func init() {
	Registry.MustRegister(collectorRunsTotal, collectorDuration, targetsTotal)
}

// ObserveCollector records one collector outcome.
func ObserveCollector(collector, state string, d time.Duration) {
	collectorRunsTotal.WithLabelValues(collector, state).Inc()
	if d > 0 {
		collectorDuration.WithLabelValues(collector).Observe(d.Seconds())
	}
}

func ObserveTarget(valid bool) {
	label := "false"
	if valid {
		label = "true"
	}
	targetsTotal.WithLabelValues(label).Inc()
}

// WriteTextfile writes the registry in Prometheus text format, suitable for
// the node_exporter textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Registry)
}
