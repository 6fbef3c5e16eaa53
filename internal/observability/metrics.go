package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the viewer.
type Metrics struct {
	FetchSuccesses prometheus.Counter
	FetchFailures  prometheus.Counter
	FetchDuration  prometheus.Histogram
	PollerRunning  prometheus.Gauge

	// DescriptorAge tracks seconds since the held descriptor was fetched;
	// -1 until the first successful fetch.
	DescriptorAge prometheus.Gauge

	// SSE streaming metrics.
	StreamClients  prometheus.Gauge
	StreamMessages prometheus.Counter
}

// NewMetrics creates and registers all viewer metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		FetchSuccesses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "radar_viewer",
			Name:      "metadata_fetch_successes_total",
			Help:      "Total metadata fetches that replaced the held descriptor.",
		}),
		FetchFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "radar_viewer",
			Name:      "metadata_fetch_failures_total",
			Help:      "Total metadata fetch attempts that failed and were swallowed.",
		}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "radar_viewer",
			Name:      "metadata_fetch_duration_seconds",
			Help:      "Duration of successful metadata fetches.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		PollerRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "radar_viewer",
			Name:      "poller_running",
			Help:      "1 when the metadata poller is active, 0 when shut down.",
		}),
		DescriptorAge: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "radar_viewer",
			Name:      "descriptor_age_seconds",
			Help:      "Seconds since the held descriptor was fetched, -1 before the first success.",
		}),
		StreamClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "radar_viewer",
			Name:      "stream_clients",
			Help:      "Currently connected SSE clients.",
		}),
		StreamMessages: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "radar_viewer",
			Name:      "stream_messages_total",
			Help:      "Total view updates written to SSE clients.",
		}),
	}

	prometheus.MustRegister(
		m.FetchSuccesses,
		m.FetchFailures,
		m.FetchDuration,
		m.PollerRunning,
		m.DescriptorAge,
		m.StreamClients,
		m.StreamMessages,
	)

	return m
}

// NewMetricsForTesting creates Metrics with unregistered collectors to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		FetchSuccesses: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "radar_viewer", Name: "metadata_fetch_successes_total"}),
		FetchFailures:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "radar_viewer", Name: "metadata_fetch_failures_total"}),
		FetchDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "radar_viewer", Name: "metadata_fetch_duration_seconds"}),
		PollerRunning:  prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "radar_viewer", Name: "poller_running"}),
		DescriptorAge:  prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "radar_viewer", Name: "descriptor_age_seconds"}),
		StreamClients:  prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "radar_viewer", Name: "stream_clients"}),
		StreamMessages: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "radar_viewer", Name: "stream_messages_total"}),
	}
}
