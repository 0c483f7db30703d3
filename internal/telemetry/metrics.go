package telemetry

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	buildsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "justbench_builds_total",
			Help: "Total number of example builds, by example and status",
		},
		[]string{"example", "status"},
	)

	runsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "justbench_runs_total",
			Help: "Total number of benchmark runs, by example",
		},
		[]string{"example"},
	)

	runDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "justbench_run_duration_seconds",
			Help:    "Wall-clock duration of benchmark runs in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 16),
		},
		[]string{"example"},
	)
)

func init() {
	prometheus.MustRegister(buildsTotal, runsTotal, runDuration)
}

// TrackBuildResult records the outcome of one compile invocation.
func TrackBuildResult(example string, success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	buildsTotal.WithLabelValues(example, status).Inc()
}

// TrackRun records one completed benchmark run and its duration.
func TrackRun(example string, elapsed time.Duration) {
	runsTotal.WithLabelValues(example).Inc()
	runDuration.WithLabelValues(example).Observe(elapsed.Seconds())
}

var (
	metricsMu      sync.Mutex
	metricsRunning bool
)

// StartMetricsServer starts a HTTP server exposing Prometheus metrics.
// Calling it again while a server is running is a no-op.
func StartMetricsServer(port int) error {
	metricsMu.Lock()
	if metricsRunning {
		metricsMu.Unlock()
		return nil
	}
	metricsRunning = true
	metricsMu.Unlock()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(fmt.Sprintf(":%d", port), mux)
}
