package pipes

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vitalvas/strada/dispatch"
)

// metricsStartKey stores the dispatch start time between the two halves
// of the pipe set.
const metricsStartKey = "pipes.metrics_start"

// MetricsConfig configures the Metrics pipe set.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "strada").
	Namespace string

	// Subsystem is the metrics subsystem (default: "dispatch").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for dispatch duration.
	// Default: prometheus.DefBuckets.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// Metrics returns a pipe set recording per-dispatch Prometheus metrics:
// a requests_total counter labeled by action, method and status, and a
// request_duration_seconds histogram labeled by action and method.
//
// Metric collectors are registered once when the set is created; reuse
// the returned set across actions instead of creating one per action.
func Metrics(cfg MetricsConfig) dispatch.PipeSet {
	namespace := cfg.Namespace
	if namespace == "" {
		namespace = "strada"
	}
	subsystem := cfg.Subsystem
	if subsystem == "" {
		subsystem = "dispatch"
	}
	buckets := cfg.Buckets
	if buckets == nil {
		buckets = prometheus.DefBuckets
	}
	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	requests := promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Namespace:   namespace,
		Subsystem:   subsystem,
		Name:        "requests_total",
		Help:        "Dispatched requests by action, method and status.",
		ConstLabels: cfg.ConstLabels,
	}, []string{"action", "method", "status"})

	duration := promauto.With(registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   namespace,
		Subsystem:   subsystem,
		Name:        "request_duration_seconds",
		Help:        "Dispatch duration by action and method.",
		ConstLabels: cfg.ConstLabels,
		Buckets:     buckets,
	}, []string{"action", "method"})

	return dispatch.PipeSet{
		Name: "metrics",
		Before: []dispatch.Pipe{
			func(c *dispatch.Ctx) dispatch.Result {
				c.Set(metricsStartKey, time.Now())
				return dispatch.Continue()
			},
		},
		After: []dispatch.Pipe{
			func(c *dispatch.Ctx) dispatch.Result {
				status := 0
				if resp, ok := c.Response(); ok {
					status = resp.Status
				}

				requests.WithLabelValues(
					c.ActionID(),
					c.Request().Method,
					strconv.Itoa(status),
				).Inc()

				if v, ok := c.Get(metricsStartKey); ok {
					if start, ok := v.(time.Time); ok {
						duration.WithLabelValues(c.ActionID(), c.Request().Method).
							Observe(time.Since(start).Seconds())
					}
				}

				return dispatch.Continue()
			},
		},
	}
}
