package middleware

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/civilian-dev/civilian/internal/errors"
	"github.com/civilian-dev/civilian/pkg/router"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "civilian").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for match duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "civilian",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Match outcomes used as the "outcome" label.
const (
	OutcomeComplete = "complete"
	OutcomePartial  = "partial"
	OutcomeNone     = "none"
	OutcomeError    = "error"
)

type metrics struct {
	matchesTotal  *prometheus.CounterVec
	matchDuration *prometheus.HistogramVec
	matchErrors   *prometheus.CounterVec
}

// globalMetrics is created on the first call to Prometheus.
var (
	globalMetrics   *metrics
	globalMetricsMu sync.Mutex
)

func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		matchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "matches_total",
			Help:        "Total number of path matches by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"outcome"}),

		matchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "match_duration_seconds",
			Help:        "Path match duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"outcome"}),

		matchErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "match_errors_total",
			Help:        "Total number of path match errors by error code",
			ConstLabels: config.ConstLabels,
		}, []string{"code"}),
	}
}

// Prometheus creates middleware that records match outcomes and durations.
//
// Metrics collected:
//   - civilian_matches_total: Counter of matches by outcome
//   - civilian_match_duration_seconds: Histogram of match duration by outcome
//   - civilian_match_errors_total: Counter of match errors by error code
//
// Labels never carry the request path, so cardinality is bounded by the
// number of outcomes and error codes.
//
// Example:
//
//	r := router.New(tree, router.WithMiddleware(
//	    middleware.Prometheus(middleware.WithNamespace("shop")),
//	))
//	http.Handle("/metrics", promhttp.Handler())
func Prometheus(opts ...MetricsOption) router.Middleware {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	globalMetricsMu.Lock()
	if globalMetrics == nil {
		globalMetrics = initMetrics(config)
	}
	m := globalMetrics
	globalMetricsMu.Unlock()

	return router.MiddlewareFunc(func(ctx context.Context, path string, next router.MatchFunc) (*router.MatchResult, error) {
		start := time.Now()
		res, err := next(ctx, path)
		outcome := Outcome(res, err)

		m.matchDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
		m.matchesTotal.WithLabelValues(outcome).Inc()
		if err != nil {
			m.matchErrors.WithLabelValues(errorCode(err)).Inc()
		}
		return res, err
	})
}

// Outcome classifies a match result for metrics and tracing.
func Outcome(res *router.MatchResult, err error) string {
	switch {
	case err != nil || res == nil:
		return OutcomeError
	case res.Complete:
		return OutcomeComplete
	case res.Resource.IsRoot():
		return OutcomeNone
	default:
		return OutcomePartial
	}
}

// errorCode returns the code of a coded error, or "unknown".
func errorCode(err error) string {
	var e *errors.Error
	if stderrors.As(err, &e) && e.Code != "" {
		return e.Code
	}
	return "unknown"
}
