// Package middleware provides observability middleware for the path router.
//
// This package includes:
//   - OpenTelemetry tracing of matches
//   - Prometheus metrics for match outcomes, durations and errors
//
// # OpenTelemetry Middleware
//
// The OpenTelemetry middleware starts a span for every match and records the
// resource the match stopped at.
//
//	r := router.New(tree, router.WithMiddleware(
//	    middleware.OpenTelemetry(),
//	))
//
// Configure with options:
//
//	middleware.OpenTelemetry(
//	    middleware.WithTracerName("shop"),
//	    middleware.WithIncludeParams(true),
//	    middleware.WithPathFilter(func(path string) bool {
//	        return path != "/healthz"
//	    }),
//	)
//
// # Prometheus Metrics
//
// The Prometheus middleware counts matches by outcome ("complete",
// "partial", "none" or "error"), observes their duration and counts errors
// by error code.
//
//	r.Use(middleware.Prometheus(middleware.WithRegistry(reg)))
//
// Metrics are registered once per process; later calls to Prometheus share
// the first instance.
package middleware
