package middleware

import (
	"context"
	"fmt"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/civilian-dev/civilian/pkg/pathparam"
	"github.com/civilian-dev/civilian/pkg/router"
)

// Default tracer name.
const defaultTracerName = "civilian"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "civilian").
	TracerName string

	// TracerProvider supplies the tracer. Defaults to the global provider.
	TracerProvider trace.TracerProvider

	// IncludeParams records the matched parameter values on the span.
	// May contain sensitive information - disabled by default.
	IncludeParams bool

	// Filter determines which paths to trace.
	// Return true to trace the path, false to skip.
	// If nil, all paths are traced.
	Filter func(path string) bool

	// AttributeExtractor adds custom attributes from the match result.
	AttributeExtractor func(res *router.MatchResult) []attribute.KeyValue
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

// WithIncludeParams enables recording parameter values.
func WithIncludeParams(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludeParams = include
	}
}

// WithPathFilter sets a filter function for paths.
func WithPathFilter(filter func(path string) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(res *router.MatchResult) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName: defaultTracerName,
	}
}

// OpenTelemetry creates middleware that traces every match.
//
// The span carries the canonical path, the resource the match stopped at,
// whether it was complete and the number of parameter values. Errors are
// recorded and set the span status. The span context is passed to the rest
// of the chain.
//
// Example:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	r := router.New(tree, router.WithMiddleware(
//	    middleware.OpenTelemetry(middleware.WithTracerProvider(tp)),
//	))
func OpenTelemetry(opts ...OTelOption) router.Middleware {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}

	provider := config.TracerProvider
	if provider == nil {
		provider = otel.GetTracerProvider()
	}
	tracer := provider.Tracer(config.TracerName)

	return router.MiddlewareFunc(func(ctx context.Context, path string, next router.MatchFunc) (*router.MatchResult, error) {
		if config.Filter != nil && !config.Filter(path) {
			return next(ctx, path)
		}

		spanCtx, span := tracer.Start(ctx, "civilian.match",
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(attribute.String("civilian.path", path)),
		)
		defer span.End()

		res, err := next(spanCtx, path)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return res, err
		}

		span.SetAttributes(
			attribute.String("civilian.resource", res.Resource.Path()),
			attribute.Bool("civilian.complete", res.Complete),
			attribute.Int("civilian.params", res.Values.Len()),
			attribute.String("civilian.outcome", Outcome(res, nil)),
		)
		if id := res.HandlerID(); id != "" {
			span.SetAttributes(attribute.String("civilian.handler", id))
		}
		if config.IncludeParams {
			res.Values.Each(func(p pathparam.PathParam, v any) {
				span.SetAttributes(attribute.String("civilian.param."+p.Name(), formatValue(v)))
			})
		}
		if config.AttributeExtractor != nil {
			span.SetAttributes(config.AttributeExtractor(res)...)
		}
		span.SetStatus(codes.Ok, "")
		return res, nil
	})
}

// SpanFromContext returns the span started by OpenTelemetry, or nil when
// ctx carries no valid span.
func SpanFromContext(ctx context.Context) trace.Span {
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return nil
	}
	return span
}

func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	default:
		return fmt.Sprint(v)
	}
}
