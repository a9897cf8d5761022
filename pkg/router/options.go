package router

import (
	"log/slog"
	"strings"

	"github.com/civilian-dev/civilian/pkg/routepath"
)

// Option configures a Builder or a Router.
type Option func(*options)

type options struct {
	appPath    string
	logger     *slog.Logger
	scanOpts   []routepath.ScanOption
	middleware []Middleware
}

func defaultOptions() options {
	return options{
		appPath: "/",
		logger:  slog.Default(),
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithAppPath sets the base path prepended to built routes, e.g. "/shop".
// Used by NewBuilder.
func WithAppPath(path string) Option {
	return func(o *options) {
		o.appPath = normalizeAppPath(path)
	}
}

// WithLogger sets the logger. Used by NewBuilder and New.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithScanOptions sets the options used to split matched paths, such as
// routepath.IgnoreExtension. Used by NewBuilder.
func WithScanOptions(opts ...routepath.ScanOption) Option {
	return func(o *options) {
		o.scanOpts = append(o.scanOpts, opts...)
	}
}

// WithMiddleware adds matcher middleware. Used by New.
func WithMiddleware(mw ...Middleware) Option {
	return func(o *options) {
		o.middleware = append(o.middleware, mw...)
	}
}

func normalizeAppPath(path string) string {
	path = strings.Trim(path, "/")
	if path == "" {
		return "/"
	}
	return "/" + path
}
