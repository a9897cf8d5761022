package router

import (
	"context"
	"log/slog"

	"github.com/civilian-dev/civilian/internal/errors"
	"github.com/civilian-dev/civilian/pkg/pathparam"
	"github.com/civilian-dev/civilian/pkg/routepath"
)

// MatchResult is the outcome of Router.Match.
type MatchResult struct {
	Match

	// Path is the canonical path that was matched.
	Path string

	// Query is the query string of the request path, without "?".
	Query string
}

// HandlerID returns the handler of a complete match, or "".
func (m *MatchResult) HandlerID() string {
	if !m.Complete {
		return ""
	}
	return m.Resource.HandlerID()
}

// Router matches request paths against a resource tree and builds URLs for
// handler ids.
type Router struct {
	tree       *Tree
	logger     *slog.Logger
	middleware []Middleware
}

// New creates a router for tree.
func New(tree *Tree, opts ...Option) *Router {
	o := applyOptions(opts)
	return &Router{
		tree:       tree,
		logger:     o.logger,
		middleware: o.middleware,
	}
}

// Tree returns the router's resource tree.
func (r *Router) Tree() *Tree {
	return r.tree
}

// Use appends middleware to the chain. It must not be called concurrently
// with Match.
func (r *Router) Use(mw ...Middleware) {
	r.middleware = append(r.middleware, mw...)
}

// Match canonicalizes rawPath and matches it through the middleware chain.
// A path that cannot be canonicalized is an E140 error; a path without a
// complete match is not an error but a result with Complete == false.
func (r *Router) Match(ctx context.Context, rawPath string) (*MatchResult, error) {
	canonical, err := routepath.CanonicalizePath(rawPath)
	if err != nil {
		return nil, errors.New("E140").WithDetailf("%q", rawPath).Wrap(err)
	}

	final := func(ctx context.Context, path string) (*MatchResult, error) {
		m := r.tree.Match(path)
		if !m.Complete {
			r.logger.Debug("no complete match",
				"path", path,
				"stopped", m.Resource.Path(),
				"consumed", m.Consumed)
		}
		return &MatchResult{Match: m, Path: path, Query: canonical.Query}, nil
	}

	return ComposeMiddleware(r.middleware, final)(ctx, canonical.Path)
}

// URL builds the path of the resource mapped to handlerID from values keyed
// by path parameter name. Optional parameters missing from values are built
// as absent.
func (r *Router) URL(handlerID string, values map[string]any) (string, error) {
	res, ok := r.tree.ByHandler(handlerID)
	if !ok {
		return "", errors.New("E133").WithDetailf("%q", handlerID)
	}
	route := res.Route()
	for name, v := range values {
		if err := route.Set(name, v); err != nil {
			return "", err
		}
	}
	for i := 0; i < route.PathParamCount(); i++ {
		if route.Value(i) == nil && route.PathParam(i).Kind() == pathparam.KindOptional {
			if err := route.SetPathParam(route.PathParam(i), pathparam.None()); err != nil {
				return "", err
			}
		}
	}
	return route.Build()
}
