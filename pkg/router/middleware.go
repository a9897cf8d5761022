package router

import "context"

// MatchFunc matches a canonical path.
type MatchFunc func(ctx context.Context, path string) (*MatchResult, error)

// Middleware wraps path matching, e.g. to record metrics or traces.
// Handle must call next to continue the chain.
type Middleware interface {
	Handle(ctx context.Context, path string, next MatchFunc) (*MatchResult, error)
}

// MiddlewareFunc adapts a function to the Middleware interface.
type MiddlewareFunc func(ctx context.Context, path string, next MatchFunc) (*MatchResult, error)

// Handle implements Middleware.
func (f MiddlewareFunc) Handle(ctx context.Context, path string, next MatchFunc) (*MatchResult, error) {
	return f(ctx, path, next)
}

// ComposeMiddleware builds a MatchFunc that runs mw in order, first to last,
// and ends with final.
func ComposeMiddleware(mw []Middleware, final MatchFunc) MatchFunc {
	chain := final
	for i := len(mw) - 1; i >= 0; i-- {
		m, next := mw[i], chain
		chain = func(ctx context.Context, path string) (*MatchResult, error) {
			return m.Handle(ctx, path, next)
		}
	}
	return chain
}

// Chain combines several middleware into one.
func Chain(middleware ...Middleware) Middleware {
	return MiddlewareFunc(func(ctx context.Context, path string, next MatchFunc) (*MatchResult, error) {
		return ComposeMiddleware(middleware, next)(ctx, path)
	})
}

// Skip bypasses mw for paths where condition is true.
func Skip(condition func(path string) bool, mw Middleware) Middleware {
	return MiddlewareFunc(func(ctx context.Context, path string, next MatchFunc) (*MatchResult, error) {
		if condition(path) {
			return next(ctx, path)
		}
		return mw.Handle(ctx, path, next)
	})
}
