package middleware

import (
	"io"
	"log/slog"
	"testing"

	"github.com/civilian-dev/civilian/pkg/pathparam"
	"github.com/civilian-dev/civilian/pkg/router"
)

func newTestRouter(t *testing.T, mw ...router.Middleware) *router.Router {
	t.Helper()
	id := pathparam.Must(pathparam.Converting(pathparam.Segment("customerId"), "", pathparam.Int))
	params, err := pathparam.NewMap(id)
	if err != nil {
		t.Fatal(err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	b := router.NewBuilder(params, router.WithLogger(logger))
	for path, handler := range map[string]string{
		"/customers":                      "customers",
		"/customers/{customerId}/details": "details",
	} {
		if err := b.AddPath(path, handler); err != nil {
			t.Fatal(err)
		}
	}
	tree, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	return router.New(tree, router.WithLogger(logger), router.WithMiddleware(mw...))
}
