package router

import (
	stderrors "errors"
	"io"
	"log/slog"
	"testing"

	"github.com/civilian-dev/civilian/internal/errors"
	"github.com/civilian-dev/civilian/pkg/pathparam"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func hasCode(err error, code string) bool {
	return stderrors.Is(err, errors.New(code))
}

// customerFixture is the tree
//
//	/
//	  customers -> customers
//	    {customerId : int}
//	      details -> details
type customerFixture struct {
	customerID pathparam.PathParam
	params     *pathparam.Map
	tree       *Tree
}

func newCustomerFixture(t *testing.T, opts ...Option) customerFixture {
	t.Helper()
	f := customerFixture{customerID: pathparam.Must(pathparam.Converting(pathparam.Segment("customerId"), "", pathparam.Int))}

	var err error
	if f.params, err = pathparam.NewMap(f.customerID); err != nil {
		t.Fatalf("NewMap() error = %v", err)
	}
	b := NewBuilder(f.params, append([]Option{WithLogger(discardLogger())}, opts...)...)
	mustAdd(t, b.AddPath("/customers", "customers"))
	mustAdd(t, b.AddPath("/customers/{customerId}/details", "details"))
	f.tree = mustBuild(t, b)
	return f
}

func mustAdd(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("declaration failed: %v", err)
	}
}

func mustBuild(t *testing.T, b *Builder) *Tree {
	t.Helper()
	tree, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return tree
}

func newTestBuilder(params ...pathparam.PathParam) *Builder {
	m, err := pathparam.NewMap(params...)
	if err != nil {
		panic(err)
	}
	return NewBuilder(m, WithLogger(discardLogger()))
}
