package router

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/civilian-dev/civilian/pkg/pathparam"
	"github.com/civilian-dev/civilian/pkg/routepath"
)

// noParent marks the root node.
const noParent = -1

// node is an entry in the tree's arena. Exactly one of segment and param is
// set, except for the root which has neither.
type node struct {
	parent   int
	segment  string
	param    pathparam.PathParam
	handler  string
	children []int

	// Filled in by Builder.Build.
	literals   map[string]int
	firstParam int
	path       string
	depth      int
	size       int
	route      *routeTemplate
}

func (n *node) isParam() bool {
	return n.param != nil
}

// Tree is an immutable resource tree. Nodes live in one slice and refer to
// each other by index.
type Tree struct {
	nodes     []node
	appPath   string
	scanOpts  []routepath.ScanOption
	byHandler map[string]int
	params    *pathparam.Map
}

// Root returns the root resource.
func (t *Tree) Root() Resource {
	return Resource{tree: t, index: 0}
}

// Len returns the number of resources in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// AppPath returns the base path prepended to every built route.
func (t *Tree) AppPath() string {
	return t.appPath
}

// PathParams returns the parameter map the tree was built with.
func (t *Tree) PathParams() *pathparam.Map {
	return t.params
}

// ByHandler returns the resource mapped to handler id. When several
// resources share an id, the first declared one is returned.
func (t *Tree) ByHandler(id string) (Resource, bool) {
	i, ok := t.byHandler[id]
	if !ok {
		return Resource{}, false
	}
	return Resource{tree: t, index: i}, true
}

// Handlers returns the number of distinct handler ids in the tree.
func (t *Tree) Handlers() int {
	return len(t.byHandler)
}

// Lookup returns the resource whose path pattern equals pattern, e.g.
// "/customers/{customerId}/details". A trailing slash is ignored.
func (t *Tree) Lookup(pattern string) (Resource, bool) {
	if pattern != "/" {
		pattern = strings.TrimSuffix(pattern, "/")
	}
	if !strings.HasPrefix(pattern, "/") {
		pattern = "/" + pattern
	}
	var found Resource
	_ = t.Walk(func(r Resource) error {
		if r.Path() == pattern {
			found = r
			return errStopWalk
		}
		return nil
	})
	return found, !found.IsZero()
}

var errStopWalk = errors.New("stop walk")

// Walk calls fn for every resource in depth-first pre-order, children in
// matching order. An error returned by fn stops the walk and is returned.
func (t *Tree) Walk(fn func(r Resource) error) error {
	err := t.walk(0, fn)
	if err == errStopWalk {
		return nil
	}
	return err
}

func (t *Tree) walk(i int, fn func(Resource) error) error {
	if err := fn(Resource{tree: t, index: i}); err != nil {
		return err
	}
	for _, c := range t.nodes[i].children {
		if err := t.walk(c, fn); err != nil {
			return err
		}
	}
	return nil
}

// Print writes an indented outline of the tree to w, one resource per line:
//
//	/
//	  customers -> customers.list
//	    {customerId : int}
//	      details -> customers.details
func (t *Tree) Print(w io.Writer) error {
	return t.Walk(func(r Resource) error {
		n := &t.nodes[r.index]
		var label string
		switch {
		case r.IsRoot():
			label = "/"
		case n.isParam():
			label = strings.TrimPrefix(pathparam.Detailed(n.param), "/")
		default:
			label = n.segment
		}
		line := strings.Repeat("  ", n.depth) + label
		if n.handler != "" {
			line += " -> " + n.handler
		}
		_, err := fmt.Fprintln(w, line)
		return err
	})
}

// Resource is a handle to a node of a Tree. The zero Resource refers to no
// node; its accessors report an empty, parentless, childless resource.
// Resources are comparable: two handles are equal when they refer to the
// same node of the same tree.
type Resource struct {
	tree  *Tree
	index int
}

func (r Resource) node() *node {
	if r.tree == nil {
		return &node{parent: noParent}
	}
	return &r.tree.nodes[r.index]
}

// IsZero reports whether r refers to no node.
func (r Resource) IsZero() bool {
	return r.tree == nil
}

// Tree returns the tree r belongs to.
func (r Resource) Tree() *Tree {
	return r.tree
}

// IsRoot reports whether r is the root resource.
func (r Resource) IsRoot() bool {
	return r.tree != nil && r.node().parent == noParent
}

// Parent returns the parent resource. The root has none.
func (r Resource) Parent() (Resource, bool) {
	p := r.node().parent
	if p == noParent {
		return Resource{}, false
	}
	return Resource{tree: r.tree, index: p}, true
}

// Root returns the root of r's tree, or the zero Resource.
func (r Resource) Root() Resource {
	if r.tree == nil {
		return Resource{}
	}
	return r.tree.Root()
}

// Segment returns the literal segment that extends the parent.
func (r Resource) Segment() (string, bool) {
	n := r.node()
	if n.parent == noParent || n.isParam() {
		return "", false
	}
	return n.segment, true
}

// PathParam returns the path parameter that extends the parent, or nil.
func (r Resource) PathParam() pathparam.PathParam {
	return r.node().param
}

// HandlerID returns the handler id mapped to r, or "".
func (r Resource) HandlerID() string {
	return r.node().handler
}

// HasHandler reports whether a handler is mapped to r.
func (r Resource) HasHandler() bool {
	return r.node().handler != ""
}

// Path returns the path pattern of r, e.g. "/customers/{customerId}". The
// root's path is "/".
func (r Resource) Path() string {
	return r.node().path
}

// Depth returns the number of ancestors of r.
func (r Resource) Depth() int {
	return r.node().depth
}

// ChildCount returns the number of children.
func (r Resource) ChildCount() int {
	return len(r.node().children)
}

// Child returns the i-th child in matching order.
func (r Resource) Child(i int) Resource {
	return Resource{tree: r.tree, index: r.node().children[i]}
}

// Children returns the children in matching order: literal segments sorted
// lexicographically, then path parameters in declaration order.
func (r Resource) Children() []Resource {
	children := r.node().children
	out := make([]Resource, len(children))
	for i, c := range children {
		out[i] = Resource{tree: r.tree, index: c}
	}
	return out
}

// Size returns the number of resources in the subtree rooted at r,
// including r.
func (r Resource) Size() int {
	return r.node().size
}

// Route returns a new Route for r with no path parameter values set, or nil
// for the zero Resource.
func (r Resource) Route() *Route {
	if r.tree == nil {
		return nil
	}
	return newRoute(r.tree.appPath, r.node().route)
}

func (r Resource) String() string {
	if r.IsZero() {
		return "<none>"
	}
	return r.Path()
}
