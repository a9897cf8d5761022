package router

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/civilian-dev/civilian/internal/errors"
	"github.com/civilian-dev/civilian/pkg/pathparam"
)

// step is one piece of a route: a literal segment, or the path parameter
// bound to slot.
type step struct {
	literal string
	slot    int
}

// routeTemplate is the precomputed, shared part of a Route.
type routeTemplate struct {
	path   string
	steps  []step
	params []pathparam.PathParam
}

// newRouteTemplate walks from node i to the root and records the steps in
// root-to-leaf order.
func newRouteTemplate(nodes []node, i int) *routeTemplate {
	var chain []int
	for j := i; nodes[j].parent != noParent; j = nodes[j].parent {
		chain = append(chain, j)
	}

	tmpl := &routeTemplate{path: nodes[i].path, steps: make([]step, 0, len(chain))}
	for k := len(chain) - 1; k >= 0; k-- {
		n := &nodes[chain[k]]
		if n.isParam() {
			tmpl.steps = append(tmpl.steps, step{slot: len(tmpl.params)})
			tmpl.params = append(tmpl.params, n.param)
		} else {
			tmpl.steps = append(tmpl.steps, step{literal: n.segment, slot: -1})
		}
	}
	return tmpl
}

// Route renders the path of a resource from path parameter values.
// A Route is not safe for concurrent use; Resource.Route returns a fresh one
// on every call.
type Route struct {
	appPath string
	tmpl    *routeTemplate
	values  []any
}

func newRoute(appPath string, tmpl *routeTemplate) *Route {
	return &Route{
		appPath: appPath,
		tmpl:    tmpl,
		values:  make([]any, len(tmpl.params)),
	}
}

// PathParamCount returns the number of path parameters on the route.
func (r *Route) PathParamCount() int {
	return len(r.tmpl.params)
}

// PathParam returns the i-th path parameter, counted from the root.
func (r *Route) PathParam(i int) pathparam.PathParam {
	return r.tmpl.params[i]
}

// IndexOf returns the slot of p, or -1 when p is not on the route.
func (r *Route) IndexOf(p pathparam.PathParam) int {
	for i, q := range r.tmpl.params {
		if q == p {
			return i
		}
	}
	return -1
}

// Value returns the value in slot i.
func (r *Route) Value(i int) any {
	return r.values[i]
}

// SetPathParam binds value to p, replacing an earlier value. A nil value
// clears the slot.
func (r *Route) SetPathParam(p pathparam.PathParam, value any) error {
	i := r.IndexOf(p)
	if i < 0 {
		name := "<nil>"
		if p != nil {
			name = p.Name()
		}
		return errors.New("E132").WithDetailf("route %s has no parameter %q", r.tmpl.path, name)
	}
	r.values[i] = value
	return nil
}

// Set binds value to the path parameter named name.
func (r *Route) Set(name string, value any) error {
	for i, p := range r.tmpl.params {
		if p.Name() == name {
			r.values[i] = value
			return nil
		}
	}
	return errors.New("E132").WithDetailf("route %s has no parameter %q", r.tmpl.path, name)
}

// CopyPathParams binds every value in values whose parameter is on the
// route and returns how many were copied.
func (r *Route) CopyPathParams(values pathparam.Values) int {
	n := 0
	values.Each(func(p pathparam.PathParam, v any) {
		if i := r.IndexOf(p); i >= 0 {
			r.values[i] = v
			n++
		}
	})
	return n
}

// Build renders the route. It fails if a path parameter has no value or
// cannot format its value.
func (r *Route) Build() (string, error) {
	var b strings.Builder
	b.WriteString(strings.TrimSuffix(r.appPath, "/"))

	for _, st := range r.tmpl.steps {
		if st.slot < 0 {
			b.WriteByte('/')
			b.WriteString(url.PathEscape(st.literal))
			continue
		}
		p, v := r.tmpl.params[st.slot], r.values[st.slot]
		if v == nil {
			return "", errors.New("E130").
				WithDetailf("route %s: %s has no value", r.tmpl.path, p.Name()).
				WithSuggestion("Call SetPathParam for every parameter before Build")
		}
		if err := p.BuildPath(v, &b); err != nil {
			return "", err
		}
	}

	if b.Len() == 0 {
		return "/", nil
	}
	return b.String(), nil
}

// String renders the route for diagnostics, showing bound values as
// "{name=value}" and unbound parameters as "{name}".
func (r *Route) String() string {
	var b strings.Builder
	b.WriteString(strings.TrimSuffix(r.appPath, "/"))
	for _, st := range r.tmpl.steps {
		b.WriteByte('/')
		if st.slot < 0 {
			b.WriteString(st.literal)
			continue
		}
		name := r.tmpl.params[st.slot].Name()
		if v := r.values[st.slot]; v != nil {
			fmt.Fprintf(&b, "{%s=%v}", name, v)
		} else {
			fmt.Fprintf(&b, "{%s}", name)
		}
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}
