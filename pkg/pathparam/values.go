package pathparam

import (
	"fmt"
	"strings"
)

type entry struct {
	param PathParam
	value any
}

// Values holds the parameter values collected while matching a path, in the
// order the parameters were matched.
//
// Values is persistent: With returns a new collection and never changes the
// receiver, so a matcher can hand the same Values to several alternatives.
// The zero value is empty and ready to use.
type Values struct {
	entries []entry
}

// With returns a copy of v in which p is bound to value.
func (v Values) With(p PathParam, value any) Values {
	for i, e := range v.entries {
		if e.param == p {
			entries := make([]entry, len(v.entries))
			copy(entries, v.entries)
			entries[i].value = value
			return Values{entries: entries}
		}
	}
	entries := make([]entry, len(v.entries), len(v.entries)+1)
	copy(entries, v.entries)
	return Values{entries: append(entries, entry{p, value})}
}

// Get returns the value bound to p.
func (v Values) Get(p PathParam) (any, bool) {
	for _, e := range v.entries {
		if e.param == p {
			return e.value, true
		}
	}
	return nil, false
}

// Lookup returns the value bound to the parameter named name.
func (v Values) Lookup(name string) (any, bool) {
	for _, e := range v.entries {
		if e.param.Name() == name {
			return e.value, true
		}
	}
	return nil, false
}

// Len returns the number of bound parameters.
func (v Values) Len() int {
	return len(v.entries)
}

// Params returns the bound parameters in match order.
func (v Values) Params() []PathParam {
	out := make([]PathParam, len(v.entries))
	for i, e := range v.entries {
		out[i] = e.param
	}
	return out
}

// Each calls fn for every binding in match order.
func (v Values) Each(fn func(p PathParam, value any)) {
	for _, e := range v.entries {
		fn(e.param, e.value)
	}
}

// Map returns the values keyed by parameter name.
func (v Values) Map() map[string]any {
	out := make(map[string]any, len(v.entries))
	for _, e := range v.entries {
		out[e.param.Name()] = e.value
	}
	return out
}

func (v Values) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, e := range v.entries {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%v", e.param.Name(), e.value)
	}
	b.WriteByte('}')
	return b.String()
}

// ValueOf returns the value bound to p as a T.
func ValueOf[T any](v Values, p PathParam) (T, bool) {
	raw, ok := v.Get(p)
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := raw.(T)
	return t, ok
}
