package pathparam

import (
	"strings"

	"github.com/civilian-dev/civilian/internal/errors"
)

// Map is an immutable registry of path parameters keyed by unique name.
type Map struct {
	params []PathParam
	byName map[string]PathParam
}

// Empty is the map without parameters.
var Empty = &Map{byName: map[string]PathParam{}}

// NewMap registers params in order. Two parameters with the same name are
// an error.
func NewMap(params ...PathParam) (*Map, error) {
	m := &Map{
		params: make([]PathParam, 0, len(params)),
		byName: make(map[string]PathParam, len(params)),
	}
	for i, p := range params {
		if p == nil {
			return nil, errors.Newf(errors.CategoryConfig, "path parameter #%d is nil", i)
		}
		if _, dup := m.byName[p.Name()]; dup {
			return nil, errors.New("E101").
				WithDetailf("%q is registered twice", p.Name()).
				WithSuggestion("Give each path parameter its own name")
		}
		m.byName[p.Name()] = p
		m.params = append(m.params, p)
	}
	return m, nil
}

// Get returns the parameter registered under name, or nil.
func (m *Map) Get(name string) PathParam {
	return m.byName[name]
}

// Contains reports whether p itself is registered.
func (m *Map) Contains(p PathParam) bool {
	return p != nil && m.byName[p.Name()] == p
}

// All returns the parameters in registration order.
func (m *Map) All() []PathParam {
	out := make([]PathParam, len(m.params))
	copy(out, m.params)
	return out
}

// Len returns the number of parameters.
func (m *Map) Len() int {
	return len(m.params)
}

// Names returns the parameter names in registration order.
func (m *Map) Names() []string {
	names := make([]string, len(m.params))
	for i, p := range m.params {
		names[i] = p.Name()
	}
	return names
}

func (m *Map) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, p := range m.params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(Detailed(p))
	}
	b.WriteByte(']')
	return b.String()
}
