package pathparam

import (
	"fmt"
	"strings"

	"github.com/civilian-dev/civilian/pkg/routepath"
)

// Opt is the value of an Optional parameter.
type Opt struct {
	Value   any
	Present bool
}

// Some returns a present Opt holding v.
func Some(v any) Opt { return Opt{Value: v, Present: true} }

// None returns an absent Opt.
func None() Opt { return Opt{} }

func (o Opt) String() string {
	if !o.Present {
		return "absent"
	}
	return fmt.Sprint(o.Value)
}

type optionalParam struct {
	base
	inner PathParam
}

// Optional returns a parameter that always matches. When inner matches the
// value is a present Opt; otherwise it is an absent Opt and nothing is
// consumed. Building an absent Opt appends nothing.
func Optional(name string, inner PathParam) PathParam {
	if name == "" {
		name = inner.Name()
	}
	return &optionalParam{base: base{name}, inner: inner}
}

func (p *optionalParam) Kind() Kind            { return KindOptional }
func (p *optionalParam) TypeName() string      { return "optional[" + p.inner.TypeName() + "]" }
func (p *optionalParam) PatternString() string { return "[" + p.inner.PatternString() + "]" }

// Inner returns the wrapped parameter.
func (p *optionalParam) Inner() PathParam { return p.inner }

func (p *optionalParam) Parse(s routepath.Scanner) (any, routepath.Scanner, bool) {
	v, rest, ok := p.inner.Parse(s)
	if !ok {
		return Opt{}, s, true
	}
	return Opt{Value: v, Present: true}, rest, true
}

// BuildPath accepts an Opt or a bare inner value, which counts as present.
func (p *optionalParam) BuildPath(value any, b *strings.Builder) error {
	o, ok := value.(Opt)
	if !ok {
		return p.inner.BuildPath(value, b)
	}
	if !o.Present {
		return nil
	}
	return p.inner.BuildPath(o.Value, b)
}
