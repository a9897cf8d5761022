package pathparam

import (
	"strings"

	"github.com/civilian-dev/civilian/internal/errors"
	"github.com/civilian-dev/civilian/pkg/routepath"
)

type precededParam struct {
	base
	prefix string
	inner  PathParam
}

// Preceded returns a parameter that requires the literal segment prefix
// followed by inner. It takes the inner parameter's name.
func Preceded(prefix string, inner PathParam) (PathParam, error) {
	if inner == nil {
		return nil, errors.New("E108").WithDetailf("prefix %q has no inner parameter", prefix)
	}
	return PrecededNamed(inner.Name(), prefix, inner)
}

// PrecededNamed is Preceded with an explicit name.
func PrecededNamed(name, prefix string, inner PathParam) (PathParam, error) {
	if inner == nil {
		return nil, errors.New("E108").WithDetailf("parameter %q has no inner parameter", name)
	}
	if prefix == "" || strings.ContainsAny(prefix, "/{}") {
		return nil, errors.New("E107").
			WithDetailf("parameter %q: prefix %q", name, prefix)
	}
	return &precededParam{base: base{name}, prefix: prefix, inner: inner}, nil
}

func (p *precededParam) Kind() Kind       { return KindPreceded }
func (p *precededParam) TypeName() string { return p.inner.TypeName() }

// Inner returns the wrapped parameter.
func (p *precededParam) Inner() PathParam { return p.inner }

// Prefix returns the literal segment preceding the inner parameter.
func (p *precededParam) Prefix() string { return p.prefix }

func (p *precededParam) PatternString() string {
	if inner := p.inner.PatternString(); inner != "" {
		return p.prefix + "/" + inner
	}
	return p.prefix + "/*"
}

func (p *precededParam) Parse(s routepath.Scanner) (any, routepath.Scanner, bool) {
	next, ok := s.MatchSegment(p.prefix)
	if !ok {
		return nil, s, false
	}
	v, rest, ok := p.inner.Parse(next)
	if !ok {
		return nil, s, false
	}
	return v, rest, true
}

func (p *precededParam) BuildPath(value any, b *strings.Builder) error {
	var inner strings.Builder
	if err := p.inner.BuildPath(value, &inner); err != nil {
		return err
	}
	appendSegment(b, p.prefix)
	b.WriteString(inner.String())
	return nil
}
