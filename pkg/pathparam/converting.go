package pathparam

import (
	"strings"

	"github.com/civilian-dev/civilian/internal/errors"
	"github.com/civilian-dev/civilian/pkg/routepath"
)

// Converter converts between the text of a segment and a typed value.
type Converter[T any] struct {
	// TypeName names T in diagnostics, e.g. "int".
	TypeName string

	// Parse converts segment text to a value. An error is a parse miss.
	Parse func(string) (T, error)

	// Format converts a value back to segment text.
	Format func(T) string
}

type convertingParam[T any] struct {
	base
	inner PathParam
	conv  Converter[T]
}

// Converting wraps a string-valued parameter and converts its text with
// conv. An empty name reuses the inner parameter's name. Text that conv
// cannot parse makes the parameter miss, so matching moves on to the next
// alternative.
func Converting[T any](inner PathParam, name string, conv Converter[T]) (PathParam, error) {
	if inner == nil {
		return nil, errors.New("E108").WithDetailf("parameter %q has no inner parameter", name)
	}
	if inner.TypeName() != "string" {
		return nil, errors.New("E112").
			WithDetailf("%s produces %s", Detailed(inner), inner.TypeName())
	}
	if conv.Parse == nil || conv.Format == nil {
		return nil, errors.New("E111").WithDetailf("converter %q is incomplete", conv.TypeName)
	}
	if name == "" {
		name = inner.Name()
	}
	return &convertingParam[T]{base: base{name}, inner: inner, conv: conv}, nil
}

func (p *convertingParam[T]) Kind() Kind            { return KindConverting }
func (p *convertingParam[T]) TypeName() string      { return p.conv.TypeName }
func (p *convertingParam[T]) PatternString() string { return p.inner.PatternString() }

// Inner returns the wrapped parameter.
func (p *convertingParam[T]) Inner() PathParam { return p.inner }

func (p *convertingParam[T]) Parse(s routepath.Scanner) (any, routepath.Scanner, bool) {
	v, rest, ok := p.inner.Parse(s)
	if !ok {
		return nil, s, false
	}
	text, ok := v.(string)
	if !ok {
		return nil, s, false
	}
	converted, err := p.conv.Parse(text)
	if err != nil {
		return nil, s, false
	}
	return converted, rest, true
}

func (p *convertingParam[T]) BuildPath(value any, b *strings.Builder) error {
	v, ok := value.(T)
	if !ok {
		return typeError(p, value)
	}
	return p.inner.BuildPath(p.conv.Format(v), b)
}
