package pathparam

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/civilian-dev/civilian/internal/errors"
	"github.com/civilian-dev/civilian/pkg/routepath"
)

// Kind identifies the variant of a PathParam.
type Kind int

const (
	KindSegment Kind = iota
	KindPattern
	KindConverting
	KindPreceded
	KindOptional
	KindMultiSegment
	KindYearMonthDay
)

var kindNames = [...]string{
	KindSegment:      "segment",
	KindPattern:      "pattern",
	KindConverting:   "converting",
	KindPreceded:     "preceded",
	KindOptional:     "optional",
	KindMultiSegment: "multi",
	KindYearMonthDay: "ymd",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// PathParam recognizes and formats one typed value in a path.
//
// Implementations are immutable and compared by identity: two parameters
// are the same parameter only if they are the same value.
type PathParam interface {
	// Name is the unique name of the parameter.
	Name() string

	// Kind is the variant of the parameter.
	Kind() Kind

	// TypeName names the Go type of parsed values, e.g. "string" or "int".
	TypeName() string

	// Parse recognizes the parameter at the scanner position. On success it
	// returns a non-nil value and the scanner advanced past the consumed
	// segments. On failure it returns ok == false and s unchanged.
	Parse(s routepath.Scanner) (value any, rest routepath.Scanner, ok bool)

	// BuildPath appends the path representation of value to b, one
	// "/segment" piece per consumed segment.
	BuildPath(value any, b *strings.Builder) error

	// PatternString describes the accepted input, for diagnostics.
	PatternString() string

	// String returns "/{name}".
	String() string
}

// Detailed renders p as "/{name : type=pattern}".
func Detailed(p PathParam) string {
	if pattern := p.PatternString(); pattern != "" {
		return "/{" + p.Name() + " : " + p.TypeName() + "=" + pattern + "}"
	}
	return "/{" + p.Name() + " : " + p.TypeName() + "}"
}

// BuildString returns the path representation of value.
func BuildString(p PathParam, value any) (string, error) {
	var b strings.Builder
	if err := p.BuildPath(value, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// ParseString parses a complete path fragment such as "/2024/02/29" with p.
// It fails unless p consumes every segment.
func ParseString(p PathParam, text string) (any, bool) {
	v, rest, ok := p.Parse(routepath.NewScanner(text))
	if !ok || rest.HasMore() {
		return nil, false
	}
	return v, true
}

// Must is a helper that wraps a call to a constructor returning
// (PathParam, error) and panics if the error is non-nil.
func Must(p PathParam, err error) PathParam {
	if err != nil {
		panic(err)
	}
	return p
}

// base carries the name shared by every variant.
type base struct {
	name string
}

func (b *base) Name() string   { return b.name }
func (b *base) String() string { return "/{" + b.name + "}" }

func appendSegment(b *strings.Builder, segment string) {
	b.WriteByte('/')
	b.WriteString(url.PathEscape(segment))
}

func typeError(p PathParam, value any) error {
	return errors.New("E131").
		WithDetailf("%s expects %s, got %T", Detailed(p), p.TypeName(), value)
}

func emptyValueError(p PathParam) error {
	return errors.New("E131").
		WithDetailf("%s cannot build an empty segment", Detailed(p))
}
