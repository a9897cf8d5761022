package pathparam

import (
	"fmt"
	"strings"

	"github.com/civilian-dev/civilian/internal/errors"
	"github.com/civilian-dev/civilian/pkg/routepath"
)

type multiParam struct {
	base
	min int
}

// MultiSegment returns a parameter that consumes all remaining segments
// into a []string. It misses when fewer than minSize segments remain.
func MultiSegment(name string, minSize int) (PathParam, error) {
	if minSize < 0 {
		return nil, errors.New("E110").WithDetailf("parameter %q: minimum %d", name, minSize)
	}
	return &multiParam{base: base{name}, min: minSize}, nil
}

func (p *multiParam) Kind() Kind       { return KindMultiSegment }
func (p *multiParam) TypeName() string { return "[]string" }

// MinSize returns the minimum number of segments.
func (p *multiParam) MinSize() int { return p.min }

func (p *multiParam) PatternString() string {
	if p.min == 0 {
		return "**"
	}
	return fmt.Sprintf("**{%d,}", p.min)
}

func (p *multiParam) Parse(s routepath.Scanner) (any, routepath.Scanner, bool) {
	if s.Remaining() < p.min {
		return nil, s, false
	}
	segments := s.Rest()
	if segments == nil {
		segments = []string{}
	}
	return segments, s.Skip(len(segments)), true
}

func (p *multiParam) BuildPath(value any, b *strings.Builder) error {
	segments, ok := value.([]string)
	if !ok {
		return typeError(p, value)
	}
	if len(segments) < p.min {
		return errors.New("E131").
			WithDetailf("%s needs at least %d segments, got %d", Detailed(p), p.min, len(segments))
	}
	for _, seg := range segments {
		if seg == "" {
			return emptyValueError(p)
		}
		appendSegment(b, seg)
	}
	return nil
}
