package pathparam

import (
	"regexp"
	"strings"

	"github.com/civilian-dev/civilian/internal/errors"
	"github.com/civilian-dev/civilian/pkg/routepath"
)

type segmentParam struct {
	base
}

// Segment returns a parameter that matches any single non-empty segment and
// produces its decoded text.
func Segment(name string) PathParam {
	return &segmentParam{base{name}}
}

func (p *segmentParam) Kind() Kind            { return KindSegment }
func (p *segmentParam) TypeName() string      { return "string" }
func (p *segmentParam) PatternString() string { return "" }

func (p *segmentParam) Parse(s routepath.Scanner) (any, routepath.Scanner, bool) {
	seg, ok := s.Segment()
	if !ok || seg == "" {
		return nil, s, false
	}
	return seg, s.Next(), true
}

func (p *segmentParam) BuildPath(value any, b *strings.Builder) error {
	v, ok := value.(string)
	if !ok {
		return typeError(p, value)
	}
	if v == "" {
		return emptyValueError(p)
	}
	appendSegment(b, v)
	return nil
}

// patternParam matches a single segment against an anchored regex with one
// capture group and builds by substituting the '*' of a build pattern.
type patternParam struct {
	base
	re      *regexp.Regexp
	build   string
	display string
}

// SegmentPattern returns a parameter that matches a segment against pattern,
// where pattern contains exactly one '*' wildcard standing for the value.
// SegmentPattern("id", "id*") matches "id42" and produces "42".
func SegmentPattern(name, pattern string) (PathParam, error) {
	if err := checkWildcard(name, pattern); err != nil {
		return nil, err
	}
	prefix, suffix, _ := strings.Cut(pattern, "*")
	re := regexp.MustCompile("^" + regexp.QuoteMeta(prefix) + "(.+)" + regexp.QuoteMeta(suffix) + "$")
	return &patternParam{base: base{name}, re: re, build: pattern, display: pattern}, nil
}

// Regex returns a parameter that matches a whole segment against re, which
// must have exactly one capture group holding the value. buildPattern
// contains one '*' that is replaced by the value when building.
func Regex(name string, re *regexp.Regexp, buildPattern string) (PathParam, error) {
	if re == nil || re.NumSubexp() != 1 {
		n := 0
		if re != nil {
			n = re.NumSubexp()
		}
		return nil, errors.New("E103").
			WithDetailf("parameter %q: regex has %d capture groups", name, n).
			WithSuggestion("Use exactly one capture group, and (?:...) for other groupings")
	}
	if err := checkWildcard(name, buildPattern); err != nil {
		return nil, err
	}
	anchored := regexp.MustCompile("^(?:" + re.String() + ")$")
	return &patternParam{base: base{name}, re: anchored, build: buildPattern, display: re.String()}, nil
}

func checkWildcard(name, pattern string) error {
	if n := strings.Count(pattern, "*"); n != 1 {
		return errors.New("E102").
			WithDetailf("parameter %q: pattern %q has %d wildcards", name, pattern, n)
	}
	if strings.Contains(pattern, "/") {
		return errors.New("E102").
			WithDetailf("parameter %q: pattern %q spans more than one segment", name, pattern)
	}
	return nil
}

func (p *patternParam) Kind() Kind            { return KindPattern }
func (p *patternParam) TypeName() string      { return "string" }
func (p *patternParam) PatternString() string { return p.display }

func (p *patternParam) Parse(s routepath.Scanner) (any, routepath.Scanner, bool) {
	seg, ok := s.Segment()
	if !ok {
		return nil, s, false
	}
	m := p.re.FindStringSubmatch(seg)
	if m == nil || m[1] == "" {
		return nil, s, false
	}
	return m[1], s.Next(), true
}

func (p *patternParam) BuildPath(value any, b *strings.Builder) error {
	v, ok := value.(string)
	if !ok {
		return typeError(p, value)
	}
	if v == "" {
		return emptyValueError(p)
	}
	appendSegment(b, strings.Replace(p.build, "*", v, 1))
	return nil
}
