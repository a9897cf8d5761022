package config

import (
	"regexp"

	"github.com/civilian-dev/civilian/internal/errors"
	"github.com/civilian-dev/civilian/pkg/pathparam"
)

// Parameter kinds accepted in ParamConfig.Kind.
const (
	KindSegment  = "segment"
	KindPattern  = "pattern"
	KindRegex    = "regex"
	KindPreceded = "preceded"
	KindOptional = "optional"
	KindMulti    = "multi"
	KindYMD      = "ymd"
)

// ParamConfig declares one path parameter.
type ParamConfig struct {
	// Name is the parameter name. An inner parameter defaults to the name
	// of its parent.
	Name string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`

	// Kind selects the parameter type (default: "segment").
	Kind string `json:"kind,omitempty" yaml:"kind,omitempty" toml:"kind,omitempty"`

	// Convert names a converter applied to the parsed string, e.g. "int".
	Convert string `json:"convert,omitempty" yaml:"convert,omitempty" toml:"convert,omitempty"`

	// Pattern is a single "*" wildcard pattern such as "id*".
	Pattern string `json:"pattern,omitempty" yaml:"pattern,omitempty" toml:"pattern,omitempty"`

	// Regex is a regular expression with exactly one capture group.
	Regex string `json:"regex,omitempty" yaml:"regex,omitempty" toml:"regex,omitempty"`

	// Build is the "*" pattern used to build paths for a regex parameter.
	Build string `json:"build,omitempty" yaml:"build,omitempty" toml:"build,omitempty"`

	// Prefix is the literal segment of a preceded parameter.
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty" toml:"prefix,omitempty"`

	// Min is the minimum segment count of a multi parameter.
	Min int `json:"min,omitempty" yaml:"min,omitempty" toml:"min,omitempty"`

	// Inner is the wrapped parameter of a preceded or optional parameter.
	Inner *ParamConfig `json:"inner,omitempty" yaml:"inner,omitempty" toml:"inner,omitempty"`
}

func (pc *ParamConfig) applyDefaults() {
	if pc.Kind == "" {
		pc.Kind = KindSegment
	}
	if pc.Inner != nil {
		pc.Inner.applyDefaults()
	}
}

// PathParams builds the declared path parameters.
func (c *Config) PathParams() (*pathparam.Map, error) {
	params := make([]pathparam.PathParam, 0, len(c.Params))
	for i, pc := range c.Params {
		if pc.Name == "" {
			return nil, c.invalid("params[%d]: name is required", i)
		}
		p, err := pc.build(pc.Name)
		if err != nil {
			return nil, c.invalid("params[%d]: %s", i, pc.Name).Wrap(err)
		}
		params = append(params, p)
	}

	m, err := pathparam.NewMap(params...)
	if err != nil {
		return nil, c.invalid("params").Wrap(err)
	}
	return m, nil
}

func (pc *ParamConfig) build(fallback string) (pathparam.PathParam, error) {
	name := pc.Name
	if name == "" {
		name = fallback
	}

	var (
		p   pathparam.PathParam
		err error
	)
	switch pc.Kind {
	case "", KindSegment:
		if pc.Pattern != "" {
			p, err = pathparam.SegmentPattern(name, pc.Pattern)
		} else {
			p = pathparam.Segment(name)
		}
	case KindPattern:
		p, err = pathparam.SegmentPattern(name, pc.Pattern)
	case KindRegex:
		re, rerr := regexp.Compile(pc.Regex)
		if rerr != nil {
			return nil, errors.New("E103").WithDetailf("%q", pc.Regex).Wrap(rerr)
		}
		p, err = pathparam.Regex(name, re, pc.Build)
	case KindPreceded:
		inner, ierr := pc.inner(name)
		if ierr != nil {
			return nil, ierr
		}
		p, err = pathparam.PrecededNamed(name, pc.Prefix, inner)
	case KindOptional:
		inner, ierr := pc.inner(name)
		if ierr != nil {
			return nil, ierr
		}
		p = pathparam.Optional(name, inner)
	case KindMulti:
		p, err = pathparam.MultiSegment(name, pc.Min)
	case KindYMD:
		p = pathparam.YearMonthDay(name, pathparam.TimeDate)
	default:
		return nil, errors.New("E108").
			WithDetailf("unknown kind %q", pc.Kind).
			WithSuggestion("Use segment, pattern, regex, preceded, optional, multi or ymd")
	}
	if err != nil {
		return nil, err
	}

	if pc.Convert != "" {
		return pathparam.ConvertingNamed(p, name, pc.Convert)
	}
	return p, nil
}

func (pc *ParamConfig) inner(name string) (pathparam.PathParam, error) {
	if pc.Inner == nil {
		return nil, errors.New("E108").WithDetailf("%s parameter %q needs an inner parameter", pc.Kind, name)
	}
	return pc.Inner.build(name)
}
