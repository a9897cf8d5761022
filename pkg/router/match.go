package router

import (
	"github.com/civilian-dev/civilian/pkg/pathparam"
	"github.com/civilian-dev/civilian/pkg/routepath"
)

// Match is the result of matching a path against a tree.
type Match struct {
	// Resource is the matched resource. For an incomplete match it is the
	// resource where matching stopped.
	Resource Resource

	// Complete reports a routing hit: every segment was consumed and the
	// resource has a handler.
	Complete bool

	// Consumed reports that every segment was consumed, whether or not the
	// resource has a handler.
	Consumed bool

	// Values holds the parsed path parameter values along the match.
	Values pathparam.Values
}

// Match matches path against the tree. path is expected to be canonical;
// Router.Match canonicalizes before calling it.
//
// Match never fails: when no resource matches completely the result has
// Complete == false.
func (t *Tree) Match(path string) Match {
	return t.MatchScanner(routepath.NewScanner(path, t.scanOpts...))
}

// MatchScanner matches the segments of s against the tree.
func (t *Tree) MatchScanner(s routepath.Scanner) Match {
	return t.match(0, s, pathparam.Values{})
}

func (t *Tree) match(i int, s routepath.Scanner, values pathparam.Values) Match {
	n := &t.nodes[i]

	if !s.HasMore() {
		if n.handler != "" {
			return Match{Resource: Resource{t, i}, Complete: true, Consumed: true, Values: values}
		}
		// Only parameters such as optional or empty multi-segment ones can
		// match an empty remainder.
		for _, c := range n.children[n.firstParam:] {
			p := t.nodes[c].param
			v, rest, ok := p.Parse(s)
			if !ok {
				continue
			}
			if m := t.match(c, rest, values.With(p, v)); m.Complete {
				return m
			}
		}
		return Match{Resource: Resource{t, i}, Consumed: true, Values: values}
	}

	var partial Match
	hasPartial := false

	if seg, _ := s.Segment(); n.literals != nil {
		if c, ok := n.literals[seg]; ok {
			m := t.match(c, s.Next(), values)
			if m.Complete {
				return m
			}
			partial, hasPartial = m, true
		}
	}

	for _, c := range n.children[n.firstParam:] {
		p := t.nodes[c].param
		v, rest, ok := p.Parse(s)
		if !ok {
			continue
		}
		m := t.match(c, rest, values.With(p, v))
		if m.Complete {
			return m
		}
		if !hasPartial {
			partial, hasPartial = m, true
		}
	}

	if hasPartial {
		return partial
	}
	return Match{Resource: Resource{t, i}, Values: values}
}
