package routepath

import (
	"regexp"
	"strings"
)

// ScanOption configures how NewScanner splits a path.
type ScanOption func(*scanConfig)

type scanConfig struct {
	ignoreExtension bool
	ignoreIndex     bool
}

// IgnoreExtension strips a trailing ".ext" from the last segment. The
// stripped extension is available from Scanner.Extension.
func IgnoreExtension() ScanOption {
	return func(c *scanConfig) { c.ignoreExtension = true }
}

// IgnoreIndex drops a trailing "index" segment, so "/docs/index" scans like
// "/docs".
func IgnoreIndex() ScanOption {
	return func(c *scanConfig) { c.ignoreIndex = true }
}

// Scanner is a cursor over the segments of a path.
//
// Scanner values are immutable. Methods that advance return a new Scanner and
// leave the receiver unchanged, which makes backtracking free: a caller that
// wants to retry from an earlier position keeps the earlier value.
type Scanner struct {
	path    string
	raw     []string
	decoded []string
	ext     string
	pos     int
}

// NewScanner creates a Scanner positioned at the first segment of path.
// One leading and one trailing slash are ignored; "" and "/" have no
// segments.
func NewScanner(path string, opts ...ScanOption) Scanner {
	var cfg scanConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	s := Scanner{path: path}

	p := strings.TrimPrefix(path, "/")
	p = strings.TrimSuffix(p, "/")

	if cfg.ignoreExtension {
		last := strings.LastIndexByte(p, '/') + 1
		// A leading dot names a hidden file, not an extension.
		if dot := strings.IndexByte(p[last:], '.'); dot > 0 {
			s.ext = p[last+dot+1:]
			p = p[:last+dot]
		}
	}
	if cfg.ignoreIndex {
		if p == "index" {
			p = ""
		} else {
			p = strings.TrimSuffix(p, "/index")
		}
	}

	if p == "" {
		return s
	}

	s.raw = strings.Split(p, "/")
	s.decoded = make([]string, len(s.raw))
	for i, seg := range s.raw {
		s.decoded[i] = decodeLenient(seg)
	}
	return s
}

// Path returns the path the scanner was created for.
func (s Scanner) Path() string {
	return s.path
}

// Extension returns the extension stripped by IgnoreExtension, without the
// dot. It is empty when the option was not set or the path had none.
func (s Scanner) Extension() string {
	return s.ext
}

// HasMore reports whether unconsumed segments remain.
func (s Scanner) HasMore() bool {
	return s.pos < len(s.raw)
}

// Pos returns the index of the current segment.
func (s Scanner) Pos() int {
	return s.pos
}

// Len returns the total number of segments.
func (s Scanner) Len() int {
	return len(s.raw)
}

// Remaining returns the number of unconsumed segments.
func (s Scanner) Remaining() int {
	return len(s.raw) - s.pos
}

// Segment returns the decoded current segment.
func (s Scanner) Segment() (string, bool) {
	if !s.HasMore() {
		return "", false
	}
	return s.decoded[s.pos], true
}

// RawSegment returns the current segment as it appeared in the path.
func (s Scanner) RawSegment() (string, bool) {
	if !s.HasMore() {
		return "", false
	}
	return s.raw[s.pos], true
}

// Next returns a scanner advanced by one segment. At the end of the path it
// returns s unchanged.
func (s Scanner) Next() Scanner {
	if s.HasMore() {
		s.pos++
	}
	return s
}

// Skip returns a scanner advanced by n segments, stopping at the end.
func (s Scanner) Skip(n int) Scanner {
	s.pos = min(s.pos+max(n, 0), len(s.raw))
	return s
}

// MatchSegment reports whether the decoded current segment equals literal
// and, if so, returns the scanner advanced past it.
func (s Scanner) MatchSegment(literal string) (Scanner, bool) {
	seg, ok := s.Segment()
	if !ok || seg != literal {
		return s, false
	}
	return s.Next(), true
}

// MatchPattern matches re against the remaining raw path, segments joined
// by "/". The match must start at the current segment and end at a segment
// boundary, so a pattern may span several segments but never part of one.
// On success it returns the decoded submatches (index 0 is the whole match)
// and a scanner advanced past the matched segments.
func (s Scanner) MatchPattern(re *regexp.Regexp) ([]string, Scanner, bool) {
	if !s.HasMore() {
		return nil, s, false
	}
	rest := strings.Join(s.raw[s.pos:], "/")
	loc := re.FindStringSubmatchIndex(rest)
	if loc == nil || loc[0] != 0 || loc[1] == 0 {
		return nil, s, false
	}
	end := loc[1]
	if end < len(rest) && rest[end] != '/' {
		return nil, s, false
	}

	groups := make([]string, len(loc)/2)
	for i := range groups {
		if loc[2*i] >= 0 {
			groups[i] = decodeLenient(rest[loc[2*i]:loc[2*i+1]])
		}
	}
	consumed := strings.Count(rest[:end], "/") + 1
	return groups, s.Skip(consumed), true
}

// Rest returns the decoded remaining segments.
func (s Scanner) Rest() []string {
	if !s.HasMore() {
		return nil
	}
	out := make([]string, len(s.decoded)-s.pos)
	copy(out, s.decoded[s.pos:])
	return out
}

// String renders the remaining raw path, for diagnostics.
func (s Scanner) String() string {
	return "/" + strings.Join(s.raw[s.pos:], "/")
}
