package routepath

import (
	"reflect"
	"regexp"
	"testing"
)

func TestNewScanner(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		opts     []ScanOption
		wantSegs []string
		wantExt  string
	}{
		{name: "empty", path: ""},
		{name: "root", path: "/"},
		{name: "single", path: "/abc", wantSegs: []string{"abc"}},
		{name: "no leading slash", path: "abc/def", wantSegs: []string{"abc", "def"}},
		{name: "trailing slash", path: "/abc/", wantSegs: []string{"abc"}},
		{name: "decoded", path: "/a%20b/c", wantSegs: []string{"a b", "c"}},
		{name: "malformed escape kept", path: "/a%zz", wantSegs: []string{"a%zz"}},
		{
			name:     "extension kept by default",
			path:     "/test.html/test.html",
			wantSegs: []string{"test.html", "test.html"},
		},
		{
			name:     "extension stripped from last segment only",
			path:     "/test.html/test.html",
			opts:     []ScanOption{IgnoreExtension()},
			wantSegs: []string{"test.html", "test"},
			wantExt:  "html",
		},
		{
			name:     "leading dot is not an extension",
			path:     "/a/.hidden",
			opts:     []ScanOption{IgnoreExtension()},
			wantSegs: []string{"a", ".hidden"},
		},
		{
			name:     "dotted name with leading dot kept whole",
			path:     "/a/.config.json",
			opts:     []ScanOption{IgnoreExtension()},
			wantSegs: []string{"a", ".config.json"},
		},
		{
			name:     "trailing index",
			path:     "/test/index",
			opts:     []ScanOption{IgnoreIndex()},
			wantSegs: []string{"test"},
		},
		{
			name:     "trailing index with extension",
			path:     "/test/index.html",
			opts:     []ScanOption{IgnoreExtension(), IgnoreIndex()},
			wantSegs: []string{"test"},
			wantExt:  "html",
		},
		{
			name: "index only",
			path: "/index",
			opts: []ScanOption{IgnoreIndex()},
		},
		{
			name:     "index not last",
			path:     "/index/a",
			opts:     []ScanOption{IgnoreIndex()},
			wantSegs: []string{"index", "a"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewScanner(tc.path, tc.opts...)
			if got := s.Rest(); !reflect.DeepEqual(got, tc.wantSegs) {
				t.Errorf("Rest() = %q, want %q", got, tc.wantSegs)
			}
			if s.Extension() != tc.wantExt {
				t.Errorf("Extension() = %q, want %q", s.Extension(), tc.wantExt)
			}
			if s.Path() != tc.path {
				t.Errorf("Path() = %q, want %q", s.Path(), tc.path)
			}
			if s.HasMore() != (len(tc.wantSegs) > 0) {
				t.Errorf("HasMore() = %v", s.HasMore())
			}
		})
	}
}

func TestScannerSegments(t *testing.T) {
	s := NewScanner("abc/def")

	if s.Pos() != 0 || s.Remaining() != 2 || s.Len() != 2 {
		t.Fatalf("Pos/Remaining/Len = %d/%d/%d", s.Pos(), s.Remaining(), s.Len())
	}
	for _, lit := range []string{"ab", "abc/", ""} {
		if _, ok := s.MatchSegment(lit); ok {
			t.Errorf("MatchSegment(%q) matched", lit)
		}
	}
	next, ok := s.MatchSegment("abc")
	if !ok {
		t.Fatal("MatchSegment(abc) failed")
	}
	if seg, _ := s.Segment(); seg != "abc" {
		t.Errorf("receiver advanced: Segment() = %q", seg)
	}
	if seg, _ := next.Segment(); seg != "def" {
		t.Errorf("next.Segment() = %q, want def", seg)
	}

	end := next.Next()
	if end.HasMore() {
		t.Error("expected end of path")
	}
	if _, ok := end.Segment(); ok {
		t.Error("Segment() at end should report false")
	}
	if end.Next().Pos() != end.Pos() {
		t.Error("Next() at end should not advance")
	}
}

func TestScannerRawSegment(t *testing.T) {
	s := NewScanner("/a%20b")
	raw, _ := s.RawSegment()
	dec, _ := s.Segment()
	if raw != "a%20b" || dec != "a b" {
		t.Errorf("RawSegment/Segment = %q/%q", raw, dec)
	}
	if _, ok := s.MatchSegment("a b"); !ok {
		t.Error("MatchSegment should compare decoded text")
	}
}

func TestScannerMatchPattern(t *testing.T) {
	var (
		anyPath = regexp.MustCompile(`.+`)
		anySeg  = regexp.MustCompile(`[^/]+`)
		alpha   = regexp.MustCompile(`[a-z]+`)
		number  = regexp.MustCompile(`[0-9]+`)
		groups  = regexp.MustCompile(`a([a-z]{2})/1([0-9]{2})`)
		partial = regexp.MustCompile(`ab`)
	)

	tests := []struct {
		name   string
		start  int
		re     *regexp.Regexp
		want   []string
		wantAt int
	}{
		{"any spans segments", 0, anyPath, []string{"abc/123"}, 2},
		{"any segment", 0, anySeg, []string{"abc"}, 1},
		{"alpha", 0, alpha, []string{"abc"}, 1},
		{"number misses", 0, number, nil, 0},
		{"groups", 0, groups, []string{"abc/123", "bc", "23"}, 2},
		{"partial segment misses", 0, partial, nil, 0},
		{"second segment any", 1, anyPath, []string{"123"}, 2},
		{"second segment alpha misses", 1, alpha, nil, 1},
		{"second segment number", 1, number, []string{"123"}, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewScanner("abc/123").Skip(tc.start)
			got, next, ok := s.MatchPattern(tc.re)
			if ok != (tc.want != nil) {
				t.Fatalf("MatchPattern ok = %v, want %v", ok, tc.want != nil)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("MatchPattern = %q, want %q", got, tc.want)
			}
			if next.Pos() != tc.wantAt {
				t.Errorf("next.Pos() = %d, want %d", next.Pos(), tc.wantAt)
			}
		})
	}
}

func TestScannerMatchPatternNotAnchoredLater(t *testing.T) {
	s := NewScanner("/x/2024")
	if _, _, ok := s.MatchPattern(regexp.MustCompile(`[0-9]{4}`)); ok {
		t.Error("pattern must match at the current segment")
	}
}

func TestScannerMatchPatternDecodesGroups(t *testing.T) {
	s := NewScanner("/a%20b/c")
	got, next, ok := s.MatchPattern(regexp.MustCompile(`([^/]+)/([^/]+)`))
	if !ok {
		t.Fatal("MatchPattern failed")
	}
	if got[1] != "a b" || got[2] != "c" {
		t.Errorf("groups = %q", got)
	}
	if next.HasMore() {
		t.Error("expected all segments consumed")
	}
}

func TestScannerBacktrack(t *testing.T) {
	s := NewScanner("/a/b/c")
	mark := s

	s, _ = s.MatchSegment("a")
	if _, ok := s.MatchSegment("b"); !ok {
		t.Fatal("MatchSegment(b) failed")
	}
	if _, ok := mark.MatchSegment("a"); !ok {
		t.Error("earlier value should still be at the first segment")
	}
}

func TestScannerSkipAndString(t *testing.T) {
	s := NewScanner("/a/b/c")
	if got := s.Skip(2).String(); got != "/c" {
		t.Errorf("Skip(2).String() = %q", got)
	}
	if got := s.Skip(10).Pos(); got != 3 {
		t.Errorf("Skip(10).Pos() = %d", got)
	}
	if got := s.Skip(-1).Pos(); got != 0 {
		t.Errorf("Skip(-1).Pos() = %d", got)
	}
}
