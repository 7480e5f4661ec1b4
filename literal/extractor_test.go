package literal

import (
	"testing"

	"github.com/capturematch/capturematch/syntax"
)

func extract(t *testing.T, pattern string) *Seq {
	t.Helper()
	e, err := syntax.Parse(pattern, 0)
	if err != nil {
		t.Fatalf("Parse(%q): %v", pattern, err)
	}
	return New(DefaultConfig()).ExtractPrefixes(e)
}

func literalStrings(s *Seq) []string {
	out := make([]string, s.Len())
	for i := 0; i < s.Len(); i++ {
		out[i] = string(s.Get(i).Runes)
	}
	return out
}

func TestExtractPrefixesLiteral(t *testing.T) {
	s := extract(t, "hello")
	got := literalStrings(s)
	if len(got) != 1 || got[0] != "hello" {
		t.Fatalf("got %v, want [\"hello\"]", got)
	}
	if !s.Get(0).Complete {
		t.Fatalf("a bare literal pattern's prefix should be marked complete")
	}
}

func TestExtractPrefixesAlternation(t *testing.T) {
	s := extract(t, "cat|dog")
	got := map[string]bool{}
	for _, l := range literalStrings(s) {
		got[l] = true
	}
	if !got["cat"] || !got["dog"] || len(got) != 2 {
		t.Fatalf("got %v, want {cat, dog}", got)
	}
}

func TestExtractPrefixesWildcardSuffixKeepsPrefix(t *testing.T) {
	s := extract(t, "hello[a-z]*")
	got := literalStrings(s)
	if len(got) != 1 || got[0] != "hello" {
		t.Fatalf("got %v, want [\"hello\"]", got)
	}
	if s.Get(0).Complete {
		t.Fatalf("prefix followed by an open-ended class should not be marked complete")
	}
}

func TestExtractPrefixesLeadingWildcardYieldsNothing(t *testing.T) {
	s := extract(t, "[a-z]*foo")
	if !s.IsEmpty() {
		t.Fatalf("a pattern that can start anywhere should have no required prefix, got %v", literalStrings(s))
	}
}

func TestExtractPrefixesSmallClassExpands(t *testing.T) {
	s := extract(t, "[abc]x")
	got := map[string]bool{}
	for _, l := range literalStrings(s) {
		got[l] = true
	}
	if !got["ax"] || !got["bx"] || !got["cx"] || len(got) != 3 {
		t.Fatalf("got %v, want {ax, bx, cx}", got)
	}
}

func TestExtractPrefixesLargeClassIsNotExpanded(t *testing.T) {
	s := extract(t, "[a-z]foo")
	if !s.IsEmpty() {
		t.Fatalf("a 26-member class should exceed MaxClassSize and yield no prefix, got %v", literalStrings(s))
	}
}

func TestExtractPrefixesGroupUnwraps(t *testing.T) {
	s := extract(t, "(hello)world")
	got := literalStrings(s)
	if len(got) != 1 || got[0] != "helloworld" {
		t.Fatalf("got %v, want [\"helloworld\"]", got)
	}
}

func TestExtractPrefixesAlternationOneWildcardBranchYieldsNothing(t *testing.T) {
	s := extract(t, "abc|[a-z]*")
	if !s.IsEmpty() {
		t.Fatalf("one open-ended branch should void the whole alternation's prefix, got %v", literalStrings(s))
	}
}
