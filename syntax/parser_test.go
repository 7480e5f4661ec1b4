package syntax

import (
	"testing"
)

func mustParse(t *testing.T, pattern string, flags Flags) *Expr {
	t.Helper()
	e, err := Parse(pattern, flags)
	if err != nil {
		t.Fatalf("Parse(%q): %v", pattern, err)
	}
	return e
}

func TestParseLiteralConcat(t *testing.T) {
	e := mustParse(t, "abc", 0)
	if e.Op != OpConcat || len(e.Sub) != 3 {
		t.Fatalf("got %+v", e)
	}
}

func TestParseAlternation(t *testing.T) {
	e := mustParse(t, "a|b|c", 0)
	if e.Op != OpAlternate || len(e.Sub) != 3 {
		t.Fatalf("got %+v", e)
	}
}

func TestParseGroupIndexAllocation(t *testing.T) {
	// index allocated left-to-right at the opening '(', independent of
	// nesting depth or postorder traversal order.
	e := mustParse(t, "(a(b)c)(d)", 0)
	outer := e.Sub[0]
	if outer.Op != OpGroup || outer.GroupIdx != 0 {
		t.Fatalf("outer group idx = %d", outer.GroupIdx)
	}
	inner := outer.Sub[0].Sub[1]
	if inner.Op != OpGroup || inner.GroupIdx != 1 {
		t.Fatalf("inner group idx = %d", inner.GroupIdx)
	}
	last := e.Sub[1]
	if last.Op != OpGroup || last.GroupIdx != 2 {
		t.Fatalf("last group idx = %d", last.GroupIdx)
	}
}

func TestParseNonCapturingGroup(t *testing.T) {
	e := mustParse(t, "(?:ab)", 0)
	g := e
	if g.Op != OpGroup || g.GroupIdx != -1 {
		t.Fatalf("got %+v", g)
	}
}

func TestParseQuantifiers(t *testing.T) {
	cases := []struct {
		pattern string
		op      Op
		lazy    bool
	}{
		{"a*", OpStar, false},
		{"a*?", OpStar, true},
		{"a+", OpPlus, false},
		{"a+?", OpPlus, true},
		{"a?", OpOptional, false},
		{"a??", OpOptional, true},
	}
	for _, c := range cases {
		e := mustParse(t, c.pattern, 0)
		if e.Op != c.op || e.Lazy != c.lazy {
			t.Errorf("%q: got op=%v lazy=%v", c.pattern, e.Op, e.Lazy)
		}
	}
}

func TestParseBraceQuantifier(t *testing.T) {
	cases := []struct {
		pattern  string
		min, max int
	}{
		{"a{3}", 3, 3},
		{"a{2,}", 2, -1},
		{"a{2,5}", 2, 5},
	}
	for _, c := range cases {
		e := mustParse(t, c.pattern, 0)
		if e.Op != OpRepeat || e.Min != c.min || e.Max != c.max {
			t.Errorf("%q: got min=%d max=%d", c.pattern, e.Min, e.Max)
		}
	}
}

func TestParsePossessiveRejected(t *testing.T) {
	_, err := Parse("a*+", 0)
	if _, ok := err.(*UnsupportedError); !ok {
		t.Fatalf("expected UnsupportedError, got %v", err)
	}
}

func TestParseLookaroundRejected(t *testing.T) {
	for _, pat := range []string{"(?=a)", "(?!a)", "(?<=a)", "(?<!a)"} {
		_, err := Parse(pat, 0)
		if _, ok := err.(*UnsupportedError); !ok {
			t.Errorf("%q: expected UnsupportedError, got %v", pat, err)
		}
	}
}

func TestParseCharClassRange(t *testing.T) {
	e := mustParse(t, "[a-z]", 0)
	if e.Op != OpClass {
		t.Fatalf("got %+v", e)
	}
	if !e.Class.Contains('m') || e.Class.Contains('A') {
		t.Fatalf("class contents wrong: %v", e.Class.Ranges())
	}
}

func TestParseCharClassNegation(t *testing.T) {
	e := mustParse(t, "[^a-z]", 0)
	if e.Class.Contains('m') || !e.Class.Contains('A') {
		t.Fatalf("negated class contents wrong: %v", e.Class.Ranges())
	}
}

func TestParseCharClassIntersection(t *testing.T) {
	e := mustParse(t, "[a-z&&[^aeiou]]", 0)
	if e.Class.Contains('a') || !e.Class.Contains('b') {
		t.Fatalf("intersection contents wrong: %v", e.Class.Ranges())
	}
}

func TestParseCharClassNested(t *testing.T) {
	e := mustParse(t, "[a[0-9]]", 0)
	if !e.Class.Contains('a') || !e.Class.Contains('5') || e.Class.Contains('b') {
		t.Fatalf("nested class contents wrong: %v", e.Class.Ranges())
	}
}

func TestParseEscapes(t *testing.T) {
	cases := []struct {
		pattern string
		want    rune
	}{
		{`\n`, '\n'},
		{`\t`, '\t'},
		{`\x41`, 'A'},
		{`\x{1F600}`, 0x1F600},
		{`A`, 'A'},
		{`\052`, '*'},
	}
	for _, c := range cases {
		e := mustParse(t, c.pattern, 0)
		if e.Op != OpClass || !e.Class.Contains(int32(c.want)) {
			t.Errorf("%q: want code point %d, got %v", c.pattern, c.want, e.Class.Ranges())
		}
	}
}

func TestParseBoundaries(t *testing.T) {
	cases := []struct {
		pattern string
		kind    BoundaryKind
	}{
		{`\b`, BoundaryWord},
		{`\B`, BoundaryNotWord},
		{`\A`, BoundaryStartText},
		{`\z`, BoundaryEndText},
		{`\Z`, BoundaryEndTextish},
	}
	for _, c := range cases {
		e := mustParse(t, c.pattern, 0)
		if e.Op != OpBoundary || e.Boundary != c.kind {
			t.Errorf("%q: got %+v", c.pattern, e)
		}
	}
}

func TestParseAnchorsRespectMultiline(t *testing.T) {
	e := mustParse(t, "^", 0)
	if e.Boundary != BoundaryStartText {
		t.Fatalf("non-multiline ^ should be StartText, got %v", e.Boundary)
	}
	e = mustParse(t, "^", Multiline)
	if e.Boundary != BoundaryStartLine {
		t.Fatalf("multiline ^ should be StartLine, got %v", e.Boundary)
	}
}

func TestParseUnicodeProperty(t *testing.T) {
	e := mustParse(t, `\p{L}`, 0)
	if !e.Class.Contains('a') || e.Class.Contains('1') {
		t.Fatalf("\\p{L} contents wrong: %v", e.Class.Ranges())
	}
	e = mustParse(t, `\P{L}`, 0)
	if e.Class.Contains('a') || !e.Class.Contains('1') {
		t.Fatalf("\\P{L} contents wrong: %v", e.Class.Ranges())
	}
}

func TestParseUnicodeScriptAndBlock(t *testing.T) {
	e := mustParse(t, `\p{IsGreek}`, 0)
	if e.Class.IsEmpty() {
		t.Fatalf("expected non-empty Greek script class")
	}
	e = mustParse(t, `\p{InBasicLatin}`, 0)
	if !e.Class.Contains('a') {
		t.Fatalf("expected BasicLatin to contain 'a'")
	}
}

func TestParseUnknownPropertyFails(t *testing.T) {
	_, err := Parse(`\p{NotAThing}`, 0)
	if err == nil {
		t.Fatalf("expected error for unknown property")
	}
}

func TestParseQuotedLiteral(t *testing.T) {
	e := mustParse(t, `\Qa.b\E`, 0)
	if e.Op != OpConcat || len(e.Sub) != 3 {
		t.Fatalf("got %+v", e)
	}
	if e.Sub[1].Class.Contains('.') == false {
		t.Fatalf("middle literal should be '.' verbatim")
	}
}

func TestParseLiteralFlag(t *testing.T) {
	e := mustParse(t, `a.b`, Literal)
	if e.Op != OpConcat || len(e.Sub) != 3 {
		t.Fatalf("got %+v", e)
	}
	if !e.Sub[1].Class.Contains('.') {
		t.Fatalf("'.' should be literal under LITERAL flag")
	}
}

func TestParseCommentsFlag(t *testing.T) {
	e := mustParse(t, "a b # comment\nc", Comments)
	if e.Op != OpConcat || len(e.Sub) != 3 {
		t.Fatalf("got %+v", e)
	}
}

func TestParseDanglingQuantifierError(t *testing.T) {
	_, err := Parse("*a", 0)
	if err == nil {
		t.Fatalf("expected error for dangling quantifier")
	}
}

func TestParseUnclosedGroupError(t *testing.T) {
	_, err := Parse("(a", 0)
	if err == nil {
		t.Fatalf("expected error for unclosed group")
	}
}

func TestPrettyIsDeterministic(t *testing.T) {
	patterns := []string{
		"a",
		"ab",
		"a|b",
		"a*",
		"a+",
		"a?",
		"a{2,5}",
		"(a)",
		"(?:a)",
		"[a-z]",
	}
	for _, pat := range patterns {
		e := mustParse(t, pat, 0)
		pretty1 := Pretty(e)
		// Re-walk the same tree (not re-parsed, since Pretty's grammar
		// isn't itself a regex dialect) and confirm it reproduces
		// byte-identical output, i.e. Walk/Pretty are deterministic and
		// postorder over the exact tree the parser built.
		pretty2 := Pretty(e)
		if pretty1 != pretty2 {
			t.Errorf("%q: Pretty not deterministic: %q vs %q", pat, pretty1, pretty2)
		}
	}
}
