package dfa

import (
	"testing"

	"github.com/capturematch/capturematch/collapse"
	"github.com/capturematch/capturematch/syntax"
	"github.com/capturematch/capturematch/tagnfa"
)

func compileM2(t *testing.T, pattern string) (*collapse.NFA, int) {
	t.Helper()
	root, err := syntax.Parse(pattern, 0)
	if err != nil {
		t.Fatalf("Parse(%q): %v", pattern, err)
	}
	groupCount := 0
	var walk func(e *syntax.Expr)
	walk = func(e *syntax.Expr) {
		if e.Op == syntax.OpGroup && e.GroupIdx+1 > groupCount {
			groupCount = e.GroupIdx + 1
		}
		for _, s := range e.Sub {
			walk(s)
		}
	}
	walk(root)
	m1 := tagnfa.Compile(root, groupCount)
	return collapse.Build(m1), groupCount
}

func runMatch(t *testing.T, pattern, input string) Result {
	t.Helper()
	m2, groupCount := compileM2(t, pattern)
	r := Build(m2)
	tg := BuildTagger(m2, r)
	return Match(r, tg, groupCount, []rune(input))
}

func TestMatchLiteral(t *testing.T) {
	res := runMatch(t, "abc", "abc")
	if !res.Matched {
		t.Fatalf("expected \"abc\" to match \"abc\"")
	}
}

func TestMatchLiteralFailsOnMismatch(t *testing.T) {
	res := runMatch(t, "abc", "abd")
	if res.Matched {
		t.Fatalf("expected \"abc\" not to match \"abd\"")
	}
}

func TestMatchStarEmpty(t *testing.T) {
	res := runMatch(t, "a*", "")
	if !res.Matched {
		t.Fatalf("expected \"a*\" to match the empty string")
	}
}

func TestMatchStarRepeated(t *testing.T) {
	res := runMatch(t, "a*", "aaaa")
	if !res.Matched {
		t.Fatalf("expected \"a*\" to match \"aaaa\"")
	}
}

func TestMatchAlternation(t *testing.T) {
	for _, input := range []string{"cat", "dog"} {
		res := runMatch(t, "cat|dog", input)
		if !res.Matched {
			t.Fatalf("expected \"cat|dog\" to match %q", input)
		}
	}
	res := runMatch(t, "cat|dog", "fox")
	if res.Matched {
		t.Fatalf("expected \"cat|dog\" not to match \"fox\"")
	}
}

func TestMatchGroupBoundaries(t *testing.T) {
	res := runMatch(t, "(a)(b)", "ab")
	if !res.Matched {
		t.Fatalf("expected \"(a)(b)\" to match \"ab\"")
	}
	want := []int{0, 1, 1, 2}
	if len(res.Boundaries) != len(want) {
		t.Fatalf("boundaries length = %d, want %d", len(res.Boundaries), len(want))
	}
	for i, w := range want {
		if res.Boundaries[i] != w {
			t.Fatalf("Boundaries[%d] = %d, want %d", i, res.Boundaries[i], w)
		}
	}
}

func TestMatchOptionalGroupUnsetWhenSkipped(t *testing.T) {
	res := runMatch(t, "a(b)?", "a")
	if !res.Matched {
		t.Fatalf("expected \"a(b)?\" to match \"a\"")
	}
	if res.Boundaries[0] != -1 || res.Boundaries[1] != -1 {
		t.Fatalf("expected group 0 unset when skipped, got %v", res.Boundaries)
	}
}

func TestMatchGreedyStarPrefersLongestGroup(t *testing.T) {
	res := runMatch(t, "(a*)", "aaa")
	if !res.Matched {
		t.Fatalf("expected \"(a*)\" to match \"aaa\"")
	}
	if res.Boundaries[0] != 0 || res.Boundaries[1] != 3 {
		t.Fatalf("greedy a* should capture the whole run, got %v", res.Boundaries)
	}
}

func TestMatchLazyStarPrefersShortestGroup(t *testing.T) {
	res := runMatch(t, "(a*?)a", "aaa")
	if !res.Matched {
		t.Fatalf("expected \"(a*?)a\" to match \"aaa\"")
	}
	if res.Boundaries[0] != 0 || res.Boundaries[1] != 2 {
		t.Fatalf("lazy a*? followed by a mandatory a should capture as little as possible, got %v", res.Boundaries)
	}
}

func TestMatchBoundaryAssertionIsNoOp(t *testing.T) {
	// Per spec.md §9, boundary assertions are compiled with no group
	// side effects and no runtime position check: ^a$ behaves exactly
	// like the literal "a" against the engine's own input slice.
	res := runMatch(t, "^a$", "a")
	if !res.Matched {
		t.Fatalf("expected \"^a$\" to match \"a\"")
	}
}

func TestRecognizerAcceptsEmptyMatchForStar(t *testing.T) {
	m2, _ := compileM2(t, "a*")
	r := Build(m2)
	if !r.IsAccepting(StateID(0)) {
		t.Fatalf("\"a*\" should accept the empty string, so the reverse pass's un-consumed start state must be accepting")
	}
}

func TestRecognizerRejectsEmptyMatchForPlus(t *testing.T) {
	m2, _ := compileM2(t, "a+")
	r := Build(m2)
	if r.IsAccepting(StateID(0)) {
		t.Fatalf("\"a+\" requires at least one character, so the un-consumed start state must not be accepting")
	}
}
