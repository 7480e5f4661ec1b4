package tagnfa

import (
	"testing"

	"github.com/capturematch/capturematch/syntax"
)

func compileStr(t *testing.T, pattern string, flags syntax.Flags) *NFA {
	t.Helper()
	root, err := syntax.Parse(pattern, flags)
	if err != nil {
		t.Fatalf("Parse(%q): %v", pattern, err)
	}
	return Compile(root, countGroups(root))
}

// countGroups rescans the tree for the highest group index, the same way
// the capturematch façade computes the group count it passes to Compile.
func countGroups(e *syntax.Expr) int {
	max := -1
	var walk func(e *syntax.Expr)
	walk = func(e *syntax.Expr) {
		if e.Op == syntax.OpGroup && e.GroupIdx > max {
			max = e.GroupIdx
		}
		for _, s := range e.Sub {
			walk(s)
		}
	}
	walk(e)
	return max + 1
}

func TestCompileLiteralHasMatchState(t *testing.T) {
	nfa := compileStr(t, "ab", 0)
	var sawChar, sawMatch int
	for i := 0; i < nfa.NumStates(); i++ {
		s := nfa.State(StateID(i))
		if s.IsMatch() {
			sawMatch++
		}
		if _, _, ok := s.Char(); ok {
			sawChar++
		}
	}
	if sawMatch != 1 {
		t.Fatalf("expected exactly 1 match state, got %d", sawMatch)
	}
	if sawChar != 2 {
		t.Fatalf("expected 2 char states for \"ab\", got %d", sawChar)
	}
}

func TestCompileStarHasFork(t *testing.T) {
	nfa := compileStr(t, "a*", 0)
	var forks int
	for i := 0; i < nfa.NumStates(); i++ {
		s := nfa.State(StateID(i))
		if o1, o2, ok := s.Fork(); ok {
			forks++
			if o1 == InvalidState || o2 == InvalidState {
				t.Fatalf("fork has an unpatched branch: out1=%v out2=%v", o1, o2)
			}
		}
	}
	if forks != 1 {
		t.Fatalf("a*: expected 1 fork, got %d", forks)
	}
}

func TestCompileGroupMarkers(t *testing.T) {
	nfa := compileStr(t, "(a)", 0)
	var starts, ends int
	for i := 0; i < nfa.NumStates(); i++ {
		s := nfa.State(StateID(i))
		if m, _, ok := s.Mark(); ok {
			switch m.Kind {
			case MarkerGroupStart:
				starts++
			case MarkerGroupEnd:
				ends++
			}
		}
	}
	if starts != 1 || ends != 1 {
		t.Fatalf("(a): group starts=%d ends=%d", starts, ends)
	}
}

func TestLessPlusMinus(t *testing.T) {
	if !Less(PathMarker{Kind: MarkerPlus}, PathMarker{Kind: MarkerMinus}) {
		t.Fatalf("Plus should be Less than Minus")
	}
	if Less(PathMarker{Kind: MarkerMinus}, PathMarker{Kind: MarkerPlus}) {
		t.Fatalf("Minus should not be Less than Plus")
	}
}

func TestLessIncomparablePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic comparing incomparable markers")
		}
	}()
	Less(PathMarker{Kind: MarkerGroupStart}, PathMarker{Kind: MarkerGroupEnd})
}
