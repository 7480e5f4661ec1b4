package collapse

import (
	"testing"

	"github.com/capturematch/capturematch/syntax"
	"github.com/capturematch/capturematch/tagnfa"
)

func buildM2(t *testing.T, pattern string) *NFA {
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
	return Build(m1)
}

func TestCollapseLiteralReachesSingleCharState(t *testing.T) {
	m2 := buildM2(t, "ab")
	if len(m2.Start) == 0 {
		t.Fatalf("expected at least one reachable preserved state from start")
	}
}

func TestCollapseStarTransitionsBackToItself(t *testing.T) {
	m2 := buildM2(t, "a*")
	// From start, the preserved set should include both the char state
	// (loop taken) and the match state (loop skipped) since `a*` matches
	// the empty string too.
	foundMatch := false
	foundChar := false
	for id, path := range m2.Start {
		s := m2.M1.State(id)
		if s.IsMatch() {
			foundMatch = true
			_ = path
		}
		if _, _, ok := s.Char(); ok {
			foundChar = true
			if _, loops := m2.Transitions(id)[id]; !loops {
				t.Fatalf("a*'s char state %d should transition back to itself", id)
			}
		}
	}
	if !foundMatch {
		t.Fatalf("a* should reach Match directly from start (empty match)")
	}
	if !foundChar {
		t.Fatalf("a* should reach its char state directly from start")
	}
}

func TestCollapseGroupMarkersAppearInPath(t *testing.T) {
	m2 := buildM2(t, "(a)b")
	found := false
	for _, path := range m2.Start {
		for _, m := range path {
			if m.Kind == tagnfa.MarkerGroupStart && m.GroupIdx == 0 {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("expected a GroupStart(0) marker somewhere in the start paths for \"(a)b\"")
	}
}
