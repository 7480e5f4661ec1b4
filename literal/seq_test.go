package literal

import "testing"

func runes(s string) []rune { return []rune(s) }

func TestSeqMinimizeDropsRedundantPrefix(t *testing.T) {
	s := NewSeq(
		NewLiteral(runes("foo"), true),
		NewLiteral(runes("foobar"), true),
	)
	s.Minimize()
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	if string(s.Get(0).Runes) != "foo" {
		t.Fatalf("Get(0) = %q, want \"foo\"", string(s.Get(0).Runes))
	}
}

func TestSeqMinimizeKeepsDisjointLiterals(t *testing.T) {
	s := NewSeq(
		NewLiteral(runes("hello"), true),
		NewLiteral(runes("world"), true),
	)
	s.Minimize()
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
}

func TestCrossProductConcatenatesPairwise(t *testing.T) {
	a := NewSeq(NewLiteral(runes("ag"), true))
	b := NewSeq(
		NewLiteral(runes("a"), true),
		NewLiteral(runes("c"), true),
		NewLiteral(runes("t"), true),
	)
	out := crossProduct(a, b, 64, 250)
	if out.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", out.Len())
	}
	want := map[string]bool{"aga": true, "agc": true, "agt": true}
	for i := 0; i < out.Len(); i++ {
		if !want[string(out.Get(i).Runes)] {
			t.Fatalf("unexpected literal %q", string(out.Get(i).Runes))
		}
	}
}

func TestCrossProductRespectsMaxLen(t *testing.T) {
	a := NewSeq(NewLiteral(runes("abc"), true))
	b := NewSeq(NewLiteral(runes("de"), true))
	out := crossProduct(a, b, 4, 250)
	if out.Len() != 0 {
		t.Fatalf("Len() = %d, want 0 (combined length exceeds maxLen)", out.Len())
	}
}

func TestEmptySeqIsEmpty(t *testing.T) {
	var s *Seq
	if !s.IsEmpty() {
		t.Fatalf("nil *Seq should be empty")
	}
	if NewSeq().Len() != 0 {
		t.Fatalf("NewSeq() should have Len() 0")
	}
}
