package asciiscan

import "testing"

func TestIsASCIIEmpty(t *testing.T) {
	if !IsASCII(nil) {
		t.Fatalf("empty slice should be ASCII")
	}
}

func TestIsASCIIAllBelow128(t *testing.T) {
	if !IsASCII([]rune("hello, world! 123")) {
		t.Fatalf("expected all-ASCII input to report true")
	}
}

func TestIsASCIIRejectsNonASCII(t *testing.T) {
	if IsASCII([]rune("héllo")) {
		t.Fatalf("expected input containing U+00E9 to report false")
	}
}

func TestIsASCIIRejectsSupplementary(t *testing.T) {
	if IsASCII([]rune("a\U00010437c")) {
		t.Fatalf("expected input containing a supplementary code point to report false")
	}
}

func TestIsASCIILongRunCrossesWordBoundary(t *testing.T) {
	s := make([]rune, 0, 40)
	for i := 0; i < 40; i++ {
		s = append(s, 'a')
	}
	s = append(s, 'é')
	if IsASCII(s) {
		t.Fatalf("a non-ASCII rune past the first unrolled window should still be detected")
	}
}
