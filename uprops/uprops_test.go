package uprops

import "testing"

func TestResolveGeneralCategory(t *testing.T) {
	s, err := Resolve(KindGeneralCategory, "Lu")
	if err != nil {
		t.Fatal(err)
	}
	if !s.Contains('A') || s.Contains('a') {
		t.Fatal("Lu should contain 'A' but not 'a'")
	}
}

func TestResolveAggregateCategory(t *testing.T) {
	s, err := Resolve(KindGeneralCategory, "L")
	if err != nil {
		t.Fatal(err)
	}
	if !s.Contains('A') || !s.Contains('a') {
		t.Fatal("L should contain both cases of letters")
	}
}

func TestResolveScript(t *testing.T) {
	s, err := Resolve(KindScript, "Greek")
	if err != nil {
		t.Fatal(err)
	}
	if !s.Contains(0x03B1) { // alpha
		t.Fatal("Greek script should contain U+03B1 (alpha)")
	}
	if s.Contains('A') {
		t.Fatal("Greek script should not contain Latin 'A'")
	}
}

func TestResolveBlock(t *testing.T) {
	s, err := Resolve(KindBlock, "Greek and Coptic")
	if err != nil {
		t.Fatal(err)
	}
	if !s.Contains(0x03B1) {
		t.Fatal("Greek block should contain U+03B1")
	}
}

func TestResolvePosix(t *testing.T) {
	s, err := Resolve(KindPosix, "Digit")
	if err != nil {
		t.Fatal(err)
	}
	if !s.Contains('5') || s.Contains('a') {
		t.Fatal("POSIX Digit should contain '5' but not 'a'")
	}
}

func TestResolveUnknown(t *testing.T) {
	if _, err := Resolve(KindGeneralCategory, "NotAThing"); err == nil {
		t.Fatal("expected error for unknown category")
	}
}

func TestResolveJava(t *testing.T) {
	s, err := Resolve(KindJava, "javaLowerCase")
	if err != nil {
		t.Fatal(err)
	}
	if !s.Contains('a') || s.Contains('A') {
		t.Fatal("javaLowerCase should contain 'a' but not 'A'")
	}
}
