// Package asciiscan provides a cheap whole-ASCII check used to pick a
// faster byte-oriented literal scan over the general rune-oriented one.
//
// Grounded on the teacher's simd/ascii_amd64.go + simd/ascii_fallback.go
// dispatch shape (a vector fast path gated by a CPU feature check, with
// a scalar fallback) but without hand-written assembly: this module's
// unit of comparison is already []rune, not []byte, so there is no
// vector instruction to call here. What does generalize is the
// dispatch idea itself — size the scan's unrolled window by what the
// CPU's registers can hold, and OR-accumulate across the window instead
// of branching per element (the same trick ascii_fallback.go's scalar
// loop uses at 8-byte-word granularity).
package asciiscan

import "golang.org/x/sys/cpu"

// wordRunes is the unrolled-loop width IsASCII uses. It is not a vector
// width in the teacher's sense (there is no instruction being issued
// here) — it only controls how many runes are OR-accumulated before the
// accumulator is tested, which is wasted work on a narrow register and
// free on a wide one.
var wordRunes = func() int {
	if cpu.X86.HasAVX2 || cpu.ARM64.HasASIMD {
		return 8
	}
	return 4
}()

// IsASCII reports whether every rune in rs is below U+0080. An empty
// slice is trivially ASCII.
func IsASCII(rs []rune) bool {
	i := 0
	for ; i+wordRunes <= len(rs); i += wordRunes {
		var acc rune
		for _, r := range rs[i : i+wordRunes] {
			acc |= r
		}
		if acc >= 0x80 {
			return false
		}
	}
	for ; i < len(rs); i++ {
		if rs[i] >= 0x80 {
			return false
		}
	}
	return true
}
