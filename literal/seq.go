// Package literal extracts required literal rune sequences from a parsed
// pattern for prefilter acceleration: before running the M₃/M₄ automata
// over a candidate span, find can first use a cheap multi-literal scan
// to skip straight to positions where a match could possibly start.
//
// Grounded on the teacher's literal/seq.go and literal/extractor.go,
// adapted from regexp/syntax.Regexp + []byte literals to this module's
// own syntax.Expr AST and []rune literals (the unit match.go already
// operates on).
package literal

import "sort"

// Literal is one required rune sequence a match may contain. Complete
// reports whether the sequence is the entire match (true) or merely a
// necessary prefix (false). ExtractPrefixes sets it for literals that
// span a whole fixed pattern (e.g. "abc") and clears it where the
// pattern continues past the literal; Seq's algebra carries it through.
type Literal struct {
	Runes    []rune
	Complete bool
}

// NewLiteral builds a Literal from a rune sequence.
func NewLiteral(r []rune, complete bool) Literal {
	return Literal{Runes: r, Complete: complete}
}

// Len returns the literal's length in runes.
func (l Literal) Len() int { return len(l.Runes) }

// Seq is a set of alternative literals, e.g. the two prefixes an
// alternation like (foo|bar).* requires.
type Seq struct {
	literals []Literal
}

// NewSeq builds a sequence from the given literals.
func NewSeq(lits ...Literal) *Seq { return &Seq{literals: lits} }

// Len returns the number of literals in the sequence.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// Get returns the literal at index i.
func (s *Seq) Get(i int) Literal { return s.literals[i] }

// IsEmpty reports whether the sequence carries no literals — meaning no
// prefilter can be built from this pattern (or subtree).
func (s *Seq) IsEmpty() bool { return s == nil || len(s.literals) == 0 }

// Minimize drops literals made redundant by a shorter literal already
// in the sequence that is one of its prefixes: any match containing
// "foobar" also contains "foo", so "foobar" adds nothing a prefilter
// keyed on "foo" doesn't already cover.
func (s *Seq) Minimize() {
	if s.IsEmpty() {
		return
	}
	sort.Slice(s.literals, func(i, j int) bool {
		return len(s.literals[i].Runes) < len(s.literals[j].Runes)
	})
	kept := make([]Literal, 0, len(s.literals))
	for _, cur := range s.literals {
		redundant := false
		for _, k := range kept {
			if isPrefix(k.Runes, cur.Runes) {
				redundant = true
				break
			}
		}
		if !redundant {
			kept = append(kept, cur)
		}
	}
	s.literals = kept
}

func isPrefix(prefix, r []rune) bool {
	if len(prefix) > len(r) {
		return false
	}
	for i, p := range prefix {
		if r[i] != p {
			return false
		}
	}
	return true
}

// crossProduct returns the concatenation of each complete literal from
// a with each literal from b; an inexact literal from a is kept once,
// unextended, since what follows it in the match is unknown. Pairs
// whose combined length exceeds maxLen are skipped, and the result is
// truncated once limit entries have been produced — the same blunt
// cutoff the teacher's extractor applies to OpConcat expansion rather
// than rejecting the pattern outright.
func crossProduct(a, b *Seq, maxLen, limit int) *Seq {
	if a.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return a
	}
	out := make([]Literal, 0, a.Len()*b.Len())
	for i := 0; i < a.Len(); i++ {
		if !a.Get(i).Complete {
			out = append(out, a.Get(i))
			if len(out) >= limit {
				return NewSeq(out...)
			}
			continue
		}
		for j := 0; j < b.Len(); j++ {
			la, lb := a.Get(i), b.Get(j)
			if la.Len()+lb.Len() > maxLen {
				continue
			}
			combined := make([]rune, 0, la.Len()+lb.Len())
			combined = append(combined, la.Runes...)
			combined = append(combined, lb.Runes...)
			out = append(out, Literal{Runes: combined, Complete: la.Complete && lb.Complete})
			if len(out) >= limit {
				return NewSeq(out...)
			}
		}
	}
	return NewSeq(out...)
}
