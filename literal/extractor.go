package literal

import "github.com/capturematch/capturematch/syntax"

// ExtractorConfig bounds how aggressively Extractor expands a pattern
// into literals, with four knobs: MaxLiterals caps alternation/class
// fan-out, MaxLiteralLen caps a single literal's length, MaxClassSize
// caps which OpClass nodes get expanded into per-rune literals at all,
// and CrossProductLimit caps how many literals one concatenation step
// may produce.
type ExtractorConfig struct {
	MaxLiterals       int
	MaxLiteralLen     int
	MaxClassSize      int
	CrossProductLimit int
}

// DefaultConfig returns the defaults the teacher tunes for typical
// patterns.
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals:       64,
		MaxLiteralLen:     64,
		MaxClassSize:      10,
		CrossProductLimit: 250,
	}
}

// Extractor walks a parsed pattern's syntax.Expr tree and extracts the
// literal rune sequences that must appear at the start of any match —
// the prefix a find call can hand to a multi-literal scanner before
// ever running the M₃/M₄ automata.
type Extractor struct {
	config ExtractorConfig
}

// New builds an Extractor with the given configuration.
func New(config ExtractorConfig) *Extractor { return &Extractor{config: config} }

// ExtractPrefixes returns the literal sequences every match of e must
// begin with, or an empty Seq if no such requirement can be derived
// (e.g. the pattern starts with a wildcard or large class).
func (ex *Extractor) ExtractPrefixes(e *syntax.Expr) *Seq {
	return ex.extract(e, 0)
}

func (ex *Extractor) extract(e *syntax.Expr, depth int) *Seq {
	if depth > 100 || e == nil {
		return NewSeq()
	}

	switch e.Op {
	case syntax.OpEmpty, syntax.OpBoundary:
		return NewSeq(NewLiteral(nil, true))

	case syntax.OpClass:
		return ex.expandClass(e)

	case syntax.OpGroup:
		if len(e.Sub) == 0 {
			return NewSeq()
		}
		return ex.extract(e.Sub[0], depth+1)

	case syntax.OpConcat:
		return ex.extractConcat(e, depth)

	case syntax.OpAlternate:
		var lits []Literal
		for _, sub := range e.Sub {
			seq := ex.extract(sub, depth+1)
			if seq.IsEmpty() {
				return NewSeq()
			}
			for i := 0; i < seq.Len(); i++ {
				lits = append(lits, seq.Get(i))
				if len(lits) > ex.config.MaxLiterals {
					return NewSeq()
				}
			}
		}
		return NewSeq(lits...)

	case syntax.OpRepeat:
		if e.Min >= 1 && len(e.Sub) > 0 {
			inner := ex.extract(e.Sub[0], depth+1)
			markInexact(inner)
			return inner
		}
		return NewSeq()

	case syntax.OpPlus:
		if len(e.Sub) > 0 {
			inner := ex.extract(e.Sub[0], depth+1)
			markInexact(inner)
			return inner
		}
		return NewSeq()

	case syntax.OpStar, syntax.OpOptional:
		// Zero occurrences are always legal, so no prefix is required.
		return NewSeq()

	default:
		return NewSeq()
	}
}

// extractConcat cross-products each sub-expression's contribution in
// turn, stopping (and marking the accumulator inexact) the first time a
// sub-expression cannot contribute a bounded set of literals — mirrors
// the teacher's extractPrefixesConcat, generalized from []byte to
// []rune and from regexp/syntax.Regexp to syntax.Expr.
func (ex *Extractor) extractConcat(e *syntax.Expr, depth int) *Seq {
	crossLimit := ex.config.CrossProductLimit
	if crossLimit <= 0 {
		crossLimit = 250
	}

	acc := NewSeq(NewLiteral(nil, true))
	for _, sub := range e.Sub {
		if !ex.hasAnyExact(acc) {
			break
		}
		contribution := ex.concatContribution(sub, depth)
		if contribution == nil {
			markInexact(acc)
			break
		}
		acc = crossProduct(acc, contribution, ex.config.MaxLiteralLen, crossLimit)
		if acc.Len() > ex.config.MaxLiterals {
			markInexact(acc)
			break
		}
	}
	if acc.Len() == 1 && acc.Get(0).Len() == 0 {
		return NewSeq()
	}
	return acc
}

// concatContribution returns what a single sub-expression inside a
// concatenation contributes to cross-product expansion, or nil if it
// cannot be expressed as a bounded literal set at all (a wildcard class,
// unbounded repetition, etc).
func (ex *Extractor) concatContribution(sub *syntax.Expr, depth int) *Seq {
	switch sub.Op {
	case syntax.OpEmpty, syntax.OpBoundary:
		return NewSeq(NewLiteral(nil, true))

	case syntax.OpClass:
		expanded := ex.expandClass(sub)
		if expanded.IsEmpty() {
			return nil
		}
		return expanded

	case syntax.OpAlternate:
		var lits []Literal
		for _, branch := range sub.Sub {
			seq := ex.extract(branch, depth+1)
			if seq.IsEmpty() {
				return nil
			}
			for i := 0; i < seq.Len(); i++ {
				lits = append(lits, seq.Get(i))
				if len(lits) > ex.config.MaxLiterals {
					return nil
				}
			}
		}
		return NewSeq(lits...)

	case syntax.OpGroup:
		if len(sub.Sub) == 0 {
			return nil
		}
		return ex.concatContribution(sub.Sub[0], depth)

	case syntax.OpConcat:
		seq := ex.extractConcat(sub, depth+1)
		if seq.IsEmpty() {
			return nil
		}
		return seq

	default:
		return nil
	}
}

func (ex *Extractor) hasAnyExact(s *Seq) bool {
	for i := 0; i < s.Len(); i++ {
		if s.Get(i).Complete {
			return true
		}
	}
	return false
}

// expandClass returns a one-rune literal for a singleton class (the
// common case: syntax has no separate OpLiteral, a literal rune parses
// to a one-member OpClass) or expands a class with at most MaxClassSize
// members into one literal per rune; a larger class yields an empty Seq.
func (ex *Extractor) expandClass(e *syntax.Expr) *Seq {
	count := e.Class.Count()
	if count == 0 || count > int64(ex.config.MaxClassSize) {
		return NewSeq()
	}
	var lits []Literal
	for _, r := range e.Class.Ranges() {
		for c := r.Lo; c <= r.Hi; c++ {
			lits = append(lits, NewLiteral([]rune{rune(c)}, true))
		}
	}
	return NewSeq(lits...)
}

func markInexact(s *Seq) {
	for i := range s.literals {
		s.literals[i].Complete = false
	}
}
