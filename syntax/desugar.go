package syntax

// Desugar rewrites e into an equivalent tree containing no OpRepeat
// nodes, expanding {m,n} into concatenated and optional/star copies of
// its operand. Compilers (tagnfa.Compile) call this before Walk so
// that a postorder Visitor — which sees a subexpression's compiled
// result exactly once — never needs to replay a subtree multiple
// times for a bounded repetition.
//
// {m}       -> m mandatory copies
// {m,}      -> m mandatory copies, then Star(lazy) of one more copy
// {m,n}     -> m mandatory copies, then (n-m) nested Optional(lazy) copies
//
// Repeated copies of a capturing group keep the same GroupIdx: later
// iterations simply overwrite the group's recorded boundary, which is
// the same behavior every repeat-capture regex dialect has.
func Desugar(e *Expr) *Expr {
	switch e.Op {
	case OpEmpty, OpClass, OpBoundary:
		return e
	case OpConcat, OpAlternate:
		sub := make([]*Expr, len(e.Sub))
		for i, s := range e.Sub {
			sub[i] = Desugar(s)
		}
		return &Expr{Op: e.Op, Sub: sub, GroupIdx: -1, Max: -1, Pos: e.Pos}
	case OpOptional, OpStar, OpPlus:
		inner := Desugar(e.Sub[0])
		return &Expr{Op: e.Op, Sub: []*Expr{inner}, Lazy: e.Lazy, GroupIdx: -1, Max: -1, Pos: e.Pos}
	case OpGroup:
		inner := Desugar(e.Sub[0])
		return &Expr{Op: OpGroup, Sub: []*Expr{inner}, GroupIdx: e.GroupIdx, Max: -1, Pos: e.Pos}
	case OpRepeat:
		return desugarRepeat(e)
	default:
		return e
	}
}

func desugarRepeat(e *Expr) *Expr {
	body := Desugar(e.Sub[0])
	min, max := e.Min, e.Max

	if min == 0 && max == 0 {
		return &Expr{Op: OpEmpty, GroupIdx: -1, Max: -1, Pos: e.Pos}
	}

	var parts []*Expr
	for i := 0; i < min; i++ {
		parts = append(parts, cloneExpr(body))
	}

	switch {
	case max == -1:
		star := &Expr{Op: OpStar, Sub: []*Expr{cloneExpr(body)}, Lazy: e.Lazy, GroupIdx: -1, Max: -1, Pos: e.Pos}
		parts = append(parts, star)
	case max > min:
		// Nested optionals so that `{m,n}` backtracks shallow-to-deep in
		// priority order matching greedy/lazy the same way a chain of
		// individually greedy/lazy `?` would.
		var tail *Expr
		for i := 0; i < max-min; i++ {
			copyBody := cloneExpr(body)
			if tail == nil {
				tail = &Expr{Op: OpOptional, Sub: []*Expr{copyBody}, Lazy: e.Lazy, GroupIdx: -1, Max: -1, Pos: e.Pos}
			} else {
				concat := &Expr{Op: OpConcat, Sub: []*Expr{copyBody, tail}, GroupIdx: -1, Max: -1, Pos: e.Pos}
				tail = &Expr{Op: OpOptional, Sub: []*Expr{concat}, Lazy: e.Lazy, GroupIdx: -1, Max: -1, Pos: e.Pos}
			}
		}
		if tail != nil {
			parts = append(parts, tail)
		}
	}

	if len(parts) == 0 {
		return &Expr{Op: OpEmpty, GroupIdx: -1, Max: -1, Pos: e.Pos}
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return &Expr{Op: OpConcat, Sub: parts, GroupIdx: -1, Max: -1, Pos: e.Pos}
}

// cloneExpr deep-copies the node structure. The underlying ranges.Set
// held by OpClass nodes is immutable (every ranges operation returns a
// new Set rather than mutating in place), so it's shared rather than
// copied.
func cloneExpr(e *Expr) *Expr {
	clone := &Expr{
		Op:       e.Op,
		Class:    e.Class,
		Lazy:     e.Lazy,
		Min:      e.Min,
		Max:      e.Max,
		GroupIdx: e.GroupIdx,
		Boundary: e.Boundary,
		Pos:      e.Pos,
	}
	if len(e.Sub) > 0 {
		clone.Sub = make([]*Expr, len(e.Sub))
		for i, s := range e.Sub {
			clone.Sub[i] = cloneExpr(s)
		}
	}
	return clone
}
