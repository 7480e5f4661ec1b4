package tagnfa

import (
	"fmt"

	"github.com/capturematch/capturematch/ranges"
	"github.com/capturematch/capturematch/syntax"
)

// Compile drives syntax.Walk over root (after syntax.Desugar removes
// bounded repetition) and returns the resulting M₁. groupCount is the
// number of explicit capturing groups root's parser allocated.
func Compile(root *syntax.Expr, groupCount int) *NFA {
	c := &compiler{b: NewBuilder()}
	desugared := syntax.Desugar(root)
	syntax.Walk(desugared, c)
	final := c.pop()
	match := c.b.addMatch()
	c.b.patchAll(final.outs, match)
	c.b.groupCount = groupCount
	return c.b.build(final.start)
}

// compiler implements syntax.Visitor, threading a stack of frag the
// same way the teacher's recursive-descent-over-regexp.Syntax compilers
// thread a stack of partially patched fragments: each Visit* pops its
// children's frags and pushes exactly one frag representing the whole
// construct.
type compiler struct {
	b     *Builder
	stack []frag
}

func (c *compiler) push(f frag) { c.stack = append(c.stack, f) }
func (c *compiler) pop() frag {
	n := len(c.stack)
	f := c.stack[n-1]
	c.stack = c.stack[:n-1]
	return f
}
func (c *compiler) popN(n int) []frag {
	out := make([]frag, n)
	copy(out, c.stack[len(c.stack)-n:])
	c.stack = c.stack[:len(c.stack)-n]
	return out
}

func (c *compiler) VisitEmpty() {
	id := c.b.addEps()
	c.push(frag{start: id, outs: []out{{id, 0}}})
}

func (c *compiler) VisitClass(set ranges.Set) {
	id := c.b.addChar(set)
	c.push(frag{start: id, outs: []out{{id, 0}}})
}

func (c *compiler) VisitBoundary(kind syntax.BoundaryKind) {
	id := c.b.addMark(PathMarker{Kind: MarkerBoundary, Boundary: convertBoundary(kind)})
	c.push(frag{start: id, outs: []out{{id, 0}}})
}

func (c *compiler) VisitConcat(n int) {
	frags := c.popN(n)
	for i := 0; i < n-1; i++ {
		c.b.patchAll(frags[i].outs, frags[i+1].start)
	}
	c.push(frag{start: frags[0].start, outs: frags[n-1].outs})
}

func (c *compiler) VisitAlternate(n int) {
	frags := c.popN(n)
	var outs []out
	for _, f := range frags {
		outs = append(outs, f.outs...)
	}
	next := frags[n-1].start
	for i := n - 2; i >= 0; i-- {
		fork := c.b.addFork()
		c.b.patch(out{fork, 0}, frags[i].start)
		c.b.patch(out{fork, 1}, next)
		next = fork
	}
	c.push(frag{start: next, outs: outs})
}

// Every Fork state's out1 edge is the Plus (preferred) branch and out2
// is Minus, uniformly — Alternation, Optional, Star and Plus all reduce
// to this one shape (spec.md §4.4.1: "Fork contributes Plus to q⁺,
// Minus to q⁻"). Package collapse reads that priority directly off
// out1/out2 when it initializes the M₂ reachability relaxation; no
// separate marker state is needed for it the way GroupStart/GroupEnd
// need one, since a fork's two branches already structurally are the
// two alternatives being prioritized.

func (c *compiler) VisitOptional(lazy bool) {
	f := c.pop()
	fork := c.b.addFork()
	var skipSlot int
	if lazy {
		// out1 (Plus) = skip, preferred; out2 (Minus) = consume.
		c.b.patch(out{fork, 1}, f.start)
		skipSlot = 0
	} else {
		c.b.patch(out{fork, 0}, f.start)
		skipSlot = 1
	}
	outs := append(append([]out{}, f.outs...), out{fork, skipSlot})
	c.push(frag{start: fork, outs: outs})
}

func (c *compiler) VisitStar(lazy bool) {
	f := c.pop()
	fork := c.b.addFork()
	var exitSlot int
	if lazy {
		c.b.patch(out{fork, 1}, f.start)
		exitSlot = 0
	} else {
		c.b.patch(out{fork, 0}, f.start)
		exitSlot = 1
	}
	c.b.patchAll(f.outs, fork)
	c.push(frag{start: fork, outs: []out{{fork, exitSlot}}})
}

func (c *compiler) VisitPlus(lazy bool) {
	f := c.pop()
	fork := c.b.addFork()
	var exitSlot int
	if lazy {
		c.b.patch(out{fork, 1}, f.start)
		exitSlot = 0
	} else {
		c.b.patch(out{fork, 0}, f.start)
		exitSlot = 1
	}
	c.b.patchAll(f.outs, fork)
	c.push(frag{start: f.start, outs: []out{{fork, exitSlot}}})
}

func (c *compiler) VisitRepeat(min, max int, lazy bool) {
	panic("tagnfa: VisitRepeat reached after Desugar; bounded repetition must be expanded first")
}

func (c *compiler) VisitGroup(idx int) {
	f := c.pop()
	if idx < 0 {
		c.push(f)
		return
	}
	startMark := c.b.addMark(PathMarker{Kind: MarkerGroupStart, GroupIdx: idx})
	endMark := c.b.addMark(PathMarker{Kind: MarkerGroupEnd, GroupIdx: idx})
	c.b.patch(out{startMark, 0}, f.start)
	c.b.patchAll(f.outs, endMark)
	c.push(frag{start: startMark, outs: []out{{endMark, 0}}})
}

func convertBoundary(k syntax.BoundaryKind) BoundaryKind {
	switch k {
	case syntax.BoundaryStartLine:
		return BoundaryStartLine
	case syntax.BoundaryEndLine:
		return BoundaryEndLine
	case syntax.BoundaryStartText:
		return BoundaryStartText
	case syntax.BoundaryEndText:
		return BoundaryEndText
	case syntax.BoundaryEndTextish:
		return BoundaryEndTextish
	case syntax.BoundaryWord:
		return BoundaryWord
	case syntax.BoundaryNotWord:
		return BoundaryNotWord
	default:
		panic(fmt.Sprintf("tagnfa: unhandled boundary kind %d", k))
	}
}
