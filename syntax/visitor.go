package syntax

import (
	"fmt"
	"strings"

	"github.com/capturematch/capturematch/ranges"
)

// Visitor is the contract between the parser and its consumers (the M₁
// compiler in package tagnfa, and the pretty-printer below used by the
// parser tests). Walk invokes these methods in strict
// postorder: every child's events precede its parent's.
//
// Capture-group indices are not something the visitor assigns: they are
// allocated during parsing, left-to-right at each opening parenthesis
// (see parseGroup), independent of traversal order.
type Visitor interface {
	VisitEmpty()
	VisitClass(set ranges.Set)
	VisitBoundary(kind BoundaryKind)
	// VisitConcat/VisitAlternate fire after all n children have already
	// been visited; the visitor is expected to have accumulated n
	// sub-results on its own stack and pop them here.
	VisitConcat(n int)
	VisitAlternate(n int)
	VisitOptional(lazy bool)
	VisitStar(lazy bool)
	VisitPlus(lazy bool)
	VisitRepeat(min, max int, lazy bool)
	VisitGroup(idx int)
}

// Walk drives v over e in strict postorder.
func Walk(e *Expr, v Visitor) {
	switch e.Op {
	case OpEmpty:
		v.VisitEmpty()
	case OpClass:
		v.VisitClass(e.Class)
	case OpBoundary:
		v.VisitBoundary(e.Boundary)
	case OpConcat:
		for _, s := range e.Sub {
			Walk(s, v)
		}
		v.VisitConcat(len(e.Sub))
	case OpAlternate:
		for _, s := range e.Sub {
			Walk(s, v)
		}
		v.VisitAlternate(len(e.Sub))
	case OpOptional:
		Walk(e.Sub[0], v)
		v.VisitOptional(e.Lazy)
	case OpStar:
		Walk(e.Sub[0], v)
		v.VisitStar(e.Lazy)
	case OpPlus:
		Walk(e.Sub[0], v)
		v.VisitPlus(e.Lazy)
	case OpRepeat:
		Walk(e.Sub[0], v)
		v.VisitRepeat(e.Min, e.Max, e.Lazy)
	case OpGroup:
		Walk(e.Sub[0], v)
		v.VisitGroup(e.GroupIdx)
	default:
		panic(fmt.Sprintf("syntax: Walk: unhandled Op %d", e.Op))
	}
}

// Pretty renders e into an s-expression-ish notation (classes as decimal
// code point ranges) for tests and debugging. The output is not regex
// syntax and cannot be fed back to Parse.
func Pretty(e *Expr) string {
	p := &prettyPrinter{}
	Walk(e, p)
	return p.pop()
}

type prettyPrinter struct{ stack []string }

func (p *prettyPrinter) push(s string) { p.stack = append(p.stack, s) }
func (p *prettyPrinter) pop() string {
	n := len(p.stack)
	s := p.stack[n-1]
	p.stack = p.stack[:n-1]
	return s
}
func (p *prettyPrinter) popN(n int) []string {
	out := make([]string, n)
	copy(out, p.stack[len(p.stack)-n:])
	p.stack = p.stack[:len(p.stack)-n]
	return out
}

func (p *prettyPrinter) VisitEmpty() { p.push("(eps)") }
func (p *prettyPrinter) VisitClass(set ranges.Set) {
	var b strings.Builder
	b.WriteString("[")
	for _, r := range set.Ranges() {
		if r.Lo == r.Hi {
			fmt.Fprintf(&b, "%d", r.Lo)
		} else {
			fmt.Fprintf(&b, "%d-%d", r.Lo, r.Hi)
		}
	}
	b.WriteString("]")
	p.push(b.String())
}
func (p *prettyPrinter) VisitBoundary(kind BoundaryKind) {
	p.push(fmt.Sprintf("(bound %d)", kind))
}
func (p *prettyPrinter) VisitConcat(n int) {
	p.push("(cat " + strings.Join(p.popN(n), " ") + ")")
}
func (p *prettyPrinter) VisitAlternate(n int) {
	p.push("(alt " + strings.Join(p.popN(n), " ") + ")")
}
func (p *prettyPrinter) VisitOptional(lazy bool) {
	p.push(fmt.Sprintf("(opt %v %s)", lazy, p.pop()))
}
func (p *prettyPrinter) VisitStar(lazy bool) {
	p.push(fmt.Sprintf("(star %v %s)", lazy, p.pop()))
}
func (p *prettyPrinter) VisitPlus(lazy bool) {
	p.push(fmt.Sprintf("(plus %v %s)", lazy, p.pop()))
}
func (p *prettyPrinter) VisitRepeat(min, max int, lazy bool) {
	p.push(fmt.Sprintf("(rep %d %d %v %s)", min, max, lazy, p.pop()))
}
func (p *prettyPrinter) VisitGroup(idx int) {
	p.push(fmt.Sprintf("(group %d %s)", idx, p.pop()))
}
