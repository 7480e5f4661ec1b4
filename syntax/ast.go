// Package syntax implements the recursive-descent parser and AST for the
// regex dialect this engine accepts: literals, character classes (with
// set algebra), Unicode blocks/scripts/properties, alternation,
// concatenation, greedy/lazy quantifiers, capturing/non-capturing
// groups, zero-width boundary assertions, and the common escapes.
// Possessive quantifiers, lookaround, and backreferences are rejected
// with UnsupportedError.
//
// Parse returns the AST as a tree of Expr nodes. The tagnfa compiler
// consumes it through the Visitor interface (see visitor.go), called in
// strict postorder by Walk; the capturematch façade and the literal
// extractor inspect and build Expr trees directly.
package syntax

import "github.com/capturematch/capturematch/ranges"

// Op identifies an Expr's constructor, mirroring spec.md §3's RegexAST
// sum type (Epsilon, CharacterClass, Concat, Alternation, Optional,
// Kleene, Plus, Repetition, Group, Boundary).
type Op int

const (
	OpEmpty Op = iota
	OpClass
	OpConcat
	OpAlternate
	OpOptional
	OpStar
	OpPlus
	OpRepeat
	OpGroup
	OpBoundary
)

// BoundaryKind enumerates the zero-width assertions §4.2 lists.
type BoundaryKind int

const (
	BoundaryStartLine  BoundaryKind = iota // ^ under MULTILINE
	BoundaryEndLine                        // $
	BoundaryStartText                      // \A
	BoundaryEndText                        // \z
	BoundaryEndTextish                     // \Z (like \z but allows trailing \n)
	BoundaryWord                           // \b
	BoundaryNotWord                        // \B
)

// Expr is one AST node. Concat and Alternate are n-ary (a flattening of
// spec.md's binary Concat(L,R)/Alternation(L,R) — associativity makes the
// two representations interchangeable, and n-ary avoids needlessly deep
// trees for long literals/alternations). Alternation order is preserved:
// Sub[0] is the preferred (leftmost) branch.
type Expr struct {
	Op       Op
	Sub      []*Expr
	Class    ranges.Set   // OpClass
	Lazy     bool         // OpOptional, OpStar, OpPlus, OpRepeat
	Min, Max int          // OpRepeat; Max == -1 means unbounded ({m,})
	GroupIdx int          // OpGroup; -1 means non-capturing
	Boundary BoundaryKind // OpBoundary
	Pos      int          // byte offset of the construct in the source pattern
}

func newExpr(op Op, pos int, sub ...*Expr) *Expr {
	return &Expr{Op: op, Pos: pos, Sub: sub, GroupIdx: -1, Max: -1}
}
