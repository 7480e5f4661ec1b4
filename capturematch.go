// Package capturematch implements the M₁→M₂→M₃→M₄ capture-extracting
// automata pipeline: a pattern compiles into a tagged NFA, collapses to
// an ε-free intermediate form, and from there builds a reverse-running
// recognizer DFA and a forward-running tagging DFA that together decide
// matches and place capture group boundaries in guaranteed O(n) time,
// without backtracking.
//
// Basic usage:
//
//	re, err := capturematch.Compile(`(\w+)@(\w+\.\w+)`, 0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if m := re.Find("contact: alice@example.com"); m != nil {
//	    fmt.Println(m.GroupString(1), m.GroupString(2))
//	}
package capturematch

import (
	"github.com/coregx/ahocorasick"

	"github.com/capturematch/capturematch/collapse"
	"github.com/capturematch/capturematch/dfa"
	"github.com/capturematch/capturematch/internal/asciiscan"
	"github.com/capturematch/capturematch/literal"
	"github.com/capturematch/capturematch/ranges"
	"github.com/capturematch/capturematch/syntax"
	"github.com/capturematch/capturematch/tagnfa"
)

// PatternError and UnsupportedError are re-exported so callers never
// need to import the syntax package just to type-switch on a Compile
// error.
type (
	PatternError     = syntax.PatternError
	UnsupportedError = syntax.UnsupportedError
)

// Flags controls parse-time pattern options; see syntax.Flags for the
// full bit table (§6).
type Flags = syntax.Flags

const (
	CaseInsensitive       = syntax.CaseInsensitive
	UnicodeCase           = syntax.UnicodeCase
	UnicodeCharacterClass = syntax.UnicodeCharacterClass
	Multiline             = syntax.Multiline
	DotAll                = syntax.DotAll
	UnixLines             = syntax.UnixLines
	Comments              = syntax.Comments
	Literal               = syntax.Literal
)

// automaton bundles one fully-built (M₂, M₃, M₄) pipeline plus the
// total number of capture slots its M₄ edges can address.
type automaton struct {
	r          *dfa.Recognizer
	tg         *dfa.Tagger
	slotGroups int // number of groups whose boundaries this automaton's Match fills (excludes the synthesized group 0)
}

func build(root *syntax.Expr, groupCount int) automaton {
	m1 := tagnfa.Compile(root, groupCount)
	m2 := collapse.Build(m1)
	r := dfa.Build(m2)
	tg := dfa.BuildTagger(m2, r)
	return automaton{r: r, tg: tg, slotGroups: groupCount}
}

func (a automaton) run(input []rune) dfa.Result {
	return dfa.Match(a.r, a.tg, a.slotGroups, input)
}

// CompiledPattern is an immutable, concurrency-safe compiled regular
// expression. Compile builds three independent automata atop the same
// parsed AST — one per entry point in §4.5 — since `matches` requires
// whole-input consumption while `lookingAt`/`find` must tolerate
// trailing unconsumed input, and the (M₃, M₄) construction this engine
// uses has no notion of "stop early"; the latter two entry points get
// that by compiling the pattern wrapped in a trailing lazy `.*` instead.
type CompiledPattern struct {
	source     string
	groupCount int // number of the user's own explicit capturing groups

	matchesAuto   automaton // exact AST, no wrapping: group 0 == whole input
	lookingAtAuto automaton // AST wrapped: (pattern).*?, synthetic outer group = groupCount
	findAuto      automaton // AST wrapped: .*?(pattern).*?, synthetic outer group = groupCount

	// prefilter rejects input that cannot possibly contain a match
	// without running the M₃/M₄ automata at all: if Compile derived a
	// required literal set for this pattern, any match must begin with
	// one of them somewhere in the input. Built with ahocorasick so the
	// whole set is scanned for in one pass over the input, the same way
	// the teacher's UseAhoCorasick strategy scans for large literal
	// alternations. nil when no such set could be derived.
	prefilter *ahocorasick.Automaton
}

// Config controls compilation, grounded on the teacher's meta.Config:
// this engine has no lazy-DFA/NFA fallback to choose between, so only
// the limits that affect correctness and memory survive here.
type Config struct {
	// MaxRecursionDepth bounds the group-counting/AST walks Compile
	// performs before handing the tree to tagnfa.Compile.
	MaxRecursionDepth int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{MaxRecursionDepth: 1000}
}

// Validate reports whether c's limits are usable.
func (c Config) Validate() error {
	if c.MaxRecursionDepth <= 0 {
		return &PatternError{Msg: "MaxRecursionDepth must be positive"}
	}
	return nil
}

// Compile parses pattern under flags and builds its three automata.
func Compile(pattern string, flags Flags) (*CompiledPattern, error) {
	return CompileWithConfig(pattern, flags, DefaultConfig())
}

// MustCompile is Compile, panicking on error.
func MustCompile(pattern string, flags Flags) *CompiledPattern {
	cp, err := Compile(pattern, flags)
	if err != nil {
		panic("capturematch: Compile(" + pattern + "): " + err.Error())
	}
	return cp
}

// CompileWithConfig is Compile with explicit compilation limits.
func CompileWithConfig(pattern string, flags Flags, config Config) (*CompiledPattern, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	root, err := syntax.Parse(pattern, flags)
	if err != nil {
		return nil, err
	}
	groupCount := countGroups(root, config.MaxRecursionDepth)

	lookingExpr := wrapForSearch(root, groupCount, false)
	findExpr := wrapForSearch(root, groupCount, true)

	prefixes := literal.New(literal.DefaultConfig()).ExtractPrefixes(root)
	prefixes.Minimize()

	return &CompiledPattern{
		source:        pattern,
		groupCount:    groupCount,
		matchesAuto:   build(root, groupCount),
		lookingAtAuto: build(lookingExpr, groupCount+1),
		findAuto:      build(findExpr, groupCount+1),
		prefilter:     buildPrefilter(prefixes),
	}, nil
}

// buildPrefilter compiles seq's literals into a single multi-pattern
// Aho-Corasick automaton Find can scan the input against in one pass,
// or nil if seq carries no literal a match is actually required to
// contain (empty, or the degenerate empty-string literal that matches
// everywhere and so can never reject anything).
func buildPrefilter(seq *literal.Seq) *ahocorasick.Automaton {
	if seq.IsEmpty() {
		return nil
	}
	builder := ahocorasick.NewBuilder()
	for i := 0; i < seq.Len(); i++ {
		lit := seq.Get(i).Runes
		if len(lit) == 0 {
			// An empty literal participates in every match, so no
			// automaton built from this set could ever reject input.
			return nil
		}
		builder.AddPattern(runesToBytes(lit))
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return auto
}

// runesToBytes converts rs to its UTF-8 encoding, using a direct
// byte-per-rune cast when internal/asciiscan confirms every rune fits
// in a single ASCII byte, and the general encoding otherwise.
func runesToBytes(rs []rune) []byte {
	if asciiscan.IsASCII(rs) {
		out := make([]byte, len(rs))
		for i, r := range rs {
			out[i] = byte(r)
		}
		return out
	}
	return []byte(string(rs))
}

// String returns the source pattern CompiledPattern was built from.
func (cp *CompiledPattern) String() string { return cp.source }

// NumGroups returns the number of the user's own explicit capturing
// groups (group 0, the whole match, is not counted here).
func (cp *CompiledPattern) NumGroups() int { return cp.groupCount }

// MatchResult is the outcome of a successful matches/lookingAt/find
// call: the input it ran against, plus every group's [start, end) rune
// offsets (group 0 is always present and spans the whole match; group k
// for k >= 1 is the user's k-th capturing group, or [-1,-1) if it did
// not participate).
type MatchResult struct {
	input      []rune
	boundaries []int // boundaries[2k], boundaries[2k+1], k = 0..NumGroups()
}

// Group returns the [start, end) rune offsets of the k-th group, or
// (-1, -1) if that group did not participate in the match.
func (m *MatchResult) Group(k int) (start, end int) {
	return m.boundaries[2*k], m.boundaries[2*k+1]
}

// GroupString returns the text of the k-th group, or "" if it did not
// participate.
func (m *MatchResult) GroupString(k int) string {
	start, end := m.Group(k)
	if start < 0 || end < 0 {
		return ""
	}
	return string(m.input[start:end])
}

func newMatchResult(input []rune, groupCount int) *MatchResult {
	boundaries := make([]int, 2*(groupCount+1))
	for i := range boundaries {
		boundaries[i] = -1
	}
	return &MatchResult{input: input, boundaries: boundaries}
}

// Matches treats the whole input as the candidate and requires the
// whole input to be consumed; returns nil if no match.
func (cp *CompiledPattern) Matches(input string) *MatchResult {
	runes := []rune(input)
	res := cp.matchesAuto.run(runes)
	if !res.Matched {
		return nil
	}
	mr := newMatchResult(runes, cp.groupCount)
	mr.boundaries[0], mr.boundaries[1] = 0, len(runes)
	copy(mr.boundaries[2:], res.Boundaries)
	return mr
}

// Check is an optimized variant of Matches that reports only whether a
// match exists, without materializing capture groups.
func (cp *CompiledPattern) Check(input string) bool {
	return cp.matchesAuto.run([]rune(input)).Matched
}

// LookingAt matches from position 0; the input may continue beyond the
// match. Returns nil if no match.
func (cp *CompiledPattern) LookingAt(input string) *MatchResult {
	runes := []rune(input)
	res := cp.lookingAtAuto.run(runes)
	if !res.Matched {
		return nil
	}
	return fromWrapped(runes, cp.groupCount, res)
}

// Find is LookingAt applied to a pattern prefixed with a lazy `.*`, so
// it locates the leftmost match anywhere in input. Returns nil if no
// match exists anywhere.
func (cp *CompiledPattern) Find(input string) *MatchResult {
	runes := []rune(input)
	if cp.prefilterRejects(runes) {
		return nil
	}
	res := cp.findAuto.run(runes)
	if !res.Matched {
		return nil
	}
	return fromWrapped(runes, cp.groupCount, res)
}

// prefilterRejects reports whether runes can be rejected without
// running the M₃/M₄ automata at all: if Compile derived a required
// literal set for this pattern, any match must contain at least one of
// those literals somewhere in runes, so their total absence — checked
// here with a single Aho-Corasick scan over every literal at once —
// rules a match out. A pattern with no required literal (e.g. it can
// start with any rune) never rejects.
func (cp *CompiledPattern) prefilterRejects(runes []rune) bool {
	if cp.prefilter == nil {
		return false
	}
	return !cp.prefilter.IsMatch(runesToBytes(runes))
}

// fromWrapped extracts a MatchResult from a lookingAt/find automaton's
// Result: the synthetic outer group (index groupCount, appended by
// wrapForSearch) holds the real match's span, which becomes group 0;
// the user's own groups 0..groupCount-1 carry straight through.
func fromWrapped(runes []rune, groupCount int, res dfa.Result) *MatchResult {
	mr := newMatchResult(runes, groupCount)
	mr.boundaries[0] = res.Boundaries[2*groupCount]
	mr.boundaries[1] = res.Boundaries[2*groupCount+1]
	copy(mr.boundaries[2:], res.Boundaries[:2*groupCount])
	return mr
}

// countGroups returns 1 + the maximum GroupIdx appearing in root, or 0
// if root has no capturing group — the rule §4.5 gives for group count.
func countGroups(root *syntax.Expr, maxDepth int) int {
	count := 0
	var walk func(e *syntax.Expr, depth int)
	walk = func(e *syntax.Expr, depth int) {
		if e == nil || depth > maxDepth {
			return
		}
		if e.Op == syntax.OpGroup && e.GroupIdx >= 0 && e.GroupIdx+1 > count {
			count = e.GroupIdx + 1
		}
		for _, s := range e.Sub {
			walk(s, depth+1)
		}
	}
	walk(root, 0)
	return count
}

// anyCodePoint is the full legal code point range, used only to build
// the trailing/leading wildcard wrapForSearch splices in: it exists
// purely to consume input structurally, not to express any "." dot
// semantics, so it is never subject to DotAll/UnixLines.
func anyCodePoint() ranges.Set {
	r, err := ranges.NewRange(ranges.MinCodePoint, ranges.MaxCodePoint)
	if err != nil {
		panic("capturematch: invalid full code point range: " + err.Error())
	}
	return ranges.MustOf(r)
}

func wildcardStar(lazy bool) *syntax.Expr {
	return &syntax.Expr{
		Op:       syntax.OpStar,
		Sub:      []*syntax.Expr{{Op: syntax.OpClass, Class: anyCodePoint(), GroupIdx: -1, Max: -1}},
		Lazy:     lazy,
		GroupIdx: -1,
		Max:      -1,
	}
}

// wrapForSearch builds the AST lookingAt/find actually compile: the
// user's pattern wrapped in a synthetic capturing group at index
// groupCount (so its span recovers the real match after the whole-tree
// Match call, which always requires full consumption), followed by a
// lazy `.*` that soaks up whatever of the input lies beyond the real
// match. withLeadingWildcard additionally prepends an ungrouped lazy
// `.*`, giving `find`'s leftmost-anywhere search per spec.md §4.5.
func wrapForSearch(root *syntax.Expr, groupCount int, withLeadingWildcard bool) *syntax.Expr {
	group := &syntax.Expr{Op: syntax.OpGroup, Sub: []*syntax.Expr{root}, GroupIdx: groupCount, Max: -1}
	parts := make([]*syntax.Expr, 0, 3)
	if withLeadingWildcard {
		parts = append(parts, wildcardStar(true))
	}
	parts = append(parts, group, wildcardStar(true))
	return &syntax.Expr{Op: syntax.OpConcat, Sub: parts, GroupIdx: -1, Max: -1}
}
