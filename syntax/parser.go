package syntax

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/capturematch/capturematch/ranges"
	"github.com/capturematch/capturematch/uprops"
)

// Parse parses pattern under flags and returns its AST root. Compilers
// traverse it with Walk and their own Visitor; other consumers (the
// capturematch façade, the literal extractor) also inspect the tree
// directly.
//
// If wildcardPrefix is requested by the caller (see ParseFind), the
// returned tree is prefixed with a lazy `.*` the way spec.md §4.2
// describes, so that `find` semantics fall out of `lookingAt` without a
// separate search loop.
func Parse(pattern string, flags Flags) (*Expr, error) {
	return parse(pattern, flags, false)
}

// ParseFind is Parse with the implicit lazy `.*` prefix spliced in.
func ParseFind(pattern string, flags Flags) (*Expr, error) {
	return parse(pattern, flags, true)
}

func parse(pattern string, flags Flags, wildcardPrefix bool) (*Expr, error) {
	p := &parser{src: pattern, flags: flags, nextGroup: 0}
	if flags.has(Literal) {
		return p.parseLiteralFlag()
	}
	root, err := p.parseAlternation()
	if err != nil {
		return nil, err
	}
	if !p.eof() {
		return nil, p.errf("unexpected %q", p.rest())
	}
	if wildcardPrefix {
		dotStar := newExpr(OpStar, 0, newExpr(OpClass, 0))
		dotStar.Sub[0].Class = dotClass(flags)
		dotStar.Lazy = true
		root = newExpr(OpConcat, 0, dotStar, root)
	}
	return root, nil
}

type parser struct {
	src       string
	pos       int
	flags     Flags
	nextGroup int // next capture index to allocate, left-to-right at '('
}

func (p *parser) errf(format string, args ...any) error {
	return newSyntaxError(p.src, p.pos, format, args...)
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }
func (p *parser) rest() string {
	if p.pos >= len(p.src) {
		return ""
	}
	return p.src[p.pos:]
}

func (p *parser) peekByte() (byte, bool) {
	if p.eof() {
		return 0, false
	}
	return p.src[p.pos], true
}

func (p *parser) peekRune() (rune, int) {
	if p.eof() {
		return 0, 0
	}
	r, size := utf8.DecodeRuneInString(p.src[p.pos:])
	return r, size
}

func (p *parser) advanceRune() rune {
	r, size := p.peekRune()
	p.pos += size
	return r
}

func (p *parser) consumeByte(b byte) bool {
	if c, ok := p.peekByte(); ok && c == b {
		p.pos++
		return true
	}
	return false
}

func (p *parser) consumeString(s string) bool {
	if strings.HasPrefix(p.rest(), s) {
		p.pos += len(s)
		return true
	}
	return false
}

// skipIgnorable skips whitespace and #-comments when COMMENTS is set.
// Only called between top-level constructs, never inside a character
// class or \Q...\E span.
func (p *parser) skipIgnorable() {
	if !p.flags.has(Comments) {
		return
	}
	for !p.eof() {
		c := p.src[p.pos]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == 0x0B {
			p.pos++
			continue
		}
		if c == '#' {
			for !p.eof() {
				term := p.flags.has(UnixLines)
				c2, size := utf8.DecodeRuneInString(p.src[p.pos:])
				if c2 == '\n' || (!term && (c2 == '\r' || c2 == 0x85 || c2 == 0x2028 || c2 == 0x2029)) {
					break
				}
				p.pos += size
			}
			continue
		}
		break
	}
}

// --- grammar ---

func (p *parser) parseAlternation() (*Expr, error) {
	pos := p.pos
	first, err := p.parseConcat()
	if err != nil {
		return nil, err
	}
	branches := []*Expr{first}
	for {
		p.skipIgnorable()
		if !p.consumeByte('|') {
			break
		}
		next, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		branches = append(branches, next)
	}
	if len(branches) == 1 {
		return branches[0], nil
	}
	return newExpr(OpAlternate, pos, branches...), nil
}

func (p *parser) parseConcat() (*Expr, error) {
	pos := p.pos
	var parts []*Expr
	for {
		p.skipIgnorable()
		if p.eof() {
			break
		}
		c, _ := p.peekByte()
		if c == '|' || c == ')' {
			break
		}
		e, err := p.parseQuantified()
		if err != nil {
			return nil, err
		}
		if e != nil {
			parts = append(parts, e)
		}
	}
	if len(parts) == 0 {
		return newExpr(OpEmpty, pos), nil
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return newExpr(OpConcat, pos, parts...), nil
}

func (p *parser) parseQuantified() (*Expr, error) {
	startPos := p.pos
	atom, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for {
		c, ok := p.peekByte()
		if !ok {
			return atom, nil
		}
		switch c {
		case '*':
			p.pos++
			atom, err = p.wrapQuant(OpStar, startPos, atom)
		case '+':
			p.pos++
			atom, err = p.wrapQuant(OpPlus, startPos, atom)
		case '?':
			p.pos++
			atom, err = p.wrapQuant(OpOptional, startPos, atom)
		case '{':
			save := p.pos
			min, max, ok := p.tryParseBraceQuantifier()
			if !ok {
				p.pos = save
				return atom, nil
			}
			rep := newExpr(OpRepeat, startPos, atom)
			rep.Min, rep.Max = min, max
			rep.Lazy, err = p.consumeQuantifierSuffix()
			atom = rep
		default:
			return atom, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// wrapQuant wraps atom in a *,+,? node and consumes a trailing lazy `?`,
// rejecting a trailing possessive `+`.
func (p *parser) wrapQuant(op Op, pos int, atom *Expr) (*Expr, error) {
	e := newExpr(op, pos, atom)
	lazy, err := p.consumeQuantifierSuffix()
	if err != nil {
		return nil, err
	}
	e.Lazy = lazy
	return e, nil
}

// consumeQuantifierSuffix consumes a trailing `?` (lazy) after a
// quantifier, or rejects a trailing `+` (possessive, unsupported).
func (p *parser) consumeQuantifierSuffix() (bool, error) {
	c, ok := p.peekByte()
	if !ok {
		return false, nil
	}
	if c == '?' {
		p.pos++
		return true, nil
	}
	if c == '+' {
		return false, newUnsupported(p.src, p.pos, "possessive quantifier")
	}
	return false, nil
}

func (p *parser) tryParseBraceQuantifier() (min, max int, ok bool) {
	if !p.consumeByte('{') {
		return 0, 0, false
	}
	digitsStart := p.pos
	minStr := p.consumeDigits()
	if p.consumeByte(',') {
		maxStr := p.consumeDigits()
		if !p.consumeByte('}') {
			p.pos = digitsStart - 1
			return 0, 0, false
		}
		if minStr == "" && maxStr == "" {
			p.pos = digitsStart - 1
			return 0, 0, false
		}
		min = 0
		if minStr != "" {
			min, _ = strconv.Atoi(minStr)
		}
		if maxStr == "" {
			return min, -1, true
		}
		max, _ = strconv.Atoi(maxStr)
		return min, max, true
	}
	if minStr == "" || !p.consumeByte('}') {
		p.pos = digitsStart - 1
		return 0, 0, false
	}
	min, _ = strconv.Atoi(minStr)
	return min, min, true
}

func (p *parser) consumeDigits() string {
	start := p.pos
	for !p.eof() && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *parser) parseAtom() (*Expr, error) {
	pos := p.pos
	c, ok := p.peekByte()
	if !ok {
		return nil, p.errf("unexpected end of pattern")
	}
	switch c {
	case '(':
		return p.parseGroup()
	case '[':
		return p.parseClass()
	case '.':
		p.pos++
		e := newExpr(OpClass, pos)
		e.Class = dotClass(p.flags)
		return e, nil
	case '^':
		p.pos++
		if p.flags.has(Multiline) {
			return newExpr(OpBoundary, pos).setBoundary(BoundaryStartLine), nil
		}
		return newExpr(OpBoundary, pos).setBoundary(BoundaryStartText), nil
	case '$':
		p.pos++
		if p.flags.has(Multiline) {
			return newExpr(OpBoundary, pos).setBoundary(BoundaryEndLine), nil
		}
		return newExpr(OpBoundary, pos).setBoundary(BoundaryEndTextish), nil
	case '\\':
		return p.parseBackslash(false)
	case ')', '|':
		return nil, p.errf("unexpected %q", string(c))
	case '*', '+', '?':
		return nil, p.errf("dangling quantifier %q", string(c))
	default:
		r := p.advanceRune()
		e := newExpr(OpClass, pos)
		e.Class = literalClass(r, p.flags)
		return e, nil
	}
}

func (e *Expr) setBoundary(k BoundaryKind) *Expr {
	e.Boundary = k
	return e
}

// --- groups ---

func (p *parser) parseGroup() (*Expr, error) {
	pos := p.pos
	p.pos++ // consume '('
	saved := p.flags
	if p.consumeByte('?') {
		g, err := p.parseGroupAfterQuestion(pos)
		if err == nil && g.Op == OpGroup {
			p.flags = saved
		}
		return g, err
	}
	idx := p.nextGroup
	p.nextGroup++
	body, err := p.parseAlternation()
	p.flags = saved
	if err != nil {
		return nil, err
	}
	if !p.consumeByte(')') {
		return nil, p.errf("missing closing )")
	}
	g := newExpr(OpGroup, pos, body)
	g.GroupIdx = idx
	return g, nil
}

func (p *parser) parseGroupAfterQuestion(pos int) (*Expr, error) {
	c, ok := p.peekByte()
	if !ok {
		return nil, p.errf("truncated group")
	}
	switch c {
	case ':':
		p.pos++
		body, err := p.parseAlternation()
		if err != nil {
			return nil, err
		}
		if !p.consumeByte(')') {
			return nil, p.errf("missing closing )")
		}
		g := newExpr(OpGroup, pos, body)
		g.GroupIdx = -1
		return g, nil
	case '=', '!':
		return nil, newUnsupported(p.src, pos, "lookahead")
	case '<':
		p.pos++
		c2, ok := p.peekByte()
		if ok && (c2 == '=' || c2 == '!') {
			return nil, newUnsupported(p.src, pos, "lookbehind")
		}
		// named capture (?<name>...): accepted, name is not retained.
		for {
			b, ok := p.peekByte()
			if !ok {
				return nil, p.errf("truncated named group")
			}
			p.pos++
			if b == '>' {
				break
			}
		}
		idx := p.nextGroup
		p.nextGroup++
		body, err := p.parseAlternation()
		if err != nil {
			return nil, err
		}
		if !p.consumeByte(')') {
			return nil, p.errf("missing closing )")
		}
		g := newExpr(OpGroup, pos, body)
		g.GroupIdx = idx
		return g, nil
	default:
		return p.parseFlagsGroup(pos)
	}
}

// parseFlagsGroup handles (?flags:...), (?flags-flags:...), (?flags).
func (p *parser) parseFlagsGroup(pos int) (*Expr, error) {
	saved := p.flags
	add, sub, err := p.parseFlagLetters()
	if err != nil {
		return nil, err
	}
	newFlags := (p.flags | add) &^ sub
	if p.consumeByte(')') {
		// (?flags) — applies to the remainder of the enclosing group.
		p.flags = newFlags
		return newExpr(OpEmpty, pos), nil
	}
	if !p.consumeByte(':') {
		return nil, p.errf("expected ':' or ')' after inline flags")
	}
	p.flags = newFlags
	body, err := p.parseAlternation()
	p.flags = saved
	if err != nil {
		return nil, err
	}
	if !p.consumeByte(')') {
		return nil, p.errf("missing closing )")
	}
	g := newExpr(OpGroup, pos, body)
	g.GroupIdx = -1
	return g, nil
}

func (p *parser) parseFlagLetters() (add, sub Flags, err error) {
	neg := false
	sawAny := false
	for {
		c, ok := p.peekByte()
		if !ok {
			return 0, 0, p.errf("truncated inline flags")
		}
		var bit Flags
		switch c {
		case 'i':
			bit = CaseInsensitive
		case 'm':
			bit = Multiline
		case 's':
			bit = DotAll
		case 'u':
			bit = UnicodeCase
		case 'U':
			bit = UnicodeCharacterClass
		case 'x':
			bit = Comments
		case 'd':
			bit = UnixLines
		case '-':
			if neg {
				return 0, 0, p.errf("duplicate '-' in inline flags")
			}
			neg = true
			p.pos++
			continue
		case ':', ')':
			if !sawAny && !neg {
				return 0, 0, p.errf("empty inline flags")
			}
			return add, sub, nil
		default:
			return 0, 0, p.errf("unknown inline flag %q", string(c))
		}
		p.pos++
		sawAny = true
		if neg {
			sub |= bit
		} else {
			add |= bit
		}
	}
}

func (p *parser) parseLiteralFlag() (*Expr, error) {
	s := p.src
	if i := strings.Index(s, `\E`); i >= 0 {
		s = s[:i]
	}
	var parts []*Expr
	for _, r := range s {
		e := newExpr(OpClass, 0)
		e.Class = literalClass(r, p.flags)
		parts = append(parts, e)
	}
	if len(parts) == 0 {
		return newExpr(OpEmpty, 0), nil
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return newExpr(OpConcat, 0, parts...), nil
}

// --- escapes outside classes ---

func (p *parser) parseBackslash(inClass bool) (*Expr, error) {
	pos := p.pos
	p.pos++ // consume '\'
	c, ok := p.peekByte()
	if !ok {
		return nil, p.errf("trailing backslash")
	}

	if c == 'Q' {
		p.pos++
		return p.parseQuotedLiteral(pos)
	}

	if set, consumed, isClass := p.tryPredefinedClass(c); isClass {
		p.pos += consumed
		e := newExpr(OpClass, pos)
		e.Class = set
		return e, nil
	}

	if !inClass {
		switch c {
		case 'b':
			p.pos++
			return newExpr(OpBoundary, pos).setBoundary(BoundaryWord), nil
		case 'B':
			p.pos++
			return newExpr(OpBoundary, pos).setBoundary(BoundaryNotWord), nil
		case 'A':
			p.pos++
			return newExpr(OpBoundary, pos).setBoundary(BoundaryStartText), nil
		case 'Z':
			p.pos++
			return newExpr(OpBoundary, pos).setBoundary(BoundaryEndTextish), nil
		case 'z':
			p.pos++
			return newExpr(OpBoundary, pos).setBoundary(BoundaryEndText), nil
		}
	}

	if c == 'p' || c == 'P' {
		set, err := p.parseUnicodeProperty(c == 'P')
		if err != nil {
			return nil, err
		}
		e := newExpr(OpClass, pos)
		e.Class = set
		return e, nil
	}

	r, err := p.parseCharEscape()
	if err != nil {
		return nil, err
	}
	e := newExpr(OpClass, pos)
	e.Class = literalClass(r, p.flags)
	return e, nil
}

func (p *parser) parseQuotedLiteral(pos int) (*Expr, error) {
	end := strings.Index(p.rest(), `\E`)
	var lit string
	if end < 0 {
		lit = p.rest()
		p.pos = len(p.src)
	} else {
		lit = p.rest()[:end]
		p.pos += end + 2
	}
	if lit == "" {
		return newExpr(OpEmpty, pos), nil
	}
	var parts []*Expr
	for _, r := range lit {
		e := newExpr(OpClass, pos)
		e.Class = literalClass(r, p.flags)
		parts = append(parts, e)
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return newExpr(OpConcat, pos, parts...), nil
}

// parseCharEscape decodes a single-character escape: \a\e\f\t\r\n,
// \xHH, \x{H...H}, \uHHHH, \0ooo, \cX, punctuation escapes, or a bare
// escaped literal.
func (p *parser) parseCharEscape() (rune, error) {
	c := p.advanceRune()
	switch c {
	case 'a':
		return 0x07, nil
	case 'e':
		return 0x1B, nil
	case 'f':
		return 0x0C, nil
	case 't':
		return 0x09, nil
	case 'r':
		return 0x0D, nil
	case 'n':
		return 0x0A, nil
	case 'x':
		return p.parseHexEscape()
	case 'u':
		return p.parseFixedHex(4)
	case '0':
		return p.parseOctalEscape()
	case 'c':
		ctl := p.advanceRune()
		return ctl ^ 0x40, nil
	case 'N':
		return p.parseNamedChar()
	default:
		if c >= '1' && c <= '9' {
			return 0, newUnsupported(p.src, p.pos-1, "backreference")
		}
		if unicode.IsLetter(c) || unicode.IsDigit(c) {
			return 0, p.errf("unrecognized escape \\%c", c)
		}
		return c, nil
	}
}

func (p *parser) parseHexEscape() (rune, error) {
	if p.consumeByte('{') {
		start := p.pos
		for !p.eof() && p.src[p.pos] != '}' {
			p.pos++
		}
		hex := p.src[start:p.pos]
		if !p.consumeByte('}') {
			return 0, p.errf("unterminated \\x{...}")
		}
		v, err := strconv.ParseInt(hex, 16, 32)
		if err != nil {
			return 0, p.errf("invalid hex escape \\x{%s}", hex)
		}
		return rune(v), nil
	}
	return p.parseFixedHex(2)
}

func (p *parser) parseFixedHex(n int) (rune, error) {
	if p.pos+n > len(p.src) {
		return 0, p.errf("truncated hex escape")
	}
	hex := p.src[p.pos : p.pos+n]
	v, err := strconv.ParseInt(hex, 16, 32)
	if err != nil {
		return 0, p.errf("invalid hex escape %q", hex)
	}
	p.pos += n
	return rune(v), nil
}

func (p *parser) parseOctalEscape() (rune, error) {
	start := p.pos
	n := 0
	for n < 3 && !p.eof() && p.src[p.pos] >= '0' && p.src[p.pos] <= '7' {
		p.pos++
		n++
	}
	if p.pos == start {
		return 0, nil
	}
	v, _ := strconv.ParseInt(p.src[start:p.pos], 8, 32)
	return rune(v), nil
}

func (p *parser) parseNamedChar() (rune, error) {
	if !p.consumeByte('{') {
		return 0, p.errf(`expected '{' after \N`)
	}
	start := p.pos
	for !p.eof() && p.src[p.pos] != '}' {
		p.pos++
	}
	name := p.src[start:p.pos]
	if !p.consumeByte('}') {
		return 0, p.errf(`unterminated \N{...}`)
	}
	if strings.HasPrefix(name, "U+") {
		v, err := strconv.ParseInt(name[2:], 16, 32)
		if err == nil {
			return rune(v), nil
		}
	}
	return 0, p.errf("unknown character name %q", name)
}

// --- \p{...} ---

func (p *parser) parseUnicodeProperty(negate bool) (ranges.Set, error) {
	pos := p.pos
	p.pos++ // consume 'p'/'P'
	var name string
	if p.consumeByte('{') {
		start := p.pos
		for !p.eof() && p.src[p.pos] != '}' {
			p.pos++
		}
		name = p.src[start:p.pos]
		if !p.consumeByte('}') {
			return ranges.Set{}, p.errf("unterminated \\p{...}")
		}
	} else {
		name = string(p.advanceRune())
	}

	set, err := resolvePropertyName(name)
	if err != nil {
		return ranges.Set{}, newSyntaxError(p.src, pos, "%v", err)
	}
	if negate {
		return ranges.ComplementWithin(set, 0, ranges.MaxCodePoint), nil
	}
	return set, nil
}

func resolvePropertyName(name string) (ranges.Set, error) {
	if i := strings.IndexAny(name, "=:"); i >= 0 {
		key := strings.ToLower(name[:i])
		val := name[i+1:]
		switch key {
		case "sc", "script":
			return uprops.Resolve(uprops.KindScript, val)
		case "blk", "block":
			return uprops.Resolve(uprops.KindBlock, val)
		case "gc", "general_category":
			return uprops.Resolve(uprops.KindGeneralCategory, val)
		default:
			return ranges.Set{}, &uprops.ErrUnknownProperty{Name: name}
		}
	}
	if strings.HasPrefix(name, "Is") {
		rest := name[2:]
		if s, err := uprops.Resolve(uprops.KindScript, rest); err == nil {
			return s, nil
		}
		if s, err := uprops.Resolve(uprops.KindGeneralCategory, rest); err == nil {
			return s, nil
		}
		if s, err := uprops.Resolve(uprops.KindPosix, rest); err == nil {
			return s, nil
		}
		return ranges.Set{}, &uprops.ErrUnknownProperty{Name: name}
	}
	if strings.HasPrefix(name, "In") {
		return uprops.Resolve(uprops.KindBlock, name[2:])
	}
	if strings.HasPrefix(name, "java") {
		return uprops.Resolve(uprops.KindJava, name)
	}
	if s, err := uprops.Resolve(uprops.KindGeneralCategory, name); err == nil {
		return s, nil
	}
	if s, err := uprops.Resolve(uprops.KindPosix, name); err == nil {
		return s, nil
	}
	return ranges.Set{}, &uprops.ErrUnknownProperty{Name: name}
}

// --- predefined classes, dot, literal desugaring ---

func (p *parser) tryPredefinedClass(c byte) (ranges.Set, int, bool) {
	unicodeClass := p.flags.has(UnicodeCharacterClass)
	switch c {
	case 'd':
		return digitClass(unicodeClass), 1, true
	case 'D':
		return ranges.ComplementWithin(digitClass(unicodeClass), 0, ranges.MaxCodePoint), 1, true
	case 's':
		return spaceClass(unicodeClass), 1, true
	case 'S':
		return ranges.ComplementWithin(spaceClass(unicodeClass), 0, ranges.MaxCodePoint), 1, true
	case 'w':
		return wordClass(unicodeClass), 1, true
	case 'W':
		return ranges.ComplementWithin(wordClass(unicodeClass), 0, ranges.MaxCodePoint), 1, true
	case 'h':
		return hspaceClass(), 1, true
	case 'H':
		return ranges.ComplementWithin(hspaceClass(), 0, ranges.MaxCodePoint), 1, true
	case 'v':
		return vspaceClass(), 1, true
	case 'V':
		return ranges.ComplementWithin(vspaceClass(), 0, ranges.MaxCodePoint), 1, true
	}
	return ranges.Set{}, 0, false
}

func digitClass(unicodeClass bool) ranges.Set {
	if unicodeClass {
		s, err := uprops.Resolve(uprops.KindGeneralCategory, "Nd")
		if err == nil {
			return s
		}
	}
	return ranges.MustOf(ranges.IntRange{Lo: '0', Hi: '9'})
}

func spaceClass(unicodeClass bool) ranges.Set {
	if unicodeClass {
		return ranges.Matching(0, ranges.MaxCodePoint, func(c int32) bool { return unicode.IsSpace(rune(c)) })
	}
	return ranges.MustOf(
		ranges.IntRange{Lo: '\t', Hi: '\t'},
		ranges.IntRange{Lo: '\n', Hi: '\n'},
		ranges.IntRange{Lo: 0x0B, Hi: 0x0B},
		ranges.IntRange{Lo: '\f', Hi: '\f'},
		ranges.IntRange{Lo: '\r', Hi: '\r'},
		ranges.IntRange{Lo: ' ', Hi: ' '},
	)
}

func wordClass(unicodeClass bool) ranges.Set {
	if unicodeClass {
		return ranges.Matching(0, ranges.MaxCodePoint, func(c int32) bool {
			r := rune(c)
			return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r) || unicode.Is(unicode.Pc, r)
		})
	}
	return ranges.MustOf(
		ranges.IntRange{Lo: '0', Hi: '9'},
		ranges.IntRange{Lo: 'A', Hi: 'Z'},
		ranges.IntRange{Lo: '_', Hi: '_'},
		ranges.IntRange{Lo: 'a', Hi: 'z'},
	)
}

func hspaceClass() ranges.Set {
	return ranges.MustOf(
		ranges.IntRange{Lo: '\t', Hi: '\t'},
		ranges.IntRange{Lo: ' ', Hi: ' '},
		ranges.IntRange{Lo: 0xA0, Hi: 0xA0},
		ranges.IntRange{Lo: 0x1680, Hi: 0x1680},
		ranges.IntRange{Lo: 0x180E, Hi: 0x180E},
		ranges.IntRange{Lo: 0x2000, Hi: 0x200A},
		ranges.IntRange{Lo: 0x202F, Hi: 0x202F},
		ranges.IntRange{Lo: 0x205F, Hi: 0x205F},
		ranges.IntRange{Lo: 0x3000, Hi: 0x3000},
	)
}

func vspaceClass() ranges.Set {
	return ranges.MustOf(
		ranges.IntRange{Lo: '\n', Hi: '\n'},
		ranges.IntRange{Lo: 0x0B, Hi: 0x0B},
		ranges.IntRange{Lo: '\f', Hi: '\f'},
		ranges.IntRange{Lo: '\r', Hi: '\r'},
		ranges.IntRange{Lo: 0x85, Hi: 0x85},
		ranges.IntRange{Lo: 0x2028, Hi: 0x2029},
	)
}

// dotClass is the class `.` stands for. It covers the Basic Multilingual
// Plane only, so `.` never matches a supplementary code point.
func dotClass(flags Flags) ranges.Set {
	if flags.has(DotAll) {
		return ranges.MustOf(ranges.IntRange{Lo: 0, Hi: 0xFFFF})
	}
	terminators := []ranges.IntRange{{Lo: '\n', Hi: '\n'}}
	if !flags.has(UnixLines) {
		terminators = append(terminators,
			ranges.IntRange{Lo: '\r', Hi: '\r'},
			ranges.IntRange{Lo: 0x85, Hi: 0x85},
			ranges.IntRange{Lo: 0x2028, Hi: 0x2029},
		)
	}
	return ranges.ComplementWithin(ranges.UnionOf(terminators...), 0, 0xFFFF)
}

// literalClass turns a single literal code point into a one-element
// (or, under CASE_INSENSITIVE, case-folded multi-element) class.
func literalClass(r rune, flags Flags) ranges.Set {
	if !flags.has(CaseInsensitive) {
		return ranges.MustOf(ranges.Single(int32(r)))
	}
	variants := map[int32]bool{int32(r): true}
	if flags.has(UnicodeCase) {
		for _, v := range caseOrbit(r) {
			variants[int32(v)] = true
		}
	} else if r <= unicode.MaxASCII {
		variants[int32(unicode.ToUpper(r))] = true
		variants[int32(unicode.ToLower(r))] = true
	}
	var rs []ranges.IntRange
	for v := range variants {
		rs = append(rs, ranges.Single(v))
	}
	return ranges.UnionOf(rs...)
}

// caseOrbit returns every simple case variant of r (upper/lower/title),
// the same ASCII-plus-Unicode-tables case-folding scope spec.md §6
// describes for UNICODE_CASE.
func caseOrbit(r rune) []rune {
	return []rune{unicode.ToUpper(r), unicode.ToLower(r), unicode.ToTitle(r)}
}
