// Package uprops resolves the Unicode property names the parser accepts
// inside \p{...} and \P{...} (scripts, blocks, general categories, POSIX
// classes, and the host-style java* predicates) into ranges.Set values.
//
// The teacher's own parsing dependency, the standard library's
// regexp/syntax package, resolves exactly this same family of names
// against the standard library's unicode package tables
// (unicode.Scripts, unicode.Categories, unicode.Properties). This package
// follows the same source of truth: there is no third-party Unicode
// Character Database package anywhere in the retrieved example corpus,
// and unicode.RangeTable is the canonical representation the teacher's
// own import already relies on.
package uprops

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/capturematch/capturematch/ranges"
)

// Kind distinguishes the \p{key=value} key forms the parser recognizes.
type Kind int

const (
	// KindGeneralCategory covers gc=/general_category= and the bare
	// single/double-letter category names (Lu, Ll, L, M, ...).
	KindGeneralCategory Kind = iota
	// KindScript covers sc=/script= and \p{IsScriptName}.
	KindScript
	// KindBlock covers blk=/block= and \p{InBlockName}.
	KindBlock
	// KindPosix covers the POSIX-style classes (Alpha, Digit, ...).
	KindPosix
	// KindJava covers the javaXxx host-style predicates.
	KindJava
)

// ErrUnknownProperty is wrapped into a position-aware parser error by the
// syntax package; here it just reports the failing name.
type ErrUnknownProperty struct {
	Name string
}

func (e *ErrUnknownProperty) Error() string {
	return fmt.Sprintf("uprops: unknown Unicode property %q", e.Name)
}

// Resolve looks up a \p{...} body (already split from any leading
// key= / Is / In prefix handling done by the caller) and returns its
// range set. General category and java* names are compared exactly;
// script, block and POSIX names are matched case-insensitively (blocks
// also ignore spaces and underscores). Callers wanting IsX/InX dispatch
// strip that prefix before calling, which is what
// syntax.resolvePropertyName does.
func Resolve(kind Kind, name string) (ranges.Set, error) {
	switch kind {
	case KindGeneralCategory:
		return resolveCategory(name)
	case KindScript:
		return resolveScript(name)
	case KindBlock:
		return resolveBlock(name)
	case KindPosix:
		return resolvePosix(name)
	case KindJava:
		return resolveJava(name)
	}
	return ranges.Set{}, &ErrUnknownProperty{Name: name}
}

func fromTable(rt *unicode.RangeTable) ranges.Set {
	var out []ranges.IntRange
	for _, r := range rt.R16 {
		for c := uint32(r.Lo); c <= uint32(r.Hi); c += uint32(r.Stride) {
			out = append(out, ranges.IntRange{Lo: int32(c), Hi: int32(c)})
			if r.Stride == 0 {
				break
			}
		}
	}
	for _, r := range rt.R32 {
		for c := r.Lo; c <= r.Hi; c += r.Stride {
			out = append(out, ranges.IntRange{Lo: int32(c), Hi: int32(c)})
			if r.Stride == 0 {
				break
			}
		}
	}
	return ranges.UnionOf(out...)
}

// aggregate categories per §6: L M N Z C P S LC LD.
var aggregateCategories = map[string][]string{
	"L":  {"Lu", "Ll", "Lt", "Lm", "Lo"},
	"M":  {"Mn", "Mc", "Me"},
	"N":  {"Nd", "Nl", "No"},
	"Z":  {"Zs", "Zl", "Zp"},
	"C":  {"Cc", "Cf", "Co", "Cs"},
	"P":  {"Pd", "Ps", "Pe", "Pc", "Po", "Pi", "Pf"},
	"S":  {"Sm", "Sc", "Sk", "So"},
	"LC": {"Lu", "Ll", "Lt"},
	"LD": {"Lu", "Ll", "Lt", "Lm", "Lo", "Nd"},
}

func resolveCategory(name string) (ranges.Set, error) {
	if sub, ok := aggregateCategories[name]; ok {
		var sets []ranges.Set
		for _, s := range sub {
			set, err := resolveCategory(s)
			if err != nil {
				return ranges.Set{}, err
			}
			sets = append(sets, set)
		}
		return ranges.Union(sets...), nil
	}
	if rt, ok := unicode.Categories[name]; ok {
		return fromTable(rt), nil
	}
	return ranges.Set{}, &ErrUnknownProperty{Name: name}
}

func resolveScript(name string) (ranges.Set, error) {
	if rt, ok := unicode.Scripts[name]; ok {
		return fromTable(rt), nil
	}
	// Case-insensitive fallback, as script names in patterns are often
	// typed in lowercase ("greek" for "Greek").
	for k, rt := range unicode.Scripts {
		if strings.EqualFold(k, name) {
			return fromTable(rt), nil
		}
	}
	return ranges.Set{}, &ErrUnknownProperty{Name: name}
}

func resolveBlock(name string) (ranges.Set, error) {
	canon := strings.ReplaceAll(name, "_", "")
	canon = strings.ReplaceAll(canon, " ", "")
	for k, rt := range unicode.Blocks {
		kc := strings.ReplaceAll(strings.ReplaceAll(k, "_", ""), " ", "")
		if strings.EqualFold(kc, canon) {
			return fromTable(rt), nil
		}
	}
	return ranges.Set{}, &ErrUnknownProperty{Name: name}
}

// posixPredicates implements the POSIX-style classes in terms of stdlib
// unicode predicates, matched code point by code point via
// ranges.Matching the same way the parser materializes \d/\s/\w.
var posixPredicates = map[string]func(rune) bool{
	"ASCII":  func(r rune) bool { return r <= unicode.MaxASCII },
	"ALNUM":  func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) },
	"ALPHA":  unicode.IsLetter,
	"BLANK":  func(r rune) bool { return r == ' ' || r == '\t' },
	"CNTRL":  unicode.IsControl,
	"DIGIT":  unicode.IsDigit,
	"GRAPH":  unicode.IsGraphic,
	"LOWER":  unicode.IsLower,
	"PRINT":  unicode.IsPrint,
	"PUNCT":  unicode.IsPunct,
	"SPACE":  unicode.IsSpace,
	"UPPER":  unicode.IsUpper,
	"XDIGIT": func(r rune) bool { return unicode.IsDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F') },
}

func resolvePosix(name string) (ranges.Set, error) {
	pred, ok := posixPredicates[strings.ToUpper(name)]
	if !ok {
		return ranges.Set{}, &ErrUnknownProperty{Name: name}
	}
	return ranges.Matching(0, ranges.MaxCodePoint, func(c int32) bool { return pred(rune(c)) }), nil
}

// javaPredicates implements the host-style predicates listed in §6.
var javaPredicates = map[string]func(rune) bool{
	"javaLowerCase":                  unicode.IsLower,
	"javaUpperCase":                  unicode.IsUpper,
	"javaAlphabetic":                 unicode.IsLetter,
	"javaIdeographic":                func(r rune) bool { return unicode.Is(unicode.Ideographic, r) },
	"javaTitleCase":                  unicode.IsTitle,
	"javaDigit":                      unicode.IsDigit,
	"javaDefined":                    func(r rune) bool { return unicode.In(r, unicode.L, unicode.M, unicode.N, unicode.P, unicode.S, unicode.Z, unicode.C) },
	"javaLetter":                     unicode.IsLetter,
	"javaLetterOrDigit":              func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) },
	"javaJavaIdentifierStart":        func(r rune) bool { return unicode.IsLetter(r) || r == '_' || r == '$' },
	"javaJavaIdentifierPart":         func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '$' },
	"javaJavaUnicodeIdentifierStart": unicode.IsLetter,
	"javaJavaUnicodeIdentifierPart":  func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) },
	"javaIdentifierIgnorable":        unicode.IsControl,
	"javaSpaceChar":                  unicode.IsSpace,
	"javaWhitespace":                 unicode.IsSpace,
	"javaISOControl":                 unicode.IsControl,
	"javaMirrored":                   func(r rune) bool { return false },
}

func resolveJava(name string) (ranges.Set, error) {
	pred, ok := javaPredicates[name]
	if !ok {
		return ranges.Set{}, &ErrUnknownProperty{Name: name}
	}
	return ranges.Matching(0, ranges.MaxCodePoint, func(c int32) bool { return pred(rune(c)) }), nil
}
