// Package pattern implements the pattern algebra: a small set of
// combinators (character sets, sequencing, alternation, repetition, and a
// case-insensitive wrapper) that compose into an NFA fragment via
// AddToNFA, and that know how to reverse themselves via Reversed.
//
// Pattern is a tagged sum type rather than an interface-per-variant
// hierarchy: a single concrete type with a Kind field and a children
// slice is cheaper to walk and compare than a dozen small interface
// implementations, and keeps AddToNFA/Reversed as plain switches instead
// of virtual dispatch.
package pattern

import "github.com/coregx/dfalex/charclass"

// Kind discriminates Pattern's variants.
type Kind int

const (
	KChar Kind = iota
	KSeq
	KAlt
	KRepeat      // zero-or-more
	KMaybeRepeat // zero-or-more, always a distinct NFA start (see nfa_build.go)
	KMaybe
	KRepeat1 // one-or-more
	KCaseI   // case-insensitive wrapper
	KEmpty
)

// Pattern is an immutable, lazily-evaluated algebraic value. Zero value is
// not meaningful; construct with the functions below.
type Pattern struct {
	kind     Kind
	chars    charclass.CharRange
	children []Pattern
}

// Char returns a pattern matching exactly one code unit from r.
func Char(r charclass.CharRange) Pattern {
	return Pattern{kind: KChar, chars: r}
}

// Seq returns a pattern matching each of ps in order. Seq() (no children)
// is equivalent to Empty.
func Seq(ps ...Pattern) Pattern {
	if len(ps) == 0 {
		return Empty
	}
	if len(ps) == 1 {
		return ps[0]
	}
	return Pattern{kind: KSeq, children: append([]Pattern(nil), ps...)}
}

// Alt returns a pattern matching any one of ps. Alt() with no
// alternatives matches nothing at all (its NFA start has no outgoing
// edges), unlike Seq() which collapses to Empty.
func Alt(ps ...Pattern) Pattern {
	if len(ps) == 1 {
		return ps[0]
	}
	return Pattern{kind: KAlt, children: append([]Pattern(nil), ps...)}
}

// Repeat returns a pattern matching zero or more repetitions of p.
func Repeat(p Pattern) Pattern {
	return Pattern{kind: KRepeat, children: []Pattern{p}}
}

// MaybeRepeat returns a pattern matching zero or more repetitions of p,
// like Repeat, but it always allocates a distinct NFA start state even
// when p is Empty-equivalent. DfaBuilder relies on that when prepending a
// "scan anything" prefix to a reverse finder, where it needs a concrete
// state to ε-link into regardless of p's shape.
func MaybeRepeat(p Pattern) Pattern {
	return Pattern{kind: KMaybeRepeat, children: []Pattern{p}}
}

// Maybe returns a pattern matching zero or one occurrence of p.
func Maybe(p Pattern) Pattern {
	return Pattern{kind: KMaybe, children: []Pattern{p}}
}

// Repeat1 returns a pattern matching one or more repetitions of p.
func Repeat1(p Pattern) Pattern {
	return Pattern{kind: KRepeat1, children: []Pattern{p}}
}

// CaseI wraps p so every Char leaf it contains is expanded to its
// case-insensitive equivalent.
func CaseI(p Pattern) Pattern {
	return Pattern{kind: KCaseI, children: []Pattern{p}}
}

// Empty matches the empty string and consumes no input.
var Empty = Pattern{kind: KEmpty}

// Literal returns a pattern matching exactly the code units of s in
// order: sugar over Seq(Char(Single(c))...) that also doubles as the
// signal DfaBuilder's Aho-Corasick prefilter looks for (see
// AsLiteral).
func Literal(s string) Pattern {
	units := []uint16(nil)
	for _, r := range s {
		if r > 0xFFFF {
			// Outside the 16-bit code-unit universe; split into a UTF-16
			// surrogate pair so Literal never silently drops input.
			r -= 0x10000
			units = append(units, uint16(0xD800+(r>>10)), uint16(0xDC00+(r&0x3FF)))
			continue
		}
		units = append(units, uint16(r))
	}
	chars := make([]Pattern, len(units))
	for i, u := range units {
		chars[i] = Char(charclass.Single(u))
	}
	return Seq(chars...)
}

// RangeString returns a pattern matching exactly one code unit from the
// inclusive range [lo, hi].
func RangeString(lo, hi uint16) Pattern {
	return Char(charclass.Range(lo, hi))
}
