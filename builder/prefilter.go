package builder

import (
	"encoding/binary"

	"github.com/coregx/ahocorasick"
	"github.com/coregx/dfalex/pattern"
)

// LiteralPrefilter wraps an Aho-Corasick automaton over this builder's
// literal (non-repeating, fixed-sequence) patterns. The automaton indexes
// bytes while this module's alphabet is 16-bit code units, so each
// literal is encoded as its big-endian byte pairs before indexing;
// Find/IsMatch on the resulting automaton therefore expect a haystack
// encoded the same way (see EncodeCodeUnits).
//
// Used as a fast-reject prefilter ahead of a full DFA search: if every one
// of this builder's patterns is a plain literal and IsMatch reports false,
// no pattern can match anywhere in the haystack and the DFA search can be
// skipped entirely.
type LiteralPrefilter struct {
	automaton *ahocorasick.Automaton
}

// BuildLiteralPrefilter returns a LiteralPrefilter over every pattern in b
// that is a plain literal sequence (per pattern.AsLiteral), or ok=false if
// any pattern is not: a prefilter covering only some patterns could
// reject a haystack that actually matches one of the uncovered ones, so
// this is all-or-nothing.
func (b *DfaBuilder[Tag]) BuildLiteralPrefilter() (prefilter *LiteralPrefilter, ok bool, err error) {
	pb := ahocorasick.NewBuilder()
	foundAny := false
	for _, tag := range b.order {
		for _, p := range b.patterns[any(tag)] {
			units, isLiteral := pattern.AsLiteral(p)
			if !isLiteral {
				return nil, false, nil
			}
			pb.AddPattern(EncodeCodeUnits(units))
			foundAny = true
		}
	}
	if !foundAny {
		return nil, false, nil
	}
	auto, err := pb.Build()
	if err != nil {
		return nil, false, err
	}
	return &LiteralPrefilter{automaton: auto}, true, nil
}

// IsMatch reports whether any indexed literal's bytes occur anywhere in a
// haystack produced by EncodeCodeUnits. It can also report true for an
// occurrence at an odd byte offset that straddles two code units; it never
// reports false when a literal does occur.
func (f *LiteralPrefilter) IsMatch(encodedHaystack []byte) bool {
	return f.automaton.IsMatch(encodedHaystack)
}

// Find returns the (start, end) byte offsets, each double the
// corresponding code-unit offset, of the first indexed literal occurring
// at or after `at` in encodedHaystack, or ok=false if none occurs.
func (f *LiteralPrefilter) Find(encodedHaystack []byte, at int) (start, end int, ok bool) {
	m := f.automaton.Find(encodedHaystack, at)
	for m != nil && m.Start%2 != 0 {
		// A match at an odd byte offset straddles two code units and is
		// not an occurrence of the literal's code units; search on.
		m = f.automaton.Find(encodedHaystack, m.Start+1)
	}
	if m == nil {
		return 0, 0, false
	}
	return m.Start, m.End, true
}

// EncodeCodeUnits renders a []uint16 code-unit sequence (or haystack) as
// big-endian byte pairs, the wire shape LiteralPrefilter's underlying
// byte-oriented Aho-Corasick automaton requires.
func EncodeCodeUnits(units []uint16) []byte {
	out := make([]byte, len(units)*2)
	for i, u := range units {
		binary.BigEndian.PutUint16(out[i*2:], u)
	}
	return out
}
