// Package charclass implements immutable sets of 16-bit code units
// ("CharRange"), the boolean algebra over them, and the Unicode category
// and case-fold tables patterns are built from.
//
// A CharRange is a sorted list of boundary points where membership flips,
// over the full code-unit universe [0, 0xFFFF]. A boundary list is a value
// in its own right rather than a fixed-size bitset, since patterns
// routinely need ranges spanning the whole alphabet (e.g. Unicode
// categories).
package charclass

import "sort"

// maxCodeUnit is the largest representable 16-bit code unit.
const maxCodeUnit = 0xFFFF

// CharRange is an immutable sorted list of boundary code units b0 < b1 < ...
// A code unit c is a member of the set iff the number of boundaries <= c is
// odd. The boundary list has even length unless the set includes 0xFFFF, in
// which case it has odd length (the final unbounded interval runs to
// infinity but the representable universe caps at 0xFFFF).
type CharRange struct {
	bounds []uint16
}

// All is the CharRange containing every code unit.
func All() CharRange { return CharRange{bounds: []uint16{0}} }

// None is the empty CharRange.
func None() CharRange { return CharRange{} }

// Single returns the CharRange containing exactly c.
func Single(c uint16) CharRange { return rangeOf(c, c) }

// Range returns the CharRange containing the inclusive interval [lo, hi].
// If lo > hi the result is None.
func Range(lo, hi uint16) CharRange {
	if lo > hi {
		return None()
	}
	return rangeOf(lo, hi)
}

func rangeOf(lo, hi uint16) CharRange {
	if hi == maxCodeUnit {
		return CharRange{bounds: []uint16{lo}}
	}
	return CharRange{bounds: []uint16{lo, hi + 1}}
}

// AnyOf returns the CharRange containing exactly the given code units.
func AnyOf(chars ...uint16) CharRange {
	b := NewBuilder()
	for _, c := range chars {
		b.Add(Single(c))
	}
	return b.Build()
}

// NotAnyOf returns the complement of AnyOf(chars...).
func NotAnyOf(chars ...uint16) CharRange {
	return AnyOf(chars...).Complement()
}

// IsEmpty reports whether the set contains no code units.
func (r CharRange) IsEmpty() bool { return len(r.bounds) == 0 }

// Contains reports whether c is a member of the set.
//
// A code unit is a member iff the count of boundaries <= c is odd. Since
// bounds is sorted, this is sort.Search for the insertion point of c+1 (the
// number of boundaries strictly <= c).
func (r CharRange) Contains(c uint16) bool {
	idx := sort.Search(len(r.bounds), func(i int) bool { return r.bounds[i] > c })
	return idx%2 == 1
}

// Bounds returns the raw boundary list. The returned slice must not be
// mutated by the caller.
func (r CharRange) Bounds() []uint16 { return r.bounds }

// Ranges returns the disjoint, sorted, inclusive [first,last] intervals
// that make up the set.
func (r CharRange) Ranges() []Interval {
	out := make([]Interval, 0, len(r.bounds)/2+1)
	for i := 0; i < len(r.bounds); i += 2 {
		first := r.bounds[i]
		var last uint16 = maxCodeUnit
		if i+1 < len(r.bounds) {
			last = r.bounds[i+1] - 1
		}
		out = append(out, Interval{First: first, Last: last})
	}
	return out
}

// Interval is an inclusive [First, Last] range of code units.
type Interval struct {
	First, Last uint16
}

// Complement returns the set of all code units not in r: an O(n) rewrite
// that prepends or strips the 0 boundary.
func (r CharRange) Complement() CharRange {
	if len(r.bounds) == 0 {
		return All()
	}
	if r.bounds[0] == 0 {
		out := make([]uint16, len(r.bounds)-1)
		copy(out, r.bounds[1:])
		return CharRange{bounds: out}
	}
	out := make([]uint16, len(r.bounds)+1)
	out[0] = 0
	copy(out[1:], r.bounds)
	return CharRange{bounds: out}
}

// Union returns the set containing every code unit in r or in any of
// others.
func (r CharRange) Union(others ...CharRange) CharRange {
	b := NewBuilder()
	b.Add(r)
	for _, o := range others {
		b.Add(o)
	}
	return b.Build()
}

// Intersect returns the set containing every code unit in r and in all of
// others.
func (r CharRange) Intersect(others ...CharRange) CharRange {
	acc := r
	for _, o := range others {
		acc = acc.Complement().Union(o.Complement()).Complement()
	}
	return acc
}

// Exclude returns r with every code unit in any of others removed.
func (r CharRange) Exclude(others ...CharRange) CharRange {
	if len(others) == 0 {
		return r
	}
	excl := others[0]
	for _, o := range others[1:] {
		excl = excl.Union(o)
	}
	return r.Intersect(excl.Complement())
}

// Equal reports whether r and o contain exactly the same code units.
func (r CharRange) Equal(o CharRange) bool {
	if len(r.bounds) != len(o.bounds) {
		return false
	}
	for i, b := range r.bounds {
		if o.bounds[i] != b {
			return false
		}
	}
	return true
}
