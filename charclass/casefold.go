package charclass

import (
	"sort"
	"unicode"
)

// foldDelta is one range-wise case-fold entry: every code unit in
// [start, end] has lowerDelta added to reach its lowercase form and
// upperDelta added to reach its uppercase form (deltas may be negative,
// stored as int32 to allow that).
type foldDelta struct {
	start, end         uint16
	lowerDelta, upperDelta int32
}

var (
	// The parallel (uppers, lowers) case-fold arrays, built once at
	// init. foldUppers is sorted and foldLowers holds each entry's
	// lowercase companion; foldLowerKeys/foldUpperVals are the same pairs
	// re-sorted by the lowercase side, so both directions of
	// FoldCompanion's lookup binary-search a sorted array.
	foldUppers    []uint16
	foldLowers    []uint16
	foldLowerKeys []uint16
	foldUpperVals []uint16

	// deltas is the range-wise lower/upper delta table, sorted by start,
	// probed by ExpandCases via findDelta's finger search.
	deltas []foldDelta
)

func init() {
	buildSingleFolds()
	buildDeltaTable()
}

// buildSingleFolds walks every code unit in the BMP and records its
// lower/upper single-rune companions, restricted to companions that are
// themselves single 16-bit code units.
func buildSingleFolds() {
	type pair struct{ lo, up uint16 }
	var pairs []pair
	for c := rune(0); c <= maxCodeUnit; c++ {
		lo := unicode.ToLower(c)
		up := unicode.ToUpper(c)
		if lo == c && up == c {
			continue
		}
		if lo > maxCodeUnit || up > maxCodeUnit || lo < 0 || up < 0 {
			continue
		}
		pairs = append(pairs, pair{lo: uint16(lo), up: uint16(up)})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].up < pairs[j].up })
	foldUppers = make([]uint16, len(pairs))
	foldLowers = make([]uint16, len(pairs))
	for i, p := range pairs {
		foldUppers[i] = p.up
		foldLowers[i] = p.lo
	}

	sort.Slice(pairs, func(i, j int) bool { return pairs[i].lo < pairs[j].lo })
	foldLowerKeys = make([]uint16, len(pairs))
	foldUpperVals = make([]uint16, len(pairs))
	for i, p := range pairs {
		foldLowerKeys[i] = p.lo
		foldUpperVals[i] = p.up
	}
}

// buildDeltaTable groups consecutive code units sharing the same
// (lowerDelta, upperDelta) pair into runs of (start, end, lowerDelta,
// upperDelta) quadruples.
func buildDeltaTable() {
	var cur *foldDelta
	for c := rune(0); c <= maxCodeUnit; c++ {
		lowerDelta := int32(unicode.ToLower(c) - c)
		upperDelta := int32(unicode.ToUpper(c) - c)
		if lowerDelta == 0 && upperDelta == 0 {
			cur = nil
			continue
		}
		if cur != nil && cur.lowerDelta == lowerDelta && cur.upperDelta == upperDelta && int(cur.end)+1 == int(c) {
			cur.end = uint16(c)
			continue
		}
		deltas = append(deltas, foldDelta{start: uint16(c), end: uint16(c), lowerDelta: lowerDelta, upperDelta: upperDelta})
		cur = &deltas[len(deltas)-1]
	}
}

// findDelta returns the foldDelta entry covering c, if any, using an
// exponential-then-binary search. Every call starts the exponential phase
// at the front of the table; no position is carried over between calls,
// so the exponential phase takes about log2 of the entry's index steps.
func findDelta(c uint16) (foldDelta, bool) {
	n := len(deltas)
	if n == 0 {
		return foldDelta{}, false
	}
	// Exponential search for an upper bound on the binary-search window.
	hi := 1
	for hi < n && deltas[hi].start <= c {
		hi *= 2
	}
	lo := hi / 2
	if hi > n {
		hi = n
	}
	idx := sort.Search(hi-lo, func(i int) bool { return deltas[lo+i].start > c }) + lo - 1
	if idx < 0 || idx >= n {
		return foldDelta{}, false
	}
	d := deltas[idx]
	if c < d.start || c > d.end {
		return foldDelta{}, false
	}
	return d, true
}

// ToLower returns the lowercase companion of c, or c unchanged if none.
func ToLower(c uint16) uint16 {
	if d, ok := findDelta(c); ok {
		return uint16(int32(c) + d.lowerDelta)
	}
	return c
}

// ToUpper returns the uppercase companion of c, or c unchanged if none.
func ToUpper(c uint16) uint16 {
	if d, ok := findDelta(c); ok {
		return uint16(int32(c) + d.upperDelta)
	}
	return c
}

// FoldCompanion returns the opposite-case single-code-unit companion of c
// using the parallel (uppers, lowers) arrays, and reports whether one
// exists. This is the fast path for case-insensitive single-character
// matching; ExpandCases (below) uses the range-delta table instead since
// it must handle runs of code units at once.
func FoldCompanion(c uint16) (uint16, bool) {
	if i := sort.Search(len(foldUppers), func(i int) bool { return foldUppers[i] >= c }); i < len(foldUppers) && foldUppers[i] == c {
		if lo := foldLowers[i]; lo != c {
			return lo, true
		}
	}
	if i := sort.Search(len(foldLowerKeys), func(i int) bool { return foldLowerKeys[i] >= c }); i < len(foldLowerKeys) && foldLowerKeys[i] == c {
		if up := foldUpperVals[i]; up != c {
			return up, true
		}
	}
	return 0, false
}

// ExpandCases returns r unioned with the upper- and lower-case companions
// of every code unit it contains, by walking r's disjoint intervals and
// probing the range-delta table with findDelta. This is how CaseI builds
// a case-insensitive character set out of an ordinary one.
func ExpandCases(r CharRange) CharRange {
	b := NewBuilder()
	b.Add(r)
	for _, iv := range r.Ranges() {
		c := iv.First
		for {
			if d, ok := findDelta(c); ok {
				runEnd := iv.Last
				if d.end < runEnd {
					runEnd = d.end
				}
				if d.lowerDelta != 0 {
					b.Add(Range(uint16(int32(c)+d.lowerDelta), uint16(int32(runEnd)+d.lowerDelta)))
				}
				if d.upperDelta != 0 {
					b.Add(Range(uint16(int32(c)+d.upperDelta), uint16(int32(runEnd)+d.upperDelta)))
				}
				if runEnd == iv.Last {
					break
				}
				c = runEnd + 1
				continue
			}
			if c == iv.Last {
				break
			}
			c++
		}
	}
	return b.Build()
}
