package charclass

import "sort"

// breakpoint is one (code, kind) edge contributed by a CharRange being
// folded into a Builder. kind is +1 for a set-opening boundary and -1 for a
// set-closing boundary; depth is the running sum of kinds swept
// left-to-right. A code unit is in the unioned set wherever depth > 0.
//
// Tracking signed depth rather than a single membership bit lets Builder
// normalize a multiset of ranges in one sweep: overlapping inputs simply
// raise the depth above 1 and only the 0/non-0 crossings become
// boundaries.
type breakpoint struct {
	key   uint32 // (code << 1) | kind-bit, kind-bit 0 = open, 1 = close
	delta int32  // +1 for open, -1 for close
}

// Builder accumulates CharRange values and normalizes their union via a
// sort-merge sweep over breakpoints.
type Builder struct {
	points []breakpoint
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder { return &Builder{} }

// Add folds r's ranges into the builder's accumulated multiset.
func (b *Builder) Add(r CharRange) {
	for _, iv := range r.Ranges() {
		openKey := uint32(iv.First) << 1
		b.points = append(b.points, breakpoint{key: openKey, delta: 1})
		if iv.Last == maxCodeUnit {
			continue // unbounded above; no closing breakpoint needed
		}
		closeKey := uint32(iv.Last+1)<<1 | 1
		b.points = append(b.points, breakpoint{key: closeKey, delta: -1})
	}
}

// Build normalizes the accumulated breakpoints into a CharRange covering
// the union of every range added so far.
func (b *Builder) Build() CharRange {
	if len(b.points) == 0 {
		return None()
	}
	pts := sortedBreakpoints(b.points)

	bounds := make([]uint16, 0, len(pts))
	depth := int32(0)
	for i := 0; i < len(pts); {
		code := pts[i].key >> 1
		// Fold every breakpoint at this code unit before testing the
		// sign change, so coincident open/close edges at the same code
		// unit net out correctly (e.g. [a-b] U [b+1-c] must not leave a
		// spurious boundary at b+1).
		j := i
		runDelta := int32(0)
		for j < len(pts) && pts[j].key>>1 == code {
			runDelta += pts[j].delta
			j++
		}
		before := depth > 0
		depth += runDelta
		after := depth > 0
		if before != after {
			bounds = append(bounds, uint16(code))
		}
		i = j
	}
	return CharRange{bounds: bounds}
}

func sortedBreakpoints(pts []breakpoint) []breakpoint {
	out := make([]breakpoint, len(pts))
	copy(out, pts)
	sortBreakpoints(out)
	return out
}

// sortBreakpoints sorts by the 17-bit (code<<1)|kind key. For inputs above
// avx2Threshold breakpoints (Unicode category expansion routinely produces
// several hundred) on amd64 machines that report AVX2, it dispatches to the
// counting sort in sweep_amd64.go, which is gated on the AVX2 flag but uses
// no vector instructions; see sweep_amd64.go / sweep_fallback.go. Smaller
// inputs, and every input elsewhere, take the portable sort.Slice path.
func sortBreakpoints(pts []breakpoint) {
	if len(pts) > avx2Threshold && hasAVX2() {
		sortBreakpointsAVX2(pts)
		return
	}
	sortBreakpointsPortable(pts)
}

func sortBreakpointsPortable(pts []breakpoint) {
	sort.Slice(pts, func(i, j int) bool { return pts[i].key < pts[j].key })
}

const avx2Threshold = 256
