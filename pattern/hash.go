package pattern

import "github.com/coregx/dfalex/internal/mixhash"

// StructuralHash returns a 64-bit fingerprint of p's shape: equal patterns
// (same variant tree, same character sets) always hash equal, across
// process runs, which is what BuilderCache keys require. It is not a
// general-purpose hash; two different patterns are not guaranteed to hash
// differently, only expected to in practice, as with any fixed-width hash.
func StructuralHash(p Pattern) uint64 {
	s := mixhash.New()
	writePattern(s, p)
	return s.Sum64()
}

func writePattern(s *mixhash.State, p Pattern) {
	s.WriteUint64(uint64(p.kind))
	if p.kind == KChar {
		bounds := p.chars.Bounds()
		s.WriteUint64(uint64(len(bounds)))
		for _, b := range bounds {
			s.WriteUint64(uint64(b))
		}
	}
	s.WriteUint64(uint64(len(p.children)))
	for _, c := range p.children {
		writePattern(s, c)
	}
}
