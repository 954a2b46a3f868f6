package pattern

// AsLiteral reports whether p matches exactly one fixed sequence of code
// units, i.e. it was built by Literal, or is structurally equivalent to
// it (a Seq of single-code-unit Char leaves, or a single such leaf, or
// Empty), and if so returns that sequence. Used by builder's
// Aho-Corasick prefilter wiring to find the literal subset of a pattern
// set worth indexing.
func AsLiteral(p Pattern) ([]uint16, bool) {
	switch p.kind {
	case KEmpty:
		return nil, true
	case KChar:
		ranges := p.chars.Ranges()
		if len(ranges) != 1 || ranges[0].First != ranges[0].Last {
			return nil, false
		}
		return []uint16{ranges[0].First}, true
	case KSeq:
		var out []uint16
		for _, c := range p.children {
			units, ok := AsLiteral(c)
			if !ok {
				return nil, false
			}
			out = append(out, units...)
		}
		return out, true
	default:
		return nil, false
	}
}
