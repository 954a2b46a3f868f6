package pattern

// Reversed returns a pattern recognizing the reverse of p's language:
// character sets are self-reverse; Seq reverses by reversing children and
// their order; Alt, the repetition variants, Maybe, and CaseI reverse by
// reversing their children in place.
func Reversed(p Pattern) Pattern {
	switch p.kind {
	case KChar, KEmpty:
		return p

	case KSeq:
		n := len(p.children)
		children := make([]Pattern, n)
		for i, c := range p.children {
			children[n-1-i] = Reversed(c)
		}
		return Pattern{kind: KSeq, children: children}

	default:
		children := make([]Pattern, len(p.children))
		for i, c := range p.children {
			children[i] = Reversed(c)
		}
		return Pattern{kind: p.kind, chars: p.chars, children: children}
	}
}
