package pattern

import "github.com/coregx/dfalex/charclass"

// expandCaseI rewrites every Char leaf reachable from p (without crossing
// into a nested CaseI, which is already expanded) into its
// case-insensitive equivalent via charclass.ExpandCases.
func expandCaseI(p Pattern) Pattern {
	switch p.kind {
	case KChar:
		return Char(charclass.ExpandCases(p.chars))
	case KEmpty:
		return p
	case KCaseI:
		return p
	default:
		children := make([]Pattern, len(p.children))
		for i, c := range p.children {
			children[i] = expandCaseI(c)
		}
		return Pattern{kind: p.kind, chars: p.chars, children: children}
	}
}
