package pattern

import (
	"github.com/coregx/dfalex/automaton"
	"github.com/coregx/dfalex/charclass"
)

// AddToNFA appends p's sub-automaton to nfa so that reaching target is
// exactly matching p, and returns the fragment's start state. Go methods
// cannot carry their own type parameters, so this is a free function
// generic over Tag rather than a method on Pattern.
func AddToNFA[Tag comparable](p Pattern, n *automaton.NFA[Tag], target automaton.StateID) automaton.StateID {
	switch p.kind {
	case KChar:
		return addChar(p.chars, n, target)

	case KSeq:
		t := target
		for i := len(p.children) - 1; i >= 0; i-- {
			t = AddToNFA(p.children[i], n, t)
		}
		return t

	case KAlt:
		start := n.NewState()
		for _, child := range p.children {
			cs := AddToNFA(child, n, target)
			n.AddEpsilon(start, cs)
		}
		return start

	case KRepeat:
		return addRepeat(p.children[0], n, target)

	case KMaybeRepeat:
		// Same shape as KRepeat, but MaybeRepeat always allocates a
		// distinct start state, even when the child is Empty (KRepeat
		// folds to target in that case, see addRepeat).
		loop := n.NewState()
		cs := AddToNFA(p.children[0], n, loop)
		n.AddEpsilon(loop, cs)
		n.AddEpsilon(loop, target)
		return loop

	case KMaybe:
		start := n.NewState()
		cs := AddToNFA(p.children[0], n, target)
		n.AddEpsilon(start, cs)
		n.AddEpsilon(start, target)
		return start

	case KRepeat1:
		// Repeat1(p) = Seq(p, Repeat(p)).
		return AddToNFA(Seq(p.children[0], Repeat(p.children[0])), n, target)

	case KCaseI:
		return AddToNFA(expandCaseI(p.children[0]), n, target)

	case KEmpty:
		return target

	default:
		panic("pattern: unknown Kind")
	}
}

// addChar allocates a single state and one labeled edge per disjoint
// interval of r.
func addChar[Tag comparable](r charclass.CharRange, n *automaton.NFA[Tag], target automaton.StateID) automaton.StateID {
	start := n.NewState()
	for _, iv := range r.Ranges() {
		n.AddRange(start, target, iv.First, iv.Last)
	}
	return start
}

// addRepeat implements Repeat's zero-or-more loop. When p is literally
// Empty, AddToNFA(p, nfa, loop) would just return loop itself, making the
// whole construction a no-op loop state with an epsilon edge to itself and
// one to target, so this folds straight to target. Only a child of kind
// KEmpty folds; other children that match only the empty string still get
// a loop state. MaybeRepeat is the variant that never folds.
func addRepeat[Tag comparable](p Pattern, n *automaton.NFA[Tag], target automaton.StateID) automaton.StateID {
	if p.kind == KEmpty {
		return target
	}
	loop := n.NewState()
	cs := AddToNFA(p, n, loop)
	n.AddEpsilon(loop, cs)
	n.AddEpsilon(loop, target)
	return loop
}
