package builder

import (
	"github.com/coregx/dfalex/automaton"
	"github.com/coregx/dfalex/charclass"
	"github.com/coregx/dfalex/pattern"
)

// BuildReverseFinders builds the single automaton.PackedDfa[bool]
// "reverse finder" for every pattern that belongs to any of languages: an
// automaton that accepts (tag true) at every position where scanning the
// original string right-to-left finds the start of some non-empty match,
// used to prune StringSearcher's forward pass.
//
// There is exactly one start state (index 0) regardless of len(languages):
// the reverse finder answers "could a match start here", not which
// language's match.
func (b *DfaBuilder[Tag]) BuildReverseFinders(languages []Language[Tag]) (*automaton.PackedDfa[bool], error) {
	n := automaton.New[bool]()
	accept := n.NewState()
	n.SetAccept(accept, true)
	start := n.NewState()

	for _, tag := range b.order {
		var inAnyLanguage bool
		for _, lang := range languages {
			if lang[tag] {
				inAnyLanguage = true
				break
			}
		}
		if !inAnyLanguage {
			continue
		}
		for _, p := range b.patterns[any(tag)] {
			rev := pattern.Reversed(p)
			cs := pattern.AddToNFA(rev, n, accept)
			n.AddEpsilon(start, cs)
		}
	}

	start = automaton.Disemptify(n, start)
	start = pattern.AddToNFA(pattern.MaybeRepeat(pattern.Char(charclass.All())), n, start)

	raw, err := automaton.DfaFromNfa(n, []automaton.StateID{start}, nil)
	if err != nil {
		return nil, err
	}
	if limit := b.effectiveConfig().MaxStates; limit > 0 && len(raw.States) > limit {
		return nil, &StateLimitError{States: len(raw.States), Limit: limit}
	}
	return automaton.FromRawDfa(automaton.Minimize(raw)), nil
}

// BuildStringSearcher packages a forward build over every tag (a single
// implicit language containing everything) with its reverse finder.
func (b *DfaBuilder[Tag]) BuildStringSearcher(resolve automaton.AmbiguityResolver[Tag]) (*automaton.PackedDfa[Tag], *automaton.PackedDfa[bool], error) {
	all := Language[Tag]{}
	for _, tag := range b.order {
		all[tag] = true
	}
	fwd, err := b.Build([]Language[Tag]{all}, resolve)
	if err != nil {
		return nil, nil, err
	}
	rev, err := b.BuildReverseFinders([]Language[Tag]{all})
	if err != nil {
		return nil, nil, err
	}
	return fwd, rev, nil
}
