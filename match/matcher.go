// Package match implements the drivers that consume text against a
// built automaton.PackedDfa: StringMatcher finds the longest match starting
// at a position, StringSearcher finds every non-overlapping match in a
// string using a reverse-finder prefilter, and SearchAndReplace rewrites
// matched ranges.
package match

import "github.com/coregx/dfalex/automaton"

// StringMatcher finds the longest match starting at a given position in a
// code-unit string. It holds only a reference to an immutable PackedDfa
// and a language index; construct one per goroutine when in doubt.
type StringMatcher[Tag comparable] struct {
	dfa      *automaton.PackedDfa[Tag]
	language int
}

// NewStringMatcher returns a StringMatcher driving language's start state
// in dfa.
func NewStringMatcher[Tag comparable](dfa *automaton.PackedDfa[Tag], language int) *StringMatcher[Tag] {
	return &StringMatcher[Tag]{dfa: dfa, language: language}
}

// MatchAt starts at the language's start state and steps through text from
// pos, remembering the most recent position at which the current state had
// an accept tag. It stops at the first dead transition or at the end of
// text, and returns the saved (end, tag), or ok=false if no accept was
// ever seen.
func (m *StringMatcher[Tag]) MatchAt(text []uint16, pos int) (end int, tag Tag, ok bool) {
	state := m.dfa.Start(m.language)

	savedEnd := -1
	var savedTag Tag
	if t, has := state.Match(); has {
		savedEnd, savedTag = pos, t
	}

	for i := pos; i < len(text); i++ {
		next, live := state.NextState(text[i])
		if !live {
			break
		}
		state = next
		if t, has := state.Match(); has {
			savedEnd, savedTag = i+1, t
		}
	}

	if savedEnd < 0 {
		return 0, tag, false
	}
	return savedEnd, savedTag, true
}
