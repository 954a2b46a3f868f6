package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildPackedAbOrAc(t *testing.T) *PackedDfa[string] {
	t.Helper()
	n, start := buildAbOrAc(t)
	raw, err := DfaFromNfa(n, []StateID{start}, nil)
	require.NoError(t, err)
	return FromRawDfa(Minimize(raw))
}

func TestPackedDfaWalksAcceptedInput(t *testing.T) {
	dfa := buildPackedAbOrAc(t)

	walk := func(input string) (string, bool) {
		s := dfa.Start(0)
		for i := 0; i < len(input); i++ {
			next, ok := s.NextState(uint16(input[i]))
			if !ok {
				return "", false
			}
			s = next
		}
		return s.Match()
	}

	tag, ok := walk("ab")
	require.True(t, ok)
	assert.Equal(t, "ok", tag)

	tag, ok = walk("ac")
	require.True(t, ok)
	assert.Equal(t, "ok", tag)

	_, ok = walk("ad")
	assert.False(t, ok)
}

func TestPackedDfaDeadTransitionsCoverGaps(t *testing.T) {
	dfa := buildPackedAbOrAc(t)
	s := dfa.Start(0)

	// 'z' is outside every live interval from the start state; NextState
	// must report it dead rather than panicking or matching by accident.
	_, ok := s.NextState('z')
	assert.False(t, ok)
}

func TestPackedDfaEnumerateTransitionsCoversLiveRangesOnly(t *testing.T) {
	dfa := buildPackedAbOrAc(t)
	s := dfa.Start(0)

	var seen int
	s.EnumerateTransitions(func(first, last uint16, target DfaState[string]) {
		seen++
		assert.LessOrEqual(t, first, last)
		assert.True(t, target.Valid())
	})
	assert.Equal(t, 1, seen, "only the 'a' interval is live from the start state")
}
