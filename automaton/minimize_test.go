package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildRedundantAB builds one NFA for "ab" with two branches that only
// differ by which of two equivalent intermediate states they pass through.
// Subset construction already merges the two intermediate states into one
// DFA state, so the resulting RawDfa has 3 states and is already minimal.
func buildRedundantAB(t *testing.T) *RawDfa[string] {
	t.Helper()
	n := New[string]()
	start := n.NewState()
	midViaX := n.NewState()
	midViaY := n.NewState()
	accept := n.NewState()

	n.AddRange(start, midViaX, 'a', 'a')
	n.AddRange(start, midViaY, 'a', 'a')
	n.AddRange(midViaX, accept, 'b', 'b')
	n.AddRange(midViaY, accept, 'b', 'b')
	n.SetAccept(accept, "ab")

	raw, err := DfaFromNfa(n, []StateID{start}, nil)
	require.NoError(t, err)
	return raw
}

func TestMinimizePreservesLanguage(t *testing.T) {
	raw := buildRedundantAB(t)
	min := Minimize(raw)

	run := func(dfa *RawDfa[string], input string) bool {
		cur := dfa.Starts[0]
		for i := 0; i < len(input); i++ {
			st := dfa.States[cur]
			next := StateID(InvalidState)
			for _, tr := range st.Transitions {
				if uint16(input[i]) >= tr.First && uint16(input[i]) <= tr.Last {
					next = tr.Target
					break
				}
			}
			if next == InvalidState {
				return false
			}
			cur = next
		}
		return dfa.States[cur].HasAccept
	}

	for _, in := range []string{"ab", "a", "b", "abc", ""} {
		assert.Equal(t, run(raw, in), run(min, in), "minimized DFA must agree with raw DFA on %q", in)
	}
}

func TestMinimizeIsDeterministic(t *testing.T) {
	raw := buildRedundantAB(t)
	a := Minimize(raw)
	b := Minimize(raw)

	require.Equal(t, len(a.States), len(b.States))
	assert.Equal(t, a.Starts, b.Starts)
	for i := range a.States {
		assert.Equal(t, a.States[i].HasAccept, b.States[i].HasAccept)
		assert.Equal(t, a.States[i].Transitions, b.States[i].Transitions)
	}
}

func TestMinimizeEmptyDfa(t *testing.T) {
	raw := &RawDfa[string]{}
	min := Minimize(raw)
	assert.Empty(t, min.States)
	assert.Empty(t, min.Starts)
}
