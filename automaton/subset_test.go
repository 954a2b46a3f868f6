package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildAbOrAc builds an NFA for "a(b|c)" with a single accept tag.
func buildAbOrAc(t *testing.T) (*NFA[string], StateID) {
	t.Helper()
	n := New[string]()
	start := n.NewState()
	afterA := n.NewState()
	bBranch := n.NewState()
	cBranch := n.NewState()
	accept := n.NewState()

	n.AddRange(start, afterA, 'a', 'a')
	n.AddEpsilon(afterA, bBranch)
	n.AddEpsilon(afterA, cBranch)
	n.AddRange(bBranch, accept, 'b', 'b')
	n.AddRange(cBranch, accept, 'c', 'c')
	n.SetAccept(accept, "ok")
	return n, start
}

func TestDfaFromNfaMatchesExpectedLanguage(t *testing.T) {
	n, start := buildAbOrAc(t)
	dfa, err := DfaFromNfa(n, []StateID{start}, nil)
	require.NoError(t, err)

	run := func(input string) (string, bool) {
		cur := dfa.Starts[0]
		for i := 0; i < len(input); i++ {
			st := dfa.States[cur]
			var next StateID = InvalidState
			for _, tr := range st.Transitions {
				if uint16(input[i]) >= tr.First && uint16(input[i]) <= tr.Last {
					next = tr.Target
					break
				}
			}
			if next == InvalidState {
				return "", false
			}
			cur = next
		}
		st := dfa.States[cur]
		return st.Accept, st.HasAccept
	}

	for _, in := range []string{"ab", "ac"} {
		tag, ok := run(in)
		assert.True(t, ok, "input %q should match", in)
		assert.Equal(t, "ok", tag)
	}
	for _, in := range []string{"a", "ad", "b", ""} {
		_, ok := run(in)
		assert.False(t, ok, "input %q should not match", in)
	}
}

func TestDfaFromNfaAmbiguityUsesResolver(t *testing.T) {
	n := New[string]()
	start := n.NewState()
	acceptX := n.NewState()
	acceptY := n.NewState()
	n.AddEpsilon(start, acceptX)
	n.AddEpsilon(start, acceptY)
	n.SetAccept(acceptX, "x")
	n.SetAccept(acceptY, "y")

	_, err := DfaFromNfa(n, []StateID{start}, nil)
	require.Error(t, err)
	var ambig *AmbiguityError[string]
	require.ErrorAs(t, err, &ambig)
	assert.ElementsMatch(t, []string{"x", "y"}, ambig.Tags)

	resolved, err := DfaFromNfa(n, []StateID{start}, func(tags []string) (string, error) {
		return "combined", nil
	})
	require.NoError(t, err)
	startState := resolved.States[resolved.Starts[0]]
	assert.True(t, startState.HasAccept)
	assert.Equal(t, "combined", startState.Accept)
}

func TestDfaFromNfaIsDeterministicAcrossRuns(t *testing.T) {
	n, start := buildAbOrAc(t)
	a, err := DfaFromNfa(n, []StateID{start}, nil)
	require.NoError(t, err)
	b, err := DfaFromNfa(n, []StateID{start}, nil)
	require.NoError(t, err)

	require.Equal(t, len(a.States), len(b.States))
	assert.Equal(t, a.Starts, b.Starts)
	for i := range a.States {
		assert.Equal(t, a.States[i].Transitions, b.States[i].Transitions)
	}
}
