package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNFABasicConstruction(t *testing.T) {
	n := New[string]()
	start := n.NewState()
	mid := n.NewState()
	end := n.NewState()

	n.AddRange(start, mid, 'a', 'z')
	n.AddEpsilon(mid, end)
	n.SetAccept(end, "word")

	require.Equal(t, 3, n.Len())

	st := n.State(mid)
	require.NotNil(t, st)
	assert.Len(t, st.edges, 1)
	assert.True(t, st.edges[0].Epsilon)
	assert.Equal(t, end, st.edges[0].Target)

	tag, ok := n.State(end).Accept()
	require.True(t, ok)
	assert.Equal(t, "word", tag)
}

func TestNFAAddEpsilonDeduplicates(t *testing.T) {
	n := New[int]()
	a := n.NewState()
	b := n.NewState()

	n.AddEpsilon(a, b)
	n.AddEpsilon(a, b)
	n.AddEpsilon(a, b)

	assert.Len(t, n.State(a).edges, 1)
}

func TestNFACloneIsIndependent(t *testing.T) {
	n := New[int]()
	a := n.NewState()
	b := n.NewState()
	n.AddRange(a, b, 'x', 'x')
	n.SetAccept(b, 42)

	clone := n.Clone()
	clone.NewState()
	clone.AddRange(a, b, 'y', 'y')

	assert.Equal(t, 2, n.Len())
	assert.Equal(t, 3, clone.Len())
	assert.Len(t, n.State(a).edges, 1)
	assert.Len(t, clone.State(a).edges, 2)
}

func TestNFAStructuralHashTracksShape(t *testing.T) {
	build := func(last uint16) *NFA[string] {
		n := New[string]()
		a := n.NewState()
		b := n.NewState()
		n.AddRange(a, b, 'a', last)
		n.SetAccept(b, "tag")
		return n
	}

	assert.Equal(t, build('z').StructuralHash(), build('z').StructuralHash())
	assert.NotEqual(t, build('z').StructuralHash(), build('y').StructuralHash())
}

func TestNFAStateOutOfRangeIsNil(t *testing.T) {
	n := New[int]()
	n.NewState()
	assert.Nil(t, n.State(StateID(99)))
}
