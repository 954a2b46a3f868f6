// Package automaton implements the NFA graph, the NFA→DFA subset
// construction, DFA minimization, and the packed DFA representation the
// match drivers run on.
//
// It is generic over the caller-supplied accept-tag type: an accept tag
// only needs to be hashable, equatable, and cloneable, which Go's
// comparable constraint captures directly.
//
// The state graph is an append-only arena addressed by dense integer
// StateID. That sidesteps cycle-unsafe ownership for the NFA's ε-loops
// and the DFA's back-edges, and makes serialization a flat array walk.
package automaton

import (
	"fmt"

	"github.com/coregx/dfalex/internal/mixhash"
)

// StateID indexes a state in an NFA or RawDfa arena.
type StateID uint32

// InvalidState is a sentinel StateID meaning "no such state" (e.g. an edge
// that has not been wired up yet, or an absent accept state).
const InvalidState StateID = 0xFFFFFFFF

// Edge is one outgoing transition from an NFA state: either a labeled
// range [FirstChar, LastChar] (Epsilon == false) or an unlabeled ε-move
// (Epsilon == true, FirstChar/LastChar unused).
type Edge struct {
	Target              StateID
	FirstChar, LastChar uint16
	Epsilon             bool
}

// State is one NFA node: a set of outgoing edges and an optional accept
// tag. A state may carry both ranged and ε outgoing edges at once (the
// loop state of Repeat re-enters itself by ε while its body's consuming
// edges live on other states; Alt's start is just a state whose edges are
// all ε).
type State[Tag comparable] struct {
	id         StateID
	edges      []Edge
	epsSeen    map[StateID]bool // de-dupes ε-edges
	hasAccept  bool
	accept     Tag
}

// ID returns the state's identifier.
func (s *State[Tag]) ID() StateID { return s.id }

// Edges returns the state's outgoing edges in declaration order.
func (s *State[Tag]) Edges() []Edge { return s.edges }

// Accept returns the state's accept tag and whether it has one.
func (s *State[Tag]) Accept() (Tag, bool) { return s.accept, s.hasAccept }

// NFA is the mutable, append-only state arena patterns compile into.
type NFA[Tag comparable] struct {
	states []State[Tag]
}

// New returns an empty NFA.
func New[Tag comparable]() *NFA[Tag] {
	return &NFA[Tag]{}
}

// NewState allocates a fresh state with no edges and no accept tag,
// returning its id. Pattern combinators call this before wiring up edges,
// e.g. Repeat allocates its loop state before it knows the ε-edges that
// will point back into it.
func (n *NFA[Tag]) NewState() StateID {
	id := StateID(len(n.states))
	n.states = append(n.states, State[Tag]{id: id})
	return id
}

// State returns a pointer to the state with the given id, or nil if out of
// range.
func (n *NFA[Tag]) State(id StateID) *State[Tag] {
	if int(id) < 0 || int(id) >= len(n.states) {
		return nil
	}
	return &n.states[id]
}

// Len returns the number of states in the arena.
func (n *NFA[Tag]) Len() int { return len(n.states) }

// AddRange appends a labeled-range edge from -> to carrying [first,last].
// Panics if first > last (a caller bug: CharRange.Ranges never produces
// such an interval) or if from is out of range.
func (n *NFA[Tag]) AddRange(from, to StateID, first, last uint16) {
	if first > last {
		panic(fmt.Sprintf("automaton: invalid range [%d,%d]", first, last))
	}
	s := n.mustState(from)
	s.edges = append(s.edges, Edge{Target: to, FirstChar: first, LastChar: last})
}

// AddEpsilon appends an ε-edge from -> to, de-duplicating identical
// ε-edges per state; ε-closure cost dominates subset construction, so
// duplicate edges are never worth keeping.
func (n *NFA[Tag]) AddEpsilon(from, to StateID) {
	s := n.mustState(from)
	if s.epsSeen == nil {
		s.epsSeen = make(map[StateID]bool, 2)
	}
	if s.epsSeen[to] {
		return
	}
	s.epsSeen[to] = true
	s.edges = append(s.edges, Edge{Target: to, Epsilon: true})
}

// SetAccept marks state id as accepting with the given tag.
func (n *NFA[Tag]) SetAccept(id StateID, tag Tag) {
	s := n.mustState(id)
	s.hasAccept = true
	s.accept = tag
}

func (n *NFA[Tag]) mustState(id StateID) *State[Tag] {
	s := n.State(id)
	if s == nil {
		panic(fmt.Sprintf("automaton: state %d out of range (len=%d)", id, len(n.states)))
	}
	return s
}

// StructuralHash returns a 64-bit fingerprint of the NFA's shape: every
// transition, in declaration order, folded into the shared mixer. Two NFAs
// built by the same sequence of NewState/AddRange/AddEpsilon/SetAccept
// calls always hash equal across process runs, which is what a cache
// layered over NFA construction needs.
func (n *NFA[Tag]) StructuralHash() uint64 {
	s := mixhash.New()
	s.WriteUint64(uint64(len(n.states)))
	for _, st := range n.states {
		if st.hasAccept {
			s.WriteUint64(1)
		} else {
			s.WriteUint64(0)
		}
		for _, e := range st.edges {
			s.WriteUint64(uint64(e.Target))
			word := uint64(e.FirstChar)<<17 | uint64(e.LastChar)<<1
			if e.Epsilon {
				word |= 1
			}
			s.WriteUint64(word)
		}
	}
	return s.Sum64()
}

// Clone returns a deep copy of the NFA's states that can be mutated
// independently of the original.
func (n *NFA[Tag]) Clone() *NFA[Tag] {
	out := &NFA[Tag]{states: make([]State[Tag], len(n.states))}
	for i, s := range n.states {
		ns := State[Tag]{id: s.id, hasAccept: s.hasAccept, accept: s.accept}
		ns.edges = append([]Edge(nil), s.edges...)
		if s.epsSeen != nil {
			ns.epsSeen = make(map[StateID]bool, len(s.epsSeen))
			for k, v := range s.epsSeen {
				ns.epsSeen[k] = v
			}
		}
		out.states[i] = ns
	}
	return out
}
