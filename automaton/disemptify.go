package automaton

// epsilonOnlyClosure returns every state reachable from start by following
// only ε-edges (including start itself), in first-visit order. Unlike the
// subset-construction closure in subset.go, this never follows labeled
// range edges; it exists solely to find the states Disemptify must
// reason about.
func epsilonOnlyClosure[Tag comparable](n *NFA[Tag], start StateID) []StateID {
	seen := map[StateID]bool{start: true}
	order := []StateID{start}
	stack := []StateID{start}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		st := n.State(id)
		if st == nil {
			continue
		}
		for _, e := range st.edges {
			if !e.Epsilon || seen[e.Target] {
				continue
			}
			seen[e.Target] = true
			order = append(order, e.Target)
			stack = append(stack, e.Target)
		}
	}
	return order
}

// Disemptify returns a new start state whose ε-closure is identical to
// start's except that it excludes any state that accepts the empty
// string. This is used to build reverse finders that must not flag empty
// matches.
//
// Accepting states built by this package are always leaves (DfaBuilder
// wires every pattern fragment into a dedicated accept state with no
// further outgoing edges), so omitting an accepting state from the
// ε-closure never strands a path to some other, non-accepting state
// beyond it: there is nothing beyond it. Disemptify therefore only needs
// to clone the non-accepting members of start's ε-closure into fresh
// twins, preserving their non-ε edges (which point at ordinary,
// unmodified states further in the graph; reaching them always consumes
// at least one character, so they need no special treatment) and
// re-wiring their ε-edges to the twins of other non-accepting members,
// dropping any ε-edge that pointed at an accepting member.
func Disemptify[Tag comparable](n *NFA[Tag], start StateID) StateID {
	closure := epsilonOnlyClosure(n, start)

	// Snapshot each closure member's accept flag and edge list before
	// allocating any new states, since NewState appends to the arena and
	// may reallocate its backing array.
	type snapshot struct {
		hasAccept bool
		edges     []Edge
	}
	snap := make(map[StateID]snapshot, len(closure))
	for _, id := range closure {
		st := n.State(id)
		edges := append([]Edge(nil), st.edges...)
		snap[id] = snapshot{hasAccept: st.hasAccept, edges: edges}
	}

	twin := make(map[StateID]StateID, len(closure))
	for _, id := range closure {
		if snap[id].hasAccept {
			continue
		}
		twin[id] = n.NewState()
	}

	newStart, ok := twin[start]
	if !ok {
		// start itself accepts the empty string via a zero-edge ε-path
		// and has no other way forward: the disemptified machine can
		// never match anything. Return a fresh, edgeless, non-accepting
		// state so callers still get a valid (always-dead) StateID.
		return n.NewState()
	}

	for _, id := range closure {
		s := snap[id]
		if s.hasAccept {
			continue
		}
		nt := twin[id]
		for _, e := range s.edges {
			if !e.Epsilon {
				n.AddRange(nt, e.Target, e.FirstChar, e.LastChar)
				continue
			}
			if target, ok := twin[e.Target]; ok {
				n.AddEpsilon(nt, target)
			}
			// else: e.Target is an accepting closure member (or was
			// reached only through one): dropped.
		}
	}

	return newStart
}
