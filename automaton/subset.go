package automaton

import (
	"sort"

	"github.com/coregx/dfalex/internal/conv"
	"github.com/coregx/dfalex/internal/sparse"
)

// AmbiguityResolver chooses (or combines) one tag out of a set of accept
// tags that collided at a single DFA state.
type AmbiguityResolver[Tag comparable] func(tags []Tag) (Tag, error)

// DefaultAmbiguityResolver always fails with *AmbiguityError.
func DefaultAmbiguityResolver[Tag comparable](tags []Tag) (Tag, error) {
	var zero Tag
	return zero, &AmbiguityError[Tag]{Tags: tags}
}

// closureKey canonicalizes a sorted NFA state-id set into a comparable
// map key. Ids are encoded as 4 bytes each; sorting the ids before
// encoding (rather than relying on traversal order) makes the key, and
// therefore every DFA state index derived from it, independent of how the
// ε-closure happened to be walked.
func closureKey(ids []StateID) string {
	buf := make([]byte, len(ids)*4)
	for i, id := range ids {
		buf[i*4] = byte(id >> 24)
		buf[i*4+1] = byte(id >> 16)
		buf[i*4+2] = byte(id >> 8)
		buf[i*4+3] = byte(id)
	}
	return string(buf)
}

// epsilonClosure computes the ε-closure of a set of NFA states, following
// ε-edges only, and returns it sorted by StateID for canonicalization.
//
// The visited set is a sparse.SparseSet rather than a map[StateID]bool:
// the NFA's total state count is known up front (n.Len()), which is
// exactly the case sparse.SparseSet is built for, and it avoids a map's
// per-lookup hashing on what is the hottest loop in subset construction.
// The caller owns the set and passes it back in for every closure of the
// same construction, cleared here rather than reallocated, so one
// allocation serves the whole worklist.
func epsilonClosure[Tag comparable](n *NFA[Tag], seed []StateID, seen *sparse.SparseSet) []StateID {
	seen.Clear()
	stack := append([]StateID(nil), seed...)
	for _, id := range seed {
		seen.Insert(uint32(id))
	}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		st := n.State(id)
		if st == nil {
			continue
		}
		for _, e := range st.edges {
			if !e.Epsilon || !seen.Insert(uint32(e.Target)) {
				continue
			}
			stack = append(stack, e.Target)
		}
	}
	out := make([]StateID, 0, seen.Size())
	for _, v := range seen.Values() {
		out = append(out, StateID(v))
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// mergedEdge is one contributing range edge from some state within a DFA
// state's closure, retained for the sweep in move().
type mergedEdge struct {
	first, last uint16
	target      StateID
}

// move partitions [0, 0xFFFF] into the minimal set of disjoint intervals
// labeled by the set of NFA states they lead to, by sweeping the closure's
// edge endpoints left to right with an active-edge set.
func move[Tag comparable](n *NFA[Tag], closure []StateID) []struct {
	first, last uint16
	targets     []StateID
} {
	var edges []mergedEdge
	for _, id := range closure {
		st := n.State(id)
		for _, e := range st.edges {
			if e.Epsilon {
				continue
			}
			edges = append(edges, mergedEdge{first: e.FirstChar, last: e.LastChar, target: e.Target})
		}
	}
	if len(edges) == 0 {
		return nil
	}

	type point struct {
		code  uint32 // 0..0x10000
		open  bool
		edge  int
	}
	pts := make([]point, 0, len(edges)*2)
	for i, e := range edges {
		pts = append(pts, point{code: uint32(e.first), open: true, edge: i})
		pts = append(pts, point{code: uint32(e.last) + 1, open: false, edge: i})
	}
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].code != pts[j].code {
			return pts[i].code < pts[j].code
		}
		// Closes sort before opens at the same code unit. The order
		// within one code unit does not change the result: the sweep
		// flushes the interval ending just before a code unit, then
		// applies every point at that code unit before the next flush.
		return !pts[i].open && pts[j].open
	})

	active := make(map[int]bool, len(edges))
	var result []struct {
		first, last uint16
		targets     []StateID
	}
	prev := uint32(0)
	flush := func(end uint32) {
		if len(active) == 0 || prev >= end {
			return
		}
		ids := make([]StateID, 0, len(active))
		for idx := range active {
			ids = append(ids, edges[idx].target)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		result = append(result, struct {
			first, last uint16
			targets     []StateID
		}{first: uint16(prev), last: uint16(end - 1), targets: ids})
	}

	for i := 0; i < len(pts); {
		code := pts[i].code
		flush(code)
		for i < len(pts) && pts[i].code == code {
			if pts[i].open {
				active[pts[i].edge] = true
			} else {
				delete(active, pts[i].edge)
			}
			i++
		}
		prev = code
	}
	return result
}

// DfaFromNfa performs the classical NFA→RawDfa subset construction:
// ε-closures are interned into DFA state indices, each state's outgoing
// transitions are the minimal disjoint partition of [0,0xFFFF] labeled by
// the ε-closure of the reachable targets, and each state's accept tag is
// resolved from the union of accept tags in its NFA-state-set via
// resolve (DefaultAmbiguityResolver if nil).
func DfaFromNfa[Tag comparable](n *NFA[Tag], starts []StateID, resolve AmbiguityResolver[Tag]) (*RawDfa[Tag], error) {
	if resolve == nil {
		resolve = DefaultAmbiguityResolver[Tag]
	}

	dfa := &RawDfa[Tag]{}
	index := make(map[string]StateID)
	type pending struct {
		key     string
		closure []StateID
	}
	var queue []pending

	seen := sparse.NewSparseSet(conv.IntToUint32(n.Len()))
	internClosure := func(seed []StateID) StateID {
		closure := epsilonClosure(n, seed, seen)
		key := closureKey(closure)
		if id, ok := index[key]; ok {
			return id
		}
		id := StateID(conv.IntToUint32(len(dfa.States)))
		index[key] = id
		dfa.States = append(dfa.States, DfaStateInfo[Tag]{})
		queue = append(queue, pending{key: key, closure: closure})
		return id
	}

	dfa.Starts = make([]StateID, len(starts))
	for i, s := range starts {
		dfa.Starts[i] = internClosure([]StateID{s})
	}

	for qi := 0; qi < len(queue); qi++ {
		item := queue[qi]
		id := index[item.key]

		var tags []Tag
		seenTag := make(map[any]bool)
		for _, sid := range item.closure {
			st := n.State(sid)
			if tag, ok := st.Accept(); ok {
				if !seenTag[any(tag)] {
					seenTag[any(tag)] = true
					tags = append(tags, tag)
				}
			}
		}

		info := DfaStateInfo[Tag]{}
		switch len(tags) {
		case 0:
		case 1:
			info.HasAccept = true
			info.Accept = tags[0]
		default:
			tag, err := resolve(tags)
			if err != nil {
				return nil, err
			}
			info.HasAccept = true
			info.Accept = tag
		}

		for _, m := range move(n, item.closure) {
			targetID := internClosure(m.targets)
			info.Transitions = append(info.Transitions, RawTransition{First: m.first, Last: m.last, Target: targetID})
		}

		dfa.States[id] = info
	}

	return dfa, nil
}
