package automaton

import (
	"fmt"
	"strings"
)

// Minimize refines raw's states into equivalence classes (two states are
// equivalent iff they share an accept value and, for every code unit,
// transition to equivalent states) and emits the minimal-state RawDfa.
//
// The refinement is hash-signature based rather than Hopcroft's classic
// split-list bookkeeping: each state's signature combines its current
// equivalence class with its transition function, and a full sweep that
// produces no new splits is the fixed point.
func Minimize[Tag comparable](raw *RawDfa[Tag]) *RawDfa[Tag] {
	n := len(raw.States)
	if n == 0 {
		return &RawDfa[Tag]{Starts: append([]StateID(nil), raw.Starts...)}
	}

	classOf := initialPartition(raw)
	for {
		next := refine(raw, classOf)
		if equalInts(next, classOf) {
			break
		}
		classOf = next
	}

	return emitMinimized(raw, classOf)
}

// initialPartition buckets states by accept value: states with no accept
// tag form class 0; each distinct accept tag gets its own class, assigned
// in order of first appearance when scanning states 0..n-1 (deterministic
// given a deterministic RawDfa).
func initialPartition[Tag comparable](raw *RawDfa[Tag]) []int {
	classOf := make([]int, len(raw.States))
	ids := map[any]int{}
	next := 1
	for i, st := range raw.States {
		if !st.HasAccept {
			classOf[i] = 0
			continue
		}
		key := any(st.Accept)
		id, ok := ids[key]
		if !ok {
			id = next
			ids[key] = id
			next++
		}
		classOf[i] = id
	}
	return classOf
}

// refine computes one signature-refinement sweep: every state's signature
// is (its current class, its sorted transition list labeled by current
// target classes); states sharing a signature are re-bucketed into the
// same new class, with new class ids assigned in order of first
// appearance.
func refine[Tag comparable](raw *RawDfa[Tag], classOf []int) []int {
	sigs := make([]string, len(raw.States))
	for i, st := range raw.States {
		var b strings.Builder
		fmt.Fprintf(&b, "%d|", classOf[i])
		for _, tr := range st.Transitions {
			fmt.Fprintf(&b, "%d,%d,%d;", tr.First, tr.Last, classOf[int(tr.Target)])
		}
		sigs[i] = b.String()
	}

	ids := map[string]int{}
	next := 0
	out := make([]int, len(raw.States))
	for i, sig := range sigs {
		id, ok := ids[sig]
		if !ok {
			id = next
			ids[sig] = id
			next++
		}
		out[i] = id
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// emitMinimized builds the final RawDfa from a stable class partition, one
// state per class, numbered by a BFS over classes starting from raw.Starts
// so that class ids are assigned in a deterministic order.
func emitMinimized[Tag comparable](raw *RawDfa[Tag], classOf []int) *RawDfa[Tag] {
	representative := map[int]int{}
	for i, c := range classOf {
		if _, ok := representative[c]; !ok {
			representative[c] = i
		}
	}

	order := []int{}
	index := map[int]int{}
	seen := map[int]bool{}
	enqueue := func(c int) {
		if seen[c] {
			return
		}
		seen[c] = true
		index[c] = len(order)
		order = append(order, c)
	}
	for _, s := range raw.Starts {
		enqueue(classOf[s])
	}
	for qi := 0; qi < len(order); qi++ {
		c := order[qi]
		rep := raw.States[representative[c]]
		for _, tr := range rep.Transitions {
			enqueue(classOf[int(tr.Target)])
		}
	}

	out := &RawDfa[Tag]{States: make([]DfaStateInfo[Tag], len(order))}
	for newIdx, c := range order {
		rep := raw.States[representative[c]]
		info := DfaStateInfo[Tag]{HasAccept: rep.HasAccept, Accept: rep.Accept}
		for _, tr := range rep.Transitions {
			info.Transitions = append(info.Transitions, RawTransition{
				First:  tr.First,
				Last:   tr.Last,
				Target: StateID(index[classOf[int(tr.Target)]]),
			})
		}
		out.States[newIdx] = info
	}
	out.Starts = make([]StateID, len(raw.Starts))
	for i, s := range raw.Starts {
		out.Starts[i] = StateID(index[classOf[s]])
	}
	return out
}
