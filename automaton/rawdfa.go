package automaton

// RawTransition is one outgoing DFA transition: code units in
// [First, Last] advance to Target. A state's transitions are sorted by
// First and cover disjoint intervals; a code unit not covered by any
// transition is an implicit dead transition.
type RawTransition struct {
	First, Last uint16
	Target      StateID
}

// DfaStateInfo is one RawDfa state: at most one accept tag plus its sorted,
// disjoint outgoing transitions.
type DfaStateInfo[Tag comparable] struct {
	HasAccept   bool
	Accept      Tag
	Transitions []RawTransition
}

// RawDfa is the flat, fully-materialized DFA produced by subset
// construction and consumed by minimization.
type RawDfa[Tag comparable] struct {
	States []DfaStateInfo[Tag]
	// Starts holds one start-state index per language/build request, in
	// the order the caller supplied them.
	Starts []StateID
}
