// Package conv provides safe integer conversion helpers for the automaton
// package's state-arena bookkeeping.
//
// IntToUint32 performs a bounds check before narrowing a slice length or
// count into the StateID space, panicking on overflow since that indicates
// a programming error (more NFA/DFA states than a StateID can address)
// rather than any input the caller can recover from.
package conv

import "math"

// IntToUint32 safely converts an int to uint32.
// Panics if n < 0 or n > math.MaxUint32.
//
//go:inline
func IntToUint32(n int) uint32 {
	// Use uint for comparison to avoid overflow on 32-bit platforms
	// where int cannot represent math.MaxUint32
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}
