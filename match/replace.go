package match

import "github.com/coregx/dfalex/charclass"

// StringReplacement rewrites one matched range src[start:end] by appending
// code units to *dest, and returns the number of additional source code
// units to skip past end before resuming the search, which lets a
// replacement consume trailing context beyond its own match. A replacement
// that doesn't need to consume extra input returns 0.
type StringReplacement func(dest *[]uint16, src []uint16, start, end int) int

// Ignore copies the matched range verbatim.
func Ignore(dest *[]uint16, src []uint16, start, end int) int {
	*dest = append(*dest, src[start:end]...)
	return 0
}

// Delete drops the matched range entirely.
func Delete(dest *[]uint16, src []uint16, start, end int) int {
	return 0
}

// ToUpper copies the matched range with every code unit case-folded
// upward.
func ToUpper(dest *[]uint16, src []uint16, start, end int) int {
	for _, c := range src[start:end] {
		*dest = append(*dest, charclass.ToUpper(c))
	}
	return 0
}

// ToLower copies the matched range with every code unit case-folded
// downward.
func ToLower(dest *[]uint16, src []uint16, start, end int) int {
	for _, c := range src[start:end] {
		*dest = append(*dest, charclass.ToLower(c))
	}
	return 0
}

// SpaceOrNewline collapses a matched whitespace run to a single space,
// unless the run contained a newline (\n or \r), in which case it
// collapses to a single \n.
func SpaceOrNewline(dest *[]uint16, src []uint16, start, end int) int {
	hasNewline := false
	for _, c := range src[start:end] {
		if c == '\n' || c == '\r' {
			hasNewline = true
			break
		}
	}
	if hasNewline {
		*dest = append(*dest, '\n')
	} else {
		*dest = append(*dest, ' ')
	}
	return 0
}

// Literal replaces every matched range with the fixed code-unit sequence s,
// ignoring the matched text entirely.
func Literal(s []uint16) StringReplacement {
	return func(dest *[]uint16, src []uint16, start, end int) int {
		*dest = append(*dest, s...)
		return 0
	}
}

// Surround wraps inner's output for the matched range between the fixed
// prefix and suffix code-unit sequences. The skip inner requests is
// passed through unchanged.
func Surround(prefix []uint16, inner StringReplacement, suffix []uint16) StringReplacement {
	return func(dest *[]uint16, src []uint16, start, end int) int {
		*dest = append(*dest, prefix...)
		skip := inner(dest, src, start, end)
		*dest = append(*dest, suffix...)
		return skip
	}
}
