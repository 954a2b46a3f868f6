package charclass

import "unicode"

// Named Unicode category constants, pre-built at package init from the
// standard library's unicode.RangeTable data (see DESIGN.md for why this
// is the one standard-library-backed table in the module: no retrieved
// repo embeds or regenerates Unicode General Category data at runtime).
//
// Composite constants (Identifier, IdentifierStart, IdentifierPart, Word,
// WhitespaceHorizontal, WhitespaceVertical) are derived unions/exclusions
// of the primitive category constants, matching common lexer conventions
// (e.g. IdentifierStart = L ∪ {_}).
var (
	L  = fromRangeTable(unicode.L)
	Lu = fromRangeTable(unicode.Lu)
	Ll = fromRangeTable(unicode.Ll)
	Lt = fromRangeTable(unicode.Lt)
	Lm = fromRangeTable(unicode.Lm)
	Lo = fromRangeTable(unicode.Lo)

	M  = fromRangeTable(unicode.M)
	N  = fromRangeTable(unicode.N)
	Nd = fromRangeTable(unicode.Nd)
	Nl = fromRangeTable(unicode.Nl)
	No = fromRangeTable(unicode.No)

	P = fromRangeTable(unicode.P)
	S = fromRangeTable(unicode.S)
	Sc = fromRangeTable(unicode.Sc)
	Sm = fromRangeTable(unicode.Sm)

	Z  = fromRangeTable(unicode.Z)
	Zs = fromRangeTable(unicode.Zs)

	C  = fromRangeTable(unicode.C)
	Cc = fromRangeTable(unicode.Cc)

	// Identifier is the conventional "can appear anywhere in an
	// identifier" class: letters, digits, and underscore.
	Identifier = L.Union(Nd, AnyOf('_'))
	// IdentifierStart excludes digits, since identifiers may not begin
	// with one in most languages this pattern algebra targets.
	IdentifierStart = L.Union(AnyOf('_'))
	IdentifierPart  = Identifier

	// Word is the conventional regex \w class: identifier characters and
	// nothing else (no Unicode marks).
	Word = Identifier

	// WhitespaceHorizontal / WhitespaceVertical are the two conventional
	// axes used by lexer whitespace-skipping rules: horizontal is Unicode
	// Zs plus tab; vertical is the line-break characters \n, \v, \f, \r,
	// NEL (U+0085), LINE SEPARATOR and PARAGRAPH SEPARATOR.
	WhitespaceHorizontal = Zs.Union(AnyOf('\t'))
	WhitespaceVertical   = AnyOf('\n', '\v', '\f', '\r', 0x85, 0x2028, 0x2029)
)

// categories maps a category name to its pre-built CharRange, used by
// Category for name-based lookup.
var categories = map[string]CharRange{
	"L": L, "Lu": Lu, "Ll": Ll, "Lt": Lt, "Lm": Lm, "Lo": Lo,
	"M": M, "N": N, "Nd": Nd, "Nl": Nl, "No": No,
	"P": P, "S": S, "Sc": Sc, "Sm": Sm,
	"Z": Z, "Zs": Zs,
	"C": C, "Cc": Cc,
	"Identifier": Identifier, "IdentifierStart": IdentifierStart,
	"IdentifierPart": IdentifierPart, "Word": Word,
	"WhitespaceHorizontal": WhitespaceHorizontal,
	"WhitespaceVertical":   WhitespaceVertical,
}

// Category looks up a named Unicode category or composite class. For any
// name not in the curated set above, it falls back to a live scan of
// unicode.Categories (the standard library's full General Category table),
// so two-letter and single-letter codes the curated set omits (e.g. "Co",
// "Cs", "Pf") are still reachable.
func Category(name string) (CharRange, bool) {
	if r, ok := categories[name]; ok {
		return r, true
	}
	if rt, ok := unicode.Categories[name]; ok {
		return fromRangeTable(rt), true
	}
	return None(), false
}

// fromRangeTable converts a standard library unicode.RangeTable (16-bit
// and supplementary ranges) into a CharRange, dropping any range entirely
// above 0xFFFF and truncating one that straddles the boundary; code
// points beyond the BMP are outside this module's 16-bit universe.
func fromRangeTable(rt *unicode.RangeTable) CharRange {
	b := NewBuilder()
	for _, r16 := range rt.R16 {
		addStride(b, uint32(r16.Lo), uint32(r16.Hi), uint32(r16.Stride))
	}
	for _, r32 := range rt.R32 {
		if r32.Lo > maxCodeUnit {
			continue
		}
		hi := r32.Hi
		if hi > maxCodeUnit {
			hi = maxCodeUnit
		}
		addStride(b, r32.Lo, hi, r32.Stride)
	}
	return b.Build()
}

func addStride(b *Builder, lo, hi, stride uint32) {
	if stride == 0 {
		stride = 1
	}
	if stride == 1 {
		// Contiguous run: fold in one interval instead of one breakpoint
		// pair per code unit.
		b.Add(Range(uint16(lo), uint16(hi)))
		return
	}
	for c := lo; c <= hi && c <= maxCodeUnit; c += stride {
		b.Add(Single(uint16(c)))
	}
}
