package match

import (
	"testing"

	"github.com/coregx/dfalex/automaton"
	"github.com/coregx/dfalex/builder"
	"github.com/coregx/dfalex/charclass"
	"github.com/coregx/dfalex/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// units converts an ASCII string to the []uint16 code-unit form every
// driver in this package operates on.
func units(s string) []uint16 {
	out := make([]uint16, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = uint16(s[i])
	}
	return out
}

func alpha() charclass.CharRange {
	return charclass.Range('a', 'z').Union(charclass.Range('A', 'Z'))
}

func identPattern() pattern.Pattern {
	head := alpha().Union(charclass.Single('_'))
	tail := head.Union(charclass.Range('0', '9'))
	return pattern.Seq(pattern.Char(head), pattern.Repeat(pattern.Char(tail)))
}

// preferFirstDeclared resolves an ambiguous accept by picking whichever tag
// was declared first to DfaBuilder.AddPattern, the common lexer-generator
// convention ("keyword" patterns registered ahead of a generic identifier
// pattern win ties), exercised by the tokenizer scenarios below. It relies
// on DfaFromNfa's documented determinism: within one ambiguous DFA state,
// tags are collected in ascending NFA StateID order, and accept states for
// earlier-added tags always get lower StateIDs (see builder.Build).
func preferFirstDeclared(tags []string) (string, error) {
	return tags[0], nil
}

// TestMatchAtLongestMatchWins: {IF -> "if",
// ID -> [A-Za-z_][A-Za-z0-9_]*} on "if ifx" should resolve "ifx" to ID
// (longest match), not stop early at the IF prefix. "if" itself is
// ambiguous (it satisfies both IF and ID), resolved here in favor of the
// earlier-declared IF tag.
func TestMatchAtLongestMatchWins(t *testing.T) {
	var b builder.DfaBuilder[string]
	b.AddPattern(pattern.Literal("if"), "IF")
	b.AddPattern(identPattern(), "ID")

	all := builder.Language[string]{"IF": true, "ID": true}
	dfa, err := b.Build([]builder.Language[string]{all}, preferFirstDeclared)
	require.NoError(t, err)

	m := NewStringMatcher(dfa, 0)
	text := units("if ifx")

	end, tag, ok := m.MatchAt(text, 0)
	require.True(t, ok)
	assert.Equal(t, 2, end)
	assert.Equal(t, "IF", tag)

	end, tag, ok = m.MatchAt(text, 3)
	require.True(t, ok)
	assert.Equal(t, 6, end)
	assert.Equal(t, "ID", tag)
}

// TestMatchAtNoMatchReturnsFalse: matching never fails, it returns no
// match.
func TestMatchAtNoMatchReturnsFalse(t *testing.T) {
	var b builder.DfaBuilder[string]
	b.AddPattern(pattern.Literal("if"), "IF")
	all := builder.Language[string]{"IF": true}
	dfa, err := b.Build([]builder.Language[string]{all}, nil)
	require.NoError(t, err)

	m := NewStringMatcher(dfa, 0)
	_, _, ok := m.MatchAt(units("xyz"), 0)
	assert.False(t, ok)
}

func buildMatcherAndSearcher(t *testing.T, b *builder.DfaBuilder[string]) *StringSearcher[string] {
	t.Helper()
	return buildMatcherAndSearcherWithResolver(t, b, nil)
}

func buildMatcherAndSearcherWithResolver(t *testing.T, b *builder.DfaBuilder[string], resolve automaton.AmbiguityResolver[string]) *StringSearcher[string] {
	t.Helper()
	fwd, rev, err := b.BuildStringSearcher(resolve)
	require.NoError(t, err)
	return NewStringSearcher(fwd, rev)
}

// TestFindAllNonOverlappingOrder covers the "IF"/"ID" tokenizer scenario
// through the full reverse-finder-guided search path.
func TestFindAllNonOverlappingOrder(t *testing.T) {
	var b builder.DfaBuilder[string]
	b.AddPattern(pattern.Literal("if"), "IF")
	b.AddPattern(identPattern(), "ID")

	s := buildMatcherAndSearcherWithResolver(t, &b, preferFirstDeclared)
	matches := s.FindAll(units("if ifx"))

	require.Len(t, matches, 2)
	assert.Equal(t, Match[string]{Start: 0, End: 2, Tag: "IF"}, matches[0])
	assert.Equal(t, Match[string]{Start: 3, End: 6, Tag: "ID"}, matches[1])
}

// TestFindAllSkipsNonMatchingRegions exercises the reverse-finder prefilter
// against input with long non-matching runs between matches.
func TestFindAllSkipsNonMatchingRegions(t *testing.T) {
	var b builder.DfaBuilder[string]
	b.AddPattern(identPattern(), "ID")

	s := buildMatcherAndSearcher(t, &b)
	matches := s.FindAll(units("   ...   hello   ...   world   "))

	require.Len(t, matches, 2)
	assert.Equal(t, "hello", sliceString(units("   ...   hello   ...   world   "), matches[0]))
	assert.Equal(t, "world", sliceString(units("   ...   hello   ...   world   "), matches[1]))
}

func sliceString(text []uint16, m Match[string]) string {
	b := make([]byte, m.End-m.Start)
	for i, c := range text[m.Start:m.End] {
		b[i] = byte(c)
	}
	return string(b)
}

// TestFindAllEmptyInput covers the degenerate zero-length input.
func TestFindAllEmptyInput(t *testing.T) {
	var b builder.DfaBuilder[string]
	b.AddPattern(identPattern(), "ID")
	s := buildMatcherAndSearcher(t, &b)
	assert.Empty(t, s.FindAll(nil))
}

// TestFindAllWithLiteralPrefilterRejectsNonMatchingHaystack covers the
// Aho-Corasick fast-reject path: when every pattern is a plain literal,
// attaching the prefilter lets FindAll short-circuit a haystack containing
// none of them without ever driving the reverse finder or the DFA.
func TestFindAllWithLiteralPrefilterRejectsNonMatchingHaystack(t *testing.T) {
	var b builder.DfaBuilder[string]
	b.AddPattern(pattern.Literal("cat"), "CAT")
	b.AddPattern(pattern.Literal("dog"), "DOG")

	s := buildMatcherAndSearcher(t, &b)
	prefilter, ok, err := b.BuildLiteralPrefilter()
	require.NoError(t, err)
	require.True(t, ok)
	s.WithLiteralPrefilter(prefilter)

	assert.Empty(t, s.FindAll(units("the quick brown fox")))

	matches := s.FindAll(units("the cat sat"))
	require.Len(t, matches, 1)
	assert.Equal(t, Match[string]{Start: 4, End: 7, Tag: "CAT"}, matches[0])
}
