package builder

import (
	"testing"

	"github.com/coregx/dfalex/automaton"
	"github.com/coregx/dfalex/charclass"
	"github.com/coregx/dfalex/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func walk(dfa *automaton.PackedDfa[string], language int, input string) (string, bool) {
	s := dfa.Start(language)
	for i := 0; i < len(input); i++ {
		next, ok := s.NextState(uint16(input[i]))
		if !ok {
			return "", false
		}
		s = next
	}
	return s.Match()
}

func digits() charclass.CharRange {
	return charclass.Range('0', '9')
}

// TestBuildSingleLanguageDispatchesByTag covers the common "one build, one
// language, several tags" shape: each tag's pattern should only accept its
// own literal.
func TestBuildSingleLanguageDispatchesByTag(t *testing.T) {
	var b DfaBuilder[string]
	b.AddPattern(pattern.Literal("cat"), "CAT")
	b.AddPattern(pattern.Literal("dog"), "DOG")

	all := Language[string]{"CAT": true, "DOG": true}
	dfa, err := b.Build([]Language[string]{all}, nil)
	require.NoError(t, err)
	require.Equal(t, 1, dfa.NumStarts())

	tag, ok := walk(dfa, 0, "cat")
	require.True(t, ok)
	assert.Equal(t, "CAT", tag)

	tag, ok = walk(dfa, 0, "dog")
	require.True(t, ok)
	assert.Equal(t, "DOG", tag)

	_, ok = walk(dfa, 0, "cow")
	assert.False(t, ok)
}

// TestBuildMultiplePatternsUnderOneTag covers AddPattern's "multiple
// patterns under the same tag are alternatives" rule.
func TestBuildMultiplePatternsUnderOneTag(t *testing.T) {
	var b DfaBuilder[string]
	b.AddPattern(pattern.Literal("true"), "BOOL")
	b.AddPattern(pattern.Literal("false"), "BOOL")

	all := Language[string]{"BOOL": true}
	dfa, err := b.Build([]Language[string]{all}, nil)
	require.NoError(t, err)

	for _, in := range []string{"true", "false"} {
		tag, ok := walk(dfa, 0, in)
		require.True(t, ok, "input %q", in)
		assert.Equal(t, "BOOL", tag)
	}
}

// TestBuildMultipleLanguagesGetIndependentStarts covers one build producing
// several start states, one per requested Language, each scoped to a
// different tag subset.
func TestBuildMultipleLanguagesGetIndependentStarts(t *testing.T) {
	var b DfaBuilder[string]
	b.AddPattern(pattern.Literal("cat"), "CAT")
	b.AddPattern(pattern.Literal("dog"), "DOG")

	onlyCat := Language[string]{"CAT": true}
	onlyDog := Language[string]{"DOG": true}
	dfa, err := b.Build([]Language[string]{onlyCat, onlyDog}, nil)
	require.NoError(t, err)
	require.Equal(t, 2, dfa.NumStarts())

	_, ok := walk(dfa, 0, "dog")
	assert.False(t, ok, "language 0 (CAT only) should not accept dog")
	tag, ok := walk(dfa, 0, "cat")
	require.True(t, ok)
	assert.Equal(t, "CAT", tag)

	_, ok = walk(dfa, 1, "cat")
	assert.False(t, ok, "language 1 (DOG only) should not accept cat")
	tag, ok = walk(dfa, 1, "dog")
	require.True(t, ok)
	assert.Equal(t, "DOG", tag)
}

// TestBuildAmbiguityInvokesResolver covers the caller-supplied
// AmbiguityResolver path: two tags' patterns accept the same string at the
// same position.
func TestBuildAmbiguityInvokesResolver(t *testing.T) {
	var b DfaBuilder[string]
	b.AddPattern(pattern.Literal("12"), "LIT")
	b.AddPattern(pattern.Repeat1(pattern.Char(digits())), "NUM")

	all := Language[string]{"LIT": true, "NUM": true}

	_, err := b.Build([]Language[string]{all}, nil)
	require.Error(t, err, "default resolver must fail on ambiguity")
	var ambErr *automaton.AmbiguityError[string]
	require.ErrorAs(t, err, &ambErr)

	preferLit := func(tags []string) (string, error) {
		for _, tag := range tags {
			if tag == "LIT" {
				return tag, nil
			}
		}
		return tags[0], nil
	}
	dfa, err := b.Build([]Language[string]{all}, preferLit)
	require.NoError(t, err)
	tag, ok := walk(dfa, 0, "12")
	require.True(t, ok)
	assert.Equal(t, "LIT", tag)
}

// TestClearResetsAccumulatedPatterns covers Clear's "empties the builder's
// pattern map" contract.
func TestClearResetsAccumulatedPatterns(t *testing.T) {
	var b DfaBuilder[string]
	b.AddPattern(pattern.Literal("cat"), "CAT")
	b.Clear()
	b.AddPattern(pattern.Literal("dog"), "DOG")

	all := Language[string]{"CAT": true, "DOG": true}
	dfa, err := b.Build([]Language[string]{all}, nil)
	require.NoError(t, err)

	_, ok := walk(dfa, 0, "cat")
	assert.False(t, ok, "Clear should have dropped the CAT pattern")
	tag, ok := walk(dfa, 0, "dog")
	require.True(t, ok)
	assert.Equal(t, "DOG", tag)
}

// TestCacheKeyStableAndSensitiveToPatterns: identical builds produce
// identical keys, and changing the pattern set changes the key.
func TestCacheKeyStableAndSensitiveToPatterns(t *testing.T) {
	var b1 DfaBuilder[string]
	b1.AddPattern(pattern.Literal("cat"), "CAT")
	var b2 DfaBuilder[string]
	b2.AddPattern(pattern.Literal("cat"), "CAT")

	all := Language[string]{"CAT": true}
	assert.Equal(t, b1.CacheKey(0, []Language[string]{all}), b2.CacheKey(0, []Language[string]{all}))

	var b3 DfaBuilder[string]
	b3.AddPattern(pattern.Literal("dog"), "CAT")
	assert.NotEqual(t, b1.CacheKey(0, []Language[string]{all}), b3.CacheKey(0, []Language[string]{all}))

	assert.NotEqual(t, b1.CacheKey(0, []Language[string]{all}), b1.CacheKey(1, []Language[string]{all}),
		"dfaType must be mixed into the key (forward vs reverse build)")
}
