// Package builder implements DfaBuilder orchestration: accumulating
// patterns under caller-supplied tags, compiling them into one shared NFA,
// and driving automaton's subset construction and minimization to produce
// a PackedDfa with one start state per requested language. An optional
// BuilderCache keyed by the build's inputs short-circuits repeat builds.
package builder

import (
	"github.com/coregx/dfalex/automaton"
	"github.com/coregx/dfalex/internal/mixhash"
	"github.com/coregx/dfalex/pattern"
)

// Language is a set of tags a single build target should accept. Build
// allocates one DFA start state per Language, in the order given.
type Language[Tag comparable] map[Tag]bool

// DfaBuilder accumulates patterns under tags. The zero value is ready to
// use.
type DfaBuilder[Tag comparable] struct {
	order    []Tag
	patterns map[any][]pattern.Pattern
	config   *Config
}

// AddPattern appends p to tag's pattern list, keeping tags in insertion
// order. Multiple patterns under the same tag are alternatives that all
// resolve to that tag.
func (b *DfaBuilder[Tag]) AddPattern(p pattern.Pattern, tag Tag) {
	if b.patterns == nil {
		b.patterns = make(map[any][]pattern.Pattern)
	}
	key := any(tag)
	if _, ok := b.patterns[key]; !ok {
		b.order = append(b.order, tag)
	}
	b.patterns[key] = append(b.patterns[key], p)
}

// Clear empties the builder's pattern map.
func (b *DfaBuilder[Tag]) Clear() {
	b.order = nil
	b.patterns = nil
}

// Build constructs one NFA holding every tag's patterns, allocates one
// start state per language, and runs subset construction and minimization
// to produce the packed DFA. The returned PackedDfa's start i corresponds
// to languages[i].
func (b *DfaBuilder[Tag]) Build(languages []Language[Tag], resolve automaton.AmbiguityResolver[Tag]) (*automaton.PackedDfa[Tag], error) {
	raw, err := b.buildRaw(languages, resolve)
	if err != nil {
		return nil, err
	}
	if limit := b.effectiveConfig().MaxStates; limit > 0 && len(raw.States) > limit {
		return nil, &StateLimitError{States: len(raw.States), Limit: limit}
	}
	return automaton.FromRawDfa(automaton.Minimize(raw)), nil
}

func (b *DfaBuilder[Tag]) buildRaw(languages []Language[Tag], resolve automaton.AmbiguityResolver[Tag]) (*automaton.RawDfa[Tag], error) {
	n := automaton.New[Tag]()
	languageStarts := make([]automaton.StateID, len(languages))
	for i := range languages {
		languageStarts[i] = n.NewState()
	}

	for _, tag := range b.order {
		patterns := b.patterns[any(tag)]

		var inAnyLanguage bool
		for _, lang := range languages {
			if lang[tag] {
				inAnyLanguage = true
				break
			}
		}
		if !inAnyLanguage {
			continue
		}

		accept := n.NewState()
		n.SetAccept(accept, tag)

		var matchStart automaton.StateID
		if len(patterns) == 1 {
			matchStart = pattern.AddToNFA(patterns[0], n, accept)
		} else {
			intermediate := n.NewState()
			for _, p := range patterns {
				cs := pattern.AddToNFA(p, n, accept)
				n.AddEpsilon(intermediate, cs)
			}
			matchStart = intermediate
		}

		for i, lang := range languages {
			if lang[tag] {
				n.AddEpsilon(languageStarts[i], matchStart)
			}
		}
	}

	return automaton.DfaFromNfa(n, languageStarts, resolve)
}

// CacheKey computes the BuilderCache key for a (dfaType, languages,
// tagged patterns) build request. dfaType is 0 for a forward matcher
// build, 1 for a reverse-finder build.
func (b *DfaBuilder[Tag]) CacheKey(dfaType int, languages []Language[Tag]) string {
	s := mixhash.New()
	s.WriteUint64(uint64(dfaType))
	s.WriteUint64(uint64(len(languages)))

	for _, tag := range b.order {
		patterns := b.patterns[any(tag)]
		s.WriteUint64(uint64(len(patterns)))
		if len(languages) > 1 {
			var bitmap uint64
			for i, lang := range languages {
				if i < 64 && lang[tag] {
					bitmap |= 1 << uint(i)
				}
			}
			s.WriteUint64(bitmap)
		}
		for _, p := range patterns {
			s.WriteUint64(pattern.StructuralHash(p))
		}
	}
	return s.Sum32()
}
