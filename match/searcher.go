package match

import (
	"github.com/coregx/dfalex/automaton"
	"github.com/coregx/dfalex/builder"
)

// Match is one result from StringSearcher.FindAll: the half-open code-unit
// range [Start, End) and the tag of the pattern that matched there.
type Match[Tag comparable] struct {
	Start, End int
	Tag        Tag
}

// StringSearcher finds every non-overlapping match in a string in
// left-to-right order. It pairs a forward StringMatcher (language 0, the
// single "all patterns" language BuildStringSearcher produces) with the
// reverse finder that prunes candidate start positions.
type StringSearcher[Tag comparable] struct {
	matcher   *StringMatcher[Tag]
	reverse   *automaton.PackedDfa[bool]
	prefilter *builder.LiteralPrefilter
}

// NewStringSearcher returns a StringSearcher over fwd (language 0) guided
// by the reverse finder rev. Both are normally the pair returned by
// builder.DfaBuilder.BuildStringSearcher.
func NewStringSearcher[Tag comparable](fwd *automaton.PackedDfa[Tag], rev *automaton.PackedDfa[bool]) *StringSearcher[Tag] {
	return &StringSearcher[Tag]{matcher: NewStringMatcher(fwd, 0), reverse: rev}
}

// WithLiteralPrefilter attaches an Aho-Corasick fast-reject prefilter (see
// builder.DfaBuilder.BuildLiteralPrefilter) to s and returns s. When every
// pattern in a build is a plain literal, FindAll consults the prefilter
// before running the reverse-finder/DFA passes at all: a haystack the
// prefilter reports no match in cannot match any pattern, so the full
// scan is skipped entirely.
func (s *StringSearcher[Tag]) WithLiteralPrefilter(p *builder.LiteralPrefilter) *StringSearcher[Tag] {
	s.prefilter = p
	return s
}

// FindAll scans text once with the reverse finder (right-to-left) to flag
// every position some non-empty match could start at, then scans
// left-to-right, running the forward matcher only at flagged positions
// and advancing past each match it finds. Matches are returned in
// strictly increasing, non-overlapping start order.
func (s *StringSearcher[Tag]) FindAll(text []uint16) []Match[Tag] {
	if s.prefilter != nil && !s.prefilter.IsMatch(builder.EncodeCodeUnits(text)) {
		return nil
	}

	flagged := s.flagStarts(text)

	var out []Match[Tag]
	for i := 0; i < len(text); {
		if flagged[i] {
			if end, tag, ok := s.matcher.MatchAt(text, i); ok {
				out = append(out, Match[Tag]{Start: i, End: end, Tag: tag})
				i = end
				continue
			}
		}
		i++
	}
	return out
}

// flagStarts drives the reverse finder right-to-left over the whole of
// text, recording the set of positions where it accepts: candidate
// non-empty match start positions. BuildReverseFinders
// prepends a MaybeRepeat(CharRange.All) self-loop, so in practice this
// automaton never dies mid-scan; the live check below only guards against
// a hand-built reverse PackedDfa that omits that prefix.
func (s *StringSearcher[Tag]) flagStarts(text []uint16) []bool {
	flagged := make([]bool, len(text))
	state := s.reverse.Start(0)
	for i := len(text) - 1; i >= 0; i-- {
		next, live := state.NextState(text[i])
		if !live {
			break
		}
		state = next
		if _, has := state.Match(); has {
			flagged[i] = true
		}
	}
	return flagged
}
