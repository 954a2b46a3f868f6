package builder

import (
	"errors"
	"fmt"

	"github.com/coregx/dfalex/automaton"
)

// Config tunes a DfaBuilder's build-time behavior.
type Config struct {
	// MaxStates caps the number of raw DFA states a build may produce: a
	// build whose subset construction yields more is rejected with a
	// *StateLimitError. The pipeline itself imposes no ceiling; this is the
	// caller-imposed limit for pathological pattern sets whose
	// determinization blows up. The count is checked after subset
	// construction completes, so the limit does not bound the time or
	// memory that construction itself uses.
	//
	// Default: 0 (unlimited)
	MaxStates int

	// CacheEnabled controls whether BuildCached consults and populates
	// its BuilderCache. When false, every BuildCached call compiles from
	// scratch, which is useful for benchmarking builds or ruling out a
	// suspect cache.
	//
	// Default: true
	CacheEnabled bool
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxStates:    0,
		CacheEnabled: true,
	}
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("builder: invalid config")

// Validate checks if the configuration is valid.
// Returns an error if any parameter is out of acceptable range.
func (c *Config) Validate() error {
	if c.MaxStates < 0 {
		return fmt.Errorf("%w: MaxStates must be >= 0", ErrInvalidConfig)
	}
	return nil
}

// WithMaxStates returns a new config with the specified state cap.
func (c Config) WithMaxStates(maxStates int) Config {
	c.MaxStates = maxStates
	return c
}

// StateLimitError is returned by a build whose subset construction
// produced more raw DFA states than Config.MaxStates allows.
type StateLimitError struct {
	States int
	Limit  int
}

func (e *StateLimitError) Error() string {
	return fmt.Sprintf("builder: DFA has %d states, exceeding the configured limit of %d", e.States, e.Limit)
}

// Configure validates cfg and applies it to the builder. An unconfigured
// builder behaves as DefaultConfig.
func (b *DfaBuilder[Tag]) Configure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	b.config = &cfg
	return nil
}

func (b *DfaBuilder[Tag]) effectiveConfig() Config {
	if b.config != nil {
		return *b.config
	}
	return DefaultConfig()
}

// BuildCached is Build with cache plumbing: it derives the build's cache
// key, serves a hit from cache, and stores the encoded result on a miss.
// With CacheEnabled false (or a nil cache) it degrades to a plain Build.
func (b *DfaBuilder[Tag]) BuildCached(
	languages []Language[Tag],
	resolve automaton.AmbiguityResolver[Tag],
	cache BuilderCache,
	encodeTag automaton.EncodeTag[Tag],
	decodeTag automaton.DecodeTag[Tag],
) (*automaton.PackedDfa[Tag], error) {
	if !b.effectiveConfig().CacheEnabled {
		cache = nil
	}
	key := b.CacheKey(0, languages)
	return GetOrBuild(cache, key, encodeTag, decodeTag, func() (*automaton.PackedDfa[Tag], error) {
		return b.Build(languages, resolve)
	})
}
