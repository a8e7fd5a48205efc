package game

import "github.com/charmbracelet/log"

const (
	// DefaultSeed is the seed used when none is supplied
	DefaultSeed int64 = 1234
	// DefaultHandSize is the number of cards dealt to each player
	DefaultHandSize = 7
)

// Option configures an Engine during creation.
type Option func(*engineConfig)

type engineConfig struct {
	seed            int64
	handSize        int
	logger          *log.Logger
	eventBus        EventBus
	policy          Policy
	reshuffle       bool
	checkInvariants bool
}

// WithSeed sets the seed of the engine's random source
func WithSeed(seed int64) Option {
	return func(c *engineConfig) { c.seed = seed }
}

// WithHandSize sets the number of cards dealt to each player
func WithHandSize(n int) Option {
	return func(c *engineConfig) { c.handSize = n }
}

// WithLogger sets the logger; the engine logs turn detail at debug level
func WithLogger(logger *log.Logger) Option {
	return func(c *engineConfig) { c.logger = logger }
}

// WithEventBus publishes game events to bus instead of a private bus
func WithEventBus(bus EventBus) Option {
	return func(c *engineConfig) { c.eventBus = bus }
}

// WithPolicy replaces the agent's rule list
func WithPolicy(p Policy) Option {
	return func(c *engineConfig) { c.policy = p }
}

// WithReshuffle enables turning the discard pile (minus its top card) back
// into the deck when a draw finds the deck empty. Off by default: an empty
// deck normally just stops further draws.
func WithReshuffle(enabled bool) Option {
	return func(c *engineConfig) { c.reshuffle = enabled }
}

// WithInvariantChecks verifies after every turn that the cards in play are
// exactly one complete deck, panicking otherwise.
func WithInvariantChecks(enabled bool) Option {
	return func(c *engineConfig) { c.checkInvariants = enabled }
}
