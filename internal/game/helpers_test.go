package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/unosim/internal/deck"
	"github.com/lox/unosim/internal/randutil"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

// riggedGame describes a mid-game position. Cards are comma separated;
// the last card of Deck is drawn first and the last card of Discard is on top.
type riggedGame struct {
	Hands     []string
	Deck      string
	Discard   string
	Current   int
	Direction Direction
}

// newRiggedEngine builds an initialized engine in the position described by
// g, with a recorder subscribed to its events.
func newRiggedEngine(t *testing.T, g riggedGame, opts ...Option) (*Engine, *EventRecorder) {
	t.Helper()

	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	e, err := NewEngine(len(g.Hands), opts...)
	require.NoError(t, err)

	e.rng = randutil.New(1)
	e.deck = deck.FromCards(e.rng, deck.MustParseCards(g.Deck))
	e.hands = make([]*Hand, len(g.Hands))
	for i, h := range g.Hands {
		e.hands[i] = NewHand(deck.MustParseCards(h)...)
	}
	e.discard = deck.MustParseCards(g.Discard)
	require.NotEmpty(t, e.discard, "rigged game needs a top card")
	e.current = g.Current
	e.direction = Clockwise
	if g.Direction != 0 {
		e.direction = g.Direction
	}
	e.initialized = true

	rec := &EventRecorder{}
	e.EventBus().Subscribe(rec)
	return e, rec
}

func newDealtEngine(t *testing.T, players int, opts ...Option) *Engine {
	t.Helper()

	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	e, err := NewEngine(players, opts...)
	require.NoError(t, err)
	require.NoError(t, e.Initialize())
	return e
}

func cards(s string) []deck.Card {
	return deck.MustParseCards(s)
}

func card(s string) deck.Card {
	return deck.MustParseCards(s)[0]
}
