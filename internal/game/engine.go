package game

import (
	"fmt"
	"io"
	rand "math/rand/v2"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lox/unosim/internal/deck"
	"github.com/lox/unosim/internal/randutil"
)

// Engine runs a single game. It is not safe for concurrent use.
type Engine struct {
	numPlayers int
	cfg        engineConfig
	logger     *log.Logger
	eventBus   EventBus

	rng         *rand.Rand
	deck        *deck.Deck
	hands       []*Hand
	discard     []deck.Card
	current     int
	direction   Direction
	turns       int
	idlePasses  int
	initialized bool
}

// Snapshot is a read-only copy of the observable game state
type Snapshot struct {
	CurrentPlayer int
	Direction     Direction
	Top           deck.Card
	HandSizes     []int
	DeckSize      int
	DiscardSize   int
	Turns         int
	GameOver      bool
	Winner        int
}

// NewEngine creates an engine for numPlayers players. Call Initialize to deal.
func NewEngine(numPlayers int, opts ...Option) (*Engine, error) {
	if numPlayers < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPlayers, numPlayers)
	}

	cfg := engineConfig{
		seed:     DefaultSeed,
		handSize: DefaultHandSize,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.handSize < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidHandSize, cfg.handSize)
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}
	if cfg.eventBus == nil {
		cfg.eventBus = NewEventBus()
	}
	if cfg.policy == nil {
		cfg.policy = DefaultPolicy()
	}

	return &Engine{
		numPlayers: numPlayers,
		cfg:        cfg,
		logger:     cfg.logger.WithPrefix("engine"),
		eventBus:   cfg.eventBus,
		direction:  Clockwise,
	}, nil
}

// EventBus returns the bus the engine publishes to
func (e *Engine) EventBus() EventBus {
	return e.eventBus
}

// NumPlayers returns the number of players
func (e *Engine) NumPlayers() int {
	return e.numPlayers
}

// Seed returns the seed the deck is shuffled with
func (e *Engine) Seed() int64 {
	return e.cfg.seed
}

// Initialize builds and shuffles the deck, deals each player a hand one card
// at a time in player order, and turns one card onto the discard pile. Calling
// it again restarts the same game from the beginning.
func (e *Engine) Initialize() error {
	needed := e.numPlayers*e.cfg.handSize + 1
	if needed > deck.Size {
		return fmt.Errorf("%w: %d players x %d cards needs %d, deck has %d",
			ErrDeckTooSmall, e.numPlayers, e.cfg.handSize, needed, deck.Size)
	}

	e.rng = randutil.New(e.cfg.seed)
	e.deck = deck.New(e.rng)
	e.deck.Shuffle()

	e.hands = make([]*Hand, e.numPlayers)
	for i := range e.hands {
		e.hands[i] = NewHand()
	}
	for slot := 0; slot < e.cfg.handSize; slot++ {
		for p := 0; p < e.numPlayers; p++ {
			e.hands[p].Add(e.deck.Draw())
		}
	}
	e.discard = []deck.Card{e.deck.Draw()}

	e.current = 0
	e.direction = Clockwise
	e.turns = 0
	e.idlePasses = 0
	e.initialized = true

	e.logger.Debug("Dealt game",
		"players", e.numPlayers,
		"handSize", e.cfg.handSize,
		"seed", e.cfg.seed,
		"top", e.Top().String(),
		"deck", e.deck.Len())
	return nil
}

// PlayTurn resolves one turn for the current player. It is a no-op once the
// game is over.
func (e *Engine) PlayTurn() error {
	if !e.initialized {
		return ErrNotInitialized
	}
	if e.IsGameOver() {
		return nil
	}

	e.turns++
	player := e.current
	hand := e.hands[player]
	top := e.Top()

	e.publish(TurnStartEvent{Player: player, HandSize: hand.Len(), Top: top, turn: e.turns})

	if decision, ok := e.cfg.policy.Decide(hand.cards, top); ok {
		card := hand.RemoveAt(decision.Index)
		e.discard = append(e.discard, card)
		e.idlePasses = 0

		e.logger.Debug("Played card", "player", player, "card", card.String(), "rule", decision.Rule, "left", hand.Len())
		e.publish(CardPlayedEvent{Player: player, Card: card, Rule: decision.Rule, turn: e.turns})
		if hand.Len() == 1 {
			e.publish(UnoEvent{Player: player, turn: e.turns})
		}
		e.applyEffect(card)
	} else if drawn, ok := e.draw(); ok {
		e.idlePasses = 0
		if CanPlay(drawn, top) {
			e.discard = append(e.discard, drawn)
			e.logger.Debug("Drew and played card", "player", player, "card", drawn.String())
			e.publish(CardDrawnEvent{Player: player, Card: drawn, Kept: false, turn: e.turns})
			e.publish(CardPlayedEvent{Player: player, Card: drawn, FromDraw: true, turn: e.turns})
			e.applyEffect(drawn)
		} else {
			hand.Add(drawn)
			e.logger.Debug("Drew card", "player", player, "card", drawn.String(), "hand", hand.Len())
			e.publish(CardDrawnEvent{Player: player, Card: drawn, Kept: true, turn: e.turns})
		}
	} else {
		e.idlePasses++
		e.logger.Debug("Passed with empty deck", "player", player)
		e.publish(PassEvent{Player: player, turn: e.turns})
	}

	e.current = e.next()

	if e.cfg.checkInvariants {
		e.mustBeConsistent()
	}
	if winner := e.Winner(); winner >= 0 {
		e.logger.Debug("Game over", "winner", winner, "turns", e.turns)
		e.publish(GameOverEvent{Winner: winner, turn: e.turns})
	}
	return nil
}

// IsGameOver returns true once any player has emptied their hand
func (e *Engine) IsGameOver() bool {
	return e.Winner() >= 0
}

// Winner returns the lowest index of a player with no cards, or -1
func (e *Engine) Winner() int {
	for i, h := range e.hands {
		if h.IsEmpty() {
			return i
		}
	}
	return -1
}

// Stalled returns true when every player in a row has passed on an empty
// deck. Nothing can change after that, so further turns are pointless.
func (e *Engine) Stalled() bool {
	return e.initialized && !e.IsGameOver() && e.idlePasses >= e.numPlayers
}

// Top returns the active card. It panics if the discard pile is empty.
func (e *Engine) Top() deck.Card {
	if len(e.discard) == 0 {
		panic("top card requested from empty discard pile")
	}
	return e.discard[len(e.discard)-1]
}

// CurrentPlayer returns the index of the player to act next
func (e *Engine) CurrentPlayer() int {
	return e.current
}

// Direction returns the current turn order direction
func (e *Engine) Direction() Direction {
	return e.direction
}

// Turns returns the number of turns played since Initialize
func (e *Engine) Turns() int {
	return e.turns
}

// Hand returns a copy of a player's cards in hand order
func (e *Engine) Hand(player int) []deck.Card {
	return e.hands[player].Cards()
}

// DeckSize returns the number of cards left to draw
func (e *Engine) DeckSize() int {
	if e.deck == nil {
		return 0
	}
	return e.deck.Len()
}

// DiscardSize returns the number of cards on the discard pile
func (e *Engine) DiscardSize() int {
	return len(e.discard)
}

// State renders the current player, direction, top card and hand sizes
func (e *Engine) State() (string, error) {
	if !e.initialized {
		return "", ErrNotInitialized
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Player %d's turn, Direction: %s, Top: %s, Players cards: ",
		e.current, e.direction, e.Top())
	for i, h := range e.hands {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "P%d:%d", i, h.Len())
	}
	return b.String(), nil
}

// Snapshot returns a copy of the observable state
func (e *Engine) Snapshot() (Snapshot, error) {
	if !e.initialized {
		return Snapshot{}, ErrNotInitialized
	}

	sizes := make([]int, len(e.hands))
	for i, h := range e.hands {
		sizes[i] = h.Len()
	}
	winner := e.Winner()
	return Snapshot{
		CurrentPlayer: e.current,
		Direction:     e.direction,
		Top:           e.Top(),
		HandSizes:     sizes,
		DeckSize:      e.deck.Len(),
		DiscardSize:   len(e.discard),
		Turns:         e.turns,
		GameOver:      winner >= 0,
		Winner:        winner,
	}, nil
}

// Census counts every card in the deck, the hands and the discard pile
func (e *Engine) Census() deck.Census {
	piles := make([][]deck.Card, 0, len(e.hands)+2)
	if e.deck != nil {
		piles = append(piles, e.deck.Cards())
	}
	piles = append(piles, e.discard)
	for _, h := range e.hands {
		piles = append(piles, h.cards)
	}
	return deck.Count(piles...)
}

func (e *Engine) next() int {
	return Next(e.current, e.direction, e.numPlayers)
}

// draw takes the top card of the deck, reshuffling the discard pile into the
// deck first when that extension is enabled.
func (e *Engine) draw() (deck.Card, bool) {
	if e.deck.IsEmpty() && e.cfg.reshuffle && len(e.discard) > 1 {
		top := e.discard[len(e.discard)-1]
		recycled := e.discard[:len(e.discard)-1]
		e.deck.Refill(recycled)
		e.discard = []deck.Card{top}
		e.logger.Debug("Reshuffled discard pile", "cards", len(recycled))
		e.publish(ReshuffleEvent{Cards: len(recycled), turn: e.turns})
	}
	return e.deck.TryDraw()
}

func (e *Engine) mustBeConsistent() {
	if diff := e.Census().Diff(deck.Canonical()); diff != "" {
		panic(fmt.Sprintf("card invariant violated after turn %d: %s", e.turns, diff))
	}
	if e.current < 0 || e.current >= e.numPlayers {
		panic(fmt.Sprintf("current player %d out of range after turn %d", e.current, e.turns))
	}
}

func (e *Engine) publish(event GameEvent) {
	e.eventBus.Publish(event)
}
