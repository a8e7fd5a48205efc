package game

import "github.com/lox/unosim/internal/deck"

// GameEvent represents anything that happens during a game
type GameEvent interface {
	EventType() EventType
	// Turn is the 1-based turn the event happened in
	Turn() int
}

// TurnStartEvent is published before the current player acts
type TurnStartEvent struct {
	Player   int
	HandSize int
	Top      deck.Card
	turn     int
}

func (e TurnStartEvent) EventType() EventType { return EventTypeTurnStart }
func (e TurnStartEvent) Turn() int            { return e.turn }

// CardPlayedEvent is published when a card goes onto the discard pile.
// FromDraw is set when the card was drawn and played in the same turn.
type CardPlayedEvent struct {
	Player   int
	Card     deck.Card
	Rule     string
	FromDraw bool
	turn     int
}

func (e CardPlayedEvent) EventType() EventType { return EventTypeCardPlayed }
func (e CardPlayedEvent) Turn() int            { return e.turn }

// CardDrawnEvent is published when a player with nothing to play draws.
// Kept is false when the drawn card was played straight away.
type CardDrawnEvent struct {
	Player int
	Card   deck.Card
	Kept   bool
	turn   int
}

func (e CardDrawnEvent) EventType() EventType { return EventTypeCardDrawn }
func (e CardDrawnEvent) Turn() int            { return e.turn }

// UnoEvent is published when a player is left holding a single card
type UnoEvent struct {
	Player int
	turn   int
}

func (e UnoEvent) EventType() EventType { return EventTypeUno }
func (e UnoEvent) Turn() int            { return e.turn }

// SkipEvent is published when a Skip takes away a player's turn
type SkipEvent struct {
	Player int
	turn   int
}

func (e SkipEvent) EventType() EventType { return EventTypeSkip }
func (e SkipEvent) Turn() int            { return e.turn }

// ReverseEvent is published when a Reverse flips the turn order
type ReverseEvent struct {
	Direction Direction
	turn      int
}

func (e ReverseEvent) EventType() EventType { return EventTypeReverse }
func (e ReverseEvent) Turn() int            { return e.turn }

// DrawTwoEvent is published when a DrawTwo hits Target. Drawn may be less
// than two when the deck runs out.
type DrawTwoEvent struct {
	Target int
	Drawn  int
	turn   int
}

func (e DrawTwoEvent) EventType() EventType { return EventTypeDrawTwo }
func (e DrawTwoEvent) Turn() int            { return e.turn }

// PassEvent is published when a player can neither play nor draw
type PassEvent struct {
	Player int
	turn   int
}

func (e PassEvent) EventType() EventType { return EventTypePass }
func (e PassEvent) Turn() int            { return e.turn }

// ReshuffleEvent is published when the discard pile is recycled into the deck
type ReshuffleEvent struct {
	Cards int
	turn  int
}

func (e ReshuffleEvent) EventType() EventType { return EventTypeReshuffle }
func (e ReshuffleEvent) Turn() int            { return e.turn }

// GameOverEvent is published after the turn in which a player went out
type GameOverEvent struct {
	Winner int
	turn   int
}

func (e GameOverEvent) EventType() EventType { return EventTypeGameOver }
func (e GameOverEvent) Turn() int            { return e.turn }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventSubscriberFunc adapts a function to EventSubscriber. Func values are
// not comparable, so a func subscriber cannot be passed to Unsubscribe.
type EventSubscriberFunc func(event GameEvent)

// OnEvent calls f(event)
func (f EventSubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus. Delivery is synchronous
// and in subscription order.
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}

// EventRecorder is a subscriber that keeps every event it receives
type EventRecorder struct {
	Events []GameEvent
}

// OnEvent records event
func (r *EventRecorder) OnEvent(event GameEvent) {
	r.Events = append(r.Events, event)
}

// Count returns how many recorded events have type t
func (r *EventRecorder) Count(t EventType) int {
	n := 0
	for _, ev := range r.Events {
		if ev.EventType() == t {
			n++
		}
	}
	return n
}

// Reset forgets all recorded events
func (r *EventRecorder) Reset() {
	r.Events = r.Events[:0]
}
