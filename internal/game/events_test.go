package game

import (
	"strings"
	"testing"

	"github.com/lox/unosim/internal/deck"
	"github.com/stretchr/testify/assert"
)

type countingSubscriber struct {
	events []EventType
}

func (s *countingSubscriber) OnEvent(event GameEvent) {
	s.events = append(s.events, event.EventType())
}

func TestEventBusSubscribeUnsubscribe(t *testing.T) {
	bus := NewEventBus()
	a, b := &countingSubscriber{}, &countingSubscriber{}
	bus.Subscribe(a)
	bus.Subscribe(b)

	bus.Publish(PassEvent{Player: 0})
	bus.Unsubscribe(a)
	bus.Publish(UnoEvent{Player: 1})

	assert.Equal(t, []EventType{EventTypePass}, a.events)
	assert.Equal(t, []EventType{EventTypePass, EventTypeUno}, b.events)
}

func TestEventSubscriberFunc(t *testing.T) {
	var got []int
	bus := NewEventBus()
	bus.Subscribe(EventSubscriberFunc(func(ev GameEvent) { got = append(got, ev.Turn()) }))

	bus.Publish(SkipEvent{Player: 1, turn: 4})
	bus.Publish(ReverseEvent{Direction: CounterClockwise, turn: 5})
	assert.Equal(t, []int{4, 5}, got)
}

func TestEventRecorder(t *testing.T) {
	rec := &EventRecorder{}
	rec.OnEvent(UnoEvent{})
	rec.OnEvent(UnoEvent{})
	rec.OnEvent(PassEvent{})

	assert.Equal(t, 2, rec.Count(EventTypeUno))
	assert.Equal(t, 1, rec.Count(EventTypePass))

	rec.Reset()
	assert.Empty(t, rec.Events)
}

func TestEngineEventSequence(t *testing.T) {
	e, rec := newRiggedEngine(t, riggedGame{
		Hands:   []string{"Red Skip, Blue 9", "Yellow 2", "Yellow 3"},
		Deck:    "Green 1",
		Discard: "Red 5",
	})

	assert.NoError(t, e.PlayTurn())

	var types []EventType
	for _, ev := range rec.Events {
		types = append(types, ev.EventType())
		assert.Equal(t, 1, ev.Turn())
	}
	assert.Equal(t, []EventType{EventTypeTurnStart, EventTypeCardPlayed, EventTypeUno, EventTypeSkip}, types)
}

func TestEventFormatter(t *testing.T) {
	ef := NewEventFormatter(FormattingOptions{ShowTurnStarts: true, ShowRules: true})

	tests := []struct {
		event GameEvent
		want  string
	}{
		{TurnStartEvent{Player: 1, HandSize: 5, Top: card("Red 5"), turn: 3}, "Turn 3: Player 1 (5 cards) on Red 5"},
		{CardPlayedEvent{Player: 0, Card: card("Red 7"), Rule: "color"}, "Player 0 plays Red 7 (color match)"},
		{CardPlayedEvent{Player: 0, Card: card("Red 7"), FromDraw: true}, "Player 0 plays the drawn Red 7"},
		{CardDrawnEvent{Player: 2, Card: card("Blue Skip"), Kept: true}, "Player 2 draws Blue Skip"},
		{UnoEvent{Player: 1}, "UNO! Player 1 has one card left!"},
		{SkipEvent{Player: 2}, "Player 2 is skipped"},
		{ReverseEvent{Direction: CounterClockwise}, "Direction is now Counter-clockwise"},
		{DrawTwoEvent{Target: 1, Drawn: 2}, "Player 1 draws 2 and loses their turn"},
		{PassEvent{Player: 0}, "Player 0 passes, deck is empty"},
		{ReshuffleEvent{Cards: 40}, "Discard pile reshuffled, 40 cards back in the deck"},
		{GameOverEvent{Winner: 3, turn: 57}, "Player 3 wins after 57 turns"},
	}

	for _, tt := range tests {
		t.Run(string(tt.event.EventType()), func(t *testing.T) {
			assert.Equal(t, tt.want, ef.Format(tt.event))
		})
	}
}

func TestEventFormatterOptions(t *testing.T) {
	ef := NewEventFormatter(FormattingOptions{
		CardStyle: func(c deck.Card) string { return strings.ToUpper(c.String()) },
	})

	assert.Empty(t, ef.Format(TurnStartEvent{Player: 0, Top: card("Red 5")}))
	assert.Equal(t, "Player 0 plays RED 7", ef.Format(CardPlayedEvent{Player: 0, Card: card("Red 7"), Rule: "color"}))
}
