package game

import (
	"fmt"

	"github.com/lox/unosim/internal/deck"
)

// FormattingOptions controls how events are formatted for different contexts
type FormattingOptions struct {
	ShowTurnStarts bool                   // Emit a line for every turn start
	ShowRules      bool                   // Name the policy rule that chose each card
	CardStyle      func(deck.Card) string // Renders cards; defaults to Card.String
}

// EventFormatter provides centralized formatting for all game events
type EventFormatter struct {
	opts FormattingOptions
}

// NewEventFormatter creates a new event formatter with the given options
func NewEventFormatter(opts FormattingOptions) *EventFormatter {
	if opts.CardStyle == nil {
		opts.CardStyle = deck.Card.String
	}
	return &EventFormatter{opts: opts}
}

// Format renders event as a single line. It returns "" for events the
// options hide.
func (ef *EventFormatter) Format(event GameEvent) string {
	switch ev := event.(type) {
	case TurnStartEvent:
		if !ef.opts.ShowTurnStarts {
			return ""
		}
		return fmt.Sprintf("Turn %d: Player %d (%d cards) on %s", ev.turn, ev.Player, ev.HandSize, ef.card(ev.Top))
	case CardPlayedEvent:
		if ev.FromDraw {
			return fmt.Sprintf("Player %d plays the drawn %s", ev.Player, ef.card(ev.Card))
		}
		line := fmt.Sprintf("Player %d plays %s", ev.Player, ef.card(ev.Card))
		if ef.opts.ShowRules && ev.Rule != "" {
			line += fmt.Sprintf(" (%s match)", ev.Rule)
		}
		return line
	case CardDrawnEvent:
		return fmt.Sprintf("Player %d draws %s", ev.Player, ef.card(ev.Card))
	case UnoEvent:
		return fmt.Sprintf("UNO! Player %d has one card left!", ev.Player)
	case SkipEvent:
		return fmt.Sprintf("Player %d is skipped", ev.Player)
	case ReverseEvent:
		return fmt.Sprintf("Direction is now %s", ev.Direction)
	case DrawTwoEvent:
		return fmt.Sprintf("Player %d draws %d and loses their turn", ev.Target, ev.Drawn)
	case PassEvent:
		return fmt.Sprintf("Player %d passes, deck is empty", ev.Player)
	case ReshuffleEvent:
		return fmt.Sprintf("Discard pile reshuffled, %d cards back in the deck", ev.Cards)
	case GameOverEvent:
		return fmt.Sprintf("Player %d wins after %d turns", ev.Winner, ev.turn)
	default:
		return fmt.Sprintf("%s event", event.EventType())
	}
}

func (ef *EventFormatter) card(c deck.Card) string {
	return ef.opts.CardStyle(c)
}
