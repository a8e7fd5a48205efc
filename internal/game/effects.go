package game

import "github.com/lox/unosim/internal/deck"

// applyEffect resolves the consequence of the card just discarded by the
// current player. Skip and DrawTwo move currentPlayer here; the normal
// end-of-turn step then moves past the skipped player.
func (e *Engine) applyEffect(card deck.Card) {
	switch card.Kind {
	case deck.Skip:
		skipped := e.next()
		e.publish(SkipEvent{Player: skipped, turn: e.turns})
		e.current = skipped

	case deck.Reverse:
		e.direction = e.direction.Reversed()
		e.publish(ReverseEvent{Direction: e.direction, turn: e.turns})

	case deck.DrawTwo:
		target := e.next()
		drawn := 0
		for i := 0; i < 2; i++ {
			c, ok := e.draw()
			if !ok {
				break
			}
			e.hands[target].Add(c)
			drawn++
		}
		e.publish(DrawTwoEvent{Target: target, Drawn: drawn, turn: e.turns})
		e.current = target
	}
}
