package game

import "github.com/lox/unosim/internal/deck"

// Hand holds one player's cards in the order they were received
type Hand struct {
	cards []deck.Card
}

// NewHand creates a hand holding cards
func NewHand(cards ...deck.Card) *Hand {
	return &Hand{cards: append([]deck.Card(nil), cards...)}
}

// Add appends a card
func (h *Hand) Add(card deck.Card) {
	h.cards = append(h.cards, card)
}

// RemoveAt removes and returns the card at index i, keeping the order of the rest
func (h *Hand) RemoveAt(i int) deck.Card {
	card := h.cards[i]
	h.cards = append(h.cards[:i], h.cards[i+1:]...)
	return card
}

// At returns the card at index i
func (h *Hand) At(i int) deck.Card {
	return h.cards[i]
}

// Len returns the number of cards held
func (h *Hand) Len() int {
	return len(h.cards)
}

// IsEmpty returns true when the player has no cards left
func (h *Hand) IsEmpty() bool {
	return len(h.cards) == 0
}

// Cards returns a copy of the cards in hand order
func (h *Hand) Cards() []deck.Card {
	return append([]deck.Card(nil), h.cards...)
}
