package deck

import (
	"errors"
	rand "math/rand/v2"
)

// Size is the number of cards in a complete deck
const Size = 100

// Deck is the draw pile. The top of the deck is the last element.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// Build returns the canonical 100 cards ordered by color, then by subtype:
// one 0, two each of 1-9, two Skip, two Reverse and two DrawTwo per color.
func Build() []Card {
	cards := make([]Card, 0, Size)
	for _, color := range Colors {
		cards = append(cards, NewNumber(color, 0))
		for n := 1; n <= 9; n++ {
			cards = append(cards, NewNumber(color, n), NewNumber(color, n))
		}
		for _, kind := range []Kind{Skip, Reverse, DrawTwo} {
			cards = append(cards, NewAction(color, kind), NewAction(color, kind))
		}
	}
	return cards
}

// New creates an unshuffled full deck that shuffles with rng
func New(rng *rand.Rand) *Deck {
	if rng == nil {
		panic("rng is required for deck creation")
	}
	return &Deck{cards: Build(), rng: rng}
}

// FromCards creates a deck holding exactly cards, last element on top
func FromCards(rng *rand.Rand, cards []Card) *Deck {
	return &Deck{cards: append([]Card(nil), cards...), rng: rng}
}

// Shuffle randomizes the order of cards in the deck
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the top card. It panics on an empty deck;
// callers guard with IsEmpty or use TryDraw.
func (d *Deck) Draw() Card {
	card, ok := d.TryDraw()
	if !ok {
		panic(ErrEmptyDeck)
	}
	return card
}

// TryDraw removes and returns the top card, or false if the deck is empty
func (d *Deck) TryDraw() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card, true
}

// Refill puts cards back into the deck and shuffles it
func (d *Deck) Refill(cards []Card) {
	d.cards = append(d.cards, cards...)
	d.Shuffle()
}

// Len returns the number of cards left in the deck
func (d *Deck) Len() int {
	return len(d.cards)
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}

// Peek returns the top card without removing it
func (d *Deck) Peek() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	return d.cards[len(d.cards)-1], true
}

// Cards returns a copy of the remaining cards, bottom first
func (d *Deck) Cards() []Card {
	return append([]Card(nil), d.cards...)
}

// ErrEmptyDeck is the panic value for drawing from an empty deck
var ErrEmptyDeck = errors.New("draw from empty deck")
