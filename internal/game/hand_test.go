package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandKeepsInsertionOrder(t *testing.T) {
	h := NewHand(cards("Red 1, Blue 2")...)
	h.Add(card("Green Skip"))
	assert.Equal(t, cards("Red 1, Blue 2, Green Skip"), h.Cards())
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, card("Blue 2"), h.At(1))
}

func TestHandRemoveAt(t *testing.T) {
	h := NewHand(cards("Red 1, Blue 2, Green 3")...)

	assert.Equal(t, card("Blue 2"), h.RemoveAt(1))
	assert.Equal(t, cards("Red 1, Green 3"), h.Cards())

	assert.Equal(t, card("Red 1"), h.RemoveAt(0))
	assert.Equal(t, card("Green 3"), h.RemoveAt(0))
	assert.True(t, h.IsEmpty())
}

func TestHandCardsIsACopy(t *testing.T) {
	h := NewHand(cards("Red 1")...)
	got := h.Cards()
	got[0] = card("Blue 9")
	assert.Equal(t, card("Red 1"), h.At(0))
}
