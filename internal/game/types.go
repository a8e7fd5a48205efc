package game

import "errors"

var (
	// ErrNotInitialized is returned by operations that need a dealt game
	ErrNotInitialized = errors.New("game not initialized")
	// ErrInvalidPlayers is returned when an engine is created with fewer than one player
	ErrInvalidPlayers = errors.New("at least one player required")
	// ErrInvalidHandSize is returned for a non-positive hand size
	ErrInvalidHandSize = errors.New("hand size must be positive")
	// ErrDeckTooSmall is returned when the deal needs more cards than the deck holds
	ErrDeckTooSmall = errors.New("not enough cards to deal")
)

// Direction is the turn order step, +1 or -1
type Direction int

const (
	Clockwise        Direction = 1
	CounterClockwise Direction = -1
)

// String returns the label used in state output
func (d Direction) String() string {
	if d == Clockwise {
		return "Clockwise"
	}
	return "Counter-clockwise"
}

// Reversed returns the opposite direction
func (d Direction) Reversed() Direction {
	return -d
}

// Next returns the player after current in the given direction. It is a
// bijection on [0, numPlayers) for any numPlayers >= 1.
func Next(current int, direction Direction, numPlayers int) int {
	return (current + int(direction) + numPlayers) % numPlayers
}
