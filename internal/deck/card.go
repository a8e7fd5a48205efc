package deck

import (
	"fmt"
	"strconv"
	"strings"
)

// Color represents one of the four card colors
type Color int

const (
	Red Color = iota
	Green
	Blue
	Yellow
)

// Colors lists every color in generation order
var Colors = []Color{Red, Green, Blue, Yellow}

// String returns the string representation of a color
func (c Color) String() string {
	switch c {
	case Red:
		return "Red"
	case Green:
		return "Green"
	case Blue:
		return "Blue"
	case Yellow:
		return "Yellow"
	default:
		return "?"
	}
}

// Kind distinguishes number cards from the action cards
type Kind int

const (
	Number Kind = iota
	Skip
	Reverse
	DrawTwo
)

// String returns the string representation of a kind
func (k Kind) String() string {
	switch k {
	case Number:
		return "Number"
	case Skip:
		return "Skip"
	case Reverse:
		return "Reverse"
	case DrawTwo:
		return "Draw Two"
	default:
		return "?"
	}
}

// IsAction returns true for Skip, Reverse and DrawTwo
func (k Kind) IsAction() bool {
	return k == Skip || k == Reverse || k == DrawTwo
}

// NoNumber is the Number value carried by action cards
const NoNumber = -1

// Card is an immutable card value. Cards are compared structurally.
type Card struct {
	Color  Color
	Kind   Kind
	Number int
}

// NewNumber creates a number card
func NewNumber(color Color, number int) Card {
	return Card{Color: color, Kind: Number, Number: number}
}

// NewAction creates a Skip, Reverse or DrawTwo card
func NewAction(color Color, kind Kind) Card {
	return Card{Color: color, Kind: kind, Number: NoNumber}
}

// String returns the string representation of a card (e.g., "Red 7", "Blue Draw Two")
func (c Card) String() string {
	if c.Kind == Number {
		return c.Color.String() + " " + strconv.Itoa(c.Number)
	}
	return c.Color.String() + " " + c.Kind.String()
}

// IsAction returns true if the card is a Skip, Reverse or DrawTwo
func (c Card) IsAction() bool {
	return c.Kind.IsAction()
}

// ParseCard parses the format produced by String, case-insensitively.
// "DrawTwo" and "Draw Two" are both accepted.
func ParseCard(s string) (Card, error) {
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return Card{}, fmt.Errorf("invalid card %q: want \"<color> <face>\"", s)
	}

	color, err := parseColor(fields[0])
	if err != nil {
		return Card{}, err
	}

	face := strings.ToLower(strings.Join(fields[1:], ""))
	switch face {
	case "skip":
		return NewAction(color, Skip), nil
	case "reverse":
		return NewAction(color, Reverse), nil
	case "drawtwo", "draw2", "+2":
		return NewAction(color, DrawTwo), nil
	}

	n, err := strconv.Atoi(face)
	if err != nil || n < 0 || n > 9 {
		return Card{}, fmt.Errorf("invalid card face %q in %q", strings.Join(fields[1:], " "), s)
	}
	return NewNumber(color, n), nil
}

// ParseCards parses a comma separated list of cards
func ParseCards(s string) ([]Card, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	cards := make([]Card, 0, len(parts))
	for _, part := range parts {
		card, err := ParseCard(part)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// MustParseCards is ParseCards for literals in tests and fixtures
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

func parseColor(s string) (Color, error) {
	for _, c := range Colors {
		if strings.EqualFold(s, c.String()) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("invalid card color %q", s)
}
