package game

import "github.com/lox/unosim/internal/deck"

// Rule is one step of the play policy. Match reports whether card may be
// chosen by this rule while top is the active card.
type Rule struct {
	Name  string
	Match func(card, top deck.Card) bool
}

// Policy is an ordered list of rules. The first rule with any matching card
// wins, and within a rule the hand is scanned from index 0.
type Policy []Rule

// Decision is the card a policy picked from a hand
type Decision struct {
	Index int
	Card  deck.Card
	Rule  string
}

// DefaultPolicy returns the agent's fixed priority order: color match,
// number match, then any Skip, any Reverse, any DrawTwo.
func DefaultPolicy() Policy {
	return Policy{
		{Name: "color", Match: matchColor},
		{Name: "number", Match: matchNumber},
		{Name: "skip", Match: matchKind(deck.Skip)},
		{Name: "reverse", Match: matchKind(deck.Reverse)},
		{Name: "draw-two", Match: matchKind(deck.DrawTwo)},
	}
}

// Decide returns the card to play from hand, or false if no rule matches
func (p Policy) Decide(hand []deck.Card, top deck.Card) (Decision, bool) {
	for _, rule := range p {
		for i, card := range hand {
			if rule.Match(card, top) {
				return Decision{Index: i, Card: card, Rule: rule.Name}, true
			}
		}
	}
	return Decision{}, false
}

func matchColor(card, top deck.Card) bool {
	return card.Color == top.Color
}

// matchNumber only applies when the top card is itself a number card
func matchNumber(card, top deck.Card) bool {
	return top.Kind == deck.Number && card.Kind == deck.Number && card.Number == top.Number
}

func matchKind(kind deck.Kind) func(card, top deck.Card) bool {
	return func(card, _ deck.Card) bool {
		return card.Kind == kind
	}
}

// CanPlay reports whether card may go on top: same color, same number on two
// number cards, or the same action kind regardless of color.
func CanPlay(card, top deck.Card) bool {
	if matchColor(card, top) || matchNumber(card, top) {
		return true
	}
	return card.IsAction() && card.Kind == top.Kind
}
