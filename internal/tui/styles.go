package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/unosim/internal/deck"
)

// Static styles for content elements
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true)

	GameLogStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	CurrentPlayerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#96CEB4")).
				Bold(true)

	PlayerInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

// Card colours, indexed by deck.Color
var cardStyles = map[deck.Color]lipgloss.Style{
	deck.Red:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
	deck.Green:  lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true),
	deck.Blue:   lipgloss.NewStyle().Foreground(lipgloss.Color("#4EA8DE")).Bold(true),
	deck.Yellow: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
}

// CardStyle renders a card in its own colour. It matches the signature of
// game.FormattingOptions.CardStyle.
func CardStyle(card deck.Card) string {
	style, ok := cardStyles[card.Color]
	if !ok {
		return card.String()
	}
	return style.Render(card.String())
}

// FormatCards renders cards in their colours as "[Red 7 Blue Skip]"
func FormatCards(cards []deck.Card) string {
	formatted := make([]string, len(cards))
	for i, card := range cards {
		formatted[i] = CardStyle(card)
	}
	return "[" + strings.Join(formatted, " ") + "]"
}
