package game

// EventType represents a game event type with type safety
type EventType string

// EventType constants for everything that can happen during a turn
const (
	EventTypeTurnStart  EventType = "turn_start"
	EventTypeCardPlayed EventType = "card_played"
	EventTypeCardDrawn  EventType = "card_drawn"
	EventTypeUno        EventType = "uno"
	EventTypeSkip       EventType = "skip"
	EventTypeReverse    EventType = "reverse"
	EventTypeDrawTwo    EventType = "draw_two"
	EventTypePass       EventType = "pass"
	EventTypeReshuffle  EventType = "reshuffle"
	EventTypeGameOver   EventType = "game_over"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}
