package statistics

import (
	"fmt"
	"math"
	"sort"
)

// GameResult represents the outcome of a single simulated game
type GameResult struct {
	Seed       int64 `json:"seed"`        // RNG seed for this game (for replay)
	Players    int   `json:"players"`     // Number of players at the table
	Winner     int   `json:"winner"`      // Winning seat, -1 when the game did not finish
	Turns      int   `json:"turns"`       // Turns played
	Stalled    bool  `json:"stalled"`     // Every player passed on an empty deck
	Capped     bool  `json:"capped"`      // Stopped by the turn limit
	UnoCalls   int   `json:"uno_calls"`   // Times a player was left with one card
	CardsDrawn int   `json:"cards_drawn"` // Cards drawn after the deal, including DrawTwo penalties
	Skips      int   `json:"skips"`
	Reverses   int   `json:"reverses"`
	DrawTwos   int   `json:"draw_twos"`
	Reshuffles int   `json:"reshuffles"`
}

// Finished returns true if the game produced a winner
func (r GameResult) Finished() bool {
	return r.Winner >= 0
}

// SeatStats tracks results for one seat
type SeatStats struct {
	Wins     int
	SumTurns int // Turns of the games this seat won
}

// Statistics aggregates results over many games
type Statistics struct {
	Games    int
	SumTurns float64
	SumTurn2 float64   // Sum of squares for variance calculation
	Values   []float64 // Turns per game, for median/percentile calculation

	Finished int
	Stalled  int
	Capped   int

	Seats []SeatStats // Indexed by seat, grown as needed

	UnoCalls   int
	CardsDrawn int
	Skips      int
	Reverses   int
	DrawTwos   int
	Reshuffles int

	LongestGame  int
	LongestSeed  int64
	ShortestGame int
}

// Add incorporates a new game result into the statistics
func (s *Statistics) Add(result GameResult) {
	turns := float64(result.Turns)
	s.Games++
	s.SumTurns += turns
	s.SumTurn2 += turns * turns
	s.Values = append(s.Values, turns)

	for len(s.Seats) < result.Players {
		s.Seats = append(s.Seats, SeatStats{})
	}

	switch {
	case result.Finished():
		s.Finished++
		if result.Winner >= len(s.Seats) {
			s.Seats = append(s.Seats, make([]SeatStats, result.Winner-len(s.Seats)+1)...)
		}
		s.Seats[result.Winner].Wins++
		s.Seats[result.Winner].SumTurns += result.Turns
	case result.Stalled:
		s.Stalled++
	default:
		s.Capped++
	}

	s.UnoCalls += result.UnoCalls
	s.CardsDrawn += result.CardsDrawn
	s.Skips += result.Skips
	s.Reverses += result.Reverses
	s.DrawTwos += result.DrawTwos
	s.Reshuffles += result.Reshuffles

	if result.Turns > s.LongestGame {
		s.LongestGame = result.Turns
		s.LongestSeed = result.Seed
	}
	if s.Games == 1 || result.Turns < s.ShortestGame {
		s.ShortestGame = result.Turns
	}
}

// Mean returns the mean number of turns per game
func (s *Statistics) Mean() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.SumTurns / float64(s.Games)
}

// Variance returns the sample variance of turns per game
func (s *Statistics) Variance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumTurn2 - float64(s.Games)*mean*mean) / float64(s.Games-1)
}

// StdDev returns the sample standard deviation of turns per game
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(math.Max(s.Variance(), 0))
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Games))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median number of turns
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// WinRate returns the share of all games won by seat
func (s *Statistics) WinRate(seat int) float64 {
	if s.Games == 0 || seat < 0 || seat >= len(s.Seats) {
		return 0
	}
	return float64(s.Seats[seat].Wins) / float64(s.Games)
}

// StallRate returns the share of games that ended with nobody able to move
func (s *Statistics) StallRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Stalled) / float64(s.Games)
}

// Validate checks that the aggregate counters agree with each other
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}

	if len(s.Values) != s.Games {
		return fmt.Errorf("values array length (%d) does not match games count (%d)",
			len(s.Values), s.Games)
	}

	if s.Finished+s.Stalled+s.Capped != s.Games {
		return fmt.Errorf("outcomes (%d finished + %d stalled + %d capped) do not add up to %d games",
			s.Finished, s.Stalled, s.Capped, s.Games)
	}

	totalWins := 0
	for _, seat := range s.Seats {
		totalWins += seat.Wins
	}
	if totalWins != s.Finished {
		return fmt.Errorf("seat wins total (%d) does not match finished games (%d)", totalWins, s.Finished)
	}

	return nil
}

func (s *Statistics) sorted() []float64 {
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)
	return sorted
}
