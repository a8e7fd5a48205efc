package deck

import (
	"fmt"
	"sort"
	"strings"
)

// Census counts cards by value
type Census map[Card]int

// Count builds a census over any number of card slices
func Count(piles ...[]Card) Census {
	c := make(Census, 4*13)
	for _, pile := range piles {
		for _, card := range pile {
			c[card]++
		}
	}
	return c
}

// Canonical returns the census of a complete deck
func Canonical() Census {
	return Count(Build())
}

// Total returns the number of cards counted
func (c Census) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Diff describes how c differs from want. It returns "" when they match.
func (c Census) Diff(want Census) string {
	var diffs []string
	for card, n := range want {
		if c[card] != n {
			diffs = append(diffs, fmt.Sprintf("%s: have %d, want %d", card, c[card], n))
		}
	}
	for card, n := range c {
		if _, ok := want[card]; !ok {
			diffs = append(diffs, fmt.Sprintf("%s: have %d, want 0", card, n))
		}
	}
	sort.Strings(diffs)
	return strings.Join(diffs, "; ")
}
