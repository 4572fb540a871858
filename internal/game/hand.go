package game

import (
	"strings"

	"github.com/arcanaland/blackjack/internal/card"
)

// BustLimit is the highest total that is not a bust.
const BustLimit = 21

// Hand is the ordered sequence of cards held by the player or the dealer.
type Hand []card.Card

// HandValue sums the cards counting aces as 11, then demotes aces to 1 one
// at a time while the total is over 21. The result is the best total not
// over 21 when one exists, otherwise the smallest busted total.
func HandValue(h Hand) int {
	total := 0
	aces := 0
	for _, c := range h {
		total += c.Value()
		if c.IsAce() {
			aces++
		}
	}

	for total > BustLimit && aces > 0 {
		total -= 10
		aces--
	}

	return total
}

// Value is HandValue of h
func (h Hand) Value() int {
	return HandValue(h)
}

// IsBust reports whether the hand is over 21
func (h Hand) IsBust() bool {
	return HandValue(h) > BustLimit
}

func (h Hand) String() string {
	parts := make([]string, len(h))
	for i, c := range h {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
