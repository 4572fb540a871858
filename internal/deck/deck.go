package deck

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/arcanaland/blackjack/internal/card"
)

// Size of a standard single deck
const Size = 52

// ErrInsufficientDeck is returned when a draw needs more cards than remain.
var ErrInsufficientDeck = errors.New("insufficient cards in deck")

// Deck is an ordered sequence of cards. Cards are drawn from the end.
type Deck struct {
	base  []card.Card
	cards []card.Card
	rnd   *rand.Rand
}

// New creates a full, unshuffled 52-card deck. The seed drives every
// subsequent shuffle, so two decks built with the same seed deal identically.
func New(seed int64) *Deck {
	base := fullDeck()
	return &Deck{
		base:  base,
		cards: append([]card.Card(nil), base...),
		rnd:   rand.New(rand.NewSource(seed)),
	}
}

// Stacked builds a deck with a fixed order that Shuffle restores instead of
// permuting. The last card is drawn first.
func Stacked(cards ...card.Card) *Deck {
	base := append([]card.Card(nil), cards...)
	return &Deck{
		base:  base,
		cards: append([]card.Card(nil), base...),
	}
}

func fullDeck() []card.Card {
	cards := make([]card.Card, 0, Size)
	for _, r := range card.Ranks {
		for _, s := range card.Suits {
			cards = append(cards, card.New(r, s))
		}
	}
	return cards
}

// Shuffle gathers every card back into the deck and permutes them.
func (d *Deck) Shuffle() {
	d.cards = append(d.cards[:0], d.base...)
	if d.rnd == nil {
		return
	}
	d.rnd.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns the card at the end of the deck
func (d *Deck) Draw() (card.Card, error) {
	if len(d.cards) == 0 {
		return card.Card{}, ErrInsufficientDeck
	}
	c := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return c, nil
}

// Require fails with ErrInsufficientDeck unless at least n cards remain.
func (d *Deck) Require(n int) error {
	if len(d.cards) < n {
		return fmt.Errorf("need %d cards, %d left: %w", n, len(d.cards), ErrInsufficientDeck)
	}
	return nil
}

// Len returns the number of cards left
func (d *Deck) Len() int {
	return len(d.cards)
}

// Cards returns a copy of the remaining cards in draw-last order.
func (d *Deck) Cards() []card.Card {
	return append([]card.Card(nil), d.cards...)
}
