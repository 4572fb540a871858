package card

// Suit is one of the four French suits, stored as its symbol.
type Suit string

const (
	Spades   Suit = "♠"
	Hearts   Suit = "♥"
	Diamonds Suit = "♦"
	Clubs    Suit = "♣"
)

// Rank is the face of a card: A, 2-10, J, Q or K.
type Rank string

const (
	Ace   Rank = "A"
	Two   Rank = "2"
	Three Rank = "3"
	Four  Rank = "4"
	Five  Rank = "5"
	Six   Rank = "6"
	Seven Rank = "7"
	Eight Rank = "8"
	Nine  Rank = "9"
	Ten   Rank = "10"
	Jack  Rank = "J"
	Queen Rank = "Q"
	King  Rank = "K"
)

// Color of the printed pips
type Color string

const (
	Red   Color = "red"
	Black Color = "black"
)

// Suits in deck construction order
var Suits = []Suit{Spades, Hearts, Diamonds, Clubs}

// Ranks in deck construction order
var Ranks = []Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

var suitColors = map[Suit]Color{
	Spades:   Black,
	Hearts:   Red,
	Diamonds: Red,
	Clubs:    Black,
}

var rankValues = map[Rank]int{
	Ace: 11, Two: 2, Three: 3, Four: 4, Five: 5, Six: 6, Seven: 7,
	Eight: 8, Nine: 9, Ten: 10, Jack: 10, Queen: 10, King: 10,
}

// Card represents a playing card. It has no identity beyond rank and suit.
type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

// New returns the card of the given rank and suit
func New(r Rank, s Suit) Card {
	return Card{Rank: r, Suit: s}
}

// Color returns the pip color derived from the suit
func (c Card) Color() Color {
	if col, ok := suitColors[c.Suit]; ok {
		return col
	}
	return Black
}

// Value is the blackjack value of the card with an ace counted as 11.
func (c Card) Value() int {
	return rankValues[c.Rank]
}

// IsAce reports whether the card is an ace
func (c Card) IsAce() bool {
	return c.Rank == Ace
}

func (c Card) String() string {
	return string(c.Rank) + string(c.Suit)
}
