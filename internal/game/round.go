package game

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/arcanaland/blackjack/internal/deck"
)

// DealerStandsOn is the total at which the dealer stops drawing.
const DealerStandsOn = 17

// Phase of a round. StartRound hands back a round already in
// PhasePlayerTurn, so PhaseDealt is never observed. PhaseDealerTurn is left
// only when the deck runs out during the dealer's draw.
type Phase int

const (
	PhaseBetting Phase = iota
	PhaseDealt
	PhasePlayerTurn
	PhaseDealerTurn
	PhaseSettled
)

func (p Phase) String() string {
	switch p {
	case PhaseBetting:
		return "betting"
	case PhaseDealt:
		return "dealt"
	case PhasePlayerTurn:
		return "player-turn"
	case PhaseDealerTurn:
		return "dealer-turn"
	case PhaseSettled:
		return "settled"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Outcome of a settled round
type Outcome int

const (
	OutcomeNone Outcome = iota
	PlayerBust
	DealerBust
	PlayerWins
	DealerWins
	Push
)

func (o Outcome) String() string {
	switch o {
	case PlayerBust:
		return "player-bust"
	case DealerBust:
		return "dealer-bust"
	case PlayerWins:
		return "player-wins"
	case DealerWins:
		return "dealer-wins"
	case Push:
		return "push"
	default:
		return "none"
	}
}

// Message is the line shown to the player when the round ends.
func (o Outcome) Message() string {
	switch o {
	case PlayerBust:
		return "You busted! Dealer wins."
	case DealerBust:
		return "Dealer busted! You win!"
	case PlayerWins:
		return "You win!"
	case DealerWins:
		return "Dealer wins!"
	case Push:
		return "It's a tie!"
	default:
		return ""
	}
}

// NewRound reshuffles the full deck and deals two cards each, alternating
// player then dealer, drawing from the end of the deck.
func NewRound(d *deck.Deck) (player, dealer Hand, err error) {
	d.Shuffle()
	if err := d.Require(4); err != nil {
		return nil, nil, err
	}

	player = make(Hand, 0, 2)
	dealer = make(Hand, 0, 2)
	for i := 0; i < 2; i++ {
		// Require(4) above guarantees these draws succeed
		c, _ := d.Draw()
		player = append(player, c)
		c, _ = d.Draw()
		dealer = append(dealer, c)
	}
	return player, dealer, nil
}

// Hit appends one card drawn from the deck to the hand.
func Hit(h Hand, d *deck.Deck) (Hand, error) {
	c, err := d.Draw()
	if err != nil {
		return h, err
	}
	return append(h, c), nil
}

// DealerPlay draws for the dealer until the hand is worth at least 17.
func DealerPlay(dealer Hand, d *deck.Deck) (Hand, error) {
	for HandValue(dealer) < DealerStandsOn {
		var err error
		dealer, err = Hit(dealer, d)
		if err != nil {
			return dealer, fmt.Errorf("dealer draw at %d: %w", HandValue(dealer), err)
		}
	}
	return dealer, nil
}

// SettleRound decides the outcome and the amount returned to the player.
// A player bust loses regardless of the dealer. A winning round returns the
// stake plus even money and a push returns the stake.
func SettleRound(playerTotal, dealerTotal, bet int) (Outcome, int) {
	switch {
	case playerTotal > BustLimit:
		return PlayerBust, 0
	case dealerTotal > BustLimit:
		return DealerBust, 2 * bet
	case playerTotal > dealerTotal:
		return PlayerWins, 2 * bet
	case playerTotal < dealerTotal:
		return DealerWins, 0
	default:
		return Push, bet
	}
}

// Round is the transient state of one hand of blackjack.
type Round struct {
	ID      uuid.UUID
	Player  Hand
	Dealer  Hand
	Bet     int
	Phase   Phase
	Outcome Outcome
	Payout  int

	deck *deck.Deck
}

// StartRound deals a new round for the given bet. The round waits for the
// player's first action.
func StartRound(d *deck.Deck, bet int) (*Round, error) {
	r := &Round{
		ID:    uuid.New(),
		Bet:   bet,
		Phase: PhaseBetting,
		deck:  d,
	}

	player, dealer, err := NewRound(d)
	if err != nil {
		return nil, err
	}
	r.Player, r.Dealer = player, dealer

	// Nothing is resolved on the deal, even a natural 21
	r.Phase = PhasePlayerTurn
	return r, nil
}

// Hit draws a card for the player. Going over 21 settles the round at once
// without a dealer turn.
func (r *Round) Hit() error {
	if r.Phase != PhasePlayerTurn {
		return fmt.Errorf("hit during %s: %w", r.Phase, ErrWrongPhase)
	}

	h, err := Hit(r.Player, r.deck)
	if err != nil {
		return err
	}
	r.Player = h

	if r.Player.IsBust() {
		r.settle()
	}
	return nil
}

// Stand ends the player's turn, plays the dealer out and settles.
func (r *Round) Stand() error {
	if r.Phase != PhasePlayerTurn {
		return fmt.Errorf("stand during %s: %w", r.Phase, ErrWrongPhase)
	}

	r.Phase = PhaseDealerTurn
	dealer, err := DealerPlay(r.Dealer, r.deck)
	r.Dealer = dealer
	if err != nil {
		return err
	}

	r.settle()
	return nil
}

func (r *Round) settle() {
	r.Outcome, r.Payout = SettleRound(r.Player.Value(), r.Dealer.Value(), r.Bet)
	r.Phase = PhaseSettled
}

// Settled reports whether the outcome has been decided
func (r *Round) Settled() bool {
	return r.Phase == PhaseSettled
}
