package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/arcanaland/blackjack/internal/slots"
)

// MinBet is the smallest stake accepted.
const MinBet = 10

var (
	ErrBelowMinimum = errors.New("bet is below the minimum")
	ErrWrongPhase   = errors.New("action not allowed in this phase")
	ErrNoSlot       = errors.New("no save slot selected")
	ErrBadPreset    = errors.New("unknown bet size")
)

// PlaceBet checks a stake against the minimum and the slot balance.
func PlaceBet(amount, balance int) error {
	if amount < MinBet {
		return fmt.Errorf("bet $%d, minimum is $%d: %w", amount, MinBet, ErrBelowMinimum)
	}
	if amount > balance {
		return fmt.Errorf("bet $%d with balance $%d: %w", amount, balance, slots.ErrInsufficientBalance)
	}
	return nil
}

// Preset is a shortcut bet size computed from the balance.
type Preset int

const (
	BetExact Preset = iota
	BetMin
	BetTenPercent
	BetAllIn
)

// Amount resolves the preset against a balance. BetExact has no amount of
// its own and returns 0.
func (p Preset) Amount(balance int) int {
	switch p {
	case BetMin:
		return MinBet
	case BetTenPercent:
		return balance / 10
	case BetAllIn:
		return balance
	default:
		return 0
	}
}

func (p Preset) String() string {
	switch p {
	case BetMin:
		return "min"
	case BetTenPercent:
		return "10%"
	case BetAllIn:
		return "all"
	default:
		return "exact"
	}
}

// ParseBet reads a bet argument: a whole number of dollars, "min", "10%" or
// "all". A leading "$" is ignored.
func ParseBet(s string) (Preset, int, error) {
	s = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "$")
	switch s {
	case "min":
		return BetMin, 0, nil
	case "10%", "tenth":
		return BetTenPercent, 0, nil
	case "all", "allin", "all-in":
		return BetAllIn, 0, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return BetExact, 0, fmt.Errorf("%q: %w", s, ErrBadPreset)
	}
	return BetExact, n, nil
}
