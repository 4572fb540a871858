package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arcanaland/blackjack/internal/card"
	"github.com/arcanaland/blackjack/internal/game"
	"github.com/arcanaland/blackjack/internal/slots"
)

func midRoundView() game.View {
	return game.View{
		Slots:     slots.Defaults(),
		Slot:      1,
		SlotName:  "Game 1",
		Balance:   90,
		Bet:       10,
		Phase:     game.PhasePlayerTurn,
		Player:    []card.Card{card.New(card.King, card.Spades), card.New(card.Queen, card.Hearts)},
		PlayerTot: 20,
		Dealer:    []card.Card{card.New(card.Five, card.Diamonds)},
		HoleCard:  true,
	}
}

func TestViewMidRound(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, true).View(midRoundView())
	out := buf.String()

	assert.Contains(t, out, "Game: Game 1")
	assert.Contains(t, out, "Balance: $90")
	assert.Contains(t, out, "Current Bet: $10")
	assert.Contains(t, out, "Your hand:")
	assert.Contains(t, out, "Total: 20")
	assert.Contains(t, out, "♥")
	assert.Contains(t, out, "░", "hole card is drawn face down")
	assert.Equal(t, 1, strings.Count(out, "Total:"), "dealer total stays hidden")
	assert.NotContains(t, out, "\x1b[", "no escape codes when not a terminal")
}

func TestViewSettled(t *testing.T) {
	v := midRoundView()
	v.Bet = 0
	v.Balance = 110
	v.HoleCard = false
	v.Dealer = []card.Card{card.New(card.Six, card.Clubs), card.New(card.Five, card.Diamonds), card.New(card.Six, card.Hearts)}
	v.DealerTot = 17
	v.Outcome = game.PlayerWins
	v.Message = game.PlayerWins.Message()

	var buf bytes.Buffer
	New(&buf, false).View(v)
	out := buf.String()

	assert.NotContains(t, out, "Current Bet")
	assert.Contains(t, out, "Total: 17")
	assert.Contains(t, out, "You win!")
	assert.NotContains(t, out, "░")
}

func TestViewWithoutSlotListsSlots(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).View(game.View{Slots: slots.Defaults(), Message: "Choose a game"})
	out := buf.String()

	assert.Contains(t, out, "1. Game 1: $100")
	assert.Contains(t, out, "3. Game 3: $100")
	assert.Contains(t, out, "Choose a game")
}

func TestSlotsMarksSelected(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).Slots(slots.Defaults(), 2)
	assert.Contains(t, buf.String(), "* 2. Game 2: $100 [SELECTED]")
	assert.Contains(t, buf.String(), "  1. Game 1: $100\n")
}

func TestError(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).Error(errors.New("minimum bet is $10"))
	assert.Equal(t, "Error: minimum bet is $10\n", buf.String())
}

func TestHandWraps(t *testing.T) {
	r := New(&bytes.Buffer{}, false)
	r.width = 20

	cards := make([]card.Card, 0, 4)
	for _, rank := range []card.Rank{card.Two, card.Three, card.Four, card.Five} {
		cards = append(cards, card.New(rank, card.Clubs))
	}
	out := r.hand(cards, false)
	// two boxes per row, five lines per box
	assert.Equal(t, 10, strings.Count(out, "\n")+1)
}
