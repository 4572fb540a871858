package game

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/arcanaland/blackjack/internal/card"
	"github.com/arcanaland/blackjack/internal/deck"
	"github.com/arcanaland/blackjack/internal/slots"
)

// Bank is the slot storage a session plays against. *slots.Store
// satisfies it; every mutating call is expected to persist.
type Bank interface {
	Slots() []slots.Slot
	Slot(index int) (slots.Slot, error)
	Debit(index, amount int) error
	Credit(index, amount int) error
	Rename(index int, name string) error
	Transfer(from, to, amount int) error
	TopUp(index int) error
}

// IntentKind names a user action
type IntentKind int

const (
	SelectSlot IntentKind = iota + 1
	TopUp
	Bet
	HitCard
	StandHand
	RenameSlot
	TransferFunds
	Quit
)

func (k IntentKind) String() string {
	switch k {
	case SelectSlot:
		return "select-slot"
	case TopUp:
		return "top-up"
	case Bet:
		return "bet"
	case HitCard:
		return "hit"
	case StandHand:
		return "stand"
	case RenameSlot:
		return "rename"
	case TransferFunds:
		return "transfer"
	case Quit:
		return "quit"
	default:
		return fmt.Sprintf("intent(%d)", int(k))
	}
}

// Intent is one user action. Only the fields relevant to Kind are read:
// Slot for SelectSlot and RenameSlot, Name for RenameSlot, Preset and
// Amount for Bet, From, To and Amount for TransferFunds.
type Intent struct {
	Kind   IntentKind
	Slot   int
	Name   string
	Preset Preset
	Amount int
	From   int
	To     int
}

// View is a snapshot of everything the front end needs to draw.
type View struct {
	Slots      []slots.Slot
	Slot       int // selected slot, 0 when none
	SlotName   string
	Balance    int
	Bet        int
	Phase      Phase
	RoundID    string
	Player     []card.Card
	PlayerTot  int
	Dealer     []card.Card // visible dealer cards
	HoleCard   bool        // the dealer's first card is face down and not in Dealer
	DealerTot  int         // 0 while HoleCard is set
	Outcome    Outcome
	Payout     int
	Message    string
	NeedsTopUp bool
	Quit       bool
}

// Session owns the selected slot and the round in progress. It is not safe
// for concurrent use.
type Session struct {
	bank  Bank
	deck  *deck.Deck
	log   *log.Logger
	slot  int
	round *Round
	msg   string
	quit  bool
}

// NewSession creates a session with no slot selected.
func NewSession(bank Bank, d *deck.Deck, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.Default()
	}
	return &Session{bank: bank, deck: d, log: logger}
}

// Phase returns the phase of the current round, or PhaseBetting when no
// round is in progress.
func (s *Session) Phase() Phase {
	if s.round == nil || s.round.Settled() {
		return PhaseBetting
	}
	return s.round.Phase
}

func (s *Session) inRound() bool {
	return s.round != nil && !s.round.Settled()
}

// Dispatch applies an intent and returns the resulting view. Validation
// failures leave the session unchanged and return the error along with
// the current view.
func (s *Session) Dispatch(in Intent) (View, error) {
	s.log.Debug("dispatch", "intent", in.Kind, "slot", s.slot, "phase", s.Phase())

	var err error
	switch in.Kind {
	case SelectSlot:
		err = s.selectSlot(in.Slot)
	case TopUp:
		err = s.topUp()
	case Bet:
		err = s.placeBet(in.Preset, in.Amount)
	case HitCard:
		err = s.hit()
	case StandHand:
		err = s.stand()
	case RenameSlot:
		err = s.rename(in.Slot, in.Name)
	case TransferFunds:
		err = s.transfer(in.From, in.To, in.Amount)
	case Quit:
		s.quitSession()
	default:
		err = fmt.Errorf("unknown intent %d", int(in.Kind))
	}
	return s.View(), err
}

func (s *Session) selectSlot(index int) error {
	if s.inRound() {
		return fmt.Errorf("select slot: %w", ErrWrongPhase)
	}
	sl, err := s.bank.Slot(index)
	if err != nil {
		return err
	}

	s.slot = index
	s.round = nil
	if sl.Balance == 0 {
		s.msg = fmt.Sprintf("You have no balance. Add $%d?", slots.DefaultBalance)
	} else {
		s.msg = fmt.Sprintf("Playing %s", sl.Name)
	}
	return nil
}

func (s *Session) topUp() error {
	if s.slot == 0 {
		return ErrNoSlot
	}
	if s.inRound() {
		return fmt.Errorf("top up: %w", ErrWrongPhase)
	}
	if err := s.bank.TopUp(s.slot); err != nil {
		return err
	}
	s.msg = fmt.Sprintf("Added $%d", slots.DefaultBalance)
	return nil
}

func (s *Session) placeBet(p Preset, amount int) error {
	if s.slot == 0 {
		return ErrNoSlot
	}
	if s.inRound() {
		return fmt.Errorf("bet: %w", ErrWrongPhase)
	}
	sl, err := s.bank.Slot(s.slot)
	if err != nil {
		return err
	}

	if p != BetExact {
		amount = p.Amount(sl.Balance)
	}
	if err := PlaceBet(amount, sl.Balance); err != nil {
		return err
	}
	if err := s.bank.Debit(s.slot, amount); err != nil {
		return err
	}

	r, err := StartRound(s.deck, amount)
	if err != nil {
		// The stake was taken but no cards were dealt
		if cerr := s.bank.Credit(s.slot, amount); cerr != nil {
			return errors.Join(err, cerr)
		}
		return err
	}
	s.round = r
	s.msg = ""
	s.log.Debug("round dealt", "round", r.ID, "bet", amount, "player", r.Player, "dealer", r.Dealer)
	return nil
}

func (s *Session) hit() error {
	if !s.inRound() {
		return fmt.Errorf("hit: %w", ErrWrongPhase)
	}
	if err := s.round.Hit(); err != nil {
		return s.voidRound(err)
	}
	if s.round.Settled() {
		return s.finishRound()
	}
	return nil
}

func (s *Session) stand() error {
	if !s.inRound() {
		return fmt.Errorf("stand: %w", ErrWrongPhase)
	}
	if err := s.round.Stand(); err != nil {
		return s.voidRound(err)
	}
	return s.finishRound()
}

// finishRound pays out a settled round and records the result.
func (s *Session) finishRound() error {
	r := s.round
	s.msg = r.Outcome.Message()
	s.log.Debug("round settled",
		"round", r.ID, "outcome", r.Outcome, "player", r.Player.Value(),
		"dealer", r.Dealer.Value(), "payout", r.Payout)

	if r.Payout == 0 {
		return nil
	}
	return s.bank.Credit(s.slot, r.Payout)
}

// voidRound ends a round that could not be completed, returning the stake.
// Only deck exhaustion gets here.
func (s *Session) voidRound(cause error) error {
	r := s.round
	s.log.Warn("round voided", "round", r.ID, "err", cause)
	r.Phase = PhaseSettled
	r.Outcome = OutcomeNone
	r.Payout = r.Bet
	s.msg = "Out of cards, bet returned."
	if err := s.bank.Credit(s.slot, r.Bet); err != nil {
		return errors.Join(cause, err)
	}
	return cause
}

func (s *Session) rename(index int, name string) error {
	if s.inRound() {
		return fmt.Errorf("rename: %w", ErrWrongPhase)
	}
	if err := s.bank.Rename(index, name); err != nil {
		return err
	}
	s.msg = fmt.Sprintf("Slot %d renamed", index)
	return nil
}

func (s *Session) transfer(from, to, amount int) error {
	if s.inRound() {
		return fmt.Errorf("transfer: %w", ErrWrongPhase)
	}
	if err := s.bank.Transfer(from, to, amount); err != nil {
		return err
	}
	if from != to {
		s.msg = fmt.Sprintf("Moved $%d from slot %d to slot %d", amount, from, to)
	}
	return nil
}

// quitSession ends the session. A round in progress is abandoned and its
// stake, already debited, is lost.
func (s *Session) quitSession() {
	if s.inRound() {
		s.log.Info("round forfeited", "round", s.round.ID, "bet", s.round.Bet)
		s.round = nil
	}
	s.quit = true
	s.msg = "Goodbye!"
}

// View builds the current snapshot
func (s *Session) View() View {
	v := View{
		Slots:   s.bank.Slots(),
		Slot:    s.slot,
		Phase:   s.Phase(),
		Message: s.msg,
		Quit:    s.quit,
	}

	if s.slot != 0 {
		sl := v.Slots[s.slot-1]
		v.SlotName = sl.Name
		v.Balance = sl.Balance
		v.NeedsTopUp = sl.Balance == 0 && !s.inRound()
	}

	r := s.round
	if r == nil {
		return v
	}

	v.RoundID = r.ID.String()
	v.Player = append([]card.Card(nil), r.Player...)
	v.PlayerTot = r.Player.Value()
	if r.Settled() {
		v.Dealer = append([]card.Card(nil), r.Dealer...)
		v.DealerTot = r.Dealer.Value()
		v.Outcome = r.Outcome
		v.Payout = r.Payout
	} else {
		v.Bet = r.Bet
		v.HoleCard = len(r.Dealer) > 0
		if len(r.Dealer) > 1 {
			v.Dealer = append([]card.Card(nil), r.Dealer[1:]...)
		}
	}
	return v
}
