package slots

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/renameio/v2"
)

const (
	// Count is the fixed number of save slots.
	Count = 3
	// DefaultBalance is the balance of a fresh slot and of a topped-up one.
	DefaultBalance = 100
)

var (
	ErrInvalidSlot         = errors.New("invalid slot")
	ErrInvalidName         = errors.New("invalid slot name")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrCorruptState        = errors.New("corrupt state file")
	ErrNotEmpty            = errors.New("slot balance is not empty")
)

// Slot is one named balance.
type Slot struct {
	Name    string `json:"name"`
	Balance int    `json:"balance"`
}

// Defaults returns the slots written when no state file exists
func Defaults() []Slot {
	out := make([]Slot, Count)
	for i := range out {
		out[i] = Slot{Name: fmt.Sprintf("Game %d", i+1), Balance: DefaultBalance}
	}
	return out
}

// Check verifies the shape of a decoded slot list.
func Check(list []Slot) error {
	if len(list) != Count {
		return fmt.Errorf("expected %d slots, found %d: %w", Count, len(list), ErrCorruptState)
	}
	for i, s := range list {
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("slot %d has no name: %w", i+1, ErrCorruptState)
		}
		if s.Balance < 0 {
			return fmt.Errorf("slot %d has negative balance %d: %w", i+1, s.Balance, ErrCorruptState)
		}
	}
	return nil
}

// record mirrors Slot with pointer fields so absent keys can be told apart
// from zero values.
type record struct {
	Name    *string `json:"name"`
	Balance *int    `json:"balance"`
}

// Decode parses the JSON state file content. Every slot must carry both a
// name and a balance key.
func Decode(data []byte) ([]Slot, error) {
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrCorruptState)
	}

	list := make([]Slot, len(records))
	for i, r := range records {
		if r.Name == nil {
			return nil, fmt.Errorf("slot %d has no name key: %w", i+1, ErrCorruptState)
		}
		if r.Balance == nil {
			return nil, fmt.Errorf("slot %d has no balance key: %w", i+1, ErrCorruptState)
		}
		list[i] = Slot{Name: *r.Name, Balance: *r.Balance}
	}
	if err := Check(list); err != nil {
		return nil, err
	}
	return list, nil
}

// Store holds the three slots in memory and writes them back to a JSON
// file after every mutation.
type Store struct {
	path  string
	slots []Slot
	log   *log.Logger
}

// Load reads the state file at path. A missing file is created with the
// default slots.
func Load(path string, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = log.Default()
	}
	s := &Store{path: path, log: logger}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		s.slots = Defaults()
		logger.Info("creating state file", "path", path)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("error creating state directory: %w", err)
		}
		if err := s.Save(); err != nil {
			return nil, err
		}
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading state file: %w", err)
	}

	list, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.slots = list
	logger.Debug("loaded state file", "path", path)
	return s, nil
}

// Path returns the state file location
func (s *Store) Path() string {
	return s.path
}

// Save overwrites the state file. The new content is written to a
// temporary file and renamed over the old one.
func (s *Store) Save() error {
	data, err := json.Marshal(s.slots)
	if err != nil {
		return fmt.Errorf("error encoding state: %w", err)
	}
	if err := renameio.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("error writing state file: %w", err)
	}
	return nil
}

// Slots returns a copy of all slots in order
func (s *Store) Slots() []Slot {
	return append([]Slot(nil), s.slots...)
}

// Slot returns the slot with the 1-based index.
func (s *Store) Slot(index int) (Slot, error) {
	if err := checkIndex(index); err != nil {
		return Slot{}, err
	}
	return s.slots[index-1], nil
}

// Total is the sum of all balances
func (s *Store) Total() int {
	total := 0
	for _, sl := range s.slots {
		total += sl.Balance
	}
	return total
}

func checkIndex(index int) error {
	if index < 1 || index > Count {
		return fmt.Errorf("slot %d, want 1-%d: %w", index, Count, ErrInvalidSlot)
	}
	return nil
}

// Rename sets a slot's name. Surrounding whitespace is dropped.
func (s *Store) Rename(index int, name string) error {
	if err := checkIndex(index); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("empty name: %w", ErrInvalidName)
	}

	s.slots[index-1].Name = name
	s.log.Debug("renamed slot", "slot", index, "name", name)
	return s.Save()
}

// Transfer moves amount from one slot to another. Transferring to the same
// slot does nothing.
func (s *Store) Transfer(from, to, amount int) error {
	if err := checkIndex(from); err != nil {
		return err
	}
	if err := checkIndex(to); err != nil {
		return err
	}
	if from == to {
		return nil
	}
	if amount < 1 {
		return fmt.Errorf("transfer $%d: %w", amount, ErrInvalidAmount)
	}
	if amount > s.slots[from-1].Balance {
		return fmt.Errorf("transfer $%d from balance $%d: %w",
			amount, s.slots[from-1].Balance, ErrInsufficientBalance)
	}

	s.slots[from-1].Balance -= amount
	s.slots[to-1].Balance += amount
	s.log.Debug("transferred", "from", from, "to", to, "amount", amount)
	return s.Save()
}

// Debit takes amount from a slot's balance
func (s *Store) Debit(index, amount int) error {
	if err := checkIndex(index); err != nil {
		return err
	}
	if amount < 0 {
		return fmt.Errorf("debit $%d: %w", amount, ErrInvalidAmount)
	}
	if amount > s.slots[index-1].Balance {
		return fmt.Errorf("debit $%d from balance $%d: %w",
			amount, s.slots[index-1].Balance, ErrInsufficientBalance)
	}

	s.slots[index-1].Balance -= amount
	s.log.Debug("debited", "slot", index, "amount", amount, "balance", s.slots[index-1].Balance)
	return s.Save()
}

// Credit adds amount to a slot's balance
func (s *Store) Credit(index, amount int) error {
	if err := checkIndex(index); err != nil {
		return err
	}
	if amount < 0 {
		return fmt.Errorf("credit $%d: %w", amount, ErrInvalidAmount)
	}

	s.slots[index-1].Balance += amount
	s.log.Debug("credited", "slot", index, "amount", amount, "balance", s.slots[index-1].Balance)
	return s.Save()
}

// TopUp resets an empty slot to the default balance.
func (s *Store) TopUp(index int) error {
	if err := checkIndex(index); err != nil {
		return err
	}
	if s.slots[index-1].Balance != 0 {
		return fmt.Errorf("slot %d has $%d: %w", index, s.slots[index-1].Balance, ErrNotEmpty)
	}

	s.slots[index-1].Balance = DefaultBalance
	s.log.Debug("topped up", "slot", index)
	return s.Save()
}
