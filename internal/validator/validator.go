package validator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/arcanaland/blackjack/internal/game"
	"github.com/arcanaland/blackjack/internal/slots"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

// Valid reports whether no errors were found
func (r ValidationResults) Valid() bool {
	return len(r.Errors) == 0
}

type Validator struct {
	StatePath string
	Results   ValidationResults
}

func NewValidator(statePath string) *Validator {
	return &Validator{
		StatePath: statePath,
		Results:   ValidationResults{},
	}
}

// slotRecord mirrors slots.Slot with pointers so missing keys can be told
// apart from zero values.
type slotRecord struct {
	Name    *string `json:"name"`
	Balance *int    `json:"balance"`
}

// Validate checks the state file. The returned error is reserved for
// problems reading the file; content problems land in Results.
func (v *Validator) Validate() (ValidationResults, error) {
	data, err := os.ReadFile(v.StatePath)
	if os.IsNotExist(err) {
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("state file %s not found, default slots will be created on first run", v.StatePath))
		return v.Results, nil
	}
	if err != nil {
		return v.Results, fmt.Errorf("error reading state file: %w", err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		v.Results.Errors = append(v.Results.Errors,
			fmt.Sprintf("state file is not a JSON array: %v", err))
		return v.Results, nil
	}

	if len(raw) != slots.Count {
		v.Results.Errors = append(v.Results.Errors,
			fmt.Sprintf("expected %d slots, found %d", slots.Count, len(raw)))
	}

	names := make(map[string]int)
	for i, msg := range raw {
		v.validateSlot(i+1, msg, names)
	}

	return v.Results, nil
}

func (v *Validator) validateSlot(index int, msg json.RawMessage, names map[string]int) {
	var rec slotRecord
	dec := json.NewDecoder(bytes.NewReader(msg))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&rec); err != nil {
		// Retry leniently to tell unknown keys from bad types
		if lerr := json.Unmarshal(msg, &rec); lerr != nil {
			v.Results.Errors = append(v.Results.Errors,
				fmt.Sprintf("slot %d: %v", index, lerr))
			return
		}
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("slot %d: %v", index, err))
	}

	if rec.Name == nil {
		v.Results.Errors = append(v.Results.Errors, fmt.Sprintf("slot %d: name is required", index))
	} else if strings.TrimSpace(*rec.Name) == "" {
		v.Results.Errors = append(v.Results.Errors, fmt.Sprintf("slot %d: name is empty", index))
	} else {
		if prev, ok := names[*rec.Name]; ok {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("slot %d has the same name as slot %d: %s", index, prev, *rec.Name))
		} else {
			names[*rec.Name] = index
		}
	}

	switch {
	case rec.Balance == nil:
		v.Results.Errors = append(v.Results.Errors, fmt.Sprintf("slot %d: balance is required", index))
	case *rec.Balance < 0:
		v.Results.Errors = append(v.Results.Errors,
			fmt.Sprintf("slot %d: balance %d is negative", index, *rec.Balance))
	case *rec.Balance == 0:
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("slot %d is empty, a $%d top-up will be offered", index, slots.DefaultBalance))
	case *rec.Balance < game.MinBet:
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("slot %d balance $%d is below the $%d minimum bet", index, *rec.Balance, game.MinBet))
	}
}
