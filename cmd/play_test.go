package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/blackjack/internal/deck"
	"github.com/arcanaland/blackjack/internal/game"
	"github.com/arcanaland/blackjack/internal/render"
	"github.com/arcanaland/blackjack/internal/slots"
)

// recorder collects the intents sent by the prompt
type recorder struct {
	intents []game.Intent
	listed  int
}

func (r *recorder) send(in game.Intent) error {
	r.intents = append(r.intents, in)
	return nil
}

func (r *recorder) list() { r.listed++ }

func newTestPrompt() (*cobra.Command, *recorder, *bytes.Buffer) {
	rec := &recorder{}
	var out bytes.Buffer
	return newPrompt(&out, rec.send, rec.list), rec, &out
}

func TestPromptIntents(t *testing.T) {
	cases := map[string]game.Intent{
		"slot 2":               {Kind: game.SelectSlot, Slot: 2},
		"game 3":               {Kind: game.SelectSlot, Slot: 3},
		"bet 25":               {Kind: game.Bet, Preset: game.BetExact, Amount: 25},
		"bet $30":              {Kind: game.Bet, Preset: game.BetExact, Amount: 30},
		"bet 10%":              {Kind: game.Bet, Preset: game.BetTenPercent},
		"BET all":              {Kind: game.Bet, Preset: game.BetAllIn},
		"min":                  {Kind: game.Bet, Preset: game.BetMin},
		"allin":                {Kind: game.Bet, Preset: game.BetAllIn},
		"hit":                  {Kind: game.HitCard},
		"s":                    {Kind: game.StandHand},
		"topup":                {Kind: game.TopUp},
		"rename 1 High Roller": {Kind: game.RenameSlot, Slot: 1, Name: "High Roller"},
		"transfer 1 3 $40":     {Kind: game.TransferFunds, From: 1, To: 3, Amount: 40},
		"move 2 1 -5":          {Kind: game.TransferFunds, From: 2, To: 1, Amount: -5},
		"quit":                 {Kind: game.Quit},
	}

	prompt, rec, _ := newTestPrompt()
	for line, want := range cases {
		rec.intents = nil
		require.NoError(t, execLine(prompt, line), line)
		require.Len(t, rec.intents, 1, line)
		assert.Equal(t, want, rec.intents[0], line)
	}
}

func TestPromptLocalCommands(t *testing.T) {
	prompt, rec, out := newTestPrompt()

	require.NoError(t, execLine(prompt, "   "))
	require.NoError(t, execLine(prompt, "ls"))
	require.NoError(t, execLine(prompt, "slots"))
	assert.Equal(t, 2, rec.listed)

	require.NoError(t, execLine(prompt, "help"))
	assert.Contains(t, out.String(), "transfer FROM TO AMOUNT")
	assert.Contains(t, out.String(), "leave the table")
	assert.Empty(t, rec.intents)
}

func TestPromptErrors(t *testing.T) {
	prompt, rec, _ := newTestPrompt()

	for _, line := range []string{"dance", "slot", "hit now", "bet", "rename 1", "transfer 1 2"} {
		err := execLine(prompt, line)
		assert.ErrorIs(t, err, errBadCommand, line)
		assert.True(t, recoverable(err), line)
	}

	assert.ErrorIs(t, execLine(prompt, "slot x"), slots.ErrInvalidSlot)
	assert.ErrorIs(t, execLine(prompt, "bet lots"), game.ErrBadPreset)
	assert.ErrorIs(t, execLine(prompt, "transfer 1 2 many"), slots.ErrInvalidAmount)
	assert.Empty(t, rec.intents, "nothing is sent for a bad line")
}

func TestPromptSendErrorPassesThrough(t *testing.T) {
	var out bytes.Buffer
	prompt := newPrompt(&out, func(game.Intent) error { return os.ErrPermission }, func() {})

	err := execLine(prompt, "hit")
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.False(t, recoverable(err))
}

func TestRecoverable(t *testing.T) {
	assert.True(t, recoverable(game.ErrBelowMinimum))
	assert.True(t, recoverable(slots.ErrInsufficientBalance))
	assert.False(t, recoverable(slots.ErrCorruptState))
	assert.False(t, recoverable(os.ErrPermission))
}

func TestRunLoopScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gamestate.json")
	store, err := slots.Load(path, log.New(io.Discard))
	require.NoError(t, err)

	sess := game.NewSession(store, deck.New(7), log.New(io.Discard))
	script := strings.Join([]string{
		"bet 10",
		"slot 1",
		"bet 5",
		"rename 3 Savings",
		"transfer 2 3 50",
		"bet 10",
		"stand",
		"quit",
	}, "\n")

	var out bytes.Buffer
	err = runLoop(sess, strings.NewReader(script), &out, render.New(&out, false))
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "no save slot selected")
	assert.Contains(t, text, "bet is below the minimum")
	assert.Contains(t, text, "Goodbye!")

	list := store.Slots()
	assert.Equal(t, "Savings", list[2].Name)
	assert.Equal(t, 150, list[2].Balance)
	assert.Equal(t, 50, list[1].Balance)
	assert.Contains(t, []int{90, 100, 110}, list[0].Balance, "a ten dollar round loses, pushes or wins")
}

func TestRunLoopEndOfInputQuits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gamestate.json")
	store, err := slots.Load(path, log.New(io.Discard))
	require.NoError(t, err)
	sess := game.NewSession(store, deck.New(1), log.New(io.Discard))

	var out bytes.Buffer
	require.NoError(t, runLoop(sess, strings.NewReader("slot 1\nbet 20\n"), &out, render.New(&out, false)))
	assert.Equal(t, 80, store.Slots()[0].Balance, "abandoned round keeps the stake")
}

// execute runs the root command with an isolated config and state file.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(io.Discard)
	RootCmd.SetArgs(args)
	err := RootCmd.Execute()
	return out.String(), err
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	return filepath.Join(dir, "state.json")
}

func readSlots(t *testing.T, path string) []slots.Slot {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var list []slots.Slot
	require.NoError(t, json.Unmarshal(data, &list))
	return list
}

func TestSlotsCommands(t *testing.T) {
	state := isolate(t)

	out, err := execute(t, "--state", state, "slots", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "1. Game 1: $100")

	_, err = execute(t, "--state", state, "slots", "transfer", "1", "2", "60")
	require.NoError(t, err)
	_, err = execute(t, "--state", state, "slots", "rename", "2", "Big", "Pot")
	require.NoError(t, err)

	list := readSlots(t, state)
	assert.Equal(t, slots.Slot{Name: "Game 1", Balance: 40}, list[0])
	assert.Equal(t, slots.Slot{Name: "Big Pot", Balance: 160}, list[1])

	_, err = execute(t, "--state", state, "slots", "transfer", "1", "2", "41")
	assert.ErrorIs(t, err, slots.ErrInsufficientBalance)

	_, err = execute(t, "--state", state, "slots", "topup", "1")
	assert.ErrorIs(t, err, slots.ErrNotEmpty)

	_, err = execute(t, "--state", state, "slots", "transfer", "1", "2", "lots")
	assert.ErrorIs(t, err, slots.ErrInvalidAmount)
	_, err = execute(t, "--state", state, "slots", "rename", "one", "x")
	assert.ErrorIs(t, err, slots.ErrInvalidSlot)
}

func TestValidateCommand(t *testing.T) {
	state := isolate(t)
	require.NoError(t, os.WriteFile(state, []byte(`[{"name":"a","balance":1}]`), 0644))

	out, err := execute(t, "validate", state)
	assert.Error(t, err)
	assert.Contains(t, out, "expected 3 slots, found 1")
}
