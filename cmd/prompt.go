package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arcanaland/blackjack/internal/deck"
	"github.com/arcanaland/blackjack/internal/game"
	"github.com/arcanaland/blackjack/internal/slots"
)

var errBadCommand = errors.New("unrecognized command")

const promptUsage = `{{if .HasAvailableSubCommands}}Commands:{{range .Commands}}{{if .IsAvailableCommand}}
  {{rpad .Use 26}} {{.Short}}{{end}}{{end}}
  {{rpad "help" 26}} show this help{{else}}Usage: {{.Use}}
  {{.Short}}{{end}}
`

// newPrompt builds the command tree for one line typed at the play prompt.
// Game commands turn their arguments into an intent and hand it to send;
// list prints the save slots.
func newPrompt(out io.Writer, send func(game.Intent) error, list func()) *cobra.Command {
	root := &cobra.Command{
		Use:                "blackjack>",
		Short:              "Blackjack table commands",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableFlagParsing: true,
		CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("%q: %w", args[0], errBadCommand)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	root.SetOut(out)
	root.SetErr(out)
	root.SetUsageTemplate(promptUsage)
	root.SetHelpTemplate(`{{.UsageString}}`)

	intent := func(build func(args []string) (game.Intent, error)) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			in, err := build(args)
			if err != nil {
				return err
			}
			return send(in)
		}
	}
	fixed := func(in game.Intent) func(*cobra.Command, []string) error {
		return intent(func([]string) (game.Intent, error) { return in, nil })
	}

	root.AddCommand(
		&cobra.Command{
			Use:     "slot N",
			Short:   "choose save slot N (1-3)",
			Aliases: []string{"select", "game"},
			Args:    usage(cobra.ExactArgs(1)),
			RunE: intent(func(args []string) (game.Intent, error) {
				n, err := slotArg(args[0])
				return game.Intent{Kind: game.SelectSlot, Slot: n}, err
			}),
		},
		&cobra.Command{
			Use:     "topup",
			Short:   fmt.Sprintf("add $%d to an empty slot", slots.DefaultBalance),
			Aliases: []string{"refill"},
			Args:    usage(cobra.NoArgs),
			RunE:    fixed(game.Intent{Kind: game.TopUp}),
		},
		&cobra.Command{
			Use:   "bet N | min | 10% | all",
			Short: "place a bet and deal",
			Args:  usage(cobra.ExactArgs(1)),
			RunE: intent(func(args []string) (game.Intent, error) {
				p, amount, err := game.ParseBet(args[0])
				return game.Intent{Kind: game.Bet, Preset: p, Amount: amount}, err
			}),
		},
		&cobra.Command{
			Use:   "min",
			Short: fmt.Sprintf("bet the $%d minimum", game.MinBet),
			Args:  usage(cobra.NoArgs),
			RunE:  fixed(game.Intent{Kind: game.Bet, Preset: game.BetMin}),
		},
		&cobra.Command{
			Use:     "all",
			Short:   "bet the whole balance",
			Aliases: []string{"allin"},
			Args:    usage(cobra.NoArgs),
			RunE:    fixed(game.Intent{Kind: game.Bet, Preset: game.BetAllIn}),
		},
		&cobra.Command{
			Use:     "hit",
			Short:   "draw a card",
			Aliases: []string{"h"},
			Args:    usage(cobra.NoArgs),
			RunE:    fixed(game.Intent{Kind: game.HitCard}),
		},
		&cobra.Command{
			Use:     "stand",
			Short:   "end your turn",
			Aliases: []string{"s"},
			Args:    usage(cobra.NoArgs),
			RunE:    fixed(game.Intent{Kind: game.StandHand}),
		},
		&cobra.Command{
			Use:   "rename N NAME",
			Short: "rename slot N",
			Args:  usage(renameArgs),
			RunE: intent(func(args []string) (game.Intent, error) {
				n, name, err := parseRename(args)
				return game.Intent{Kind: game.RenameSlot, Slot: n, Name: name}, err
			}),
		},
		&cobra.Command{
			Use:     "transfer FROM TO AMOUNT",
			Short:   "move money between slots",
			Aliases: []string{"move"},
			Args:    usage(transferArgs),
			RunE: intent(func(args []string) (game.Intent, error) {
				from, to, amount, err := parseTransfer(args)
				return game.Intent{Kind: game.TransferFunds, From: from, To: to, Amount: amount}, err
			}),
		},
		&cobra.Command{
			Use:     "slots",
			Short:   "list save slots",
			Aliases: []string{"ls"},
			Args:    usage(cobra.NoArgs),
			Run: func(cmd *cobra.Command, args []string) {
				list()
			},
		},
		&cobra.Command{
			Use:     "quit",
			Short:   "leave the table",
			Aliases: []string{"exit", "q"},
			Args:    usage(cobra.NoArgs),
			RunE:    fixed(game.Intent{Kind: game.Quit}),
		},
	)

	// Negative amounts reach the argument parsers instead of failing as flags
	for _, c := range root.Commands() {
		c.DisableFlagParsing = true
	}
	return root
}

// usage marks argument count errors as input mistakes
func usage(rule cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := rule(cmd, args); err != nil {
			return fmt.Errorf("%s: %v: %w", cmd.Name(), err, errBadCommand)
		}
		return nil
	}
}

// execLine runs one prompt line through the command tree. Blank lines do
// nothing.
func execLine(root *cobra.Command, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	fields[0] = strings.ToLower(fields[0])
	root.SetArgs(fields)
	_, err := root.ExecuteC()
	return err
}

// recoverable reports whether err came from user input rather than from
// the state file or the disk.
func recoverable(err error) bool {
	for _, target := range []error{
		errBadCommand,
		game.ErrBelowMinimum,
		game.ErrWrongPhase,
		game.ErrNoSlot,
		game.ErrBadPreset,
		slots.ErrInsufficientBalance,
		slots.ErrInvalidSlot,
		slots.ErrInvalidName,
		slots.ErrInvalidAmount,
		slots.ErrNotEmpty,
		deck.ErrInsufficientDeck,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
