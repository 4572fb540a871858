package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arcanaland/blackjack/internal/render"
	"github.com/arcanaland/blackjack/internal/slots"
)

// slotsCmd represents the slots command group
var slotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "Manage the three save slots",
	Long:  `Commands for listing, renaming and moving money between save slots.`,
}

// slotsListCmd represents the slots ls command
var slotsListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List save slots and balances",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}

		render.New(cmd.OutOrStdout(), cfg.Color).Slots(store.Slots(), 0)
		return nil
	},
}

// slotsInitCmd represents the slots init command
var slotsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the save slot file if it does not exist",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Save slots at:", store.Path())
		return nil
	},
}

// slotsRenameCmd represents the slots rename command
var slotsRenameCmd = &cobra.Command{
	Use:   "rename [slot] [name]",
	Short: "Rename a save slot",
	Args:  renameArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		index, name, err := parseRename(args)
		if err != nil {
			return err
		}

		store, err := openStore()
		if err != nil {
			return err
		}

		if err := store.Rename(index, name); err != nil {
			return err
		}

		sl, _ := store.Slot(index)
		fmt.Fprintf(cmd.OutOrStdout(), "Slot %d renamed to: %s\n", index, sl.Name)
		return nil
	},
}

// slotsTransferCmd represents the slots transfer command
var slotsTransferCmd = &cobra.Command{
	Use:   "transfer [from] [to] [amount]",
	Short: "Move money from one save slot to another",
	Args:  transferArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, to, amount, err := parseTransfer(args)
		if err != nil {
			return err
		}

		store, err := openStore()
		if err != nil {
			return err
		}

		if err := store.Transfer(from, to, amount); err != nil {
			return err
		}

		render.New(cmd.OutOrStdout(), cfg.Color).Slots(store.Slots(), 0)
		return nil
	},
}

// slotsTopUpCmd represents the slots topup command
var slotsTopUpCmd = &cobra.Command{
	Use:   "topup [slot]",
	Short: "Add $100 to an empty save slot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := slotArg(args[0])
		if err != nil {
			return err
		}

		store, err := openStore()
		if err != nil {
			return err
		}

		if err := store.TopUp(index); err != nil {
			return err
		}

		sl, _ := store.Slot(index)
		fmt.Fprintf(cmd.OutOrStdout(), "%s: $%d\n", sl.Name, sl.Balance)
		return nil
	},
}

// Argument rules shared by the slots subcommands and the play prompt.
var (
	renameArgs   = cobra.MinimumNArgs(2)
	transferArgs = cobra.ExactArgs(3)
)

func slotArg(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, slots.ErrInvalidSlot)
	}
	return n, nil
}

// amountArg reads a whole number of dollars, with or without a leading "$".
func amountArg(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(s, "$"))
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, slots.ErrInvalidAmount)
	}
	return n, nil
}

func parseRename(args []string) (int, string, error) {
	index, err := slotArg(args[0])
	if err != nil {
		return 0, "", err
	}
	return index, strings.Join(args[1:], " "), nil
}

func parseTransfer(args []string) (from, to, amount int, err error) {
	if from, err = slotArg(args[0]); err != nil {
		return
	}
	if to, err = slotArg(args[1]); err != nil {
		return
	}
	amount, err = amountArg(args[2])
	return
}

func init() {
	RootCmd.AddCommand(slotsCmd)
	slotsCmd.AddCommand(slotsListCmd)
	slotsCmd.AddCommand(slotsInitCmd)
	slotsCmd.AddCommand(slotsRenameCmd)
	slotsCmd.AddCommand(slotsTransferCmd)
	slotsCmd.AddCommand(slotsTopUpCmd)
}
