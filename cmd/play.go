package cmd

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/arcanaland/blackjack/internal/deck"
	"github.com/arcanaland/blackjack/internal/game"
	"github.com/arcanaland/blackjack/internal/render"
)

// table connects the prompt commands to a session and draws every result.
type table struct {
	sess *game.Session
	r    *render.Renderer
	quit bool
}

// send dispatches an intent. Input mistakes are shown and the table stays
// open; any other error is returned.
func (t *table) send(in game.Intent) error {
	v, err := t.sess.Dispatch(in)
	if err != nil {
		if !recoverable(err) {
			return err
		}
		t.r.Error(err)
	}
	t.r.View(v)
	t.quit = v.Quit
	return nil
}

func (t *table) list() {
	v := t.sess.View()
	t.r.Slots(v.Slots, v.Slot)
}

// runLoop reads commands from in until quit or end of input.
func runLoop(sess *game.Session, in io.Reader, out io.Writer, r *render.Renderer) error {
	t := &table{sess: sess, r: r}
	prompt := newPrompt(out, t.send, t.list)
	r.View(sess.View())

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}

		if err := execLine(prompt, scanner.Text()); err != nil {
			if !recoverable(err) {
				return err
			}
			r.Error(err)
			continue
		}
		if t.quit {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}

	// End of input leaves the table like quit does
	fmt.Fprintln(out)
	_, err := sess.Dispatch(game.Intent{Kind: game.Quit})
	return err
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Sit down at the table",
	Long: `Play starts an interactive game. Choose a save slot, place a bet, then hit or stand.
Type 'help' at the prompt for the list of commands.

Examples:
  blackjack play
  blackjack play --slot 2`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		slotFlag, _ := cmd.Flags().GetInt("slot")
		seed, _ := cmd.Flags().GetInt64("seed")
		if !cmd.Flags().Changed("seed") {
			seed = time.Now().UnixNano()
		}

		store, err := openStore()
		if err != nil {
			return err
		}

		sess := game.NewSession(store, deck.New(seed), logger)
		out := cmd.OutOrStdout()
		r := render.New(out, cfg.Color)

		if slotFlag != 0 {
			if _, err := sess.Dispatch(game.Intent{Kind: game.SelectSlot, Slot: slotFlag}); err != nil {
				return err
			}
		} else {
			fmt.Fprintln(out, "Welcome to Blackjack! Choose a game with 'slot N'.")
		}

		return runLoop(sess, cmd.InOrStdin(), out, r)
	},
}

func init() {
	RootCmd.AddCommand(playCmd)

	playCmd.Flags().IntP("slot", "s", 0, "Save slot to play (1-3)")
	playCmd.Flags().Int64("seed", 0, "Shuffle seed, for replaying a session")
}
