package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorize "github.com/fatih/color"
	"golang.org/x/term"

	"github.com/arcanaland/blackjack/internal/card"
	"github.com/arcanaland/blackjack/internal/game"
	"github.com/arcanaland/blackjack/internal/slots"
)

const (
	defaultWidth = 80
	cardWidth    = 7 // inner width of a card box
)

// Renderer draws session views as text.
type Renderer struct {
	out   io.Writer
	color bool
	width int
	lg    *lipgloss.Renderer

	label *colorize.Color
	value *colorize.Color
	win   *colorize.Color
	lose  *colorize.Color
	tie   *colorize.Color
	fail  *colorize.Color
}

// New creates a renderer for out. Colors are used only when enabled is set
// and out is a terminal.
func New(out io.Writer, enabled bool) *Renderer {
	width := defaultWidth
	tty := false
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		tty = true
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			width = w
		}
	}

	r := &Renderer{
		out:   out,
		color: enabled && tty,
		width: width,
		lg:    lipgloss.NewRenderer(out),
		label: colorize.New(colorize.FgCyan),
		value: colorize.New(colorize.FgHiWhite),
		win:   colorize.New(colorize.FgGreen, colorize.Bold),
		lose:  colorize.New(colorize.FgRed, colorize.Bold),
		tie:   colorize.New(colorize.FgYellow, colorize.Bold),
		fail:  colorize.New(colorize.FgRed),
	}
	for _, c := range []*colorize.Color{r.label, r.value, r.win, r.lose, r.tie, r.fail} {
		if r.color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// View prints the table: balance line, both hands and the last message.
func (r *Renderer) View(v game.View) {
	if v.Slot == 0 {
		r.Slots(v.Slots, 0)
		r.message(v)
		return
	}

	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "%s%s   %s%s",
		r.label.Sprint("Game: "), r.value.Sprint(v.SlotName),
		r.label.Sprint("Balance: "), r.value.Sprintf("$%d", v.Balance))
	if v.Bet > 0 {
		fmt.Fprintf(r.out, "   %s%s", r.label.Sprint("Current Bet: "), r.value.Sprintf("$%d", v.Bet))
	}
	fmt.Fprintln(r.out)

	if len(v.Player) > 0 {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, r.label.Sprint("Your hand:"))
		fmt.Fprintln(r.out, r.hand(v.Player, false))
		fmt.Fprintf(r.out, "%s%s\n", r.label.Sprint("Total: "), r.value.Sprint(v.PlayerTot))

		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, r.label.Sprint("Dealer's hand:"))
		fmt.Fprintln(r.out, r.hand(v.Dealer, v.HoleCard))
		if !v.HoleCard {
			fmt.Fprintf(r.out, "%s%s\n", r.label.Sprint("Total: "), r.value.Sprint(v.DealerTot))
		}
	}

	r.message(v)
}

func (r *Renderer) message(v game.View) {
	if v.Message == "" {
		return
	}
	var c *colorize.Color
	switch v.Outcome {
	case game.PlayerWins, game.DealerBust:
		c = r.win
	case game.PlayerBust, game.DealerWins:
		c = r.lose
	case game.Push:
		c = r.tie
	default:
		c = r.value
	}
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, c.Sprint(v.Message))
}

// Slots lists the save slots, marking the selected one
func (r *Renderer) Slots(list []slots.Slot, selected int) {
	for i, s := range list {
		line := fmt.Sprintf("%d. %s: $%d", i+1, s.Name, s.Balance)
		if i+1 == selected {
			fmt.Fprintf(r.out, "* %s [SELECTED]\n", line)
		} else {
			fmt.Fprintf(r.out, "  %s\n", line)
		}
	}
}

// Error prints a recoverable error
func (r *Renderer) Error(err error) {
	fmt.Fprintln(r.out, r.fail.Sprintf("Error: %v", err))
}

// hand lays cards out side by side, wrapping to the terminal width.
func (r *Renderer) hand(cards []card.Card, hole bool) string {
	boxes := make([]string, 0, len(cards)+1)
	if hole {
		boxes = append(boxes, r.back())
	}
	for _, c := range cards {
		boxes = append(boxes, r.face(c))
	}
	if len(boxes) == 0 {
		return ""
	}

	perRow := r.width / lipgloss.Width(boxes[0])
	if perRow < 1 {
		perRow = 1
	}

	var rows []string
	for start := 0; start < len(boxes); start += perRow {
		end := min(start+perRow, len(boxes))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, boxes[start:end]...))
	}
	return strings.Join(rows, "\n")
}

func (r *Renderer) box() lipgloss.Style {
	return r.lg.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Width(cardWidth).
		Align(lipgloss.Center)
}

func (r *Renderer) face(c card.Card) string {
	style := r.box()
	if r.color {
		if c.Color() == card.Red {
			style = style.Foreground(lipgloss.Color("#FF4040"))
		} else {
			style = style.Foreground(lipgloss.Color("#FFFFFF"))
		}
	}
	return style.Render(string(c.Rank) + "\n" + string(c.Suit) + "\n" + string(c.Rank))
}

func (r *Renderer) back() string {
	style := r.box()
	if r.color {
		style = style.Foreground(lipgloss.Color("#007ACC"))
	}
	pattern := strings.Repeat("░", cardWidth)
	return style.Render(pattern + "\n" + pattern + "\n" + pattern)
}
