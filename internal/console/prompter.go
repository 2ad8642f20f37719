package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fadedpez/blackjack/pkg/services/blackjack"
)

// ErrInputClosed is returned when the input ends while an answer is required
var ErrInputClosed = errors.New("input closed")

// Prompter plays the table over a line based terminal
type Prompter struct {
	in     *bufio.Reader
	out    io.Writer
	styles *Styles
}

var _ blackjack.Prompter = (*Prompter)(nil)

// NewPrompter reads answers from in and writes the table to out
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:     bufio.NewReader(in),
		out:    out,
		styles: NewStyles(lipgloss.NewRenderer(out)),
	}
}

// AskPlayerCount asks how many players sit down
func (p *Prompter) AskPlayerCount(ctx context.Context) (int, error) {
	for {
		n, err := p.askInt(ctx, "How many players are at the table? ")
		if err != nil {
			return 0, err
		}
		if n > 0 {
			return int(n), nil
		}
		p.complain("There must be at least one player.")
	}
}

// AskName asks the player in seat (counted from 1) for a name
func (p *Prompter) AskName(ctx context.Context, seat int) (string, error) {
	for {
		line, err := p.ask(ctx, fmt.Sprintf("\nPlayer %d, what is your name? ", seat))
		if err != nil {
			return "", err
		}
		if line != "" {
			return line, nil
		}
	}
}

// AskBuyIn asks a player for a buy-in; an empty answer takes def
func (p *Prompter) AskBuyIn(ctx context.Context, name string, def int64) (int64, error) {
	for {
		line, err := p.ask(ctx, fmt.Sprintf("\n%s, how much do you want to buy in for? [%d] ", name, def))
		if err != nil {
			return 0, err
		}
		if line == "" {
			return def, nil
		}
		amount, err := strconv.ParseInt(line, 10, 64)
		if err == nil && amount > 0 {
			return amount, nil
		}
		p.complain("Please enter a positive whole number.")
	}
}

// AskBet asks a player for a wager. Only whole numbers are accepted here; the
// round decides whether the amount is allowed.
func (p *Prompter) AskBet(ctx context.Context, player *blackjack.Player, bank int64) (int64, error) {
	return p.askInt(ctx, fmt.Sprintf("\n%s, you have %d. How much do you want to bet? ", player.Name, bank))
}

// AskAction shows the table and asks for one of legal
func (p *Prompter) AskAction(ctx context.Context, view blackjack.TableView, player *blackjack.Player, hand *blackjack.Hand, legal []blackjack.Action) (blackjack.Action, error) {
	p.render(view)

	options := make([]string, len(legal))
	for i, a := range legal {
		options[i] = a.String()
	}

	for {
		line, err := p.ask(ctx, fmt.Sprintf("\n%s, your hand is %s\nYour options are: %s\n> ",
			player.Name, hand.String(), strings.Join(options, ", ")))
		if err != nil {
			return "", err
		}

		action, err := blackjack.ParseAction(line)
		if err == nil {
			return action, nil
		}
		p.complain(fmt.Sprintf("%q is not an option.", line))
	}
}

// Announce shows the table followed by message
func (p *Prompter) Announce(ctx context.Context, view blackjack.TableView, message string) {
	p.render(view)
	fmt.Fprintln(p.out, renderLines(p.styles.Message, message))
}

// AskContinue asks whether to deal another round. A closed input means no.
func (p *Prompter) AskContinue(ctx context.Context) (bool, error) {
	for {
		line, err := p.ask(ctx, "\nWould you like to play again? (Y or N): ")
		if errors.Is(err, ErrInputClosed) {
			return false, nil
		}
		if err != nil {
			return false, err
		}

		switch strings.ToLower(line) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
	}
}

// render writes the table view; an empty view writes nothing
func (p *Prompter) render(view blackjack.TableView) {
	if view.Dealer == nil && !hasHands(view.Players) {
		return
	}

	var b strings.Builder
	b.WriteString("\n" + p.styles.Header.Render("Table") + "\n")
	for _, player := range view.Players {
		if len(player.Hands) == 0 {
			continue
		}
		lines := strings.Split(player.String(), "\n")
		b.WriteString("\n" + p.styles.Player.Render(lines[0]) + "\n")
		for _, line := range lines[1:] {
			b.WriteString(line + "\n")
		}
	}
	if view.Dealer != nil {
		b.WriteString("\n" + p.styles.Dealer.Render("Dealer") + "\n")
		b.WriteString(view.Dealer.Hand.String() + "\n")
	}
	fmt.Fprint(p.out, b.String())
}

func hasHands(players []*blackjack.Player) bool {
	for _, player := range players {
		if len(player.Hands) > 0 {
			return true
		}
	}
	return false
}

func (p *Prompter) askInt(ctx context.Context, prompt string) (int64, error) {
	for {
		line, err := p.ask(ctx, prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.ParseInt(line, 10, 64)
		if err == nil {
			return n, nil
		}
		p.complain(fmt.Sprintf("%q is not a whole number.", line))
	}
}

// ask writes prompt and returns the next trimmed line
func (p *Prompter) ask(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fmt.Fprint(p.out, renderLines(p.styles.Prompt, prompt))
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrInputClosed
		}
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (p *Prompter) complain(message string) {
	fmt.Fprintln(p.out, p.styles.Error.Render(message))
}

// renderLines styles each line on its own so multi-line text is not padded
// into a block
func renderLines(style lipgloss.Style, text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
