package console

import "github.com/charmbracelet/lipgloss"

// Styles used when rendering the table. They are bound to the prompter's
// output so colours are dropped when it is not a terminal.
type Styles struct {
	Header  lipgloss.Style
	Player  lipgloss.Style
	Dealer  lipgloss.Style
	Prompt  lipgloss.Style
	Message lipgloss.Style
	Error   lipgloss.Style
}

// NewStyles creates the styles for renderer
func NewStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Header: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true),
		Player: r.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true),
		Dealer: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Prompt: r.NewStyle().
			Foreground(lipgloss.Color("#74B9FF")),
		Message: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")),
		Error: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
	}
}
