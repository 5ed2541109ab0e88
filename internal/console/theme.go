// Package console runs a session in a terminal: a line-based prompt for
// human players, a renderer that prints engine events, and a pacer that
// holds the screen between phases.
package console

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/holdem-knockout/internal/deck"
)

// Theme binds the output stream to the styles used to draw on it
type Theme struct {
	out *termenv.Output

	Header  lipgloss.Style
	Info    lipgloss.Style
	Action  lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Muted   lipgloss.Style
	Red     lipgloss.Style
	Black   lipgloss.Style
}

// NewTheme creates a theme writing to w. Pass
// termenv.WithProfile(termenv.Ascii) to disable colour.
func NewTheme(w io.Writer, opts ...termenv.OutputOption) *Theme {
	r := lipgloss.NewRenderer(w, opts...)
	return &Theme{
		out: termenv.NewOutput(w, opts...),

		Header: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1),
		Info: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Action: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Success: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Error: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		Warning: r.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true),
		Muted: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Red: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		Black: r.NewStyle().
			Bold(true),
	}
}

// Writer returns the themed output stream
func (t *Theme) Writer() io.Writer {
	return t.out
}

// ClearScreen wipes the terminal and homes the cursor
func (t *Theme) ClearScreen() {
	t.out.ClearScreen()
}

// Card renders a card in its suit colour
func (t *Theme) Card(c deck.Card) string {
	if c.IsRed() {
		return t.Red.Render(c.String())
	}
	return t.Black.Render(c.String())
}

// Cards renders cards separated by spaces, or a dash for none
func (t *Theme) Cards(cards []deck.Card) string {
	if len(cards) == 0 {
		return t.Muted.Render("-")
	}
	s := ""
	for i, c := range cards {
		if i > 0 {
			s += " "
		}
		s += t.Card(c)
	}
	return s
}
