package display

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds the lipgloss styles for one output
type Styles struct {
	Title     lipgloss.Style
	HandName  lipgloss.Style
	RedCard   lipgloss.Style
	BlackCard lipgloss.Style
	Hidden    lipgloss.Style
	Total     lipgloss.Style
	Info      lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Prompt    lipgloss.Style
}

// NewStyles builds styles bound to w. With color disabled every style
// renders plain text.
func NewStyles(w io.Writer, color bool) Styles {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}

	return Styles{
		Title: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true),
		HandName: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		RedCard: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		BlackCard: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true),
		Hidden: r.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Italic(true),
		Total: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Info: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")),
		Success: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Warning: r.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true),
		Error: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		Prompt: r.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true),
	}
}
