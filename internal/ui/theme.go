package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette, symbols and borders.
// All UI helpers pull from `current`.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Selected, Done, Help, NavActive, NavLink      lipgloss.Style

	BoxUnchecked, BoxChecked string
	Border                   lipgloss.Border
	BorderColor              lipgloss.TerminalColor

	// Glamour style name used for view content.
	Markdown string
}

var current = classic()

func classic() Theme {
	return Theme{
		Name:         "classic",
		Title:        lipgloss.NewStyle().Bold(true),
		Muted:        lipgloss.NewStyle().Faint(true),
		Accent:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Pending:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Selected:     lipgloss.NewStyle().Bold(true).Reverse(true),
		Done:         lipgloss.NewStyle().Faint(true).Strikethrough(true),
		Help:         lipgloss.NewStyle().Faint(true),
		NavActive:    lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("12")),
		NavLink:      lipgloss.NewStyle(),
		BoxUnchecked: "☐", BoxChecked: "☑",
		Border:      lipgloss.RoundedBorder(),
		BorderColor: lipgloss.Color("8"),
		Markdown:    "dark",
	}
}

// SetTheme switches the palette: "classic" (default), "neon" or "mono".
func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		t := classic()
		t.Name = "neon"
		t.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
		t.Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
		t.Pending = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
		t.NavActive = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
		t.BoxUnchecked, t.BoxChecked = "◻", "◼"
		current = t
	case "mono":
		plain := lipgloss.NewStyle()
		current = Theme{
			Name:  "mono",
			Title: plain.Bold(true), Muted: plain, Accent: plain,
			Success: plain, Error: plain, Pending: plain,
			Selected: plain.Reverse(true), Done: plain, Help: plain,
			NavActive: plain.Underline(true), NavLink: plain,
			BoxUnchecked: "[ ]", BoxChecked: "[x]",
			Border:      lipgloss.NormalBorder(),
			BorderColor: lipgloss.NoColor{},
			Markdown:    "notty",
		}
	default:
		current = classic()
	}
}

// Current exposes what renderers need.
func Current() Theme { return current }
