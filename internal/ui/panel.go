package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Box frames inner with the current theme's border.
func Box(inner string) string {
	t := Current()
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1).
		Render(inner)
}

// Panel prints lines inside a frame.
func Panel(w io.Writer, lines []string) {
	fmt.Fprintln(w, Box(strings.Join(lines, "\n")))
}

func OK(w io.Writer, msg string)   { fmt.Fprintln(w, Current().Success.Render("✔ "+msg)) }
func Fail(w io.Writer, msg string) { fmt.Fprintln(w, Current().Error.Render("✖ "+msg)) }

// ProgressBar draws done/total as a fixed width bar with a percentage.
func ProgressBar(done, total, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := 0
	pct := 0
	if total > 0 {
		filled = done * width / total
		pct = done * 100 / total
	}
	return fmt.Sprintf("[%s%s] %3d%%", strings.Repeat("█", filled), strings.Repeat("░", width-filled), pct)
}
