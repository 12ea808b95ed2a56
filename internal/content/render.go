package content

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Renderer turns markdown templates into styled terminal text.
type Renderer struct {
	style string
}

// NewRenderer uses the named glamour standard style ("dark", "light", "notty", ...).
func NewRenderer(style string) *Renderer {
	if style == "" {
		style = "notty"
	}
	return &Renderer{style: style}
}

// Render wraps md at width columns.
func (r *Renderer) Render(md string, width int) (string, error) {
	if strings.TrimSpace(md) == "" {
		return "", nil
	}
	if width < 20 {
		width = 20
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(r.style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("glamour: %w", err)
	}
	out, err := tr.Render(md)
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	return strings.Trim(out, "\n"), nil
}
