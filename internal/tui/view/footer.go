package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FooterViewState holds the lines of the footer below the grid.
type FooterViewState struct {
	InnerW       int
	FooterH      int
	PreviewText  string
	StatusText   string
	HelpText     string
	PreviewStyle lipgloss.Style
	StatusStyle  lipgloss.Style
	HelpStyle    lipgloss.Style
	Bg           lipgloss.Color
}

// RenderFooter renders the move preview, status and help lines. The preview
// line is omitted when empty.
func RenderFooter(state FooterViewState) string {
	if state.FooterH <= 0 {
		return ""
	}
	lines := make([]string, 0, 3)
	if state.PreviewText != "" {
		lines = append(lines, Line(state.InnerW, state.PreviewStyle, state.PreviewText))
	}
	lines = append(lines,
		Line(state.InnerW, state.StatusStyle, state.StatusText),
		Line(state.InnerW, state.HelpStyle, state.HelpText),
	)
	return PlaceBox(state.InnerW, state.FooterH, lipgloss.Bottom, strings.Join(lines, "\n"), state.Bg)
}
