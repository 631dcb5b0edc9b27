package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/javiermolinar/roster/internal/history"
)

// Color definitions for consistent styling across the CLI.
var (
	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)

	// Overlaps are warnings, never errors
	colorWarning = color.New(color.FgYellow, color.Bold)

	// Healthy results and coverage bars
	colorOK = color.New(color.FgGreen)

	colorError = color.New(color.FgRed)

	colorBadges = map[history.Action]*color.Color{
		history.ActionCreate: color.New(color.FgGreen, color.Bold),
		history.ActionUpdate: color.New(color.FgCyan, color.Bold),
		history.ActionDelete: color.New(color.FgRed, color.Bold),
	}
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}

func formatWarning(s string) string {
	return colorWarning.Sprint(s)
}

func formatOK(s string) string {
	return colorOK.Sprint(s)
}

func formatError(s string) string {
	return colorError.Sprint(s)
}

// formatBadge renders an action as an upper-case label.
func formatBadge(a history.Action) string {
	label := badgeLabel(a)
	if c, ok := colorBadges[a]; ok {
		return c.Sprint(label)
	}
	return label
}

func badgeLabel(a history.Action) string {
	switch a {
	case history.ActionCreate:
		return "CREATE"
	case history.ActionUpdate:
		return "UPDATE"
	case history.ActionDelete:
		return "DELETE"
	}
	return string(a)
}
