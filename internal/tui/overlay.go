package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Overlay splices a centred panel over the grid.
type Overlay struct {
	bgColor lipgloss.Color
}

// NewOverlay creates an overlay that fills gaps with bg.
func NewOverlay(bg lipgloss.Color) Overlay {
	return Overlay{bgColor: bg}
}

// Render draws content centred on top of base.
func (o Overlay) Render(base string, width, height int, content string) string {
	if width <= 0 || height <= 0 || content == "" {
		return base
	}

	panel := contentLines(content)
	panelW := 0
	for _, line := range panel {
		panelW = max(panelW, lipgloss.Width(line))
	}
	panelW = min(panelW, width)
	if len(panel) > height {
		panel = panel[:height]
	}

	top := (height - len(panel)) / 2
	left := (width - panelW) / 2
	bgSeq := o.backgroundSeq()

	lines := normalizeBase(base, width, height)
	for i, line := range panel {
		if w := lipgloss.Width(line); w > panelW {
			line = ansi.Cut(line, 0, panelW)
		} else if w < panelW {
			line += strings.Repeat(" ", panelW-w)
		}
		line = applyBackgroundResets(line, bgSeq)

		row := lines[top+i]
		lines[top+i] = ansi.Cut(row, 0, left) + bgSeq + line + ansi.ResetStyle + ansi.Cut(row, left+panelW, width)
	}
	return strings.Join(lines, "\n")
}

func (o Overlay) backgroundSeq() string {
	if o.bgColor == "" {
		return ""
	}
	return ansi.Style{}.BackgroundColor(ansi.HexColor(string(o.bgColor))).String()
}

func contentLines(content string) []string {
	lines := strings.Split(content, "\n")
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// applyBackgroundResets keeps the panel background after inner resets.
func applyBackgroundResets(line, bgSeq string) string {
	if bgSeq == "" || line == "" {
		return line
	}
	line = strings.ReplaceAll(line, "\x1b[0m", "\x1b[0m"+bgSeq)
	line = strings.ReplaceAll(line, "\x1b[49m", "\x1b[49m"+bgSeq)
	return line
}

// normalizeBase pads or cuts base to exactly width×height cells.
func normalizeBase(base string, width, height int) []string {
	lines := strings.Split(base, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	lines = lines[:height]
	for i, line := range lines {
		w := lipgloss.Width(line)
		switch {
		case w > width:
			lines[i] = ansi.Cut(line, 0, width)
		case w < width:
			lines[i] = line + strings.Repeat(" ", width-w)
		}
	}
	return lines
}
