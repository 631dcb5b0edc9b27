package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func dotted(width, height int) string {
	row := strings.Repeat(".", width)
	return strings.Repeat(row+"\n", height-1) + row
}

func TestOverlayEmptyContentReturnsBase(t *testing.T) {
	base := "alpha\nbeta"
	if got := NewOverlay("").Render(base, 10, 2, ""); got != base {
		t.Fatalf("expected base unchanged, got %q", got)
	}
}

func TestOverlayCentresPanel(t *testing.T) {
	overlay := NewOverlay(lipgloss.Color("#0c0c0c"))
	width, height := 30, 11

	got := overlay.Render(dotted(width, height), width, height, "HISTORY\nrow")

	lines := strings.Split(got, "\n")
	if len(lines) != height {
		t.Fatalf("expected %d lines, got %d", height, len(lines))
	}
	bgSeq := overlay.backgroundSeq()
	top := (height - 2) / 2
	for i, line := range lines {
		if w := lipgloss.Width(line); w != width {
			t.Fatalf("line %d width = %d, want %d", i, w, width)
		}
		hasBg := strings.Contains(line, bgSeq)
		inPanel := i == top || i == top+1
		if hasBg != inPanel {
			t.Fatalf("line %d: background = %v, want %v", i, hasBg, inPanel)
		}
	}

	plain := ansi.Strip(lines[top])
	if want := strings.Repeat(".", 11) + "HISTORY" + strings.Repeat(".", 12); plain != want {
		t.Fatalf("panel row = %q, want %q", plain, want)
	}
}

func TestOverlayCutsTallPanel(t *testing.T) {
	got := NewOverlay("#123456").Render(dotted(10, 2), 10, 2, "a\nb\nc\nd")
	if n := len(strings.Split(got, "\n")); n != 2 {
		t.Fatalf("expected 2 lines, got %d", n)
	}
}
