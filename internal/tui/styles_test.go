package tui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/roster/internal/history"
	"github.com/javiermolinar/roster/internal/tui/theme"
)

func testTheme() *theme.Theme {
	return &theme.Theme{
		Bg:          "#101010",
		BgHighlight: "#202020",
		BgSelection: "#303030",
		Fg:          "#ffffff",
		FgMuted:     "#aaaaaa",
		Accent:      "#ff0000",
		Current:     "#ffff00",
		Warning:     "#ff00ff",
		Success:     "#00ff00",
		Danger:      "#ff3333",
		Info:        "#0000ff",
	}
}

func TestStylesBackgroundCoverage(t *testing.T) {
	th := testTheme()
	styles := NewStyles(th)

	assertBg := func(t *testing.T, name string, style lipgloss.Style, want string) {
		t.Helper()
		bg, ok := style.GetBackground().(lipgloss.Color)
		if !ok {
			t.Fatalf("%s background type = %T, want lipgloss.Color", name, style.GetBackground())
		}
		if bg != lipgloss.Color(want) {
			t.Fatalf("%s background = %q, want %q", name, bg, want)
		}
	}

	assertBg(t, "EmptyCellStyle", styles.EmptyCellStyle, th.Bg)
	assertBg(t, "TimeColumnStyle", styles.TimeColumnStyle, th.Bg)
	assertBg(t, "BorderStyle", styles.BorderStyle, th.Bg)
	assertBg(t, "HelpStyle", styles.HelpStyle, th.Bg)
	assertBg(t, "StatusStyle", styles.StatusStyle, th.Bg)
	assertBg(t, "CursorStyle", styles.CursorStyle, th.BgSelection)
	assertBg(t, "MoveConflictStyle", styles.MoveConflictStyle, th.Warning)
}

func TestShiftStyleFallsBackToAccent(t *testing.T) {
	styles := NewStyles(testTheme())

	if got, want := styles.ShiftStyle("").GetBackground(), styles.ShiftStyle("#ff0000").GetBackground(); got != want {
		t.Fatalf("empty colour background = %v, want accent-derived %v", got, want)
	}
}

func TestBadgePerAction(t *testing.T) {
	th := testTheme()
	styles := NewStyles(th)

	tests := []struct {
		action history.Action
		want   string
	}{
		{history.ActionCreate, th.Success},
		{history.ActionUpdate, th.Info},
		{history.ActionDelete, th.Danger},
	}
	for _, tt := range tests {
		if got := styles.Badge(tt.action).GetBackground(); got != lipgloss.Color(tt.want) {
			t.Errorf("Badge(%s) background = %v, want %s", tt.action, got, tt.want)
		}
	}
}
