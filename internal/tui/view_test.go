package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestView_RendersGrid(t *testing.T) {
	m, s := newTestModel(t)
	m = dispatch(t, m, s, createAt("1", "1", 8, 10))

	out := ansi.Strip(m.View())

	for _, want := range []string{"Monday, Jan 1 2024 (today)", "Checkout 1", "Customer Service", "08:00", "John Smith"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in view", want)
		}
	}
	if lines := strings.Split(out, "\n"); len(lines) != m.height {
		t.Errorf("view has %d lines, want %d", len(lines), m.height)
	}
}

func TestView_TooSmall(t *testing.T) {
	m, _ := newTestModel(t)
	m.height = 5

	if out := m.View(); !strings.Contains(out, "Terminal too small") {
		t.Fatalf("unexpected view %q", out)
	}
}

func TestCellText_ExtraMatches(t *testing.T) {
	m, s := newTestModel(t)
	m = dispatch(t, m, s, createAt("1", "1", 8, 10))
	m = dispatch(t, m, s, createAt("2", "1", 9, 11))
	m = dispatch(t, m, s, createAt("3", "1", 9, 10))

	tests := []struct {
		slot int
		want string
	}{
		{8, "John Smith"},
		{9, "John Smith +2"},
		{10, "Sarah Johnson"},
		{11, ""},
	}
	for _, tt := range tests {
		got := m.cellText(m.cellShifts(Position{Slot: tt.slot, Counter: 0}))
		if got != tt.want {
			t.Errorf("slot %d: cell = %q, want %q", tt.slot, got, tt.want)
		}
	}
}

func TestCellText_Truncates(t *testing.T) {
	m, s := newTestModel(t)
	m = dispatch(t, m, s, createAt("1", "1", 8, 10))
	m = dispatch(t, m, s, createAt("2", "1", 8, 10))
	m.colWidth = 8

	got := m.cellText(m.cellShifts(Position{Slot: 8, Counter: 0}))

	if want := "John… +1"; got != want {
		t.Fatalf("cell = %q, want %q", got, want)
	}
	if w := ansi.StringWidth(got); w > m.colWidth {
		t.Fatalf("cell width %d exceeds %d", w, m.colWidth)
	}
}

func TestRenderCell_Styles(t *testing.T) {
	m, s := newTestModel(t)
	m = dispatch(t, m, s, createAt("1", "1", 8, 10))
	m = dispatch(t, m, s, createAt("2", "1", 9, 10))
	m = dispatch(t, m, s, createAt("1", "2", 8, 9))
	m = dispatch(t, m, s, createAt("1", "2", 8, 9))

	bg := func(st lipgloss.Style) lipgloss.TerminalColor { return st.GetBackground() }

	tests := []struct {
		name string
		pos  Position
		want lipgloss.Style
	}{
		{"cursor", Position{Slot: 8, Counter: 0}, m.styles.CursorStyle},
		{"conflict", Position{Slot: 9, Counter: 0}, m.styles.ConflictCellStyle},
		{"same employee is no conflict", Position{Slot: 8, Counter: 1}, m.styles.ShiftStyle("#89b4fa")},
		{"empty", Position{Slot: 12, Counter: 0}, m.styles.EmptyCellStyle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, got := m.renderCell(tt.pos)
			if bg(got) != bg(tt.want) {
				t.Fatalf("background = %v, want %v", bg(got), bg(tt.want))
			}
		})
	}
}

func TestRenderPanels(t *testing.T) {
	m, s := newTestModel(t)
	m = dispatch(t, m, s, createAt("1", "1", 8, 9))

	m = press(t, m, "n")
	if out := ansi.Strip(m.View()); !strings.Contains(out, "New shift") || !strings.Contains(out, "> John Smith (Cashier)") {
		t.Fatalf("form not rendered:\n%s", out)
	}

	m = press(t, m, "esc", "d")
	if out := ansi.Strip(m.View()); !strings.Contains(out, "Delete this shift?") {
		t.Fatalf("confirm not rendered:\n%s", out)
	}

	m = press(t, m, "esc", "H")
	out := ansi.Strip(m.View())
	for _, want := range []string{"History (1)", "CREATE", "John Smith @ Checkout 1", "Created new shift for John Smith at Checkout 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in history panel:\n%s", want, out)
		}
	}

	m = press(t, m, "esc")
	if m.mode != ModeNormal {
		t.Fatalf("mode = %v, want normal", m.mode)
	}
}

func TestHistoryCopyEmpty(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "H", "y")

	if m.statusMsg != "History is empty" {
		t.Fatalf("status = %q", m.statusMsg)
	}
}
