package tui

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/roster/internal/config"
	"github.com/javiermolinar/roster/internal/tui/view"
)

func TestDirectory_OpenAndClose(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "D")
	if m.mode != ModeDirectory {
		t.Fatalf("mode = %v, want directory", m.mode)
	}
	out := ansi.Strip(m.View())
	for _, want := range []string{"Directory", "Employees (8)", "Counters (7)", "> John Smith · Cashier"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in directory panel:\n%s", want, out)
		}
	}

	m = press(t, m, "tab")
	if m.dirPanel.tab != view.DirectoryCounters {
		t.Fatalf("tab = %d, want counters", m.dirPanel.tab)
	}
	if out := ansi.Strip(m.View()); !strings.Contains(out, "> Checkout 1 · Main checkout counter") {
		t.Fatalf("counters not listed:\n%s", out)
	}

	m = press(t, m, "esc")
	if m.mode != ModeNormal {
		t.Fatalf("mode = %v, want normal", m.mode)
	}
}

func TestDirectory_AddCounterAddsColumn(t *testing.T) {
	m, s := newTestModel(t)

	m = press(t, m, "D", "tab", "a")
	if !m.dirPanel.editing() {
		t.Fatal("add form not open")
	}
	if out := ansi.Strip(m.View()); !strings.Contains(out, "New counter") {
		t.Fatalf("form not rendered:\n%s", out)
	}
	m = press(t, m, "Florist", "tab", "Cut flowers", "enter")

	if m.dirPanel.editing() {
		t.Fatal("form still open after submit")
	}
	if len(m.counters) != 8 {
		t.Fatalf("counters = %d, want 8", len(m.counters))
	}
	added := m.counters[7]
	if added.ID != "8" || added.Name != "Florist" || added.Description != "Cut flowers" {
		t.Errorf("added counter = %+v", added)
	}
	if _, err := s.Directory().Counter("8"); err != nil {
		t.Errorf("session directory: %v", err)
	}
	if m.statusMsg != "Added counter Florist" {
		t.Errorf("status = %q", m.statusMsg)
	}
}

func TestDirectory_AddEmployee(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "D", "a", "Ana Ruiz", "tab", "Florist", "enter")

	if len(m.employees) != 9 {
		t.Fatalf("employees = %d, want 9", len(m.employees))
	}
	got := m.employees[8]
	if got.ID != "9" || got.Name != "Ana Ruiz" || got.Position != "Florist" {
		t.Errorf("added employee = %+v", got)
	}
	if got.Color != config.DefaultEmployees()[0].Color {
		t.Errorf("color = %q, want the palette to wrap", got.Color)
	}
}

func TestDirectory_NameRequired(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "D", "a", "   ", "enter")

	if !m.dirPanel.editing() {
		t.Fatal("form closed on an empty name")
	}
	if m.statusMsg != "Name is required" {
		t.Fatalf("status = %q", m.statusMsg)
	}

	m = press(t, m, "esc")
	if m.dirPanel.editing() || m.mode != ModeDirectory {
		t.Fatalf("esc must close the form only, mode = %v", m.mode)
	}
}

func TestDirectory_EditEmployeeRenamesCells(t *testing.T) {
	m, s := newTestModel(t)
	m = dispatch(t, m, s, createAt("1", "1", 8, 9))

	m = press(t, m, "D", "e", " Jr", "enter", "esc")

	if got := m.employees[0].Name; got != "John Smith Jr" {
		t.Fatalf("name = %q, want John Smith Jr", got)
	}
	if got := m.cellText(m.cellShifts(m.cursor)); !strings.HasPrefix(got, "John Smith Jr") {
		t.Errorf("cell = %q, want the new name", got)
	}
	if m.shifts[0].Title != "John Smith - Checkout 1" {
		t.Errorf("title = %q, want it left as created", m.shifts[0].Title)
	}
}

func TestDirectory_RemoveEmployee(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "D", "j", "d")
	if out := ansi.Strip(m.View()); !strings.Contains(out, "Remove Sarah Johnson?") {
		t.Fatalf("confirmation not rendered:\n%s", out)
	}
	m = press(t, m, "n")
	if len(m.employees) != 8 {
		t.Fatal("declined removal removed the employee")
	}

	m = press(t, m, "d", "y")
	if len(m.employees) != 7 {
		t.Fatalf("employees = %d, want 7", len(m.employees))
	}
	if m.statusMsg != "Removed employee Sarah Johnson" {
		t.Errorf("status = %q", m.statusMsg)
	}
}

func TestDirectory_RemoveCounterInUse(t *testing.T) {
	m, s := newTestModel(t)
	m = dispatch(t, m, s, createAt("1", "1", 8, 9))

	m = press(t, m, "D", "tab", "d", "y")

	if len(m.counters) != 7 {
		t.Fatalf("counters = %d, want the counter kept", len(m.counters))
	}
	if m.statusKind != statusError || !strings.Contains(m.statusMsg, "counter has shifts") {
		t.Fatalf("status = %q (%v)", m.statusMsg, m.statusKind)
	}

	m = press(t, m, "j", "d", "y")
	if len(m.counters) != 6 {
		t.Fatalf("counters = %d, want an unused counter removed", len(m.counters))
	}
}

func TestDirectory_WriteConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	m, _ := newTestModel(t)

	m = press(t, m, "D", "tab", "a", "Florist", "enter", "w")

	path := filepath.Join(home, ".config", "roster", "config.toml")
	if want := "Saved directory to " + path; m.statusMsg != want {
		t.Fatalf("status = %q, want %q", m.statusMsg, want)
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if len(cfg.Counters) != 8 || cfg.Counters[7].Name != "Florist" {
		t.Errorf("saved counters = %+v", cfg.Counters)
	}
}

func TestNextDirectoryID(t *testing.T) {
	tests := []struct {
		ids  []string
		want string
	}{
		{nil, "1"},
		{[]string{"1", "2"}, "3"},
		{[]string{"7", "x", "3"}, "8"},
	}
	for _, tt := range tests {
		if got := nextDirectoryID(tt.ids); got != tt.want {
			t.Errorf("nextDirectoryID(%v) = %q, want %q", tt.ids, got, tt.want)
		}
	}
}
