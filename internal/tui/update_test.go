package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/roster/internal/history"
	"github.com/javiermolinar/roster/internal/roster"
	"github.com/javiermolinar/roster/internal/tui/commands"
)

func createAt(employee, counter string, from, to int) roster.CreateShift {
	return roster.CreateShift{EmployeeID: employee, CounterID: counter, Start: at(from, 0), End: at(to, 0)}
}

func TestNewShiftForm(t *testing.T) {
	m, s := newTestModel(t)

	m = press(t, m, "n")
	if m.mode != ModeForm {
		t.Fatalf("mode = %v, want form", m.mode)
	}
	m = press(t, m, "enter")

	if m.mode != ModeNormal {
		t.Fatalf("mode = %v, want normal", m.mode)
	}
	if want := "Created shift for John Smith at Checkout 1 08:00-09:00"; m.statusMsg != want {
		t.Fatalf("status = %q, want %q", m.statusMsg, want)
	}
	if len(m.shifts) != 1 || len(m.entries) != 1 {
		t.Fatalf("shifts = %d, entries = %d, want 1 and 1", len(m.shifts), len(m.entries))
	}
	if got := len(s.History()); got != 1 {
		t.Fatalf("ledger = %d entries, want 1", got)
	}
}

func TestNewShiftForm_EmployeeAndDuration(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "n", "j", "tab", "l", "enter")

	if len(m.shifts) != 1 {
		t.Fatalf("shifts = %d, want 1", len(m.shifts))
	}
	got := m.shifts[0]
	if got.EmployeeID != "2" {
		t.Errorf("employee = %q, want 2", got.EmployeeID)
	}
	if got.Duration() != 2*time.Hour {
		t.Errorf("duration = %v, want 2h", got.Duration())
	}
}

func TestNewShiftForm_Cancel(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "n", "esc")

	if m.mode != ModeNormal || len(m.shifts) != 0 {
		t.Fatalf("mode = %v, shifts = %d", m.mode, len(m.shifts))
	}
}

func TestConflictWarning(t *testing.T) {
	m, s := newTestModel(t)
	m = dispatch(t, m, s, createAt("1", "1", 8, 10))

	m = press(t, m, "n", "j", "enter")

	if m.statusKind != statusWarning {
		t.Fatalf("status kind = %v, want warning", m.statusKind)
	}
	if !strings.HasSuffix(m.statusMsg, "warning: overlaps John Smith at Checkout 1") {
		t.Fatalf("status = %q", m.statusMsg)
	}
	if len(m.shifts) != 2 {
		t.Fatalf("shifts = %d, want both kept", len(m.shifts))
	}
}

func TestUndo(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "u")
	if m.statusMsg != "Nothing to undo" {
		t.Fatalf("status = %q, want Nothing to undo", m.statusMsg)
	}

	m = press(t, m, "n", "enter", "u")
	if len(m.shifts) != 0 {
		t.Fatalf("shifts = %d, want 0 after undo", len(m.shifts))
	}
	if len(m.entries) != 0 {
		t.Fatalf("entries = %d, want 0 after undo", len(m.entries))
	}
	if !strings.HasPrefix(m.statusMsg, "Undid create") {
		t.Fatalf("status = %q", m.statusMsg)
	}
}

func TestMoveShift(t *testing.T) {
	m, s := newTestModel(t)
	m = dispatch(t, m, s, createAt("1", "1", 8, 9))

	m = press(t, m, "m")
	if m.mode != ModeMove {
		t.Fatalf("mode = %v, want move", m.mode)
	}
	m = press(t, m, "l", "j")
	if m.move.preview == nil {
		t.Fatal("expected a preview for the current target")
	}
	if got := m.previewText(); !strings.Contains(got, "no conflicts") {
		t.Fatalf("preview = %q", got)
	}

	m = press(t, m, "enter")

	got := m.shifts[0]
	if got.CounterID != "2" || !got.Start.Equal(at(9, 0)) || !got.End.Equal(at(10, 0)) {
		t.Fatalf("moved shift = %s %s", got.CounterID, got.Timespan())
	}
	if want := "Moved John Smith to Checkout 2 09:00-10:00"; m.statusMsg != want {
		t.Fatalf("status = %q, want %q", m.statusMsg, want)
	}
	if m.cursor != (Position{Slot: 9, Counter: 1}) {
		t.Fatalf("cursor = %+v", m.cursor)
	}
}

func TestMoveShift_PreviewConflict(t *testing.T) {
	m, s := newTestModel(t)
	m = dispatch(t, m, s, createAt("1", "1", 8, 9))
	m = dispatch(t, m, s, createAt("2", "2", 8, 9))

	m = press(t, m, "m", "l")

	want := "warning: overlaps Sarah Johnson at Checkout 2"
	if got := m.previewText(); !strings.HasSuffix(got, want) {
		t.Fatalf("preview = %q, want suffix %q", got, want)
	}

	m = press(t, m, "esc")
	if m.mode != ModeNormal || m.shifts[0].CounterID != "1" {
		t.Fatalf("cancel should leave the shift in place")
	}
	if got := len(s.History()); got != 2 {
		t.Fatalf("ledger = %d entries, want 2", got)
	}
}

func TestStalePreviewIgnored(t *testing.T) {
	m, s := newTestModel(t)
	m = dispatch(t, m, s, createAt("1", "1", 8, 9))
	m = press(t, m, "m", "l")

	stale := commands.PreviewMsg{
		Command: roster.MoveShift{ShiftID: "s1", CounterID: "1", Start: at(8, 0)},
		Err:     errors.New("stale"),
	}
	updated, _ := m.Update(stale)

	if updated.(Model).move.previewErr != nil {
		t.Fatal("preview for an old target must be ignored")
	}
}

func TestGrowAndShrink(t *testing.T) {
	m, s := newTestModel(t)
	m = dispatch(t, m, s, createAt("1", "1", 8, 9))

	m = press(t, m, ">")
	if got := m.shifts[0].End; !got.Equal(at(10, 0)) {
		t.Fatalf("end after grow = %v, want 10:00", got)
	}

	m = press(t, m, "<", "<")
	if got := m.shifts[0].End; !got.Equal(at(9, 0)) {
		t.Fatalf("end after shrink = %v, want 09:00", got)
	}
	if m.statusMsg != "Shift cannot be shorter than one interval" {
		t.Fatalf("status = %q", m.statusMsg)
	}

	entries := s.History()
	if len(entries) != 3 || entries[0].Action != history.ActionUpdate {
		t.Fatalf("ledger = %+v", entries)
	}
}

func TestDeleteConfirm(t *testing.T) {
	m, s := newTestModel(t)
	m = dispatch(t, m, s, createAt("1", "1", 8, 9))

	m = press(t, m, "d", "n")
	if len(m.shifts) != 1 {
		t.Fatal("declined delete removed the shift")
	}

	m = press(t, m, "d")
	if m.mode != ModeConfirm {
		t.Fatalf("mode = %v, want confirm", m.mode)
	}
	m = press(t, m, "y")

	if len(m.shifts) != 0 {
		t.Fatalf("shifts = %d, want 0", len(m.shifts))
	}
	if want := "Deleted shift for John Smith at Checkout 1"; m.statusMsg != want {
		t.Fatalf("status = %q, want %q", m.statusMsg, want)
	}
}

func TestActionsOnEmptyCell(t *testing.T) {
	m, _ := newTestModel(t)

	for _, k := range []string{"m", "d", ">"} {
		m = press(t, m, k)
		if m.mode != ModeNormal {
			t.Fatalf("%s: mode = %v, want normal", k, m.mode)
		}
		if m.statusMsg != "No shift here" {
			t.Fatalf("%s: status = %q", k, m.statusMsg)
		}
	}
}

func TestErrMsgShowsError(t *testing.T) {
	m, _ := newTestModel(t)

	updated, _ := m.Update(commands.ErrMsg{Err: roster.ErrShiftNotFound})
	m = updated.(Model)

	if m.statusKind != statusError || !strings.Contains(m.statusMsg, "shift not found") {
		t.Fatalf("status = %q (%v)", m.statusMsg, m.statusKind)
	}
}

func TestClearStatusAfterTTL(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "u")

	now := at(10, 30)
	m.nowFunc = func() time.Time { return now }
	updated, _ := m.Update(commands.ClearStatusMsg{})
	if updated.(Model).statusMsg == "" {
		t.Fatal("status cleared before its time")
	}

	now = now.Add(statusTTL)
	updated, _ = m.Update(commands.ClearStatusMsg{})
	if updated.(Model).statusMsg != "" {
		t.Fatal("status not cleared")
	}
}

func TestEditForm_ReassignsEmployeeAndCounter(t *testing.T) {
	m, s := newTestModel(t)
	m = dispatch(t, m, s, createAt("1", "1", 8, 9))

	m = press(t, m, "e")
	if m.mode != ModeForm || m.form.editing == nil {
		t.Fatalf("mode = %v, want edit form", m.mode)
	}
	if out := ansi.Strip(m.View()); !strings.Contains(out, "Edit shift") || !strings.Contains(out, "‹ Checkout 1 ›") {
		t.Fatalf("edit form not rendered:\n%s", out)
	}

	m = press(t, m, "j", "tab", "l", "enter")

	if len(s.History()) != 2 {
		t.Fatalf("ledger = %d entries, want 2", len(s.History()))
	}
	got := m.shifts[0]
	if got.EmployeeID != "2" || got.CounterID != "2" {
		t.Fatalf("shift = %s @ %s, want 2 @ 2", got.EmployeeID, got.CounterID)
	}
	if got.Title != "Sarah Johnson - Checkout 2" {
		t.Errorf("title = %q", got.Title)
	}
	if m.cursor.Counter != 1 {
		t.Errorf("cursor counter = %d, want it to follow the shift", m.cursor.Counter)
	}
	if want := "Moved from Checkout 1 to Checkout 2"; s.History()[0].Details != want {
		t.Errorf("details = %q, want %q", s.History()[0].Details, want)
	}
}

func TestEditForm_ReassignsEmployeeOnly(t *testing.T) {
	m, s := newTestModel(t)
	m = dispatch(t, m, s, createAt("1", "1", 8, 9))

	m = press(t, m, "e", "j", "enter")

	if got := m.shifts[0]; got.EmployeeID != "2" || got.CounterID != "1" {
		t.Fatalf("shift = %s @ %s, want 2 @ 1", got.EmployeeID, got.CounterID)
	}
	if want := "Reassigned from John Smith to Sarah Johnson at Checkout 1"; s.History()[0].Details != want {
		t.Errorf("details = %q, want %q", s.History()[0].Details, want)
	}
}

func TestEditForm_Duration(t *testing.T) {
	m, s := newTestModel(t)
	m = dispatch(t, m, s, roster.CreateShift{EmployeeID: "1", CounterID: "1", Start: at(8, 0), End: at(9, 45)})

	m = press(t, m, "e")
	if got := m.form.durations[m.form.duration]; got != 105 {
		t.Fatalf("selected duration = %d, want the shift's own 105", got)
	}

	m = press(t, m, "tab", "tab", "l", "enter")
	if got := m.shifts[0].End; !got.Equal(at(10, 0)) {
		t.Fatalf("end = %v, want 10:00", got)
	}
	if !m.shifts[0].Start.Equal(at(8, 0)) {
		t.Errorf("start moved to %v", m.shifts[0].Start)
	}
}

func TestResizeSnapsToGrid(t *testing.T) {
	m, s := newTestModel(t)
	m = dispatch(t, m, s, roster.CreateShift{EmployeeID: "1", CounterID: "1", Start: at(8, 0), End: at(9, 45)})

	m = press(t, m, "<")
	if got := m.shifts[0].End; !got.Equal(at(9, 0)) {
		t.Fatalf("end after shrink = %v, want 09:00", got)
	}

	m = dispatch(t, m, s, roster.UpdateShift{ShiftID: m.shifts[0].ID, Start: at(8, 0), End: at(9, 45)})
	m = press(t, m, ">")
	if got := m.shifts[0].End; !got.Equal(at(10, 0)) {
		t.Fatalf("end after grow = %v, want 10:00", got)
	}
}

func TestHistoryUndoPreview(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "H")
	if out := ansi.Strip(m.View()); !strings.Contains(out, "Nothing to undo") {
		t.Fatalf("empty preview not rendered:\n%s", out)
	}

	m = press(t, m, "esc", "n", "enter", "H")
	if m.undoPreview == nil || !m.undoPreview.Outcome.Success {
		t.Fatalf("undo preview = %+v", m.undoPreview)
	}
	want := "Undo would remove John Smith at Checkout 1 · 1 → 0 shifts today"
	if out := ansi.Strip(m.View()); !strings.Contains(out, want) {
		t.Fatalf("expected %q in history panel:\n%s", want, out)
	}

	m = press(t, m, "u")
	if m.mode != ModeHistory {
		t.Fatalf("mode = %v, want history kept open", m.mode)
	}
	if len(m.shifts) != 0 || len(m.entries) != 0 {
		t.Fatalf("shifts = %d, entries = %d after undo", len(m.shifts), len(m.entries))
	}
	if m.undoPreview == nil || m.undoPreview.Outcome.Success {
		t.Fatalf("undo preview not refreshed: %+v", m.undoPreview)
	}
}

func TestTitleCountsShifts(t *testing.T) {
	m, s := newTestModel(t)
	m = dispatch(t, m, s, createAt("1", "1", 8, 9))
	m = dispatch(t, m, s, roster.CreateShift{EmployeeID: "2", CounterID: "1", Start: at(8, 0).AddDate(0, 0, 1), End: at(9, 0).AddDate(0, 0, 1)})

	if got := m.titleText(); !strings.Contains(got, "1 shifts (2 in session)") {
		t.Fatalf("title = %q", got)
	}
}
