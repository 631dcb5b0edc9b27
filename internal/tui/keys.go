package tui

import (
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/roster/internal/grid"
	"github.com/javiermolinar/roster/internal/roster"
	"github.com/javiermolinar/roster/internal/shift"
	"github.com/javiermolinar/roster/internal/tui/commands"
	"github.com/javiermolinar/roster/internal/tui/view"
)

// keyMap holds the key bindings for every mode.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	PrevDay  key.Binding
	NextDay  key.Binding
	Today    key.Binding
	Finer    key.Binding
	Coarser  key.Binding
	New      key.Binding
	Edit     key.Binding
	Move     key.Binding
	Grow     key.Binding
	Shrink   key.Binding
	Delete   key.Binding
	Undo     key.Binding
	History  key.Binding
	Staff    key.Binding
	Add      key.Binding
	Write    key.Binding
	Copy     key.Binding
	Confirm  key.Binding
	Cancel   key.Binding
	Tab      key.Binding
	Yes      key.Binding
	No       key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		Left:     key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("←/h", "left")),
		Right:    key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("→/l", "right")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
		PrevDay:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev day")),
		NextDay:  key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next day")),
		Today:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Finer:    key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "finer")),
		Coarser:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "coarser")),
		New:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Move:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move")),
		Grow:     key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "grow")),
		Shrink:   key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "shrink")),
		Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Undo:     key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
		History:  key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "history")),
		Staff:    key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "directory")),
		Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Write:    key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "write config")),
		Copy:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Confirm:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Tab:      key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "field")),
		Yes:      key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y", "yes")),
		No:       key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "no")),
		Quit:     key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

// helpFor returns the bindings shown in the footer for a mode.
func (k keyMap) helpFor(mode Mode) []key.Binding {
	switch mode {
	case ModeMove:
		return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Confirm, k.Cancel}
	case ModeForm:
		return []key.Binding{k.Up, k.Down, k.Tab, k.Confirm, k.Cancel}
	case ModeConfirm:
		return []key.Binding{k.Yes, k.No}
	case ModeHistory:
		return []key.Binding{k.Up, k.Down, k.Copy, k.Undo, k.Cancel}
	case ModeDirectory:
		return []key.Binding{k.Up, k.Down, k.Tab, k.Add, k.Edit, k.Delete, k.Write, k.Cancel}
	default:
		return []key.Binding{k.New, k.Edit, k.Move, k.Grow, k.Shrink, k.Delete, k.Undo,
			k.PrevDay, k.NextDay, k.Today, k.Coarser, k.Finer, k.History, k.Staff, k.Quit}
	}
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.logKeyPress(msg)

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.mode {
	case ModeMove:
		return m.handleMoveKeys(msg)
	case ModeForm:
		return m.handleFormKeys(msg)
	case ModeConfirm:
		return m.handleConfirmKeys(msg)
	case ModeHistory:
		return m.handleHistoryKeys(msg)
	case ModeDirectory:
		return m.handleDirectoryKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	// Navigation
	case key.Matches(msg, m.keys.Up):
		m.cursor.Slot = m.clampSlot(m.cursor.Slot - 1)
		m.ensureCursorVisible()
		m.logCursor("up")
	case key.Matches(msg, m.keys.Down):
		m.cursor.Slot = m.clampSlot(m.cursor.Slot + 1)
		m.ensureCursorVisible()
		m.logCursor("down")
	case key.Matches(msg, m.keys.Left):
		m.cursor.Counter = m.clampCounter(m.cursor.Counter - 1)
		m.logCursor("left")
	case key.Matches(msg, m.keys.Right):
		m.cursor.Counter = m.clampCounter(m.cursor.Counter + 1)
		m.logCursor("right")
	case key.Matches(msg, m.keys.PageUp):
		m.cursor.Slot = m.clampSlot(m.cursor.Slot - m.visibleRows())
		m.ensureCursorVisible()
	case key.Matches(msg, m.keys.PageDown):
		m.cursor.Slot = m.clampSlot(m.cursor.Slot + m.visibleRows())
		m.ensureCursorVisible()

	// Days and interval
	case key.Matches(msg, m.keys.PrevDay):
		return m, m.setDay(m.day.AddDate(0, 0, -1))
	case key.Matches(msg, m.keys.NextDay):
		return m, m.setDay(m.day.AddDate(0, 0, 1))
	case key.Matches(msg, m.keys.Today):
		return m, m.setDay(m.nowFunc())
	case key.Matches(msg, m.keys.Coarser):
		m.setInterval(grid.StepInterval(m.interval, 1))
		return m, m.setStatus(statusInfo, fmt.Sprintf("Interval %s", view.FormatDuration(time.Duration(m.interval)*time.Minute)))
	case key.Matches(msg, m.keys.Finer):
		m.setInterval(grid.StepInterval(m.interval, -1))
		return m, m.setStatus(statusInfo, fmt.Sprintf("Interval %s", view.FormatDuration(time.Duration(m.interval)*time.Minute)))

	// Actions
	case key.Matches(msg, m.keys.New):
		return m.openForm()
	case key.Matches(msg, m.keys.Edit):
		return m.openEditForm()
	case key.Matches(msg, m.keys.Move):
		return m.startMove()
	case key.Matches(msg, m.keys.Grow):
		return m.resize(1)
	case key.Matches(msg, m.keys.Shrink):
		return m.resize(-1)
	case key.Matches(msg, m.keys.Delete):
		s, ok := m.shiftAtCursor()
		if !ok {
			return m, m.setStatus(statusWarning, "No shift here")
		}
		m.confirm = s.Ptr()
		m.setMode(ModeConfirm, "delete")
	case key.Matches(msg, m.keys.Undo):
		return m, commands.Undo(m.session)
	case key.Matches(msg, m.keys.History):
		m.historyOffset = 0
		m.undoPreview = nil
		m.setMode(ModeHistory, "history")
		return m, commands.PreviewUndo(m.session)
	case key.Matches(msg, m.keys.Staff):
		m.dirPanel = dirState{}
		m.setMode(ModeDirectory, "directory")
	}
	return m, nil
}

// openForm opens the new shift form at the cursor.
func (m Model) openForm() (tea.Model, tea.Cmd) {
	if len(m.employees) == 0 || len(m.counters) == 0 {
		return m, m.setStatus(statusWarning, "No employees or counters configured")
	}
	m.form = formState{
		at:        m.cursor,
		counter:   m.clampCounter(m.cursor.Counter),
		duration:  defaultDurationIndex(m.interval),
		durations: durationOptions,
	}
	m.setMode(ModeForm, "new shift")
	return m, nil
}

// openEditForm opens the form on the shift under the cursor. Its current
// duration is offered even when it is not one of the presets.
func (m Model) openEditForm() (tea.Model, tea.Cmd) {
	s, ok := m.shiftAtCursor()
	if !ok {
		return m, m.setStatus(statusWarning, "No shift here")
	}
	minutes := int(s.Duration() / time.Minute)
	durations := slices.Clone(durationOptions)
	if !slices.Contains(durations, minutes) {
		durations = append(durations, minutes)
		slices.Sort(durations)
	}
	counter := slices.IndexFunc(m.counters, func(c shift.Counter) bool { return c.ID == s.CounterID })
	m.form = formState{
		at:        m.cursor,
		employee:  slices.IndexFunc(m.employees, func(e shift.Employee) bool { return e.ID == s.EmployeeID }),
		counter:   max(0, counter),
		duration:  slices.Index(durations, minutes),
		durations: durations,
		editing:   s.Ptr(),
	}
	m.setMode(ModeForm, "edit shift")
	return m, nil
}

func defaultDurationIndex(interval int) int {
	for i, d := range durationOptions {
		if d >= interval {
			return i
		}
	}
	return len(durationOptions) - 1
}

// formFields lists the focusable fields of the form in tab order.
func (m Model) formFields() []int {
	if m.form.editing != nil {
		return []int{view.FormFieldEmployee, view.FormFieldCounter, view.FormFieldDuration}
	}
	return []int{view.FormFieldEmployee, view.FormFieldDuration}
}

// handleFormKeys handles keys in the new shift form.
func (m Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.setMode(ModeNormal, "form cancelled")
	case key.Matches(msg, m.keys.Tab):
		fields := m.formFields()
		m.form.focus = fields[(slices.Index(fields, m.form.focus)+1)%len(fields)]
	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Left):
		m.stepForm(-1)
	case key.Matches(msg, m.keys.Down), key.Matches(msg, m.keys.Right):
		m.stepForm(1)
	case key.Matches(msg, m.keys.Confirm):
		if m.form.editing != nil {
			return m.submitEditForm()
		}
		if m.form.employee < 0 {
			return m, m.setStatus(statusWarning, "Pick an employee")
		}
		slot := m.slots[m.clampSlot(m.form.at.Slot)]
		emp := m.employees[m.form.employee]
		ctr := m.counters[m.clampCounter(m.form.at.Counter)]
		cmd := roster.CreateShift{
			EmployeeID: emp.ID,
			CounterID:  ctr.ID,
			Start:      slot.Start,
			End:        slot.Start.Add(m.formDuration()),
		}
		m.setMode(ModeNormal, "form submitted")
		return m, commands.Dispatch(m.session, cmd)
	}
	return m, nil
}

// submitEditForm dispatches the edit as an UpdateShift that keeps the start.
func (m Model) submitEditForm() (tea.Model, tea.Cmd) {
	s := m.form.editing
	cmd := roster.UpdateShift{
		ShiftID: s.ID,
		Start:   s.Start,
		End:     s.Start.Add(m.formDuration()),
	}
	if m.form.employee >= 0 {
		cmd.EmployeeID = m.employees[m.form.employee].ID
	}
	if len(m.counters) > 0 {
		cmd.CounterID = m.counters[m.clampCounter(m.form.counter)].ID
		m.cursor.Counter = m.clampCounter(m.form.counter)
	}
	m.form = formState{}
	m.setMode(ModeNormal, "edit submitted")
	return m, commands.Dispatch(m.session, cmd)
}

func (m Model) formDuration() time.Duration {
	return time.Duration(m.form.durations[m.form.duration]) * time.Minute
}

func (m *Model) stepForm(step int) {
	switch m.form.focus {
	case view.FormFieldEmployee:
		m.form.employee = max(0, min(m.form.employee+step, len(m.employees)-1))
	case view.FormFieldCounter:
		m.form.counter = m.clampCounter(m.form.counter + step)
	default:
		m.form.duration = max(0, min(m.form.duration+step, len(m.form.durations)-1))
	}
}

// startMove enters move mode with the shift under the cursor.
func (m Model) startMove() (tea.Model, tea.Cmd) {
	s, ok := m.shiftAtCursor()
	if !ok {
		return m, m.setStatus(statusWarning, "No shift here")
	}
	m.move = moveState{shift: s, origin: m.cursor, target: m.cursor}
	m.setMode(ModeMove, "move")
	return m, commands.Preview(m.session, m.moveCommand())
}

// moveCommand builds the MoveShift for the current target. The shift keeps
// its offset from the slot it was picked up in.
func (m Model) moveCommand() roster.MoveShift {
	delta := time.Duration(m.move.target.Slot-m.move.origin.Slot) * time.Duration(m.interval) * time.Minute
	return roster.MoveShift{
		ShiftID:   m.move.shift.ID,
		CounterID: m.counters[m.clampCounter(m.move.target.Counter)].ID,
		Start:     m.move.shift.Start.Add(delta),
	}
}

// handleMoveKeys handles keys while moving a shift.
func (m Model) handleMoveKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	target := m.move.target
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.move = moveState{}
		m.setMode(ModeNormal, "move cancelled")
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		cmd := m.moveCommand()
		m.cursor = m.move.target
		m.move = moveState{}
		m.setMode(ModeNormal, "move confirmed")
		return m, commands.Dispatch(m.session, cmd)
	case key.Matches(msg, m.keys.Up):
		target.Slot = m.clampSlot(target.Slot - 1)
	case key.Matches(msg, m.keys.Down):
		target.Slot = m.clampSlot(target.Slot + 1)
	case key.Matches(msg, m.keys.Left):
		target.Counter = m.clampCounter(target.Counter - 1)
	case key.Matches(msg, m.keys.Right):
		target.Counter = m.clampCounter(target.Counter + 1)
	default:
		return m, nil
	}
	if target == m.move.target {
		return m, nil
	}
	m.move.target = target
	m.move.preview = nil
	m.move.previewErr = nil
	m.cursor = target
	m.ensureCursorVisible()
	return m, commands.Preview(m.session, m.moveCommand())
}

// resize grows or shrinks the shift under the cursor to the next or
// previous slot boundary.
func (m Model) resize(step int) (tea.Model, tea.Cmd) {
	s, ok := m.shiftAtCursor()
	if !ok {
		return m, m.setStatus(statusWarning, "No shift here")
	}
	// The end snaps to the grid before it steps.
	interval := time.Duration(m.interval) * time.Minute
	end := grid.Snap(s.End, m.interval)
	switch {
	case step > 0:
		end = end.Add(interval)
	case end.Equal(s.End):
		end = end.Add(-interval)
	}
	if !end.After(s.Start) {
		return m, m.setStatus(statusWarning, "Shift cannot be shorter than one interval")
	}
	return m, commands.Dispatch(m.session, roster.UpdateShift{ShiftID: s.ID, Start: s.Start, End: end})
}

// handleConfirmKeys handles the delete confirmation.
func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Yes):
		id := m.confirm.ID
		m.confirm = nil
		m.setMode(ModeNormal, "delete confirmed")
		return m, commands.Dispatch(m.session, roster.DeleteShift{ShiftID: id})
	case key.Matches(msg, m.keys.No):
		m.confirm = nil
		m.setMode(ModeNormal, "delete cancelled")
	}
	return m, nil
}

// handleHistoryKeys handles keys in the history panel.
func (m Model) handleHistoryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.History), key.Matches(msg, m.keys.Quit):
		m.setMode(ModeNormal, "history closed")
	case key.Matches(msg, m.keys.Up):
		m.historyOffset = max(0, m.historyOffset-1)
	case key.Matches(msg, m.keys.Down):
		m.historyOffset = max(0, min(m.historyOffset+1, len(m.entries)-1))
	case key.Matches(msg, m.keys.Copy):
		if len(m.entries) == 0 {
			return m, m.setStatus(statusWarning, "History is empty")
		}
		return m, commands.CopyText(view.HistoryText(m.historyRows()), len(m.entries))
	case key.Matches(msg, m.keys.Undo):
		return m, commands.Undo(m.session)
	}
	return m, nil
}
