package tui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/roster/internal/grid"
	"github.com/javiermolinar/roster/internal/history"
	"github.com/javiermolinar/roster/internal/roster"
	"github.com/javiermolinar/roster/internal/shift"
	"github.com/javiermolinar/roster/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.colWidth = m.calculateColWidth()
		m.help.Width = msg.Width
		m.ensureCursorVisible()
		return m, nil

	case commands.DayLoadedMsg:
		if !grid.DayStart(msg.Day).Equal(m.day) {
			// stale load for a day we already left
			return m, nil
		}
		m.shifts = msg.Shifts
		m.total = msg.Total
		m.entries = msg.History
		m.loading = false
		return m, nil

	case commands.DispatchedMsg:
		kind, text := m.describeResult(msg.Command, msg.Result)
		return m, tea.Batch(m.setStatus(kind, text), commands.LoadDay(m.session, m.day))

	case commands.UndoneMsg:
		if !msg.Outcome.Success {
			return m, m.setStatus(statusWarning, "Nothing to undo")
		}
		cmds := []tea.Cmd{
			m.setStatus(statusInfo, m.describeUndo(msg.Outcome)),
			commands.LoadDay(m.session, m.day),
		}
		if m.mode == ModeHistory {
			cmds = append(cmds, commands.PreviewUndo(m.session))
		}
		return m, tea.Batch(cmds...)

	case commands.UndoPreviewMsg:
		if m.mode == ModeHistory {
			m.undoPreview = &msg
		}
		return m, nil

	case commands.DirectoryEditedMsg:
		m.refreshDirectory()
		m.dirPanel.selected = max(0, min(m.dirPanel.selected, len(m.dirRows())-1))
		return m, tea.Batch(m.setStatus(statusInfo, msg.Description), commands.LoadDay(m.session, m.day))

	case commands.DirectorySavedMsg:
		return m, m.setStatus(statusInfo, "Saved directory to "+msg.Path)

	case commands.PreviewMsg:
		if m.mode != ModeMove || msg.Command != roster.Command(m.moveCommand()) {
			return m, nil
		}
		m.move.previewErr = msg.Err
		if msg.Err == nil {
			res := msg.Result
			m.move.preview = &res
		}
		return m, nil

	case commands.CopiedMsg:
		return m, m.setStatus(statusInfo, fmt.Sprintf("Copied %d entries", msg.Lines))

	case commands.ErrMsg:
		m.logError("command", msg.Err)
		m.loading = false
		return m, m.setStatus(statusError, "Error: "+msg.Err.Error())

	case commands.ClearStatusMsg:
		if !m.nowFunc().Before(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil
	}

	// Cursor blinks and other input messages go to the focused text input.
	if m.mode == ModeDirectory && m.dirPanel.editing() {
		inputs := slices.Clone(m.dirPanel.inputs)
		var cmd tea.Cmd
		inputs[m.dirPanel.focus], cmd = inputs[m.dirPanel.focus].Update(msg)
		m.dirPanel.inputs = inputs
		return m, cmd
	}
	return m, nil
}

// setStatus shows a status message and schedules its removal.
func (m *Model) setStatus(kind statusKind, text string) tea.Cmd {
	m.statusMsg = text
	m.statusKind = kind
	m.statusTime = m.nowFunc().Add(statusTTL)
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return commands.ClearStatusMsg{}
	})
}

// describeResult builds the status line for an applied command.
func (m Model) describeResult(cmd roster.Command, res roster.Result) (statusKind, string) {
	var text string
	switch cmd.(type) {
	case roster.CreateShift:
		text = fmt.Sprintf("Created shift for %s at %s %s", m.employeeName(*res.New), m.counterName(*res.New), res.New.Timespan())
	case roster.MoveShift:
		text = fmt.Sprintf("Moved %s to %s %s", m.employeeName(*res.New), m.counterName(*res.New), res.New.Timespan())
	case roster.UpdateShift:
		text = fmt.Sprintf("Updated %s at %s %s", m.employeeName(*res.New), m.counterName(*res.New), res.New.Timespan())
	case roster.DeleteShift:
		text = fmt.Sprintf("Deleted shift for %s at %s", m.employeeName(*res.Old), m.counterName(*res.Old))
	default:
		text = "Applied " + cmd.Name()
	}
	if len(res.Conflicts) == 0 {
		return statusInfo, text
	}
	return statusWarning, text + "; " + m.conflictWarning(res.Conflicts)
}

// conflictWarning formats "warning: overlaps X at C" for a set of conflicts.
func (m Model) conflictWarning(conflicts []shift.Shift) string {
	names := make([]string, 0, len(conflicts))
	for _, c := range conflicts {
		names = append(names, m.employeeName(c))
	}
	return fmt.Sprintf("warning: overlaps %s at %s", strings.Join(names, ", "), m.counterName(conflicts[0]))
}

func (m Model) describeUndo(out history.Outcome) string {
	switch out.Action {
	case history.ActionCreate:
		return fmt.Sprintf("Undid create: removed %s at %s", m.employeeName(*out.NewShift), m.counterName(*out.NewShift))
	case history.ActionUpdate:
		return fmt.Sprintf("Undid update: %s back at %s %s", m.employeeName(*out.OldShift), m.counterName(*out.OldShift), out.OldShift.Timespan())
	case history.ActionDelete:
		return fmt.Sprintf("Undid delete: restored %s at %s", m.employeeName(*out.OldShift), m.counterName(*out.OldShift))
	default:
		return "Undone"
	}
}

// undoHint describes what the next undo would do to the day on screen.
func (m Model) undoHint() string {
	p := m.undoPreview
	if p == nil {
		return ""
	}
	if !p.Outcome.Success {
		return "Nothing to undo"
	}
	var verb string
	target := p.Outcome.OldShift
	switch p.Outcome.Action {
	case history.ActionCreate:
		verb, target = "remove", p.Outcome.NewShift
	case history.ActionUpdate:
		verb = "revert"
	default:
		verb = "restore"
	}
	if target == nil {
		return ""
	}
	return fmt.Sprintf("Undo would %s %s at %s · %d → %d shifts today",
		verb, m.employeeName(*target), m.counterName(*target), len(m.shifts), len(grid.OnDay(p.Shifts, m.day)))
}
