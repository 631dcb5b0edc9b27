package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/roster/internal/grid"
	"github.com/javiermolinar/roster/internal/shift"
	"github.com/javiermolinar/roster/internal/tui/view"
)

// footerHeight is the number of lines below the grid.
const footerHeight = 3

// View renders the TUI.
func (m Model) View() string {
	panel, show := m.renderPanel()
	return view.Render(view.ViewState{
		Width:        m.width,
		Height:       m.height,
		BaseContent:  m.renderAppContent(),
		PanelContent: panel,
		ShowPanel:    show,
		Overlay:      m.overlay,
	})
}

func (m Model) renderAppContent() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	if m.height < footerHeight+6 {
		return "Terminal too small"
	}

	title := view.Line(m.width, m.styles.TitleStyle, m.titleText())
	gridH := m.height - 1 - footerHeight
	table := view.RenderTable(m.tableViewState(gridH))
	footer := view.RenderFooter(view.FooterViewState{
		InnerW:       m.width,
		FooterH:      footerHeight,
		PreviewText:  m.previewText(),
		StatusText:   m.statusMsg,
		HelpText:     m.help.ShortHelpView(m.keys.helpFor(m.mode)),
		PreviewStyle: m.styles.PreviewStyle,
		StatusStyle:  m.statusStyle(),
		HelpStyle:    m.styles.HelpStyle,
		Bg:           m.styles.Bg(),
	})

	content := lipgloss.JoinVertical(lipgloss.Left, title, table, footer)
	return view.PadLinesWithBackground(m.styles.AppStyle.Render(content), m.width, m.height, m.styles.Bg())
}

func (m Model) titleText() string {
	text := fmt.Sprintf(" roster · %s · every %s",
		view.DayTitle(m.day, m.nowFunc()),
		view.FormatDuration(time.Duration(m.interval)*time.Minute))
	text += fmt.Sprintf(" · %d shifts (%d in session)", len(m.shifts), m.total)
	if m.loading {
		text += " · loading…"
	}
	if m.mode != ModeNormal {
		text += " · " + strings.ToUpper(m.mode.String())
	}
	return text
}

func (m Model) statusStyle() lipgloss.Style {
	switch m.statusKind {
	case statusWarning:
		return m.styles.WarningStyle
	case statusError:
		return m.styles.ErrorStyle
	default:
		return m.styles.StatusStyle
	}
}

func (m Model) tableViewState(gridH int) view.TableViewState {
	if len(m.counters) == 0 || len(m.slots) == 0 {
		return view.TableViewState{Render: false}
	}

	names := make([]string, len(m.counters))
	for i, c := range m.counters {
		names[i] = c.Name
	}
	headers := view.HeaderLabels(names, m.colWidth)
	headerStyles := make([]lipgloss.Style, len(headers))
	for i := range headerStyles {
		headerStyles[i] = m.styles.HeaderStyle
	}

	return view.TableViewState{
		InnerW:       m.width,
		GridH:        gridH,
		Headers:      headers,
		HeaderStyles: headerStyles,
		Content:      m.tableContent(),
		BorderStyle:  m.styles.BorderStyle,
		Bg:           m.styles.Bg(),
		Render:       true,
	}
}

// tableContent builds the visible rows of the grid.
func (m Model) tableContent() view.TableContent {
	first := m.scrollOffset
	last := min(len(m.slots), first+m.visibleRows())
	now := m.nowFunc()

	var content view.TableContent
	for row := first; row < last; row++ {
		slot := m.slots[row]
		cells := make([]string, 0, len(m.counters)+1)
		styles := make([]lipgloss.Style, 0, len(m.counters)+1)

		timeStyle := m.styles.TimeColumnStyle
		if !now.Before(slot.Start) && now.Before(slot.End) {
			timeStyle = m.styles.TimeCurrentStyle
		}
		cells = append(cells, slot.Label())
		styles = append(styles, timeStyle)

		for col := range m.counters {
			text, style := m.renderCell(Position{Slot: row, Counter: col})
			cells = append(cells, text)
			styles = append(styles, style)
		}
		content.Rows = append(content.Rows, cells)
		content.CellStyles = append(content.CellStyles, styles)
	}
	return content
}

// renderCell returns the text and style of one cell.
func (m Model) renderCell(p Position) (string, lipgloss.Style) {
	matches := m.cellShifts(p)
	text := m.cellText(matches)
	style := m.styles.EmptyCellStyle
	switch {
	case grid.CellConflict(matches):
		style = m.styles.ConflictCellStyle
	case len(matches) > 0:
		style = m.styles.ShiftStyle(matches[0].Color)
	}

	if m.mode == ModeMove {
		if m.inMoveTarget(p) {
			if m.move.previewErr != nil || (m.move.preview != nil && len(m.move.preview.Conflicts) > 0) {
				style = m.styles.MoveConflictStyle
			} else {
				style = m.styles.MovePreviewStyle
			}
			return view.FitCell(m.employeeName(m.move.shift), m.colWidth), style
		}
		if containsShift(matches, m.move.shift.ID) {
			style = m.styles.MoveSourceStyle
		}
		return text, style
	}

	if p == m.cursor && m.mode == ModeNormal {
		style = m.styles.CursorStyle
	}
	return text, style
}

// cellText shows the first match's employee and "+N" for the rest.
func (m Model) cellText(matches []shift.Shift) string {
	if len(matches) == 0 {
		return ""
	}
	name := m.employeeName(matches[0])
	if len(matches) == 1 {
		return view.FitCell(name, m.colWidth)
	}
	suffix := fmt.Sprintf(" +%d", len(matches)-1)
	return view.FitCell(name, m.colWidth-len(suffix)) + suffix
}

// inMoveTarget reports whether p is covered by the moved shift at its target.
func (m Model) inMoveTarget(p Position) bool {
	if p.Counter != m.move.target.Counter || p.Slot < 0 || p.Slot >= len(m.slots) {
		return false
	}
	cmd := m.moveCommand()
	end := cmd.Start.Add(m.move.shift.Duration())
	slot := m.slots[p.Slot]
	return grid.Overlaps(cmd.Start, end, slot.Start, slot.End)
}

func containsShift(shifts []shift.Shift, id string) bool {
	return shift.IndexByID(shifts, id) >= 0
}

// previewText is the live conflict preview shown while moving.
func (m Model) previewText() string {
	if m.mode != ModeMove {
		return ""
	}
	cmd := m.moveCommand()
	target := m.move.shift
	target.CounterID = cmd.CounterID
	target.Location = m.counters[m.clampCounter(m.move.target.Counter)].Name
	span := view.FormatSpan(cmd.Start, cmd.Start.Add(m.move.shift.Duration()))
	switch {
	case m.move.previewErr != nil:
		return "Cannot move: " + m.move.previewErr.Error()
	case m.move.preview == nil:
		return fmt.Sprintf("Moving %s to %s %s", m.employeeName(target), m.counterName(target), span)
	case len(m.move.preview.Conflicts) > 0:
		return fmt.Sprintf("%s %s: %s", m.counterName(target), span, m.conflictWarning(m.move.preview.Conflicts))
	default:
		return fmt.Sprintf("%s %s: no conflicts", m.counterName(target), span)
	}
}

// renderPanel renders the panel for the current mode, if any.
func (m Model) renderPanel() (string, bool) {
	s := m.styles.Modal
	switch m.mode {
	case ModeForm:
		title := "New shift"
		if m.form.editing != nil {
			title = "Edit shift"
		}
		footer := view.ShiftFormFooter(m.form.editing != nil, s)
		return view.RenderModalFrame(title, view.RenderShiftForm(m.formView(), s), footer, s), true
	case ModeConfirm:
		if m.confirm == nil {
			return "", false
		}
		body := view.ConfirmDeleteBody(m.employeeName(*m.confirm), m.counterName(*m.confirm),
			view.FormatSpan(m.confirm.Start, m.confirm.End), s)
		return view.RenderModalFrame("Delete shift", body, view.ConfirmDeleteFooter(s), s), true
	case ModeHistory:
		width := max(20, min(m.width-8, 90))
		rows := max(1, (m.height-10)/2)
		body := view.RenderHistory(m.historyRows(), m.historyOffset, rows, width, s)
		if hint := m.undoHint(); hint != "" {
			body = s.ModalMetaStyle.Render(hint) + "\n\n" + body
		}
		title := fmt.Sprintf("History (%d)", len(m.entries))
		return view.RenderModalFrame(title, body, view.HistoryFooter(s), s), true
	case ModeDirectory:
		body := view.RenderDirectory(m.directoryView(), s)
		footer := view.DirectoryFooter(m.dirPanel.editing(), m.dirPanel.confirm, s)
		return view.RenderModalFrame("Directory", body, footer, s), true
	default:
		return "", false
	}
}

func (m Model) formView() view.ShiftForm {
	employees := make([]string, len(m.employees))
	for i, e := range m.employees {
		employees[i] = e.Name
		if e.Position != "" {
			employees[i] += " (" + e.Position + ")"
		}
	}
	durations := make([]string, len(m.form.durations))
	for i, d := range m.form.durations {
		durations[i] = view.FormatDuration(time.Duration(d) * time.Minute)
	}
	ctr := m.counters[m.clampCounter(m.form.at.Counter)]
	f := view.ShiftForm{
		Counter:   ctr.Name,
		Start:     m.slots[m.clampSlot(m.form.at.Slot)].Label(),
		Employees: employees,
		Employee:  m.form.employee,
		Durations: durations,
		Duration:  m.form.duration,
		Focus:     m.form.focus,
		MaxRows:   max(3, m.height-16),
	}
	if s := m.form.editing; s != nil {
		f.Start = grid.SlotLabel(s.Start)
		f.Counters = make([]string, len(m.counters))
		for i, c := range m.counters {
			f.Counters[i] = c.Name
		}
		f.CounterIndex = m.form.counter
	}
	return f
}

func (m Model) historyRows() []view.HistoryRow {
	rows := make([]view.HistoryRow, len(m.entries))
	for i, e := range m.entries {
		rows[i] = view.HistoryRow{
			Time:       e.Timestamp.Format("15:04:05"),
			Employee:   e.EmployeeName,
			Counter:    e.CounterName,
			Action:     string(e.Action),
			Details:    e.Details,
			BadgeStyle: m.styles.Badge(e.Action),
		}
	}
	return rows
}
