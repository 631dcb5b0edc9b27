package tui

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/roster/internal/config"
	"github.com/javiermolinar/roster/internal/shift"
	"github.com/javiermolinar/roster/internal/tui/commands"
	"github.com/javiermolinar/roster/internal/tui/view"
)

// nameLimit caps the length of names typed in the directory form.
const nameLimit = 40

// dirState tracks the directory panel. While inputs is non-empty the panel
// shows the add or edit form; editID is empty when adding.
type dirState struct {
	tab      int
	selected int
	editID   string
	inputs   []textinput.Model
	focus    int
	confirm  bool
}

func (d dirState) editing() bool {
	return len(d.inputs) > 0
}

// dirRows returns the entries of the current tab.
func (m Model) dirRows() []view.DirectoryRow {
	if m.dirPanel.tab == view.DirectoryCounters {
		rows := make([]view.DirectoryRow, len(m.counters))
		for i, c := range m.counters {
			rows[i] = view.DirectoryRow{ID: c.ID, Name: c.Name, Detail: c.Description}
		}
		return rows
	}
	rows := make([]view.DirectoryRow, len(m.employees))
	for i, e := range m.employees {
		rows[i] = view.DirectoryRow{ID: e.ID, Name: e.Name, Detail: e.Position, Color: e.Color}
	}
	return rows
}

func dirFieldLabels(tab int) []string {
	if tab == view.DirectoryCounters {
		return []string{"Name", "Description"}
	}
	return []string{"Name", "Position"}
}

// handleDirectoryKeys handles keys in the directory panel.
func (m Model) handleDirectoryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.dirPanel.editing() {
		return m.handleDirectoryFormKeys(msg)
	}
	if m.dirPanel.confirm {
		switch {
		case key.Matches(msg, m.keys.Yes):
			m.dirPanel.confirm = false
			return m, m.removeDirectoryEntry()
		case key.Matches(msg, m.keys.No):
			m.dirPanel.confirm = false
		}
		return m, nil
	}

	rows := m.dirRows()
	switch {
	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Staff), key.Matches(msg, m.keys.Quit):
		m.setMode(ModeNormal, "directory closed")
	case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Right):
		m.dirPanel.tab = 1 - m.dirPanel.tab
		m.dirPanel.selected = 0
	case key.Matches(msg, m.keys.Up):
		m.dirPanel.selected = max(0, m.dirPanel.selected-1)
	case key.Matches(msg, m.keys.Down):
		m.dirPanel.selected = max(0, min(m.dirPanel.selected+1, len(rows)-1))
	case key.Matches(msg, m.keys.Add):
		return m.openDirectoryForm(view.DirectoryRow{})
	case key.Matches(msg, m.keys.Edit):
		if len(rows) == 0 {
			return m, m.setStatus(statusWarning, "Nothing to edit")
		}
		return m.openDirectoryForm(rows[m.dirPanel.selected])
	case key.Matches(msg, m.keys.Delete):
		if len(rows) == 0 {
			return m, m.setStatus(statusWarning, "Nothing to remove")
		}
		m.dirPanel.confirm = true
	case key.Matches(msg, m.keys.Write):
		return m, commands.SaveDirectory(m.dir.Employees(), m.dir.Counters())
	}
	return m, nil
}

// openDirectoryForm opens the add form, or the edit form when row has an id.
func (m Model) openDirectoryForm(row view.DirectoryRow) (tea.Model, tea.Cmd) {
	values := []string{row.Name, row.Detail}
	inputs := make([]textinput.Model, len(dirFieldLabels(m.dirPanel.tab)))
	for i := range inputs {
		in := textinput.New()
		in.Prompt = "> "
		in.CharLimit = nameLimit
		in.SetValue(values[i])
		inputs[i] = in
	}
	inputs[0].Focus()

	m.dirPanel.inputs = inputs
	m.dirPanel.focus = 0
	m.dirPanel.editID = row.ID
	return m, textinput.Blink
}

// handleDirectoryFormKeys handles keys while adding or editing an entry.
func (m Model) handleDirectoryFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.dirPanel.inputs = nil
		m.dirPanel.editID = ""
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		return m.submitDirectoryForm()
	case key.Matches(msg, m.keys.Tab):
		inputs := slices.Clone(m.dirPanel.inputs)
		inputs[m.dirPanel.focus].Blur()
		m.dirPanel.focus = (m.dirPanel.focus + 1) % len(inputs)
		inputs[m.dirPanel.focus].Focus()
		m.dirPanel.inputs = inputs
		return m, textinput.Blink
	}

	inputs := slices.Clone(m.dirPanel.inputs)
	var cmd tea.Cmd
	inputs[m.dirPanel.focus], cmd = inputs[m.dirPanel.focus].Update(msg)
	m.dirPanel.inputs = inputs
	return m, cmd
}

// submitDirectoryForm applies the form through the session.
func (m Model) submitDirectoryForm() (tea.Model, tea.Cmd) {
	name := strings.TrimSpace(m.dirPanel.inputs[0].Value())
	detail := strings.TrimSpace(m.dirPanel.inputs[1].Value())
	if name == "" {
		return m, m.setStatus(statusWarning, "Name is required")
	}

	id := m.dirPanel.editID
	var (
		description string
		edit        func(context.Context) error
	)
	switch {
	case m.dirPanel.tab == view.DirectoryCounters && id == "":
		c := shift.Counter{ID: nextDirectoryID(counterIDs(m.counters)), Name: name, Description: detail}
		description = "Added counter " + name
		edit = func(context.Context) error { return m.staff.AddCounter(c) }
	case m.dirPanel.tab == view.DirectoryCounters:
		c, err := m.dir.Counter(id)
		if err != nil {
			return m, m.setStatus(statusError, "Error: "+err.Error())
		}
		c.Name, c.Description = name, detail
		description = "Updated counter " + name
		edit = func(context.Context) error { return m.staff.UpdateCounter(c) }
	case id == "":
		e := shift.Employee{
			ID:       nextDirectoryID(employeeIDs(m.employees)),
			Name:     name,
			Position: detail,
			Color:    employeeColor(len(m.employees)),
		}
		description = "Added employee " + name
		edit = func(context.Context) error { return m.staff.AddEmployee(e) }
	default:
		e, err := m.dir.Employee(id)
		if err != nil {
			return m, m.setStatus(statusError, "Error: "+err.Error())
		}
		e.Name, e.Position = name, detail
		description = "Updated employee " + name
		edit = func(context.Context) error { return m.staff.UpdateEmployee(e) }
	}

	m.dirPanel.inputs = nil
	m.dirPanel.editID = ""
	return m, commands.EditDirectory(description, edit)
}

// removeDirectoryEntry removes the selected entry. A counter with shifts
// is refused by the session.
func (m Model) removeDirectoryEntry() tea.Cmd {
	rows := m.dirRows()
	if len(rows) == 0 {
		return nil
	}
	row := rows[max(0, min(m.dirPanel.selected, len(rows)-1))]
	if m.dirPanel.tab == view.DirectoryCounters {
		return commands.EditDirectory("Removed counter "+row.Name, func(ctx context.Context) error {
			return m.staff.RemoveCounter(ctx, row.ID)
		})
	}
	return commands.EditDirectory("Removed employee "+row.Name, func(context.Context) error {
		return m.staff.RemoveEmployee(row.ID)
	})
}

func (m Model) directoryView() view.DirectoryView {
	v := view.DirectoryView{
		Tab:       m.dirPanel.tab,
		Employees: len(m.employees),
		Counters:  len(m.counters),
		Rows:      m.dirRows(),
		Selected:  m.dirPanel.selected,
		MaxRows:   max(3, m.height-14),
		Width:     max(30, min(m.width-12, 70)),
	}
	if m.dirPanel.confirm && len(v.Rows) > 0 {
		v.Confirm = v.Rows[max(0, min(v.Selected, len(v.Rows)-1))].Name
	}
	if m.dirPanel.editing() {
		kind := "employee"
		if m.dirPanel.tab == view.DirectoryCounters {
			kind = "counter"
		}
		v.FormTitle = "New " + kind
		if m.dirPanel.editID != "" {
			v.FormTitle = "Edit " + kind
		}
		for i, label := range dirFieldLabels(m.dirPanel.tab) {
			v.Fields = append(v.Fields, view.DirectoryField{
				Label:   label,
				Input:   m.dirPanel.inputs[i].View(),
				Focused: i == m.dirPanel.focus,
			})
		}
	}
	return v
}

// nextDirectoryID returns one more than the largest numeric id.
func nextDirectoryID(ids []string) string {
	n := 0
	for _, id := range ids {
		if v, err := strconv.Atoi(id); err == nil && v > n {
			n = v
		}
	}
	return strconv.Itoa(n + 1)
}

func employeeIDs(employees []shift.Employee) []string {
	ids := make([]string, len(employees))
	for i, e := range employees {
		ids[i] = e.ID
	}
	return ids
}

func counterIDs(counters []shift.Counter) []string {
	ids := make([]string, len(counters))
	for i, c := range counters {
		ids[i] = c.ID
	}
	return ids
}

// employeeColor picks a color for the n-th employee from the default
// palette.
func employeeColor(n int) string {
	palette := config.DefaultEmployees()
	return palette[n%len(palette)].Color
}
