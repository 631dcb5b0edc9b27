package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Directory panel tabs.
const (
	DirectoryEmployees = iota
	DirectoryCounters
)

// DirectoryRow is one employee or counter in the directory panel.
type DirectoryRow struct {
	ID     string
	Name   string
	Detail string
	Color  string
}

// DirectoryField is one labelled text input of the directory form.
type DirectoryField struct {
	Label   string
	Input   string
	Focused bool
}

// DirectoryView is the state of the directory panel.
type DirectoryView struct {
	Tab       int
	Employees int
	Counters  int
	Rows      []DirectoryRow
	Selected  int
	MaxRows   int
	Width     int
	// FormTitle and Fields are set while adding or editing an entry.
	FormTitle string
	Fields    []DirectoryField
	// Confirm is the name of the entry waiting for removal.
	Confirm string
}

// RenderDirectory renders the body of the directory panel.
func RenderDirectory(v DirectoryView, styles ModalStyles) string {
	lines := []string{directoryTabs(v, styles), ""}

	if len(v.Fields) > 0 {
		lines = append(lines, styles.ModalLabelStyle.Render(v.FormTitle), "")
		for _, f := range v.Fields {
			lines = append(lines, fieldTitle(f.Label, f.Focused, styles), f.Input)
		}
		return strings.Join(lines, "\n")
	}

	if len(v.Rows) == 0 {
		lines = append(lines, styles.ModalMetaStyle.Render("Nothing here yet"))
	}
	first, last := window(len(v.Rows), v.Selected, v.MaxRows)
	for i := first; i < last; i++ {
		r := v.Rows[i]
		style := styles.ModalBodyStyle
		marker := "  "
		if i == v.Selected {
			marker = "> "
			style = styles.ModalSelectedStyle
		}
		text := marker + r.Name
		if r.Detail != "" {
			text += " · " + r.Detail
		}
		swatch := "  "
		if r.Color != "" {
			swatch = styles.ModalBodyStyle.Foreground(lipgloss.Color(r.Color)).Render("●") + " "
		}
		lines = append(lines, swatch+Line(max(0, v.Width-2), style, text))
	}

	if v.Confirm != "" {
		lines = append(lines, "", styles.ModalBodyStyle.Render(fmt.Sprintf("Remove %s?", v.Confirm)))
	}
	return strings.Join(lines, "\n")
}

func directoryTabs(v DirectoryView, styles ModalStyles) string {
	tabs := []string{
		fmt.Sprintf("Employees (%d)", v.Employees),
		fmt.Sprintf("Counters (%d)", v.Counters),
	}
	parts := make([]string, len(tabs))
	for i, t := range tabs {
		style := styles.ModalButtonStyle
		if i == v.Tab {
			style = styles.ModalButtonActiveStyle
		}
		parts[i] = style.Render(t)
	}
	return strings.Join(parts, styles.ModalBodyStyle.Render(" "))
}
