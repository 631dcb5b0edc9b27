package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ModalStyles groups the styles needed to render panel frames and buttons.
type ModalStyles struct {
	ModalStyle             lipgloss.Style
	ModalTitleStyle        lipgloss.Style
	ModalBodyStyle         lipgloss.Style
	ModalMetaStyle         lipgloss.Style
	ModalLabelStyle        lipgloss.Style
	ModalSelectedStyle     lipgloss.Style
	ModalFooterStyle       lipgloss.Style
	ModalButtonStyle       lipgloss.Style
	ModalButtonActiveStyle lipgloss.Style
}

// RenderModalFrame renders a panel with title, body and footer.
func RenderModalFrame(title, body, footer string, styles ModalStyles) string {
	var b strings.Builder
	b.WriteString(styles.ModalTitleStyle.Render(title))
	if body != "" {
		b.WriteString("\n\n")
		b.WriteString(body)
	}
	if footer != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.ModalFooterStyle.Render(footer))
	}
	return styles.ModalStyle.Render(b.String())
}

// RenderModalButtons renders a row of key hints with the first one active.
func RenderModalButtons(styles ModalStyles, labels ...string) string {
	parts := make([]string, 0, len(labels))
	for i, label := range labels {
		style := styles.ModalButtonStyle
		if i == 0 {
			style = styles.ModalButtonActiveStyle
		}
		parts = append(parts, style.Render(label))
	}
	return strings.Join(parts, styles.ModalBodyStyle.Render(" "))
}

// ConfirmDeleteBody renders the question shown before a delete.
func ConfirmDeleteBody(employee, counter, span string, styles ModalStyles) string {
	lines := []string{
		styles.ModalBodyStyle.Render("Delete this shift?"),
		"",
		styles.ModalLabelStyle.Render("Employee ") + styles.ModalBodyStyle.Render(employee),
		styles.ModalLabelStyle.Render("Counter  ") + styles.ModalBodyStyle.Render(counter),
		styles.ModalLabelStyle.Render("Time     ") + styles.ModalBodyStyle.Render(span),
	}
	return strings.Join(lines, "\n")
}
