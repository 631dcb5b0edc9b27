package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HistoryRow is one ledger entry as shown in the history panel.
type HistoryRow struct {
	Time       string
	Employee   string
	Counter    string
	Action     string
	Details    string
	BadgeStyle lipgloss.Style
}

// RenderHistory renders up to maxRows entries starting at offset.
func RenderHistory(rows []HistoryRow, offset, maxRows, width int, styles ModalStyles) string {
	if len(rows) == 0 {
		return styles.ModalMetaStyle.Render("No changes yet")
	}
	offset = max(0, min(offset, len(rows)-1))
	end := len(rows)
	if maxRows > 0 {
		end = min(end, offset+maxRows)
	}

	lines := make([]string, 0, end-offset+1)
	for _, r := range rows[offset:end] {
		head := styles.ModalMetaStyle.Render(r.Time) + " " +
			r.BadgeStyle.Render(strings.ToUpper(r.Action)) + " " +
			styles.ModalLabelStyle.Render(r.Employee+" @ "+r.Counter)
		lines = append(lines, head, Line(width, styles.ModalBodyStyle, "  "+r.Details))
	}
	if end < len(rows) {
		lines = append(lines, styles.ModalMetaStyle.Render("…"))
	}
	return strings.Join(lines, "\n")
}

// HistoryText renders the rows as plain tab separated text.
func HistoryText(rows []HistoryRow) string {
	var b strings.Builder
	for _, r := range rows {
		b.WriteString(strings.Join([]string{r.Time, r.Action, r.Employee, r.Counter, r.Details}, "\t"))
		b.WriteByte('\n')
	}
	return b.String()
}
