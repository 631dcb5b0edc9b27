package view

import (
	"strings"
)

// Form fields.
const (
	FormFieldEmployee = iota
	FormFieldDuration
	FormFieldCounter
)

// ShiftForm is the state of the shift form.
type ShiftForm struct {
	Counter   string
	Start     string
	Employees []string
	Employee  int
	Durations []string
	Duration  int
	Focus     int
	// Counters makes the counter selectable. When empty Counter is shown
	// as a fixed label.
	Counters     []string
	CounterIndex int
	// MaxRows caps the visible employee list.
	MaxRows int
}

// RenderShiftForm renders the body of the shift form.
func RenderShiftForm(f ShiftForm, styles ModalStyles) string {
	var lines []string
	if len(f.Counters) == 0 {
		lines = append(lines, styles.ModalLabelStyle.Render("Counter  ")+styles.ModalBodyStyle.Render(f.Counter))
	}
	lines = append(lines, styles.ModalLabelStyle.Render("Start    ")+styles.ModalBodyStyle.Render(f.Start))
	if len(f.Counters) > 0 {
		name := f.Counters[max(0, min(f.CounterIndex, len(f.Counters)-1))]
		style := styles.ModalBodyStyle
		if f.Focus == FormFieldCounter {
			style = styles.ModalSelectedStyle
		}
		lines = append(lines, "",
			fieldTitle("Counter", f.Focus == FormFieldCounter, styles),
			style.Render("‹ "+name+" ›"),
		)
	}
	lines = append(lines, "", fieldTitle("Employee", f.Focus == FormFieldEmployee, styles))

	first, last := window(len(f.Employees), f.Employee, f.MaxRows)
	for i := first; i < last; i++ {
		style := styles.ModalBodyStyle
		marker := "  "
		if i == f.Employee {
			marker = "> "
			if f.Focus == FormFieldEmployee {
				style = styles.ModalSelectedStyle
			}
		}
		lines = append(lines, style.Render(marker+f.Employees[i]))
	}

	lines = append(lines, "", fieldTitle("Duration", f.Focus == FormFieldDuration, styles))
	opts := make([]string, 0, len(f.Durations))
	for i, d := range f.Durations {
		style := styles.ModalButtonStyle
		if i == f.Duration {
			style = styles.ModalButtonActiveStyle
		}
		opts = append(opts, style.Render(d))
	}
	lines = append(lines, strings.Join(opts, styles.ModalBodyStyle.Render(" ")))
	return strings.Join(lines, "\n")
}

func fieldTitle(name string, focused bool, styles ModalStyles) string {
	if focused {
		return styles.ModalSelectedStyle.Render(name)
	}
	return styles.ModalMetaStyle.Render(name)
}

// window returns the [first, last) range of n items that keeps selected
// visible in at most size rows.
func window(n, selected, size int) (int, int) {
	if size <= 0 || n <= size {
		return 0, n
	}
	first := selected - size/2
	first = max(0, min(first, n-size))
	return first, first + size
}
