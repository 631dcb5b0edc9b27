// Package tui provides the terminal user interface for roster.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/roster/internal/history"
	"github.com/javiermolinar/roster/internal/tui/theme"
	"github.com/javiermolinar/roster/internal/tui/view"
)

// Column widths, recalculated from the terminal width.
const (
	defaultColWidth = 14
	minColWidth     = 6
	timeColWidth    = 5
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	TitleStyle       lipgloss.Style
	HeaderStyle      lipgloss.Style
	TimeColumnStyle  lipgloss.Style
	TimeCurrentStyle lipgloss.Style
	BorderStyle      lipgloss.Style

	EmptyCellStyle    lipgloss.Style
	CursorStyle       lipgloss.Style
	ConflictCellStyle lipgloss.Style
	MovePreviewStyle  lipgloss.Style
	MoveConflictStyle lipgloss.Style
	MoveSourceStyle   lipgloss.Style

	StatusStyle  lipgloss.Style
	WarningStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	PreviewStyle lipgloss.Style
	HelpStyle    lipgloss.Style

	Modal        view.ModalStyles
	ModalBgColor lipgloss.Color
	Badges       map[history.Action]lipgloss.Style

	AppStyle lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)
	s := &Styles{palette: p}

	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent).
		Background(p.Bg)

	s.HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Align(lipgloss.Center).
		Foreground(p.Fg).
		Background(p.Bg)

	s.TimeColumnStyle = lipgloss.NewStyle().
		Foreground(p.Accent).
		Background(p.Bg).
		Width(timeColWidth)

	s.TimeCurrentStyle = s.TimeColumnStyle.
		Foreground(p.Current).
		Bold(true)

	s.BorderStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted).
		Background(p.Bg)

	s.EmptyCellStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted).
		Background(p.Bg)

	s.CursorStyle = lipgloss.NewStyle().
		Background(p.BgSelection).
		Foreground(p.Accent).
		Bold(true)

	s.ConflictCellStyle = lipgloss.NewStyle().
		Background(p.WarningBg).
		Foreground(p.Warning).
		Bold(true)

	s.MovePreviewStyle = lipgloss.NewStyle().
		Background(p.Accent).
		Foreground(p.TextOnAccent).
		Bold(true)

	s.MoveConflictStyle = lipgloss.NewStyle().
		Background(p.Warning).
		Foreground(p.TextOnWarning).
		Bold(true)

	s.MoveSourceStyle = lipgloss.NewStyle().
		Background(p.BgHighlight).
		Foreground(p.FgMuted).
		Italic(true)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(p.Success).
		Background(p.Bg).
		Bold(true)

	s.WarningStyle = s.StatusStyle.Foreground(p.Warning)
	s.ErrorStyle = s.StatusStyle.Foreground(p.Danger)

	s.PreviewStyle = lipgloss.NewStyle().
		Foreground(p.Info).
		Background(p.Bg)

	s.HelpStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted).
		Background(p.Bg)

	s.ModalBgColor = p.Modal.Bg
	s.Modal = modalStyles(p)

	badge := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	s.Badges = map[history.Action]lipgloss.Style{
		history.ActionCreate: badge.Background(p.Success).Foreground(p.TextOnSuccess),
		history.ActionUpdate: badge.Background(p.Info).Foreground(p.TextOnInfo),
		history.ActionDelete: badge.Background(p.Danger).Foreground(p.TextOnDanger),
	}

	s.AppStyle = lipgloss.NewStyle().
		Background(p.Bg).
		Foreground(p.Fg)

	return s
}

func modalStyles(p *theme.Palette) view.ModalStyles {
	m := p.Modal
	return view.ModalStyles{
		ModalStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(m.Border).
			BorderBackground(m.Bg).
			Background(m.Bg).
			Foreground(m.Text).
			Padding(1, 2),
		ModalTitleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(m.Border).
			Background(m.Bg),
		ModalBodyStyle: lipgloss.NewStyle().
			Foreground(m.Text).
			Background(m.Bg),
		ModalMetaStyle: lipgloss.NewStyle().
			Foreground(m.Muted).
			Background(m.Bg),
		ModalLabelStyle: lipgloss.NewStyle().
			Foreground(m.Text).
			Background(m.Bg).
			Bold(true),
		ModalSelectedStyle: lipgloss.NewStyle().
			Foreground(m.Text).
			Background(m.Highlight).
			Bold(true),
		ModalFooterStyle: lipgloss.NewStyle().
			Background(m.Bg),
		ModalButtonStyle: lipgloss.NewStyle().
			Foreground(m.Muted).
			Background(m.Bg).
			Padding(0, 1),
		ModalButtonActiveStyle: lipgloss.NewStyle().
			Foreground(m.Text).
			Background(m.Highlight).
			Bold(true).
			Padding(0, 1),
	}
}

// ShiftStyle returns the cell style for a shift drawn in an employee colour.
func (s *Styles) ShiftStyle(color string) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(s.palette.ShiftBg(color)).
		Foreground(s.palette.ShiftFg(color)).
		Bold(true)
}

// Badge returns the history badge style for an action.
func (s *Styles) Badge(a history.Action) lipgloss.Style {
	if b, ok := s.Badges[a]; ok {
		return b
	}
	return s.Modal.ModalMetaStyle
}

// Bg returns the base background colour.
func (s *Styles) Bg() lipgloss.Color {
	return s.palette.Bg
}
