package tui

import (
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/roster/internal/config"
	"github.com/javiermolinar/roster/internal/dateutil"
	"github.com/javiermolinar/roster/internal/grid"
	"github.com/javiermolinar/roster/internal/history"
	"github.com/javiermolinar/roster/internal/roster"
	"github.com/javiermolinar/roster/internal/shift"
	"github.com/javiermolinar/roster/internal/tui/commands"
	"github.com/javiermolinar/roster/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal    Mode = iota
	ModeMove           // Moving a shift to another slot or counter
	ModeForm           // New or edit shift form
	ModeConfirm        // Delete confirmation
	ModeHistory        // Ledger panel
	ModeDirectory      // Employees and counters
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeMove:
		return "move"
	case ModeForm:
		return "form"
	case ModeConfirm:
		return "confirm"
	case ModeHistory:
		return "history"
	case ModeDirectory:
		return "directory"
	default:
		return "unknown"
	}
}

type statusKind int

const (
	statusInfo statusKind = iota
	statusWarning
	statusError
)

// statusTTL is how long a status message stays visible.
const statusTTL = 4 * time.Second

// Duration options for the new shift form, in minutes.
var durationOptions = []int{30, 60, 120, 240, 480}

// Position is a cell of the grid.
type Position struct {
	Slot    int // row, index into the day's slots
	Counter int // column, index into the directory's counters
}

// moveState tracks a shift being moved.
type moveState struct {
	shift      shift.Shift
	origin     Position
	target     Position
	preview    *roster.Result
	previewErr error
}

// formState tracks the shift form. editing is set when the form changes an
// existing shift; employee is -1 when that shift's employee left the
// directory and no one was picked yet.
type formState struct {
	at        Position
	employee  int
	counter   int
	duration  int
	durations []int
	focus     int
	editing   *shift.Shift
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	session commands.Roster
	staff   commands.Staff
	dir     *shift.Directory
	config  *config.Config
	logger  *slog.Logger
	nowFunc func() time.Time

	// Theme and styles
	theme  *theme.Theme
	styles *Styles
	keys   keyMap
	help   help.Model

	// Day state
	day       time.Time
	interval  int
	slots     []grid.Slot
	counters  []shift.Counter
	employees []shift.Employee
	shifts    []shift.Shift
	total     int
	entries   []history.Entry
	loading   bool

	// Interaction state
	cursor        Position
	mode          Mode
	move          moveState
	form          formState
	confirm       *shift.Shift
	historyOffset int
	undoPreview   *commands.UndoPreviewMsg
	dirPanel      dirState

	overlay Overlay

	// Terminal dimensions and layout
	width        int
	height       int
	colWidth     int
	scrollOffset int

	statusMsg  string
	statusKind statusKind
	statusTime time.Time
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithDay sets the day shown on start.
func WithDay(day time.Time) ModelOption {
	return func(m *Model) {
		m.day = grid.DayStart(day)
	}
}

// WithNow overrides the clock used for "today".
func WithNow(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.nowFunc = now
	}
}

// WithLogger sets the logger for key presses and mode changes.
func WithLogger(logger *slog.Logger) ModelOption {
	return func(m *Model) {
		m.logger = logger
	}
}

// New creates a model over session. The grid columns are the directory's
// counters in configuration order.
func New(session *roster.Session, cfg *config.Config, opts ...ModelOption) Model {
	if cfg == nil {
		cfg = config.Default()
	}

	th, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		th, _ = theme.Load(theme.DefaultName)
	}
	styles := NewStyles(th)

	m := Model{
		session:  session,
		staff:    session,
		dir:      session.Directory(),
		config:   cfg,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		nowFunc:  time.Now,
		theme:    th,
		styles:   styles,
		keys:     newKeyMap(),
		help:     help.New(),
		interval: cfg.Roster.IntervalMinutes,
		colWidth: defaultColWidth,
		overlay:  NewOverlay(styles.ModalBgColor),
		loading:  true,
	}
	m.help.Styles.ShortKey = styles.HelpStyle.Bold(true)
	m.help.Styles.ShortDesc = styles.HelpStyle
	m.help.Styles.ShortSeparator = styles.HelpStyle

	for _, opt := range opts {
		opt(&m)
	}

	if !grid.ValidInterval(m.interval) {
		m.interval = grid.DefaultInterval
	}
	if m.day.IsZero() {
		m.day = grid.DayStart(m.nowFunc())
	}
	m.refreshDirectory()
	m.slots = grid.Slots(m.day, m.interval)
	m.cursor.Slot = m.viewStartSlot()
	m.scrollOffset = m.cursor.Slot

	return m
}

// Init loads the first day.
func (m Model) Init() tea.Cmd {
	return commands.LoadDay(m.session, m.day)
}

// Run starts the TUI and blocks until it exits.
func Run(session *roster.Session, cfg *config.Config, opts ...ModelOption) error {
	model := New(session, cfg, opts...)
	model.logger.Debug("tui start", "day", model.day.Format(dateutil.DateLayout), "interval", model.interval)
	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	model.logger.Debug("tui end", "error", err)
	return err
}

// viewStartSlot is the row of the configured view start time.
func (m Model) viewStartSlot() int {
	minutes, err := dateutil.ParseClock(m.config.Roster.ViewStart)
	if err != nil {
		return 0
	}
	return m.clampSlot(grid.SlotIndex(m.day, dateutil.AtClock(m.day, minutes), m.interval))
}

// refreshDirectory reloads the grid columns and the employee list after the
// directory changed.
func (m *Model) refreshDirectory() {
	if m.dir == nil {
		return
	}
	m.counters = m.dir.Counters()
	m.employees = m.dir.Employees()
	m.cursor.Counter = m.clampCounter(m.cursor.Counter)
	m.colWidth = m.calculateColWidth()
}

// setDay switches to day and reloads its shifts.
func (m *Model) setDay(day time.Time) tea.Cmd {
	m.day = grid.DayStart(day)
	m.slots = grid.Slots(m.day, m.interval)
	m.cursor.Slot = m.clampSlot(m.cursor.Slot)
	m.loading = true
	return commands.LoadDay(m.session, m.day)
}

// setInterval regrids the day, keeping the cursor on the same time of day.
func (m *Model) setInterval(minutes int) {
	at := m.cursorSlot().Start
	m.interval = minutes
	m.slots = grid.Slots(m.day, m.interval)
	m.cursor.Slot = m.clampSlot(grid.SlotIndex(m.day, at, m.interval))
	m.ensureCursorVisible()
}

func (m Model) cursorSlot() grid.Slot {
	if len(m.slots) == 0 {
		return grid.Slot{Start: m.day, End: m.day}
	}
	return m.slots[m.clampSlot(m.cursor.Slot)]
}

func (m Model) cursorCounter() (shift.Counter, bool) {
	if m.cursor.Counter < 0 || m.cursor.Counter >= len(m.counters) {
		return shift.Counter{}, false
	}
	return m.counters[m.cursor.Counter], true
}

func (m Model) clampSlot(i int) int {
	return max(0, min(i, len(m.slots)-1))
}

func (m Model) clampCounter(i int) int {
	return max(0, min(i, len(m.counters)-1))
}

// cellShifts returns the shifts occupying a cell in insertion order.
func (m Model) cellShifts(p Position) []shift.Shift {
	if p.Slot < 0 || p.Slot >= len(m.slots) || p.Counter < 0 || p.Counter >= len(m.counters) {
		return nil
	}
	slot := m.slots[p.Slot]
	return grid.Overlapping(m.shifts, m.counters[p.Counter].ID, slot.Start, slot.End)
}

// shiftAtCursor returns the first shift under the cursor.
func (m Model) shiftAtCursor() (shift.Shift, bool) {
	matches := m.cellShifts(m.cursor)
	if len(matches) == 0 {
		return shift.Shift{}, false
	}
	return matches[0], true
}

func (m Model) employeeName(s shift.Shift) string {
	if m.dir != nil {
		if name, ok := m.dir.EmployeeName(s.EmployeeID); ok {
			return name
		}
	}
	if name := s.EmployeeName(); name != "" {
		return name
	}
	return history.UnknownName
}

func (m Model) counterName(s shift.Shift) string {
	if m.dir != nil {
		if name, ok := m.dir.CounterName(s.CounterID); ok {
			return name
		}
	}
	if s.Location != "" {
		return s.Location
	}
	return history.UnknownName
}

// visibleRows is the number of slot rows that fit in the grid box.
func (m Model) visibleRows() int {
	// title, table borders, header and its separator, footer
	rows := m.height - 1 - 4 - footerHeight
	if rows < 1 {
		return 1
	}
	return rows
}

func (m *Model) ensureCursorVisible() {
	visible := m.visibleRows()
	if m.cursor.Slot < m.scrollOffset {
		m.scrollOffset = m.cursor.Slot
	}
	if m.cursor.Slot >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor.Slot - visible + 1
	}
	m.scrollOffset = max(0, min(m.scrollOffset, len(m.slots)-visible))
}

func (m Model) calculateColWidth() int {
	n := len(m.counters)
	if n == 0 || m.width <= 0 {
		return defaultColWidth
	}
	// one border per column plus the outer borders
	avail := m.width - timeColWidth - n - 2
	return max(minColWidth, avail/n)
}
