// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/roster/internal/config"
	"github.com/javiermolinar/roster/internal/history"
	"github.com/javiermolinar/roster/internal/roster"
	"github.com/javiermolinar/roster/internal/shift"
)

// Roster is the part of a session the TUI drives.
type Roster interface {
	Day(ctx context.Context, day time.Time) ([]shift.Shift, error)
	Count(ctx context.Context) (int, error)
	Dispatch(ctx context.Context, cmd roster.Command) (roster.Result, error)
	Preview(ctx context.Context, cmd roster.Command) (roster.Result, error)
	Undo(ctx context.Context) (history.Outcome, error)
	PreviewUndo(ctx context.Context) ([]shift.Shift, history.Outcome, error)
	History() []history.Entry
}

// Staff edits the employee and counter directory of a session.
type Staff interface {
	AddEmployee(e shift.Employee) error
	UpdateEmployee(e shift.Employee) error
	RemoveEmployee(id string) error
	AddCounter(c shift.Counter) error
	UpdateCounter(c shift.Counter) error
	RemoveCounter(ctx context.Context, id string) error
}

var (
	_ Roster = (*roster.Session)(nil)
	_ Staff  = (*roster.Session)(nil)
)

// DayLoadedMsg carries the shifts of one day, the number of shifts in the
// whole session and the current ledger.
type DayLoadedMsg struct {
	Day     time.Time
	Shifts  []shift.Shift
	Total   int
	History []history.Entry
}

// DispatchedMsg is sent after a command was applied.
type DispatchedMsg struct {
	Command roster.Command
	Result  roster.Result
}

// UndoneMsg is sent after an undo attempt. Outcome.Success is false when
// the ledger was empty.
type UndoneMsg struct {
	Outcome history.Outcome
}

// PreviewMsg carries the result of reducing a command without writing it.
type PreviewMsg struct {
	Command roster.Command
	Result  roster.Result
	Err     error
}

// UndoPreviewMsg carries the shifts as they would be after the next undo.
// Outcome.Success is false when there is nothing to undo.
type UndoPreviewMsg struct {
	Shifts  []shift.Shift
	Outcome history.Outcome
}

// DirectoryEditedMsg is sent after a directory change was applied.
type DirectoryEditedMsg struct {
	Description string
}

// DirectorySavedMsg is sent after the directory was written to the config
// file.
type DirectorySavedMsg struct {
	Path string
}

// CopiedMsg is sent after text was copied to the clipboard.
type CopiedMsg struct {
	Lines int
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// LoadDay loads the shifts intersecting day.
func LoadDay(r Roster, day time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		shifts, err := r.Day(ctx, day)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading %s: %w", day.Format("2006-01-02"), err)}
		}
		total, err := r.Count(ctx)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("counting shifts: %w", err)}
		}
		return DayLoadedMsg{Day: day, Shifts: shifts, Total: total, History: r.History()}
	}
}

// Dispatch applies cmd to the session.
func Dispatch(r Roster, cmd roster.Command) tea.Cmd {
	return func() tea.Msg {
		res, err := r.Dispatch(context.Background(), cmd)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return DispatchedMsg{Command: cmd, Result: res}
	}
}

// Undo reverses the newest ledger entry.
func Undo(r Roster) tea.Cmd {
	return func() tea.Msg {
		out, err := r.Undo(context.Background())
		if err != nil {
			return ErrMsg{Err: err}
		}
		return UndoneMsg{Outcome: out}
	}
}

// PreviewUndo computes the state after the next undo without applying it.
func PreviewUndo(r Roster) tea.Cmd {
	return func() tea.Msg {
		shifts, out, err := r.PreviewUndo(context.Background())
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("previewing undo: %w", err)}
		}
		return UndoPreviewMsg{Shifts: shifts, Outcome: out}
	}
}

// EditDirectory runs a directory change and reports it with description.
func EditDirectory(description string, edit func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		if err := edit(context.Background()); err != nil {
			return ErrMsg{Err: err}
		}
		return DirectoryEditedMsg{Description: description}
	}
}

// SaveDirectory writes the directory to the config file, keeping the rest
// of the file as it is on disk.
func SaveDirectory(employees []shift.Employee, counters []shift.Counter) tea.Cmd {
	return func() tea.Msg {
		path := config.DefaultConfigPath()
		cfg, err := config.LoadFrom(path)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("saving directory: %w", err)}
		}
		cfg.Employees = employees
		cfg.Counters = counters
		if err := cfg.Validate(); err != nil {
			return ErrMsg{Err: fmt.Errorf("saving directory: %w", err)}
		}
		if err := cfg.Save(); err != nil {
			return ErrMsg{Err: fmt.Errorf("saving directory: %w", err)}
		}
		return DirectorySavedMsg{Path: path}
	}
}

// Preview reduces cmd without writing it. Errors travel in the message so
// the caller can show them next to the preview.
func Preview(r Roster, cmd roster.Command) tea.Cmd {
	return func() tea.Msg {
		res, err := r.Preview(context.Background(), cmd)
		return PreviewMsg{Command: cmd, Result: res, Err: err}
	}
}

// CopyText writes text to the system clipboard.
func CopyText(text string, lines int) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying to clipboard: %w", err)}
		}
		return CopiedMsg{Lines: lines}
	}
}
