// Package history keeps the session's most-recent-first log of shift
// mutations and reverses the newest one on undo.
package history

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/javiermolinar/roster/internal/shift"
)

// Ledger errors.
var (
	ErrInvalidEntry  = errors.New("invalid history entry")
	ErrUnknownAction = errors.New("unknown history action")
)

// Action is the kind of mutation an entry records.
type Action string

// Supported actions.
const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Valid reports whether a is a known action.
func (a Action) Valid() bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionDelete:
		return true
	}
	return false
}

// Entry is one recorded mutation. Display fields are computed when the
// entry is appended and never change afterwards.
type Entry struct {
	ID           string
	Action       Action
	Timestamp    time.Time
	EmployeeName string
	CounterName  string
	OldStart     time.Time
	OldEnd       time.Time
	NewStart     time.Time
	NewEnd       time.Time
	Details      string
	OldShift     *shift.Shift
	NewShift     *shift.Shift
}

// Outcome tells the caller how to reverse the entry that was undone:
// create deletes NewShift.ID, update restores OldShift, delete re-inserts
// OldShift.
type Outcome struct {
	Success  bool
	Action   Action
	OldShift *shift.Shift
	NewShift *shift.Shift
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock sets the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithIDs sets the entry id generator.
func WithIDs(newID func() string) Option {
	return func(l *Ledger) { l.newID = newID }
}

// WithNames resolves employee and counter ids to display names.
func WithNames(names NameResolver) Option {
	return func(l *Ledger) { l.names = names }
}

// Ledger is the ordered mutation log, newest first. It is not safe for
// concurrent use; the owner serializes access.
type Ledger struct {
	entries []Entry
	now     func() time.Time
	newID   func() string
	names   NameResolver
}

// New creates an empty ledger.
func New(opts ...Option) *Ledger {
	l := &Ledger{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Append records a mutation. create takes only newShift, delete only
// oldShift, update both with the same id. Snapshots are copied.
func (l *Ledger) Append(action Action, oldShift, newShift *shift.Shift) error {
	if err := checkSnapshots(action, oldShift, newShift); err != nil {
		return err
	}

	entry := Entry{
		ID:        l.newID(),
		Action:    action,
		Timestamp: l.now(),
		Details:   Details(action, oldShift, newShift, l.names),
		OldShift:  clonePtr(oldShift),
		NewShift:  clonePtr(newShift),
	}
	subject := newShift
	if subject == nil {
		subject = oldShift
	}
	entry.EmployeeName = employeeName(subject, l.names)
	entry.CounterName = counterName(subject, l.names)
	if oldShift != nil {
		entry.OldStart, entry.OldEnd = oldShift.Start, oldShift.End
	}
	if newShift != nil {
		entry.NewStart, entry.NewEnd = newShift.Start, newShift.End
	}

	l.entries = slices.Insert(l.entries, 0, entry)
	return nil
}

// Last returns the newest entry without removing it.
func (l *Ledger) Last() (Entry, bool) {
	if len(l.entries) == 0 {
		return Entry{}, false
	}
	return l.entries[0], true
}

// Undo removes the newest entry and reports how to reverse it. An empty
// ledger reports Success false. Undo itself is not recorded.
func (l *Ledger) Undo() Outcome {
	if len(l.entries) == 0 {
		return Outcome{}
	}
	head := l.entries[0]
	l.entries = l.entries[1:]
	return head.Outcome()
}

// Outcome returns how to reverse e.
func (e Entry) Outcome() Outcome {
	return Outcome{
		Success:  true,
		Action:   e.Action,
		OldShift: clonePtr(e.OldShift),
		NewShift: clonePtr(e.NewShift),
	}
}

// Entries returns the log, newest first.
func (l *Ledger) Entries() []Entry {
	return slices.Clone(l.entries)
}

// Len returns the number of entries.
func (l *Ledger) Len() int {
	return len(l.entries)
}

func checkSnapshots(action Action, oldShift, newShift *shift.Shift) error {
	if !action.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	switch action {
	case ActionCreate:
		if oldShift != nil || newShift == nil {
			return fmt.Errorf("%w: create needs only the new shift", ErrInvalidEntry)
		}
	case ActionDelete:
		if oldShift == nil || newShift != nil {
			return fmt.Errorf("%w: delete needs only the old shift", ErrInvalidEntry)
		}
	case ActionUpdate:
		if oldShift == nil || newShift == nil {
			return fmt.Errorf("%w: update needs both shifts", ErrInvalidEntry)
		}
		if oldShift.ID != newShift.ID {
			return fmt.Errorf("%w: update changes id %q to %q", ErrInvalidEntry, oldShift.ID, newShift.ID)
		}
	}
	return nil
}

func clonePtr(s *shift.Shift) *shift.Shift {
	if s == nil {
		return nil
	}
	return s.Ptr()
}
