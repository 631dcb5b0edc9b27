package roster

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/javiermolinar/roster/internal/grid"
	"github.com/javiermolinar/roster/internal/history"
	"github.com/javiermolinar/roster/internal/shift"
)

// ErrCounterInUse is returned when removing a counter that still has shifts.
var ErrCounterInUse = errors.New("counter has shifts")

// Session is the root state of one planning session. It owns the history
// ledger and is the only writer to the shift repository.
type Session struct {
	mu      sync.Mutex
	repo    shift.Repository
	dir     *shift.Directory
	ledger  *history.Ledger
	reducer Reducer
	logger  *slog.Logger
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) { s.logger = logger }
}

// WithIDs sets the generator for new shift ids.
func WithIDs(newID func() string) SessionOption {
	return func(s *Session) { s.reducer.NewID = newID }
}

// NewSession creates a session over repo. The ledger resolves names through
// dir. A nil dir starts the session with an empty directory.
func NewSession(repo shift.Repository, dir *shift.Directory, opts ...SessionOption) *Session {
	if dir == nil {
		dir, _ = shift.NewDirectory(nil, nil)
	}
	s := &Session{
		repo:    repo,
		dir:     dir,
		reducer: Reducer{Directory: dir},
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ledger = history.New(history.WithNames(dir))
	return s
}

// Dispatch applies cmd, records it in the ledger and writes the change to
// the repository. Conflicts in the result are warnings; the write happens
// regardless.
func (s *Session) Dispatch(ctx context.Context, cmd Command) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.repo.List(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("loading shifts: %w", err)
	}

	res, err := s.reducer.Apply(state, cmd)
	if err != nil {
		s.logger.Debug("command rejected", "command", cmd.Name(), "args", cmd, "error", err)
		return Result{}, err
	}

	if err := s.write(ctx, res); err != nil {
		return Result{}, fmt.Errorf("%s: %w", cmd.Name(), err)
	}
	if err := s.ledger.Append(res.Action, res.Old, res.New); err != nil {
		return Result{}, fmt.Errorf("%s: %w", cmd.Name(), err)
	}

	s.logger.Debug("command applied", "command", cmd.Name(), "args", cmd, "action", res.Action)
	for _, c := range res.Conflicts {
		s.logger.Warn("shift overlaps another employee",
			"shift", res.New.ID,
			"employee", res.New.EmployeeID,
			"other_shift", c.ID,
			"other_employee", c.EmployeeID,
			"counter", c.CounterID,
		)
	}
	return res, nil
}

// Undo reverses the newest ledger entry in the repository. The entry is
// removed only after the repository accepted the reversal, so a failed undo
// can be retried. An empty ledger is reported as an unsuccessful outcome
// with a nil error.
func (s *Session) Undo(ctx context.Context) (history.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	head, ok := s.ledger.Last()
	if !ok {
		s.logger.Debug("nothing to undo")
		return history.Outcome{}, nil
	}

	out := head.Outcome()
	if err := s.revert(ctx, out); err != nil {
		s.logger.Error("undo failed", "action", out.Action, "entry", head.ID, "error", err)
		return history.Outcome{}, fmt.Errorf("undo %s: %w", out.Action, err)
	}
	s.ledger.Undo()

	s.logger.Info("undo", "action", out.Action, "remaining", s.ledger.Len())
	return out, nil
}

// PreviewUndo returns the shifts as they would be after Undo, without
// touching the repository or the ledger.
func (s *Session) PreviewUndo(ctx context.Context) ([]shift.Shift, history.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.repo.List(ctx)
	if err != nil {
		return nil, history.Outcome{}, fmt.Errorf("loading shifts: %w", err)
	}
	head, ok := s.ledger.Last()
	if !ok {
		return state, history.Outcome{}, nil
	}
	out := head.Outcome()
	return Revert(state, out), out, nil
}

// Shifts returns every shift of the session in insertion order.
func (s *Session) Shifts(ctx context.Context) ([]shift.Shift, error) {
	return s.repo.List(ctx)
}

// Get returns a shift by id.
func (s *Session) Get(ctx context.Context, id string) (shift.Shift, error) {
	return s.repo.Get(ctx, id)
}

// Day returns the shifts intersecting the day containing day.
func (s *Session) Day(ctx context.Context, day time.Time) ([]shift.Shift, error) {
	start := grid.DayStart(day)
	return s.repo.ListBetween(ctx, start, start.AddDate(0, 0, 1))
}

// Count returns the number of shifts in the session.
func (s *Session) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// Conflicts returns the shifts of other employees overlapping candidate
// on its counter.
func (s *Session) Conflicts(ctx context.Context, candidate shift.Shift) ([]shift.Shift, error) {
	matches, err := s.repo.ListOverlapping(ctx, candidate.CounterID, candidate.Start, candidate.End)
	if err != nil {
		return nil, err
	}
	return grid.Conflicts(matches, candidate), nil
}

// Preview reduces cmd against the current shifts without writing anything.
func (s *Session) Preview(ctx context.Context, cmd Command) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.repo.List(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("loading shifts: %w", err)
	}
	return s.reducer.Apply(state, cmd)
}

// Ledger returns the session's history ledger.
func (s *Session) Ledger() *history.Ledger {
	return s.ledger
}

// History returns a snapshot of the ledger entries, newest first.
func (s *Session) History() []history.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Entries()
}

// Directory returns the employee and counter directory.
func (s *Session) Directory() *shift.Directory {
	return s.dir
}

// AddEmployee adds an employee to the directory.
func (s *Session) AddEmployee(e shift.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.dir.AddEmployee(e); err != nil {
		return err
	}
	s.logger.Info("employee added", "id", e.ID, "name", e.Name)
	return nil
}

// UpdateEmployee replaces an employee. Shifts already created keep their
// titles; names shown in the grid and new history entries follow the change.
func (s *Session) UpdateEmployee(e shift.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.dir.UpdateEmployee(e); err != nil {
		return err
	}
	s.logger.Info("employee updated", "id", e.ID, "name", e.Name)
	return nil
}

// RemoveEmployee removes an employee. Their shifts stay and are shown with
// the name from their title.
func (s *Session) RemoveEmployee(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.dir.RemoveEmployee(id); err != nil {
		return err
	}
	s.logger.Info("employee removed", "id", id)
	return nil
}

// AddCounter adds a counter as the last grid column.
func (s *Session) AddCounter(c shift.Counter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.dir.AddCounter(c); err != nil {
		return err
	}
	s.logger.Info("counter added", "id", c.ID, "name", c.Name)
	return nil
}

// UpdateCounter replaces a counter.
func (s *Session) UpdateCounter(c shift.Counter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.dir.UpdateCounter(c); err != nil {
		return err
	}
	s.logger.Info("counter updated", "id", c.ID, "name", c.Name)
	return nil
}

// RemoveCounter removes a counter that has no shifts on any day.
func (s *Session) RemoveCounter(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.dir.Counter(id); err != nil {
		return err
	}
	state, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("loading shifts: %w", err)
	}
	n := 0
	for _, sh := range state {
		if sh.CounterID == id {
			n++
		}
	}
	if n > 0 {
		return fmt.Errorf("%w: %d on %q", ErrCounterInUse, n, id)
	}
	if err := s.dir.RemoveCounter(id); err != nil {
		return err
	}
	s.logger.Info("counter removed", "id", id)
	return nil
}

func (s *Session) revert(ctx context.Context, out history.Outcome) error {
	switch out.Action {
	case history.ActionCreate:
		return s.repo.Delete(ctx, out.NewShift.ID)
	case history.ActionUpdate:
		return s.repo.Update(ctx, *out.OldShift)
	case history.ActionDelete:
		return s.repo.Create(ctx, *out.OldShift)
	default:
		return fmt.Errorf("%w: %s", history.ErrUnknownAction, out.Action)
	}
}

func (s *Session) write(ctx context.Context, res Result) error {
	switch res.Action {
	case history.ActionCreate:
		return s.repo.Create(ctx, *res.New)
	case history.ActionUpdate:
		return s.repo.Update(ctx, *res.New)
	case history.ActionDelete:
		return s.repo.Delete(ctx, res.Old.ID)
	default:
		return fmt.Errorf("%w: %s", history.ErrUnknownAction, res.Action)
	}
}
