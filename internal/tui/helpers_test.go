package tui

import (
	"context"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/javiermolinar/roster/internal/config"
	"github.com/javiermolinar/roster/internal/db"
	"github.com/javiermolinar/roster/internal/roster"
	"github.com/javiermolinar/roster/internal/tui/commands"
)

var testDay = time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)

func at(hour, minute int) time.Time {
	return testDay.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

// newTestModel builds a sized model over a fresh in-memory session using
// the default directory: employee "1" John Smith, "2" Sarah Johnson and
// counters "1" Checkout 1, "2" Checkout 2.
func newTestModel(t *testing.T) (Model, *roster.Session) {
	t.Helper()

	prev := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.Ascii)
	t.Cleanup(func() { lipgloss.SetColorProfile(prev) })

	repo, err := db.NewMemory()
	if err != nil {
		t.Fatalf("opening db: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	cfg := config.Default()
	dir, err := cfg.Directory()
	if err != nil {
		t.Fatalf("directory: %v", err)
	}
	n := 0
	session := roster.NewSession(repo, dir, roster.WithIDs(func() string {
		n++
		return fmt.Sprintf("s%d", n)
	}))

	m := New(session, cfg, WithDay(testDay), WithNow(func() time.Time { return at(10, 30) }))
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 160, Height: 40})
	m = drain(t, updated.(Model), m.Init())
	return m, session
}

// dispatch applies cmd through the session and reloads the day.
func dispatch(t *testing.T, m Model, s *roster.Session, cmd roster.Command) Model {
	t.Helper()
	if _, err := s.Dispatch(context.Background(), cmd); err != nil {
		t.Fatalf("dispatch %s: %v", cmd.Name(), err)
	}
	return drain(t, m, commands.LoadDay(s, m.day))
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

// press sends keys one by one, running the resulting commands.
func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		updated, cmd := m.Update(keyMsg(k))
		m = drain(t, updated.(Model), cmd)
	}
	return m
}

// drain runs cmd and every command it produces, feeding the messages back
// into the model. Timers and quit messages are dropped.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg, ok := runCmd(c)
		if !ok {
			continue
		}
		switch msg := msg.(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case commands.ClearStatusMsg, tea.QuitMsg:
		default:
			updated, next := m.Update(msg)
			m = updated.(Model)
			queue = append(queue, next)
		}
	}
	return m
}

// runCmd runs c, giving up on commands that wait, such as tea.Tick.
func runCmd(c tea.Cmd) (tea.Msg, bool) {
	done := make(chan tea.Msg, 1)
	go func() { done <- c() }()
	select {
	case msg := <-done:
		return msg, true
	case <-time.After(200 * time.Millisecond):
		return nil, false
	}
}
