package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// logKeyPress logs a key press at debug level.
func (m Model) logKeyPress(msg tea.KeyMsg) {
	m.logger.Debug("key press", "key", msg.String(), "mode", m.mode)
}

// setMode switches mode and logs the transition.
func (m *Model) setMode(to Mode, reason string) {
	if m.mode == to {
		return
	}
	m.logger.Debug("mode change", "from", m.mode, "to", to, "reason", reason)
	m.mode = to
}

// logCursor logs cursor movement.
func (m Model) logCursor(reason string) {
	m.logger.Debug("cursor move",
		"slot", m.cursor.Slot,
		"counter", m.cursor.Counter,
		"reason", reason,
	)
}

// logError logs an error surfaced to the status line.
func (m Model) logError(context string, err error) {
	m.logger.Error("tui error", "context", context, "error", err)
}
