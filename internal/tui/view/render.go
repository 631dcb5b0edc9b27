// Package view renders the roster TUI from plain view-state values. It has
// no knowledge of the session or of bubbletea.
package view

// OverlayRenderer draws a panel on top of the base content.
type OverlayRenderer interface {
	Render(base string, width, height int, content string) string
}

// ViewState is everything needed to draw one frame.
type ViewState struct {
	Width        int
	Height       int
	BaseContent  string
	PanelContent string
	ShowPanel    bool
	Overlay      OverlayRenderer
	Placeholder  string
}

// Render composes the final frame.
func Render(state ViewState) string {
	if state.Width == 0 || state.Height == 0 {
		if state.Placeholder != "" {
			return state.Placeholder
		}
		return "Loading..."
	}
	if state.ShowPanel && state.Overlay != nil {
		return state.Overlay.Render(state.BaseContent, state.Width, state.Height, state.PanelContent)
	}
	return state.BaseContent
}
