package theme

import (
	"testing"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		themeName string
		wantName  string
	}{
		{name: "load mocha theme", themeName: "mocha", wantName: "mocha"},
		{name: "load macchiato theme", themeName: "macchiato", wantName: "macchiato"},
		{name: "load frappe theme", themeName: "frappe", wantName: "frappe"},
		{name: "load latte theme", themeName: "latte", wantName: "latte"},
		{name: "name is case insensitive", themeName: "Latte", wantName: "latte"},
		{name: "empty name defaults to mocha", themeName: "", wantName: "mocha"},
		{name: "invalid theme falls back to mocha", themeName: "nonexistent", wantName: "mocha"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			theme, err := Load(tt.themeName)
			if err != nil {
				t.Fatalf("Load(%q) error: %v", tt.themeName, err)
			}
			if theme.Name != tt.wantName {
				t.Errorf("Load(%q).Name = %q, want %q", tt.themeName, theme.Name, tt.wantName)
			}
		})
	}
}

func TestLoad_EveryThemeIsComplete(t *testing.T) {
	for _, name := range Available() {
		t.Run(name, func(t *testing.T) {
			theme, err := Load(name)
			if err != nil {
				t.Fatalf("Load(%q) error: %v", name, err)
			}
			colors := map[string]string{
				"bg":           theme.Bg,
				"bg_highlight": theme.BgHighlight,
				"bg_selection": theme.BgSelection,
				"fg":           theme.Fg,
				"fg_muted":     theme.FgMuted,
				"accent":       theme.Accent,
				"current":      theme.Current,
				"warning":      theme.Warning,
				"success":      theme.Success,
				"danger":       theme.Danger,
				"info":         theme.Info,
				"modal_border": theme.ModalBorder,
				"highlight":    theme.Highlight,
			}
			for field, value := range colors {
				if !isHexColor(value) {
					t.Errorf("%s.%s = %q, want #rrggbb", name, field, value)
				}
			}
		})
	}
}

func TestLoad_ModalDefaults(t *testing.T) {
	theme, err := Load("latte")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if theme.ModalBorder != theme.Accent {
		t.Errorf("ModalBorder = %q, want accent %q", theme.ModalBorder, theme.Accent)
	}
	if theme.TextPrimary != theme.Fg {
		t.Errorf("TextPrimary = %q, want fg %q", theme.TextPrimary, theme.Fg)
	}
	if theme.Highlight != theme.BgSelection {
		t.Errorf("Highlight = %q, want bg_selection %q", theme.Highlight, theme.BgSelection)
	}
}

func TestAvailable(t *testing.T) {
	themes := Available()
	if len(themes) != 4 {
		t.Errorf("Available() returned %d themes, want 4", len(themes))
	}
}

func TestIsAvailable(t *testing.T) {
	tests := map[string]bool{
		"mocha":  true,
		"LATTE":  true,
		"frappe": true,
		"light":  false,
		"":       false,
	}
	for name, want := range tests {
		if got := IsAvailable(name); got != want {
			t.Errorf("IsAvailable(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestColor(t *testing.T) {
	if got := Color("#ff0000"); string(got) != "#ff0000" {
		t.Errorf("Color() = %q, want %q", got, "#ff0000")
	}
}
