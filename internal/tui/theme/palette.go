package theme

import (
	"math"

	"github.com/charmbracelet/lipgloss"
)

// Palette holds precomputed colors derived from a Theme.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Current     lipgloss.Color
	Warning     lipgloss.Color
	Success     lipgloss.Color
	Danger      lipgloss.Color
	Info        lipgloss.Color

	// WarningBg fills cells where two employees share a counter.
	WarningBg lipgloss.Color

	TextOnAccent  lipgloss.Color
	TextOnWarning lipgloss.Color
	TextOnSuccess lipgloss.Color
	TextOnDanger  lipgloss.Color
	TextOnInfo    lipgloss.Color

	Modal ModalColors

	theme   *Theme
	isLight bool
}

// ModalColors holds modal-specific colors derived from a Theme.
type ModalColors struct {
	Bg        lipgloss.Color
	Border    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Highlight lipgloss.Color
}

// NewPalette derives a Palette from the provided Theme.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load(DefaultName)
	}
	isLight := isLightTheme(t.Bg)

	return &Palette{
		Bg:          lipgloss.Color(t.Bg),
		BgHighlight: lipgloss.Color(t.BgHighlight),
		BgSelection: lipgloss.Color(t.BgSelection),
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		Current:     lipgloss.Color(t.Current),
		Warning:     lipgloss.Color(t.Warning),
		Success:     lipgloss.Color(t.Success),
		Danger:      lipgloss.Color(t.Danger),
		Info:        lipgloss.Color(t.Info),

		WarningBg: lipgloss.Color(shiftBg(t.Warning, t.Bg, isLight)),

		TextOnAccent:  lipgloss.Color(chooseTextColor(t.Accent, t.Bg, t.Fg)),
		TextOnWarning: lipgloss.Color(chooseTextColor(t.Warning, t.Bg, t.Fg)),
		TextOnSuccess: lipgloss.Color(chooseTextColor(t.Success, t.Bg, t.Fg)),
		TextOnDanger:  lipgloss.Color(chooseTextColor(t.Danger, t.Bg, t.Fg)),
		TextOnInfo:    lipgloss.Color(chooseTextColor(t.Info, t.Bg, t.Fg)),

		Modal: ModalColors{
			Bg:        lipgloss.Color(coalesce(t.BaseBg, t.BgHighlight, t.Bg)),
			Border:    lipgloss.Color(coalesce(t.ModalBorder, t.Accent)),
			Text:      lipgloss.Color(coalesce(t.TextPrimary, t.Fg)),
			Muted:     lipgloss.Color(coalesce(t.TextMuted, t.FgMuted)),
			Highlight: lipgloss.Color(coalesce(t.Highlight, t.BgSelection, t.Accent)),
		},

		theme:   t,
		isLight: isLight,
	}
}

// IsLight reports whether the palette has a light background.
func (p *Palette) IsLight() bool {
	return p.isLight
}

// ShiftBg returns the cell background for an employee colour. An empty or
// malformed colour falls back to the accent.
func (p *Palette) ShiftBg(hex string) lipgloss.Color {
	if !isHexColor(hex) {
		hex = p.theme.Accent
	}
	return lipgloss.Color(shiftBg(hex, p.theme.Bg, p.isLight))
}

// ShiftFg returns readable text for a cell drawn with ShiftBg(hex).
func (p *Palette) ShiftFg(hex string) lipgloss.Color {
	if !isHexColor(hex) {
		hex = p.theme.Accent
	}
	return lipgloss.Color(chooseTextColor(shiftBg(hex, p.theme.Bg, p.isLight), p.theme.Fg, p.theme.Bg))
}

func isLightTheme(bg string) bool {
	return relativeLuminance(bg) > 0.55
}

func isHexColor(hex string) bool {
	return len(hex) == 7 && hex[0] == '#'
}

// shiftBg tints the employee colour towards the background so text stays
// readable on both dark and light themes.
func shiftBg(accent, bg string, isLight bool) string {
	if isLight {
		return blendColors(accent, bg, 0.70)
	}
	return darkenColor(accent)
}

// darkenColor creates a darker version of a hex color for backgrounds.
// It reduces the brightness by blending towards black, with a minimum floor
// to ensure visibility on dark themes.
func darkenColor(hex string) string {
	if !isHexColor(hex) {
		return hex
	}

	var r, g, b int
	parseHex(hex[1:3], &r)
	parseHex(hex[3:5], &g)
	parseHex(hex[5:7], &b)

	factor := 0.45
	r = max(int(float64(r)*factor), 40)
	g = max(int(float64(g)*factor), 40)
	b = max(int(float64(b)*factor), 40)

	return formatHexColor(r, g, b)
}

// parseHex parses a 2-character hex string into an integer.
func parseHex(s string, v *int) {
	var val int
	for i := 0; i < len(s); i++ {
		val *= 16
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			val += int(c - '0')
		case c >= 'a' && c <= 'f':
			val += int(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			val += int(c - 'A' + 10)
		}
	}
	*v = val
}

// formatHexColor formats RGB values as a hex color string.
func formatHexColor(r, g, b int) string {
	const hex = "0123456789abcdef"
	result := make([]byte, 7)
	result[0] = '#'
	result[1] = hex[r>>4]
	result[2] = hex[r&0xf]
	result[3] = hex[g>>4]
	result[4] = hex[g&0xf]
	result[5] = hex[b>>4]
	result[6] = hex[b&0xf]
	return string(result)
}

func chooseTextColor(bg, lightText, darkText string) string {
	lightContrast := contrastRatio(bg, lightText)
	darkContrast := contrastRatio(bg, darkText)
	if lightContrast >= darkContrast {
		return lightText
	}
	return darkText
}

func contrastRatio(a, b string) float64 {
	l1 := relativeLuminance(a)
	l2 := relativeLuminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

func relativeLuminance(hex string) float64 {
	if len(hex) != 7 || hex[0] != '#' {
		return 0
	}
	var r, g, b int
	parseHex(hex[1:3], &r)
	parseHex(hex[3:5], &g)
	parseHex(hex[5:7], &b)
	return 0.2126*srgbToLinear(r) + 0.7152*srgbToLinear(g) + 0.0722*srgbToLinear(b)
}

func srgbToLinear(c int) float64 {
	v := float64(c) / 255.0
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

func blendColors(a, b string, ratio float64) string {
	if len(a) != 7 || a[0] != '#' || len(b) != 7 || b[0] != '#' {
		return a
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}

	var ar, ag, ab int
	var br, bg, bb int
	parseHex(a[1:3], &ar)
	parseHex(a[3:5], &ag)
	parseHex(a[5:7], &ab)
	parseHex(b[1:3], &br)
	parseHex(b[3:5], &bg)
	parseHex(b[5:7], &bb)

	r := int(float64(ar)*(1-ratio) + float64(br)*ratio)
	g := int(float64(ag)*(1-ratio) + float64(bg)*ratio)
	bv := int(float64(ab)*(1-ratio) + float64(bb)*ratio)

	return formatHexColor(r, g, bv)
}
