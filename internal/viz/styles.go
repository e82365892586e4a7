package viz

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/wavelab/internal/spectrum"
)

// Styles is the set of lipgloss styles derived from a theme.
type Styles struct {
	Canvas  lipgloss.Style
	Stats   lipgloss.Style
	Header  lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Active  lipgloss.Style
	Graph   lipgloss.Style
	Help    lipgloss.Style
	Running lipgloss.Style
	Paused  lipgloss.Style
	Muted   lipgloss.Style
}

const statsWidth = 45

func NewStyles(t Theme) Styles {
	return Styles{
		Canvas: lipgloss.NewStyle().Padding(1, 2),
		Stats: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Border).
			Padding(1, 2).
			Width(statsWidth),
		Header:  lipgloss.NewStyle().Foreground(t.Primary).Bold(true).MarginBottom(1),
		Label:   lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		Value:   lipgloss.NewStyle().Foreground(t.Text),
		Active:  lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		Graph:   lipgloss.NewStyle().Foreground(t.Secondary).Padding(1, 0),
		Help:    lipgloss.NewStyle().Foreground(t.Border).MarginTop(1),
		Running: lipgloss.NewStyle().Foreground(t.Running).Bold(true),
		Paused:  lipgloss.NewStyle().Foreground(t.Paused).Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(t.Muted),
	}
}

// Swatch renders a block in the given colour.
func Swatch(c color.RGBA, width int) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(spectrum.Hex(c))).
		Render(strings.Repeat(" ", width))
}

// Bar renders a [====----] gauge for a ratio in 0..1.
func Bar(ratio float64, width int) string {
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("=", filled) + strings.Repeat("-", width-filled) + "]"
}

// ScreenStrip renders intensities as a row of shade blocks tinted with c,
// the terminal version of the screen view.
func ScreenStrip(values []float64, c color.RGBA) string {
	if len(values) == 0 {
		return ""
	}
	chars := []rune{' ', '░', '▒', '▓', '█'}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(spectrum.Hex(c)))

	var b strings.Builder
	for _, v := range values {
		idx := int(v * float64(len(chars)-1))
		if idx >= len(chars) {
			idx = len(chars) - 1
		}
		if idx < 0 {
			idx = 0
		}
		b.WriteRune(chars[idx])
	}
	return style.Render(b.String())
}

// Separator draws a decorative rule.
func Separator(width int) string {
	mid := width / 2
	if mid < 3 {
		return strings.Repeat("─", width)
	}
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", max(width-mid-3, 0))
	return left + " ◆ " + right
}
