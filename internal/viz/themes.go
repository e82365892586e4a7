package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Border    lipgloss.Color
	Running   lipgloss.Color
	Paused    lipgloss.Color
}

var (
	ThemeLab = Theme{
		Name:      "lab",
		Primary:   lipgloss.Color("86"),
		Secondary: lipgloss.Color("252"),
		Accent:    lipgloss.Color("205"),
		Text:      lipgloss.Color("252"),
		Muted:     lipgloss.Color("245"),
		Border:    lipgloss.Color("240"),
		Running:   lipgloss.Color("#00ff88"),
		Paused:    lipgloss.Color("#ffaa00"),
	}

	ThemePhosphor = Theme{
		Name:      "phosphor",
		Primary:   lipgloss.Color("#00ff00"),
		Secondary: lipgloss.Color("#00cc00"),
		Accent:    lipgloss.Color("#88ff88"),
		Text:      lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#005500"),
		Border:    lipgloss.Color("#003300"),
		Running:   lipgloss.Color("#88ff88"),
		Paused:    lipgloss.Color("#ffff00"),
	}

	ThemeDarkroom = Theme{
		Name:      "darkroom",
		Primary:   lipgloss.Color("#ff4444"),
		Secondary: lipgloss.Color("#cc8888"),
		Accent:    lipgloss.Color("#ffaa88"),
		Text:      lipgloss.Color("#ffdddd"),
		Muted:     lipgloss.Color("#884444"),
		Border:    lipgloss.Color("#442222"),
		Running:   lipgloss.Color("#ff8866"),
		Paused:    lipgloss.Color("#ffcc00"),
	}

	// Default theme
	CurrentTheme = ThemeLab

	// All available themes
	Themes = []Theme{
		ThemeLab,
		ThemePhosphor,
		ThemeDarkroom,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeLab
}

// SetTheme changes the current theme
func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = Themes[(i+1)%len(Themes)]
			return
		}
	}
	CurrentTheme = ThemeLab
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
