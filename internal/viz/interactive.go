package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/wavelab/internal/config"
	"github.com/san-kum/wavelab/internal/experiment"
)

const (
	stateMenu = iota
	statePreset
	stateSim
)

const defaultPreset = "default"

var (
	menuTitle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	menuSub    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	menuCursor = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	menuActive = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	menuDesc   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	menuIdle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	menuKey    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
)

// picker walks the user from a bench list through its presets into a live
// simulation.
type picker struct {
	state, cursor int
	registry      *experiment.Registry
	benches       []string
	selected      string
	presets       []string
	base          *config.Config
	width, height int
	liveModel     Model
	err           error
}

// NewInteractiveApp starts at the bench menu. base supplies canvas and
// display settings; nil uses the defaults.
func NewInteractiveApp(base *config.Config) *picker {
	if base == nil {
		base = config.DefaultConfig()
	}
	r := experiment.NewRegistry()
	return &picker{
		state:    stateMenu,
		registry: r,
		benches:  r.List(),
		base:     base,
	}
}

func (m picker) Init() tea.Cmd { return nil }

func (m picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	}
	if m.state == stateSim {
		newLive, cmd := m.liveModel.Update(msg)
		m.liveModel = newLive.(Model)
		return m, cmd
	}
	return m, nil
}

func (m picker) handleKey(msg tea.KeyMsg) (picker, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case statePreset:
		return m.presetKey(msg)
	case stateSim:
		newLive, cmd := m.liveModel.Update(msg)
		m.liveModel = newLive.(Model)
		return m, cmd
	}
	return m, nil
}

func (m picker) menuKey(msg tea.KeyMsg) (picker, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.benches)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.selected = m.benches[m.cursor]
		m.presets = append([]string{defaultPreset}, config.ListPresets(m.selected)...)
		m.state, m.cursor = statePreset, 0
	}
	return m, nil
}

func (m picker) presetKey(msg tea.KeyMsg) (picker, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.state, m.cursor = stateMenu, 0
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ", "s":
		cmd := m.start(m.presets[m.cursor])
		return m, cmd
	}
	return m, nil
}

// benchConfig resolves the chosen bench and preset into a config.
func (m *picker) benchConfig(preset string) (*config.Config, error) {
	if preset != defaultPreset {
		if cfg := config.GetPreset(m.selected, preset); cfg != nil {
			cfg.Canvas = m.base.Canvas
			return cfg, nil
		}
	}
	b, err := m.registry.Get(m.selected)
	if err != nil {
		return nil, err
	}
	cfg := *m.base
	cfg.Variant = b.Variant.String()
	cfg.Wave = config.WaveConfig{
		WavelengthNm: b.Params.Wavelength * 1e9,
		SlitWidthUm:  b.Params.SlitWidth * 1e6,
		SeparationUm: b.Params.Separation * 1e6,
		Slits:        b.Params.Slits,
		Amplitude:    b.Params.Amplitude,
	}
	return &cfg, nil
}

func (m *picker) start(preset string) tea.Cmd {
	cfg, err := m.benchConfig(preset)
	if err == nil {
		var live Model
		opts, oerr := cfg.Options(nil)
		if err = oerr; err == nil {
			cols, rows := width, height
			if m.width > 0 {
				cols = m.width - statsWidth - 2*canvasPadX - 2
				rows = m.height - 2*canvasPadY
			}
			live, err = NewModel(opts, cols, rows, m.selected+"/"+preset)
			m.liveModel = live
		}
	}
	if err != nil {
		m.err = err
		return nil
	}
	m.state = stateSim
	return m.liveModel.Init()
}

func (m picker) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case statePreset:
		return m.viewPresets()
	case stateSim:
		return m.liveModel.View()
	}
	return ""
}

func (m picker) viewList(title, sub string, items []string, desc func(string) string, keys string) string {
	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render(title) + "\n    " + menuSub.Render(sub) + "\n    " + menuSub.Render("─────────────────────────") + "\n\n")
	for i, name := range items {
		d := desc(name)
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", menuCursor.Render("▸"), menuActive.Render(fmt.Sprintf("%-12s", name)), menuDesc.Render(d)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", menuIdle.Render(fmt.Sprintf("  %-12s", name)), menuIdle.Render(d)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + menuDesc.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + keys + "\n")
	return b.String()
}

func (m picker) viewMenu() string {
	return m.viewList("WAVELAB", "wave optics bench", m.benches, func(name string) string {
		b, err := m.registry.Get(name)
		if err != nil {
			return ""
		}
		return b.Description
	}, menuKey.Render("j/k")+menuIdle.Render(" navigate  ")+menuKey.Render("enter")+menuIdle.Render(" select  ")+menuKey.Render("q")+menuIdle.Render(" quit"))
}

func (m picker) viewPresets() string {
	return m.viewList(strings.ToUpper(m.selected), "choose a preset", m.presets, func(name string) string {
		cfg := config.GetPreset(m.selected, name)
		if cfg == nil {
			return "bench defaults"
		}
		return fmt.Sprintf("λ=%.0fnm w=%.0fµm s=%.0fµm N=%d", cfg.Wave.WavelengthNm, cfg.Wave.SlitWidthUm, cfg.Wave.SeparationUm, cfg.Wave.Slits)
	}, menuKey.Render("j/k")+menuIdle.Render(" select  ")+menuKey.Render("enter")+menuIdle.Render(" start  ")+menuKey.Render("esc")+menuIdle.Render(" back"))
}

// RunInteractive starts the bench menu full screen with mouse support.
func RunInteractive(base *config.Config) error {
	_, err := tea.NewProgram(NewInteractiveApp(base), tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}

// RunLive opens a simulation directly, skipping the menu.
func RunLive(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
