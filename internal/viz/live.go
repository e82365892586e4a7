package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/wavelab/internal/interact"
	"github.com/san-kum/wavelab/internal/optics"
	"github.com/san-kum/wavelab/internal/sim"
	"github.com/san-kum/wavelab/internal/spectrum"
)

const (
	width       = 60
	height      = 20
	minCols     = 20
	minRows     = 8
	profileLen  = 30
	boostFactor = 4.0

	// canvasPadX and canvasPadY are the cells between the terminal origin
	// and the first canvas cell, matching Styles.Canvas padding.
	canvasPadX = 2
	canvasPadY = 1

	benchTarget = "bench"
)

var variants = []optics.Variant{
	optics.VariantSingleSlit,
	optics.VariantDoubleSlit,
	optics.VariantNSlit,
	optics.VariantTwoSource,
}

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model drives one simulation on a braille canvas.
type Model struct {
	sim       *sim.Simulation
	canvas    *Canvas
	input     *interact.Registry
	bench     string
	running   bool
	paramKeys []string
	selected  int
	initial   optics.Params
	variant   optics.Variant
	showHelp  bool
	err       error
}

// NewModel builds a simulation drawing onto a cols x rows braille canvas.
func NewModel(opts sim.Options, cols, rows int, bench string) (Model, error) {
	if cols < minCols {
		cols = width
	}
	if rows < minRows {
		rows = height
	}
	canvas := NewCanvas(cols, rows)
	s, err := sim.New(canvas, opts)
	if err != nil {
		return Model{}, err
	}
	input := interact.NewRegistry()
	if err := input.Add(benchTarget, s); err != nil {
		return Model{}, err
	}
	return Model{
		sim:       s,
		canvas:    canvas,
		input:     input,
		bench:     bench,
		running:   true,
		paramKeys: optics.Names(),
		initial:   s.Params(),
		variant:   s.Variant(),
	}, nil
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Simulation() *sim.Simulation { return m.sim }
func (m Model) Canvas() *Canvas             { return m.canvas }
func (m Model) Running() bool               { return m.running }
func (m Model) Selected() string            { return m.paramKeys[m.selected] }

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "tab":
			m.selected = (m.selected + 1) % len(m.paramKeys)
		case "up", "k":
			m.adjustParam(1)
		case "down", "j":
			m.adjustParam(-1)
		case "e":
			m.sim.SetEnvelope(!m.sim.Envelope())
		case "b":
			if m.sim.Options().Boost > 1 {
				m.sim.SetBoost(0)
			} else {
				m.sim.SetBoost(boostFactor)
			}
		case "v":
			m.cycleVariant()
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		if m.running {
			m.sim.Update()
		}
		return m, tick()
	}
	return m, nil
}

// canvasPoint maps a terminal cell to the centre of its dots.
func canvasPoint(x, y int) (float64, float64) {
	col, row := x-canvasPadX, y-canvasPadY
	return float64(col*2 + 1), float64(row*4 + 2)
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	x, y := canvasPoint(msg.X, msg.Y)
	e := interact.Event{Target: benchTarget, X: x, Y: y}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		e.Kind = interact.Down
	case tea.MouseActionMotion:
		e.Kind = interact.Move
	case tea.MouseActionRelease:
		e.Kind = interact.Up
	default:
		return
	}
	if _, err := m.input.Dispatch(e); err != nil {
		m.err = err
	}
}

func (m *Model) resize(termW, termH int) {
	cols := termW - statsWidth - 2*canvasPadX - 2
	rows := termH - 2*canvasPadY
	if cols < minCols || rows < minRows {
		return
	}
	m.canvas.Resize(cols, rows)
	w, h := m.canvas.Size()
	m.input.ResizeAll(w, h)
}

// adjustParam nudges the selected parameter by 5% (or one slit).
func (m *Model) adjustParam(dir int) {
	key := m.paramKeys[m.selected]
	val := m.sim.Params().Get()[key]
	switch key {
	case "slits":
		val += float64(dir)
	default:
		if dir > 0 {
			val *= 1.05
		} else {
			val *= 0.95
		}
	}
	if err := m.sim.SetParam(key, val); err != nil {
		m.err = err
	}
}

func (m *Model) cycleVariant() {
	cur := m.sim.Variant()
	for i, v := range variants {
		if v == cur {
			m.err = m.sim.SetVariant(variants[(i+1)%len(variants)])
			return
		}
	}
}

// reset restores the variant and parameters the model started with.
func (m *Model) reset() {
	if err := m.sim.SetVariant(m.variant); err != nil {
		m.err = err
	}
	m.sim.SetParams(m.initial)
}

func formatParam(key string, p optics.Params) string {
	switch key {
	case "wavelength":
		return fmt.Sprintf("%.0f nm", p.Wavelength*1e9)
	case "width":
		return fmt.Sprintf("%.1f µm", p.SlitWidth*1e6)
	case "separation":
		return fmt.Sprintf("%.1f µm", p.Separation*1e6)
	case "slits":
		return fmt.Sprintf("%d", p.Slits)
	}
	return fmt.Sprintf("%.2f", p.Amplitude)
}

// View renders the TUI interface.
func (m Model) View() string {
	st := NewStyles(CurrentTheme)
	p := m.sim.Params()
	nm := p.Wavelength * 1e9

	canvasView := st.Canvas.Render(m.canvas.Render())
	var s strings.Builder
	s.WriteString(st.Header.Render(strings.ToUpper(m.bench)+"  "+m.sim.Variant().String()) + "\n")

	if m.running {
		s.WriteString(st.Running.Render("RUNNING"))
	} else {
		s.WriteString(st.Paused.Render("PAUSED"))
	}
	s.WriteString("\n\n")

	_, profile := m.sim.Profile(profileLen)
	chart := asciigraph.Plot(profile,
		asciigraph.Height(5),
		asciigraph.Width(profileLen),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(1),
		asciigraph.Caption("I(y) on screen"))
	s.WriteString(st.Graph.Render(chart) + "\n")
	s.WriteString(ScreenStrip(profile, spectrum.RGB(nm)) + "\n\n")

	y, i := m.sim.Readout()
	stats := m.sim.CacheStats()
	row := func(label, value string) {
		s.WriteString(st.Label.Render(label) + st.Value.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs", m.sim.Time()))
	row("Pointer", fmt.Sprintf("%+.2f mm", y*1e3))
	row("Intensity", fmt.Sprintf("%.3f", i))
	row("Colour", Swatch(spectrum.RGB(nm), 4)+" "+spectrum.Hex(spectrum.RGB(nm)))
	row("Cache", fmt.Sprintf("%d hit / %d miss", stats.Hits, stats.Misses))
	row("Envelope", onOff(m.sim.Envelope()))
	row("Boost", onOff(m.sim.Options().Boost > 1))

	s.WriteString("\nPARAMETERS\n")
	cur, initial := p.Get(), m.initial.Get()
	for k, key := range m.paramKeys {
		ratio := 0.5
		if initial[key] != 0 {
			ratio = cur[key] / (2 * initial[key])
		}
		line := fmt.Sprintf("%-10s %s %s", key, Bar(ratio, 10), formatParam(key, p))
		if k == m.selected {
			s.WriteString(st.Active.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + st.Muted.Render(line) + "\n")
		}
	}
	if m.err != nil {
		s.WriteString("\n" + st.Paused.Render(m.err.Error()) + "\n")
	}
	s.WriteString(st.Help.Render(Separator(30) + "\nSP:Pause R:Reset Q:Quit\nTab:Param ↑↓:Tune V:Variant\nE:Envelope B:Boost T:Theme ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.Stats.Render(s.String()))
	if m.showHelp {
		return helpText + "\n" + mainView
	}
	return mainView
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  R        - Reset parameters         ║
║  Q        - Quit                     ║
║  Tab      - Cycle parameters         ║
║  Up/K     - Increase parameter (+5%) ║
║  Down/J   - Decrease parameter (-5%) ║
║  V        - Next experiment          ║
║  E        - Toggle envelope curve    ║
║  B        - Toggle contrast boost    ║
║  T        - Cycle themes             ║
║  Mouse    - Drag screen and pointer  ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
`
