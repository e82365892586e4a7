package viz

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/wavelab/internal/optics"
	"github.com/san-kum/wavelab/internal/sim"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	m, err := NewModel(sim.DefaultOptions(), 60, 20, "double")
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModel_TickAdvances(t *testing.T) {
	m := newTestModel(t)
	m = send(m, TickMsg{})
	m = send(m, TickMsg{})
	if got := m.Simulation().Frame(); got != 2 {
		t.Errorf("frame = %d, want 2", got)
	}

	m = send(m, key(" "))
	if m.Running() {
		t.Fatal("space should pause")
	}
	m = send(m, TickMsg{})
	if got := m.Simulation().Frame(); got != 2 {
		t.Errorf("paused frame = %d, want 2", got)
	}
}

func TestModel_TuneParameter(t *testing.T) {
	m := newTestModel(t)
	if m.Selected() != "amplitude" {
		t.Fatalf("selected = %q, want amplitude", m.Selected())
	}

	// amplitude, separation, slits
	m = send(m, key("tab"))
	m = send(m, key("tab"))
	if m.Selected() != "slits" {
		t.Fatalf("selected = %q, want slits", m.Selected())
	}
	before := m.Simulation().Params()
	m = send(m, key("up"))
	if got := m.Simulation().Params().Slits; got != before.Slits+1 {
		t.Errorf("slits = %d, want %d", got, before.Slits+1)
	}

	m = send(m, key("tab"))
	m = send(m, key("down"))
	if got := m.Simulation().Params().Wavelength; got >= before.Wavelength {
		t.Errorf("wavelength = %v, want < %v", got, before.Wavelength)
	}

	m = send(m, key("r"))
	if got := m.Simulation().Params(); got != before {
		t.Errorf("reset params = %+v, want %+v", got, before)
	}
}

func TestModel_Toggles(t *testing.T) {
	m := newTestModel(t)
	m = send(m, key("e"))
	if !m.Simulation().Envelope() {
		t.Error("e should enable the envelope")
	}
	m = send(m, key("b"))
	if m.Simulation().Options().Boost != boostFactor {
		t.Errorf("boost = %v", m.Simulation().Options().Boost)
	}
	m = send(m, key("b"))
	if m.Simulation().Options().Boost > 1 {
		t.Error("second b should disable the boost")
	}
	m = send(m, key("v"))
	if m.Simulation().Variant() != optics.VariantNSlit {
		t.Errorf("variant = %v, want nslit", m.Simulation().Variant())
	}
}

func TestModel_MouseDragsScreen(t *testing.T) {
	m := newTestModel(t)
	l := m.Simulation().Layout()
	startX := l.Screen.X

	// Cell under the screen, well above the pointer.
	cellX := int(startX)/2 + canvasPadX
	cellY := canvasPadY + 1
	m = send(m, tea.MouseMsg{X: cellX, Y: cellY, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = send(m, tea.MouseMsg{X: cellX - 5, Y: cellY, Action: tea.MouseActionMotion})
	m = send(m, tea.MouseMsg{X: cellX - 5, Y: cellY, Action: tea.MouseActionRelease})

	if l.Screen.X >= startX {
		t.Errorf("screen x = %v, want < %v", l.Screen.X, startX)
	}
	if m.input.Captured() != "" {
		t.Error("release should drop the capture")
	}
}

func TestModel_Resize(t *testing.T) {
	m := newTestModel(t)
	m = send(m, tea.WindowSizeMsg{Width: 160, Height: 42})
	cols := 160 - statsWidth - 2*canvasPadX - 2
	if m.Canvas().Width != cols || m.Canvas().Height != 40 {
		t.Errorf("canvas = %dx%d", m.Canvas().Width, m.Canvas().Height)
	}
	if w, _ := m.Simulation().Size(); w != cols*2 {
		t.Errorf("sim width = %d, want %d", w, cols*2)
	}

	// Too small a terminal keeps the old size.
	m = send(m, tea.WindowSizeMsg{Width: 30, Height: 5})
	if m.Canvas().Width != cols {
		t.Error("tiny terminal should not resize the canvas")
	}
}

func TestModel_View(t *testing.T) {
	m := newTestModel(t)
	m = send(m, TickMsg{})
	if v := m.View(); v == "" {
		t.Error("empty view")
	}
}
