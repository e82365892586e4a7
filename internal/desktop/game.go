// Package desktop hosts the optics bench in an ebiten window, with mouse
// and single-finger touch dragging. It runs one bench at a fixed 60 ticks
// per second.
package desktop

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/san-kum/wavelab/internal/interact"
	"github.com/san-kum/wavelab/internal/loop"
	"github.com/san-kum/wavelab/internal/optics"
	"github.com/san-kum/wavelab/internal/sim"
)

const (
	benchTarget = "bench"
	hudHeight   = 20
)

var background = color.RGBA{R: 8, G: 8, B: 12, A: 255}

var variantCycle = []optics.Variant{
	optics.VariantSingleSlit,
	optics.VariantDoubleSlit,
	optics.VariantNSlit,
	optics.VariantTwoSource,
}

type Game struct {
	sim     *sim.Simulation
	field   *Surface
	input   *interact.Registry
	pointer tracker
	touchID ebiten.TouchID
	touched bool
	paused  bool
	w, h    int
	err     error
}

var _ ebiten.Game = (*Game)(nil)

func NewGame(opts sim.Options, w, h int) (*Game, error) {
	field := NewSurface(w, h-hudHeight, background)
	s, err := sim.New(field, opts)
	if err != nil {
		return nil, err
	}
	input := interact.NewRegistry()
	if err := input.Add(benchTarget, s); err != nil {
		return nil, err
	}
	return &Game{
		sim:     s,
		field:   field,
		input:   input,
		pointer: tracker{target: benchTarget},
		w:       w,
		h:       h,
	}, nil
}

// Run opens a resizable window of w x h and blocks until it closes.
func Run(opts sim.Options, w, h int) error {
	g, err := NewGame(opts, w, h)
	if err != nil {
		return err
	}
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("wavelab")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(loop.DefaultFPS)
	return ebiten.RunGame(g)
}

func (g *Game) Simulation() *sim.Simulation { return g.sim }

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.handleKeys()
	g.handlePointer()
	if !g.paused || g.sim.State() == sim.DirtyFull {
		g.sim.Update()
	}
	return nil
}

func (g *Game) handleKeys() {
	s := g.sim
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.paused = !g.paused
	case inpututil.IsKeyJustPressed(ebiten.KeyE):
		s.SetEnvelope(!s.Envelope())
	case inpututil.IsKeyJustPressed(ebiten.KeyV):
		g.err = s.SetVariant(next(s.Variant()))
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		s.SetWavelength(s.Params().Wavelength + 10e-9)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		s.SetWavelength(s.Params().Wavelength - 10e-9)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		s.SetSlitCount(s.Params().Slits + 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		s.SetSlitCount(s.Params().Slits - 1)
	}
}

// handlePointer feeds the first touch when one is down, otherwise the
// mouse.
func (g *Game) handlePointer() {
	smp, ok := g.touchSample()
	if !ok {
		x, y := ebiten.CursorPosition()
		smp = sample{
			X:            x,
			Y:            y,
			JustPressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
			Pressed:      ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
			JustReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
		}
	}
	e, ok := g.pointer.event(smp)
	if !ok {
		return
	}
	if _, err := g.input.Dispatch(e); err != nil {
		g.err = err
	}
}

func (g *Game) touchSample() (sample, bool) {
	ids := ebiten.AppendTouchIDs(nil)
	if !g.touched {
		pressed := inpututil.AppendJustPressedTouchIDs(nil)
		if len(pressed) == 0 {
			return sample{}, false
		}
		g.touchID, g.touched = pressed[0], true
		x, y := ebiten.TouchPosition(g.touchID)
		return sample{X: x, Y: y, JustPressed: true, Pressed: true, Touches: len(ids)}, true
	}
	if inpututil.IsTouchJustReleased(g.touchID) {
		g.touched = false
		x, y := inpututil.TouchPositionInPreviousTick(g.touchID)
		return sample{X: x, Y: y, JustReleased: true}, true
	}
	x, y := ebiten.TouchPosition(g.touchID)
	return sample{X: x, Y: y, Pressed: true, Touches: len(ids)}, true
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	screen.DrawImage(g.field.Img, nil)

	p := g.sim.Params()
	y, i := g.sim.Readout()
	status := "running"
	if g.paused {
		status = "paused"
	}
	hud := fmt.Sprintf("%s %s  λ=%.0fnm N=%d  y=%+.2fmm I=%.3f  %.0f TPS",
		g.sim.Variant(), status, p.Wavelength*1e9, p.Slits, y*1e3, i, ebiten.ActualTPS())
	if g.err != nil {
		hud = g.err.Error()
	}
	_, fh := g.field.Size()
	ebitenutil.DebugPrintAt(screen, hud, 4, fh+2)
}

// Layout keeps the logical screen equal to the window and resizes the
// bench when the window changes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.w || outsideHeight != g.h {
		g.w, g.h = outsideWidth, outsideHeight
		fh := max(g.h-hudHeight, 1)
		g.field.Resize(g.w, fh)
		g.input.ResizeAll(g.w, fh)
	}
	return g.w, g.h
}

func next(v optics.Variant) optics.Variant {
	for i, c := range variantCycle {
		if c == v {
			return variantCycle[(i+1)%len(variantCycle)]
		}
	}
	return variantCycle[0]
}
