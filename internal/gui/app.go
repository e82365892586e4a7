// Package gui hosts the optics bench in a raylib window: a bench menu, a
// parameter screen and the live simulation with mouse and touch dragging.
package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/wavelab/internal/experiment"
	"github.com/san-kum/wavelab/internal/interact"
	"github.com/san-kum/wavelab/internal/optics"
	"github.com/san-kum/wavelab/internal/sim"
)

// Theme Colors (Monochrome)
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
)

const (
	windowW     = 1280
	windowH     = 720
	hudHeight   = 96
	stripHeight = 24
	benchTarget = "bench"
	fontPath    = "/usr/share/fonts/liberation/LiberationMono-Regular.ttf"
)

type App struct {
	Registry *experiment.Registry
	Benches  []string
	Selected int

	InMenu   bool
	InConfig bool
	Running  bool
	quit     bool

	Bench     string
	Base      sim.Options
	Params    optics.Params
	ParamKeys []string
	ParamSel  int

	Sim   *sim.Simulation
	Field *Surface
	Strip *Surface
	Input *interact.Registry
	Font  rl.Font
	Err   error
}

// initWindow opens a resizable 1280x720 window at 60 FPS with no exit key.
func initWindow() {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(windowW, windowH, "wavelab")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

// loadFont loads Liberation Mono when installed and falls back to the
// built-in raylib font.
func loadFont() rl.Font {
	if !rl.FileExists(fontPath) {
		return rl.GetFontDefault()
	}
	font := rl.LoadFontEx(fontPath, 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// NewApp creates the window state. With interactive set the app starts in
// the bench menu; otherwise base is shown under the label bench and starts
// running immediately.
func NewApp(base sim.Options, bench string, interactive bool) (*App, error) {
	r := experiment.NewRegistry()
	a := &App{
		Registry:  r,
		Benches:   r.List(),
		Base:      base,
		ParamKeys: optics.Names(),
		Font:      loadFont(),
		InMenu:    interactive,
		Input:     interact.NewRegistry(),
	}
	if !interactive {
		if err := a.start(bench, base); err != nil {
			return nil, err
		}
		a.Running = true
	}
	return a, nil
}

// RunInteractive opens the window at the bench menu and blocks until it is
// closed.
func RunInteractive(base sim.Options) error {
	initWindow()
	defer rl.CloseWindow()
	app, err := NewApp(base, "", true)
	if err != nil {
		return err
	}
	defer app.unload()
	app.RunLoop()
	return nil
}

// Run opens the window straight onto a simulation built from opts.
func Run(base sim.Options, bench string) error {
	initWindow()
	defer rl.CloseWindow()
	app, err := NewApp(base, bench, false)
	if err != nil {
		return err
	}
	defer app.unload()
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() && !a.quit {
		a.Update()
		a.Draw()
	}
}

func (a *App) unload() {
	if a.Field != nil {
		a.Field.Unload()
		a.Strip.Unload()
	}
}

// loadBench builds a fresh simulation for a registry bench, replacing the
// variant and parameters of the base options.
func (a *App) loadBench(name string) error {
	b, err := a.Registry.Get(name)
	if err != nil {
		return err
	}
	opts := a.Base
	opts.Variant, opts.Params = b.Variant, b.Params
	return a.start(b.Name, opts)
}

// start attaches a new simulation to the window surfaces under label.
func (a *App) start(label string, opts sim.Options) error {
	fw, fh := fieldSize(rl.GetScreenWidth(), rl.GetScreenHeight())
	if a.Field == nil {
		a.Field = NewSurface(fw, fh, a.Font)
		a.Strip = NewSurface(fw-60, stripHeight, a.Font)
	}
	s, err := sim.New(a.Field, opts)
	if err != nil {
		return err
	}

	a.Input.Remove(benchTarget)
	if err := a.Input.Add(benchTarget, s); err != nil {
		return err
	}
	a.Sim, a.Bench, a.Params = s, label, s.Params()
	a.ParamSel = 0
	return nil
}

func fieldSize(w, h int) (int, int) {
	return max(w, 1), max(h-hudHeight, 1)
}

// resize follows the window size; the simulation rebuilds its geometry and
// cache through the input registry.
func (a *App) resize() {
	fw, fh := fieldSize(rl.GetScreenWidth(), rl.GetScreenHeight())
	a.Field.Resize(fw, fh)
	a.Strip.Resize(fw-60, stripHeight)
	a.Input.ResizeAll(fw, fh)
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) {
		a.quit = true
		return
	}

	if a.InMenu {
		a.updateMenu()
		return
	}
	if a.InConfig {
		a.updateConfig()
		return
	}

	if rl.IsKeyPressed(rl.KeyEscape) {
		a.InMenu, a.Running = true, false
		return
	}
	if rl.IsWindowResized() && a.Field != nil {
		a.resize()
	}
	a.handleKeys()
	a.handlePointer()
	a.step()
}

func (a *App) updateMenu() {
	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ) {
		a.Selected++
	}
	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK) {
		a.Selected--
	}
	a.Selected = wrap(a.Selected, len(a.Benches))

	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeySpace) {
		if a.Err = a.loadBench(a.Benches[a.Selected]); a.Err == nil {
			a.InMenu, a.InConfig, a.Running = false, true, false
		}
	}
}

func (a *App) updateConfig() {
	if rl.IsKeyPressed(rl.KeyEscape) {
		a.InMenu, a.InConfig = true, false
		return
	}
	if rl.IsKeyPressed(rl.KeyEnter) {
		a.Sim.SetParams(a.Params)
		a.Params = a.Sim.Params()
		a.InConfig, a.Running = false, true
		return
	}

	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ) {
		a.ParamSel++
	}
	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK) {
		a.ParamSel--
	}
	a.ParamSel = wrap(a.ParamSel, len(a.ParamKeys))

	dir := 0
	if rl.IsKeyPressed(rl.KeyRight) || rl.IsKeyPressed(rl.KeyL) {
		dir = 1
	}
	if rl.IsKeyPressed(rl.KeyLeft) || rl.IsKeyPressed(rl.KeyH) {
		dir = -1
	}
	if dir != 0 {
		coarse := rl.IsKeyDown(rl.KeyLeftShift)
		a.Params, a.Err = nudge(a.Params, a.ParamKeys[a.ParamSel], dir, coarse)
	}
}

func (a *App) handleKeys() {
	s := a.Sim
	switch {
	case rl.IsKeyPressed(rl.KeySpace):
		a.Running = !a.Running
	case rl.IsKeyPressed(rl.KeyR):
		s.SetParams(a.Params)
	case rl.IsKeyPressed(rl.KeyTab):
		a.ParamSel = wrap(a.ParamSel+1, len(a.ParamKeys))
	case rl.IsKeyPressed(rl.KeyUp), rl.IsKeyPressed(rl.KeyDown):
		dir := 1
		if rl.IsKeyPressed(rl.KeyDown) {
			dir = -1
		}
		var p optics.Params
		p, a.Err = nudge(s.Params(), a.ParamKeys[a.ParamSel], dir, rl.IsKeyDown(rl.KeyLeftShift))
		s.SetParams(p)
	case rl.IsKeyPressed(rl.KeyE):
		s.SetEnvelope(!s.Envelope())
	case rl.IsKeyPressed(rl.KeyB):
		if s.Options().Boost > 1 {
			s.SetBoost(0)
		} else {
			s.SetBoost(boostFactor)
		}
	case rl.IsKeyPressed(rl.KeyV):
		a.Err = s.SetVariant(nextVariant(s.Variant()))
	}
}

func (a *App) handlePointer() {
	pos := rl.GetMousePosition()
	b := buttons{
		pressed:  rl.IsMouseButtonPressed(rl.MouseLeftButton),
		down:     rl.IsMouseButtonDown(rl.MouseLeftButton),
		released: rl.IsMouseButtonReleased(rl.MouseLeftButton),
	}
	touches := int(rl.GetTouchPointCount())
	if touches > 0 {
		pos = rl.GetTouchPosition(0)
	}
	e, ok := pointerEvent(b, pos.X, pos.Y, touches)
	if !ok {
		return
	}
	if _, err := a.Input.Dispatch(e); err != nil {
		a.Err = err
	}
}

// step advances the simulation into the field texture and refreshes the
// screen view strip. A paused bench still redraws after a drag.
func (a *App) step() {
	if !a.Running && a.Sim.State() == sim.Clean {
		return
	}
	a.Field.Begin()
	a.Sim.Update()
	a.Field.End()

	a.Strip.Begin()
	a.Sim.RenderScreenView(a.Strip)
	a.Strip.End()
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	if a.InMenu {
		a.drawMenu()
	} else if a.InConfig {
		a.drawConfig()
	} else {
		a.Field.Blit(0, 0)
		a.DrawHUD()
	}

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	_, fh := a.Field.Size()
	top := fh + 8

	a.drawText("wavelab", 30, top, 20, ColSelect)
	a.drawText(fmt.Sprintf(":: %s  %s", a.Bench, a.Sim.Variant()), 130, top+4, 14, ColText)
	a.Strip.Blit(30, float32(top+30))

	status, col := "RUNNING", ColSelect
	if !a.Running {
		status, col = "PAUSED", ColTextDim
	}
	sw := rl.GetScreenWidth()
	a.drawText(status, sw-130, top, 16, col)

	p := a.Sim.Params()
	y, i := a.Sim.Readout()
	a.drawText(fmt.Sprintf("λ %.0f nm  w %.1f µm  s %.1f µm  N %d   y %+.2f mm  I %.3f",
		p.Wavelength*1e9, p.SlitWidth*1e6, p.Separation*1e6, p.Slits, y*1e3, i), 30, top+60, 14, ColAccent)
	a.drawText(fmt.Sprintf("> %s", a.ParamKeys[a.ParamSel]), sw-330, top+30, 14, ColText)
	a.drawText("[SPACE] PAUSE [TAB/↑↓] TUNE [E] ENV [B] BOOST [V] VARIANT [ESC] MENU", sw-700, top+60, 12, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", rl.GetFPS()), sw-130, top+30, 14, ColTextDim)
	if a.Err != nil {
		a.drawText(a.Err.Error(), sw-700, top+4, 14, rl.Red)
	}
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

func (a *App) drawMenu() {
	a.drawText("wavelab", 50, 50, 40, ColSelect)
	a.drawText("Select Bench", 50, 100, 16, ColTextDim)

	y := 160
	for i, name := range a.Benches {
		desc := ""
		if b, err := a.Registry.Get(name); err == nil {
			desc = b.Description
		}
		if i == a.Selected {
			a.drawText(fmt.Sprintf("> %-12s %s", name, desc), 50, y, 20, ColSelect)
		} else {
			a.drawText(fmt.Sprintf("  %-12s %s", name, desc), 50, y, 20, ColText)
		}
		y += 28
	}
	if a.Err != nil {
		a.drawText(a.Err.Error(), 50, y+20, 16, rl.Red)
	}

	a.drawText("ARROWS: NAVIGATE  ENTER: SELECT  Q: QUIT", rl.GetScreenWidth()-430, rl.GetScreenHeight()-40, 14, ColTextDim)
}

func (a *App) drawConfig() {
	a.drawText("wavelab", 50, 50, 40, ColTextDim)
	a.drawText("configure", 240, 65, 20, ColSelect)
	a.drawText(fmt.Sprintf("Bench: %s", a.Bench), 50, 110, 16, ColAccent)

	vals := a.Params.Get()
	y := 180
	for i, key := range a.ParamKeys {
		line := fmt.Sprintf("%-12s %s", key, formatValue(key, vals[key]))
		if i == a.ParamSel {
			a.drawText("> "+line, 50, y, 20, ColSelect)
		} else {
			a.drawText("  "+line, 50, y, 20, ColText)
		}
		y += 28
	}

	a.drawText("ARROWS: ADJUST  SHIFT: COARSE  ENTER: RUN  ESC: BACK", rl.GetScreenWidth()-520, rl.GetScreenHeight()-40, 14, ColTextDim)
}
