// Package sim runs one interactive optics bench: it owns the wave
// parameters, the bench geometry, the memoized intensity evaluator and the
// incremental render loop, and exposes the setters and pointer entry points
// hosts drive it through.
//
// A Simulation is single-threaded. Hosts call Update once per frame and the
// pointer/setter methods from the same goroutine.
package sim

import (
	"fmt"
	"math"

	"github.com/san-kum/wavelab/internal/memo"
	"github.com/san-kum/wavelab/internal/optics"
	"github.com/san-kum/wavelab/internal/scene"
	"github.com/san-kum/wavelab/internal/surface"
	"github.com/san-kum/wavelab/internal/units"
)

// Dt is the simulated time per frame. It does not track wall time.
const Dt = 1.0 / 60

// RenderState tells Update how much of the surface to redraw.
type RenderState int

const (
	// DirtyFull redraws the static layer and the field.
	DirtyFull RenderState = iota
	// Clean redraws only the animated field.
	Clean
)

func (s RenderState) String() string {
	if s == Clean {
		return "clean"
	}
	return "dirty"
}

type Options struct {
	Variant optics.Variant
	Params  optics.Params

	// SceneWidth is the physical distance (m) spanned by the canvas width;
	// ScreenSpan the physical height (m) spanned by the canvas height.
	SceneWidth float64
	ScreenSpan float64

	// TwoSourceSpan is the isotropic field height (m) used by the
	// two-source bench, where fringes must be resolvable in pixels.
	TwoSourceSpan float64

	Stride   int
	Boost    float64
	Envelope bool

	Logf func(format string, args ...any)
}

func DefaultOptions() Options {
	return Options{
		Variant:       optics.VariantDoubleSlit,
		Params:        optics.DefaultParams(),
		SceneWidth:    2.0,
		ScreenSpan:    0.06,
		TwoSourceSpan: 20e-6,
		Stride:        5,
	}
}

// Observer is notified after every Update, once the surface holds the
// finished frame.
type Observer interface {
	OnFrame(s *Simulation)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(s *Simulation)

func (f ObserverFunc) OnFrame(s *Simulation) { f(s) }

type Simulation struct {
	opts   Options
	model  optics.Model
	params optics.Params
	layout *scene.Layout
	scale  units.Scale
	eval   *memo.Evaluator
	dst    surface.Surface

	observers []Observer

	state RenderState
	t     float64
	frame int
	drag  scene.Handle
}

// New builds a simulation drawing onto dst, sized from the surface.
func New(dst surface.Surface, opts Options) (*Simulation, error) {
	def := DefaultOptions()
	if opts.SceneWidth <= 0 {
		opts.SceneWidth = def.SceneWidth
	}
	if opts.ScreenSpan <= 0 {
		opts.ScreenSpan = def.ScreenSpan
	}
	if opts.TwoSourceSpan <= 0 {
		opts.TwoSourceSpan = def.TwoSourceSpan
	}
	if opts.Stride < 1 {
		opts.Stride = def.Stride
	}

	model, err := optics.NewModel(opts.Variant)
	if err != nil {
		return nil, err
	}

	w, h := dst.Size()
	s := &Simulation{
		opts:   opts,
		model:  model,
		layout: scene.NewLayout(w, h),
		dst:    dst,
		state:  DirtyFull,
	}
	s.eval = memo.New(s.evaluate)
	s.SetParams(opts.Params)
	s.rescale()
	return s, nil
}

// evaluate is the memoized function. Angle variants are keyed by angle in
// radians, the two-source bench by path difference in micrometers.
func (s *Simulation) evaluate(x float64) float64 {
	if s.model.Variant() == optics.VariantTwoSource {
		return optics.PathIntensity(x*1e-6, s.params)
	}
	return s.model.AngleIntensity(x, s.params)
}

func (s *Simulation) rescale() {
	w, h := s.layout.W, s.layout.H
	if s.model.Variant() == optics.VariantTwoSource {
		span := s.opts.TwoSourceSpan
		s.scale = units.New(w, h, span*float64(w)/float64(h), span)
		return
	}
	s.scale = units.New(w, h, s.opts.SceneWidth, s.opts.ScreenSpan)
}

func (s *Simulation) logf(format string, args ...any) {
	if s.opts.Logf != nil {
		s.opts.Logf(format, args...)
	}
}

// MarkDirty forces a full redraw on the next Update.
func (s *Simulation) MarkDirty() { s.state = DirtyFull }

func (s *Simulation) State() RenderState       { return s.state }
func (s *Simulation) Time() float64            { return s.t }
func (s *Simulation) Frame() int               { return s.frame }
func (s *Simulation) Params() optics.Params    { return s.params }
func (s *Simulation) Variant() optics.Variant  { return s.model.Variant() }
func (s *Simulation) Layout() *scene.Layout    { return s.layout }
func (s *Simulation) Scale() units.Scale       { return s.scale }
func (s *Simulation) Envelope() bool           { return s.opts.Envelope }
func (s *Simulation) CacheStats() memo.Stats   { return s.eval.Stats() }
func (s *Simulation) CacheLen() int            { return s.eval.Len() }
func (s *Simulation) Dragging() scene.Handle   { return s.drag }
func (s *Simulation) Surface() surface.Surface { return s.dst }
func (s *Simulation) Model() optics.Model      { return s.model }
func (s *Simulation) Options() Options         { return s.opts }
func (s *Simulation) Size() (w, h int)         { return s.layout.W, s.layout.H }
func (s *Simulation) String() string           { return fmt.Sprintf("%s@%d", s.model.Variant(), s.frame) }

// SetParams replaces every wave parameter at once.
func (s *Simulation) SetParams(p optics.Params) {
	clean, changed := optics.Sanitize(p)
	if changed {
		s.logf("sanitized parameters %+v -> %+v", p, clean)
	}
	s.apply(clean)
}

func (s *Simulation) apply(p optics.Params) {
	old := s.params
	s.params = p
	s.layout.Slit.Count = s.openings(p)
	if old.Wavelength != p.Wavelength || old.SlitWidth != p.SlitWidth ||
		old.Separation != p.Separation || s.openings(old) != s.openings(p) {
		s.eval.Invalidate()
	}
	s.state = DirtyFull
}

// openings is the number of apertures the current model uses. Only the
// grating follows p.Slits.
func (s *Simulation) openings(p optics.Params) int {
	switch s.model.Variant() {
	case optics.VariantSingleSlit:
		return 1
	case optics.VariantDoubleSlit:
		return 2
	}
	return p.Slits
}

func (s *Simulation) set(name string, v float64) {
	p := s.params
	if err := p.Set(name, v); err != nil {
		s.logf("set %s: %v", name, err)
	}
	s.apply(p)
}

func (s *Simulation) SetWavelength(m float64) { s.set("wavelength", m) }
func (s *Simulation) SetSlitWidth(m float64)  { s.set("width", m) }
func (s *Simulation) SetSeparation(m float64) { s.set("separation", m) }
func (s *Simulation) SetSlitCount(n int)      { s.set("slits", float64(n)) }
func (s *Simulation) SetAmplitude(a float64)  { s.set("amplitude", a) }

// SetParam sets a parameter by name. Unknown names return an error and
// leave the simulation untouched; clamped values are applied.
func (s *Simulation) SetParam(name string, v float64) error {
	p := s.params
	err := p.Set(name, v)
	if err != nil && p == s.params {
		return err
	}
	s.apply(p)
	return err
}

// SetEnvelope toggles the envelope overlay on the intensity curve.
func (s *Simulation) SetEnvelope(on bool) {
	if s.opts.Envelope != on {
		s.opts.Envelope = on
		s.state = DirtyFull
	}
}

// SetBoost sets the cosmetic contrast boost applied outside the first
// minimum; values <= 1 disable it.
func (s *Simulation) SetBoost(factor float64) {
	if math.IsNaN(factor) {
		factor = 0
	}
	s.opts.Boost = factor
	s.state = DirtyFull
}

// SetVariant switches the experiment in place, keeping parameters and
// geometry.
func (s *Simulation) SetVariant(v optics.Variant) error {
	model, err := optics.NewModel(v)
	if err != nil {
		return err
	}
	s.model = model
	s.opts.Variant = v
	s.drag = scene.HandleNone
	s.eval.Invalidate()
	s.rescale()
	s.apply(s.params)
	return nil
}

// Resize adapts the bench to a new canvas size. Derived geometry and the
// cache are rebuilt and the next Update redraws everything.
func (s *Simulation) Resize(w, h int) {
	s.layout.Resize(w, h)
	s.rescale()
	s.eval.Invalidate()
	s.drag = scene.HandleNone
	s.state = DirtyFull
}

// Update advances the clock one fixed step and redraws. The static layer is
// redrawn only when dirty; the animated field is redrawn every frame.
func (s *Simulation) Update() {
	s.t += Dt
	s.frame++
	if s.state == DirtyFull {
		s.drawStatic()
		s.state = Clean
	}
	s.drawField()
	for _, o := range s.observers {
		o.OnFrame(s)
	}
}

func (s *Simulation) AddObserver(o Observer) { s.observers = append(s.observers, o) }
