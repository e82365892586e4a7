// Package experiment names the benches the lab ships and runs them
// headlessly for a fixed number of frames.
package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/wavelab/internal/memo"
	"github.com/san-kum/wavelab/internal/metrics"
	"github.com/san-kum/wavelab/internal/optics"
	"github.com/san-kum/wavelab/internal/sim"
	"github.com/san-kum/wavelab/internal/surface"
)

type Config struct {
	Options sim.Options
	Width   int
	Height  int
	Frames  int
	Samples int
	Metrics []metrics.Metric
}

type Result struct {
	Variant   optics.Variant
	Params    optics.Params
	Frames    int
	Time      float64
	ReadoutY  float64
	ReadoutI  float64
	Distance  float64
	Positions []float64
	Profile   []float64
	Cache     memo.Stats
	Metrics   map[string]float64
}

type Experiment struct {
	cfg Config
	sim *sim.Simulation
}

func New(cfg Config) *Experiment {
	if cfg.Width <= 0 {
		cfg.Width = 800
	}
	if cfg.Height <= 0 {
		cfg.Height = 400
	}
	if cfg.Samples < 2 {
		cfg.Samples = 200
	}
	return &Experiment{cfg: cfg}
}

// Setup builds the simulation on dst, or on an off-screen recorder sized
// from the config when dst is nil.
func (e *Experiment) Setup(dst surface.Surface) error {
	if dst == nil {
		dst = surface.NewRecorder(e.cfg.Width, e.cfg.Height)
	}
	s, err := sim.New(dst, e.cfg.Options)
	if err != nil {
		return fmt.Errorf("setup: %w", err)
	}
	for _, m := range e.cfg.Metrics {
		m.Reset()
		s.AddObserver(m)
	}
	e.sim = s
	return nil
}

func (e *Experiment) Simulation() *sim.Simulation { return e.sim }

// Run advances the simulation cfg.Frames times and samples the screen.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.sim == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	for i := 0; i < e.cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			return e.result(), ctx.Err()
		default:
		}
		e.sim.Update()
	}
	return e.result(), nil
}

func (e *Experiment) result() *Result {
	ys, is := e.sim.Profile(e.cfg.Samples)
	y, i := e.sim.Readout()
	return &Result{
		Variant:   e.sim.Variant(),
		Params:    e.sim.Params(),
		Frames:    e.sim.Frame(),
		Time:      e.sim.Time(),
		ReadoutY:  y,
		ReadoutI:  i,
		Distance:  e.sim.ScreenDistance(),
		Positions: ys,
		Profile:   is,
		Cache:     e.sim.CacheStats(),
		Metrics:   metrics.Collect(e.cfg.Metrics),
	}
}
