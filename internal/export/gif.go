package export

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"

	"github.com/san-kum/wavelab/internal/loop"
	"github.com/san-kum/wavelab/internal/scene"
	"github.com/san-kum/wavelab/internal/sim"
	"github.com/san-kum/wavelab/internal/surface"
)

// GIFRecorder captures every Nth frame of a simulation drawing onto a
// raster. Attach it with sim.AddObserver.
type GIFRecorder struct {
	src   *surface.Raster
	every int
	delay int
	anim  gif.GIF
}

// NewGIFRecorder records src every `every` frames. delay is in 1/100 s.
func NewGIFRecorder(src *surface.Raster, every, delay int) *GIFRecorder {
	if every < 1 {
		every = 1
	}
	if delay < 1 {
		delay = 2
	}
	return &GIFRecorder{src: src, every: every, delay: delay}
}

func (g *GIFRecorder) OnFrame(s *sim.Simulation) {
	if s.Frame()%g.every != 0 {
		return
	}
	b := g.src.Img.Bounds()
	frame := image.NewPaletted(b, palette.Plan9)
	draw.Draw(frame, b, g.src.Img, b.Min, draw.Src)
	g.anim.Image = append(g.anim.Image, frame)
	g.anim.Delay = append(g.anim.Delay, g.delay)
}

func (g *GIFRecorder) Frames() int { return len(g.anim.Image) }

func (g *GIFRecorder) Encode(w io.Writer) error {
	if len(g.anim.Image) == 0 {
		return fmt.Errorf("no frames recorded")
	}
	if err := gif.EncodeAll(w, &g.anim); err != nil {
		return fmt.Errorf("encode gif: %w", err)
	}
	return nil
}

// Record renders frames headless frames of a fresh simulation and returns
// the recording.
func Record(opts sim.Options, width, height, frames, every int) (*GIFRecorder, error) {
	r := surface.NewRaster(width, height, scene.ColBg)
	s, err := sim.New(r, opts)
	if err != nil {
		return nil, err
	}
	rec := NewGIFRecorder(r, every, 100*every/60)
	s.AddObserver(rec)
	loop.Steps(frames, s.Update)
	return rec, nil
}
