package export

import (
	"fmt"
	"image/png"
	"io"

	"github.com/san-kum/wavelab/internal/loop"
	"github.com/san-kum/wavelab/internal/scene"
	"github.com/san-kum/wavelab/internal/sim"
	"github.com/san-kum/wavelab/internal/surface"
)

// Snapshot renders frames headless frames of a fresh simulation onto a
// raster and returns both. frames < 1 renders one.
func Snapshot(opts sim.Options, width, height, frames int) (*sim.Simulation, *surface.Raster, error) {
	r := surface.NewRaster(width, height, scene.ColBg)
	s, err := sim.New(r, opts)
	if err != nil {
		return nil, nil, err
	}
	if frames < 1 {
		frames = 1
	}
	loop.Steps(frames, s.Update)
	return s, r, nil
}

// WritePNG encodes the raster's current contents.
func WritePNG(w io.Writer, r *surface.Raster) error {
	if err := png.Encode(w, r.Image()); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
