// Package scene holds the draggable primitives of an optics bench: the slit,
// the observation screen, the pointer that reads intensity off the screen,
// and point sources for two-source interference.
//
// Positions are in canvas pixels. Every positional mutation goes through a
// clamping setter so drag bounds hold no matter who moves the primitive.
package scene

import (
	"fmt"
	"image/color"
	"math"

	"github.com/san-kum/wavelab/internal/surface"
)

var (
	ColBg     = color.RGBA{R: 10, G: 10, B: 10, A: 255}
	ColSlit   = color.RGBA{R: 180, G: 180, B: 180, A: 255}
	ColHandle = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	ColText   = color.RGBA{R: 140, G: 140, B: 140, A: 255}
	ColGrid   = color.RGBA{R: 40, G: 40, B: 40, A: 255}
)

// Bounds is a closed interval.
type Bounds struct {
	Min, Max float64
}

func (b Bounds) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return b.Min
	}
	return math.Max(b.Min, math.Min(b.Max, v))
}

func (b Bounds) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

func inCircle(px, py, cx, cy, r float64) bool {
	dx, dy := px-cx, py-cy
	return dx*dx+dy*dy <= r*r
}

// Slit is the aperture plate. It is not draggable.
type Slit struct {
	X, Y    float64
	Height  float64
	Count   int
	WidthPx float64
	GapPx   float64
}

// Openings returns the vertical centres of the slit apertures.
func (s *Slit) Openings() []float64 {
	n := s.Count
	if n < 1 {
		n = 1
	}
	pitch := s.WidthPx + s.GapPx
	first := s.Y - pitch*float64(n-1)/2
	out := make([]float64, n)
	for i := range out {
		out[i] = first + pitch*float64(i)
	}
	return out
}

func (s *Slit) Draw(dst surface.Surface) {
	top, bottom := s.Y-s.Height/2, s.Y+s.Height/2
	openings := s.Openings()
	y := top
	for _, c := range openings {
		gapTop := c - s.WidthPx/2
		if gapTop > y {
			dst.FillRect(s.X-2, y, 4, gapTop-y, ColSlit)
		}
		y = c + s.WidthPx/2
	}
	if bottom > y {
		dst.FillRect(s.X-2, y, 4, bottom-y, ColSlit)
	}
}

// Screen is the vertical observation bar, draggable along x.
type Screen struct {
	X       float64
	Top     float64
	Bottom  float64
	Width   float64
	XBounds Bounds
}

// SetX moves the screen, clamped to its bounds, and reports whether it moved.
func (s *Screen) SetX(x float64) bool {
	nx := s.XBounds.Clamp(x)
	moved := nx != s.X
	s.X = nx
	return moved
}

// Hit reports whether (x, y) grabs the screen. The grab area is wider than
// the bar so it can be caught with a finger.
func (s *Screen) Hit(x, y float64) bool {
	const margin = 6
	return x >= s.X-s.Width/2-margin && x <= s.X+s.Width/2+margin &&
		y >= s.Top && y <= s.Bottom
}

func (s *Screen) Height() float64 { return s.Bottom - s.Top }

// Pointer is the round handle riding on the screen; it moves along y.
type Pointer struct {
	X, Y    float64
	Radius  float64
	YBounds Bounds
}

func (p *Pointer) SetY(y float64) bool {
	ny := p.YBounds.Clamp(y)
	moved := ny != p.Y
	p.Y = ny
	return moved
}

func (p *Pointer) Hit(x, y float64) bool {
	return inCircle(x, y, p.X, p.Y, p.Radius)
}

// Draw renders the handle and a readout label.
func (p *Pointer) Draw(dst surface.Surface, label string) {
	dst.Circle(p.X, p.Y, p.Radius, false, ColHandle)
	dst.Circle(p.X, p.Y, 2, true, ColHandle)
	if label != "" {
		dst.Text(p.X+p.Radius+4, p.Y-p.Radius, label, ColText)
	}
}

// Source is a point emitter for the two-source experiment.
type Source struct {
	X, Y    float64
	Radius  float64
	XBounds Bounds
	YBounds Bounds
}

func (s *Source) SetPos(x, y float64) bool {
	nx, ny := s.XBounds.Clamp(x), s.YBounds.Clamp(y)
	moved := nx != s.X || ny != s.Y
	s.X, s.Y = nx, ny
	return moved
}

func (s *Source) Hit(x, y float64) bool {
	return inCircle(x, y, s.X, s.Y, s.Radius)
}

func (s *Source) Draw(dst surface.Surface, c color.RGBA) {
	dst.Circle(s.X, s.Y, s.Radius, true, c)
	dst.Circle(s.X, s.Y, s.Radius, false, ColHandle)
}

func (s Source) String() string {
	return fmt.Sprintf("(%.0f, %.0f)", s.X, s.Y)
}
