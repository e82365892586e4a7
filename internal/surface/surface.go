// Package surface defines the 2D drawing surface the simulations render to.
//
// A [Surface] exposes device-pixel dimensions and a small set of primitives:
// filled rectangles, lines, polylines, arcs, text, an alpha channel with
// save/restore, and sub-region clearing. Backends:
//
//   - [Raster]: software rasterizer over an *image.RGBA
//   - [Recorder]: records operations, for tests and headless counting
//   - viz.Canvas, gui.Surface, desktop.Surface: terminal and window hosts
package surface

import "image/color"

type Point struct {
	X, Y float64
}

type Surface interface {
	Size() (w, h int)

	Save()
	Restore()
	SetAlpha(a float64)
	Alpha() float64

	FillRect(x, y, w, h float64, c color.RGBA)
	ClearRect(x, y, w, h float64)
	Line(x0, y0, x1, y1, width float64, c color.RGBA)
	Polyline(pts []Point, width float64, c color.RGBA)
	Circle(cx, cy, r float64, fill bool, c color.RGBA)
	Text(x, y float64, s string, c color.RGBA)
}

// AlphaStack implements the alpha part of Save/Restore for backends.
type AlphaStack struct {
	alpha float64
	saved []float64
	init  bool
}

func (a *AlphaStack) Alpha() float64 {
	if !a.init {
		return 1
	}
	return a.alpha
}

func (a *AlphaStack) SetAlpha(v float64) {
	switch {
	case v != v, v < 0:
		v = 0
	case v > 1:
		v = 1
	}
	a.alpha, a.init = v, true
}

func (a *AlphaStack) Save() {
	a.saved = append(a.saved, a.Alpha())
}

func (a *AlphaStack) Restore() {
	n := len(a.saved)
	if n == 0 {
		return
	}
	a.alpha, a.init = a.saved[n-1], true
	a.saved = a.saved[:n-1]
}

// Apply scales c's alpha by the current global alpha.
func (a *AlphaStack) Apply(c color.RGBA) color.RGBA {
	c.A = uint8(float64(c.A)*a.Alpha() + 0.5)
	return c
}
