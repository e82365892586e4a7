package sim

import (
	"fmt"
	"image/color"
	"math"

	"github.com/san-kum/wavelab/internal/fastmath"
	"github.com/san-kum/wavelab/internal/optics"
	"github.com/san-kum/wavelab/internal/scene"
	"github.com/san-kum/wavelab/internal/spectrum"
	"github.com/san-kum/wavelab/internal/surface"
)

const (
	// shimmerWavePx and shimmerHz shape the cosmetic travelling-wave colour.
	shimmerWavePx = 20.0
	shimmerHz     = 1.0

	curveMargin = 4.0
	minAlpha    = 1.0 / 255
)

// AngleAt returns the diffraction angle from the slit centre to the canvas
// point (px, py).
func (s *Simulation) AngleAt(px, py float64) float64 {
	slit := s.layout.Slit
	l := s.scale.XToMeters(px - slit.X)
	y := s.scale.YToMeters(py - slit.Y)
	return math.Atan2(y, l)
}

// IntensityAt returns the physical intensity at a canvas point, before the
// amplitude and any cosmetic boost are applied.
func (s *Simulation) IntensityAt(px, py float64) float64 {
	if s.model.Variant() == optics.VariantTwoSource {
		pt := s.toMeters(px, py)
		s0 := s.toMeters(s.layout.Sources[0].X, s.layout.Sources[0].Y)
		s1 := s.toMeters(s.layout.Sources[1].X, s.layout.Sources[1].Y)
		return s.eval.At((pt.Dist(s0) - pt.Dist(s1)) * 1e6)
	}
	return s.eval.At(s.AngleAt(px, py))
}

func (s *Simulation) toMeters(px, py float64) optics.Point {
	return optics.Point{X: s.scale.XToMeters(px), Y: s.scale.YToMeters(py)}
}

// alphaAt is the opacity drawn for a canvas point.
func (s *Simulation) alphaAt(px, py float64) float64 {
	i := s.IntensityAt(px, py)
	if s.model.Variant().AngleBased() {
		i = optics.Boost(i, s.AngleAt(px, py), s.params, s.opts.Boost)
	}
	return optics.Clamp01(s.params.Amplitude * i)
}

// ScreenDistance is the slit-to-screen distance in meters.
func (s *Simulation) ScreenDistance() float64 {
	return s.scale.XToMeters(s.layout.Screen.X - s.layout.Slit.X)
}

// ScreenIntensity returns the intensity on the screen at canvas row py.
func (s *Simulation) ScreenIntensity(py float64) float64 {
	return s.IntensityAt(s.layout.Screen.X, py)
}

// Readout returns the pointer position on the screen (meters from the axis)
// and the intensity there.
func (s *Simulation) Readout() (y, intensity float64) {
	p := s.layout.Pointer
	return s.scale.YToMeters(p.Y - s.layout.Slit.Y), s.ScreenIntensity(p.Y)
}

// Profile samples n intensities evenly down the screen, returning positions
// in meters relative to the optical axis.
func (s *Simulation) Profile(n int) (ys, is []float64) {
	if n < 2 {
		n = 2
	}
	ys = make([]float64, n)
	is = make([]float64, n)
	h := float64(s.layout.H)
	for k := 0; k < n; k++ {
		py := h * float64(k) / float64(n-1)
		ys[k] = s.scale.YToMeters(py - s.layout.Slit.Y)
		is[k] = s.ScreenIntensity(py)
	}
	return ys, is
}

func (s *Simulation) lightColor() (color.RGBA, bool) {
	nm := s.params.Wavelength * 1e9
	return spectrum.RGB(nm), spectrum.Visible(nm)
}

// fieldRegion is the part of the canvas cleared and stippled every frame.
func (s *Simulation) fieldRegion() (x0, x1 float64) {
	x1 = s.layout.Screen.X - s.layout.Screen.Width/2
	if s.model.Variant() == optics.VariantTwoSource {
		return 0, x1
	}
	return s.layout.Slit.X + 3, x1
}

func (s *Simulation) drawStatic() {
	dst := s.dst
	w, h := float64(s.layout.W), float64(s.layout.H)
	base, visible := s.lightColor()

	dst.ClearRect(0, 0, w, h)
	dst.Line(0, s.layout.Slit.Y, w, s.layout.Slit.Y, 1, scene.ColGrid)

	if s.model.Variant() == optics.VariantTwoSource {
		for i := range s.layout.Sources {
			s.layout.Sources[i].Draw(dst, base)
		}
	} else {
		s.layout.Slit.Draw(dst)
	}

	scr := s.layout.Screen
	dst.Save()
	for py := 0.0; py < h; py++ {
		a := 0.0
		if visible {
			a = s.alphaAt(scr.X, py)
		}
		dst.SetAlpha(1)
		dst.FillRect(scr.X-scr.Width/2, py, scr.Width, 1, scene.ColGrid)
		if a >= minAlpha {
			dst.SetAlpha(a)
			dst.FillRect(scr.X-scr.Width/2, py, scr.Width, 1, base)
		}
	}
	dst.Restore()

	s.drawCurve(base, visible)

	y, i := s.Readout()
	s.layout.Pointer.Draw(dst, fmt.Sprintf("y=%+.2fmm I=%.3f", y*1e3, i))
}

// drawCurve plots intensity against screen position to the right of the
// screen, with the single-slit envelope overlaid when enabled.
func (s *Simulation) drawCurve(base color.RGBA, visible bool) {
	scr := s.layout.Screen
	x0 := scr.X + scr.Width/2 + curveMargin
	span := float64(s.layout.W) - curveMargin - x0
	if span <= 0 {
		return
	}
	h := s.layout.H
	s.dst.Line(x0, 0, x0, float64(h), 1, scene.ColGrid)

	curveColor := base
	if !visible {
		curveColor = scene.ColText
	}

	pts := make([]surface.Point, 0, h)
	for py := 0; py < h; py++ {
		i := optics.Clamp01(s.params.Amplitude * s.ScreenIntensity(float64(py)))
		pts = append(pts, surface.Point{X: x0 + i*span, Y: float64(py)})
	}
	s.dst.Polyline(pts, 1, curveColor)

	if !s.opts.Envelope || !s.model.Variant().AngleBased() || s.model.Variant() == optics.VariantSingleSlit {
		return
	}
	env := make([]surface.Point, 0, h)
	for py := 0; py < h; py++ {
		theta := s.AngleAt(scr.X, float64(py))
		i := optics.Clamp01(s.params.Amplitude * optics.Envelope(theta, s.params))
		env = append(env, surface.Point{X: x0 + i*span, Y: float64(py)})
	}
	s.dst.Polyline(env, 1, scene.ColText)
}

// drawField stipples the region between the source and the screen with
// small rectangles whose opacity is the local intensity.
func (s *Simulation) drawField() {
	dst := s.dst
	x0, x1 := s.fieldRegion()
	h := float64(s.layout.H)
	if x1 <= x0 {
		return
	}
	dst.ClearRect(x0, 0, x1-x0, h)

	base, visible := s.lightColor()
	if !visible {
		return
	}

	stride := float64(s.opts.Stride)
	k := 2 * math.Pi / shimmerWavePx
	omega := 2 * math.Pi * shimmerHz
	ox, oy := s.origin()

	dst.Save()
	defer dst.Restore()
	for px := x0 + stride/2; px < x1; px += stride {
		for py := stride / 2; py < h; py += stride {
			a := s.alphaAt(px, py)
			if a < minAlpha {
				continue
			}
			r := math.Hypot(px-ox, py-oy)
			phase := 0.5 + 0.5*fastmath.DefaultTrigTable.Cos(k*r-omega*s.t)
			dst.SetAlpha(a)
			dst.FillRect(px-1, py-1, 2, 2, spectrum.Shimmer(base, phase))
		}
	}
}

// origin is where the cosmetic wavefronts radiate from.
func (s *Simulation) origin() (float64, float64) {
	if s.model.Variant() == optics.VariantTwoSource {
		a, b := s.layout.Sources[0], s.layout.Sources[1]
		return (a.X + b.X) / 2, (a.Y + b.Y) / 2
	}
	return s.layout.Slit.X, s.layout.Slit.Y
}

// RenderScreenView draws the intensity seen on the screen as a horizontal
// strip filling dst, the miniature "screen view".
func (s *Simulation) RenderScreenView(dst surface.Surface) {
	w, h := dst.Size()
	dst.ClearRect(0, 0, float64(w), float64(h))
	base, visible := s.lightColor()
	if !visible || w < 1 {
		return
	}
	scrX := s.layout.Screen.X
	dst.Save()
	defer dst.Restore()
	for x := 0; x < w; x++ {
		py := (float64(x) + 0.5) * float64(s.layout.H) / float64(w)
		a := s.alphaAt(scrX, py)
		if a < minAlpha {
			continue
		}
		dst.SetAlpha(a)
		dst.FillRect(float64(x), 0, 1, float64(h), base)
	}
}
