// Package units converts between canvas pixels and physical meters.
//
// The two axes are scaled independently: the horizontal axis spans the
// slit-to-screen distance (meters) and the vertical axis spans the visible
// height of the screen (millimeters in practice). A [Scale] is cheap to build
// and is recomputed whenever the canvas is resized or the screen moves.
package units

type Scale struct {
	XPx2M, YPx2M float64
	XM2Px, YM2Px float64
}

// New derives a scale from the canvas size and the physical spans it covers.
func New(canvasW, canvasH int, sceneWidthM, screenSpanM float64) Scale {
	if canvasW < 1 {
		canvasW = 1
	}
	if canvasH < 1 {
		canvasH = 1
	}
	s := Scale{
		XPx2M: sceneWidthM / float64(canvasW),
		YPx2M: screenSpanM / float64(canvasH),
	}
	if s.XPx2M != 0 {
		s.XM2Px = 1 / s.XPx2M
	}
	if s.YPx2M != 0 {
		s.YM2Px = 1 / s.YPx2M
	}
	return s
}

func (s Scale) XToMeters(px float64) float64 { return px * s.XPx2M }
func (s Scale) YToMeters(px float64) float64 { return px * s.YPx2M }
func (s Scale) XToPixels(m float64) float64  { return m * s.XM2Px }
func (s Scale) YToPixels(m float64) float64  { return m * s.YM2Px }
