// Package spectrum maps wavelengths to displayable colours.
package spectrum

import (
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	Gamma = 0.8

	// MinVisible and MaxVisible bound the mapped range in nanometers; the
	// upper bound is exclusive.
	MinVisible = 380.0
	MaxVisible = 781.0
)

// Visible reports whether nm falls inside the mapped range.
func Visible(nm float64) bool {
	return nm >= MinVisible && nm < MaxVisible
}

// RGB returns the gamma-corrected colour of a wavelength given in nanometers
// using a piecewise-linear approximation of the visible spectrum. Wavelengths
// outside [380, 781) map to black.
func RGB(nm float64) color.RGBA {
	if !Visible(nm) {
		return color.RGBA{A: 255}
	}

	var r, g, b float64
	switch {
	case nm < 440:
		r, g, b = -(nm-440)/(440-380), 0, 1
	case nm < 490:
		r, g, b = 0, (nm-440)/(490-440), 1
	case nm < 510:
		r, g, b = 0, 1, -(nm-510)/(510-490)
	case nm < 580:
		r, g, b = (nm-510)/(580-510), 1, 0
	case nm < 645:
		r, g, b = 1, -(nm-645)/(645-580), 0
	default:
		r, g, b = 1, 0, 0
	}

	// Intensity falls off near the limits of vision.
	factor := 1.0
	switch {
	case nm < 420:
		factor = 0.3 + 0.7*(nm-380)/(420-380)
	case nm >= 701:
		factor = 0.3 + 0.7*(780-nm)/(780-700)
	}

	return color.RGBA{
		R: channel(r, factor),
		G: channel(g, factor),
		B: channel(b, factor),
		A: 255,
	}
}

// Meters is RGB for a wavelength in meters.
func Meters(lambda float64) color.RGBA {
	return RGB(lambda * 1e9)
}

func channel(c, factor float64) uint8 {
	if c <= 0 {
		return 0
	}
	v := math.Round(255 * math.Pow(c*factor, Gamma))
	if v > 255 {
		v = 255
	}
	if v < 0 {
		v = 0
	}
	return uint8(v)
}

// Shimmer interpolates from black to base by phase in [0, 1]. It gives the
// animated field its travelling-wave look and carries no physics.
func Shimmer(base color.RGBA, phase float64) color.RGBA {
	if phase < 0 {
		phase = 0
	} else if phase > 1 {
		phase = 1
	}
	black := colorful.Color{}
	c, _ := colorful.MakeColor(base)
	r, g, b := black.BlendRgb(c, phase).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Hex renders c as #rrggbb.
func Hex(c color.RGBA) string {
	cc, _ := colorful.MakeColor(c)
	return cc.Hex()
}
