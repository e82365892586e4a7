package optics

import "math"

const (
	sincEps    = 1e-9
	gratingEps = 1e-12
)

// Point is a position in meters.
type Point struct {
	X, Y float64
}

func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Sinc2 returns (sin x / x)², evaluating the x→0 limit as 1.
func Sinc2(x float64) float64 {
	if math.Abs(x) < sincEps {
		return 1
	}
	s := math.Sin(x) / x
	return s * s
}

// Grating2 returns (sin Nα / (N sin α))². At multiples of π the ratio tends
// to ±1 (the principal maximum N before normalization) and 1 is returned.
func Grating2(alpha float64, n int) float64 {
	if n <= 1 {
		return 1
	}
	s := math.Sin(alpha)
	if math.Abs(s) < gratingEps {
		return 1
	}
	r := math.Sin(float64(n)*alpha) / (float64(n) * s)
	return r * r
}

// Clamp01 limits v to [0, 1]; NaN maps to 0.
func Clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

func beta(theta float64, p Params) float64 {
	return math.Pi * p.SlitWidth * math.Sin(theta) / p.Wavelength
}

func alpha(theta float64, p Params) float64 {
	return math.Pi * p.Pitch() * math.Sin(theta) / p.Wavelength
}

// SingleSlit returns (sin β / β)² with β = π·w·sin θ / λ.
func SingleSlit(theta float64, p Params) float64 {
	p, _ = Sanitize(p)
	return Clamp01(Sinc2(beta(theta, p)))
}

// Envelope is the single-slit diffraction envelope that modulates the
// multi-slit fringes.
func Envelope(theta float64, p Params) float64 {
	return SingleSlit(theta, p)
}

// DoubleSlit returns cos²(π·d·sin θ / λ)·(sin β / β)² where d is the pitch.
func DoubleSlit(theta float64, p Params) float64 {
	p, _ = Sanitize(p)
	c := math.Cos(alpha(theta, p))
	return Clamp01(c * c * Sinc2(beta(theta, p)))
}

// NSlit returns the grating intensity for p.Slits apertures.
func NSlit(theta float64, p Params) float64 {
	p, _ = Sanitize(p)
	return Clamp01(Sinc2(beta(theta, p)) * Grating2(alpha(theta, p), p.Slits))
}

// TwoSource returns cos²(π/λ·(r1 − r2)) for point sources s1, s2 observed at pt.
func TwoSource(p Params, s1, s2, pt Point) float64 {
	p, _ = Sanitize(p)
	return PathIntensity(pt.Dist(s1)-pt.Dist(s2), p)
}

// PathIntensity returns cos²(π·Δr/λ) for a path difference Δr.
func PathIntensity(dr float64, p Params) float64 {
	p, _ = Sanitize(p)
	c := math.Cos(math.Pi * dr / p.Wavelength)
	return Clamp01(c * c)
}

// FirstMinimum returns the angle of the first single-slit zero. When the
// wavelength exceeds the slit width there is no zero and π/2 is returned.
func FirstMinimum(p Params) float64 {
	p, _ = Sanitize(p)
	r := p.Wavelength / p.SlitWidth
	if r >= 1 {
		return math.Pi / 2
	}
	return math.Asin(r)
}

// Boost scales intensity outside the first minimum for visual contrast. It
// is cosmetic and not part of the physical model; factor <= 1 is a no-op.
func Boost(intensity, theta float64, p Params, factor float64) float64 {
	if factor <= 1 || math.Abs(theta) <= FirstMinimum(p) {
		return Clamp01(intensity)
	}
	return Clamp01(intensity * factor)
}
