package optics

import (
	"fmt"
	"math"
	"sort"
)

const (
	// MinLength is the smallest wavelength or slit width accepted.
	MinLength = 1e-12

	// MinAmplitude is the smallest source amplitude accepted.
	MinAmplitude = 1e-6
)

// Params holds the wave parameters of one simulation. Separation is the
// edge-to-edge gap between adjacent slits, so the slit pitch is
// SlitWidth + Separation.
type Params struct {
	Wavelength float64
	SlitWidth  float64
	Separation float64
	Slits      int
	Amplitude  float64
}

func DefaultParams() Params {
	return Params{
		Wavelength: 500e-9,
		SlitWidth:  20e-6,
		Separation: 80e-6,
		Slits:      2,
		Amplitude:  1.0,
	}
}

// Pitch returns the centre-to-centre distance of adjacent slits.
func (p Params) Pitch() float64 {
	return p.SlitWidth + p.Separation
}

// Sanitize clamps every field into its valid range. The second return value
// reports whether anything changed.
func Sanitize(p Params) (Params, bool) {
	q := p
	q.Wavelength = clampMin(q.Wavelength, MinLength)
	q.SlitWidth = clampMin(q.SlitWidth, MinLength)
	q.Amplitude = clampMin(q.Amplitude, MinAmplitude)
	if math.IsNaN(q.Separation) || q.Separation < 0 {
		q.Separation = 0
	}
	if math.IsInf(q.Separation, 1) {
		q.Separation = math.MaxFloat64
	}
	if q.Slits < 1 {
		q.Slits = 1
	}
	return q, q != p
}

func clampMin(v, min float64) float64 {
	if math.IsNaN(v) || v < min {
		return min
	}
	if math.IsInf(v, 1) {
		return math.MaxFloat64
	}
	return v
}

// Get returns the parameters keyed by name.
func (p Params) Get() map[string]float64 {
	return map[string]float64{
		"wavelength": p.Wavelength,
		"width":      p.SlitWidth,
		"separation": p.Separation,
		"slits":      float64(p.Slits),
		"amplitude":  p.Amplitude,
	}
}

// Names lists the parameter names accepted by Set in a stable order.
func Names() []string {
	names := make([]string, 0, 5)
	for k := range DefaultParams().Get() {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Set assigns one named parameter. Out-of-range values are clamped and
// applied; the returned error then wraps ErrParameterBounds.
func (p *Params) Set(name string, value float64) error {
	next := *p
	switch name {
	case "wavelength":
		next.Wavelength = value
	case "width":
		next.SlitWidth = value
	case "separation":
		next.Separation = value
	case "slits":
		if math.IsNaN(value) {
			value = 1
		}
		next.Slits = int(math.Round(value))
	case "amplitude":
		next.Amplitude = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownParam, name)
	}

	clamped, changed := Sanitize(next)
	*p = clamped
	if changed {
		return fmt.Errorf("%w: %s=%g", ErrParameterBounds, name, value)
	}
	return nil
}
