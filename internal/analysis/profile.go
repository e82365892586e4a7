package analysis

import (
	"math"

	"github.com/san-kum/wavelab/internal/fastmath"
	"github.com/san-kum/wavelab/internal/optics"
)

// Sample evaluates m at n evenly spaced points on a screen at distance l
// (m), covering span (m) centred on the axis. Two-source models place the
// sources on the axis one slit pitch apart.
func Sample(m optics.Model, p optics.Params, l, span float64, n int) (ys, is []float64) {
	if n < 2 {
		n = 2
	}
	ys = make([]float64, n)
	for k := range ys {
		ys[k] = -span/2 + span*float64(k)/float64(n-1)
	}
	return ys, SampleAt(m, p, l, ys)
}

// SampleAt evaluates m at the given screen positions (m from the axis).
func SampleAt(m optics.Model, p optics.Params, l float64, ys []float64) []float64 {
	is := make([]float64, len(ys))
	pm, point := m.(optics.PointModel)
	s1 := optics.Point{X: 0, Y: -p.Pitch() / 2}
	s2 := optics.Point{X: 0, Y: p.Pitch() / 2}

	fastmath.ParallelFor(len(ys), 512, func(start, end int) {
		for k := start; k < end; k++ {
			if point {
				is[k] = pm.PointIntensity(p, s1, s2, optics.Point{X: l, Y: ys[k]})
			} else {
				is[k] = m.AngleIntensity(math.Atan2(ys[k], l), p)
			}
		}
	})
	return is
}

// TheoreticalFringeSpacing is the small-angle fringe period λL/d for slits
// or sources one pitch apart.
func TheoreticalFringeSpacing(p optics.Params, l float64) float64 {
	d := p.Pitch()
	if d <= 0 {
		return math.Inf(1)
	}
	return p.Wavelength * l / d
}

// EnvelopeWidth is the small-angle distance from the axis to the first
// single-slit zero, λL/w.
func EnvelopeWidth(p optics.Params, l float64) float64 {
	if p.SlitWidth <= 0 {
		return math.Inf(1)
	}
	return p.Wavelength * l / p.SlitWidth
}

// Minima returns the positions of local minima whose intensity is below
// threshold.
func Minima(ys, is []float64, threshold float64) []float64 {
	var out []float64
	for k := 1; k < len(is)-1 && k < len(ys)-1; k++ {
		if is[k] < threshold && is[k] <= is[k-1] && is[k] < is[k+1] {
			out = append(out, ys[k])
		}
	}
	return out
}

// Visibility is the fringe contrast (Imax−Imin)/(Imax+Imin), 0 for an empty
// or dark profile.
func Visibility(is []float64) float64 {
	if len(is) == 0 {
		return 0
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range is {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi+lo <= 0 {
		return 0
	}
	return (hi - lo) / (hi + lo)
}

// Report summarises one profile.
type Report struct {
	Spacing    float64
	Theory     float64
	Envelope   float64
	Visibility float64
	Minima     []float64
	Err        error
}

func Analyze(ys, is []float64, p optics.Params, l float64) Report {
	r := Report{
		Theory:     TheoreticalFringeSpacing(p, l),
		Envelope:   EnvelopeWidth(p, l),
		Visibility: Visibility(is),
		Minima:     Minima(ys, is, 0.05),
	}
	r.Spacing, r.Err = FringeSpacing(ys, is)
	return r
}
