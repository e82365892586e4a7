package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

var ErrNoFringes = errors.New("analysis: no periodic fringes in profile")

// minCycles is the lowest spectral bin searched for fringes; lower bins
// belong to the slowly varying envelope.
const minCycles = 2

// PowerSpectrum returns |X_k| for k < n/2 of the mean-removed, Hann-windowed
// data.
func PowerSpectrum(data []float64) []float64 {
	n := len(data)
	if n < 2 {
		return nil
	}
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)

	windowed := make([]float64, n)
	for i, v := range data {
		w := 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
		windowed[i] = (v - mean) * w
	}

	spec := fft.FFTReal(windowed)
	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spec[i])
	}
	return ps
}

// DominantFrequency returns the strongest spatial frequency (cycles per unit
// of dx) at or above minCycles, refined by parabolic interpolation.
func DominantFrequency(data []float64, dx float64) (float64, error) {
	ps := PowerSpectrum(data)
	if len(ps) <= minCycles+1 || dx <= 0 {
		return 0, ErrNoFringes
	}

	peak := minCycles
	for k := minCycles; k < len(ps); k++ {
		if ps[k] > ps[peak] {
			peak = k
		}
	}
	if ps[peak] <= 1e-12 {
		return 0, ErrNoFringes
	}

	bin := float64(peak)
	if peak > 0 && peak < len(ps)-1 {
		a, b, c := ps[peak-1], ps[peak], ps[peak+1]
		if d := a - 2*b + c; d != 0 {
			bin += 0.5 * (a - c) / d
		}
	}
	return bin / (float64(len(data)) * dx), nil
}

// FringeSpacing returns the fringe period of a profile sampled at evenly
// spaced positions ys.
func FringeSpacing(ys, is []float64) (float64, error) {
	if len(ys) != len(is) || len(ys) < 2 {
		return 0, ErrNoFringes
	}
	dx := (ys[len(ys)-1] - ys[0]) / float64(len(ys)-1)
	f, err := DominantFrequency(is, dx)
	if err != nil {
		return 0, err
	}
	return 1 / f, nil
}
