// Package analysis measures sampled screen profiles.
//
// The package works on intensity slices taken across the screen:
//
//   - [Sample]: evaluate a model along a screen at distance L
//   - [FringeSpacing]: dominant fringe period via the FFT power spectrum
//   - [TheoreticalFringeSpacing]: λL/d for comparison
//   - [Minima]: positions of the dark fringes
//   - [Visibility]: (Imax−Imin)/(Imax+Imin)
//   - [Sweep]: one profile per wavelength, evaluated concurrently
//
// # Fringe Spacing
//
// The measured spacing should agree with the small-angle estimate:
//
//	ys, is := analysis.Sample(model, p, 1.0, 0.06, 1024)
//	got, _ := analysis.FringeSpacing(ys, is)
//	want := analysis.TheoreticalFringeSpacing(p, 1.0)
package analysis
