// Package optics provides the closed-form diffraction and interference
// intensity models.
//
// Every model maps a viewing angle (or, for two point sources, a screen
// point) to a normalized intensity in [0, 1]:
//
//   - [SingleSlit]: sinc² envelope of one aperture
//   - [DoubleSlit]: cos² fringes under the single-slit envelope
//   - [NSlit]: grating factor under the single-slit envelope
//   - [TwoSource]: cos² of the path difference between two point sources
//
// The functions are pure. Removable singularities (β→0, α→kπ) are evaluated
// through their analytic limits so no NaN ever reaches a caller.
//
// # Example
//
//	p := optics.DefaultParams()
//	m, _ := optics.NewModel(optics.VariantDoubleSlit)
//	i := m.AngleIntensity(0.001, p)
//
// Lengths are in meters throughout.
package optics
