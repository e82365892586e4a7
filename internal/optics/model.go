package optics

import (
	"fmt"
	"strings"
)

// Variant tags the experiment an intensity model implements.
type Variant int

const (
	VariantSingleSlit Variant = iota
	VariantDoubleSlit
	VariantNSlit
	VariantTwoSource
)

var variantNames = map[Variant]string{
	VariantSingleSlit: "single",
	VariantDoubleSlit: "double",
	VariantNSlit:      "nslit",
	VariantTwoSource:  "twosource",
}

func (v Variant) String() string {
	if name, ok := variantNames[v]; ok {
		return name
	}
	return fmt.Sprintf("variant(%d)", int(v))
}

// ParseVariant accepts the short names and a few common aliases.
func ParseVariant(name string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "single", "single_slit", "singleslit":
		return VariantSingleSlit, nil
	case "double", "double_slit", "doubleslit", "young":
		return VariantDoubleSlit, nil
	case "nslit", "n_slit", "grating":
		return VariantNSlit, nil
	case "twosource", "two_source", "sources":
		return VariantTwoSource, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
}

// AngleBased reports whether the variant is evaluated from a diffraction angle.
func (v Variant) AngleBased() bool {
	return v != VariantTwoSource
}

// Model is the intensity strategy selected by a Variant.
type Model interface {
	Variant() Variant
	// AngleIntensity is defined for angle-based variants. The two-source
	// model evaluates it on-axis, treating theta as a path difference of zero.
	AngleIntensity(theta float64, p Params) float64
}

// PointModel is implemented by models evaluated at a screen point.
type PointModel interface {
	Model
	PointIntensity(p Params, s1, s2, pt Point) float64
}

type angleModel struct {
	v  Variant
	fn func(float64, Params) float64
}

func (m angleModel) Variant() Variant { return m.v }

func (m angleModel) AngleIntensity(theta float64, p Params) float64 {
	return m.fn(theta, p)
}

type twoSourceModel struct{}

func (twoSourceModel) Variant() Variant { return VariantTwoSource }

func (twoSourceModel) AngleIntensity(_ float64, p Params) float64 {
	return PathIntensity(0, p)
}

func (twoSourceModel) PointIntensity(p Params, s1, s2, pt Point) float64 {
	return TwoSource(p, s1, s2, pt)
}

// NewModel returns the intensity strategy for v.
func NewModel(v Variant) (Model, error) {
	switch v {
	case VariantSingleSlit:
		return angleModel{v, SingleSlit}, nil
	case VariantDoubleSlit:
		return angleModel{v, DoubleSlit}, nil
	case VariantNSlit:
		return angleModel{v, NSlit}, nil
	case VariantTwoSource:
		return twoSourceModel{}, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownVariant, int(v))
}
