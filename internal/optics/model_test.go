package optics

import (
	"errors"
	"testing"
)

func TestParseVariant(t *testing.T) {
	tests := []struct {
		in   string
		want Variant
	}{
		{"single", VariantSingleSlit},
		{"Double", VariantDoubleSlit},
		{"young", VariantDoubleSlit},
		{"grating", VariantNSlit},
		{" twosource ", VariantTwoSource},
	}

	for _, tt := range tests {
		got, err := ParseVariant(tt.in)
		if err != nil {
			t.Errorf("ParseVariant(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseVariant(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseVariant("prism"); !errors.Is(err, ErrUnknownVariant) {
		t.Errorf("expected ErrUnknownVariant, got %v", err)
	}
}

func TestNewModel(t *testing.T) {
	p := DefaultParams()
	for _, v := range []Variant{VariantSingleSlit, VariantDoubleSlit, VariantNSlit, VariantTwoSource} {
		m, err := NewModel(v)
		if err != nil {
			t.Fatalf("NewModel(%v): %v", v, err)
		}
		if m.Variant() != v {
			t.Errorf("Variant() = %v, want %v", m.Variant(), v)
		}
		if got := m.AngleIntensity(0, p); got != 1 {
			t.Errorf("%v: on-axis intensity = %v, want 1", v, got)
		}
	}

	m, _ := NewModel(VariantTwoSource)
	if _, ok := m.(PointModel); !ok {
		t.Error("two-source model should implement PointModel")
	}

	if _, err := NewModel(Variant(42)); !errors.Is(err, ErrUnknownVariant) {
		t.Errorf("expected ErrUnknownVariant, got %v", err)
	}
}

func TestVariant_String(t *testing.T) {
	if VariantNSlit.String() != "nslit" {
		t.Errorf("String() = %s", VariantNSlit.String())
	}
	if Variant(9).String() != "variant(9)" {
		t.Errorf("String() = %s", Variant(9).String())
	}
}
