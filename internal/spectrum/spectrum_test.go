package spectrum

import (
	"image/color"
	"testing"
)

func TestRGB_Green(t *testing.T) {
	c := RGB(500)
	if c.R != 0 {
		t.Errorf("R = %d, want 0", c.R)
	}
	if c.G != 255 {
		t.Errorf("G = %d, want 255", c.G)
	}
	if c.B == 0 || c.B == 255 {
		t.Errorf("B = %d, want a partial blue component", c.B)
	}
}

func TestRGB_Red(t *testing.T) {
	c := RGB(650)
	if c.B != 0 {
		t.Errorf("B = %d, want 0", c.B)
	}
	if c.R <= c.G {
		t.Errorf("expected red-dominant, got %+v", c)
	}
}

func TestRGB_OutOfRange(t *testing.T) {
	for _, nm := range []float64{0, 200, 379.9, 781, 900, -5} {
		c := RGB(nm)
		if c.R != 0 || c.G != 0 || c.B != 0 {
			t.Errorf("RGB(%v) = %+v, want black", nm, c)
		}
	}
}

func TestRGB_EdgesDimmed(t *testing.T) {
	mid := RGB(450)
	edge := RGB(385)
	if edge.B >= mid.B {
		t.Errorf("edge blue %d should be dimmer than %d", edge.B, mid.B)
	}
	if c := RGB(780); c.R == 0 {
		t.Errorf("780nm should still be faintly red, got %+v", c)
	}
}

func TestMeters(t *testing.T) {
	if Meters(500e-9) != RGB(500) {
		t.Error("Meters and RGB disagree at 500nm")
	}
}

func TestShimmer(t *testing.T) {
	base := color.RGBA{R: 200, G: 100, B: 50, A: 255}

	if c := Shimmer(base, 0); c.R != 0 || c.G != 0 || c.B != 0 {
		t.Errorf("phase 0 = %+v, want black", c)
	}
	if c := Shimmer(base, 1); c != base {
		t.Errorf("phase 1 = %+v, want %+v", c, base)
	}
	if c := Shimmer(base, 3); c != base {
		t.Errorf("phase clamps above 1, got %+v", c)
	}
	half := Shimmer(base, 0.5)
	if half.R < 95 || half.R > 105 {
		t.Errorf("phase 0.5 R = %d, want ~100", half.R)
	}
}

func TestHex(t *testing.T) {
	if got := Hex(color.RGBA{R: 255, A: 255}); got != "#ff0000" {
		t.Errorf("Hex = %s, want #ff0000", got)
	}
}
