package gui

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/wavelab/internal/interact"
	"github.com/san-kum/wavelab/internal/optics"
)

func TestPointerEvent(t *testing.T) {
	tests := []struct {
		name string
		b    buttons
		ok   bool
		want interact.Kind
	}{
		{"press", buttons{pressed: true, down: true}, true, interact.Down},
		{"drag", buttons{down: true}, true, interact.Move},
		{"release", buttons{released: true}, true, interact.Up},
		{"hover", buttons{}, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := pointerEvent(tt.b, 10, 20, 0)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && (e.Kind != tt.want || e.X != 10 || e.Y != 20 || e.Target != benchTarget) {
				t.Errorf("event = %+v", e)
			}
		})
	}
}

func TestNudge(t *testing.T) {
	p := optics.DefaultParams()

	got, err := nudge(p, "wavelength", 1, false)
	if err != nil {
		t.Fatal(err)
	}
	if want := p.Wavelength * 1.05; math.Abs(got.Wavelength-want) > 1e-18 {
		t.Errorf("wavelength = %v, want %v", got.Wavelength, want)
	}

	got, _ = nudge(p, "slits", 1, true)
	if got.Slits != p.Slits+5 {
		t.Errorf("slits = %d, want %d", got.Slits, p.Slits+5)
	}

	got, err = nudge(p, "slits", -1, true)
	if got.Slits != 1 || !errors.Is(err, optics.ErrParameterBounds) {
		t.Errorf("slits = %d, err = %v; want clamped to 1", got.Slits, err)
	}

	if _, err := nudge(p, "colour", 1, false); !errors.Is(err, optics.ErrUnknownParam) {
		t.Errorf("err = %v, want ErrUnknownParam", err)
	}
}

func TestNextVariant(t *testing.T) {
	v := optics.VariantSingleSlit
	for range variantCycle {
		v = nextVariant(v)
	}
	if v != optics.VariantSingleSlit {
		t.Errorf("cycle ended on %v", v)
	}
	if nextVariant(optics.VariantTwoSource) != optics.VariantSingleSlit {
		t.Error("two-source should wrap to single")
	}
}

func TestWrap(t *testing.T) {
	tests := []struct{ i, n, want int }{
		{-1, 4, 3},
		{4, 4, 0},
		{2, 4, 2},
		{3, 0, 0},
	}
	for _, tt := range tests {
		if got := wrap(tt.i, tt.n); got != tt.want {
			t.Errorf("wrap(%d, %d) = %d, want %d", tt.i, tt.n, got, tt.want)
		}
	}
}
