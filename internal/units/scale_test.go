package units

import (
	"math"
	"testing"
)

func TestNew(t *testing.T) {
	s := New(800, 400, 2.0, 0.01)

	if math.Abs(s.XPx2M-0.0025) > 1e-15 {
		t.Errorf("XPx2M = %v, want 0.0025", s.XPx2M)
	}
	if math.Abs(s.YPx2M-2.5e-5) > 1e-18 {
		t.Errorf("YPx2M = %v, want 2.5e-5", s.YPx2M)
	}
	if got := s.XToPixels(s.XToMeters(123)); math.Abs(got-123) > 1e-9 {
		t.Errorf("x round trip = %v, want 123", got)
	}
	if got := s.YToPixels(s.YToMeters(57)); math.Abs(got-57) > 1e-9 {
		t.Errorf("y round trip = %v, want 57", got)
	}
}

func TestNew_DegenerateCanvas(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"zero", 0, 0},
		{"negative", -10, -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.w, tt.h, 1.0, 1.0)
			if s.XPx2M != 1.0 || s.YPx2M != 1.0 {
				t.Errorf("expected 1px clamp, got %+v", s)
			}
		})
	}
}

func TestNew_ZeroSpan(t *testing.T) {
	s := New(100, 100, 0, 0)
	if s.XM2Px != 0 || s.YM2Px != 0 {
		t.Errorf("inverse factors should stay zero, got %+v", s)
	}
}
