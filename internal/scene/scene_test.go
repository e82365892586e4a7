package scene

import (
	"math"
	"testing"

	"github.com/san-kum/wavelab/internal/surface"
)

func TestBounds_Clamp(t *testing.T) {
	b := Bounds{10, 20}
	tests := []struct {
		in, want float64
	}{
		{5, 10},
		{15, 15},
		{25, 20},
		{math.NaN(), 10},
		{math.Inf(1), 20},
	}

	for _, tt := range tests {
		if got := b.Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLayout_Defaults(t *testing.T) {
	l := NewLayout(1000, 500)

	if l.Slit.X != 150 {
		t.Errorf("slit x = %v, want 150", l.Slit.X)
	}
	if l.Screen.X != 700 {
		t.Errorf("screen x = %v, want 700", l.Screen.X)
	}
	if l.Screen.XBounds.Min != 300 || l.Screen.XBounds.Max != 850 {
		t.Errorf("screen bounds = %+v", l.Screen.XBounds)
	}
	if l.Pointer.X != l.Screen.X || l.Pointer.Y != 250 {
		t.Errorf("pointer = (%v,%v)", l.Pointer.X, l.Pointer.Y)
	}
}

func TestScreen_DragClamp(t *testing.T) {
	l := NewLayout(1000, 500)

	tests := []struct {
		name string
		x    float64
		want float64
	}{
		{"inside", 500, 500},
		{"past max", 5000, 850},
		{"past min", -20, 300},
		{"at max", 850, 850},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l.SetScreenX(tt.x)
			if l.Screen.X != tt.want {
				t.Errorf("screen x = %v, want %v", l.Screen.X, tt.want)
			}
			if l.Pointer.X != l.Screen.X {
				t.Error("pointer should follow the screen")
			}
		})
	}
}

func TestPointer_DragClamp(t *testing.T) {
	l := NewLayout(1000, 500)

	if l.Pointer.SetY(-100); l.Pointer.Y != 25 {
		t.Errorf("pointer y = %v, want 25", l.Pointer.Y)
	}
	if l.Pointer.SetY(1e9); l.Pointer.Y != 475 {
		t.Errorf("pointer y = %v, want 475", l.Pointer.Y)
	}
	if moved := l.Pointer.SetY(1e9); moved {
		t.Error("SetY at the bound should report no movement")
	}
}

func TestSource_DragClamp(t *testing.T) {
	l := NewLayout(1000, 500)
	s := &l.Sources[0]

	s.SetPos(-50, 10000)
	if s.X != 50 || s.Y != 450 {
		t.Errorf("source = %v, want (50, 450)", s)
	}
}

func TestLayout_Resize(t *testing.T) {
	l := NewLayout(1000, 500)
	l.SetScreenX(800)
	l.Pointer.SetY(100)

	l.Resize(500, 1000)
	if l.Screen.X != 400 {
		t.Errorf("screen x = %v, want 400", l.Screen.X)
	}
	if l.Pointer.Y != 200 {
		t.Errorf("pointer y = %v, want 200", l.Pointer.Y)
	}
	if l.Screen.XBounds.Max != 425 {
		t.Errorf("screen bounds not rescaled: %+v", l.Screen.XBounds)
	}
	if l.Slit.X != 75 {
		t.Errorf("slit x = %v, want 75", l.Slit.X)
	}
}

func TestLayout_HitTest(t *testing.T) {
	l := NewLayout(1000, 500)

	tests := []struct {
		name        string
		x, y        float64
		withSources bool
		want        Handle
	}{
		{"pointer", l.Pointer.X + 3, l.Pointer.Y, false, HandlePointer},
		{"screen", l.Screen.X, 30, false, HandleScreen},
		{"empty", 10, 10, false, HandleNone},
		{"source ignored", l.Sources[0].X, l.Sources[0].Y, false, HandleNone},
		{"source", l.Sources[1].X, l.Sources[1].Y, true, HandleSource1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.HitTest(tt.x, tt.y, tt.withSources); got != tt.want {
				t.Errorf("HitTest = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSlit_Openings(t *testing.T) {
	s := Slit{Y: 100, Count: 3, WidthPx: 4, GapPx: 10}
	got := s.Openings()
	want := []float64{86, 100, 114}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("opening %d = %v, want %v", i, got[i], want[i])
		}
	}

	rec := surface.NewRecorder(200, 200)
	s.Height = 200
	s.Draw(rec)
	if rec.Count(surface.OpFillRect) != 4 {
		t.Errorf("3 openings should leave 4 plate segments, got %d", rec.Count(surface.OpFillRect))
	}
}
