package surface

import (
	"image/color"
	"testing"
)

var (
	black = color.RGBA{A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

func TestAlphaStack(t *testing.T) {
	var a AlphaStack

	if a.Alpha() != 1 {
		t.Errorf("default alpha = %v, want 1", a.Alpha())
	}

	a.SetAlpha(0.5)
	a.Save()
	a.SetAlpha(0.2)
	if a.Alpha() != 0.2 {
		t.Errorf("alpha = %v, want 0.2", a.Alpha())
	}
	a.Restore()
	if a.Alpha() != 0.5 {
		t.Errorf("restored alpha = %v, want 0.5", a.Alpha())
	}

	// Unbalanced restore is a no-op.
	a.Restore()
	if a.Alpha() != 0.5 {
		t.Errorf("alpha after extra Restore = %v, want 0.5", a.Alpha())
	}
}

func TestAlphaStack_Clamp(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-1, 0},
		{2, 1},
		{0.3, 0.3},
	}

	for _, tt := range tests {
		var a AlphaStack
		a.SetAlpha(tt.in)
		if a.Alpha() != tt.want {
			t.Errorf("SetAlpha(%v) -> %v, want %v", tt.in, a.Alpha(), tt.want)
		}
	}
}

func TestRaster_FillAndClear(t *testing.T) {
	r := NewRaster(10, 10, black)

	r.FillRect(2, 2, 3, 3, white)
	if got := r.Img.RGBAAt(3, 3); got != white {
		t.Errorf("filled pixel = %+v, want white", got)
	}
	if got := r.Img.RGBAAt(8, 8); got != black {
		t.Errorf("untouched pixel = %+v, want black", got)
	}

	r.ClearRect(0, 0, 10, 10)
	if got := r.Img.RGBAAt(3, 3); got != black {
		t.Errorf("cleared pixel = %+v, want black", got)
	}
}

func TestRaster_AlphaBlend(t *testing.T) {
	r := NewRaster(4, 4, black)
	r.SetAlpha(0.5)
	r.FillRect(0, 0, 4, 4, white)

	got := r.Img.RGBAAt(1, 1)
	if got.R < 120 || got.R > 135 {
		t.Errorf("half-alpha white over black R = %d, want ~128", got.R)
	}
}

func TestRaster_Line(t *testing.T) {
	r := NewRaster(10, 10, black)
	r.Line(0, 0, 9, 9, 1, white)

	for i := 0; i < 10; i++ {
		if got := r.Img.RGBAAt(i, i); got != white {
			t.Errorf("diagonal pixel %d = %+v, want white", i, got)
		}
	}
	if got := r.Img.RGBAAt(0, 9); got != black {
		t.Errorf("off-line pixel = %+v, want black", got)
	}
}

func TestRaster_OutOfBounds(t *testing.T) {
	r := NewRaster(5, 5, black)
	r.FillRect(-10, -10, 3, 3, white)
	r.Line(-8, -8, -3, -3, 3, white)
	r.Circle(100, 100, 4, true, white)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if got := r.Img.RGBAAt(x, y); got != black {
				t.Fatalf("pixel (%d,%d) = %+v, want black", x, y, got)
			}
		}
	}
}

func TestRaster_ThickLineClipsAtEdge(t *testing.T) {
	r := NewRaster(5, 5, black)
	// A 3px pen centred one pixel off-canvas still covers the corner.
	r.Line(-5, -5, -1, -1, 3, white)
	if got := r.Img.RGBAAt(0, 0); got != white {
		t.Errorf("corner pixel = %+v, want white", got)
	}
	if got := r.Img.RGBAAt(1, 1); got != black {
		t.Errorf("pixel (1,1) = %+v, want black", got)
	}
}

func TestRaster_Circle(t *testing.T) {
	r := NewRaster(21, 21, black)
	r.Circle(10, 10, 5, true, white)
	if got := r.Img.RGBAAt(10, 10); got != white {
		t.Errorf("centre = %+v, want white", got)
	}
	if got := r.Img.RGBAAt(0, 0); got != black {
		t.Errorf("corner = %+v, want black", got)
	}
}

func TestRecorder(t *testing.T) {
	r := NewRecorder(100, 50)
	r.SetAlpha(0.25)
	r.FillRect(0, 0, 1, 1, white)
	r.ClearRect(0, 0, 100, 50)
	r.Text(1, 1, "hi", white)

	if w, h := r.Size(); w != 100 || h != 50 {
		t.Errorf("Size() = %d,%d", w, h)
	}
	if r.Count(OpFillRect) != 1 || r.Count(OpClearRect) != 1 || r.Count(OpText) != 1 {
		t.Errorf("unexpected op counts: %+v", r.Ops)
	}
	if r.Ops[0].Alpha != 0.25 {
		t.Errorf("recorded alpha = %v, want 0.25", r.Ops[0].Alpha)
	}

	r.Reset()
	if len(r.Ops) != 0 {
		t.Error("Reset should drop recorded ops")
	}
}
