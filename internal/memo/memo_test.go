package memo

import (
	"math"
	"testing"
)

func TestEvaluator_SameKeySingleCall(t *testing.T) {
	calls := 0
	e := New(func(x float64) float64 {
		calls++
		return math.Sin(x)
	})

	a := e.At(0.123451)
	b := e.At(0.1234549)
	if Key(0.123451) != Key(0.1234549) {
		t.Fatal("test angles should share a key")
	}
	if a != b {
		t.Errorf("results differ: %v vs %v", a, b)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}

	st := e.Stats()
	if st.Hits != 1 || st.Misses != 1 {
		t.Errorf("stats = %+v, want 1 hit 1 miss", st)
	}
}

func TestEvaluator_DistinctKeys(t *testing.T) {
	calls := 0
	e := New(func(x float64) float64 {
		calls++
		return x
	})

	for i := 0; i < 10; i++ {
		e.At(float64(i) * 1e-4)
	}
	if calls != 10 || e.Len() != 10 {
		t.Errorf("calls = %d, len = %d, want 10 each", calls, e.Len())
	}
}

func TestEvaluator_Invalidate(t *testing.T) {
	scale := 1.0
	e := New(func(x float64) float64 { return scale * x })

	before := e.At(0.5)
	scale = 2.0
	if stale := e.At(0.5); stale != before {
		t.Fatalf("cache should hold value before invalidation, got %v", stale)
	}

	e.Invalidate()
	if e.Len() != 0 {
		t.Errorf("Len() = %d after Invalidate, want 0", e.Len())
	}
	if got := e.At(0.5); got != 1.0 {
		t.Errorf("At(0.5) = %v after Invalidate, want 1.0", got)
	}
	if e.Stats().Epoch != 1 {
		t.Errorf("epoch = %d, want 1", e.Stats().Epoch)
	}
}

func TestEvaluator_NonFinite(t *testing.T) {
	calls := 0
	e := New(func(x float64) float64 { calls++; return 1 })

	for _, x := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := e.At(x); got != 0 {
			t.Errorf("At(%v) = %v, want 0", x, got)
		}
	}
	if calls != 0 {
		t.Errorf("non-finite input should not reach fn, got %d calls", calls)
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		x    float64
		want int64
	}{
		{0, 0},
		{1e-5, 1},
		{-1e-5, -1},
		{0.000014, 1},
		{0.000016, 2},
	}

	for _, tt := range tests {
		if got := Key(tt.x); got != tt.want {
			t.Errorf("Key(%v) = %d, want %d", tt.x, got, tt.want)
		}
	}
}
