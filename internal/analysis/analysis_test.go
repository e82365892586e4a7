package analysis

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/wavelab/internal/optics"
)

// fringeParams gives a 5 mm fringe period at L = 1 m under a nearly flat
// envelope.
func fringeParams() optics.Params {
	return optics.Params{Wavelength: 500e-9, SlitWidth: 5e-6, Separation: 95e-6, Slits: 2, Amplitude: 1}
}

func mustModel(t *testing.T, v optics.Variant) optics.Model {
	t.Helper()
	m, err := optics.NewModel(v)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestTheoreticalFringeSpacing(t *testing.T) {
	got := TheoreticalFringeSpacing(fringeParams(), 1.0)
	if math.Abs(got-5e-3) > 1e-12 {
		t.Errorf("spacing = %v, want 5e-3", got)
	}
	if w := EnvelopeWidth(fringeParams(), 1.0); math.Abs(w-0.1) > 1e-12 {
		t.Errorf("envelope = %v, want 0.1", w)
	}
}

func TestFringeSpacing(t *testing.T) {
	tests := []struct {
		name    string
		variant optics.Variant
	}{
		{"double", optics.VariantDoubleSlit},
		{"nslit", optics.VariantNSlit},
		{"twosource", optics.VariantTwoSource},
	}

	p := fringeParams()
	want := TheoreticalFringeSpacing(p, 1.0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ys, is := Sample(mustModel(t, tt.variant), p, 1.0, 0.06, 1024)
			got, err := FringeSpacing(ys, is)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(got-want)/want > 0.03 {
				t.Errorf("spacing = %v, want %v", got, want)
			}
		})
	}
}

func TestFringeSpacing_Flat(t *testing.T) {
	ys := make([]float64, 64)
	is := make([]float64, 64)
	for i := range is {
		ys[i] = float64(i)
		is[i] = 0.7
	}
	if _, err := FringeSpacing(ys, is); !errors.Is(err, ErrNoFringes) {
		t.Errorf("err = %v, want ErrNoFringes", err)
	}
	if _, err := FringeSpacing(ys[:1], is[:1]); !errors.Is(err, ErrNoFringes) {
		t.Errorf("short profile: err = %v", err)
	}
}

func TestPowerSpectrum_Sine(t *testing.T) {
	n := 256
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * 16 * float64(i) / float64(n))
	}
	ps := PowerSpectrum(data)
	if len(ps) != n/2 {
		t.Fatalf("len = %d, want %d", len(ps), n/2)
	}
	peak := 0
	for k := range ps {
		if ps[k] > ps[peak] {
			peak = k
		}
	}
	if peak != 16 {
		t.Errorf("peak bin = %d, want 16", peak)
	}
}

func TestMinima(t *testing.T) {
	p := fringeParams()
	ys, is := Sample(mustModel(t, optics.VariantDoubleSlit), p, 1.0, 0.06, 2001)
	minima := Minima(ys, is, 0.05)
	if len(minima) != 12 {
		t.Fatalf("found %d minima, want 12: %v", len(minima), minima)
	}

	// Dark fringes sit half a period off the axis.
	nearest := math.Inf(1)
	for _, y := range minima {
		nearest = math.Min(nearest, math.Abs(y-2.5e-3))
	}
	if nearest > 1e-4 {
		t.Errorf("no minimum near +2.5 mm (closest off by %v)", nearest)
	}
}

func TestVisibility(t *testing.T) {
	tests := []struct {
		name string
		is   []float64
		want float64
	}{
		{"empty", nil, 0},
		{"dark", []float64{0, 0}, 0},
		{"flat", []float64{0.4, 0.4, 0.4}, 0},
		{"full", []float64{0, 1, 0}, 1},
		{"half", []float64{0.25, 0.75}, 0.5},
	}

	for _, tt := range tests {
		if got := Visibility(tt.is); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("%s: Visibility = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestAnalyze(t *testing.T) {
	p := fringeParams()
	ys, is := Sample(mustModel(t, optics.VariantDoubleSlit), p, 1.0, 0.06, 1024)
	r := Analyze(ys, is, p, 1.0)
	if r.Err != nil {
		t.Fatal(r.Err)
	}
	if r.Visibility < 0.99 {
		t.Errorf("visibility = %v, want ~1", r.Visibility)
	}
	if math.Abs(r.Spacing-r.Theory)/r.Theory > 0.03 {
		t.Errorf("spacing %v vs theory %v", r.Spacing, r.Theory)
	}
	if len(r.Minima) == 0 {
		t.Error("expected dark fringes")
	}
}

func TestSweep(t *testing.T) {
	cfg := SweepConfig{
		Model:   mustModel(t, optics.VariantDoubleSlit),
		Params:  fringeParams(),
		L:       1.0,
		Span:    0.06,
		Samples: 1024,
	}
	lambdas := []float64{400e-9, 500e-9, 600e-9}

	profiles, err := Sweep(context.Background(), cfg, lambdas)
	if err != nil {
		t.Fatal(err)
	}
	if len(profiles) != len(lambdas) {
		t.Fatalf("got %d profiles", len(profiles))
	}
	for i, prof := range profiles {
		if prof.Wavelength != lambdas[i] {
			t.Errorf("profile %d wavelength = %v, want %v", i, prof.Wavelength, lambdas[i])
		}
		got, err := FringeSpacing(prof.Y, prof.I)
		if err != nil {
			t.Fatal(err)
		}
		want := lambdas[i] * 1.0 / 100e-6
		if math.Abs(got-want)/want > 0.03 {
			t.Errorf("λ=%v: spacing = %v, want %v", lambdas[i], got, want)
		}
	}
}

func TestSweep_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := SweepConfig{Model: mustModel(t, optics.VariantSingleSlit), Params: optics.DefaultParams(), L: 1, Span: 0.01, Samples: 8}
	if _, err := Sweep(ctx, cfg, []float64{500e-9}); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
