package optim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/wavelab/internal/analysis"
	"github.com/san-kum/wavelab/internal/optics"
)

func TestNewGridSearch_Validation(t *testing.T) {
	if _, err := NewGridSearch([]string{"colour"}, [][]float64{{1}}); !errors.Is(err, optics.ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
	if _, err := NewGridSearch([]string{"width"}, nil); err == nil {
		t.Error("expected error for missing range")
	}
	if _, err := NewGridSearch([]string{"width"}, [][]float64{{}}); err == nil {
		t.Error("expected error for empty range")
	}

	g, err := NewGridSearch([]string{"slits", "wavelength"}, [][]float64{{1, 2, 3}, Linspace(400e-9, 700e-9, 4)})
	if err != nil {
		t.Fatal(err)
	}
	if g.Size() != 12 {
		t.Errorf("size = %d, want 12", g.Size())
	}
}

func TestLinspace(t *testing.T) {
	got := Linspace(0, 1, 5)
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if got := Linspace(3, 9, 1); len(got) != 1 || got[0] != 3 {
		t.Errorf("single point = %v", got)
	}
}

func TestSearch_FindsMinimum(t *testing.T) {
	g, err := NewGridSearch(
		[]string{"slits", "wavelength"},
		[][]float64{{1, 2, 3, 4, 5}, Linspace(400e-9, 700e-9, 31)},
	)
	if err != nil {
		t.Fatal(err)
	}

	obj := func(p optics.Params) (float64, error) {
		return math.Abs(float64(p.Slits-3)) + math.Abs(p.Wavelength-550e-9)*1e9, nil
	}
	base := optics.DefaultParams()
	best, score, err := g.Search(context.Background(), base, obj)
	if err != nil {
		t.Fatal(err)
	}
	if best.Slits != 3 || math.Abs(best.Wavelength-550e-9) > 1e-15 {
		t.Errorf("best = %+v", best)
	}
	if score > 1e-6 {
		t.Errorf("score = %v", score)
	}
	if best.SlitWidth != base.SlitWidth {
		t.Error("unsearched parameters should come from base")
	}
}

func TestSearch_SkipsOutOfRange(t *testing.T) {
	g, err := NewGridSearch([]string{"width"}, [][]float64{{-1, 30e-6}})
	if err != nil {
		t.Fatal(err)
	}

	var scored int
	obj := func(p optics.Params) (float64, error) {
		scored++
		return p.SlitWidth, nil
	}
	best, _, err := g.Search(context.Background(), optics.DefaultParams(), obj)
	if err != nil {
		t.Fatal(err)
	}
	if scored != 1 || best.SlitWidth != 30e-6 {
		t.Errorf("scored %d, best width %v", scored, best.SlitWidth)
	}
}

func TestSearch_Errors(t *testing.T) {
	g, err := NewGridSearch([]string{"slits"}, [][]float64{{1, 2}})
	if err != nil {
		t.Fatal(err)
	}

	failing := func(optics.Params) (float64, error) { return 0, errors.New("no") }
	if _, _, err := g.Search(context.Background(), optics.DefaultParams(), failing); !errors.Is(err, ErrNoCandidate) {
		t.Errorf("expected ErrNoCandidate, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ok := func(optics.Params) (float64, error) { return 0, nil }
	if _, _, err := g.Search(ctx, optics.DefaultParams(), ok); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestFringeObjective(t *testing.T) {
	m, err := optics.NewModel(optics.VariantDoubleSlit)
	if err != nil {
		t.Fatal(err)
	}
	base := optics.Params{Wavelength: 500e-9, SlitWidth: 5e-6, Separation: 95e-6, Slits: 2, Amplitude: 1}

	g, err := NewGridSearch([]string{"wavelength"}, [][]float64{{400e-9, 500e-9, 600e-9, 700e-9}})
	if err != nil {
		t.Fatal(err)
	}
	best, _, err := g.Search(context.Background(), base, FringeObjective(m, 1.0, 0.06, 1024, 5e-3))
	if err != nil {
		t.Fatal(err)
	}
	if best.Wavelength != 500e-9 {
		t.Errorf("fitted wavelength = %v, want 500e-9", best.Wavelength)
	}
}

func TestProfileObjective(t *testing.T) {
	m, err := optics.NewModel(optics.VariantSingleSlit)
	if err != nil {
		t.Fatal(err)
	}
	truth := optics.Params{Wavelength: 600e-9, SlitWidth: 20e-6, Slits: 1, Amplitude: 1}
	ys, is := analysis.Sample(m, truth, 1.0, 0.2, 401)

	g, err := NewGridSearch([]string{"width"}, [][]float64{{10e-6, 20e-6, 30e-6, 40e-6}})
	if err != nil {
		t.Fatal(err)
	}
	start := truth
	start.SlitWidth = 40e-6
	best, score, err := g.Search(context.Background(), start, ProfileObjective(m, 1.0, ys, is))
	if err != nil {
		t.Fatal(err)
	}
	if best.SlitWidth != 20e-6 || score > 1e-20 {
		t.Errorf("fitted width %v with score %v", best.SlitWidth, score)
	}

	if _, err := ProfileObjective(m, 1.0, ys, is[:3])(truth); err == nil {
		t.Error("expected error for mismatched profile")
	}
}
