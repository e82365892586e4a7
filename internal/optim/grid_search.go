// Package optim fits wave parameters to a target by exhaustive grid search.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/san-kum/wavelab/internal/analysis"
	"github.com/san-kum/wavelab/internal/optics"
)

var ErrNoCandidate = errors.New("optim: no candidate could be scored")

// Objective scores a parameter set; lower is better.
type Objective func(p optics.Params) (float64, error)

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

// NewGridSearch searches the cartesian product of ranges, one per named
// parameter.
func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) != len(ranges) {
		return nil, fmt.Errorf("optim: %d parameters but %d ranges", len(params), len(ranges))
	}
	known := optics.Names()
	for i, name := range params {
		if !slices.Contains(known, name) {
			return nil, fmt.Errorf("%w: %s", optics.ErrUnknownParam, name)
		}
		if len(ranges[i]) == 0 {
			return nil, fmt.Errorf("optim: empty range for %s", name)
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

// Size is the number of grid points.
func (g *GridSearch) Size() int {
	n := 1
	for _, r := range g.ranges {
		n *= len(r)
	}
	return n
}

// Search returns the grid point with the lowest score, with unsearched
// fields taken from base. Points that fall outside the valid parameter
// range and points the objective rejects are skipped.
func (g *GridSearch) Search(ctx context.Context, base optics.Params, obj Objective) (optics.Params, float64, error) {
	best := math.Inf(1)
	var bestParams optics.Params
	found := false

	if err := g.searchRecursive(ctx, 0, base, obj, &best, &bestParams, &found); err != nil {
		return optics.Params{}, 0, err
	}
	if !found {
		return optics.Params{}, 0, ErrNoCandidate
	}
	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current optics.Params,
	obj Objective,
	best *float64,
	bestParams *optics.Params,
	found *bool,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		val, err := obj(current)
		if err != nil || math.IsNaN(val) {
			return nil
		}
		if val < *best {
			*best = val
			*bestParams = current
			*found = true
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		next := current
		if err := next.Set(paramName, val); err != nil {
			continue
		}
		if err := g.searchRecursive(ctx, depth+1, next, obj, best, bestParams, found); err != nil {
			return err
		}
	}
	return nil
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n < 2 {
		return []float64{lo}
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	return out
}

// FringeObjective scores the distance between the measured fringe spacing
// of a sampled screen and target (m).
func FringeObjective(m optics.Model, l, span float64, samples int, target float64) Objective {
	return func(p optics.Params) (float64, error) {
		ys, is := analysis.Sample(m, p, l, span, samples)
		spacing, err := analysis.FringeSpacing(ys, is)
		if err != nil {
			return 0, err
		}
		return math.Abs(spacing - target), nil
	}
}

// ProfileObjective scores the mean squared difference between the model's
// screen at distance l and a measured profile of physical intensities.
func ProfileObjective(m optics.Model, l float64, ys, is []float64) Objective {
	return func(p optics.Params) (float64, error) {
		if len(ys) == 0 || len(ys) != len(is) {
			return 0, fmt.Errorf("optim: profile has %d positions and %d samples", len(ys), len(is))
		}
		model := analysis.SampleAt(m, p, l, ys)
		var sum float64
		for k, v := range model {
			d := v - is[k]
			sum += d * d
		}
		return sum / float64(len(is)), nil
	}
}
