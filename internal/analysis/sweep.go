package analysis

import (
	"context"
	"sync"

	"github.com/san-kum/wavelab/internal/optics"
)

// Profile is one sampled screen slice.
type Profile struct {
	Wavelength float64
	Y          []float64
	I          []float64
}

// SweepConfig fixes everything but the wavelength.
type SweepConfig struct {
	Model   optics.Model
	Params  optics.Params
	L       float64
	Span    float64
	Samples int
}

// Sweep samples one profile per wavelength, each on its own goroutine.
// Results keep the order of wavelengths.
func Sweep(ctx context.Context, cfg SweepConfig, wavelengths []float64) ([]Profile, error) {
	results := make([]Profile, len(wavelengths))
	errs := make([]error, len(wavelengths))

	var wg sync.WaitGroup
	for i, lambda := range wavelengths {
		wg.Add(1)
		go func(idx int, lambda float64) {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				errs[idx] = err
				return
			}

			p := cfg.Params
			p.Wavelength = lambda
			p, _ = optics.Sanitize(p)
			ys, is := Sample(cfg.Model, p, cfg.L, cfg.Span, cfg.Samples)
			results[idx] = Profile{Wavelength: p.Wavelength, Y: ys, I: is}
		}(i, lambda)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
