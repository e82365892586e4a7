// Package memo caches expensive scalar functions behind a fixed-precision key.
//
// Rendering samples the intensity field on a pixel grid, so many pixels map
// to the same diffraction angle once it is rounded to Precision. The cache is
// unbounded within one epoch: the quantization step bounds the number of
// distinct keys to a small multiple of the screen's angular span. Callers
// must Invalidate whenever the wrapped function's inputs change.
package memo

import "math"

// Precision is the number of keys per unit of input (1e-5 rad per key for
// angles).
const Precision = 1e5

// Key quantizes x to the cache key.
func Key(x float64) int64 {
	return int64(math.Round(x * Precision))
}

type Stats struct {
	Hits   int
	Misses int
	Epoch  uint64
}

type Evaluator struct {
	fn    func(float64) float64
	cache map[int64]float64
	stats Stats
}

func New(fn func(float64) float64) *Evaluator {
	return &Evaluator{
		fn:    fn,
		cache: make(map[int64]float64),
	}
}

// At returns fn evaluated at the quantized value of x. Two inputs sharing a
// key always return the same result.
func (e *Evaluator) At(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	k := Key(x)
	if v, ok := e.cache[k]; ok {
		e.stats.Hits++
		return v
	}
	e.stats.Misses++
	v := e.fn(float64(k) / Precision)
	e.cache[k] = v
	return v
}

// Invalidate drops every cached value and starts a new epoch.
func (e *Evaluator) Invalidate() {
	clear(e.cache)
	e.stats.Epoch++
}

func (e *Evaluator) Len() int { return len(e.cache) }

func (e *Evaluator) Stats() Stats { return e.stats }
