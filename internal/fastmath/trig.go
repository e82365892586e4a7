// Package fastmath holds approximations and helpers for the per-pixel
// loops, where exactness matters less than throughput.
package fastmath

import "math"

// TrigTable provides precomputed cosines for fast lookup, linearly
// interpolated between entries.
type TrigTable struct {
	cos []float64
	n   int
}

// DefaultTrigTable has 4096 entries, about 0.0015 rad apart.
var DefaultTrigTable = NewTrigTable(4096)

func NewTrigTable(n int) *TrigTable {
	if n < 2 {
		n = 2
	}
	t := &TrigTable{cos: make([]float64, n), n: n}
	for i := range t.cos {
		t.cos[i] = math.Cos(float64(i) * 2 * math.Pi / float64(n))
	}
	return t
}

// Cos returns an approximate cosine. Non-finite input returns 1.
func (t *TrigTable) Cos(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 1
	}
	x = math.Mod(x, 2*math.Pi)
	if x < 0 {
		x += 2 * math.Pi
	}

	idx := x * float64(t.n) / (2 * math.Pi)
	i := int(idx)
	frac := idx - float64(i)
	i0 := i % t.n
	i1 := (i + 1) % t.n
	return t.cos[i0]*(1-frac) + t.cos[i1]*frac
}

// Sin returns an approximate sine.
func (t *TrigTable) Sin(x float64) float64 {
	return t.Cos(x - math.Pi/2)
}
