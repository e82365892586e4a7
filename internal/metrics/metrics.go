// Package metrics accumulates per-frame measurements of a running bench.
// Every metric is a sim.Observer and is attached with AddObserver.
package metrics

import "github.com/san-kum/wavelab/internal/sim"

type Metric interface {
	sim.Observer
	Name() string
	Value() float64
	Reset()
}

// Default returns a fresh set of the metrics recorded for stored runs.
func Default() []Metric {
	return []Metric{
		NewReadout(),
		NewReadoutPeak(),
		NewHitRate(),
		NewInvalidations(),
	}
}

// Collect returns the current values keyed by name.
func Collect(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
