package metrics

import (
	"math"

	"github.com/san-kum/wavelab/internal/sim"
)

// Readout is the mean intensity under the screen pointer across frames.
type Readout struct {
	name    string
	sum     float64
	samples int
}

func NewReadout() *Readout {
	return &Readout{name: "readout_mean"}
}

func (r *Readout) Name() string { return r.name }

func (r *Readout) OnFrame(s *sim.Simulation) {
	_, i := s.Readout()
	r.sum += i
	r.samples++
}

func (r *Readout) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return r.sum / float64(r.samples)
}

func (r *Readout) Reset() {
	r.sum = 0
	r.samples = 0
}

// ReadoutPeak is the brightest pointer reading seen.
type ReadoutPeak struct {
	name string
	peak float64
}

func NewReadoutPeak() *ReadoutPeak {
	return &ReadoutPeak{name: "readout_peak"}
}

func (r *ReadoutPeak) Name() string { return r.name }

func (r *ReadoutPeak) OnFrame(s *sim.Simulation) {
	_, i := s.Readout()
	r.peak = math.Max(r.peak, i)
}

func (r *ReadoutPeak) Value() float64 { return r.peak }

func (r *ReadoutPeak) Reset() { r.peak = 0 }
