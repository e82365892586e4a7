package metrics

import (
	"github.com/san-kum/wavelab/internal/memo"
	"github.com/san-kum/wavelab/internal/sim"
)

// HitRate is the share of intensity lookups served from the cache.
type HitRate struct {
	name string
	last memo.Stats
	seen bool
}

func NewHitRate() *HitRate {
	return &HitRate{name: "cache_hit_rate"}
}

func (h *HitRate) Name() string { return h.name }

func (h *HitRate) OnFrame(s *sim.Simulation) {
	h.last = s.CacheStats()
	h.seen = true
}

func (h *HitRate) Value() float64 {
	total := h.last.Hits + h.last.Misses
	if !h.seen || total == 0 {
		return 0
	}
	return float64(h.last.Hits) / float64(total)
}

func (h *HitRate) Reset() {
	h.last = memo.Stats{}
	h.seen = false
}

// Invalidations counts cache flushes after the first observed frame.
type Invalidations struct {
	name        string
	first, last uint64
	samples     int
}

func NewInvalidations() *Invalidations {
	return &Invalidations{name: "cache_invalidations"}
}

func (v *Invalidations) Name() string { return v.name }

func (v *Invalidations) OnFrame(s *sim.Simulation) {
	epoch := s.CacheStats().Epoch
	if v.samples == 0 {
		v.first = epoch
	}
	v.last = epoch
	v.samples++
}

func (v *Invalidations) Value() float64 { return float64(v.last - v.first) }

func (v *Invalidations) Reset() {
	v.first, v.last = 0, 0
	v.samples = 0
}
