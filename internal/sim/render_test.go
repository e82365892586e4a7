package sim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/wavelab/internal/optics"
	"github.com/san-kum/wavelab/internal/sim"
	"github.com/san-kum/wavelab/internal/surface"
)

const (
	canvasW = 400
	canvasH = 200
)

func fullClears(rec *surface.Recorder) int {
	n := 0
	for _, op := range rec.Ops {
		if op.Kind == surface.OpClearRect && op.X == 0 && op.Y == 0 && op.W == canvasW && op.H == canvasH {
			n++
		}
	}
	return n
}

var _ = Describe("Render loop", func() {
	var (
		rec *surface.Recorder
		s   *sim.Simulation
	)

	BeforeEach(func() {
		rec = surface.NewRecorder(canvasW, canvasH)
		var err error
		s, err = sim.New(rec, sim.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())
	})

	It("starts dirty and becomes clean after one frame", func() {
		Expect(s.State()).To(Equal(sim.DirtyFull))
		s.Update()
		Expect(s.State()).To(Equal(sim.Clean))
		Expect(fullClears(rec)).To(Equal(1))
		Expect(rec.Count(surface.OpPolyline)).To(BeNumerically(">=", 1))
		Expect(rec.Count(surface.OpText)).To(Equal(1))
	})

	It("redraws only the field while clean", func() {
		s.Update()
		rec.Reset()
		s.Update()

		Expect(fullClears(rec)).To(BeZero())
		Expect(rec.Count(surface.OpClearRect)).To(Equal(1))
		Expect(rec.Count(surface.OpText)).To(BeZero())
		Expect(rec.Count(surface.OpFillRect)).To(BeNumerically(">", 0))

		field := rec.Ops[0]
		Expect(field.Kind).To(Equal(surface.OpClearRect))
		Expect(field.X).To(BeNumerically(">", 0))
		Expect(field.X + field.W).To(BeNumerically("<=", s.Layout().Screen.X))
	})

	It("stipples with opacity bounded by the intensity", func() {
		s.Update()
		rec.Reset()
		s.Update()
		for _, op := range rec.Ops {
			if op.Kind == surface.OpFillRect {
				Expect(op.Alpha).To(BeNumerically(">", 0))
				Expect(op.Alpha).To(BeNumerically("<=", 1))
			}
		}
	})

	It("advances simulated time by a fixed step", func() {
		for range 60 {
			s.Update()
		}
		Expect(s.Frame()).To(Equal(60))
		Expect(s.Time()).To(BeNumerically("~", 1.0, 1e-9))
	})

	It("returns to a full redraw after a parameter change", func() {
		s.Update()
		s.SetWavelength(650e-9)
		Expect(s.State()).To(Equal(sim.DirtyFull))

		rec.Reset()
		s.Update()
		Expect(fullClears(rec)).To(Equal(1))
	})

	It("keeps the cache when only the envelope is toggled", func() {
		s.Update()
		n := s.CacheLen()
		Expect(n).To(BeNumerically(">", 0))

		s.SetEnvelope(true)
		Expect(s.State()).To(Equal(sim.DirtyFull))
		Expect(s.CacheLen()).To(Equal(n))

		rec.Reset()
		s.Update()
		Expect(rec.Count(surface.OpPolyline)).To(Equal(2))
	})

	It("keeps the cache while the screen is dragged", func() {
		s.Update()
		epoch := s.CacheStats().Epoch
		scr := s.Layout().Screen

		Expect(s.PointerDown(scr.X, 20)).To(BeTrue())
		s.PointerMove(scr.X-40, 20)
		s.PointerUp(scr.X-40, 20)

		Expect(s.State()).To(Equal(sim.DirtyFull))
		Expect(s.CacheStats().Epoch).To(Equal(epoch))
	})

	It("draws no field for invisible wavelengths", func() {
		s.SetWavelength(1000e-9)
		s.Update()
		rec.Reset()
		s.Update()
		Expect(rec.Count(surface.OpClearRect)).To(Equal(1))
		Expect(rec.Count(surface.OpFillRect)).To(BeZero())
	})

	It("notifies observers after each frame", func() {
		var frames []int
		s.AddObserver(sim.ObserverFunc(func(s *sim.Simulation) {
			frames = append(frames, s.Frame())
		}))
		s.Update()
		s.Update()
		Expect(frames).To(Equal([]int{1, 2}))
	})

	Context("screen view", func() {
		It("draws at most one strip per column", func() {
			view := surface.NewRecorder(50, 10)
			s.RenderScreenView(view)
			Expect(view.Count(surface.OpClearRect)).To(Equal(1))
			Expect(view.Count(surface.OpFillRect)).To(BeNumerically("<=", 50))
			Expect(view.Count(surface.OpFillRect)).To(BeNumerically(">", 0))
		})
	})

	Context("two sources", func() {
		BeforeEach(func() {
			Expect(s.SetVariant(optics.VariantTwoSource)).To(Succeed())
		})

		It("is bright on the perpendicular bisector", func() {
			src := s.Layout().Sources
			midY := (src[0].Y + src[1].Y) / 2
			Expect(s.IntensityAt(300, midY)).To(BeNumerically("~", 1.0, 1e-9))
		})

		It("clears the whole field left of the screen", func() {
			s.Update()
			rec.Reset()
			s.Update()
			Expect(rec.Ops[0].Kind).To(Equal(surface.OpClearRect))
			Expect(rec.Ops[0].X).To(BeZero())
		})
	})
})
