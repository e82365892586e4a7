package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/wavelab/internal/optics"
	"github.com/san-kum/wavelab/internal/sim"
	"github.com/san-kum/wavelab/internal/surface"
)

// Bench is a named experiment: a variant with the parameters it opens with.
type Bench struct {
	Name        string
	Variant     optics.Variant
	Params      optics.Params
	Description string
}

type Registry struct {
	benches map[string]Bench
}

func NewRegistry() *Registry {
	r := &Registry{benches: make(map[string]Bench)}

	def := optics.DefaultParams()

	single := def
	single.SlitWidth = 40e-6
	single.Slits = 1
	r.Register(Bench{"single", optics.VariantSingleSlit, single, "single slit: sinc² envelope"})

	r.Register(Bench{"double", optics.VariantDoubleSlit, def, "double slit: cos² fringes under the envelope"})

	grating := def
	grating.Slits = 6
	grating.Separation = 40e-6
	r.Register(Bench{"nslit", optics.VariantNSlit, grating, "N-slit grating: sharp principal maxima"})

	r.Register(Bench{"twosource", optics.VariantTwoSource, def, "two point sources: hyperbolic fringes"})

	return r
}

// Register adds or replaces a bench.
func (r *Registry) Register(b Bench) {
	r.benches[b.Name] = b
}

// Get looks a bench up by name, falling back to variant aliases
// ("young", "grating", ...).
func (r *Registry) Get(name string) (Bench, error) {
	if b, ok := r.benches[name]; ok {
		return b, nil
	}
	v, err := optics.ParseVariant(name)
	if err != nil {
		return Bench{}, fmt.Errorf("unknown bench: %s", name)
	}
	if b, ok := r.benches[v.String()]; ok {
		return b, nil
	}
	return Bench{}, fmt.Errorf("unknown bench: %s", name)
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.benches))
	for name := range r.benches {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewSimulation builds a simulation for the named bench on dst. opts supplies
// everything except the variant and parameters.
func (r *Registry) NewSimulation(name string, dst surface.Surface, opts sim.Options) (*sim.Simulation, error) {
	b, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	opts.Variant = b.Variant
	opts.Params = b.Params
	return sim.New(dst, opts)
}
