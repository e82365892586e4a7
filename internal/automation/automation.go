// Package automation runs benches in bulk: scripted scenarios loaded from
// YAML, single-parameter scans and Monte Carlo tolerance studies.
package automation

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"slices"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/wavelab/internal/analysis"
	"github.com/san-kum/wavelab/internal/experiment"
	"github.com/san-kum/wavelab/internal/metrics"
	"github.com/san-kum/wavelab/internal/optics"
	"github.com/san-kum/wavelab/internal/sim"
	"github.com/san-kum/wavelab/internal/storage"
)

// Scenario defines a scripted sequence of headless runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one run. Params use SI units and the names accepted by
// optics.Params.Set; they override the bench defaults.
type ScenarioStep struct {
	Bench    string             `yaml:"bench"`
	Params   map[string]float64 `yaml:"params"`
	Envelope bool               `yaml:"envelope"`
	Boost    float64            `yaml:"boost"`
	Frames   int                `yaml:"frames"`
	Samples  int                `yaml:"samples"`
	Width    int                `yaml:"width"`
	Height   int                `yaml:"height"`
	SaveAs   string             `yaml:"save_as"`
}

// StepResult pairs a finished step with the id it was stored under, if any.
type StepResult struct {
	Step   ScenarioStep
	Result *experiment.Result
	RunID  string
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}

	return &scenario, nil
}

// options builds the simulation options of a step from its bench.
func (st ScenarioStep) options(registry *experiment.Registry) (sim.Options, error) {
	b, err := registry.Get(st.Bench)
	if err != nil {
		return sim.Options{}, err
	}
	opts := sim.DefaultOptions()
	opts.Variant = b.Variant
	opts.Params = b.Params
	for k, v := range st.Params {
		if err := opts.Params.Set(k, v); err != nil {
			return sim.Options{}, err
		}
	}
	opts.Envelope = st.Envelope
	opts.Boost = st.Boost
	opts.Logf = log.Warnf
	return opts, nil
}

// RunScenario executes all steps in order. Steps with SaveAs set are stored
// in store under that bench name; store may be nil.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, store *storage.Store) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		log.WithFields(log.Fields{
			"scenario": scenario.Name,
			"step":     fmt.Sprintf("%d/%d", i+1, len(scenario.Steps)),
			"bench":    step.Bench,
		}).Info("Running step")

		opts, err := step.options(registry)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		frames := step.Frames
		if frames <= 0 {
			frames = 60
		}
		exp := experiment.New(experiment.Config{
			Options: opts,
			Width:   step.Width,
			Height:  step.Height,
			Frames:  frames,
			Samples: step.Samples,
			Metrics: metrics.Default(),
		})
		if err := exp.Setup(nil); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Step: step, Result: result}
		if step.SaveAs != "" && store != nil {
			m := map[string]float64{"visibility": analysis.Visibility(result.Profile)}
			if spacing, err := analysis.FringeSpacing(result.Positions, result.Profile); err == nil {
				m["fringe_spacing_m"] = spacing
			}
			if sr.RunID, err = store.Save(step.SaveAs, result, m); err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		results = append(results, sr)
	}

	return results, nil
}

// ParameterScan samples the screen analytically across a range of one
// parameter.
type ParameterScan struct {
	Variant  optics.Variant
	Base     optics.Params
	Param    string
	Min      float64
	Max      float64
	NumSteps int
	Distance float64
	Span     float64
	Samples  int
}

// ScanResult holds the screen measurements at one parameter value.
type ScanResult struct {
	ParamValue   float64
	Spacing      float64
	Theory       float64
	Visibility   float64
	FirstMinimum float64
	Err          error
}

// RunScan executes a parameter scan. A value that had to be clamped is
// recorded at its clamped value.
func RunScan(ctx context.Context, scan *ParameterScan) ([]ScanResult, error) {
	if scan.NumSteps < 2 {
		return nil, fmt.Errorf("scan needs at least 2 steps, got %d", scan.NumSteps)
	}
	m, err := optics.NewModel(scan.Variant)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(optics.Names(), scan.Param) {
		return nil, fmt.Errorf("%w: %s", optics.ErrUnknownParam, scan.Param)
	}

	results := make([]ScanResult, 0, scan.NumSteps)
	paramStep := (scan.Max - scan.Min) / float64(scan.NumSteps-1)

	for i := 0; i < scan.NumSteps; i++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		p := scan.Base
		_ = p.Set(scan.Param, scan.Min+float64(i)*paramStep)

		ys, is := analysis.Sample(m, p, scan.Distance, scan.Span, scan.Samples)
		r := analysis.Analyze(ys, is, p, scan.Distance)
		results = append(results, ScanResult{
			ParamValue:   p.Get()[scan.Param],
			Spacing:      r.Spacing,
			Theory:       r.Theory,
			Visibility:   r.Visibility,
			FirstMinimum: optics.FirstMinimum(p),
			Err:          r.Err,
		})

		log.WithFields(log.Fields{
			"step":       fmt.Sprintf("%d/%d", i+1, scan.NumSteps),
			scan.Param:   p.Get()[scan.Param],
			"visibility": r.Visibility,
		}).Debug("Scan step")
	}

	return results, nil
}

// MonteCarloConfig perturbs the slit geometry of a bench to see how
// manufacturing error moves the fringes.
type MonteCarloConfig struct {
	Variant optics.Variant
	Base    optics.Params
	// Perturbation is the relative error applied to slit width and
	// separation, drawn uniformly from ±Perturbation.
	Perturbation float64
	// Tolerance is the relative spacing error a trial may show and still
	// count as within tolerance.
	Tolerance float64
	NumTrials int
	Distance  float64
	Span      float64
	Samples   int
	Seed      int64
}

// MonteCarloResult holds the outcome of one perturbed trial.
type MonteCarloResult struct {
	TrialID int
	Params  optics.Params
	Spacing float64
	Within  bool
}

// RunMonteCarlo executes trials with random perturbations. A zero seed
// seeds from the clock.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig) ([]MonteCarloResult, error) {
	m, err := optics.NewModel(cfg.Variant)
	if err != nil {
		return nil, err
	}
	nominal, err := spacingOf(m, cfg.Base, cfg)
	if err != nil {
		return nil, fmt.Errorf("nominal bench: %w", err)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	jitter := func(v float64) float64 {
		return v * (1 + (rng.Float64()-0.5)*2*cfg.Perturbation)
	}

	results := make([]MonteCarloResult, 0, cfg.NumTrials)
	for trial := 0; trial < cfg.NumTrials; trial++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		p := cfg.Base
		p.SlitWidth = jitter(p.SlitWidth)
		p.Separation = jitter(p.Separation)
		p, _ = optics.Sanitize(p)

		spacing, err := spacingOf(m, p, cfg)
		within := err == nil && math.Abs(spacing-nominal)/nominal <= cfg.Tolerance
		results = append(results, MonteCarloResult{
			TrialID: trial,
			Params:  p,
			Spacing: spacing,
			Within:  within,
		})

		if (trial+1)%10 == 0 {
			log.Debugf("Monte Carlo: %d/%d trials complete", trial+1, cfg.NumTrials)
		}
	}

	return results, nil
}

func spacingOf(m optics.Model, p optics.Params, cfg *MonteCarloConfig) (float64, error) {
	ys, is := analysis.Sample(m, p, cfg.Distance, cfg.Span, cfg.Samples)
	return analysis.FringeSpacing(ys, is)
}

// MonteCarloStats counts trials inside and outside tolerance.
func MonteCarloStats(results []MonteCarloResult) (within int, outside int) {
	for _, r := range results {
		if r.Within {
			within++
		} else {
			outside++
		}
	}
	return
}
