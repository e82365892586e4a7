package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/wavelab/internal/automation"
	"github.com/san-kum/wavelab/internal/config"
	"github.com/san-kum/wavelab/internal/experiment"
	"github.com/san-kum/wavelab/internal/optics"
	"github.com/san-kum/wavelab/internal/storage"
)

var (
	scanParam string
	scanMin   float64
	scanMax   float64
	scanSteps int

	perturb   float64
	tolerance float64
	trials    int
	seed      int64
)

func scenarioCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scenario [file]",
		Short: "run the steps of a yaml scenario, storing those with save_as",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := automation.LoadScenario(args[0])
			if err != nil {
				return err
			}
			st := storage.New(dataDir)
			if err := st.Init(); err != nil {
				return err
			}

			results, err := automation.RunScenario(cmd.Context(), sc, experiment.NewRegistry(), st)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "STEP\tBENCH\tFRAMES\tREADOUT\tRUN")
			for i, r := range results {
				fmt.Fprintf(w, "%d\t%s\t%d\t%.4f\t%s\n", i+1, r.Step.Bench, r.Result.Frames, r.Result.ReadoutI, r.RunID)
			}
			return w.Flush()
		},
	}
}

// benchModel resolves the bench and returns its variant and SI parameters.
func benchModel(cmd *cobra.Command, args []string) (optics.Variant, optics.Params, error) {
	cfg, err := resolveConfig(cmd, benchArg(args))
	if err != nil {
		return 0, optics.Params{}, err
	}
	v, err := cfg.GetVariant()
	if err != nil {
		return 0, optics.Params{}, err
	}
	p, changed := optics.Sanitize(cfg.Params())
	if changed {
		log.WithField("params", p).Warn("Parameters clamped")
	}
	return v, p, nil
}

func scanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [bench]",
		Short: "step one parameter across a range and measure the fringes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, p, err := benchModel(cmd, args)
			if err != nil {
				return err
			}
			unit := 1.0
			if f, ok := displayUnit[scanParam]; ok {
				unit = f
			}

			results, err := automation.RunScan(cmd.Context(), &automation.ParameterScan{
				Variant:  v,
				Base:     p,
				Param:    scanParam,
				Min:      scanMin * unit,
				Max:      scanMax * unit,
				NumSteps: scanSteps,
				Distance: distance,
				Span:     span,
				Samples:  analyzeSamples,
			})
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "%s\tSPACING (mm)\tTHEORY (mm)\tVISIBILITY\tFIRST MIN\n", scanParam)
			for _, r := range results {
				spacing := "n/a"
				if r.Err == nil {
					spacing = fmt.Sprintf("%.4f", r.Spacing*1e3)
				}
				fmt.Fprintf(w, "%g\t%s\t%.4f\t%.4f\t%s\n", r.ParamValue/unit, spacing, r.Theory*1e3, r.Visibility, degrees(r.FirstMinimum))
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&scanParam, "param", "wavelength", "parameter to scan")
	cmd.Flags().Float64Var(&scanMin, "min", 400, "first value (nm or µm for lengths)")
	cmd.Flags().Float64Var(&scanMax, "max", 700, "last value (nm or µm for lengths)")
	cmd.Flags().IntVar(&scanSteps, "steps", 7, "number of values")
	cmd.Flags().Float64Var(&distance, "distance", 1.0, "slit to screen distance (m)")
	cmd.Flags().Float64Var(&span, "span", config.DefaultScreenSpan, "screen height sampled (m)")
	cmd.Flags().IntVar(&analyzeSamples, "samples", 2001, "screen samples")
	return cmd
}

func toleranceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tolerance [bench]",
		Short: "Monte Carlo: how slit manufacturing error moves the fringes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, p, err := benchModel(cmd, args)
			if err != nil {
				return err
			}
			results, err := automation.RunMonteCarlo(cmd.Context(), &automation.MonteCarloConfig{
				Variant:      v,
				Base:         p,
				Perturbation: perturb,
				Tolerance:    tolerance,
				NumTrials:    trials,
				Distance:     distance,
				Span:         span,
				Samples:      analyzeSamples,
				Seed:         seed,
			})
			if err != nil {
				return err
			}
			within, outside := automation.MonteCarloStats(results)
			fmt.Printf("%s, ±%.1f%% slit error, %d trials\n", v, perturb*100, len(results))
			fmt.Printf("  within %.1f%% of nominal spacing: %d\n", tolerance*100, within)
			fmt.Printf("  outside:                          %d\n", outside)
			return nil
		},
	}
	cmd.Flags().Float64Var(&perturb, "perturb", 0.05, "relative slit width and separation error")
	cmd.Flags().Float64Var(&tolerance, "tolerance", 0.02, "relative fringe spacing error accepted")
	cmd.Flags().IntVar(&trials, "trials", 100, "number of trials")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 uses the clock)")
	cmd.Flags().Float64Var(&distance, "distance", 1.0, "slit to screen distance (m)")
	cmd.Flags().Float64Var(&span, "span", config.DefaultScreenSpan, "screen height sampled (m)")
	cmd.Flags().IntVar(&analyzeSamples, "samples", 2001, "screen samples")
	return cmd
}
