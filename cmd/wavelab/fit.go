package main

import (
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/wavelab/internal/config"
	"github.com/san-kum/wavelab/internal/optics"
	"github.com/san-kum/wavelab/internal/optim"
	"github.com/san-kum/wavelab/internal/storage"
)

var (
	fitRanges     []string
	targetSpacing float64
	fitRun        string
)

// displayUnit converts a parameter from the units flags use to SI.
var displayUnit = map[string]float64{
	"wavelength": 1e-9,
	"width":      1e-6,
	"separation": 1e-6,
}

// parseRange reads name=lo:hi:n, with lengths in nm or µm.
func parseRange(s string) (string, []float64, error) {
	name, spec, ok := strings.Cut(s, "=")
	if !ok {
		return "", nil, fmt.Errorf("bad range %q: want name=lo:hi:n", s)
	}
	parts := strings.Split(spec, ":")
	if len(parts) != 3 {
		return "", nil, fmt.Errorf("bad range %q: want name=lo:hi:n", s)
	}
	lo, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return "", nil, fmt.Errorf("bad range %q: %w", s, err)
	}
	hi, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return "", nil, fmt.Errorf("bad range %q: %w", s, err)
	}
	n, err := strconv.Atoi(parts[2])
	if err != nil || n < 1 {
		return "", nil, fmt.Errorf("bad range %q: point count must be a positive integer", s)
	}
	if f, ok := displayUnit[name]; ok {
		lo, hi = lo*f, hi*f
	}
	return name, optim.Linspace(lo, hi, n), nil
}

func fitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fit [bench]",
		Short: "grid-search parameters to match a fringe spacing or a stored run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(fitRanges) == 0 {
				return fmt.Errorf("at least one --fit range is required")
			}
			names := make([]string, 0, len(fitRanges))
			ranges := make([][]float64, 0, len(fitRanges))
			for _, r := range fitRanges {
				name, values, err := parseRange(r)
				if err != nil {
					return err
				}
				names = append(names, name)
				ranges = append(ranges, values)
			}
			g, err := optim.NewGridSearch(names, ranges)
			if err != nil {
				return err
			}

			var (
				base optics.Params
				m    optics.Model
				obj  optim.Objective
			)
			if fitRun != "" {
				base, m, obj, err = runObjective(fitRun)
			} else {
				base, m, obj, err = spacingObjective(cmd, args)
			}
			if err != nil {
				return err
			}

			log.WithFields(log.Fields{"points": g.Size(), "params": names}).Debug("Grid search started")
			best, score, err := g.Search(cmd.Context(), base, obj)
			if err != nil {
				return err
			}

			fmt.Printf("%s best fit (score %.4g):\n", m.Variant(), score)
			for _, name := range names {
				v := best.Get()[name]
				switch name {
				case "wavelength":
					fmt.Printf("  %-10s %.2f nm\n", name, v*1e9)
				case "width", "separation":
					fmt.Printf("  %-10s %.3f µm\n", name, v*1e6)
				default:
					fmt.Printf("  %-10s %g\n", name, v)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&fitRanges, "fit", nil, "parameter range name=lo:hi:n (nm for wavelength, µm for width and separation); repeatable")
	cmd.Flags().Float64Var(&targetSpacing, "target-spacing", 0, "fringe spacing to match (mm)")
	cmd.Flags().StringVar(&fitRun, "run", "", "fit the profile of a stored run instead")
	cmd.Flags().Float64Var(&distance, "distance", 1.0, "slit to screen distance (m)")
	cmd.Flags().Float64Var(&span, "span", config.DefaultScreenSpan, "screen height sampled (m)")
	cmd.Flags().IntVar(&analyzeSamples, "samples", 2001, "screen samples")
	return cmd
}

func spacingObjective(cmd *cobra.Command, args []string) (optics.Params, optics.Model, optim.Objective, error) {
	if targetSpacing <= 0 {
		return optics.Params{}, nil, nil, fmt.Errorf("--target-spacing or --run is required")
	}
	cfg, err := resolveConfig(cmd, benchArg(args))
	if err != nil {
		return optics.Params{}, nil, nil, err
	}
	v, err := cfg.GetVariant()
	if err != nil {
		return optics.Params{}, nil, nil, err
	}
	m, err := optics.NewModel(v)
	if err != nil {
		return optics.Params{}, nil, nil, err
	}
	p, _ := optics.Sanitize(cfg.Params())
	return p, m, optim.FringeObjective(m, distance, span, analyzeSamples, targetSpacing*1e-3), nil
}

// runObjective rebuilds the bench of a stored run and scores candidates
// against its profile.
func runObjective(id string) (optics.Params, optics.Model, optim.Objective, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(id)
	if err != nil {
		return optics.Params{}, nil, nil, err
	}
	v, err := optics.ParseVariant(meta.Variant)
	if err != nil {
		return optics.Params{}, nil, nil, err
	}
	if !v.AngleBased() {
		return optics.Params{}, nil, nil, fmt.Errorf("cannot fit a %s run: its profile depends on source positions", v)
	}
	l := meta.Metrics["screen_distance_m"]
	if l <= 0 {
		return optics.Params{}, nil, nil, fmt.Errorf("run %s has no screen distance", id)
	}

	p := optics.DefaultParams()
	for name, val := range meta.Params {
		if err := p.Set(name, val); err != nil {
			log.WithError(err).Warn("Stored parameter adjusted")
		}
	}
	ys, is, err := st.LoadProfile(id)
	if err != nil {
		return optics.Params{}, nil, nil, err
	}
	m, err := optics.NewModel(v)
	if err != nil {
		return optics.Params{}, nil, nil, err
	}
	return p, m, optim.ProfileObjective(m, l, ys, is), nil
}
