package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/wavelab/internal/analysis"
	"github.com/san-kum/wavelab/internal/config"
	"github.com/san-kum/wavelab/internal/experiment"
	"github.com/san-kum/wavelab/internal/export"
	"github.com/san-kum/wavelab/internal/optics"
	"github.com/san-kum/wavelab/internal/spectrum"
)

var (
	theta     float64
	pathDiff  float64
	distance  float64
	span      float64
	sweepNm   string
	htmlOut   string
	plotWidth int

	analyzeSamples int
)

func evalCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval [bench]",
		Short: "evaluate the intensity at one angle or path difference",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, benchArg(args))
			if err != nil {
				return err
			}
			v, err := cfg.GetVariant()
			if err != nil {
				return err
			}
			m, err := optics.NewModel(v)
			if err != nil {
				return err
			}
			p, changed := optics.Sanitize(cfg.Params())
			if changed {
				log.WithField("params", p).Warn("Parameters clamped")
			}

			var i float64
			if v == optics.VariantTwoSource {
				i = optics.PathIntensity(pathDiff*1e-6, p)
				fmt.Printf("%s Δr=%gµm: I=%.6f\n", v, pathDiff, i)
			} else {
				i = m.AngleIntensity(theta, p)
				fmt.Printf("%s θ=%grad: I=%.6f\n", v, theta, i)
			}
			fm := optics.FirstMinimum(p)
			fmt.Printf("first minimum: %.6f rad (%s)\n", fm, degrees(fm))
			return nil
		},
	}
	cmd.Flags().Float64Var(&theta, "theta", 0, "diffraction angle (rad)")
	cmd.Flags().Float64Var(&pathDiff, "dr", 0, "path difference for two sources (µm)")
	return cmd
}

func profileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile [bench]",
		Short: "plot the intensity across the screen after a headless run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, opts, err := simOptions(cmd, benchArg(args))
			if err != nil {
				return err
			}
			result, err := headless(cmd.Context(), cfg, opts)
			if err != nil {
				return err
			}
			fmt.Println(asciigraph.Plot(result.Profile,
				asciigraph.Height(12),
				asciigraph.Width(plotWidth),
				asciigraph.LowerBound(0),
				asciigraph.UpperBound(1),
				asciigraph.Caption(fmt.Sprintf("%s at %.0f nm", result.Variant, result.Params.Wavelength*1e9))))
			fmt.Printf("pointer: y=%+.3f mm  I=%.4f\n", result.ReadoutY*1e3, result.ReadoutI)
			fmt.Printf("cache: %d hits, %d misses\n", result.Cache.Hits, result.Cache.Misses)
			return nil
		},
	}
	cmd.Flags().IntVar(&frames, "frames", 60, "frames to simulate")
	cmd.Flags().IntVar(&samples, "samples", 400, "screen samples")
	cmd.Flags().IntVar(&plotWidth, "plot-width", 80, "plot width in columns")
	return cmd
}

// parseWavelengths reads a comma-separated list of nanometers.
func parseWavelengths(s string) ([]float64, error) {
	var out []float64
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		nm, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("bad wavelength %q: %w", f, err)
		}
		out = append(out, nm*1e-9)
	}
	return out, nil
}

func analyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [bench]",
		Short: "measure fringe spacing, minima and visibility on a sampled screen",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, benchArg(args))
			if err != nil {
				return err
			}
			v, err := cfg.GetVariant()
			if err != nil {
				return err
			}
			m, err := optics.NewModel(v)
			if err != nil {
				return err
			}
			p, _ := optics.Sanitize(cfg.Params())

			wavelengths := []float64{p.Wavelength}
			if sweepNm != "" {
				if wavelengths, err = parseWavelengths(sweepNm); err != nil {
					return err
				}
			}

			profiles, err := analysis.Sweep(cmd.Context(), analysis.SweepConfig{
				Model:   m,
				Params:  p,
				L:       distance,
				Span:    span,
				Samples: analyzeSamples,
			}, wavelengths)
			if err != nil {
				return err
			}

			for _, pr := range profiles {
				q := p
				q.Wavelength = pr.Wavelength
				r := analysis.Analyze(pr.Y, pr.I, q, distance)
				fmt.Printf("%s at %.0f nm, L=%.2f m\n", v, pr.Wavelength*1e9, distance)
				if r.Err != nil {
					fmt.Printf("  fringe spacing:  n/a (%v)\n", r.Err)
				} else {
					fmt.Printf("  fringe spacing:  %.4f mm (theory %.4f mm)\n", r.Spacing*1e3, r.Theory*1e3)
				}
				fmt.Printf("  envelope width:  %.4f mm\n", r.Envelope*1e3)
				fmt.Printf("  visibility:      %.4f\n", r.Visibility)
				fmt.Printf("  minima:          %d\n", len(r.Minima))
			}

			if htmlOut == "" {
				return nil
			}
			f, err := createOutput(htmlOut)
			if err != nil {
				return err
			}
			defer f.Close()
			title := fmt.Sprintf("%s intensity, L=%.2f m", v, distance)
			if err := export.WriteHTML(f, title, profiles); err != nil {
				return err
			}
			log.WithField("path", htmlOut).Info("Chart rendered and saved")
			return nil
		},
	}
	cmd.Flags().Float64Var(&distance, "distance", 1.0, "slit to screen distance (m)")
	cmd.Flags().Float64Var(&span, "span", config.DefaultScreenSpan, "screen height sampled (m)")
	cmd.Flags().IntVar(&analyzeSamples, "samples", 2001, "screen samples")
	cmd.Flags().StringVar(&sweepNm, "sweep", "", "comma-separated wavelengths to compare (nm)")
	cmd.Flags().StringVar(&htmlOut, "html", "", "write an interactive chart to this file")
	return cmd
}

func colorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "color [nm...]",
		Short: "show the display colour of wavelengths",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, a := range args {
				nm, err := strconv.ParseFloat(a, 64)
				if err != nil {
					return fmt.Errorf("bad wavelength %q: %w", a, err)
				}
				c := spectrum.RGB(nm)
				swatch := lipgloss.NewStyle().Background(lipgloss.Color(spectrum.Hex(c))).Render("      ")
				visible := "visible"
				if !spectrum.Visible(nm) {
					visible = "invisible"
				}
				fmt.Printf("%6.1f nm  %s  %s  rgb(%d,%d,%d)  %s\n", nm, swatch, spectrum.Hex(c), c.R, c.G, c.B, visible)
			}
			return nil
		},
	}
}

func presetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets [variant]",
		Short: "list available presets for a variant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := optics.ParseVariant(args[0])
			if err != nil {
				return err
			}
			presets := config.ListPresets(v.String())
			if len(presets) == 0 {
				fmt.Printf("no presets for variant: %s\n", v)
				return nil
			}
			fmt.Printf("presets for %s:\n", v)
			for _, name := range presets {
				p := config.GetPreset(v.String(), name)
				fmt.Printf("  %-10s λ=%.0fnm w=%.0fµm s=%.0fµm N=%d\n", name,
					p.Wave.WavelengthNm, p.Wave.SlitWidthUm, p.Wave.SeparationUm, p.Wave.Slits)
			}
			return nil
		},
	}
}

func variantsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "variants",
		Short: "list experiments",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := experiment.NewRegistry()
			for _, name := range reg.List() {
				b, _ := reg.Get(name)
				fmt.Printf("  %-10s %s\n", name, b.Description)
			}
			return nil
		},
	}
}

func saveConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "save-config [path] [bench]",
		Short: "write the resolved configuration to a yaml file",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, benchArg(args[1:]))
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("saved %s\n", args[0])
			return nil
		},
	}
}

// degrees formats a small angle for humans.
func degrees(rad float64) string {
	return fmt.Sprintf("%.4f°", rad*180/math.Pi)
}
