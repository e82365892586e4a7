package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/wavelab/internal/analysis"
	"github.com/san-kum/wavelab/internal/config"
	"github.com/san-kum/wavelab/internal/experiment"
	"github.com/san-kum/wavelab/internal/loop"
	"github.com/san-kum/wavelab/internal/metrics"
	"github.com/san-kum/wavelab/internal/sim"
	"github.com/san-kum/wavelab/internal/storage"
)

// headless runs cfg for the configured number of frames off-screen.
func headless(ctx context.Context, cfg *config.Config, opts sim.Options) (*experiment.Result, error) {
	w, h := cfg.Size()
	exp := experiment.New(experiment.Config{
		Options: opts,
		Width:   w,
		Height:  h,
		Frames:  frames,
		Samples: samples,
		Metrics: metrics.Default(),
	})
	if err := exp.Setup(nil); err != nil {
		return nil, err
	}
	return exp.Run(ctx)
}

func runCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [bench]",
		Short: "run a bench headless and store its screen profile",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBench,
	}
	cmd.Flags().IntVar(&frames, "frames", 60, "frames to simulate")
	cmd.Flags().IntVar(&samples, "samples", 400, "screen samples")
	return cmd
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, opts, err := simOptions(cmd, benchArg(args))
	if err != nil {
		return err
	}
	bench := benchLabel(cfg, args)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("running %s bench...\n", bench)
	start := time.Now()
	result, err := headless(cmd.Context(), cfg, opts)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	measured := map[string]float64{
		"visibility": analysis.Visibility(result.Profile),
	}
	if spacing, err := analysis.FringeSpacing(result.Positions, result.Profile); err == nil {
		measured["fringe_spacing_m"] = spacing
	} else {
		log.WithError(err).Debug("No fringe spacing")
	}

	runID, err := st.Save(bench, result, measured)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{"id": runID, "elapsed": elapsed}).Info("Run saved")

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d (t=%.2fs)\n", result.Frames, result.Time)
	fmt.Println("\nmetrics:")
	for name, val := range measured {
		fmt.Printf("  %s: %.6g\n", name, val)
	}
	return nil
}

func listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := storage.New(dataDir).List()
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("no runs found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tBENCH\tVARIANT\tTIME\tFRAMES\tλ\tVISIBILITY")
			for _, run := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%.0fnm\t%.3f\n",
					run.ID,
					run.Bench,
					run.Variant,
					run.Timestamp.Format("2006-01-02 15:04:05"),
					run.Frames,
					run.Params["wavelength"]*1e9,
					run.Metrics["visibility"],
				)
			}
			return w.Flush()
		},
	}
}

func plotCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored screen profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := storage.New(dataDir)
			meta, err := st.Load(args[0])
			if err != nil {
				return err
			}
			_, is, err := st.LoadProfile(args[0])
			if err != nil {
				return err
			}
			if len(is) == 0 {
				return fmt.Errorf("run %s has no samples", args[0])
			}
			fmt.Println(asciigraph.Plot(is,
				asciigraph.Height(12),
				asciigraph.Width(80),
				asciigraph.LowerBound(0),
				asciigraph.Caption(fmt.Sprintf("%s (%s) intensity across the screen", meta.Bench, meta.Variant))))
			return nil
		},
	}
}

func exportJSONCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored run to JSON on stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
		},
	}
}

func perfCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "perf [bench]",
		Short: "time headless frames across canvas sizes and strides",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, opts, err := simOptions(cmd, benchArg(args))
			if err != nil {
				return err
			}

			sizes := [][2]int{{400, 200}, {800, 400}, {1600, 800}}
			strides := []int{3, 5, 8}
			const n = 60

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SIZE\tSTRIDE\tFRAMES\tTIME\tFRAMES/SEC\tHIT RATE")
			for _, sz := range sizes {
				for _, stride := range strides {
					o := opts
					o.Stride = stride
					exp := experiment.New(experiment.Config{Options: o, Width: sz[0], Height: sz[1]})
					if err := exp.Setup(nil); err != nil {
						return err
					}
					s := exp.Simulation()
					hits := metrics.NewHitRate()
					s.AddObserver(hits)

					start := time.Now()
					loop.Steps(n, s.Update)
					elapsed := time.Since(start)

					fmt.Fprintf(w, "%dx%d\t%d\t%d\t%v\t%.0f\t%.3f\n",
						sz[0], sz[1], stride, n, elapsed, float64(n)/elapsed.Seconds(), hits.Value())
				}
			}
			return w.Flush()
		},
	}
}

var (
	streamFPS      int
	streamDuration time.Duration
	streamEvery    int
)

func streamCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stream [bench]",
		Short: "run a bench in real time off-screen and print the pointer readout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, opts, err := simOptions(cmd, benchArg(args))
			if err != nil {
				return err
			}
			w, h := cfg.Size()
			exp := experiment.New(experiment.Config{Options: opts, Width: w, Height: h})
			if err := exp.Setup(nil); err != nil {
				return err
			}
			s := exp.Simulation()
			every := max(streamEvery, 1)
			s.AddObserver(sim.ObserverFunc(func(s *sim.Simulation) {
				if s.Frame()%every != 0 {
					return
				}
				y, i := s.Readout()
				fmt.Printf("frame %5d  t=%6.2fs  y=%+.3fmm  I=%.4f\n", s.Frame(), s.Time(), y*1e3, i)
			}))

			ctx, cancel := context.WithTimeout(cmd.Context(), streamDuration)
			defer cancel()
			err = loop.NewPacer(streamFPS).Run(ctx, func() bool {
				s.Update()
				return true
			})
			if errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().IntVar(&streamFPS, "fps", loop.DefaultFPS, "frames per second")
	cmd.Flags().DurationVar(&streamDuration, "duration", 3*time.Second, "how long to run")
	cmd.Flags().IntVar(&streamEvery, "every", 30, "print every n-th frame")
	return cmd
}
