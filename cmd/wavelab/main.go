package main

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/wavelab/internal/config"
	"github.com/san-kum/wavelab/internal/experiment"
	"github.com/san-kum/wavelab/internal/sim"
)

var (
	dataDir    string
	configFile string
	preset     string
	logFile    string
	verbose    bool

	// Wave parameters in display units.
	wavelengthNm float64
	slitWidthUm  float64
	separationUm float64
	slits        int
	amplitude    float64
	envelope     bool
	boost        float64

	// Headless rendering.
	canvasW int
	canvasH int
	frames  int
	samples int
)

// main registers commands and flags and executes the root command, which
// opens the terminal bench picker when no subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:   "wavelab",
		Short: "wave optics bench: diffraction and interference",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, "")
			if err != nil {
				return err
			}
			quietForTUI()
			return runInteractiveTUI(cfg)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".wavelab", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.Float64Var(&wavelengthNm, "wavelength", config.DefaultWavelengthNm, "wavelength (nm)")
	pf.Float64Var(&slitWidthUm, "slit-width", config.DefaultSlitWidthUm, "slit width (µm)")
	pf.Float64Var(&separationUm, "separation", config.DefaultSeparationUm, "gap between slit edges (µm)")
	pf.IntVar(&slits, "slits", config.DefaultSlits, "number of slits")
	pf.Float64Var(&amplitude, "amplitude", config.DefaultAmplitude, "source amplitude")
	pf.BoolVar(&envelope, "envelope", false, "overlay the single-slit envelope")
	pf.Float64Var(&boost, "boost", 0, "contrast boost outside the first minimum (<=1 off)")
	pf.IntVar(&canvasW, "canvas-width", config.DefaultWidth, "headless canvas width (px)")
	pf.IntVar(&canvasH, "canvas-height", config.DefaultHeight, "headless canvas height (px)")

	rootCmd.AddCommand(
		liveCommand(),
		guiCommand(),
		windowCommand(),
		runCommand(),
		listCommand(),
		plotCommand(),
		exportJSONCommand(),
		perfCommand(),
		streamCommand(),
		evalCommand(),
		profileCommand(),
		analyzeCommand(),
		fitCommand(),
		scanCommand(),
		toleranceCommand(),
		scenarioCommand(),
		colorCommand(),
		exportCommand(),
		recordCommand(),
		presetsCommand(),
		variantsCommand(),
		saveConfigCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging() error {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
	if logFile == "" {
		return nil
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	return nil
}

// quietForTUI stops log lines from tearing the alternate screen unless they
// already go to a file.
func quietForTUI() {
	if logFile == "" {
		log.SetOutput(io.Discard)
	}
}

// resolveConfig layers, lowest first: defaults, the named bench, a preset,
// the config file, then any flag set on the command line.
func resolveConfig(cmd *cobra.Command, bench string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if bench != "" {
		b, err := experiment.NewRegistry().Get(bench)
		if err != nil {
			return nil, err
		}
		cfg.Variant = b.Variant.String()
		cfg.Wave = config.WaveConfig{
			WavelengthNm: b.Params.Wavelength * 1e9,
			SlitWidthUm:  b.Params.SlitWidth * 1e6,
			SeparationUm: b.Params.Separation * 1e6,
			Slits:        b.Params.Slits,
			Amplitude:    b.Params.Amplitude,
		}
	}

	if preset != "" {
		p := config.GetPreset(cfg.Variant, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.Variant))
		}
		cfg = p
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if bench != "" {
			fileCfg.Variant = cfg.Variant
		}
		cfg = fileCfg
	}

	flags := cmd.Flags()
	if flags.Changed("wavelength") {
		cfg.Wave.WavelengthNm = wavelengthNm
	}
	if flags.Changed("slit-width") {
		cfg.Wave.SlitWidthUm = slitWidthUm
	}
	if flags.Changed("separation") {
		cfg.Wave.SeparationUm = separationUm
	}
	if flags.Changed("slits") {
		cfg.Wave.Slits = slits
	}
	if flags.Changed("amplitude") {
		cfg.Wave.Amplitude = amplitude
	}
	if flags.Changed("envelope") {
		cfg.Envelope = envelope
	}
	if flags.Changed("boost") {
		cfg.Boost = boost
	}
	if flags.Changed("canvas-width") {
		cfg.Canvas.Width = canvasW
	}
	if flags.Changed("canvas-height") {
		cfg.Canvas.Height = canvasH
	}

	log.WithFields(log.Fields{
		"variant":    cfg.Variant,
		"wavelength": cfg.Wave.WavelengthNm,
		"width":      cfg.Wave.SlitWidthUm,
		"separation": cfg.Wave.SeparationUm,
		"slits":      cfg.Wave.Slits,
	}).Debug("Config resolved")
	return cfg, nil
}

// simOptions resolves the config for bench and converts it, reporting
// sanitized parameters through the logger.
func simOptions(cmd *cobra.Command, bench string) (*config.Config, sim.Options, error) {
	cfg, err := resolveConfig(cmd, bench)
	if err != nil {
		return nil, sim.Options{}, err
	}
	opts, err := cfg.Options(log.Warnf)
	if err != nil {
		return nil, sim.Options{}, err
	}
	return cfg, opts, nil
}

func benchArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

func benchLabel(cfg *config.Config, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.Variant
}
