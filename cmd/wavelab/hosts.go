package main

import (
	"github.com/spf13/cobra"

	"github.com/san-kum/wavelab/internal/config"
	"github.com/san-kum/wavelab/internal/desktop"
	"github.com/san-kum/wavelab/internal/gui"
	"github.com/san-kum/wavelab/internal/viz"
)

var (
	termCols int
	termRows int
)

func runInteractiveTUI(cfg *config.Config) error {
	return viz.RunInteractive(cfg)
}

func liveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "live [bench]",
		Short: "run a bench in the terminal with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, opts, err := simOptions(cmd, benchArg(args))
			if err != nil {
				return err
			}
			quietForTUI()
			m, err := viz.NewModel(opts, termCols, termRows, benchLabel(cfg, args))
			if err != nil {
				return err
			}
			return viz.RunLive(m)
		},
	}
	cmd.Flags().IntVar(&termCols, "cols", 60, "canvas columns")
	cmd.Flags().IntVar(&termRows, "rows", 20, "canvas rows")
	return cmd
}

func guiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "gui [bench]",
		Short: "open the raylib window; without a bench, start at the menu",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, opts, err := simOptions(cmd, benchArg(args))
			if err != nil {
				return err
			}
			if len(args) == 0 && preset == "" && configFile == "" {
				return gui.RunInteractive(opts)
			}
			return gui.Run(opts, benchLabel(cfg, args))
		},
	}
}

func windowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "window [bench]",
		Short: "open the ebiten window with mouse and touch dragging",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, opts, err := simOptions(cmd, benchArg(args))
			if err != nil {
				return err
			}
			w, h := cfg.Size()
			return desktop.Run(opts, w, h)
		},
	}
}
