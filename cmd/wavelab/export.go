package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/wavelab/internal/analysis"
	"github.com/san-kum/wavelab/internal/export"
)

var (
	outPath   string
	format    string
	recordOut string
	every     int
)

// createOutput opens path for writing; "-" is stdout.
func createOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// formatFor picks the export format from the flag or the file extension.
func formatFor(path, flag string) string {
	if flag != "" {
		return strings.ToLower(flag)
	}
	if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext != "" {
		return strings.ToLower(ext)
	}
	return "svg"
}

func exportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [bench]",
		Short: "export the screen profile (svg, html), screen view (screen-svg) or a frame (png)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, opts, err := simOptions(cmd, benchArg(args))
			if err != nil {
				return err
			}
			w, h := cfg.Size()
			kind := formatFor(outPath, format)

			s, raster, err := export.Snapshot(opts, w, h, frames)
			if err != nil {
				return err
			}

			f, err := createOutput(outPath)
			if err != nil {
				return err
			}
			defer f.Close()

			switch kind {
			case "png":
				err = export.WritePNG(f, raster)
			case "svg":
				ys, is := s.Profile(samples)
				_, err = io.WriteString(f, export.ProfileToSVG(ys, is, w, h/2, "#00ccff"))
			case "screen-svg":
				_, err = io.WriteString(f, export.ScreenToSVG(s, w, 40))
			case "html":
				ys, is := s.Profile(samples)
				title := fmt.Sprintf("%s intensity across the screen", s.Variant())
				err = export.WriteHTML(f, title, []analysis.Profile{{Wavelength: s.Params().Wavelength, Y: ys, I: is}})
			default:
				return fmt.Errorf("unknown format: %s (svg, screen-svg, html, png)", kind)
			}
			if err != nil {
				return err
			}
			log.WithFields(log.Fields{"path": outPath, "format": kind}).Info("Exported")
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "wavelab.svg", "output file, - for stdout")
	cmd.Flags().StringVar(&format, "format", "", "svg, screen-svg, html or png (default from extension)")
	cmd.Flags().IntVar(&frames, "frames", 60, "frames to simulate")
	cmd.Flags().IntVar(&samples, "samples", 400, "screen samples")
	return cmd
}

func recordCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record [bench]",
		Short: "record headless frames to an animated GIF",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, opts, err := simOptions(cmd, benchArg(args))
			if err != nil {
				return err
			}
			w, h := cfg.Size()
			rec, err := export.Record(opts, w, h, frames, every)
			if err != nil {
				return err
			}

			f, err := createOutput(recordOut)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := rec.Encode(f); err != nil {
				return err
			}
			fmt.Printf("recorded %d frames to %s\n", rec.Frames(), recordOut)
			return nil
		},
	}
	cmd.Flags().StringVarP(&recordOut, "out", "o", "wavelab.gif", "output file")
	cmd.Flags().IntVar(&frames, "frames", 60, "frames to simulate")
	cmd.Flags().IntVar(&every, "every", 3, "keep every Nth frame")
	return cmd
}
