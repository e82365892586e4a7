package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/wavelab/internal/optics"
	"github.com/san-kum/wavelab/internal/sim"
)

const (
	DefaultWavelengthNm = 500.0
	DefaultSlitWidthUm  = 20.0
	DefaultSeparationUm = 80.0
	DefaultSlits        = 2
	DefaultAmplitude    = 1.0
	DefaultWidth        = 800
	DefaultHeight       = 400
	DefaultSceneWidth   = 2.0
	DefaultScreenSpan   = 0.06
	DefaultStride       = 5
	DefaultFPS          = 60
)

// Config is the on-disk description of a bench. Lengths are in the units
// people quote them in: nanometers for light, micrometers for slits.
type Config struct {
	Variant  string       `yaml:"variant"`
	Wave     WaveConfig   `yaml:"wave"`
	Canvas   CanvasConfig `yaml:"canvas"`
	Envelope bool         `yaml:"envelope"`
	Boost    float64      `yaml:"boost"`
}

type WaveConfig struct {
	WavelengthNm float64 `yaml:"wavelength_nm"`
	SlitWidthUm  float64 `yaml:"slit_width_um"`
	SeparationUm float64 `yaml:"separation_um"`
	Slits        int     `yaml:"slits"`
	Amplitude    float64 `yaml:"amplitude"`
}

type CanvasConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	SceneWidth float64 `yaml:"scene_width_m"`
	ScreenSpan float64 `yaml:"screen_span_m"`
	Stride     int     `yaml:"stride"`
	FPS        int     `yaml:"fps"`
}

func DefaultConfig() *Config {
	return &Config{
		Variant: optics.VariantDoubleSlit.String(),
		Wave: WaveConfig{
			WavelengthNm: DefaultWavelengthNm,
			SlitWidthUm:  DefaultSlitWidthUm,
			SeparationUm: DefaultSeparationUm,
			Slits:        DefaultSlits,
			Amplitude:    DefaultAmplitude,
		},
		Canvas: CanvasConfig{
			Width:      DefaultWidth,
			Height:     DefaultHeight,
			SceneWidth: DefaultSceneWidth,
			ScreenSpan: DefaultScreenSpan,
			Stride:     DefaultStride,
			FPS:        DefaultFPS,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Params converts the wave section to SI units.
func (c *Config) Params() optics.Params {
	return optics.Params{
		Wavelength: c.Wave.WavelengthNm * 1e-9,
		SlitWidth:  c.Wave.SlitWidthUm * 1e-6,
		Separation: c.Wave.SeparationUm * 1e-6,
		Slits:      c.Wave.Slits,
		Amplitude:  c.Wave.Amplitude,
	}
}

func (c *Config) GetVariant() (optics.Variant, error) {
	return optics.ParseVariant(c.Variant)
}

// Options builds simulation options. logf may be nil.
func (c *Config) Options(logf func(string, ...any)) (sim.Options, error) {
	v, err := c.GetVariant()
	if err != nil {
		return sim.Options{}, err
	}
	opts := sim.DefaultOptions()
	opts.Variant = v
	opts.Params = c.Params()
	if c.Canvas.SceneWidth > 0 {
		opts.SceneWidth = c.Canvas.SceneWidth
	}
	if c.Canvas.ScreenSpan > 0 {
		opts.ScreenSpan = c.Canvas.ScreenSpan
	}
	if c.Canvas.Stride > 0 {
		opts.Stride = c.Canvas.Stride
	}
	opts.Envelope = c.Envelope
	opts.Boost = c.Boost
	opts.Logf = logf
	return opts, nil
}

// Size returns the canvas size, falling back to the defaults.
func (c *Config) Size() (w, h int) {
	w, h = c.Canvas.Width, c.Canvas.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return w, h
}
