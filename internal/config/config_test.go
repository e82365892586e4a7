package config

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/san-kum/wavelab/internal/optics"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Variant != "double" {
		t.Errorf("expected variant double, got %s", cfg.Variant)
	}
	p, want := cfg.Params(), optics.DefaultParams()
	if math.Abs(p.Wavelength-want.Wavelength) > 1e-18 || math.Abs(p.SlitWidth-want.SlitWidth) > 1e-15 ||
		math.Abs(p.Separation-want.Separation) > 1e-15 || p.Slits != want.Slits {
		t.Errorf("default params = %+v, want %+v", p, want)
	}
	if w, h := cfg.Size(); w != DefaultWidth || h != DefaultHeight {
		t.Errorf("size = %dx%d", w, h)
	}
}

func TestParams_Units(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Wave = WaveConfig{WavelengthNm: 650, SlitWidthUm: 500, SeparationUm: 30, Slits: 3, Amplitude: 0.5}
	p := cfg.Params()

	if math.Abs(p.Wavelength-650e-9) > 1e-18 {
		t.Errorf("wavelength = %v", p.Wavelength)
	}
	if math.Abs(p.SlitWidth-500e-6) > 1e-15 {
		t.Errorf("width = %v", p.SlitWidth)
	}
	if math.Abs(p.Separation-30e-6) > 1e-15 {
		t.Errorf("separation = %v", p.Separation)
	}
	if p.Slits != 3 || p.Amplitude != 0.5 {
		t.Errorf("params = %+v", p)
	}
}

func TestOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Variant = "grating"
	cfg.Envelope = true
	cfg.Canvas.Stride = 3

	opts, err := cfg.Options(nil)
	if err != nil {
		t.Fatal(err)
	}
	if opts.Variant != optics.VariantNSlit || !opts.Envelope || opts.Stride != 3 {
		t.Errorf("options = %+v", opts)
	}

	cfg.Variant = "prism"
	if _, err := cfg.Options(nil); err == nil {
		t.Error("expected error for unknown variant")
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.yaml")

	cfg := GetPreset("nslit", "grating")
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if *got != *cfg {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("single", "wide")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Wave.SlitWidthUm != 500 {
		t.Errorf("expected width 500, got %f", cfg.Wave.SlitWidthUm)
	}
	if cfg.Canvas.Width != DefaultWidth {
		t.Error("preset should inherit the default canvas")
	}

	cfg.Wave.SlitWidthUm = 1
	if GetPreset("single", "wide").Wave.SlitWidthUm != 500 {
		t.Error("GetPreset should return a copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("single", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "wide"); cfg != nil {
		t.Error("expected nil for nonexistent variant")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("double")
	if len(presets) != 3 || presets[0] != "close" {
		t.Errorf("ListPresets(double) = %v", presets)
	}
	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for nonexistent variant")
	}
}

func TestPresets_Valid(t *testing.T) {
	for _, v := range Variants() {
		for _, name := range ListPresets(v) {
			cfg := GetPreset(v, name)
			got, err := cfg.GetVariant()
			if err != nil {
				t.Errorf("%s/%s: %v", v, name, err)
				continue
			}
			if got.String() != v {
				t.Errorf("%s/%s has variant %v", v, name, got)
			}
			if _, changed := optics.Sanitize(cfg.Params()); changed {
				t.Errorf("%s/%s has out-of-range parameters", v, name)
			}
		}
	}
}
