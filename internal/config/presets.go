package config

import "sort"

func wave(nm, widthUm, sepUm float64, slits int) WaveConfig {
	return WaveConfig{WavelengthNm: nm, SlitWidthUm: widthUm, SeparationUm: sepUm, Slits: slits, Amplitude: 1}
}

var Presets = map[string]map[string]*Config{
	"single": {
		"narrow": {Variant: "single", Wave: wave(500, 20, 0, 1)},
		"wide":   {Variant: "single", Wave: wave(500, 500, 0, 1)},
		"red":    {Variant: "single", Wave: wave(650, 40, 0, 1), Boost: 4},
	},
	"double": {
		"young":  {Variant: "double", Wave: wave(500, 20, 80, 2), Envelope: true},
		"close":  {Variant: "double", Wave: wave(550, 20, 20, 2), Envelope: true},
		"violet": {Variant: "double", Wave: wave(410, 10, 100, 2)},
	},
	"nslit": {
		"five":    {Variant: "nslit", Wave: wave(500, 20, 40, 5), Envelope: true},
		"grating": {Variant: "nslit", Wave: wave(600, 5, 15, 12)},
	},
	"twosource": {
		"green": {Variant: "twosource", Wave: wave(530, 20, 80, 2)},
		"red":   {Variant: "twosource", Wave: wave(700, 20, 80, 2)},
	},
}

// GetPreset returns a copy of the preset with any unset canvas fields taken
// from the defaults, or nil.
func GetPreset(variant, preset string) *Config {
	variantPresets, ok := Presets[variant]
	if !ok {
		return nil
	}
	p, ok := variantPresets[preset]
	if !ok {
		return nil
	}
	cfg := *p
	if cfg.Canvas == (CanvasConfig{}) {
		cfg.Canvas = DefaultConfig().Canvas
	}
	return &cfg
}

func ListPresets(variant string) []string {
	variantPresets, ok := Presets[variant]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(variantPresets))
	for name := range variantPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Variants lists the variants that have presets.
func Variants() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
