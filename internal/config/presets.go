package config

import "sort"

// Presets are named wave climates. High-angle dominated climates grow
// shoreline instabilities; low-angle climates smooth the coast.
var Presets = map[string]*Config{
	"smooth": {
		Coastline: CoastlineConfig{Rows: 100, Cols: 200, Spacing: 200.0},
		Waves:     WavesConfig{Asymmetry: 0.5, Highness: 0.1, Height: 1.5, Period: 7.0, Seed: 1},
		Run:       RunConfig{Steps: 3000},
	},
	"capes": {
		Coastline: CoastlineConfig{Rows: 100, Cols: 200, Spacing: 200.0},
		Waves:     WavesConfig{Asymmetry: 0.5, Highness: 0.7, Height: 2.0, Period: 8.0, Seed: 1},
		Run:       RunConfig{Steps: 5000},
	},
	"spits": {
		Coastline: CoastlineConfig{Rows: 100, Cols: 200, Spacing: 200.0},
		Waves:     WavesConfig{Asymmetry: 0.9, Highness: 0.6, Height: 2.0, Period: 8.0, Seed: 1},
		Run:       RunConfig{Steps: 5000},
	},
	"stormy": {
		Coastline: CoastlineConfig{Rows: 100, Cols: 200, Spacing: 200.0, ClosureDepth: 15.0},
		Waves:     WavesConfig{Asymmetry: 0.2, Highness: 0.4, Height: 3.5, Period: 11.0, Seed: 1},
		Run:       RunConfig{Steps: 2000},
	},
}

// GetPreset returns a copy of the named preset, or nil if it does not exist.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	out := *cfg
	return &out
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
