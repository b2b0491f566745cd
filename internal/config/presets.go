package config

import (
	"sort"

	"github.com/san-kum/voigtsim/internal/voigt"
)

// Preset is a named material and time horizon. Chart settings always come
// from DefaultConfig.
type Preset struct {
	Description string
	Material    voigt.Params
	Dt          float64
	Duration    float64
}

var Presets = map[string]Preset{
	"default": {
		Description: "rubber band under 150 N, settles within a second",
		Material:    voigt.Params{L0: DefaultL0, E: DefaultE, F: DefaultF, V: DefaultV, Eta: DefaultEta},
		Dt:          0.1,
		Duration:    20.0,
	},
	"stiff": {
		Description: "nylon filament, small creep over a few seconds",
		Material:    voigt.Params{L0: 0.5, E: 2.0e9, F: 500.0, V: 1.0e-5, Eta: 1.0e9},
		Dt:          0.05,
		Duration:    10.0,
	},
	"gel": {
		Description: "soft gel strand, slow relaxation",
		Material:    voigt.Params{L0: 1.0, E: 1000.0, F: 1.0, V: 1.0, Eta: 500.0},
		Dt:          0.05,
		Duration:    5.0,
	},
	"runaway": {
		Description: "load exceeds elastic resistance, length grows exponentially",
		Material:    voigt.Params{L0: 1.0, E: 1.0e5, F: 20.0, V: 1.0e-4, Eta: 1.0e6},
		Dt:          0.1,
		Duration:    30.0,
	},
}

// GetPreset returns a fresh Config for the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Material = p.Material
	cfg.Dt = p.Dt
	cfg.Duration = p.Duration
	return cfg
}

// ListPresets returns preset names in lexical order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
