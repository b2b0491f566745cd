package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/voigtsim/internal/sim"
	"github.com/san-kum/voigtsim/internal/voigt"
)

const (
	DefaultL0  = 1.0
	DefaultE   = 2.0e6
	DefaultF   = 150.0
	DefaultV   = 0.001
	DefaultEta = 5.0e5

	DefaultChartOutput = "voigt_length.png"
	DefaultChartTitle  = "Voigt model: string length vs time"
	DefaultChartWidth  = 8.0
	DefaultChartHeight = 5.0
)

type Config struct {
	Material   voigt.Params `yaml:"material"`
	Dt         float64      `yaml:"dt"`
	Duration   float64      `yaml:"duration"`
	MaxSamples int          `yaml:"max_samples"`
	Chart      ChartConfig  `yaml:"chart"`
}

type ChartConfig struct {
	Output   string  `yaml:"output"`
	Title    string  `yaml:"title"`
	Width    float64 `yaml:"width"`  // inches
	Height   float64 `yaml:"height"` // inches
	Terminal bool    `yaml:"terminal"`
}

func DefaultConfig() *Config {
	return &Config{
		Material: voigt.Params{
			L0:  DefaultL0,
			E:   DefaultE,
			F:   DefaultF,
			V:   DefaultV,
			Eta: DefaultEta,
		},
		Dt:         sim.DefaultDt,
		Duration:   sim.DefaultDuration,
		MaxSamples: sim.DefaultMaxSamples,
		Chart: ChartConfig{
			Output:   DefaultChartOutput,
			Title:    DefaultChartTitle,
			Width:    DefaultChartWidth,
			Height:   DefaultChartHeight,
			Terminal: true,
		},
	}
}

// Load reads a YAML file on top of DefaultConfig, so omitted keys keep
// their defaults.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a YAML file on top of a copy of base.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Write encodes cfg as YAML to w.
func Write(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

// SimConfig returns the time grid settings.
func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		Dt:         c.Dt,
		Duration:   c.Duration,
		MaxSamples: c.MaxSamples,
	}
}

// Validate checks material bounds and the time grid. Degeneracy is not a
// validation failure here; it surfaces from the simulator with the
// offending values.
func (c *Config) Validate() error {
	if err := c.Material.Validate(); err != nil {
		return err
	}
	if err := c.SimConfig().Validate(); err != nil {
		return err
	}
	if c.Chart.Output != "" && (c.Chart.Width <= 0 || c.Chart.Height <= 0) {
		return fmt.Errorf("chart size must be positive, got %gx%g in", c.Chart.Width, c.Chart.Height)
	}
	return nil
}
