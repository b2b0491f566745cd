package sim

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidConfig indicates a non-positive or non-finite step or horizon.
	ErrInvalidConfig = errors.New("sim: invalid simulation config")

	// ErrGridTooLarge indicates the grid would exceed Config.MaxSamples.
	ErrGridTooLarge = errors.New("sim: time grid exceeds sample limit")
)

const (
	DefaultDt         = 0.1
	DefaultDuration   = 20.0
	DefaultMaxSamples = 10_000_000
)

// Config describes the time grid: samples 0, Dt, 2*Dt, ... up to the first
// sample at or past Duration.
type Config struct {
	Dt         float64 `yaml:"dt"`
	Duration   float64 `yaml:"duration"`
	MaxSamples int     `yaml:"max_samples"`
}

func DefaultConfig() Config {
	return Config{
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		MaxSamples: DefaultMaxSamples,
	}
}

// Validate rejects grids that are empty, unbounded or larger than
// MaxSamples. A zero MaxSamples means DefaultMaxSamples.
func (c Config) Validate() error {
	if math.IsNaN(c.Dt) || math.IsInf(c.Dt, 0) || c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive and finite, got %v", ErrInvalidConfig, c.Dt)
	}
	if math.IsNaN(c.Duration) || math.IsInf(c.Duration, 0) || c.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive and finite, got %v", ErrInvalidConfig, c.Duration)
	}
	if c.MaxSamples < 0 {
		return fmt.Errorf("%w: max samples must not be negative, got %d", ErrInvalidConfig, c.MaxSamples)
	}

	steps := c.Duration / c.Dt
	if steps+1 > float64(c.maxSamples()) {
		return fmt.Errorf("%w: %.0f samples requested, limit %d", ErrGridTooLarge, math.Ceil(steps)+1, c.maxSamples())
	}
	return nil
}

func (c Config) maxSamples() int {
	if c.MaxSamples == 0 {
		return DefaultMaxSamples
	}
	return c.MaxSamples
}

// Series is a length trajectory. Times and Lengths are index aligned and
// must not be modified after Simulate returns them.
type Series struct {
	Times   []float64
	Lengths []float64
}

func (s *Series) Len() int { return len(s.Times) }

// Final returns the last sample. ok is false for an empty series.
func (s *Series) Final() (t, length float64, ok bool) {
	if len(s.Times) == 0 {
		return 0, 0, false
	}
	i := len(s.Times) - 1
	return s.Times[i], s.Lengths[i], true
}
