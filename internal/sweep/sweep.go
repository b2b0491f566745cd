package sweep

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/voigtsim/internal/metrics"
	"github.com/san-kum/voigtsim/internal/sim"
	"github.com/san-kum/voigtsim/internal/voigt"
)

var (
	// ErrUnknownParam is returned for a parameter name outside ParamNames.
	ErrUnknownParam = errors.New("sweep: unknown parameter")

	// ErrInvalidRange is returned for a non-finite or reversed range or a
	// step count below one.
	ErrInvalidRange = errors.New("sweep: invalid range")
)

var setters = map[string]func(p *voigt.Params, v float64){
	"l0":  func(p *voigt.Params, v float64) { p.L0 = v },
	"e":   func(p *voigt.Params, v float64) { p.E = v },
	"f":   func(p *voigt.Params, v float64) { p.F = v },
	"v":   func(p *voigt.Params, v float64) { p.V = v },
	"eta": func(p *voigt.Params, v float64) { p.Eta = v },
}

// ParamNames lists the material parameters that can be swept.
func ParamNames() []string {
	names := make([]string, 0, len(setters))
	for name := range setters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Set assigns v to the parameter called name.
func Set(p *voigt.Params, name string, v float64) error {
	set, ok := setters[name]
	if !ok {
		return fmt.Errorf("%w: %q (available: %v)", ErrUnknownParam, name, ParamNames())
	}
	set(p, v)
	return nil
}

// Sweep varies one material parameter linearly over [Min, Max] while the
// others stay at Base.
type Sweep struct {
	Param string       `yaml:"param"`
	Min   float64      `yaml:"min"`
	Max   float64      `yaml:"max"`
	Steps int          `yaml:"steps"`
	Base  voigt.Params `yaml:"base"`
	Sim   sim.Config   `yaml:"sim"`
}

// Point is the outcome at one parameter value. Err is set, and Series is
// nil, when that parameter set cannot be simulated.
type Point struct {
	Value   float64
	Params  voigt.Params
	Series  *sim.Series
	Metrics map[string]float64
	Err     error
}

// Load reads a sweep definition from a YAML file.
func Load(path string) (*Sweep, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var s Sweep
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse sweep %s: %w", path, err)
	}
	return &s, nil
}

func (s Sweep) Validate() error {
	if _, ok := setters[s.Param]; !ok {
		return fmt.Errorf("%w: %q (available: %v)", ErrUnknownParam, s.Param, ParamNames())
	}
	if math.IsNaN(s.Min) || math.IsInf(s.Min, 0) || math.IsNaN(s.Max) || math.IsInf(s.Max, 0) {
		return fmt.Errorf("%w: bounds must be finite, got [%g, %g]", ErrInvalidRange, s.Min, s.Max)
	}
	if s.Min > s.Max {
		return fmt.Errorf("%w: min %g > max %g", ErrInvalidRange, s.Min, s.Max)
	}
	if s.Steps < 1 {
		return fmt.Errorf("%w: steps must be at least 1, got %d", ErrInvalidRange, s.Steps)
	}
	return s.Sim.Validate()
}

// Values returns the swept parameter values. A single step yields Min.
func (s Sweep) Values() []float64 {
	values := make([]float64, s.Steps)
	if s.Steps == 1 {
		values[0] = s.Min
		return values
	}

	step := (s.Max - s.Min) / float64(s.Steps-1)
	for i := range values {
		values[i] = s.Min + float64(i)*step
	}
	values[len(values)-1] = s.Max
	return values
}

// Run simulates every point of the sweep concurrently. Points whose
// parameters are out of bounds or degenerate carry their error and do not
// stop the sweep. Run returns an error only for an invalid sweep or a
// cancelled context.
func Run(ctx context.Context, s Sweep) ([]Point, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	values := s.Values()
	points := make([]Point, len(values))

	sim.ParallelFor(len(values), 0, 1, func(start, end int) {
		for i := start; i < end; i++ {
			if ctx.Err() != nil {
				return
			}
			points[i] = runPoint(s, values[i])
		}
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return points, nil
}

func runPoint(s Sweep, value float64) Point {
	p := s.Base
	setters[s.Param](&p, value)

	pt := Point{Value: value, Params: p}
	if err := p.Validate(); err != nil {
		pt.Err = err
		return pt
	}

	series, err := sim.Simulate(p, s.Sim)
	if err != nil {
		pt.Err = err
		return pt
	}

	pt.Series = series
	pt.Metrics = metrics.Collect(series, metrics.Defaults(p)...)
	return pt
}

// Succeeded returns the points that produced a series.
func Succeeded(points []Point) []Point {
	var ok []Point
	for _, pt := range points {
		if pt.Err == nil {
			ok = append(ok, pt)
		}
	}
	return ok
}
