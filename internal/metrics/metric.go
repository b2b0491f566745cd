package metrics

import (
	"github.com/san-kum/voigtsim/internal/sim"
	"github.com/san-kum/voigtsim/internal/voigt"
)

// DefaultSettlingBand is the fraction of the total extension within which
// a relaxing string counts as settled.
const DefaultSettlingBand = 0.02

// Metric observes a trajectory one sample at a time.
type Metric interface {
	Name() string
	Observe(t, length float64)
	Value() float64
	Reset()
}

// Collect resets each metric, feeds it every sample of series and returns
// the values keyed by name.
func Collect(series *sim.Series, ms ...Metric) map[string]float64 {
	for _, m := range ms {
		m.Reset()
	}
	for i, t := range series.Times {
		for _, m := range ms {
			m.Observe(t, series.Lengths[i])
		}
	}

	values := make(map[string]float64, len(ms))
	for _, m := range ms {
		values[m.Name()] = m.Value()
	}
	return values
}

// Defaults returns the metrics reported for a run of p. Settling time is
// only included when the string relaxes toward an asymptote.
func Defaults(p voigt.Params) []Metric {
	ms := []Metric{
		NewStrain(p.L0),
		NewPeak(),
		NewWork(p.F),
		NewElasticEnergy(p),
	}
	if s, ok := NewSettling(p, DefaultSettlingBand); ok {
		ms = append(ms, s)
	}
	return ms
}
