package metrics

import "github.com/san-kum/voigtsim/internal/voigt"

// Work is the work done by the constant applied force, F times the change
// in length between the first and last sample.
type Work struct {
	name    string
	force   float64
	first   float64
	last    float64
	samples int
}

func NewWork(force float64) *Work {
	return &Work{
		name:  "work",
		force: force,
	}
}

func (w *Work) Name() string { return w.name }

func (w *Work) Observe(t, length float64) {
	if w.samples == 0 {
		w.first = length
	}
	w.last = length
	w.samples++
}

func (w *Work) Value() float64 {
	if w.samples == 0 {
		return 0
	}
	return w.force * (w.last - w.first)
}

func (w *Work) Reset() {
	w.first = 0
	w.last = 0
	w.samples = 0
}

// ElasticEnergy is the energy stored in the spring element at the last
// sample, E*V*strain^2/2. The rest of the work is lost to the dashpot.
type ElasticEnergy struct {
	name    string
	modulus float64
	volume  float64
	l0      float64
	last    float64
	samples int
}

func NewElasticEnergy(p voigt.Params) *ElasticEnergy {
	return &ElasticEnergy{
		name:    "elastic_energy",
		modulus: p.E,
		volume:  p.V,
		l0:      p.L0,
	}
}

func (e *ElasticEnergy) Name() string { return e.name }

func (e *ElasticEnergy) Observe(t, length float64) {
	e.last = length
	e.samples++
}

func (e *ElasticEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	strain := (e.last - e.l0) / e.l0
	return 0.5 * e.modulus * e.volume * strain * strain
}

func (e *ElasticEnergy) Reset() {
	e.last = 0
	e.samples = 0
}
