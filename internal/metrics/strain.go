package metrics

import "math"

// Strain is the engineering strain (L - L0) / L0 at the last observed sample.
type Strain struct {
	name    string
	l0      float64
	last    float64
	samples int
}

func NewStrain(l0 float64) *Strain {
	return &Strain{
		name: "strain",
		l0:   l0,
	}
}

func (s *Strain) Name() string { return s.name }

func (s *Strain) Observe(t, length float64) {
	s.last = length
	s.samples++
}

func (s *Strain) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return (s.last - s.l0) / s.l0
}

func (s *Strain) Reset() {
	s.last = 0
	s.samples = 0
}

// Peak is the largest length observed.
type Peak struct {
	name string
	max  float64
}

func NewPeak() *Peak {
	return &Peak{
		name: "peak_length",
		max:  math.Inf(-1),
	}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(t, length float64) {
	p.max = math.Max(p.max, length)
}

func (p *Peak) Value() float64 {
	if math.IsInf(p.max, -1) {
		return 0
	}
	return p.max
}

func (p *Peak) Reset() {
	p.max = math.Inf(-1)
}
