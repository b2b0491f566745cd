package metrics

import (
	"math"

	"github.com/san-kum/voigtsim/internal/voigt"
)

// Settling reports the time from which every later sample stays within
// band of the asymptote, measured as a fraction of the total extension
// |asymptote - L0|. It is +Inf while the last sample is still outside.
type Settling struct {
	name    string
	target  float64
	width   float64
	inBand  bool
	entered float64
}

// NewSettling returns false for parameter sets that have no asymptote.
func NewSettling(p voigt.Params, band float64) (*Settling, bool) {
	target, ok := p.Asymptote()
	if !ok {
		return nil, false
	}
	return &Settling{
		name:   "settling_time",
		target: target,
		width:  band * math.Abs(target-p.L0),
	}, true
}

func (s *Settling) Name() string { return s.name }

func (s *Settling) Observe(t, length float64) {
	if math.Abs(length-s.target) <= s.width {
		if !s.inBand {
			s.inBand = true
			s.entered = t
		}
		return
	}
	s.inBand = false
}

func (s *Settling) Value() float64 {
	if !s.inBand {
		return math.Inf(1)
	}
	return s.entered
}

func (s *Settling) Reset() {
	s.inBand = false
	s.entered = 0
}
