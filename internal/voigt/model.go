package voigt

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Tolerances for deciding that F/V and E/L0 coincide. Either bound
// suffices: the absolute one covers small loads, the relative one covers
// stresses in the 1e3..1e9 Pa range where rounding noise scales with
// magnitude.
const (
	AbsTolerance = 1e-9
	RelTolerance = 1e-12
)

// Regime classifies the long-run behaviour of the solution.
type Regime int

const (
	Degenerate Regime = iota
	Relaxing
	Runaway
)

func (r Regime) String() string {
	switch r {
	case Relaxing:
		return "relaxing"
	case Runaway:
		return "runaway"
	default:
		return "degenerate"
	}
}

func (p Params) forcePerVolume() float64  { return p.F / p.V }
func (p Params) stressPerLength() float64 { return p.E / p.L0 }

// Alpha returns the rate constant F/V - E/L0.
func (p Params) Alpha() float64 {
	return p.forcePerVolume() - p.stressPerLength()
}

// IsDegenerate reports whether F/V and E/L0 are equal within
// AbsTolerance or RelTolerance.
func (p Params) IsDegenerate() bool {
	return scalar.EqualWithinAbsOrRel(p.forcePerVolume(), p.stressPerLength(), AbsTolerance, RelTolerance)
}

// CheckDegenerate returns a *DegenerateParametersError when alpha vanishes.
func (p Params) CheckDegenerate() error {
	if p.IsDegenerate() {
		return &DegenerateParametersError{Params: p, Alpha: p.Alpha()}
	}
	return nil
}

// Length returns the string length at time t >= 0.
//
// The exponential is not guarded: runaway parameter sets overflow to +Inf
// for large t.
func (p Params) Length(t float64) (float64, error) {
	if err := p.CheckDegenerate(); err != nil {
		return 0, err
	}
	if math.IsNaN(t) || math.IsInf(t, 0) || t < 0 {
		return 0, ErrInvalidTime
	}
	return p.length(p.Alpha(), t), nil
}

// length evaluates the closed form for a precomputed, non-degenerate alpha.
func (p Params) length(alpha, t float64) float64 {
	creep := p.E / alpha
	expTerm := math.Exp((p.L0 / p.Eta) * alpha * t)
	return (p.L0+creep)*expTerm - creep
}

// Length is the free-function form of Params.Length.
func Length(p Params, t float64) (float64, error) {
	return p.Length(t)
}

// Evaluator returns a length function with the degeneracy check hoisted
// out. It fails once, up front, instead of once per sample.
func (p Params) Evaluator() (func(t float64) float64, error) {
	if err := p.CheckDegenerate(); err != nil {
		return nil, err
	}
	alpha := p.Alpha()
	return func(t float64) float64 { return p.length(alpha, t) }, nil
}

// Rate returns the exponent coefficient (L0/Eta)*alpha in 1/s.
func (p Params) Rate() float64 {
	return (p.L0 / p.Eta) * p.Alpha()
}

// Regime reports whether the length settles, grows without bound, or is
// undefined.
func (p Params) Regime() Regime {
	if p.IsDegenerate() {
		return Degenerate
	}
	if p.Rate() < 0 {
		return Relaxing
	}
	return Runaway
}

// TimeConstant returns 1/|rate|, the e-folding time of the transient.
func (p Params) TimeConstant() (float64, error) {
	if err := p.CheckDegenerate(); err != nil {
		return 0, err
	}
	return 1 / math.Abs(p.Rate()), nil
}

// Asymptote returns the limiting length -E/alpha. ok is false unless the
// regime is Relaxing.
func (p Params) Asymptote() (length float64, ok bool) {
	if p.Regime() != Relaxing {
		return 0, false
	}
	return -p.E / p.Alpha(), true
}
