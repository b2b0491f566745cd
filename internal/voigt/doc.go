// Package voigt evaluates the closed-form length of a viscoelastic string
// modelled as a Voigt (Kelvin) element under constant force.
//
// A spring of Young's modulus E and a damper of viscosity Eta act in
// parallel. Under a constant force F on a string of volume V and initial
// length L0 the length obeys a first-order linear ODE whose solution is
//
//	alpha = F/V - E/L0
//	L(t)  = (L0 + E/alpha) * exp((L0/Eta) * alpha * t) - E/alpha
//
// The solution divides by alpha, so parameter sets with F/V ≈ E/L0 are
// rejected with a [DegenerateParametersError].
//
// # Example
//
//	p := voigt.Params{L0: 1, E: 2e6, F: 150, V: 0.001, Eta: 5e5}
//	l, err := p.Length(2.5)
//
// Every function in this package is pure and safe for concurrent use.
package voigt
