package voigt

import (
	"fmt"
	"math"
)

// Params describes the string and the load applied to it.
//
// L0, V and Eta must be positive for the model to be physical. Length does
// not enforce this; callers that accept user input should call Validate.
type Params struct {
	L0  float64 `yaml:"l0" json:"l0"`   // initial length, m
	E   float64 `yaml:"e" json:"e"`     // Young's modulus, Pa
	F   float64 `yaml:"f" json:"f"`     // applied force, N
	V   float64 `yaml:"v" json:"v"`     // volume, m^3
	Eta float64 `yaml:"eta" json:"eta"` // viscosity coefficient, Pa·s
}

// Validate checks that every parameter is finite and that L0, V and Eta
// are strictly positive.
func (p Params) Validate() error {
	fields := []struct {
		name     string
		value    float64
		positive bool
	}{
		{"l0", p.L0, true},
		{"e", p.E, false},
		{"f", p.F, false},
		{"v", p.V, true},
		{"eta", p.Eta, true},
	}

	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s is not finite (%v)", ErrParameterBounds, f.name, f.value)
		}
		if f.positive && f.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %g", ErrParameterBounds, f.name, f.value)
		}
	}
	return nil
}

func (p Params) String() string {
	return fmt.Sprintf("L0=%g m, E=%g Pa, F=%g N, V=%g m^3, eta=%g Pa·s", p.L0, p.E, p.F, p.V, p.Eta)
}
