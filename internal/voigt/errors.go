package voigt

import (
	"errors"
	"fmt"
)

// Domain errors for model evaluation.
var (
	// ErrDegenerateParameters indicates F/V and E/L0 are numerically equal,
	// leaving the closed-form solution undefined.
	ErrDegenerateParameters = errors.New("voigt: degenerate parameters (F/V equals E/L0)")

	// ErrInvalidTime indicates a negative or non-finite evaluation time.
	ErrInvalidTime = errors.New("voigt: time must be finite and non-negative")

	// ErrParameterBounds indicates a parameter value is outside its physical range.
	ErrParameterBounds = errors.New("voigt: parameter out of valid bounds")
)

// DegenerateParametersError carries the parameter set that made alpha vanish.
type DegenerateParametersError struct {
	Params Params
	Alpha  float64
}

func (e *DegenerateParametersError) Error() string {
	p := e.Params
	return fmt.Sprintf("%v: F/V = %g/%g = %g, E/L0 = %g/%g = %g, alpha = %g",
		ErrDegenerateParameters,
		p.F, p.V, p.F/p.V,
		p.E, p.L0, p.E/p.L0,
		e.Alpha)
}

func (e *DegenerateParametersError) Unwrap() error {
	return ErrDegenerateParameters
}
