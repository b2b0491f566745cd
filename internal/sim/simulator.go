package sim

import (
	"github.com/san-kum/voigtsim/internal/voigt"
)

// Simulate evaluates the model at every grid time. It either returns the
// whole series or an error; degenerate parameters abort before any sample
// is computed.
func Simulate(p voigt.Params, cfg Config) (*Series, error) {
	times, err := Grid(cfg)
	if err != nil {
		return nil, err
	}

	eval, err := p.Evaluator()
	if err != nil {
		return nil, err
	}

	result := &Series{
		Times:   times,
		Lengths: make([]float64, len(times)),
	}
	for i, t := range times {
		result.Lengths[i] = eval(t)
	}

	return result, nil
}

// Walk streams (t, length) pairs in grid order without materialising the
// series. It stops early, without error, when fn returns false. Calling
// Walk again restarts from t = 0.
func Walk(p voigt.Params, cfg Config, fn func(t, length float64) bool) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	eval, err := p.Evaluator()
	if err != nil {
		return err
	}

	n := cfg.steps()
	for i := 0; i <= n; i++ {
		t := cfg.at(i, n)
		if !fn(t, eval(t)) {
			return nil
		}
	}

	return nil
}
