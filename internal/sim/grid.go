package sim

import "math"

// gridEpsilon absorbs rounding in Duration/Dt so that 20/0.1 yields 200
// steps rather than 201.
const gridEpsilon = 1e-9

// steps returns n such that the grid is i*Dt for i in [0, n]. There is
// always at least one step so the grid starts at 0 and reaches Duration.
func (c Config) steps() int {
	n := int(math.Ceil(c.Duration/c.Dt - gridEpsilon))
	if n < 1 {
		n = 1
	}
	return n
}

// at returns the i-th grid time for a grid of n steps. Times are computed
// as i*Dt rather than accumulated, and the last one is clamped up to
// Duration when rounding leaves it just short.
func (c Config) at(i, n int) float64 {
	t := float64(i) * c.Dt
	if i == n && t < c.Duration {
		t = c.Duration
	}
	return t
}

// Grid returns the sample times 0, Dt, 2*Dt, ... ending at the first sample
// >= Duration. It is strictly increasing and its last element lies in
// [Duration, Duration+Dt).
func Grid(cfg Config) ([]float64, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	n := cfg.steps()
	times := make([]float64, n+1)
	for i := range times {
		times[i] = cfg.at(i, n)
	}
	return times, nil
}
