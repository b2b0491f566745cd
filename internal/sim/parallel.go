package sim

import (
	"runtime"
	"sync"

	"github.com/san-kum/voigtsim/internal/voigt"
)

// parallelMinChunk keeps small grids on the calling goroutine.
const parallelMinChunk = 4096

// ParallelFor executes fn over [0, n) split into at most workers contiguous
// chunks.
func ParallelFor(n, workers, minChunk int, fn func(start, end int)) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if n <= minChunk || workers <= 1 {
		fn(0, n)
		return
	}

	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}

// SimulateParallel is Simulate with the per-sample evaluation spread over
// workers goroutines (GOMAXPROCS when workers <= 0). The result is
// identical to Simulate.
func SimulateParallel(p voigt.Params, cfg Config, workers int) (*Series, error) {
	times, err := Grid(cfg)
	if err != nil {
		return nil, err
	}

	eval, err := p.Evaluator()
	if err != nil {
		return nil, err
	}

	lengths := make([]float64, len(times))
	ParallelFor(len(times), workers, parallelMinChunk, func(start, end int) {
		for i := start; i < end; i++ {
			lengths[i] = eval(times[i])
		}
	})

	return &Series{Times: times, Lengths: lengths}, nil
}

// SimulateAll runs one simulation per parameter set concurrently on the
// same grid. Results are in input order; the first error in input order
// is returned and no results.
func SimulateAll(params []voigt.Params, cfg Config) ([]*Series, error) {
	results := make([]*Series, len(params))
	errs := make([]error, len(params))

	var wg sync.WaitGroup
	for i := range params {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx], errs[idx] = Simulate(params[idx], cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
