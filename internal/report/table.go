// Package report writes simulated trajectories as text: the whole-second
// table, a run summary, and CSV/JSON exports.
package report

import (
	"fmt"
	"io"
	"math"

	"github.com/san-kum/voigtsim/internal/sim"
)

// wholeSecondTolerance absorbs rounding in i*dt grid times.
const wholeSecondTolerance = 1e-9

// WholeSecond reports whether t is an integer number of seconds and
// returns that integer.
func WholeSecond(t float64) (int, bool) {
	r := math.Round(t)
	if math.Abs(t-r) > wholeSecondTolerance {
		return 0, false
	}
	return int(r), true
}

// WriteTable prints one line per sample whose time is a whole number of
// seconds.
func WriteTable(w io.Writer, series *sim.Series) error {
	for i, t := range series.Times {
		sec, ok := WholeSecond(t)
		if !ok {
			continue
		}
		if _, err := fmt.Fprintf(w, "Time = %d s, Length = %.6f m\n", sec, series.Lengths[i]); err != nil {
			return err
		}
	}
	return nil
}
