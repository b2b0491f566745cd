package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/voigtsim/internal/metrics"
	"github.com/san-kum/voigtsim/internal/sim"
	"github.com/san-kum/voigtsim/internal/viz"
	"github.com/san-kum/voigtsim/internal/voigt"
)

const sparkWidth = 40

var metricRows = map[string]struct {
	label  string
	format string
}{
	"strain":         {"Strain", "%.6f"},
	"peak_length":    {"Peak length", "%.6f m"},
	"work":           {"Work", "%.6g J"},
	"elastic_energy": {"Elastic energy", "%.6g J"},
	"settling_time":  {"Settling time", "%.3f s"},
}

// WriteSummary prints the derived model constants and the outcome of the
// run in a styled panel.
func WriteSummary(w io.Writer, st viz.Styles, p voigt.Params, series *sim.Series) error {
	var b strings.Builder

	b.WriteString(st.Header.Render("Voigt string") + "\n")
	b.WriteString(st.Row("Parameters", p.String()) + "\n")
	b.WriteString(st.Row("Alpha", fmt.Sprintf("%.6g Pa/m", p.Alpha())) + "\n")
	b.WriteString(st.Row("Rate", fmt.Sprintf("%.6g 1/s", p.Rate())) + "\n")

	regime := p.Regime()
	switch regime {
	case voigt.Relaxing:
		b.WriteString(st.Row("Regime", st.Success.Render(regime.String())) + "\n")
	default:
		b.WriteString(st.Row("Regime", st.Warning.Render(regime.String())) + "\n")
	}

	if tau, err := p.TimeConstant(); err == nil {
		b.WriteString(st.Row("Time constant", fmt.Sprintf("%.6g s", tau)) + "\n")
	}
	if limit, ok := p.Asymptote(); ok {
		b.WriteString(st.Row("Asymptote", fmt.Sprintf("%.6f m", limit)) + "\n")
	}

	b.WriteString(st.Row("Samples", fmt.Sprintf("%d", series.Len())) + "\n")
	if t, l, ok := series.Final(); ok {
		b.WriteString(st.Row("Final length", fmt.Sprintf("%.6f m at %.3f s", l, t)) + "\n")
	}

	ms := metrics.Defaults(p)
	values := metrics.Collect(series, ms...)
	for _, m := range ms {
		row := metricRows[m.Name()]
		v := values[m.Name()]
		value := fmt.Sprintf(row.format, v)
		if math.IsInf(v, 0) || math.IsNaN(v) {
			value = st.Muted.Render("n/a")
		}
		b.WriteString(st.Row(row.label, value) + "\n")
	}
	b.WriteString(st.Row("Trajectory", st.Muted.Render(viz.Sparkline(series.Lengths, sparkWidth))))

	_, err := fmt.Fprintln(w, st.Panel.Render(b.String()))
	return err
}
