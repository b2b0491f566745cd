package report

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"math"
	"strconv"

	"github.com/san-kum/voigtsim/internal/metrics"
	"github.com/san-kum/voigtsim/internal/sim"
	"github.com/san-kum/voigtsim/internal/voigt"
)

var csvHeader = []string{"time", "length"}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// WriteCSV writes a "time,length" table of every sample.
func WriteCSV(w io.Writer, series *sim.Series) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for i, t := range series.Times {
		if err := cw.Write([]string{formatFloat(t), formatFloat(series.Lengths[i])}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// StreamCSV writes the same table as WriteCSV while evaluating the model
// sample by sample, without holding the series in memory.
func StreamCSV(w io.Writer, p voigt.Params, cfg sim.Config) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	var writeErr error
	err := sim.Walk(p, cfg, func(t, l float64) bool {
		writeErr = cw.Write([]string{formatFloat(t), formatFloat(l)})
		return writeErr == nil
	})
	if err != nil {
		return err
	}
	if writeErr != nil {
		return writeErr
	}

	cw.Flush()
	return cw.Error()
}

type ExportData struct {
	Params    voigt.Params       `json:"params"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Alpha     float64            `json:"alpha"`
	Regime    string             `json:"regime"`
	Asymptote *float64           `json:"asymptote,omitempty"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
	Samples   int                `json:"samples"`
	Times     []float64          `json:"times"`
	Lengths   []*float64         `json:"lengths"`
}

// WriteJSON writes the run as an indented JSON document. Lengths that
// overflowed to infinity are encoded as null and non-finite metrics are
// left out.
func WriteJSON(w io.Writer, p voigt.Params, cfg sim.Config, series *sim.Series) error {
	data := ExportData{
		Params:   p,
		Dt:       cfg.Dt,
		Duration: cfg.Duration,
		Alpha:    p.Alpha(),
		Regime:   p.Regime().String(),
		Samples:  series.Len(),
		Times:    series.Times,
		Lengths:  make([]*float64, len(series.Lengths)),
	}
	if limit, ok := p.Asymptote(); ok {
		data.Asymptote = &limit
	}
	for name, v := range metrics.Collect(series, metrics.Defaults(p)...) {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			continue
		}
		if data.Metrics == nil {
			data.Metrics = make(map[string]float64)
		}
		data.Metrics[name] = v
	}
	for i := range series.Lengths {
		if l := series.Lengths[i]; !math.IsInf(l, 0) && !math.IsNaN(l) {
			data.Lengths[i] = &series.Lengths[i]
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
