// Package chart renders length trajectories as terminal line charts
// (asciigraph) and as image files (gonum/plot).
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/voigtsim/internal/sim"
)

const (
	XLabel = "Time (s)"
	YLabel = "Length (m)"
)

var ErrNoData = errors.New("chart: no finite samples to plot")

// Line is one labelled trajectory.
type Line struct {
	Name   string
	Series *sim.Series
}

type Options struct {
	Title  string
	Width  float64 // inches for images, columns for the terminal
	Height float64 // inches for images, rows for the terminal
}

// Terminal renders the lengths as an asciigraph plot. Width and Height are
// in character cells; zero picks 80x12.
func Terminal(series *sim.Series, opts Options) (string, error) {
	data, ok := finite(series.Lengths)
	if !ok {
		return "", ErrNoData
	}

	width, height := int(opts.Width), int(opts.Height)
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 12
	}

	caption := YLabel + " vs " + XLabel
	if opts.Title != "" {
		caption = opts.Title
	}

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(4),
		asciigraph.Caption(caption),
	), nil
}

// New builds a titled, labelled, gridded line plot of every line.
func New(title string, lines ...Line) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = XLabel
	p.Y.Label.Text = YLabel
	stylePlot(p)
	p.Add(plotter.NewGrid())

	plotted := 0
	for i, l := range lines {
		pts := points(l.Series)
		if len(pts) < 2 {
			continue
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("line %q: %w", l.Name, err)
		}
		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Color = plotutil.Color(i)
		p.Add(line)
		if l.Name != "" && len(lines) > 1 {
			p.Legend.Add(l.Name, line)
		}
		plotted++
	}
	if plotted == 0 {
		return nil, ErrNoData
	}
	p.Legend.Top = true

	return p, nil
}

// Save renders the lines to path. The image format follows the file
// extension (.png, .svg, .pdf, .jpg, ...).
func Save(path string, opts Options, lines ...Line) error {
	p, err := New(opts.Title, lines...)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create directory: %w", err)
		}
	}

	w, h := opts.Width, opts.Height
	if w <= 0 {
		w = 8
	}
	if h <= 0 {
		h = 5
	}
	if err := p.Save(vg.Length(w)*vg.Inch, vg.Length(h)*vg.Inch, path); err != nil {
		return fmt.Errorf("save chart %s: %w", path, err)
	}
	return nil
}

func stylePlot(p *plot.Plot) {
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Title.Padding = vg.Points(8)

	p.X.Label.TextStyle.Font.Size = vg.Points(12)
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)
	p.X.Label.Padding = vg.Points(6)
	p.Y.Label.Padding = vg.Points(6)

	p.BackgroundColor = color.White
}

// points drops non-finite samples, which gonum/plot refuses.
func points(s *sim.Series) plotter.XYs {
	if s == nil {
		return nil
	}
	pts := make(plotter.XYs, 0, s.Len())
	for i, t := range s.Times {
		l := s.Lengths[i]
		if math.IsNaN(l) || math.IsInf(l, 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: t, Y: l})
	}
	return pts
}

func finite(values []float64) ([]float64, bool) {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out, len(out) > 0
}
