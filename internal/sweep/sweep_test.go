package sweep

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/san-kum/voigtsim/internal/sim"
	"github.com/san-kum/voigtsim/internal/voigt"
)

var rubberBand = voigt.Params{L0: 1.0, E: 2.0e6, F: 150.0, V: 0.001, Eta: 5e5}

var shortGrid = sim.Config{Dt: 0.5, Duration: 2}

func TestValues(t *testing.T) {
	tests := []struct {
		name  string
		sweep Sweep
		want  []float64
	}{
		{"five steps", Sweep{Min: 0, Max: 1, Steps: 5}, []float64{0, 0.25, 0.5, 0.75, 1}},
		{"single step", Sweep{Min: 3, Max: 9, Steps: 1}, []float64{3}},
		{"two steps", Sweep{Min: 100, Max: 200, Steps: 2}, []float64{100, 200}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sweep.Values(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		sweep Sweep
		want  error
	}{
		{"unknown param", Sweep{Param: "mass", Min: 0, Max: 1, Steps: 2, Sim: shortGrid}, ErrUnknownParam},
		{"reversed", Sweep{Param: "f", Min: 2, Max: 1, Steps: 2, Sim: shortGrid}, ErrInvalidRange},
		{"no steps", Sweep{Param: "f", Min: 0, Max: 1, Steps: 0, Sim: shortGrid}, ErrInvalidRange},
		{"bad grid", Sweep{Param: "f", Min: 0, Max: 1, Steps: 2, Sim: sim.Config{Dt: 0, Duration: 1}}, sim.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.sweep.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestRun_CrossesDegeneratePoint(t *testing.T) {
	s := Sweep{Param: "f", Min: 1000, Max: 3000, Steps: 3, Base: rubberBand, Sim: shortGrid}

	points, err := Run(context.Background(), s)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}

	if points[0].Err != nil || points[0].Params.Regime() != voigt.Relaxing {
		t.Errorf("expected relaxing first point, got %v %v", points[0].Err, points[0].Params.Regime())
	}
	if !errors.Is(points[1].Err, voigt.ErrDegenerateParameters) || points[1].Series != nil {
		t.Errorf("expected degenerate middle point, got %v", points[1].Err)
	}
	if points[2].Err != nil || points[2].Params.Regime() != voigt.Runaway {
		t.Errorf("expected runaway last point, got %v %v", points[2].Err, points[2].Params.Regime())
	}
	if points[2].Series.Len() != 5 || points[2].Metrics["strain"] <= 0 {
		t.Errorf("unexpected last point: %d samples, metrics %v", points[2].Series.Len(), points[2].Metrics)
	}

	if got := len(Succeeded(points)); got != 2 {
		t.Errorf("expected 2 successful points, got %d", got)
	}
}

func TestRun_OutOfBoundsPoint(t *testing.T) {
	s := Sweep{Param: "l0", Min: 0, Max: 1, Steps: 2, Base: rubberBand, Sim: shortGrid}

	points, err := Run(context.Background(), s)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !errors.Is(points[0].Err, voigt.ErrParameterBounds) {
		t.Errorf("expected bounds error for L0=0, got %v", points[0].Err)
	}
	if points[1].Err != nil {
		t.Errorf("expected L0=1 to simulate, got %v", points[1].Err)
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := Sweep{Param: "eta", Min: 1e5, Max: 1e6, Steps: 10, Base: rubberBand, Sim: shortGrid}
	if _, err := Run(ctx, s); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestSet(t *testing.T) {
	p := rubberBand
	if err := Set(&p, "eta", 42); err != nil || p.Eta != 42 {
		t.Errorf("expected eta 42, got %v (%v)", p.Eta, err)
	}
	if err := Set(&p, "nope", 1); !errors.Is(err, ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
	if got := ParamNames(); !reflect.DeepEqual(got, []string{"e", "eta", "f", "l0", "v"}) {
		t.Errorf("unexpected param names %v", got)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.yaml")
	doc := `param: eta
min: 1.0e5
max: 1.0e6
steps: 4
base: {l0: 1.0, e: 2.0e6, f: 150.0, v: 0.001, eta: 5.0e5}
sim: {dt: 0.5, duration: 2}
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Param != "eta" || s.Steps != 4 || s.Base != rubberBand || s.Sim != shortGrid {
		t.Errorf("unexpected sweep %+v", s)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("expected valid sweep, got %v", err)
	}
}
