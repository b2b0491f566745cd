package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/voigtsim/internal/sim"
	"github.com/san-kum/voigtsim/internal/voigt"
)

const (
	canvasCols = 60
	canvasRows = 6
	frameRate  = 30
	graphWidth = 50
	maxSpeed   = 64
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Replay plays back a precomputed series: the string is drawn anchored to
// a wall with a load at its free end, stretched to scale.
type Replay struct {
	params   voigt.Params
	series   *sim.Series
	title    string
	theme    Theme
	styles   Styles
	canvas   *Canvas
	playHead int
	speed    int
	running  bool
	scale    float64
	perSec   int
}

// NewReplay prepares a replay of series. series must be non-empty.
func NewReplay(p voigt.Params, series *sim.Series, title string, theme Theme) Replay {
	scale := 0.0
	for _, l := range series.Lengths {
		if !math.IsInf(l, 0) && !math.IsNaN(l) && l > scale {
			scale = l
		}
	}
	if scale == 0 {
		scale = 1
	}

	perSec := 1
	if series.Len() > 1 {
		if dt := series.Times[1] - series.Times[0]; dt > 0 && dt < 1 {
			perSec = int(math.Round(1 / dt))
		}
	}

	return Replay{
		params:  p,
		series:  series,
		title:   title,
		theme:   theme,
		styles:  NewStyles(theme),
		canvas:  NewCanvas(canvasCols, canvasRows),
		speed:   1,
		running: true,
		scale:   scale,
		perSec:  perSec,
	}
}

func (m Replay) PlayHead() int { return m.playHead }
func (m Replay) Running() bool { return m.running }

func (m Replay) Init() tea.Cmd {
	return tick()
}

// Update handles input events and advances the play head.
func (m Replay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if m.atEnd() {
				m.playHead = 0
			}
			m.running = !m.running
		case "r":
			m.playHead = 0
			m.running = true
		case "[":
			m.seek(-m.perSec)
		case "]":
			m.seek(m.perSec)
		case "+", "=":
			m.speed = min(m.speed*2, maxSpeed)
		case "-", "_":
			m.speed = max(m.speed/2, 1)
		case "t":
			m.theme = m.theme.next()
			m.styles = NewStyles(m.theme)
		}
	case TickMsg:
		if m.running {
			m.seek(m.speed)
			if m.atEnd() {
				m.running = false
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m *Replay) seek(delta int) {
	m.playHead = min(max(m.playHead+delta, 0), m.series.Len()-1)
}

func (m Replay) atEnd() bool {
	return m.playHead >= m.series.Len()-1
}

// draw renders the wall, the string and the load for length l.
func (m Replay) draw(l float64) {
	c := m.canvas
	c.Clear()

	mid := c.DotHeight() / 2
	c.FillRect(0, 0, 1, c.DotHeight()-1)

	span := float64(c.DotWidth() - 8)
	frac := l / m.scale
	if math.IsNaN(frac) || frac < 0 {
		frac = 0
	}
	frac = math.Min(frac, 1)
	end := 2 + int(frac*span)

	c.Line(2, mid, end, mid)
	c.FillRect(end, mid-3, end+4, mid+3)
}

// View renders the TUI interface.
func (m Replay) View() string {
	t := m.series.Times[m.playHead]
	l := m.series.Lengths[m.playHead]
	m.draw(l)

	status := m.styles.Success.Render("PLAYING")
	switch {
	case m.atEnd():
		status = m.styles.Muted.Render("DONE")
	case !m.running:
		status = m.styles.Warning.Render("PAUSED")
	}

	var s strings.Builder
	s.WriteString(m.styles.Header.Render(m.title) + "\n")
	s.WriteString(fmt.Sprintf("%s  x%d\n\n", status, m.speed))
	s.WriteString(m.styles.Graph.Render(m.canvas.String()) + "\n")

	s.WriteString(m.styles.Row("Time", fmt.Sprintf("%.3f s", t)) + "\n")
	s.WriteString(m.styles.Row("Length", fmt.Sprintf("%.6f m", l)) + "\n")
	s.WriteString(m.styles.Row("Alpha", fmt.Sprintf("%.6g", m.params.Alpha())) + "\n")
	s.WriteString(m.styles.Row("Regime", m.params.Regime().String()) + "\n")
	if limit, ok := m.params.Asymptote(); ok {
		s.WriteString(m.styles.Row("Asymptote", fmt.Sprintf("%.6f m", limit)) + "\n")
	}

	if m.playHead > 0 {
		history := make([]float64, m.playHead+1)
		plottable := false
		for i, v := range m.series.Lengths[:m.playHead+1] {
			if math.IsInf(v, 0) {
				v = math.NaN()
			}
			plottable = plottable || !math.IsNaN(v)
			history[i] = v
		}
		if plottable {
			chart := asciigraph.Plot(history, asciigraph.Height(6), asciigraph.Width(graphWidth), asciigraph.Caption("length (m)"))
			s.WriteString(m.styles.Graph.Render(chart) + "\n")
		}
	}

	s.WriteString(m.styles.Muted.Render("SP:Pause R:Restart [ ]:Scrub +/-:Speed T:Theme Q:Quit"))

	return lipgloss.NewStyle().Padding(1, 2).Render(s.String())
}

// RunReplay runs the replay as a Bubble Tea program until the user quits.
func RunReplay(m Replay, opts ...tea.ProgramOption) error {
	if m.series == nil || m.series.Len() == 0 {
		return fmt.Errorf("nothing to replay")
	}
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}
