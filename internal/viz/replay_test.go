package viz

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/voigtsim/internal/sim"
	"github.com/san-kum/voigtsim/internal/voigt"
)

func newTestReplay(t *testing.T) Replay {
	t.Helper()
	p := voigt.Params{L0: 1.0, E: 2.0e6, F: 150.0, V: 0.001, Eta: 5e5}
	series, err := sim.Simulate(p, sim.Config{Dt: 0.1, Duration: 3})
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	return NewReplay(p, series, "test", ThemeMinimal)
}

func update(m Replay, msg tea.Msg) (Replay, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Replay), cmd
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestReplayTickAdvances(t *testing.T) {
	m := newTestReplay(t)

	m, cmd := update(m, TickMsg{})
	if m.PlayHead() != 1 {
		t.Errorf("expected play head 1, got %d", m.PlayHead())
	}
	if cmd == nil {
		t.Error("expected next tick to be scheduled")
	}
}

func TestReplayPause(t *testing.T) {
	m := newTestReplay(t)

	m, _ = update(m, tea.KeyMsg{Type: tea.KeySpace})
	if m.Running() {
		t.Fatal("expected paused")
	}
	m, _ = update(m, TickMsg{})
	if m.PlayHead() != 0 {
		t.Errorf("paused replay advanced to %d", m.PlayHead())
	}
}

func TestReplayScrubAndClamp(t *testing.T) {
	m := newTestReplay(t)

	m, _ = update(m, key("]"))
	if m.PlayHead() != 10 {
		t.Errorf("expected one second forward (10 samples), got %d", m.PlayHead())
	}

	m, _ = update(m, key("["))
	m, _ = update(m, key("["))
	if m.PlayHead() != 0 {
		t.Errorf("expected clamp at 0, got %d", m.PlayHead())
	}

	for i := 0; i < 10; i++ {
		m, _ = update(m, key("]"))
	}
	if m.PlayHead() != 30 {
		t.Errorf("expected clamp at last sample, got %d", m.PlayHead())
	}
}

func TestReplayStopsAtEnd(t *testing.T) {
	m := newTestReplay(t)

	for i := 0; i < 100; i++ {
		m, _ = update(m, TickMsg{})
	}
	if m.Running() {
		t.Error("expected replay to stop at the end")
	}
	if m.PlayHead() != 30 {
		t.Errorf("expected last sample, got %d", m.PlayHead())
	}

	m, _ = update(m, key("r"))
	if m.PlayHead() != 0 || !m.Running() {
		t.Error("restart should rewind and resume")
	}
}

func TestReplayQuit(t *testing.T) {
	m := newTestReplay(t)

	_, cmd := update(m, key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestReplayView(t *testing.T) {
	m := newTestReplay(t)
	m, _ = update(m, key("]"))

	view := m.View()
	for _, want := range []string{"test", "Length", "relaxing", "Asymptote", "1.000 s"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
