package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/pomotui/internal/controller"
	"github.com/verte-zerg/pomotui/internal/event"
)

func TestKeyPressesBecomeInputEvents(t *testing.T) {
	events := event.NewQueue[event.Event]()
	m := NewModel(events, controller.DefaultKeyMap(), nil)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})

	first, ok := events.TryRecv()
	if !ok || first != (event.Input{Key: "q"}) {
		t.Fatalf("expected q input, got %#v", first)
	}
	second, ok := events.TryRecv()
	if !ok || second != (event.Input{Key: " "}) {
		t.Fatalf("expected space input, got %#v", second)
	}
}

func TestClosedInboundQueueQuits(t *testing.T) {
	events := event.NewQueue[event.Event]()
	events.Close()
	m := NewModel(events, controller.DefaultKeyMap(), nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestExitStateQuitsAfterDrawing(t *testing.T) {
	m := NewModel(event.NewQueue[event.Event](), controller.DefaultKeyMap(), nil)
	_, cmd := m.Update(stateMsg(controller.DisplayState{PhaseName: "Work", Exit: true}))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
	if !strings.Contains(m.View(), "Phase: Work") {
		t.Fatalf("final frame missing phase")
	}
}

func TestViewEmptyBeforeFirstSnapshot(t *testing.T) {
	m := NewModel(event.NewQueue[event.Event](), controller.DefaultKeyMap(), nil)
	if m.View() != "" {
		t.Fatalf("expected empty view before first snapshot")
	}
}

func TestViewShowsOverviewGaugeAndHelp(t *testing.T) {
	m := NewModel(event.NewQueue[event.Event](), controller.DefaultKeyMap(), nil)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m.Update(stateMsg(controller.DisplayState{
		PhaseName:        "Work",
		TotalSeconds:     1500,
		RemainingSeconds: 1125,
		Progress:         0.25,
		Color:            "1",
		Paused:           true,
	}))

	out := m.View()
	for _, want := range []string{
		"Timer Overview",
		"Phase: Work",
		"[paused]",
		"Time: 06:15 / 25:00",
		"Timer Progress",
		"Timer: 25.00%",
		"pause",
		"resume",
		"quit",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q:\n%s", want, out)
		}
	}
}

func TestPhaseLineTruncatesAndShowsCycle(t *testing.T) {
	state := controller.DisplayState{PhaseName: "A very long phase name indeed", Cycle: 2}
	line := phaseLine(state, 12)
	if !strings.HasSuffix(line, "…") {
		t.Fatalf("expected truncated line, got %q", line)
	}
	full := phaseLine(controller.DisplayState{PhaseName: "Rest", Cycle: 1}, 80)
	if !strings.Contains(full, "Phase: Rest · cycle 2") {
		t.Fatalf("expected cycle suffix, got %q", full)
	}
}

func TestGaugeLabel(t *testing.T) {
	if got := gaugeLabel(controller.DisplayState{Progress: 1}); got != "Timer: 100.00%" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := gaugeLabel(controller.DisplayState{}); got != "Timer: 0.00%" {
		t.Fatalf("unexpected label %q", got)
	}
}
