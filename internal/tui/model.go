// Package tui provides the Bubble Tea timer interface. It draws controller
// snapshots and forwards key presses to the controller; it holds no timer
// state of its own.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/verte-zerg/pomotui/internal/controller"
	"github.com/verte-zerg/pomotui/internal/event"
	"github.com/verte-zerg/pomotui/internal/logging"
)

// InputSink is the controller's inbound queue.
type InputSink interface {
	Push(ev event.Event) error
}

type stateMsg controller.DisplayState

// Model implements the Bubble Tea timer UI.
type Model struct {
	events InputSink
	keys   controller.KeyMap
	logger *log.Logger

	help help.Model
	bar  progress.Model

	state    controller.DisplayState
	hasState bool

	width  int
	height int
}

// NewModel constructs a timer TUI model that pushes keys to events.
func NewModel(events InputSink, keys controller.KeyMap, logger *log.Logger) *Model {
	return &Model{
		events: events,
		keys:   keys,
		logger: logging.OrDiscard(logger),
		help:   help.New(),
		bar:    progress.New(progress.WithSolidFill(defaultBarColor), progress.WithoutPercentage()),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if err := m.events.Push(event.Input{Key: msg.String()}); err != nil {
			m.logger.Error("input listener stopped", "err", err)
			return m, tea.Quit
		}
		return m, nil
	case stateMsg:
		m.state = controller.DisplayState(msg)
		m.hasState = true
		if m.state.Exit {
			return m, tea.Quit
		}
		return m, nil
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if !m.hasState {
		return ""
	}
	return m.render()
}

// Renderer hands controller snapshots to a running Bubble Tea program.
type Renderer struct {
	program *tea.Program
}

// NewRenderer wraps program.
func NewRenderer(program *tea.Program) *Renderer {
	return &Renderer{program: program}
}

// Render implements controller.Renderer. The snapshot is copied into the
// program's message loop, which redraws immediately.
func (r *Renderer) Render(state controller.DisplayState) error {
	r.program.Send(stateMsg(state))
	return nil
}
