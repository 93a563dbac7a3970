// Package controller owns the display state and drives the phase cycle.
// It is the only consumer of the inbound event queue and the only producer
// of timer commands.
package controller

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/log"

	"github.com/verte-zerg/pomotui/internal/event"
	"github.com/verte-zerg/pomotui/internal/logging"
	"github.com/verte-zerg/pomotui/internal/model"
	"github.com/verte-zerg/pomotui/internal/schedule"
)

// Renderer draws a snapshot. It must not keep or mutate it.
type Renderer interface {
	Render(state DisplayState) error
}

// Recorder stores finished phase runs.
type Recorder interface {
	RecordRun(ctx context.Context, run model.PhaseRun) error
}

// CommandSink is the timer worker's command queue.
type CommandSink interface {
	Push(cmd event.Command) error
}

// EventSource is the inbound event queue.
type EventSource interface {
	Recv(ctx context.Context) (event.Event, error)
}

// Options configures optional collaborators.
type Options struct {
	Renderer  Renderer
	Recorder  Recorder
	Logger    *log.Logger
	Keys      *KeyMap
	SessionID string
	Now       func() time.Time
}

// Controller reacts to events one at a time and redraws after each.
type Controller struct {
	scheduler *schedule.Scheduler
	commands  CommandSink
	renderer  Renderer
	recorder  Recorder
	logger    *log.Logger
	keys      KeyMap
	sessionID string
	now       func() time.Time

	state     DisplayState
	run       uint64
	startedAt time.Time
}

// New builds a controller for the given phase cycle.
func New(scheduler *schedule.Scheduler, commands CommandSink, opts Options) *Controller {
	c := &Controller{
		scheduler: scheduler,
		commands:  commands,
		renderer:  opts.Renderer,
		recorder:  opts.Recorder,
		logger:    logging.OrDiscard(opts.Logger),
		keys:      DefaultKeyMap(),
		sessionID: opts.SessionID,
		now:       opts.Now,
	}
	if opts.Keys != nil {
		c.keys = *opts.Keys
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// State returns a copy of the current display state.
func (c *Controller) State() DisplayState {
	return c.state
}

// Run starts the current phase and consumes events until a quit key arrives.
// The state is rendered once up front and once after every event, including
// the one that requested exit.
func (c *Controller) Run(ctx context.Context, events EventSource) error {
	if err := c.start(c.scheduler.Current()); err != nil {
		return err
	}
	if err := c.render(); err != nil {
		return err
	}
	for !c.state.Exit {
		ev, err := events.Recv(ctx)
		if err != nil {
			return fmt.Errorf("controller: receive event: %w", err)
		}
		if err := c.Handle(ctx, ev); err != nil {
			return err
		}
		if err := c.render(); err != nil {
			return err
		}
	}
	c.logger.Info("quit", "phase", c.state.PhaseName, "cycle", c.state.Cycle)
	return nil
}

// Handle applies one event to the display state. Progress and Done events
// from a countdown that was already replaced are ignored.
func (c *Controller) Handle(ctx context.Context, ev event.Event) error {
	switch e := ev.(type) {
	case event.Input:
		return c.handleKey(ctx, e)
	case event.Progress:
		if e.Run != c.run {
			return nil
		}
		c.state.Progress = e.Progress
		c.state.RemainingSeconds = e.Remaining
		return nil
	case event.Done:
		if e.Run != c.run {
			c.logger.Debug("stale done dropped", "phase", e.Phase.Name, "run", e.Run)
			return nil
		}
		c.record(ctx, e.Elapsed, true)
		return c.next()
	default:
		return event.UnknownEvent(ev)
	}
}

func (c *Controller) handleKey(ctx context.Context, in event.Input) error {
	switch {
	case key.Matches(in, c.keys.Quit):
		c.state.Exit = true
	case key.Matches(in, c.keys.Pause):
		if c.state.Paused {
			return nil
		}
		if err := c.send(event.Pause{}); err != nil {
			return err
		}
		c.state.Paused = true
		c.logger.Debug("paused", "phase", c.state.PhaseName, "elapsed", c.state.Elapsed())
	case key.Matches(in, c.keys.Resume):
		if !c.state.Paused {
			return nil
		}
		if err := c.send(event.Resume{}); err != nil {
			return err
		}
		c.state.Paused = false
		c.logger.Debug("resumed", "phase", c.state.PhaseName, "elapsed", c.state.Elapsed())
	case key.Matches(in, c.keys.Skip):
		c.logger.Info("phase skipped", "phase", c.state.PhaseName, "elapsed", c.state.Elapsed())
		c.record(ctx, c.state.Elapsed(), false)
		return c.next()
	}
	return nil
}

func (c *Controller) next() error {
	phase := c.scheduler.Advance()
	if c.scheduler.Index() == 0 {
		c.state.Cycle++
	}
	return c.start(phase)
}

func (c *Controller) start(phase model.Phase) error {
	total := phase.TotalSeconds()
	c.state.PhaseName = phase.Name
	c.state.TotalSeconds = total
	c.state.RemainingSeconds = total
	c.state.Progress = 0
	c.state.Color = phase.Color
	c.state.Paused = false
	c.startedAt = c.now()
	c.run++
	return c.send(event.StartPhase{Run: c.run, Phase: phase})
}

func (c *Controller) send(cmd event.Command) error {
	if err := c.commands.Push(cmd); err != nil {
		return fmt.Errorf("controller: send %T: %w", cmd, err)
	}
	return nil
}

func (c *Controller) record(ctx context.Context, elapsed float64, completed bool) {
	if c.recorder == nil {
		return
	}
	run := model.PhaseRun{
		SessionID:      c.sessionID,
		Phase:          c.state.PhaseName,
		PlannedSeconds: c.state.TotalSeconds,
		ElapsedSeconds: elapsed,
		Completed:      completed,
		StartedAt:      c.startedAt,
		EndedAt:        c.now(),
	}
	if err := c.recorder.RecordRun(ctx, run); err != nil {
		c.logger.Warn("failed to record phase run", "phase", run.Phase, "err", err)
	}
}

func (c *Controller) render() error {
	if c.renderer == nil {
		return nil
	}
	if err := c.renderer.Render(c.state); err != nil {
		return fmt.Errorf("controller: render: %w", err)
	}
	return nil
}
