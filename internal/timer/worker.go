package timer

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/verte-zerg/pomotui/internal/event"
	"github.com/verte-zerg/pomotui/internal/logging"
)

// CommandSource is the worker's inbound command queue.
type CommandSource interface {
	ControlSource
	Recv(ctx context.Context) (event.Command, error)
}

// TickerFunc starts a tick source with period d and returns it with its stop func.
type TickerFunc func(d time.Duration) (<-chan time.Time, func())

// Worker executes phase countdowns one at a time.
type Worker struct {
	commands CommandSource
	events   Sink
	opts     Options
	ticker   TickerFunc
	logger   *log.Logger
}

// NewWorker builds a worker reading commands and pushing events.
func NewWorker(commands CommandSource, events Sink, opts Options, logger *log.Logger) *Worker {
	return &Worker{
		commands: commands,
		events:   events,
		opts:     opts,
		ticker:   systemTicker,
		logger:   logging.OrDiscard(logger),
	}
}

// SetTicker replaces the tick source.
func (w *Worker) SetTicker(fn TickerFunc) {
	if fn == nil {
		fn = systemTicker
	}
	w.ticker = fn
}

// Run blocks on the command queue and runs each requested phase to
// completion, pushing Done afterwards. Pause and Resume received while no
// phase runs are dropped. It returns when ctx ends, the command queue is
// closed, or the event sink is gone.
func (w *Worker) Run(ctx context.Context) error {
	var pending event.Command
	for {
		cmd := pending
		pending = nil
		if cmd == nil {
			next, err := w.commands.Recv(ctx)
			if err != nil {
				return fmt.Errorf("timer worker: %w", err)
			}
			cmd = next
		}

		switch c := cmd.(type) {
		case event.StartPhase:
			next, err := w.runPhase(ctx, c)
			if err != nil {
				w.logger.Error("timer worker stopped", "phase", c.Phase.Name, "err", err)
				return fmt.Errorf("timer worker: %w", err)
			}
			pending = next
		case event.Pause, event.Resume:
			w.logger.Debug("no running phase, command dropped", "command", fmt.Sprintf("%T", c))
		default:
			return event.UnknownCommand(cmd)
		}
	}
}

func (w *Worker) runPhase(ctx context.Context, start event.StartPhase) (event.Command, error) {
	phase := start.Phase
	opts := w.opts
	opts.RunID = start.Run
	engine := NewEngine(phase, opts)
	ticks, stop := w.ticker(engine.Interval())
	defer stop()

	w.logger.Info("phase started", "phase", phase.Name, "seconds", engine.Total())
	next, err := engine.Run(ctx, ticks, w.commands, w.events)
	if err != nil {
		return nil, err
	}
	if next != nil {
		w.logger.Info("phase preempted", "phase", phase.Name, "elapsed", engine.Elapsed())
		return next, nil
	}

	if err := w.events.Push(event.Done{Run: start.Run, Phase: phase, Elapsed: engine.Elapsed()}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSinkClosed, err)
	}
	w.logger.Info("phase done", "phase", phase.Name, "elapsed", engine.Elapsed())
	return nil, nil
}

func systemTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}
