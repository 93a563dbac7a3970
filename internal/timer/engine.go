// Package timer runs phase countdowns.
package timer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/verte-zerg/pomotui/internal/event"
	"github.com/verte-zerg/pomotui/internal/model"
)

// DefaultInterval is the tick period of a countdown.
const DefaultInterval = 10 * time.Millisecond

// ErrSinkClosed is returned when the event consumer is gone.
var ErrSinkClosed = errors.New("event sink closed")

// Sink receives countdown events.
type Sink interface {
	Push(ev event.Event) error
}

// ControlSource delivers commands to a running countdown without blocking.
type ControlSource interface {
	Ready() <-chan struct{}
	TryRecv() (event.Command, bool)
}

// Options tunes how a countdown accumulates time.
type Options struct {
	// Interval is the tick period. Zero means DefaultInterval.
	Interval time.Duration
	// Measured adds the real time between ticks instead of a fixed Interval
	// per tick.
	Measured bool
	// RunID tags the emitted events.
	RunID uint64
}

// Engine counts one phase down. It is owned by a single goroutine.
type Engine struct {
	run      uint64
	phase    model.Phase
	total    time.Duration
	elapsed  time.Duration
	progress float64
	paused   bool
	interval time.Duration
	measured bool
	lastTick time.Time
}

// NewEngine prepares a countdown for phase.
func NewEngine(phase model.Phase, opts Options) *Engine {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	total := time.Duration(math.Round(phase.TotalSeconds() * float64(time.Second)))
	if total < 0 {
		total = 0
	}
	e := &Engine{
		run:      opts.RunID,
		phase:    phase,
		total:    total,
		interval: opts.Interval,
		measured: opts.Measured,
	}
	e.progress = e.ratio()
	return e
}

// Phase returns the phase being counted down.
func (e *Engine) Phase() model.Phase { return e.phase }

// Interval returns the tick period.
func (e *Engine) Interval() time.Duration { return e.interval }

// Total returns the phase length in seconds.
func (e *Engine) Total() float64 { return e.total.Seconds() }

// Elapsed returns the counted time in seconds.
func (e *Engine) Elapsed() float64 { return e.elapsed.Seconds() }

// Remaining returns the time left in seconds.
func (e *Engine) Remaining() float64 { return (e.total - e.elapsed).Seconds() }

// Progress returns elapsed/total in [0,1]. It reaches 1 only on completion.
func (e *Engine) Progress() float64 { return e.progress }

// Paused reports whether the countdown is frozen.
func (e *Engine) Paused() bool { return e.paused }

// Completed reports whether elapsed reached the total.
func (e *Engine) Completed() bool { return e.elapsed >= e.total }

// Pause freezes the countdown.
func (e *Engine) Pause() { e.paused = true }

// Resume unfreezes the countdown.
func (e *Engine) Resume() { e.paused = false }

// Step adds delta to elapsed, saturating at the total. It reports whether
// the countdown moved; paused or completed engines never move.
func (e *Engine) Step(delta time.Duration) bool {
	if e.paused || e.Completed() || delta <= 0 {
		return false
	}
	e.elapsed += delta
	if e.elapsed > e.total {
		e.elapsed = e.total
	}
	e.progress = e.ratio()
	return true
}

// Run counts down on ticks until the phase completes, pushing a Progress
// event to sink after every tick that moved the countdown. Pause and Resume
// commands from controls are applied between ticks. A StartPhase command
// stops the run early and is returned to the caller. The caller emits Done.
func (e *Engine) Run(ctx context.Context, ticks <-chan time.Time, controls ControlSource, sink Sink) (event.Command, error) {
	var ready <-chan struct{}
	if controls != nil {
		ready = controls.Ready()
	}
	for !e.Completed() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ready:
			for {
				cmd, ok := controls.TryRecv()
				if !ok {
					break
				}
				switch cmd.(type) {
				case event.Pause:
					e.Pause()
				case event.Resume:
					e.Resume()
				case event.StartPhase:
					return cmd, nil
				default:
					return nil, event.UnknownCommand(cmd)
				}
			}
		case now := <-ticks:
			if !e.Step(e.tickDelta(now)) {
				continue
			}
			sample := event.Progress{Run: e.run, Progress: e.progress, Remaining: e.Remaining()}
			if err := sink.Push(sample); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrSinkClosed, err)
			}
		}
	}
	return nil, nil
}

func (e *Engine) tickDelta(now time.Time) time.Duration {
	if !e.measured {
		return e.interval
	}
	last := e.lastTick
	e.lastTick = now
	if e.paused {
		return 0
	}
	if last.IsZero() {
		return e.interval
	}
	delta := now.Sub(last)
	if delta < 0 {
		return 0
	}
	return delta
}

func (e *Engine) ratio() float64 {
	if e.total <= 0 {
		return 1
	}
	return float64(e.elapsed) / float64(e.total)
}
