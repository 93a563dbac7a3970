// Package event defines the messages exchanged between the input listener,
// the timer worker and the controller, and the queues that carry them.
package event

import (
	"errors"
	"fmt"

	"github.com/verte-zerg/pomotui/internal/model"
)

var (
	// ErrUnknownEvent is returned when a consumer meets an Event variant it does not handle.
	ErrUnknownEvent = errors.New("unknown event")
	// ErrUnknownCommand is returned when a consumer meets a Command variant it does not handle.
	ErrUnknownCommand = errors.New("unknown command")
)

// Event is a message consumed by the controller.
// Implementations: Input, Progress, Done.
type Event interface {
	isEvent()
}

// Input carries one key press from the input listener.
type Input struct {
	Key string
}

// String returns the key name, so Input can be matched against key bindings.
func (i Input) String() string { return i.Key }

// Progress is a countdown sample from the running engine.
type Progress struct {
	Run       uint64
	Progress  float64
	Remaining float64
}

// Done reports that a phase countdown reached its total.
type Done struct {
	Run     uint64
	Phase   model.Phase
	Elapsed float64
}

func (Input) isEvent()    {}
func (Progress) isEvent() {}
func (Done) isEvent()     {}

// Command is a message consumed by the timer worker.
// Implementations: StartPhase, Pause, Resume.
type Command interface {
	isCommand()
}

// StartPhase asks the worker to run a countdown for Phase.
// It preempts any countdown that is still running. Run is echoed in the
// Progress and Done events of that countdown.
type StartPhase struct {
	Run   uint64
	Phase model.Phase
}

// Pause freezes the running countdown.
type Pause struct{}

// Resume unfreezes the running countdown.
type Resume struct{}

func (StartPhase) isCommand() {}
func (Pause) isCommand()      {}
func (Resume) isCommand()     {}

// UnknownEvent wraps ErrUnknownEvent with the offending type.
func UnknownEvent(ev Event) error {
	return fmt.Errorf("%w: %T", ErrUnknownEvent, ev)
}

// UnknownCommand wraps ErrUnknownCommand with the offending type.
func UnknownCommand(cmd Command) error {
	return fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
}
