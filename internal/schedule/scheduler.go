// Package schedule cycles through the configured phases.
package schedule

import (
	"errors"

	"github.com/verte-zerg/pomotui/internal/model"
)

// ErrNoPhases is returned when a scheduler is built without phases.
var ErrNoPhases = errors.New("phase list is empty")

// Scheduler owns the ordered phase list and the current index.
// A Scheduler returned by New always holds at least one phase.
type Scheduler struct {
	phases []model.Phase
	index  int
}

// New builds a scheduler positioned on the first phase.
func New(phases []model.Phase) (*Scheduler, error) {
	if len(phases) == 0 {
		return nil, ErrNoPhases
	}
	return &Scheduler{phases: append([]model.Phase(nil), phases...)}, nil
}

// Current returns the active phase.
func (s *Scheduler) Current() model.Phase {
	return s.phases[s.index]
}

// Advance moves to the next phase, wrapping to the first one after the last.
func (s *Scheduler) Advance() model.Phase {
	s.index = (s.index + 1) % len(s.phases)
	return s.phases[s.index]
}

// Index returns the position of the current phase.
func (s *Scheduler) Index() int {
	return s.index
}

// Len returns the number of phases in the cycle.
func (s *Scheduler) Len() int {
	return len(s.phases)
}
