// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
	"time"
)

// TimeUnit tags a phase duration with its unit.
type TimeUnit int

const (
	Seconds TimeUnit = iota
	Minutes
	Hours
)

// Factor returns the number of seconds in one unit.
func (u TimeUnit) Factor() float64 {
	switch u {
	case Minutes:
		return 60
	case Hours:
		return 3600
	default:
		return 1
	}
}

func (u TimeUnit) String() string {
	switch u {
	case Minutes:
		return "minutes"
	case Hours:
		return "hours"
	default:
		return "seconds"
	}
}

// ParseTimeUnit maps config spellings to a TimeUnit.
func ParseTimeUnit(value string) (TimeUnit, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "s", "sec", "secs", "second", "seconds":
		return Seconds, nil
	case "", "m", "min", "mins", "minute", "minutes":
		return Minutes, nil
	case "h", "hr", "hour", "hours":
		return Hours, nil
	default:
		return Seconds, fmt.Errorf("unknown time unit %q", value)
	}
}

// Phase is one named countdown segment of the cycle.
type Phase struct {
	Name     string
	Duration float64
	Unit     TimeUnit
	Color    string
}

// TotalSeconds returns the phase length in seconds.
func (p Phase) TotalSeconds() float64 {
	return p.Duration * p.Unit.Factor()
}

// DefaultPhases is the classic 25/5 cycle.
func DefaultPhases() []Phase {
	return []Phase{
		{Name: "Work", Duration: 25, Unit: Minutes, Color: "1"},
		{Name: "Rest", Duration: 5, Unit: Minutes, Color: "4"},
	}
}

// Config defines runtime settings for the timer.
type Config struct {
	Phases       []Phase
	TickInterval time.Duration
	Measured     bool
	LogLevel     string
	History      bool
}

// HistoryConfig defines filters for history output.
type HistoryConfig struct {
	Since *time.Time
	Last  int
}

// PhaseRun captures one finished phase run.
type PhaseRun struct {
	SessionID      string
	Phase          string
	PlannedSeconds float64
	ElapsedSeconds float64
	Completed      bool
	StartedAt      time.Time
	EndedAt        time.Time
}

// PhaseAggregate summarizes runs of one phase for reporting.
type PhaseAggregate struct {
	Phase          string
	Runs           int
	Completed      int
	ElapsedSeconds float64
	LastEndedAt    time.Time
}
