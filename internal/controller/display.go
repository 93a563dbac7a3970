package controller

import (
	"fmt"
	"math"
)

// fullRatio is the largest ratio drawn; a gauge never shows exactly 1.
var fullRatio = math.Nextafter(1, 0)

// DisplayState is the snapshot handed to the renderer after every event.
type DisplayState struct {
	PhaseName        string
	TotalSeconds     float64
	RemainingSeconds float64
	Progress         float64
	Color            string
	Paused           bool
	Exit             bool
	// Cycle counts completed passes over the phase list.
	Cycle int
}

// Elapsed returns the counted time of the current phase in seconds.
func (s DisplayState) Elapsed() float64 {
	return s.TotalSeconds - s.RemainingSeconds
}

// Ratio returns Progress clamped to [0,1).
func (s DisplayState) Ratio() float64 {
	if s.Progress >= 1 {
		return fullRatio
	}
	if s.Progress < 0 || math.IsNaN(s.Progress) {
		return 0
	}
	return s.Progress
}

// TimeLabel renders "elapsed / total" as mm:ss.
func (s DisplayState) TimeLabel() string {
	return FormatTime(s.Elapsed()) + " / " + FormatTime(s.TotalSeconds)
}

// FormatTime renders seconds as mm:ss, rounding to whole seconds. Minutes do
// not roll over into hours.
func FormatTime(secs float64) string {
	total := int64(math.Round(math.Max(secs, 0)))
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
