package stats

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/verte-zerg/pomotui/internal/model"
)

// RunLister loads phase runs.
type RunLister interface {
	ListRuns(ctx context.Context, cfg model.HistoryConfig) ([]model.PhaseRun, error)
}

// Report contains precomputed data for history rendering.
type Report struct {
	Runs     []model.PhaseRun
	Phases   []model.PhaseAggregate
	Sessions int
}

// BuildReport loads runs and aggregates them per phase.
func BuildReport(ctx context.Context, st RunLister, cfg model.HistoryConfig) (Report, error) {
	runs, err := st.ListRuns(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Runs:     runs,
		Phases:   aggregatePhases(runs),
		Sessions: countSessions(runs),
	}, nil
}

func aggregatePhases(runs []model.PhaseRun) []model.PhaseAggregate {
	byPhase := map[string]*model.PhaseAggregate{}
	var order []string
	for _, run := range runs {
		agg, ok := byPhase[run.Phase]
		if !ok {
			agg = &model.PhaseAggregate{Phase: run.Phase}
			byPhase[run.Phase] = agg
			order = append(order, run.Phase)
		}
		agg.Runs++
		if run.Completed {
			agg.Completed++
		}
		agg.ElapsedSeconds += run.ElapsedSeconds
		if run.EndedAt.After(agg.LastEndedAt) {
			agg.LastEndedAt = run.EndedAt
		}
	}
	out := make([]model.PhaseAggregate, 0, len(order))
	for _, name := range order {
		out = append(out, *byPhase[name])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ElapsedSeconds > out[j].ElapsedSeconds
	})
	return out
}

func countSessions(runs []model.PhaseRun) int {
	seen := map[string]struct{}{}
	for _, run := range runs {
		seen[run.SessionID] = struct{}{}
	}
	return len(seen)
}

// Lines renders the report as an aligned table followed by a summary line.
func (r Report) Lines(now time.Time) []string {
	if len(r.Runs) == 0 {
		return []string{"No phase runs recorded yet."}
	}
	headers := []string{"Phase", "Runs", "Completed", "Time", "Last"}
	rows := make([][]string, 0, len(r.Phases))
	var total float64
	for _, agg := range r.Phases {
		total += agg.ElapsedSeconds
		rows = append(rows, []string{
			agg.Phase,
			fmt.Sprintf("%d", agg.Runs),
			fmt.Sprintf("%d", agg.Completed),
			FormatDuration(agg.ElapsedSeconds),
			humanize.RelTime(agg.LastEndedAt, now, "ago", "from now"),
		})
	}
	lines := formatTable(headers, rows, map[int]bool{1: true, 2: true, 3: true})
	lines = append(lines, "", fmt.Sprintf("%d runs in %d sessions, %s total", len(r.Runs), r.Sessions, FormatDuration(total)))
	return lines
}

// FormatDuration renders seconds as h:mm:ss, or mm:ss under an hour.
func FormatDuration(secs float64) string {
	total := int64(math.Round(math.Max(secs, 0)))
	h, m, s := total/3600, (total/60)%60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
