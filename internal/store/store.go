// Package store handles SQLite persistence of finished phase runs.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/pomotui/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// timeLayout is fixed-width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps SQLite access for phase history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS phase_runs (
			id INTEGER PRIMARY KEY,
			session_id TEXT NOT NULL,
			phase TEXT NOT NULL,
			planned_seconds REAL NOT NULL,
			elapsed_seconds REAL NOT NULL,
			completed INTEGER NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_phase_runs_ended_at ON phase_runs(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_phase_runs_phase ON phase_runs(phase);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// RecordRun stores one finished phase run.
func (s *Store) RecordRun(ctx context.Context, run model.PhaseRun) error {
	_, err := s.InsertRun(ctx, run)
	return err
}

// InsertRun stores one finished phase run and returns its row id.
func (s *Store) InsertRun(ctx context.Context, run model.PhaseRun) (int64, error) {
	completed := 0
	if run.Completed {
		completed = 1
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO phase_runs (session_id, phase, planned_seconds, elapsed_seconds, completed, started_at, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.SessionID,
		run.Phase,
		run.PlannedSeconds,
		run.ElapsedSeconds,
		completed,
		run.StartedAt.UTC().Format(timeLayout),
		run.EndedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("insert phase run: %w", err)
	}
	return res.LastInsertId()
}

// ListRuns returns phase runs filtered by cfg, oldest first. When cfg.Last
// is positive only the most recent runs are returned.
func (s *Store) ListRuns(ctx context.Context, cfg model.HistoryConfig) ([]model.PhaseRun, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.UTC().Format(timeLayout))
	}
	limit := ""
	if cfg.Last > 0 {
		limit = "LIMIT ?"
		args = append(args, cfg.Last)
	}
	query := fmt.Sprintf(`SELECT session_id, phase, planned_seconds, elapsed_seconds, completed, started_at, ended_at
		FROM (
			SELECT * FROM phase_runs
			WHERE %s
			ORDER BY ended_at DESC, id DESC
			%s
		)
		ORDER BY ended_at ASC, id ASC`, strings.Join(clauses, " AND "), limit)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var runs []model.PhaseRun
	for rows.Next() {
		var run model.PhaseRun
		var completed int
		var startedAt, endedAt string
		if err := rows.Scan(&run.SessionID, &run.Phase, &run.PlannedSeconds, &run.ElapsedSeconds, &completed, &startedAt, &endedAt); err != nil {
			return nil, err
		}
		run.Completed = completed != 0
		if run.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
			return nil, err
		}
		if run.EndedAt, err = time.Parse(timeLayout, endedAt); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}
