// Package history keeps a local SQLite record of finished runs so the
// player can see their last and best scores without the server.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Run is one finished run.
type Run struct {
	ID          int64
	Email       string
	Score       int
	Status      string
	Presented   int
	Answers     []string
	CompletedAt time.Time
}

// Summary aggregates the stored runs.
type Summary struct {
	Runs int
	Last *Run
	Best *Run
}

// Store wraps SQLite access for run history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create history dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	// A single connection keeps :memory: databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate history: %w", err)
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY,
			email TEXT NOT NULL,
			score INTEGER NOT NULL,
			status TEXT NOT NULL,
			presented INTEGER NOT NULL,
			answers TEXT NOT NULL,
			completed_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_completed_at ON runs(completed_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// timeLayout is fixed-width so completed_at sorts chronologically as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// answersSep joins answers in a single column; parsed answers never contain it.
const answersSep = "\n"

// InsertRun stores a finished run and returns its ID.
func (s *Store) InsertRun(ctx context.Context, run Run) (int64, error) {
	if run.CompletedAt.IsZero() {
		run.CompletedAt = time.Now()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (email, score, status, presented, answers, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.Email,
		run.Score,
		run.Status,
		run.Presented,
		strings.Join(run.Answers, answersSep),
		run.CompletedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	return res.LastInsertId()
}

const runColumns = `id, email, score, status, presented, answers, completed_at`

// ListRuns returns up to limit runs, newest first. A non-positive limit
// returns every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY completed_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

// Summary returns the run count, the most recent run and the best run.
// Ties for best go to the earliest run.
func (s *Store) Summary(ctx context.Context) (Summary, error) {
	var summary Summary
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs`).Scan(&summary.Runs); err != nil {
		return Summary{}, fmt.Errorf("failed to count runs: %w", err)
	}
	if summary.Runs == 0 {
		return summary, nil
	}

	last, err := s.queryOne(ctx, `SELECT `+runColumns+` FROM runs ORDER BY completed_at DESC, id DESC LIMIT 1`)
	if err != nil {
		return Summary{}, err
	}
	best, err := s.queryOne(ctx, `SELECT `+runColumns+` FROM runs ORDER BY score DESC, completed_at ASC, id ASC LIMIT 1`)
	if err != nil {
		return Summary{}, err
	}
	summary.Last = last
	summary.Best = best
	return summary, nil
}

func (s *Store) queryOne(ctx context.Context, query string) (*Run, error) {
	run, err := scanRun(s.db.QueryRowContext(ctx, query))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var (
		run       Run
		answers   string
		completed string
	)
	if err := row.Scan(&run.ID, &run.Email, &run.Score, &run.Status, &run.Presented, &answers, &completed); err != nil {
		return Run{}, err
	}
	run.Answers = []string{}
	if answers != "" {
		run.Answers = strings.Split(answers, answersSep)
	}
	t, err := time.Parse(timeLayout, completed)
	if err != nil {
		return Run{}, fmt.Errorf("failed to parse completed_at %q: %w", completed, err)
	}
	run.CompletedAt = t
	return run, nil
}
