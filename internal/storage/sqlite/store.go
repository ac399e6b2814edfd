// Package sqlite keeps runs in a single-file SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/bench-history/internal/apperr"
	"github.com/DjordjeVuckovic/bench-history/internal/domain"
	"github.com/DjordjeVuckovic/bench-history/internal/history"
	"github.com/DjordjeVuckovic/bench-history/internal/storage"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const schema = `
CREATE TABLE IF NOT EXISTS bench_runs (
	seq         INTEGER PRIMARY KEY AUTOINCREMENT,
	suite       TEXT    NOT NULL,
	commit_id   TEXT    NOT NULL,
	run_date    INTEGER NOT NULL,
	recorded_at INTEGER NOT NULL,
	tool        TEXT    NOT NULL,
	payload     TEXT    NOT NULL,
	UNIQUE (suite, commit_id, run_date)
);
CREATE INDEX IF NOT EXISTS idx_bench_runs_suite ON bench_runs (suite, seq);
`

type Config struct {
	// Path of the database file, or ":memory:".
	Path    string
	RepoURL string
}

type Store struct {
	db      *sql.DB
	repoURL string
	now     func() time.Time
}

func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// one writer keeps appends serialized and makes :memory: share a single database
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("configure sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create sqlite schema: %w", err)
	}

	return &Store{db: db, repoURL: cfg.RepoURL, now: time.Now}, nil
}

func (s *Store) Append(ctx context.Context, suite string, run domain.CommitRun) error {
	if err := storage.Validate(suite, run); err != nil {
		return err
	}

	payload, err := storage.MarshalRun(run)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO bench_runs (suite, commit_id, run_date, recorded_at, tool, payload)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		suite, run.Commit.ID, run.Date, s.now().UnixMilli(), string(run.Tool), string(payload),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.NewConflict(
				fmt.Sprintf("suite %q already has commit %s at %d", suite, run.Commit.ID, run.Date),
				history.ErrDuplicateRun,
			)
		}
		return fmt.Errorf("insert run: %w", err)
	}

	slog.Info("Run appended to sqlite", "suite", suite, "commit", run.Commit.ID, "benches", len(run.Benches))
	return nil
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}

func (s *Store) Runs(ctx context.Context, suite string) ([]domain.CommitRun, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM bench_runs WHERE suite = ? ORDER BY seq`, suite)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.CommitRun
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run, err := storage.UnmarshalRun([]byte(payload))
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	if len(runs) == 0 {
		return nil, apperr.NewNotFound("suite", suite)
	}
	return runs, nil
}

func (s *Store) Suites(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT suite FROM bench_runs ORDER BY suite`)
	if err != nil {
		return nil, fmt.Errorf("query suites: %w", err)
	}
	defer rows.Close()

	suites := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan suite: %w", err)
		}
		suites = append(suites, name)
	}
	return suites, rows.Err()
}

func (s *Store) Snapshot(ctx context.Context) (*domain.BenchmarkData, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT suite, recorded_at, payload FROM bench_runs ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query snapshot: %w", err)
	}
	defer rows.Close()

	data := domain.NewBenchmarkData(s.repoURL)
	for rows.Next() {
		var (
			suite      string
			recordedAt int64
			payload    string
		)
		if err := rows.Scan(&suite, &recordedAt, &payload); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run, err := storage.UnmarshalRun([]byte(payload))
		if err != nil {
			return nil, err
		}
		data.Entries[suite] = append(data.Entries[suite], run)
		data.LastUpdate = max(data.LastUpdate, recordedAt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshot: %w", err)
	}
	return data, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
