// Package pg keeps runs in PostgreSQL, one row per run with the run as JSONB.
package pg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/bench-history/db"
	"github.com/DjordjeVuckovic/bench-history/internal/apperr"
	"github.com/DjordjeVuckovic/bench-history/internal/domain"
	"github.com/DjordjeVuckovic/bench-history/internal/history"
	"github.com/DjordjeVuckovic/bench-history/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type Store struct {
	db      *pgxpool.Pool
	pool    *ConnectionPool
	repoURL string
}

func NewStore(pool *ConnectionPool, repoURL string) *Store {
	return &Store{db: pool.conn, pool: pool, repoURL: repoURL}
}

// Migrate applies the embedded schema. Every script is idempotent.
func (s *Store) Migrate(ctx context.Context) error {
	scripts, err := db.UpMigrations()
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}
	for i, script := range scripts {
		if _, err := s.db.Exec(ctx, script); err != nil {
			return fmt.Errorf("apply migration %d: %w", i+1, err)
		}
	}
	slog.Info("Postgres migrations applied", "count", len(scripts))
	return nil
}

func (s *Store) Append(ctx context.Context, suite string, run domain.CommitRun) error {
	if err := storage.Validate(suite, run); err != nil {
		return err
	}

	payload, err := storage.MarshalRun(run)
	if err != nil {
		return err
	}

	cmd := `
        INSERT INTO bench_runs (id, suite, commit_id, run_date, tool, payload)
        VALUES ($1, $2, $3, $4, $5, $6);
    `
	_, err = s.db.Exec(ctx, cmd,
		storage.RunID(suite, run),
		suite,
		run.Commit.ID,
		run.Date,
		string(run.Tool),
		payload,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperr.NewConflict(
				fmt.Sprintf("suite %q already has commit %s at %d", suite, run.Commit.ID, run.Date),
				history.ErrDuplicateRun,
			)
		}
		return fmt.Errorf("failed to insert run: %w", err)
	}

	slog.Info("Run appended to postgres", "suite", suite, "commit", run.Commit.ID, "benches", len(run.Benches))
	return nil
}

func (s *Store) Runs(ctx context.Context, suite string) ([]domain.CommitRun, error) {
	rows, err := s.db.Query(ctx,
		`SELECT payload FROM bench_runs WHERE suite = $1 ORDER BY seq`, suite)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}

	runs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CommitRun, error) {
		var payload []byte
		if err := row.Scan(&payload); err != nil {
			return domain.CommitRun{}, err
		}
		return storage.UnmarshalRun(payload)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read runs: %w", err)
	}
	if len(runs) == 0 {
		return nil, apperr.NewNotFound("suite", suite)
	}
	return runs, nil
}

func (s *Store) Suites(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, `SELECT DISTINCT suite FROM bench_runs ORDER BY suite`)
	if err != nil {
		return nil, fmt.Errorf("failed to query suites: %w", err)
	}
	suites, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to read suites: %w", err)
	}
	return suites, nil
}

func (s *Store) Snapshot(ctx context.Context) (*domain.BenchmarkData, error) {
	rows, err := s.db.Query(ctx, `
        SELECT suite, (extract(epoch FROM recorded_at) * 1000)::bigint, payload
        FROM bench_runs
        ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot: %w", err)
	}
	defer rows.Close()

	data := domain.NewBenchmarkData(s.repoURL)
	for rows.Next() {
		var (
			suite      string
			recordedAt int64
			payload    []byte
		)
		if err := rows.Scan(&suite, &recordedAt, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run, err := storage.UnmarshalRun(payload)
		if err != nil {
			return nil, err
		}
		data.Entries[suite] = append(data.Entries[suite], run)
		data.LastUpdate = max(data.LastUpdate, recordedAt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return data, nil
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func (s *Store) HealthChecker() *HealthChecker {
	return NewHealthChecker(s.pool)
}
