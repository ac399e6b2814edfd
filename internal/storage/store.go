package storage

import (
	"context"

	"github.com/DjordjeVuckovic/bench-history/internal/domain"
)

// Store is an append-only log of benchmark runs grouped by suite.
type Store interface {
	// Append records run at the end of suite. A run with the same commit id
	// and date as a recorded one is rejected with a conflict error.
	Append(ctx context.Context, suite string, run domain.CommitRun) error
	// Runs returns the runs of suite oldest first.
	Runs(ctx context.Context, suite string) ([]domain.CommitRun, error)
	Suites(ctx context.Context) ([]string, error)
	Snapshot(ctx context.Context) (*domain.BenchmarkData, error)
	Close() error
}

type Type string

const (
	File   Type = "file"
	InMem  Type = "in_mem"
	SQLite Type = "sqlite"
	PG     Type = "pg"
	ES     Type = "es"
)

var Types = []Type{File, InMem, SQLite, PG, ES}

type StorerError string

const (
	ErrUnsupportedStore StorerError = "unsupported store type: %s"
)

func (e StorerError) Error() string {
	return string(e)
}
