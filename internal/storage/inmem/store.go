package inmem

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/DjordjeVuckovic/bench-history/internal/domain"
	"github.com/DjordjeVuckovic/bench-history/internal/history"
)

type Store struct {
	mu  sync.RWMutex
	log *history.Log
	now func() time.Time
}

func NewStore(repoURL string, opts history.Options) *Store {
	return &Store{
		log: history.NewLog(domain.NewBenchmarkData(repoURL), opts),
		now: time.Now,
	}
}

// NewStoreFrom seeds the store with an existing document.
func NewStoreFrom(data *domain.BenchmarkData, opts history.Options) *Store {
	return &Store{
		log: history.NewLog(data.Clone(), opts),
		now: time.Now,
	}
}

func (s *Store) Append(ctx context.Context, suite string, run domain.CommitRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.log.Append(suite, run, s.now()); err != nil {
		return err
	}
	slog.Debug("Run appended to in-memory store", "suite", suite, "commit", run.Commit.ID)
	return nil
}

func (s *Store) Runs(ctx context.Context, suite string) ([]domain.CommitRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.log.Runs(suite)
}

func (s *Store) Suites(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.log.Suites(), nil
}

func (s *Store) Snapshot(ctx context.Context) (*domain.BenchmarkData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.log.Snapshot(), nil
}

func (s *Store) Close() error {
	return nil
}
