// Package storetest holds the behaviour every storage backend must share.
package storetest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/DjordjeVuckovic/bench-history/internal/apperr"
	"github.com/DjordjeVuckovic/bench-history/internal/domain"
	"github.com/DjordjeVuckovic/bench-history/internal/storage"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns an empty store. The test closes it.
type Factory func(t *testing.T) storage.Store

func Run(t *testing.T, newStore Factory) {
	t.Run("append then read back in order", func(t *testing.T) {
		testAppendOrder(t, newStore(t))
	})
	t.Run("duplicate run conflicts", func(t *testing.T) {
		testDuplicate(t, newStore(t))
	})
	t.Run("invalid run rejected", func(t *testing.T) {
		testInvalid(t, newStore(t))
	})
	t.Run("unknown suite not found", func(t *testing.T) {
		testUnknownSuite(t, newStore(t))
	})
	t.Run("snapshot groups suites", func(t *testing.T) {
		testSnapshot(t, newStore(t))
	})
	t.Run("readers get copies", func(t *testing.T) {
		testCopies(t, newStore(t))
	})
	t.Run("concurrent appends", func(t *testing.T) {
		testConcurrent(t, newStore(t))
	})
}

// NewRun builds a valid run for commit id at date.
func NewRun(id string, date int64, value float64) domain.CommitRun {
	return domain.CommitRun{
		Commit: domain.Commit{
			Author:    domain.Identity{Email: "dev@example.com", Name: "Dev", Username: "dev"},
			Committer: domain.Identity{Email: "noreply@github.com", Name: "GitHub", Username: "web-flow"},
			Distinct:  true,
			ID:        id,
			Message:   "commit " + id,
			Timestamp: "2021-07-29T10:28:37+08:00",
			TreeID:    "tree-" + id,
			URL:       "https://github.com/example/repo/commit/" + id,
		},
		Date: date,
		Tool: domain.ToolPytest,
		Benches: []domain.BenchResult{
			{
				Name:  "benchmarks/test_eda.py::test_create_report",
				Value: value,
				Unit:  "iter/sec",
				Range: "stddev: 0.016",
				Extra: "mean: 6.26 sec\nrounds: 5",
			},
			{
				Name:  "benchmarks/test_eda.py::test_plot",
				Value: value * 2,
				Unit:  "iter/sec",
			},
		},
	}
}

func closeStore(t *testing.T, s storage.Store) {
	t.Helper()
	t.Cleanup(func() {
		assert.NoError(t, s.Close())
	})
}

func testAppendOrder(t *testing.T, s storage.Store) {
	closeStore(t, s)
	ctx := context.Background()

	first := NewRun("a1", 1627526073706, 0.15961481475556502)
	second := NewRun("b2", 1627526173706, 0.2)
	third := NewRun("c3", 1627526273706, 0.1)

	for _, r := range []domain.CommitRun{first, second, third} {
		require.NoError(t, s.Append(ctx, "EDA", r))
	}

	runs, err := s.Runs(ctx, "EDA")
	require.NoError(t, err)
	want := []domain.CommitRun{first, second, third}
	if diff := cmp.Diff(want, runs); diff != "" {
		t.Errorf("runs mismatch (-want +got):\n%s", diff)
	}
}

func testDuplicate(t *testing.T, s storage.Store) {
	closeStore(t, s)
	ctx := context.Background()

	run := NewRun("a1", 1627526073706, 1)
	require.NoError(t, s.Append(ctx, "EDA", run))

	err := s.Append(ctx, "EDA", NewRun("a1", 1627526073706, 2))
	require.Error(t, err)
	var ce *apperr.ConflictError
	assert.True(t, errors.As(err, &ce), "expected conflict, got %v", err)

	// same commit re-run later is a new record
	require.NoError(t, s.Append(ctx, "EDA", NewRun("a1", 1627526099999, 2)))
	// same record in another suite is independent
	require.NoError(t, s.Append(ctx, "Other", run))

	runs, err := s.Runs(ctx, "EDA")
	require.NoError(t, err)
	assert.Len(t, runs, 2)
	assert.Equal(t, 1.0, runs[0].Benches[0].Value)
}

func testInvalid(t *testing.T, s storage.Store) {
	closeStore(t, s)
	ctx := context.Background()

	bad := NewRun("a1", 0, 1)
	err := s.Append(ctx, "EDA", bad)
	require.Error(t, err)
	var ve *apperr.ValidationError
	assert.True(t, errors.As(err, &ve), "expected validation error, got %v", err)

	noBenches := NewRun("a2", 1627526073706, 1)
	noBenches.Benches = nil
	require.Error(t, s.Append(ctx, "EDA", noBenches))

	err = s.Append(ctx, "", NewRun("a3", 1627526073706, 1))
	assert.True(t, errors.As(err, &ve), "expected validation error, got %v", err)

	_, err = s.Runs(ctx, "EDA")
	var nf *apperr.NotFoundError
	assert.True(t, errors.As(err, &nf), "rejected runs must not create the suite")
}

func testUnknownSuite(t *testing.T, s storage.Store) {
	closeStore(t, s)

	_, err := s.Runs(context.Background(), "missing")
	require.Error(t, err)
	var nf *apperr.NotFoundError
	assert.True(t, errors.As(err, &nf), "expected not found, got %v", err)
}

func testSnapshot(t *testing.T, s storage.Store) {
	closeStore(t, s)
	ctx := context.Background()

	empty, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty.Entries)

	require.NoError(t, s.Append(ctx, "B suite", NewRun("b1", 1627526073706, 1)))
	require.NoError(t, s.Append(ctx, "A suite", NewRun("a1", 1627526073706, 1)))
	require.NoError(t, s.Append(ctx, "A suite", NewRun("a2", 1627526173706, 1)))

	suites, err := s.Suites(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"A suite", "B suite"}, suites)

	snap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Entries, 2)
	assert.Len(t, snap.Entries["A suite"], 2)
	assert.Equal(t, "a2", snap.Entries["A suite"][1].Commit.ID)
	assert.Positive(t, snap.LastUpdate)
}

func testCopies(t *testing.T, s storage.Store) {
	closeStore(t, s)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, "EDA", NewRun("a1", 1627526073706, 1)))

	runs, err := s.Runs(ctx, "EDA")
	require.NoError(t, err)
	runs[0].Benches[0].Value = 42
	runs[0].Commit.ID = "mutated"

	again, err := s.Runs(ctx, "EDA")
	require.NoError(t, err)
	assert.Equal(t, "a1", again[0].Commit.ID)
	assert.Equal(t, 1.0, again[0].Benches[0].Value)
}

func testConcurrent(t *testing.T, s storage.Store) {
	closeStore(t, s)
	ctx := context.Background()

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = s.Append(ctx, "EDA", NewRun(fmt.Sprintf("c%d", i), 1627526073706+int64(i), float64(i+1)))
		}()
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	runs, err := s.Runs(ctx, "EDA")
	require.NoError(t, err)
	assert.Len(t, runs, n)
}
