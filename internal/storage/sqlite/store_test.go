package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/DjordjeVuckovic/bench-history/internal/storage"
	"github.com/DjordjeVuckovic/bench-history/internal/storage/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) storage.Store {
		s, err := NewStore(context.Background(), Config{
			Path:    filepath.Join(t.TempDir(), "bench.db"),
			RepoURL: "https://github.com/example/repo",
		})
		require.NoError(t, err)
		return s
	})
}

func TestStore_InMemory(t *testing.T) {
	ctx := context.Background()
	s, err := NewStore(ctx, Config{Path: ":memory:", RepoURL: "https://github.com/example/repo"})
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Append(ctx, "EDA", storetest.NewRun("a", 1000, 1)))

	snap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/example/repo", snap.RepoURL)
	assert.Len(t, snap.Entries["EDA"], 1)
}

func TestStore_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "bench.db")

	s, err := NewStore(ctx, Config{Path: path})
	require.NoError(t, err)
	require.NoError(t, s.Append(ctx, "EDA", storetest.NewRun("a", 1000, 1)))
	require.NoError(t, s.Close())

	s, err = NewStore(ctx, Config{Path: path})
	require.NoError(t, err)
	defer s.Close()

	runs, err := s.Runs(ctx, "EDA")
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "a", runs[0].Commit.ID)
}

func TestNewStore_RequiresPath(t *testing.T) {
	_, err := NewStore(context.Background(), Config{})
	assert.Error(t, err)
}
