package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/bench-history/internal/benchdata"
	"github.com/DjordjeVuckovic/bench-history/internal/storage"
	"github.com/DjordjeVuckovic/bench-history/internal/storage/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestStore(t *testing.T, cfg Config) *Store {
	t.Helper()
	if cfg.Path == "" {
		cfg.Path = filepath.Join(t.TempDir(), "dev", "bench", benchdata.FileName)
	}
	s, err := NewStore(cfg)
	require.NoError(t, err)
	return s
}

func TestStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) storage.Store {
		return newTestStore(t, Config{RepoURL: "https://github.com/example/repo"})
	})
}

func TestStore_Watch(t *testing.T) {
	storetest.Run(t, func(t *testing.T) storage.Store {
		return newTestStore(t, Config{Watch: true})
	})
}

func TestNewStore_RequiresPath(t *testing.T) {
	_, err := NewStore(Config{})
	assert.Error(t, err)
}

func TestStore_AppendWritesDataJS(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), benchdata.FileName)
	s := newTestStore(t, Config{Path: path, RepoURL: "https://github.com/example/repo"})
	defer s.Close()

	require.NoError(t, s.Append(ctx, "EDA", storetest.NewRun("a1", 1627526073706, 0.15961481475556502)))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), benchdata.GlobalVar+" = {\n"))
	assert.Contains(t, string(raw), `"value": 0.15961481475556502`)
	assert.Contains(t, string(raw), `"repoUrl": "https://github.com/example/repo"`)

	// a fresh store reads what the first one wrote
	other := newTestStore(t, Config{Path: path})
	defer other.Close()
	runs, err := other.Runs(ctx, "EDA")
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "a1", runs[0].Commit.ID)
}

func TestStore_KeepsExistingRepoURL(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), benchdata.FileName)
	src, err := os.ReadFile(filepath.Join("..", "..", "benchdata", "testdata", benchdata.FileName))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, src, 0644))

	s := newTestStore(t, Config{Path: path, RepoURL: "https://example.com/ignored"})
	defer s.Close()

	before, err := s.Snapshot(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, before.Entries)

	suites, err := s.Suites(ctx)
	require.NoError(t, err)
	suite := suites[0]
	require.NoError(t, s.Append(ctx, suite, storetest.NewRun("new", time.Now().UnixMilli(), 1)))

	after, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, before.RepoURL, after.RepoURL)
	assert.Len(t, after.Entries[suite], len(before.Entries[suite])+1)
}

func TestStore_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), benchdata.FileName)
	require.NoError(t, os.WriteFile(path, []byte("window.BENCHMARK_DATA = {oops"), 0644))

	s := newTestStore(t, Config{Path: path})
	defer s.Close()

	_, err := s.Snapshot(context.Background())
	assert.Error(t, err)
}

func TestStore_MaxItems(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, Config{MaxItems: 1})
	defer s.Close()

	require.NoError(t, s.Append(ctx, "EDA", storetest.NewRun("a", 1000, 1)))
	require.NoError(t, s.Append(ctx, "EDA", storetest.NewRun("b", 2000, 1)))

	runs, err := s.Runs(ctx, "EDA")
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "b", runs[0].Commit.ID)
}

func TestStore_WatchPicksUpExternalWrite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), benchdata.FileName)

	s := newTestStore(t, Config{Path: path, Watch: true})
	defer s.Close()
	writer := newTestStore(t, Config{Path: path})
	defer writer.Close()

	_, err := s.Snapshot(ctx)
	require.NoError(t, err)

	require.NoError(t, writer.Append(ctx, "EDA", storetest.NewRun("a", 1000, 1)))

	assert.Eventually(t, func() bool {
		runs, err := s.Runs(ctx, "EDA")
		return err == nil && len(runs) == 1
	}, 2*time.Second, 20*time.Millisecond)
}

func TestStore_CanceledContext(t *testing.T) {
	s := newTestStore(t, Config{})
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Append(ctx, "EDA", storetest.NewRun("a", 1000, 1)), context.Canceled)
}

func TestStore_AppendKeepsRunsFromOtherWriters(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), benchdata.FileName)

	a := newTestStore(t, Config{Path: path})
	defer a.Close()
	b := newTestStore(t, Config{Path: path})
	defer b.Close()

	require.NoError(t, a.Append(ctx, "EDA", storetest.NewRun("a1", 1000, 1)))
	require.NoError(t, b.Append(ctx, "EDA", storetest.NewRun("b2", 2000, 2)))
	require.NoError(t, a.Append(ctx, "EDA", storetest.NewRun("c3", 3000, 3)))

	fresh := newTestStore(t, Config{Path: path})
	defer fresh.Close()
	runs, err := fresh.Runs(ctx, "EDA")
	require.NoError(t, err)

	ids := make([]string, 0, len(runs))
	for _, r := range runs {
		ids = append(ids, r.Commit.ID)
	}
	assert.Equal(t, []string{"a1", "b2", "c3"}, ids)
}

func TestStore_ReadsSeeOtherWritersWithoutWatch(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), benchdata.FileName)

	reader := newTestStore(t, Config{Path: path})
	defer reader.Close()
	writer := newTestStore(t, Config{Path: path})
	defer writer.Close()

	require.NoError(t, reader.Append(ctx, "EDA", storetest.NewRun("a1", 1000, 1)))
	require.NoError(t, writer.Append(ctx, "EDA", storetest.NewRun("b2", 2000, 2)))

	runs, err := reader.Runs(ctx, "EDA")
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestStore_AppendRejectsDuplicateWrittenElsewhere(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), benchdata.FileName)

	a := newTestStore(t, Config{Path: path})
	defer a.Close()
	b := newTestStore(t, Config{Path: path})
	defer b.Close()

	_, err := a.Snapshot(ctx)
	require.NoError(t, err)
	require.NoError(t, b.Append(ctx, "EDA", storetest.NewRun("a1", 1000, 1)))

	assert.Error(t, a.Append(ctx, "EDA", storetest.NewRun("a1", 1000, 1)))
}
