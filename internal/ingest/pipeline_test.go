package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/DjordjeVuckovic/bench-history/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestPipeline_Run_PreservesOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		paths = append(paths, writeFile(t, dir, name+".txt",
			"Benchmark"+name+"-4   100   12.5 ns/op\n"))
	}

	p := NewPipeline(domain.ToolGo, WithWorkers(2))
	benches, err := p.Run(context.Background(), paths)
	require.NoError(t, err)

	require.Len(t, benches, 5)
	for i, name := range []string{"a", "b", "c", "d", "e"} {
		assert.Equal(t, "Benchmark"+name, benches[i].Name)
	}
}

func TestPipeline_Run_Errors(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.txt", "BenchmarkX-4   100   12.5 ns/op\n")

	t.Run("missing file", func(t *testing.T) {
		_, err := NewPipeline(domain.ToolGo).Run(context.Background(), []string{good, filepath.Join(dir, "missing.txt")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing.txt")
	})

	t.Run("no files", func(t *testing.T) {
		_, err := NewPipeline(domain.ToolGo).Run(context.Background(), nil)
		require.Error(t, err)
	})

	t.Run("tool without extractor", func(t *testing.T) {
		_, err := NewPipeline(domain.ToolCargo).Run(context.Background(), []string{good})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no extractor")
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewPipeline(domain.ToolGo).Run(ctx, []string{good})
		require.ErrorIs(t, err, context.Canceled)
	})
}
