package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DjordjeVuckovic/bench-history/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		yaml := `
repo_url: https://github.com/sfu-db/dataprep

store:
  type: file
  data_file: dev/bench/data.js
  max_items: 100

alert:
  threshold: "150%"
  fail_on_alert: true

commit:
  resolver: event
  repository: sfu-db/dataprep

benchmarks:
  - suite: "DataPrep.EDA Benchmarks"
    tool: pytest
    output: [output.json]
  - suite: "Go Benchmarks"
    tool: go
    output: [bench-1.txt, bench-2.txt]

publish:
  to: dir
  dir: gh-pages/dev/bench
`
		p, err := Parse([]byte(yaml))
		require.NoError(t, err)
		assert.Equal(t, "https://github.com/sfu-db/dataprep", p.RepoURL)
		assert.Len(t, p.Benchmarks, 2)
		assert.Equal(t, 1.5, p.Threshold())
		assert.True(t, p.Alert.FailOnAlert)

		b, ok := p.Benchmark("Go Benchmarks")
		require.True(t, ok)
		assert.Equal(t, []string{"bench-1.txt", "bench-2.txt"}, b.Output)

		_, ok = p.Benchmark("missing")
		assert.False(t, ok)

		sc := p.StorageConfig()
		assert.Equal(t, storage.File, sc.Type)
		require.NotNil(t, sc.File)
		assert.Equal(t, "dev/bench/data.js", sc.File.Path)
		assert.Equal(t, 100, sc.MaxItems)
		assert.Equal(t, "https://github.com/sfu-db/dataprep", sc.RepoURL)
	})

	t.Run("defaults", func(t *testing.T) {
		p, err := Parse([]byte("repo_url: https://example.com/repo\n"))
		require.NoError(t, err)
		assert.Equal(t, "file", p.Store.Type)
		assert.Equal(t, "data.js", p.Store.DataFile)
		assert.Equal(t, "200%", p.Alert.Threshold)
		assert.Equal(t, 2.0, p.Threshold())
		assert.Equal(t, PublishDir, p.Publish.To)
		assert.Equal(t, ".", p.Publish.Dir)
	})

	t.Run("es store", func(t *testing.T) {
		yaml := `
store:
  type: es
  es:
    addresses: [http://localhost:9200]
    index: bench-runs
`
		p, err := Parse([]byte(yaml))
		require.NoError(t, err)
		sc := p.StorageConfig()
		require.NotNil(t, sc.Es)
		assert.Equal(t, []string{"http://localhost:9200"}, sc.Es.Addresses)
		assert.Equal(t, "bench-runs", sc.Es.IndexName)
	})

	errorCases := []struct {
		name string
		yaml string
		msg  string
	}{
		{"invalid store", "store:\n  type: mongo\n", "invalid type"},
		{"negative max items", "store:\n  max_items: -1\n", "max_items"},
		{"invalid threshold", "alert:\n  threshold: fast\n", "invalid threshold"},
		{"invalid resolver", "commit:\n  resolver: svn\n", "invalid resolver"},
		{"benchmark without suite", "benchmarks:\n  - tool: go\n    output: [a]\n", "no suite"},
		{"unknown tool", "benchmarks:\n  - suite: s\n    tool: nunit\n    output: [a]\n", "unknown tool"},
		{"no outputs", "benchmarks:\n  - suite: s\n    tool: go\n", "no output files"},
		{"duplicate suite", "benchmarks:\n  - suite: s\n    tool: go\n    output: [a]\n  - suite: s\n    tool: go\n    output: [b]\n", "declared twice"},
		{"invalid publish", "publish:\n  to: ftp\n", "invalid target"},
		{"s3 without bucket", "publish:\n  to: s3\n", "bucket"},
		{"malformed", "store: [", "parse config YAML"},
	}
	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "benchhist.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  type: in_mem\n"), 0644))

	p, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "in_mem", p.Store.Type)

	_, err = LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	p := Default()
	assert.Equal(t, "file", p.Store.Type)
	assert.Equal(t, 2.0, p.Threshold())
}
