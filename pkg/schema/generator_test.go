package schema

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DjordjeVuckovic/bench-history/internal/domain"
)

func TestGenerateSchema_BenchmarkData(t *testing.T) {
	g := NewGenerator(WithBaseID("https://example.com/schemas/"), WithDescription("benchmark history"))

	s, err := g.GenerateSchema(reflect.TypeOf(&domain.BenchmarkData{}))
	require.NoError(t, err)

	assert.Equal(t, schemaRef, s.Schema)
	assert.Equal(t, "https://example.com/schemas/benchmarkdata.json", s.ID)
	assert.Equal(t, "BenchmarkData", s.Title)
	assert.Equal(t, "benchmark history", s.Description)
	assert.Equal(t, "object", s.Type)
	assert.ElementsMatch(t, []string{"lastUpdate", "repoUrl", "entries"}, s.Required)

	entries := s.Properties["entries"]
	require.NotNil(t, entries)
	assert.Equal(t, "object", entries.Type)
	require.NotNil(t, entries.AdditionalProperties)
	assert.Equal(t, "array", entries.AdditionalProperties.Type)

	run := entries.AdditionalProperties.Items
	require.NotNil(t, run)
	assert.Equal(t, "integer", run.Properties["date"].Type)
	assert.Equal(t, "capture time in epoch milliseconds", run.Properties["date"].Description)
	assert.Len(t, run.Properties["tool"].Enum, 4)

	benches := run.Properties["benches"]
	require.NotNil(t, benches.MinItems)
	assert.Equal(t, 1, *benches.MinItems)
	assert.Equal(t, "number", benches.Items.Properties["value"].Type)
	assert.NotContains(t, benches.Items.Required, "range")

	commit := run.Properties["commit"]
	assert.Contains(t, commit.Properties, "tree_id")
	assert.Equal(t, "boolean", commit.Properties["distinct"].Type)
}

func TestGenerateJSONSchema(t *testing.T) {
	type sample struct {
		Name    string            `json:"name" schema:"required,pattern=^[a-z]+$"`
		Count   int               `json:"count,omitempty" schema:"minimum=0"`
		Labels  map[string]string `json:"labels"`
		Ignored string            `json:"-"`
		private string
	}

	out, err := NewGenerator().GenerateJSONSchema(sample{private: "x"})
	require.NoError(t, err)

	assert.Contains(t, out, `"$schema": "https://json-schema.org/draft/2020-12/schema"`)
	assert.Contains(t, out, `"pattern": "^[a-z]+$"`)
	assert.Contains(t, out, `"minimum": 0`)
	assert.Contains(t, out, `"additionalProperties"`)
	assert.NotContains(t, out, "Ignored")
	assert.NotContains(t, out, "private")
	assert.NotContains(t, out, `"$id"`)
}

func TestGenerateSchema_Unsupported(t *testing.T) {
	type withChan struct {
		C chan int `json:"c"`
	}
	_, err := NewGenerator().GenerateSchema(reflect.TypeOf(withChan{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported type: chan")

	_, err = NewGenerator().GenerateSchema(reflect.TypeOf(map[int]string{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported map key type")
}
