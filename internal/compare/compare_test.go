package compare

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/DjordjeVuckovic/bench-history/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pytestRun(id string, values map[string]float64) domain.CommitRun {
	r := domain.CommitRun{Commit: domain.Commit{ID: id}, Date: 1, Tool: domain.ToolPytest}
	for name, v := range values {
		r.Benches = append(r.Benches, domain.BenchResult{Name: name, Value: v, Unit: "iter/sec"})
	}
	return r
}

func TestRuns_BiggerIsBetter(t *testing.T) {
	prev := pytestRun("aaaaaaaaaa", map[string]float64{"eda": 0.16})
	curr := pytestRun("bbbbbbbbbb", map[string]float64{"eda": 0.05})

	res := Runs("DataPrep.EDA Benchmarks", prev, curr, 2.0)

	require.Len(t, res.Comparisons, 1)
	c := res.Comparisons[0]
	assert.True(t, c.Comparable)
	assert.InDelta(t, 3.2, c.Ratio, 1e-9)
	assert.True(t, c.Regression)
	assert.True(t, res.HasRegression())
	assert.True(t, res.BiggerIsBetter)
}

func TestRuns_SmallerIsBetter(t *testing.T) {
	prev := domain.CommitRun{Tool: domain.ToolGo, Benches: []domain.BenchResult{
		{Name: "BenchmarkDecode", Value: 100, Unit: "ns/op"},
		{Name: "BenchmarkEncode", Value: 100, Unit: "ns/op"},
	}}
	curr := domain.CommitRun{Tool: domain.ToolGo, Benches: []domain.BenchResult{
		{Name: "BenchmarkDecode", Value: 150, Unit: "ns/op"},
		{Name: "BenchmarkEncode", Value: 250, Unit: "ns/op"},
	}}

	res := Runs("go", prev, curr, 0)

	assert.Equal(t, DefaultThreshold, res.Threshold)
	assert.InDelta(t, 1.5, res.Comparisons[0].Ratio, 1e-9)
	assert.False(t, res.Comparisons[0].Regression)
	assert.InDelta(t, 2.5, res.Comparisons[1].Ratio, 1e-9)
	assert.True(t, res.Comparisons[1].Regression)
	assert.Len(t, res.Regressions(), 1)
}

func TestRuns_NotComparable(t *testing.T) {
	prev := domain.CommitRun{Tool: domain.ToolGo, Benches: []domain.BenchResult{
		{Name: "zero", Value: 0, Unit: "ns/op"},
		{Name: "unit-change", Value: 10, Unit: "ns/op"},
	}}
	curr := domain.CommitRun{Tool: domain.ToolGo, Benches: []domain.BenchResult{
		{Name: "zero", Value: 5, Unit: "ns/op"},
		{Name: "unit-change", Value: 10, Unit: "ms/op"},
		{Name: "new", Value: 1, Unit: "ns/op"},
	}}

	res := Runs("go", prev, curr, 2)

	for _, c := range res.Comparisons {
		assert.False(t, c.Comparable, c.Name)
		assert.False(t, c.Regression, c.Name)
	}
	assert.False(t, res.HasRegression())
}

func TestParseThreshold(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"200%", 2.0, false},
		{"150%", 1.5, false},
		{"1.25", 1.25, false},
		{"", DefaultThreshold, false},
		{"0%", 0, true},
		{"-1", 0, true},
		{"fast", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseThreshold(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
	assert.Equal(t, "200%", FormatThreshold(2))
}

func TestWriteTable(t *testing.T) {
	prev := pytestRun("c5d6a4b9447a4b7219909daac05520fc139bbf82", map[string]float64{"eda": 0.16})
	curr := pytestRun("0123456789abcdef", map[string]float64{"eda": 0.05})

	var buf bytes.Buffer
	WriteTable(Runs("DataPrep.EDA Benchmarks", prev, curr, 2), &buf)

	out := buf.String()
	assert.Contains(t, out, "c5d6a4b -> 0123456")
	assert.Contains(t, out, "threshold 200%")
	assert.Contains(t, out, "REGRESSION")
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "compare.json")
	res := Runs("s", pytestRun("a", map[string]float64{"eda": 1}), pytestRun("b", map[string]float64{"eda": 1}), 2)

	require.NoError(t, WriteJSON(res, path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded Result
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "b", decoded.CurrentCommit)
	assert.Len(t, decoded.Comparisons, 1)
}
