package stats

import (
	"testing"

	"github.com/DjordjeVuckovic/bench-history/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_Empty(t *testing.T) {
	s := Compute(nil)
	assert.Zero(t, s.Min)
	assert.Zero(t, s.Max)
	assert.Zero(t, s.Mean)
	assert.True(t, s.IsZero())
}

func TestCompute_SingleValue(t *testing.T) {
	s := Compute([]float64{0.15961481475556502})

	assert.Equal(t, 0.15961481475556502, s.Min)
	assert.Equal(t, 0.15961481475556502, s.Max)
	assert.Equal(t, 0.15961481475556502, s.Median)
	assert.Zero(t, s.Stddev)
	assert.Equal(t, 1, s.SampleCount)
}

func TestCompute_MultipleValues(t *testing.T) {
	s := Compute([]float64{50, 10, 30, 20, 40})

	assert.Equal(t, 10.0, s.Min)
	assert.Equal(t, 50.0, s.Max)
	assert.Equal(t, 30.0, s.Mean)
	assert.Equal(t, 30.0, s.Median)
	assert.InDelta(t, 15.8113883, s.Stddev, 1e-6)
	assert.Equal(t, 5, s.SampleCount)
}

func TestCompute_Percentiles(t *testing.T) {
	values := make([]float64, 100)
	for i := range values {
		values[i] = float64(i + 1)
	}
	s := Compute(values)

	assert.InDelta(t, 50.5, s.P50(), 1e-9)
	assert.InDelta(t, 90.1, s.P90(), 1e-9)
	assert.InDelta(t, 99.01, s.P99(), 1e-9)
}

func TestPercentile_EdgeCases(t *testing.T) {
	assert.Equal(t, 10.0, percentile([]float64{10}, 0))
	assert.Equal(t, 10.0, percentile([]float64{10}, 100))
	assert.Zero(t, percentile(nil, 50))
}

func TestForSuite(t *testing.T) {
	runs := []domain.CommitRun{
		{Commit: domain.Commit{ID: "a"}, Benches: []domain.BenchResult{
			{Name: "eda", Value: 0.15, Unit: "iter/sec"},
			{Name: "clean", Value: 2, Unit: "iter/sec"},
		}},
		{Commit: domain.Commit{ID: "b"}, Benches: []domain.BenchResult{
			{Name: "eda", Value: 0.17, Unit: "iter/sec"},
		}},
		{Commit: domain.Commit{ID: "c"}, Benches: []domain.BenchResult{
			{Name: "eda", Value: 0.16, Unit: "iter/sec"},
			{Name: "clean", Value: 500, Unit: "ms"},
		}},
	}

	series := ForSuite(runs)
	require.Len(t, series, 2)

	eda := series[0]
	assert.Equal(t, "eda", eda.Name)
	assert.Equal(t, []float64{0.15, 0.17, 0.16}, eda.Values)
	assert.Equal(t, "a", eda.FirstCommit)
	assert.Equal(t, "c", eda.LastCommit)
	assert.Equal(t, 0.16, eda.Latest)
	assert.InDelta(t, 0.16, eda.Summary.Mean, 1e-12)

	clean := series[1]
	assert.Equal(t, "ms", clean.Unit)
	assert.Equal(t, []float64{500}, clean.Values)
	assert.Equal(t, "c", clean.FirstCommit)
}
