package stats

import (
	"math"
	"sort"

	"github.com/DjordjeVuckovic/bench-history/internal/domain"
)

var defaultPercentiles = []int{50, 75, 90, 95, 99}

// Summary describes the spread of a sample of benchmark values.
type Summary struct {
	Min         float64         `json:"min"`
	Max         float64         `json:"max"`
	Mean        float64         `json:"mean"`
	Median      float64         `json:"median"`
	Stddev      float64         `json:"stddev"`
	Percentiles map[int]float64 `json:"percentiles"`
	SampleCount int             `json:"sample_count"`
}

// Series is the history of one bench across the runs of a suite.
type Series struct {
	Name        string    `json:"name"`
	Unit        string    `json:"unit"`
	FirstCommit string    `json:"first_commit"`
	LastCommit  string    `json:"last_commit"`
	Latest      float64   `json:"latest"`
	Values      []float64 `json:"values"`
	Summary     Summary   `json:"summary"`
}

func Compute(values []float64) Summary {
	if len(values) == 0 {
		return Summary{Percentiles: make(map[int]float64)}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	s := Summary{
		Min:         sorted[0],
		Max:         sorted[len(sorted)-1],
		Median:      percentile(sorted, 50),
		Percentiles: make(map[int]float64),
		SampleCount: len(values),
	}

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	s.Mean = sum / float64(len(sorted))

	if len(sorted) > 1 {
		var sumSquares float64
		for _, v := range sorted {
			diff := v - s.Mean
			sumSquares += diff * diff
		}
		s.Stddev = math.Sqrt(sumSquares / float64(len(sorted)-1))
	}

	for _, p := range defaultPercentiles {
		s.Percentiles[p] = percentile(sorted, p)
	}

	return s
}

func percentile(sorted []float64, p int) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}

	rank := float64(p) / 100.0 * float64(len(sorted)-1)
	lower := int(rank)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := rank - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// ForSuite groups the runs' benches by name, in order of first appearance.
// A bench whose unit changes between runs starts counting from the new unit.
func ForSuite(runs []domain.CommitRun) []Series {
	index := make(map[string]int)
	var series []Series

	for _, run := range runs {
		for _, b := range run.Benches {
			i, ok := index[b.Name]
			if !ok {
				i = len(series)
				index[b.Name] = i
				series = append(series, Series{Name: b.Name, Unit: b.Unit, FirstCommit: run.Commit.ID})
			}
			s := &series[i]
			if s.Unit != b.Unit {
				s.Unit = b.Unit
				s.Values = s.Values[:0]
				s.FirstCommit = run.Commit.ID
			}
			s.Values = append(s.Values, b.Value)
			s.LastCommit = run.Commit.ID
			s.Latest = b.Value
		}
	}

	for i := range series {
		series[i].Summary = Compute(series[i].Values)
	}
	return series
}

func (s Summary) P50() float64 { return s.Percentiles[50] }
func (s Summary) P90() float64 { return s.Percentiles[90] }
func (s Summary) P99() float64 { return s.Percentiles[99] }

func (s Summary) IsZero() bool {
	return s.SampleCount == 0
}
