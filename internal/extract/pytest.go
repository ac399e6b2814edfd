package extract

import (
	"fmt"
	"io"

	"github.com/DjordjeVuckovic/bench-history/internal/apperr"
	"github.com/DjordjeVuckovic/bench-history/internal/domain"
)

// pytestOutput is the subset of pytest-benchmark --benchmark-json we read.
type pytestOutput struct {
	Benchmarks []pytestBenchmark `json:"benchmarks"`
}

type pytestBenchmark struct {
	Group    string      `json:"group"`
	Name     string      `json:"name"`
	Fullname string      `json:"fullname"`
	Stats    pytestStats `json:"stats"`
}

type pytestStats struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Stddev float64 `json:"stddev"`
	Median float64 `json:"median"`
	Rounds int     `json:"rounds"`
	Ops    float64 `json:"ops"`
}

const pytestUnit = "iter/sec"

func extractPytest(r io.Reader) ([]domain.BenchResult, error) {
	var out pytestOutput
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, apperr.NewValidationWrap("invalid pytest-benchmark JSON", err)
	}

	results := make([]domain.BenchResult, 0, len(out.Benchmarks))
	for _, b := range out.Benchmarks {
		name := b.Fullname
		if name == "" {
			name = b.Name
		}

		ops := b.Stats.Ops
		if ops == 0 && b.Stats.Mean > 0 {
			ops = 1 / b.Stats.Mean
		}

		results = append(results, domain.BenchResult{
			Name:  name,
			Value: ops,
			Unit:  pytestUnit,
			Range: "stddev: " + formatNumber(b.Stats.Stddev),
			Extra: fmt.Sprintf("mean: %s sec\nrounds: %d", formatNumber(b.Stats.Mean), b.Stats.Rounds),
		})
	}

	if len(results) == 0 {
		return nil, noResults(domain.ToolPytest)
	}
	return results, nil
}
