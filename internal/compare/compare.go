// Package compare checks a run against its predecessor for performance regressions.
package compare

import (
	"math"

	"github.com/DjordjeVuckovic/bench-history/internal/domain"
)

const DefaultThreshold = 2.0

type Comparison struct {
	Name       string  `json:"name"`
	Unit       string  `json:"unit"`
	Previous   float64 `json:"previous"`
	Current    float64 `json:"current"`
	Ratio      float64 `json:"ratio"`
	Comparable bool    `json:"comparable"`
	Regression bool    `json:"regression"`
}

type Result struct {
	Suite          string       `json:"suite"`
	Tool           domain.Tool  `json:"tool"`
	BiggerIsBetter bool         `json:"bigger_is_better"`
	PreviousCommit string       `json:"previous_commit"`
	CurrentCommit  string       `json:"current_commit"`
	Threshold      float64      `json:"threshold"`
	Comparisons    []Comparison `json:"comparisons"`
}

// Runs compares curr against prev bench by bench. The ratio is oriented so
// that values above 1 always mean curr is slower than prev.
func Runs(suite string, prev, curr domain.CommitRun, threshold float64) *Result {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	res := &Result{
		Suite:          suite,
		Tool:           curr.Tool,
		BiggerIsBetter: curr.Tool.BiggerIsBetter(),
		PreviousCommit: prev.Commit.ID,
		CurrentCommit:  curr.Commit.ID,
		Threshold:      threshold,
		Comparisons:    make([]Comparison, 0, len(curr.Benches)),
	}

	for _, b := range curr.Benches {
		c := Comparison{Name: b.Name, Unit: b.Unit, Current: b.Value}

		p, ok := prev.Bench(b.Name)
		if ok && p.Unit == b.Unit {
			c.Previous = p.Value
			c.Ratio, c.Comparable = ratio(p.Value, b.Value, res.BiggerIsBetter)
			c.Regression = c.Comparable && c.Ratio > threshold
		}

		res.Comparisons = append(res.Comparisons, c)
	}

	return res
}

func ratio(prev, curr float64, biggerIsBetter bool) (float64, bool) {
	num, den := curr, prev
	if biggerIsBetter {
		num, den = prev, curr
	}
	if den == 0 {
		return 0, false
	}
	r := num / den
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, false
	}
	return r, true
}

func (r *Result) Regressions() []Comparison {
	var out []Comparison
	for _, c := range r.Comparisons {
		if c.Regression {
			out = append(out, c)
		}
	}
	return out
}

func (r *Result) HasRegression() bool {
	return len(r.Regressions()) > 0
}
