package extract

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/bench-history/internal/apperr"
	"github.com/DjordjeVuckovic/bench-history/internal/domain"
)

var goBenchLine = regexp.MustCompile(`^(Benchmark\S+?)(-\d+)?\s+(\d+)\s+(.+)$`)

type goMetric struct {
	value float64
	unit  string
}

func extractGo(r io.Reader) ([]domain.BenchResult, error) {
	var results []domain.BenchResult

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		m := goBenchLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		name, procs, times := m[1], strings.TrimPrefix(m[2], "-"), m[3]
		metrics, err := parseGoMetrics(m[4])
		if err != nil {
			return nil, apperr.NewValidationWrap(fmt.Sprintf("benchmark line %q", line), err)
		}

		extra := times + " times"
		if procs != "" {
			extra += "\n" + procs + " procs"
		}

		for _, metric := range metrics {
			benchName := name
			if len(metrics) > 1 {
				benchName = name + " - " + metric.unit
			}
			results = append(results, domain.BenchResult{
				Name:  benchName,
				Value: metric.value,
				Unit:  metric.unit,
				Extra: extra,
			})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read go bench output: %w", err)
	}

	if len(results) == 0 {
		return nil, noResults(domain.ToolGo)
	}
	return results, nil
}

func parseGoMetrics(remainder string) ([]goMetric, error) {
	fields := strings.Fields(remainder)
	if len(fields) < 2 || len(fields)%2 != 0 {
		return nil, fmt.Errorf("expected value/unit pairs, got %q", remainder)
	}

	metrics := make([]goMetric, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", fields[i], err)
		}
		metrics = append(metrics, goMetric{value: v, unit: fields[i+1]})
	}
	return metrics, nil
}
