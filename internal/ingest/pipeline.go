// Package ingest extracts benchmark results from one or more tool output files.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/DjordjeVuckovic/bench-history/internal/domain"
	"github.com/DjordjeVuckovic/bench-history/internal/extract"
	"github.com/panjf2000/ants/v2"
)

const defaultWorkers = 4

type Pipeline struct {
	tool    domain.Tool
	workers int
}

type Option func(p *Pipeline)

func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.workers = n
		}
	}
}

func NewPipeline(tool domain.Tool, opts ...Option) *Pipeline {
	p := &Pipeline{
		tool:    tool,
		workers: defaultWorkers,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type fileResult struct {
	benches []domain.BenchResult
	err     error
}

// Run extracts every file concurrently and concatenates the results in the
// order the paths were given.
func (p *Pipeline) Run(ctx context.Context, paths []string) ([]domain.BenchResult, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no output files given")
	}

	extractor, err := extract.For(p.tool)
	if err != nil {
		return nil, err
	}

	pool, err := ants.NewPool(min(p.workers, len(paths)))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	start := time.Now()
	results := make([]fileResult, len(paths))
	var wg sync.WaitGroup

	for i, path := range paths {
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				results[i] = fileResult{err: ctx.Err()}
				return
			}
			benches, err := extractFile(extractor, path)
			results[i] = fileResult{benches: benches, err: err}
		})
		if err != nil {
			wg.Done()
			results[i] = fileResult{err: fmt.Errorf("submit %s: %w", path, err)}
		}
	}
	wg.Wait()

	var all []domain.BenchResult
	for i, r := range results {
		if r.err != nil {
			return nil, fmt.Errorf("extract %s: %w", paths[i], r.err)
		}
		all = append(all, r.benches...)
	}

	slog.Info("Benchmark output extracted",
		"tool", p.tool,
		"files", len(paths),
		"benches", len(all),
		"duration", time.Since(start))

	return all, nil
}

func extractFile(e extract.Extractor, path string) ([]domain.BenchResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open output file: %w", err)
	}
	defer f.Close()

	return e.Extract(f)
}
