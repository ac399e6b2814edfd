// Package tracker records a new run and checks it against the run before it.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/bench-history/internal/apperr"
	"github.com/DjordjeVuckovic/bench-history/internal/compare"
	"github.com/DjordjeVuckovic/bench-history/internal/domain"
	"github.com/DjordjeVuckovic/bench-history/internal/storage"
	"github.com/DjordjeVuckovic/bench-history/pkg/utils"
)

var ErrRegression = errors.New("performance regression detected")

// Observer is told about every recorded run. res is nil for the first run of a suite.
type Observer interface {
	Recorded(suite string, run domain.CommitRun, res *compare.Result)
}

type Options struct {
	Threshold   float64
	FailOnAlert bool
	Observers   []Observer
}

type Tracker struct {
	store storage.Store
	opts  Options
}

func New(store storage.Store, opts Options) *Tracker {
	if opts.Threshold <= 0 {
		opts.Threshold = compare.DefaultThreshold
	}
	return &Tracker{store: store, opts: opts}
}

// Record appends run to suite and compares it with the previous latest run.
// The run is stored even when ErrRegression is returned.
func (t *Tracker) Record(ctx context.Context, suite string, run domain.CommitRun) (*compare.Result, error) {
	prev, hasPrev, err := t.latest(ctx, suite)
	if err != nil {
		return nil, err
	}

	if err := t.store.Append(ctx, suite, run); err != nil {
		return nil, err
	}

	var res *compare.Result
	if hasPrev {
		res = compare.Runs(suite, prev, run, t.opts.Threshold)
	}
	for _, o := range t.opts.Observers {
		o.Recorded(suite, run, res)
	}

	if res == nil {
		slog.Info("First run recorded for suite", "suite", suite, "commit", run.Commit.ID)
		return nil, nil
	}

	regressions := res.Regressions()
	for _, c := range regressions {
		slog.Warn("Possible performance regression",
			"suite", suite,
			"bench", c.Name,
			"previous", c.Previous,
			"current", c.Current,
			"unit", c.Unit,
			"ratio", utils.RoundDecimal(c.Ratio, 3),
			"threshold", compare.FormatThreshold(res.Threshold))
	}
	slog.Info("Run recorded",
		"suite", suite,
		"commit", run.Commit.ID,
		"previous", prev.Commit.ID,
		"benches", len(run.Benches),
		"regressions", len(regressions))

	if t.opts.FailOnAlert && len(regressions) > 0 {
		return res, fmt.Errorf("%w: %d bench(es) in suite %q exceed %s", ErrRegression, len(regressions), suite, compare.FormatThreshold(res.Threshold))
	}
	return res, nil
}

func (t *Tracker) latest(ctx context.Context, suite string) (domain.CommitRun, bool, error) {
	runs, err := t.store.Runs(ctx, suite)
	if err != nil {
		var nf *apperr.NotFoundError
		if errors.As(err, &nf) {
			return domain.CommitRun{}, false, nil
		}
		return domain.CommitRun{}, false, fmt.Errorf("read previous runs: %w", err)
	}
	if len(runs) == 0 {
		return domain.CommitRun{}, false, nil
	}
	return runs[len(runs)-1], true, nil
}
