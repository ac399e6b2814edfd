// Package history keeps the append-only run log behind the file and in-memory stores.
package history

import (
	"errors"
	"fmt"
	"time"

	"github.com/DjordjeVuckovic/bench-history/internal/apperr"
	"github.com/DjordjeVuckovic/bench-history/internal/domain"
)

var ErrDuplicateRun = errors.New("run already recorded for this commit and date")

type Options struct {
	// MaxItems caps the number of runs kept per suite. Zero keeps everything.
	MaxItems int
}

// Log is not safe for concurrent use; stores guard it with their own lock.
type Log struct {
	data *domain.BenchmarkData
	opts Options
}

func NewLog(data *domain.BenchmarkData, opts Options) *Log {
	if data == nil {
		data = domain.NewBenchmarkData("")
	}
	if data.Entries == nil {
		data.Entries = make(map[string][]domain.CommitRun)
	}
	return &Log{data: data, opts: opts}
}

func (l *Log) Append(suite string, run domain.CommitRun, now time.Time) error {
	if err := domain.ValidateSuiteName(suite); err != nil {
		return err
	}
	if err := run.Validate(); err != nil {
		return err
	}

	runs := l.data.Entries[suite]
	for _, existing := range runs {
		if existing.SameRecord(run) {
			return apperr.NewConflict(
				fmt.Sprintf("suite %q already has commit %s at %d", suite, run.Commit.ID, run.Date),
				ErrDuplicateRun,
			)
		}
	}

	runs = append(runs, run.Clone())
	if l.opts.MaxItems > 0 && len(runs) > l.opts.MaxItems {
		runs = append([]domain.CommitRun(nil), runs[len(runs)-l.opts.MaxItems:]...)
	}
	l.data.Entries[suite] = runs
	l.data.LastUpdate = now.UnixMilli()

	return nil
}

func (l *Log) Suites() []string {
	return l.data.SuiteNames()
}

func (l *Log) Runs(suite string) ([]domain.CommitRun, error) {
	runs, ok := l.data.Entries[suite]
	if !ok {
		return nil, apperr.NewNotFound("suite", suite)
	}
	return domain.CloneRuns(runs), nil
}

func (l *Log) Latest(suite string) (domain.CommitRun, error) {
	runs, ok := l.data.Entries[suite]
	if !ok || len(runs) == 0 {
		return domain.CommitRun{}, apperr.NewNotFound("suite", suite)
	}
	return runs[len(runs)-1].Clone(), nil
}

func (l *Log) Snapshot() *domain.BenchmarkData {
	return l.data.Clone()
}

func (l *Log) SetRepoURL(url string) {
	if url != "" {
		l.data.RepoURL = url
	}
}
