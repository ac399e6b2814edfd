package history

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/bench-history/internal/apperr"
	"github.com/DjordjeVuckovic/bench-history/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const suite = "DataPrep.EDA Benchmarks"

func run(id string, date int64, value float64) domain.CommitRun {
	return domain.CommitRun{
		Commit: domain.Commit{ID: id, Distinct: true},
		Date:   date,
		Tool:   domain.ToolPytest,
		Benches: []domain.BenchResult{
			{Name: "dataprep/tests/benchmarks/eda.py::test_create_report", Value: value, Unit: "iter/sec"},
		},
	}
}

func TestLog_Append(t *testing.T) {
	l := NewLog(nil, Options{})
	now := time.UnixMilli(1627653241114)

	require.NoError(t, l.Append(suite, run("a", 1, 0.15), now))
	require.NoError(t, l.Append(suite, run("b", 2, 0.16), now.Add(time.Second)))

	runs, err := l.Runs(suite)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "a", runs[0].Commit.ID)
	assert.Equal(t, "b", runs[1].Commit.ID)
	assert.Equal(t, now.Add(time.Second).UnixMilli(), l.Snapshot().LastUpdate)
}

func TestLog_AppendRejectsDuplicates(t *testing.T) {
	l := NewLog(nil, Options{})
	require.NoError(t, l.Append(suite, run("a", 1, 0.15), time.Now()))

	err := l.Append(suite, run("a", 1, 0.99), time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateRun))

	var ce *apperr.ConflictError
	assert.True(t, errors.As(err, &ce))

	runs, _ := l.Runs(suite)
	require.Len(t, runs, 1)
	assert.Equal(t, 0.15, runs[0].Benches[0].Value)

	// same commit captured again later is a new record
	require.NoError(t, l.Append(suite, run("a", 2, 0.17), time.Now()))
}

func TestLog_AppendValidates(t *testing.T) {
	l := NewLog(nil, Options{})

	err := l.Append("", run("a", 1, 0.1), time.Now())
	var ve *apperr.ValidationError
	require.True(t, errors.As(err, &ve))

	bad := run("a", 1, 0.1)
	bad.Benches = nil
	require.True(t, errors.As(l.Append(suite, bad, time.Now()), &ve))
	assert.Empty(t, l.Suites())
}

func TestLog_MaxItems(t *testing.T) {
	l := NewLog(nil, Options{MaxItems: 3})
	for i := 1; i <= 5; i++ {
		require.NoError(t, l.Append(suite, run(fmt.Sprintf("c%d", i), int64(i), float64(i)), time.Now()))
	}

	runs, err := l.Runs(suite)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "c3", runs[0].Commit.ID)
	assert.Equal(t, "c5", runs[2].Commit.ID)
}

func TestLog_ReadsAreCopies(t *testing.T) {
	l := NewLog(nil, Options{})
	require.NoError(t, l.Append(suite, run("a", 1, 0.15), time.Now()))

	runs, _ := l.Runs(suite)
	runs[0].Benches[0].Value = 100

	latest, err := l.Latest(suite)
	require.NoError(t, err)
	assert.Equal(t, 0.15, latest.Benches[0].Value)

	snap := l.Snapshot()
	snap.Entries[suite][0].Commit.ID = "mutated"
	latest, _ = l.Latest(suite)
	assert.Equal(t, "a", latest.Commit.ID)
}

func TestLog_AppendedRunIsNotAliased(t *testing.T) {
	l := NewLog(nil, Options{})
	r := run("a", 1, 0.15)
	require.NoError(t, l.Append(suite, r, time.Now()))

	r.Benches[0].Value = 7
	latest, _ := l.Latest(suite)
	assert.Equal(t, 0.15, latest.Benches[0].Value)
}

func TestLog_UnknownSuite(t *testing.T) {
	l := NewLog(nil, Options{})

	_, err := l.Runs("missing")
	var nf *apperr.NotFoundError
	assert.True(t, errors.As(err, &nf))

	_, err = l.Latest("missing")
	assert.True(t, errors.As(err, &nf))
}

func TestLog_Suites(t *testing.T) {
	l := NewLog(nil, Options{})
	require.NoError(t, l.Append("zeta", run("a", 1, 1), time.Now()))
	require.NoError(t, l.Append("alpha", run("a", 1, 1), time.Now()))

	assert.Equal(t, []string{"alpha", "zeta"}, l.Suites())
}
