package domain

import (
	"errors"
	"testing"

	"github.com/DjordjeVuckovic/bench-history/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRun() CommitRun {
	return CommitRun{
		Commit: Commit{ID: "c5d6a4b9447a4b7219909daac05520fc139bbf82"},
		Date:   1627653239553,
		Tool:   ToolPytest,
		Benches: []BenchResult{
			{Name: "dataprep/tests/benchmarks/eda.py::test_create_report", Value: 0.15961481475556502, Unit: "iter/sec"},
		},
	}
}

func TestCommitRun_Validate(t *testing.T) {
	t.Run("valid run", func(t *testing.T) {
		require.NoError(t, validRun().Validate())
	})

	tests := []struct {
		name   string
		mutate func(r *CommitRun)
		want   string
	}{
		{"missing commit id", func(r *CommitRun) { r.Commit.ID = " " }, "commit id is required"},
		{"zero date", func(r *CommitRun) { r.Date = 0 }, "positive epoch millisecond"},
		{"unknown tool", func(r *CommitRun) { r.Tool = "nunit" }, "invalid tool"},
		{"no benches", func(r *CommitRun) { r.Benches = nil }, "no benches"},
		{"bench without unit", func(r *CommitRun) { r.Benches[0].Unit = "" }, "has no unit"},
		{"bench without name", func(r *CommitRun) { r.Benches[0].Name = "" }, "name is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRun()
			tt.mutate(&r)
			err := r.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)

			var ve *apperr.ValidationError
			assert.True(t, errors.As(err, &ve))
		})
	}
}

func TestCommitRun_CloneIsDeep(t *testing.T) {
	r := validRun()
	c := r.Clone()
	c.Benches[0].Value = 42

	assert.Equal(t, 0.15961481475556502, r.Benches[0].Value)
}

func TestBenchmarkData_CloneIsDeep(t *testing.T) {
	d := NewBenchmarkData("https://github.com/crayon/dataprep")
	d.Entries["DataPrep.EDA Benchmarks"] = []CommitRun{validRun()}

	c := d.Clone()
	c.Entries["DataPrep.EDA Benchmarks"][0].Benches[0].Unit = "ops"
	c.Entries["other"] = nil

	assert.Equal(t, "iter/sec", d.Entries["DataPrep.EDA Benchmarks"][0].Benches[0].Unit)
	assert.Len(t, d.Entries, 1)
}

func TestTool_BiggerIsBetter(t *testing.T) {
	assert.True(t, ToolPytest.BiggerIsBetter())
	assert.True(t, ToolCustomBiggerIsBetter.BiggerIsBetter())
	assert.False(t, ToolGo.BiggerIsBetter())
	assert.False(t, ToolCustomSmallerIsBetter.BiggerIsBetter())
}
