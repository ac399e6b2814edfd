package domain

import "sort"

// BenchmarkData is the document published as data.js for the chart page.
type BenchmarkData struct {
	LastUpdate int64                  `json:"lastUpdate" schema:"required"`
	RepoURL    string                 `json:"repoUrl" schema:"required"`
	Entries    map[string][]CommitRun `json:"entries" schema:"required"`
}

// CommitRun is one benchmark execution tied to a source-control commit.
type CommitRun struct {
	Commit  Commit        `json:"commit" schema:"required"`
	Date    int64         `json:"date" schema:"required" description:"capture time in epoch milliseconds"`
	Tool    Tool          `json:"tool" schema:"required,enum=pytest|go|customBiggerIsBetter|customSmallerIsBetter"`
	Benches []BenchResult `json:"benches" schema:"required,minItems=1"`
}

type Commit struct {
	Author    Identity `json:"author" schema:"required"`
	Committer Identity `json:"committer" schema:"required"`
	Distinct  bool     `json:"distinct"`
	ID        string   `json:"id" schema:"required,minLength=1"`
	Message   string   `json:"message"`
	Timestamp string   `json:"timestamp" description:"RFC3339 commit time with offset"`
	TreeID    string   `json:"tree_id"`
	URL       string   `json:"url"`
}

type Identity struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Username string `json:"username,omitempty"`
}

// BenchResult is one named measurement within a CommitRun.
type BenchResult struct {
	Name  string  `json:"name" schema:"required,minLength=1"`
	Value float64 `json:"value" schema:"required"`
	Unit  string  `json:"unit" schema:"required,minLength=1"`
	Range string  `json:"range,omitempty"`
	Extra string  `json:"extra,omitempty"`
}

func NewBenchmarkData(repoURL string) *BenchmarkData {
	return &BenchmarkData{
		RepoURL: repoURL,
		Entries: make(map[string][]CommitRun),
	}
}

// Clone returns a deep copy. Stored runs are never handed out by reference.
func (r CommitRun) Clone() CommitRun {
	c := r
	c.Benches = append([]BenchResult(nil), r.Benches...)
	return c
}

func (d *BenchmarkData) Clone() *BenchmarkData {
	c := &BenchmarkData{
		LastUpdate: d.LastUpdate,
		RepoURL:    d.RepoURL,
		Entries:    make(map[string][]CommitRun, len(d.Entries)),
	}
	for suite, runs := range d.Entries {
		c.Entries[suite] = CloneRuns(runs)
	}
	return c
}

// SuiteNames returns the suite names in lexical order.
func (d *BenchmarkData) SuiteNames() []string {
	names := make([]string, 0, len(d.Entries))
	for name := range d.Entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func CloneRuns(runs []CommitRun) []CommitRun {
	out := make([]CommitRun, len(runs))
	for i, r := range runs {
		out[i] = r.Clone()
	}
	return out
}

// Bench returns the result with the given name.
func (r CommitRun) Bench(name string) (BenchResult, bool) {
	for _, b := range r.Benches {
		if b.Name == name {
			return b, true
		}
	}
	return BenchResult{}, false
}

// SameRecord reports whether both runs describe the same capture of the same commit.
func (r CommitRun) SameRecord(other CommitRun) bool {
	return r.Commit.ID == other.Commit.ID && r.Date == other.Date
}
