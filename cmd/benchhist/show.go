package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/DjordjeVuckovic/bench-history/internal/benchdata"
	"github.com/DjordjeVuckovic/bench-history/internal/domain"
	"github.com/spf13/cobra"
)

func newShowCmd(root *rootOptions) *cobra.Command {
	var (
		suite  string
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "List suites, or the runs of one suite",
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit must not be negative")
			}

			p, err := root.project()
			if err != nil {
				return err
			}
			store, err := root.openStore(cmd.Context(), p)
			if err != nil {
				return err
			}
			defer closeStore(store)

			data, err := store.Snapshot(cmd.Context())
			if err != nil {
				return err
			}

			if suite != "" {
				runs, ok := data.Entries[suite]
				if !ok {
					return fmt.Errorf("suite %q not found", suite)
				}
				runs = newest(runs, limit)
				data.Entries = map[string][]domain.CommitRun{suite: runs}
			}

			if asJSON {
				return benchdata.EncodeJSON(cmd.OutOrStdout(), data)
			}
			if suite == "" {
				writeSuites(cmd.OutOrStdout(), data)
				return nil
			}
			writeRuns(cmd.OutOrStdout(), suite, data.Entries[suite])
			return nil
		},
	}

	cmd.Flags().StringVar(&suite, "suite", "", "Suite to show runs of")
	cmd.Flags().IntVar(&limit, "limit", 0, "Show only the newest N runs (0 shows all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

// newest keeps the last n runs, oldest first.
func newest(runs []domain.CommitRun, n int) []domain.CommitRun {
	if n <= 0 || n >= len(runs) {
		return runs
	}
	return runs[len(runs)-n:]
}

func writeSuites(w io.Writer, data *domain.BenchmarkData) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Suite\tRuns\tLatest commit\tLatest date")
	for _, name := range data.SuiteNames() {
		runs := data.Entries[name]
		if len(runs) == 0 {
			fmt.Fprintf(tw, "%s\t0\t-\t-\n", name)
			continue
		}
		last := runs[len(runs)-1]
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", name, len(runs), shortID(last.Commit.ID), formatDate(last.Date))
	}
	tw.Flush()
}

func writeRuns(w io.Writer, suite string, runs []domain.CommitRun) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "=== %s (%d runs) ===\n", suite, len(runs))
	fmt.Fprintln(tw, "Commit\tDate\tBenchmark\tValue\tUnit\tRange")
	for _, r := range runs {
		for _, b := range r.Benches {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%.6g\t%s\t%s\n",
				shortID(r.Commit.ID), formatDate(r.Date), b.Name, b.Value, b.Unit, strings.TrimSpace(b.Range))
		}
	}
	tw.Flush()
}

func shortID(id string) string {
	if len(id) > 7 {
		return id[:7]
	}
	return id
}

func formatDate(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}
