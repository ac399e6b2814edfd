package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/DjordjeVuckovic/bench-history/internal/stats"
	"github.com/spf13/cobra"
)

func newStatsCmd(root *rootOptions) *cobra.Command {
	var suite string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize every bench of a suite across its history",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := root.project()
			if err != nil {
				return err
			}
			store, err := root.openStore(cmd.Context(), p)
			if err != nil {
				return err
			}
			defer closeStore(store)

			runs, err := store.Runs(cmd.Context(), suite)
			if err != nil {
				return err
			}
			writeStats(cmd.OutOrStdout(), suite, len(runs), stats.ForSuite(runs))
			return nil
		},
	}

	cmd.Flags().StringVar(&suite, "suite", "", "Suite to summarize")
	_ = cmd.MarkFlagRequired("suite")
	return cmd
}

func writeStats(w io.Writer, suite string, runs int, series []stats.Series) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "=== %s (%d runs) ===\n", suite, runs)
	fmt.Fprintln(tw, "Benchmark\tUnit\tN\tMin\tMedian\tMean\tP90\tMax\tStddev\tLatest")
	for _, s := range series {
		sm := s.Summary
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.6g\t%.6g\t%.6g\t%.6g\t%.6g\t%.6g\t%.6g\n",
			s.Name, s.Unit, sm.SampleCount, sm.Min, sm.Median, sm.Mean, sm.P90(), sm.Max, sm.Stddev, s.Latest)
	}
	tw.Flush()
}
