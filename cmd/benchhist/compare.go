package main

import (
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/bench-history/internal/compare"
	"github.com/spf13/cobra"
)

func newCompareCmd(root *rootOptions) *cobra.Command {
	var (
		suite     string
		threshold string
		jsonOut   string
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare the latest run of a suite with the run before it",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := root.project()
			if err != nil {
				return err
			}
			t, err := compare.ParseThreshold(firstNonEmpty(threshold, p.Alert.Threshold))
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
			if len(runs) < 2 {
				return fmt.Errorf("suite %q has %d run(s), need at least 2 to compare", suite, len(runs))
			}

			res := compare.Runs(suite, runs[len(runs)-2], runs[len(runs)-1], t)
			compare.WriteTable(res, cmd.OutOrStdout())

			if jsonOut != "" {
				if err := compare.WriteJSON(res, jsonOut); err != nil {
					return err
				}
				slog.Info("Comparison written", "path", jsonOut)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&suite, "suite", "", "Suite to compare")
	cmd.Flags().StringVar(&threshold, "threshold", "", `Regression threshold such as "200%" or "1.5"`)
	cmd.Flags().StringVar(&jsonOut, "json", "", "Also write the comparison as JSON to this path")
	_ = cmd.MarkFlagRequired("suite")
	return cmd
}
