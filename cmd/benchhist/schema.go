package main

import (
	"fmt"
	"os"

	"github.com/DjordjeVuckovic/bench-history/internal/domain"
	"github.com/DjordjeVuckovic/bench-history/pkg/schema"
	"github.com/spf13/cobra"
)

const schemaBaseID = "https://github.com/DjordjeVuckovic/bench-history/schemas"

func newSchemaCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the data.js document",
		RunE: func(cmd *cobra.Command, args []string) error {
			g := schema.NewGenerator(
				schema.WithBaseID(schemaBaseID),
				schema.WithDescription("Benchmark history assigned to window.BENCHMARK_DATA in data.js"),
			)
			s, err := g.GenerateJSONSchema(domain.BenchmarkData{})
			if err != nil {
				return fmt.Errorf("generate schema: %w", err)
			}

			if out == "" {
				fmt.Fprintln(cmd.OutOrStdout(), s)
				return nil
			}
			if err := os.WriteFile(out, []byte(s+"\n"), 0644); err != nil {
				return fmt.Errorf("write schema: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Schema written to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the schema to this file instead of stdout")
	return cmd
}
