package compare

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

func WriteTable(r *Result, w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "\n=== %s: %s -> %s (threshold %s) ===\n\n",
		r.Suite, shortSHA(r.PreviousCommit), shortSHA(r.CurrentCommit), FormatThreshold(r.Threshold))

	header := []string{"Benchmark", "Unit", "Previous", "Current", "Ratio", "Status"}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	fmt.Fprintln(tw, strings.Join(sep, "\t"))

	for _, c := range r.Comparisons {
		row := []string{
			c.Name,
			c.Unit,
			fmtValue(c.Previous, c.Comparable),
			fmt.Sprintf("%.6g", c.Current),
			fmtRatio(c),
			status(c),
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	fmt.Fprintln(tw)
	tw.Flush()
}

func status(c Comparison) string {
	switch {
	case !c.Comparable:
		return "N/A"
	case c.Regression:
		return "REGRESSION"
	default:
		return "OK"
	}
}

func fmtValue(v float64, ok bool) string {
	if !ok {
		return "N/A"
	}
	return fmt.Sprintf("%.6g", v)
}

func fmtRatio(c Comparison) string {
	if !c.Comparable {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", c.Ratio)
}

func shortSHA(id string) string {
	if len(id) > 7 {
		return id[:7]
	}
	return id
}
