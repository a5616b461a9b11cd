// Summarize command: collapse rows to per-group aggregates.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/sift/internal/exprparse"
	"github.com/mesh-intelligence/sift/pkg/table"
)

var (
	summarizeBy  string
	summarizeOut string
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize <aggregates> [input]",
	Short: "Collapse rows to one aggregate row per group",
	Long: `Summarize evaluates comma-separated "name = fn(col)" clauses,
producing one row per group (one row total without --by). An aggregate
over a column containing a missing value is missing unless the clause
adds a trailing "drop" argument.

Supported: count(), sum, mean, avg, median, min, max, first, n_distinct.

Example:
  sift summarize 'n = count(), avg = mean(weeks)' --by race data.csv
  sift summarize 'avg = mean(weeks, drop)' data.csv`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSummarize,
}

func init() {
	summarizeCmd.Flags().StringVar(&summarizeBy, "by", "", "comma-separated grouping columns")
	summarizeCmd.Flags().StringVar(&summarizeOut, "out", "", "output destination (default: stdout)")
}

func runSummarize(cmd *cobra.Command, args []string) error {
	aggs, err := exprparse.ParseAggregations(args[0])
	if err != nil {
		return fmt.Errorf("aggregates: %w", err)
	}

	t, err := readTable(firstArg(args[1:]))
	if err != nil {
		return err
	}

	got, err := withGroups(t, summarizeBy, table.Summarizing(aggs...))
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}
	return writeTable(summarizeOut, got)
}
