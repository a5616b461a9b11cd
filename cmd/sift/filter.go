// Filter command: keep rows matching a condition.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/sift/internal/exprparse"
	"github.com/mesh-intelligence/sift/pkg/table"
)

var (
	filterBy  string
	filterOut string
)

var filterCmd = &cobra.Command{
	Use:   "filter <condition> [input]",
	Short: "Keep rows where the condition is true",
	Long: `Filter keeps the rows where the condition evaluates to true.
Rows where it is false or unknown (from missing values) are dropped.

With --by, group functions in the condition compute per group:

Example:
  sift filter 'age >= 65' data.csv
  sift filter '!missing(age) && active' data.csv
  sift filter 'weeks == min(weeks)' --by race data.csv`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runFilter,
}

func init() {
	filterCmd.Flags().StringVar(&filterBy, "by", "", "comma-separated grouping columns")
	filterCmd.Flags().StringVar(&filterOut, "out", "", "output destination (default: stdout)")
}

func runFilter(cmd *cobra.Command, args []string) error {
	pred, err := exprparse.ParsePred(args[0])
	if err != nil {
		return fmt.Errorf("condition: %w", err)
	}

	t, err := readTable(firstArg(args[1:]))
	if err != nil {
		return err
	}

	got, err := withGroups(t, filterBy, table.Filtering(pred))
	if err != nil {
		return fmt.Errorf("filter: %w", err)
	}
	return writeTable(filterOut, got)
}
