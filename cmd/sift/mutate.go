// Mutate command: add or overwrite computed columns.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/sift/internal/exprparse"
	"github.com/mesh-intelligence/sift/pkg/table"
)

var (
	mutateBy  string
	mutateOut string
)

var mutateCmd = &cobra.Command{
	Use:   "mutate <assignments> [input]",
	Short: "Add or overwrite computed columns",
	Long: `Mutate evaluates comma-separated "name = expression" clauses
against every row. Later clauses see the columns earlier clauses added.
With --by, group functions like sum() and row_number() compute per group.

Example:
  sift mutate 'double = age * 2' data.csv
  sift mutate 'share = weeks / sum(weeks)' --by race data.csv
  sift mutate 'rank = row_number()' --by race data.csv`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runMutate,
}

func init() {
	mutateCmd.Flags().StringVar(&mutateBy, "by", "", "comma-separated grouping columns")
	mutateCmd.Flags().StringVar(&mutateOut, "out", "", "output destination (default: stdout)")
}

func runMutate(cmd *cobra.Command, args []string) error {
	assigns, err := exprparse.ParseAssignments(args[0])
	if err != nil {
		return fmt.Errorf("assignments: %w", err)
	}

	t, err := readTable(firstArg(args[1:]))
	if err != nil {
		return err
	}

	got, err := withGroups(t, mutateBy, table.Mutating(assigns...))
	if err != nil {
		return fmt.Errorf("mutate: %w", err)
	}
	return writeTable(mutateOut, got)
}
