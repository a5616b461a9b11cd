// Head command: print the first rows of a table.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/sift/pkg/table"
)

var (
	headN   int
	headOut string
)

var headCmd = &cobra.Command{
	Use:   "head [input]",
	Short: "Keep the first N rows",
	Long: `Head keeps the first N rows of the input table.

Example:
  sift head data.csv
  sift head -n 3 db:people
  cat data.csv | sift head`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHead,
}

func init() {
	headCmd.Flags().IntVarP(&headN, "rows", "n", 10, "number of rows to keep")
	headCmd.Flags().StringVar(&headOut, "out", "", "output destination (default: stdout)")
}

func runHead(cmd *cobra.Command, args []string) error {
	t, err := readTable(firstArg(args))
	if err != nil {
		return err
	}

	got, err := t.Filter(table.Le(table.RowNumber(), table.Lit(table.Int(headN))))
	if err != nil {
		return fmt.Errorf("head: %w", err)
	}
	return writeTable(headOut, got)
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
