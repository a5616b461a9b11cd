// Convert command: move a table between CSV, Arrow, and the SQLite store.
package main

import (
	"github.com/spf13/cobra"
)

var convertOut string

var convertCmd = &cobra.Command{
	Use:   "convert <input>",
	Short: "Convert a table between formats",
	Long: `Convert reads a table and writes it to --out, dispatching on
the destination: .csv, .arrow/.feather/.ipc, or db:NAME for the SQLite
store. Without --out the table renders to stdout.

Example:
  sift convert data.csv --out data.arrow
  sift convert data.csv --out db:people
  sift convert db:people --out people.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVar(&convertOut, "out", "", "output destination (default: stdout)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	t, err := readTable(args[0])
	if err != nil {
		return err
	}
	return writeTable(convertOut, t)
}
