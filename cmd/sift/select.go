// Select command: keep a subset of columns.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/sift/pkg/table"
)

var (
	selectCols       string
	selectStartsWith string
	selectEndsWith   string
	selectContains   string
	selectKind       string
	selectDrop       bool
	selectOut        string
)

var selectCmd = &cobra.Command{
	Use:   "select [input]",
	Short: "Keep a subset of columns",
	Long: `Select keeps the columns matched by the given selectors, in
selector order. With --drop the matched columns are removed instead and
the rest keep their original order.

Example:
  sift select --cols name,age data.csv
  sift select --starts-with age data.csv
  sift select --kind number data.csv
  sift select --cols id --drop data.csv`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSelect,
}

func init() {
	selectCmd.Flags().StringVar(&selectCols, "cols", "", "comma-separated column names")
	selectCmd.Flags().StringVar(&selectStartsWith, "starts-with", "", "columns whose name starts with a prefix")
	selectCmd.Flags().StringVar(&selectEndsWith, "ends-with", "", "columns whose name ends with a suffix")
	selectCmd.Flags().StringVar(&selectContains, "contains", "", "columns whose name contains a substring")
	selectCmd.Flags().StringVar(&selectKind, "kind", "", "columns of a kind: number, text, bool, or time")
	selectCmd.Flags().BoolVar(&selectDrop, "drop", false, "remove the matched columns instead of keeping them")
	selectCmd.Flags().StringVar(&selectOut, "out", "", "output destination (default: stdout)")
}

func runSelect(cmd *cobra.Command, args []string) error {
	sels, err := buildSelections()
	if err != nil {
		return err
	}
	if len(sels) == 0 {
		return fmt.Errorf("no selectors: use --cols, --starts-with, --ends-with, --contains, or --kind")
	}
	if selectDrop {
		sels = []table.Selection{table.Drop(sels...)}
	}

	t, err := readTable(firstArg(args))
	if err != nil {
		return err
	}

	got, err := t.Select(sels...)
	if err != nil {
		return fmt.Errorf("select: %w", err)
	}
	return writeTable(selectOut, got)
}

func buildSelections() ([]table.Selection, error) {
	var sels []table.Selection
	if selectCols != "" {
		sels = append(sels, table.Cols(splitColumns(selectCols)...))
	}
	if selectStartsWith != "" {
		sels = append(sels, table.StartsWith(selectStartsWith))
	}
	if selectEndsWith != "" {
		sels = append(sels, table.EndsWith(selectEndsWith))
	}
	if selectContains != "" {
		sels = append(sels, table.Containing(selectContains))
	}
	if selectKind != "" {
		k, err := kindFromName(selectKind)
		if err != nil {
			return nil, err
		}
		sels = append(sels, table.OfKind(k))
	}
	return sels, nil
}

func kindFromName(name string) (table.Kind, error) {
	switch name {
	case "number":
		return table.KindNumber, nil
	case "text":
		return table.KindText, nil
	case "bool":
		return table.KindBool, nil
	case "time":
		return table.KindTime, nil
	default:
		return table.KindMissing, fmt.Errorf("unknown kind %q: want number, text, bool, or time", name)
	}
}
