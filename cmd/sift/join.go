// Join command: combine two tables on key columns.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/sift/pkg/table"
)

var (
	joinKindName string
	joinOn       string
	joinOut      string
)

var joinCmd = &cobra.Command{
	Use:   "join <left> <right>",
	Short: "Join two tables on key columns",
	Long: `Join combines two tables on key columns. Without --on the key
is inferred when exactly one column name is shared. Keys are given as
comma-separated columns; "left=right" maps differently named columns.
Rows with a missing key never match.

Kinds: inner, left, right, full, semi, anti.

Example:
  sift join people.csv visits.csv
  sift join --kind left --on id people.csv visits.csv
  sift join --on 'id=person_id' people.csv visits.csv`,
	Args: cobra.ExactArgs(2),
	RunE: runJoin,
}

func init() {
	joinCmd.Flags().StringVar(&joinKindName, "kind", "inner", "join kind: inner, left, right, full, semi, or anti")
	joinCmd.Flags().StringVar(&joinOn, "on", "", "comma-separated key columns, each col or left=right")
	joinCmd.Flags().StringVar(&joinOut, "out", "", "output destination (default: stdout)")
}

func runJoin(cmd *cobra.Command, args []string) error {
	kind, err := joinKindFromName(joinKindName)
	if err != nil {
		return err
	}
	keys, err := parseJoinKeys(joinOn)
	if err != nil {
		return err
	}

	left, err := readTable(args[0])
	if err != nil {
		return err
	}
	right, err := readTable(args[1])
	if err != nil {
		return err
	}

	got, err := left.Join(right, kind, keys...)
	if err != nil {
		return fmt.Errorf("join: %w", err)
	}
	return writeTable(joinOut, got)
}

func joinKindFromName(name string) (table.JoinKind, error) {
	switch name {
	case "inner":
		return table.InnerJoin, nil
	case "left":
		return table.LeftJoin, nil
	case "right":
		return table.RightJoin, nil
	case "full":
		return table.FullJoin, nil
	case "semi":
		return table.SemiJoin, nil
	case "anti":
		return table.AntiJoin, nil
	default:
		return table.InnerJoin, fmt.Errorf("unknown join kind %q: want inner, left, right, full, semi, or anti", name)
	}
}

func parseJoinKeys(on string) ([]table.JoinKey, error) {
	if on == "" {
		return nil, nil
	}
	var keys []table.JoinKey
	for _, part := range strings.Split(on, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("empty join key in %q", on)
		}
		if l, r, ok := strings.Cut(part, "="); ok {
			l, r = strings.TrimSpace(l), strings.TrimSpace(r)
			if l == "" || r == "" {
				return nil, fmt.Errorf("bad join key %q: want left=right", part)
			}
			keys = append(keys, table.OnColumns(l, r))
			continue
		}
		keys = append(keys, table.On(part))
	}
	return keys, nil
}
