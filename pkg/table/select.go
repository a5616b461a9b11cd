package table

import (
	"fmt"
	"strings"
)

// A Selection resolves to an ordered list of column names against a table.
// Explicit names that do not exist resolve to ErrColumnNotFound; pattern
// and kind selections simply match nothing.
type Selection func(t *Table) ([]string, error)

// Cols selects columns by exact name, in the given order.
func Cols(names ...string) Selection {
	return func(t *Table) ([]string, error) {
		for _, n := range names {
			if _, err := t.colIndex(n); err != nil {
				return nil, err
			}
		}
		return append([]string(nil), names...), nil
	}
}

// StartsWith selects columns whose name begins with prefix, in table order.
func StartsWith(prefix string) Selection {
	return matching(func(c string) bool { return strings.HasPrefix(c, prefix) })
}

// EndsWith selects columns whose name ends with suffix, in table order.
func EndsWith(suffix string) Selection {
	return matching(func(c string) bool { return strings.HasSuffix(c, suffix) })
}

// Containing selects columns whose name contains sub, in table order.
func Containing(sub string) Selection {
	return matching(func(c string) bool { return strings.Contains(c, sub) })
}

// OfKind selects columns of the given kind, in table order.
func OfKind(k Kind) Selection {
	return func(t *Table) ([]string, error) {
		var out []string
		for j, c := range t.cols {
			if t.kinds[j] == k {
				out = append(out, c)
			}
		}
		return out, nil
	}
}

// Drop selects every column not matched by the given selections, keeping
// the survivors in their original order.
func Drop(sels ...Selection) Selection {
	return func(t *Table) ([]string, error) {
		dropped := make(map[string]bool)
		for _, sel := range sels {
			names, err := sel(t)
			if err != nil {
				return nil, err
			}
			for _, n := range names {
				dropped[n] = true
			}
		}
		var out []string
		for _, c := range t.cols {
			if !dropped[c] {
				out = append(out, c)
			}
		}
		return out, nil
	}
}

func matching(pred func(string) bool) Selection {
	return func(t *Table) ([]string, error) {
		var out []string
		for _, c := range t.cols {
			if pred(c) {
				out = append(out, c)
			}
		}
		return out, nil
	}
}

// Select produces a table retaining only the selected columns, in selection
// order. Selections concatenate; a column selected twice keeps its first
// position. Grouping keys that are selected away are also removed from the
// grouping annotation.
func (t *Table) Select(sels ...Selection) (*Table, error) {
	var names []string
	seen := make(map[string]bool)
	for _, sel := range sels {
		got, err := sel(t)
		if err != nil {
			return nil, err
		}
		for _, n := range got {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
	}

	idx := make([]int, len(names))
	for k, n := range names {
		j, err := t.colIndex(n)
		if err != nil {
			return nil, fmt.Errorf("resolving selection: %w", err)
		}
		idx[k] = j
	}

	kinds := make([]Kind, len(names))
	for k, j := range idx {
		kinds[k] = t.kinds[j]
	}
	rows := make([][]Value, len(t.rows))
	for i, r := range t.rows {
		nr := make([]Value, len(idx))
		for k, j := range idx {
			nr[k] = r[j]
		}
		rows[i] = nr
	}

	var groups []string
	for _, g := range t.groups {
		if seen[g] {
			groups = append(groups, g)
		}
	}
	return &Table{cols: names, kinds: kinds, rows: rows, groups: groups}, nil
}
