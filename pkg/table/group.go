package table

import (
	"fmt"
	"strings"
)

// GroupBy attaches a grouping annotation listing the given key columns.
// Rows are neither reordered nor filtered; only Filter, Mutate, and
// Summarize change behavior. Referencing a nonexistent column is
// ErrGroupKeyMissing.
func (t *Table) GroupBy(cols ...string) (*Table, error) {
	seen := make(map[string]bool, len(cols))
	for _, c := range cols {
		if _, err := t.colIndex(c); err != nil {
			return nil, fmt.Errorf("group key %q: %w", c, ErrGroupKeyMissing)
		}
		if seen[c] {
			return nil, fmt.Errorf("group key %q: %w", c, ErrDuplicateColumn)
		}
		seen[c] = true
	}
	return &Table{cols: t.cols, kinds: t.kinds, rows: t.rows, groups: append([]string(nil), cols...)}, nil
}

// Ungroup removes the grouping annotation.
func (t *Table) Ungroup() *Table {
	return &Table{cols: t.cols, kinds: t.kinds, rows: t.rows}
}

// partition is one group of rows sharing a key tuple. For an ungrouped
// table there is a single partition with a nil key.
type partition struct {
	key  []Value
	rows []int
}

// partitionRows splits the table's row indices by grouping key, in order of
// first occurrence. It also returns, per row, the index of its partition
// and its position within that partition. Missing key cells partition by
// marker identity: all rows with a missing key in the same column land in
// the same group.
func (t *Table) partitionRows() (parts []partition, groupOf, posOf []int, err error) {
	groupOf = make([]int, len(t.rows))
	posOf = make([]int, len(t.rows))

	if !t.Grouped() {
		all := make([]int, len(t.rows))
		for i := range t.rows {
			all[i] = i
			groupOf[i] = 0
			posOf[i] = i
		}
		return []partition{{rows: all}}, groupOf, posOf, nil
	}

	idx := make([]int, len(t.groups))
	for k, c := range t.groups {
		j, err := t.colIndex(c)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("group key %q: %w", c, ErrGroupKeyMissing)
		}
		idx[k] = j
	}

	byKey := make(map[string]int)
	for i, row := range t.rows {
		key := make([]Value, len(idx))
		var sb strings.Builder
		for k, j := range idx {
			key[k] = row[j]
			sb.WriteString(row[j].encode())
			sb.WriteByte(0x1f)
		}
		enc := sb.String()
		g, ok := byKey[enc]
		if !ok {
			g = len(parts)
			byKey[enc] = g
			parts = append(parts, partition{key: key})
		}
		groupOf[i] = g
		posOf[i] = len(parts[g].rows)
		parts[g].rows = append(parts[g].rows, i)
	}
	return parts, groupOf, posOf, nil
}
