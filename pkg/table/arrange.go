package table

import "sort"

// SortKey names a column to sort by and its direction.
type SortKey struct {
	Col        string
	Descending bool
}

// Asc sorts ascending on the named column.
func Asc(col string) SortKey { return SortKey{Col: col} }

// Desc sorts descending on the named column.
func Desc(col string) SortKey { return SortKey{Col: col, Descending: true} }

// Arrange sorts rows by the given keys in order; ties fall through to the
// next key and finally to original input order (the sort is stable).
// Missing values sort last regardless of direction. The column set and
// grouping annotation are unchanged.
func (t *Table) Arrange(keys ...SortKey) (*Table, error) {
	idx := make([]int, len(keys))
	for k, key := range keys {
		j, err := t.colIndex(key.Col)
		if err != nil {
			return nil, err
		}
		idx[k] = j
	}

	order := make([]int, len(t.rows))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ra, rb := t.rows[order[a]], t.rows[order[b]]
		for k, j := range idx {
			va, vb := ra[j], rb[j]
			// Missing-last applies before direction is considered.
			switch {
			case va.IsMissing() && vb.IsMissing():
				continue
			case va.IsMissing():
				return false
			case vb.IsMissing():
				return true
			}
			// Cells in one column share a kind, so Compare cannot fail here.
			c, _ := va.Compare(vb)
			if c == 0 {
				continue
			}
			if keys[k].Descending {
				return c > 0
			}
			return c < 0
		}
		return false
	})

	rows := make([][]Value, len(order))
	for i, o := range order {
		rows[i] = t.rows[o]
	}
	return t.withRows(rows), nil
}
