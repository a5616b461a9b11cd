package table

import "fmt"

// Table is an immutable ordered collection of uniform rows over a fixed
// column set. Column order is significant for display and positional
// operations. A table optionally carries a grouping annotation: a list of
// key columns that scope Filter, Mutate, and Summarize to per-group
// computation. The annotation never changes the rows themselves.
type Table struct {
	cols   []string
	kinds  []Kind
	rows   [][]Value
	groups []string
}

// New builds a table from column names and rows. Every row must have one
// cell per column, column names must be unique and non-empty, and all
// non-missing cells within a column must share a kind.
func New(cols []string, rows [][]Value) (*Table, error) {
	seen := make(map[string]bool, len(cols))
	for _, c := range cols {
		if c == "" {
			return nil, fmt.Errorf("empty column name: %w", ErrInvalidName)
		}
		if seen[c] {
			return nil, fmt.Errorf("column %q: %w", c, ErrDuplicateColumn)
		}
		seen[c] = true
	}
	for i, r := range rows {
		if len(r) != len(cols) {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", i, len(r), len(cols), ErrRaggedRow)
		}
	}
	kinds, err := inferKinds(cols, rows)
	if err != nil {
		return nil, err
	}
	t := &Table{
		cols:  append([]string(nil), cols...),
		kinds: kinds,
		rows:  make([][]Value, len(rows)),
	}
	for i, r := range rows {
		t.rows[i] = append([]Value(nil), r...)
	}
	return t, nil
}

// inferKinds determines each column's kind from its first non-missing cell
// and verifies the rest of the column agrees.
func inferKinds(cols []string, rows [][]Value) ([]Kind, error) {
	kinds := make([]Kind, len(cols))
	for j := range cols {
		for i := range rows {
			k := rows[i][j].Kind()
			if k == KindMissing {
				continue
			}
			if kinds[j] == KindMissing {
				kinds[j] = k
				continue
			}
			if kinds[j] != k {
				return nil, fmt.Errorf("column %q mixes %s and %s: %w", cols[j], kinds[j], k, ErrTypeMismatch)
			}
		}
	}
	return kinds, nil
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.cols...)
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int { return len(t.rows) }

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.cols) }

// Kind returns the kind of the named column, or ErrColumnNotFound.
func (t *Table) Kind(col string) (Kind, error) {
	j, err := t.colIndex(col)
	if err != nil {
		return KindMissing, err
	}
	return t.kinds[j], nil
}

// Value returns the cell at row i of the named column.
func (t *Table) Value(i int, col string) (Value, error) {
	j, err := t.colIndex(col)
	if err != nil {
		return Missing(), err
	}
	if i < 0 || i >= len(t.rows) {
		return Missing(), fmt.Errorf("row %d out of range [0,%d)", i, len(t.rows))
	}
	return t.rows[i][j], nil
}

// Row returns a copy of row i in column order.
func (t *Table) Row(i int) []Value {
	return append([]Value(nil), t.rows[i]...)
}

// Groups returns the grouping annotation, nil when ungrouped.
func (t *Table) Groups() []string {
	if len(t.groups) == 0 {
		return nil
	}
	return append([]string(nil), t.groups...)
}

// Grouped reports whether the table carries a grouping annotation.
func (t *Table) Grouped() bool { return len(t.groups) > 0 }

func (t *Table) colIndex(name string) (int, error) {
	for j, c := range t.cols {
		if c == name {
			return j, nil
		}
	}
	return 0, fmt.Errorf("column %q: %w", name, ErrColumnNotFound)
}

// withRows returns a new table sharing t's columns, kinds, and grouping but
// holding the given rows. The rows are adopted, not copied.
func (t *Table) withRows(rows [][]Value) *Table {
	return &Table{cols: t.cols, kinds: t.kinds, rows: rows, groups: t.groups}
}
