package table

import "fmt"

// Assignment pairs a new-or-existing column name with the expression that
// computes it.
type Assignment struct {
	Name string
	Expr Expr
}

// Assign builds an Assignment.
func Assign(name string, expr Expr) Assignment {
	return Assignment{Name: name, Expr: expr}
}

// Mutate adds or replaces columns. Assignments see the input columns plus
// earlier assignments from the same call, not later ones. Replacing an
// existing column keeps its position; new columns append on the right. Row
// count and row order never change. On a grouped table expressions see
// their row's partition, so group aggregates and RowNumber are group-scoped.
func (t *Table) Mutate(assigns ...Assignment) (*Table, error) {
	cur := &Table{
		cols:   append([]string(nil), t.cols...),
		kinds:  append([]Kind(nil), t.kinds...),
		rows:   make([][]Value, len(t.rows)),
		groups: t.groups,
	}
	for i, r := range t.rows {
		cur.rows[i] = append([]Value(nil), r...)
	}

	for _, a := range assigns {
		if a.Name == "" {
			return nil, fmt.Errorf("assignment name: %w", ErrInvalidName)
		}
		parts, groupOf, posOf, err := cur.partitionRows()
		if err != nil {
			return nil, err
		}

		vals := make([]Value, len(cur.rows))
		kind := KindMissing
		for i := range cur.rows {
			env := &Env{t: cur, row: i, group: parts[groupOf[i]].rows, pos: posOf[i]}
			v, err := a.Expr(env)
			if err != nil {
				return nil, fmt.Errorf("assignment %q: %w", a.Name, err)
			}
			if !v.IsMissing() {
				if kind == KindMissing {
					kind = v.Kind()
				} else if kind != v.Kind() {
					return nil, fmt.Errorf("assignment %q mixes %s and %s: %w", a.Name, kind, v.Kind(), ErrTypeMismatch)
				}
			}
			vals[i] = v
		}

		if j, err := cur.colIndex(a.Name); err == nil {
			for i := range cur.rows {
				cur.rows[i][j] = vals[i]
			}
			cur.kinds[j] = kind
		} else {
			cur.cols = append(cur.cols, a.Name)
			cur.kinds = append(cur.kinds, kind)
			for i := range cur.rows {
				cur.rows[i] = append(cur.rows[i], vals[i])
			}
		}
	}
	return cur, nil
}
