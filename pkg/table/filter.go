package table

// Filter returns the rows for which every predicate evaluates definitely
// true. Predicates are conjoined; a row whose result is Unknown (because a
// comparison touched a missing value) is excluded. On a grouped table each
// predicate sees its row's partition, so group-scoped aggregates such as
// GroupMin compare within the group; the surviving rows keep their original
// relative order.
func (t *Table) Filter(preds ...Pred) (*Table, error) {
	parts, groupOf, posOf, err := t.partitionRows()
	if err != nil {
		return nil, err
	}

	pred := And(preds...)
	var kept [][]Value
	for i := range t.rows {
		env := &Env{t: t, row: i, group: parts[groupOf[i]].rows, pos: posOf[i]}
		r, err := pred(env)
		if err != nil {
			return nil, err
		}
		if r == True {
			kept = append(kept, t.rows[i])
		}
	}
	return t.withRows(kept), nil
}
