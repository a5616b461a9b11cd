package table

// Op is one step of a pipeline: a table in, a new table or an error out.
type Op func(*Table) (*Table, error)

// Pipe threads t through the given operations in order, stopping at the
// first error.
func Pipe(t *Table, ops ...Op) (*Table, error) {
	cur := t
	for _, op := range ops {
		var err error
		cur, err = op(cur)
		if err != nil {
			return nil, err
		}
	}
	return cur, nil
}

// Filtering lifts Filter into an Op.
func Filtering(preds ...Pred) Op {
	return func(t *Table) (*Table, error) { return t.Filter(preds...) }
}

// Arranging lifts Arrange into an Op.
func Arranging(keys ...SortKey) Op {
	return func(t *Table) (*Table, error) { return t.Arrange(keys...) }
}

// Selecting lifts Select into an Op.
func Selecting(sels ...Selection) Op {
	return func(t *Table) (*Table, error) { return t.Select(sels...) }
}

// Mutating lifts Mutate into an Op.
func Mutating(assigns ...Assignment) Op {
	return func(t *Table) (*Table, error) { return t.Mutate(assigns...) }
}

// Summarizing lifts Summarize into an Op.
func Summarizing(aggs ...Aggregation) Op {
	return func(t *Table) (*Table, error) { return t.Summarize(aggs...) }
}

// Grouping lifts GroupBy into an Op.
func Grouping(cols ...string) Op {
	return func(t *Table) (*Table, error) { return t.GroupBy(cols...) }
}

// Ungrouping lifts Ungroup into an Op.
func Ungrouping() Op {
	return func(t *Table) (*Table, error) { return t.Ungroup(), nil }
}

// Joining lifts Join into an Op with t as the left side.
func Joining(right *Table, kind JoinKind, keys ...JoinKey) Op {
	return func(t *Table) (*Table, error) { return t.Join(right, kind, keys...) }
}
